package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/avoran/daybook/internal/config"
	"github.com/avoran/daybook/internal/db"
	"github.com/avoran/daybook/internal/logs"
	"github.com/avoran/daybook/internal/middleware"
	"github.com/avoran/daybook/internal/scheduler"
	"github.com/avoran/daybook/internal/tasks"
)

//go:embed web/index.html
var indexHTML []byte

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger) // for third-party packages that use slog

	dsn, err := db.FileDSN(cfg.DBPath)
	if err != nil {
		logger.Error("db_dsn_error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	database, err := db.Open(dsn)
	if err != nil {
		logger.Error("db_open_error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(context.Background(), database); err != nil {
		logger.Error("db_migrate_error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	taskRepo := tasks.NewSQLiteRepo(database)
	logRepo := logs.NewSQLiteRepo(database)

	archiveAt, err := scheduler.ParseTimeOfDay(cfg.ArchiveAt)
	if err != nil {
		logger.Error("config_error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	resetAt, err := scheduler.ParseTimeOfDay(cfg.ResetAt)
	if err != nil {
		logger.Error("config_error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	sched := scheduler.New(taskRepo, logRepo, logger)
	sched.Start(context.Background(), archiveAt, resetAt)

	r := newRouter(taskRepo, logRepo, logger)

	logger.Info("server_listen",
		slog.String("addr", cfg.Addr()),
		slog.String("db", cfg.DBPath),
		slog.String("archive_at", cfg.ArchiveAt),
		slog.String("reset_at", cfg.ResetAt),
	)
	if err := http.ListenAndServe(cfg.Addr(), r); err != nil {
		logger.Error("server_error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newRouter wires the landing page, health endpoint, API routes, and
// middleware stack.
func newRouter(taskRepo tasks.Repository, logRepo logs.Repository, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// RequestID first so downstream can include it (logger, traces)
	r.Use(chimw.RequestID)

	// Panic recovery: never crash the server; returns 500 on panics
	r.Use(chimw.Recoverer)

	// Timeouts: cancel handlers that exceed this duration
	r.Use(chimw.Timeout(15 * time.Second))

	// CORS: the front end is served from anywhere
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "Trace-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.Tracing)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(indexHTML)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Handle("/metrics", middleware.MetricsHandler())

	r.Route("/api", func(api chi.Router) {
		tasks.RegisterRoutes(api, taskRepo)
		logs.RegisterRoutes(api, logRepo)
	})

	return r
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: l,
	})
	return slog.New(handler)
}
