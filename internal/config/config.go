package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port      int
	DBPath    string
	LogLevel  string
	ArchiveAt string
	ResetAt   string
}

func Load() *Config {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080 // fallback
	}

	return &Config{
		Port:      port,
		DBPath:    getenv("DB_PATH", "data/daybook.db"),
		LogLevel:  os.Getenv("LOG_LEVEL"),
		ArchiveAt: getenv("ARCHIVE_AT", "23:55"),
		ResetAt:   getenv("RESET_AT", "00:05"),
	}
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
