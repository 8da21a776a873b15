package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avoran/daybook/internal/logs"
	"github.com/avoran/daybook/internal/tasks"
)

// TimeOfDay is a wall-clock firing time, local to the process timezone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var t TimeOfDay
	if _, err := fmt.Sscanf(s, "%d:%d", &t.Hour, &t.Minute); err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
	}
	return t, nil
}

// Scheduler fires the archive and reset jobs once a day each. Job
// failures are logged and swallowed; nothing waits on them.
type Scheduler struct {
	tasks  tasks.Repository
	logs   logs.Repository
	logger *slog.Logger
	now    func() time.Time
}

func New(tasksRepo tasks.Repository, logsRepo logs.Repository, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		tasks:  tasksRepo,
		logs:   logsRepo,
		logger: logger,
		now:    time.Now,
	}
}

// Start launches both triggers. They stop when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context, archiveAt, resetAt TimeOfDay) {
	go s.runDaily(ctx, "archive", archiveAt, s.Archive)
	go s.runDaily(ctx, "reset", resetAt, s.Reset)
}

func (s *Scheduler) runDaily(ctx context.Context, name string, at TimeOfDay, job func() error) {
	for {
		next := nextRun(s.now(), at)
		timer := time.NewTimer(time.Until(next))
		s.logger.Info("trigger_scheduled",
			slog.String("trigger", name),
			slog.Time("next_run", next),
		)

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if err := job(); err != nil {
				s.logger.Error("trigger_error",
					slog.String("trigger", name),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// Archive snapshots the current task list into the log under today's
// date label. An empty list produces no entry.
func (s *Scheduler) Archive() error {
	list, err := s.tasks.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		s.logger.Info("archive_skipped", slog.String("reason", "no tasks"))
		return nil
	}

	date := s.now().Format("2006-01-02")
	id, err := s.logs.Append(date, list)
	if err != nil {
		return err
	}
	s.logger.Info("archive_complete",
		slog.String("date", date),
		slog.Int64("log_id", id),
		slog.Int("tasks", len(list)),
	)
	return nil
}

// Reset clears the task list for the new day.
func (s *Scheduler) Reset() error {
	n, err := s.tasks.Clear()
	if err != nil {
		return err
	}
	s.logger.Info("reset_complete", slog.Int64("deleted", n))
	return nil
}

// nextRun returns the next occurrence of at strictly after now.
func nextRun(now time.Time, at TimeOfDay) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour, at.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
