// Package reminder runs the periodic sweep that notifies owners about
// assignments due within the lookahead window.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avetisov/deadlinebot/internal/bot"
	"github.com/avetisov/deadlinebot/internal/bot/formatter"
	"github.com/avetisov/deadlinebot/internal/domain"
	"github.com/avetisov/deadlinebot/internal/scheduler"
	"github.com/avetisov/deadlinebot/internal/service"
)

const (
	// DefaultInterval is one sweep per day.
	DefaultInterval = 24 * time.Hour

	// DefaultInitialDelay gives the process a moment to settle after
	// startup before the first sweep.
	DefaultInitialDelay = 10 * time.Second

	// lookaheadDays is the inclusive upper bound of the window: an
	// assignment qualifies when 0 <= daysLeft <= lookaheadDays.
	lookaheadDays = 1
)

// Sweeper scans every owner's assignments on a fixed period and sends
// one aggregated notification per owner with near-due work. The sweep
// is stateless: it keeps no record of what was already announced, so
// re-running within the same day re-sends.
type Sweeper struct {
	assignments service.AssignmentService
	sender      bot.Sender
	interval    time.Duration
	delay       time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

// NewSweeper creates a Sweeper. A non-positive interval falls back to
// DefaultInterval. A negative delay falls back to DefaultInitialDelay;
// zero means the first sweep runs immediately. now and logger may be
// nil.
func NewSweeper(assignments service.AssignmentService, sender bot.Sender, interval, delay time.Duration, now func() time.Time, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if delay < 0 {
		delay = DefaultInitialDelay
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		assignments: assignments,
		sender:      sender,
		interval:    interval,
		delay:       delay,
		now:         now,
		logger:      logger,
	}
}

// Run blocks until ctx is cancelled, sweeping once after the initial
// delay and then on every interval tick.
func (s *Sweeper) Run(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(s.delay):
	}

	if err := s.SweepOnce(ctx); err != nil {
		s.logger.Error("reminder sweep failed", "error", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SweepOnce(ctx); err != nil {
				s.logger.Error("reminder sweep failed", "error", err)
			}
		}
	}
}

// SweepOnce runs a single sweep over all owners. Send failures are
// logged per owner and do not stop the sweep; only a store fault aborts.
func (s *Sweeper) SweepOnce(ctx context.Context) error {
	owners, err := s.assignments.Owners(ctx)
	if err != nil {
		return fmt.Errorf("enumerating owners: %w", err)
	}

	today := s.now()
	notified := 0
	for _, owner := range owners {
		list, err := s.assignments.List(ctx, owner)
		if err != nil {
			return fmt.Errorf("listing assignments for %s: %w", owner, err)
		}

		due := selectDue(list, today)
		if len(due) == 0 {
			continue
		}

		text := formatter.Reminder(due, today)
		if err := s.sender.Send(ctx, owner, text); err != nil {
			s.logger.Warn("sending reminder failed", "owner", owner, "error", err)
			continue
		}
		notified++
	}

	s.logger.Debug("reminder sweep complete", "owners", len(owners), "notified", notified)
	return nil
}

// selectDue keeps assignments inside the lookahead window: due today or
// tomorrow. Overdue work is excluded; it already showed up while it was
// in the window.
func selectDue(list []*domain.Assignment, today time.Time) []*domain.Assignment {
	var due []*domain.Assignment
	for _, a := range list {
		daysLeft := scheduler.DaysLeft(a.Deadline, today)
		if daysLeft >= 0 && daysLeft <= lookaheadDays {
			due = append(due, a)
		}
	}
	return due
}
