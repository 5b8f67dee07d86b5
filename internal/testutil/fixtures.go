package testutil

import (
	"sync/atomic"
	"time"

	"github.com/avetisov/deadlinebot/internal/domain"
	"github.com/google/uuid"
)

// insertion counter spaces created_at values one second apart so the
// insertion-order tiebreak in list queries is deterministic in tests.
var createdAtCounter atomic.Int64

// AssignmentOption mutates a test assignment before it is returned.
type AssignmentOption func(*domain.Assignment)

func WithOwner(owner string) AssignmentOption {
	return func(a *domain.Assignment) {
		a.Owner = owner
	}
}

func WithDeadline(d time.Time) AssignmentOption {
	return func(a *domain.Assignment) {
		a.Deadline = domain.CivilDate(d)
	}
}

func WithDifficulty(d int) AssignmentOption {
	return func(a *domain.Assignment) {
		a.Difficulty = d
	}
}

func WithRisk(r int) AssignmentOption {
	return func(a *domain.Assignment) {
		a.Risk = r
	}
}

// NewTestAssignment returns a valid assignment with sensible defaults:
// owner "student-1", difficulty 3, low risk, deadline thirty days out.
func NewTestAssignment(subject string, opts ...AssignmentOption) *domain.Assignment {
	n := createdAtCounter.Add(1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Second)
	a := &domain.Assignment{
		ID:         uuid.New().String(),
		Owner:      "student-1",
		Subject:    subject,
		Deadline:   now.AddDate(0, 0, 30),
		Difficulty: 3,
		Risk:       domain.RiskLow,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
