package service

import (
	"context"
	"time"

	"github.com/avetisov/deadlinebot/internal/domain"
)

// Stats is an aggregate view over one owner's assignments.
type Stats struct {
	Total         int
	AvgDifficulty float64
	AvgRisk       float64
}

// AssignmentService owns assignment ids, risk recomputation and the
// transactional discipline around position-based mutations. Every write
// derives risk from the current date; callers never supply it.
type AssignmentService interface {
	Create(ctx context.Context, owner, subject string, deadline time.Time, difficulty int) (*domain.Assignment, error)
	List(ctx context.Context, owner string) ([]*domain.Assignment, error)
	GetByPosition(ctx context.Context, owner string, pos int) (*domain.Assignment, error)
	UpdateByID(ctx context.Context, id, subject string, deadline time.Time, difficulty int) (*domain.Assignment, error)
	DeleteByPosition(ctx context.Context, owner string, pos int) (bool, error)
	FilterBySubject(ctx context.Context, owner, subject string) ([]*domain.Assignment, error)
	Stats(ctx context.Context, owner string) (*Stats, error)
	Owners(ctx context.Context) ([]string, error)
}
