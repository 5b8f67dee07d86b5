package repository

import (
	"context"
	"errors"

	"github.com/avetisov/deadlinebot/internal/domain"
)

// ErrNotFound marks a lookup that matched no record, including a list
// position that is out of range.
var ErrNotFound = errors.New("record not found")

// AssignmentRepo is the persistence contract for assignments. All
// operations except Update and Owners are scoped to a single owner;
// owners never see each other's records.
//
// Positions are 1-based indices into the deadline-ascending list and are
// transient: they are re-derived from the current list on every call and
// must not be cached across operations.
type AssignmentRepo interface {
	Create(ctx context.Context, a *domain.Assignment) error
	ListByOwner(ctx context.Context, owner string) ([]*domain.Assignment, error)
	GetByID(ctx context.Context, id string) (*domain.Assignment, error)
	GetByPosition(ctx context.Context, owner string, pos int) (*domain.Assignment, error)
	Update(ctx context.Context, a *domain.Assignment) error
	DeleteByPosition(ctx context.Context, owner string, pos int) (bool, error)
	Owners(ctx context.Context) ([]string, error)
}
