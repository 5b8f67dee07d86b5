package service

import (
	"context"
	"strings"
	"time"

	"github.com/avetisov/deadlinebot/internal/db"
	"github.com/avetisov/deadlinebot/internal/domain"
	"github.com/avetisov/deadlinebot/internal/repository"
	"github.com/avetisov/deadlinebot/internal/scheduler"
	"github.com/google/uuid"
)

type assignmentService struct {
	assignments repository.AssignmentRepo
	uow         db.UnitOfWork
	now         func() time.Time
}

// NewAssignmentService creates the AssignmentService. now may be nil, in
// which case time.Now is used; tests inject a fixed clock.
func NewAssignmentService(assignments repository.AssignmentRepo, uow db.UnitOfWork, now func() time.Time) AssignmentService {
	if now == nil {
		now = time.Now
	}
	return &assignmentService{assignments: assignments, uow: uow, now: now}
}

func (s *assignmentService) Create(ctx context.Context, owner, subject string, deadline time.Time, difficulty int) (*domain.Assignment, error) {
	now := s.now()
	a := &domain.Assignment{
		ID:         uuid.New().String(),
		Owner:      owner,
		Subject:    strings.TrimSpace(subject),
		Deadline:   domain.CivilDate(deadline),
		Difficulty: difficulty,
		Risk:       scheduler.CalcRisk(deadline, difficulty, now),
		CreatedAt:  now.UTC(),
		UpdatedAt:  now.UTC(),
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.assignments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assignmentService) List(ctx context.Context, owner string) ([]*domain.Assignment, error) {
	return s.assignments.ListByOwner(ctx, owner)
}

func (s *assignmentService) GetByPosition(ctx context.Context, owner string, pos int) (*domain.Assignment, error) {
	return s.assignments.GetByPosition(ctx, owner, pos)
}

// UpdateByID rewrites subject, deadline and difficulty of an existing
// assignment and recomputes risk from the current date. Load and store
// run in one transaction so the record cannot change underneath.
func (s *assignmentService) UpdateByID(ctx context.Context, id, subject string, deadline time.Time, difficulty int) (*domain.Assignment, error) {
	var updated *domain.Assignment
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepo := repository.NewSQLiteAssignmentRepo(tx)
		a, err := txRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		now := s.now()
		a.Subject = strings.TrimSpace(subject)
		a.Deadline = domain.CivilDate(deadline)
		a.Difficulty = difficulty
		a.Risk = scheduler.CalcRisk(deadline, difficulty, now)
		a.UpdatedAt = now.UTC()
		if err := a.Validate(); err != nil {
			return err
		}
		if err := txRepo.Update(ctx, a); err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteByPosition resolves the position and deletes the record in one
// transaction, so a concurrent mutation cannot reassign the position
// between resolution and removal.
func (s *assignmentService) DeleteByPosition(ctx context.Context, owner string, pos int) (bool, error) {
	var removed bool
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepo := repository.NewSQLiteAssignmentRepo(tx)
		var err error
		removed, err = txRepo.DeleteByPosition(ctx, owner, pos)
		return err
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// FilterBySubject returns assignments whose subject equals the query
// under case folding. Exact match only; "Math" does not match
// "Mathematics".
func (s *assignmentService) FilterBySubject(ctx context.Context, owner, subject string) ([]*domain.Assignment, error) {
	list, err := s.assignments.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(strings.TrimSpace(subject))
	var out []*domain.Assignment
	for _, a := range list {
		if strings.ToLower(a.Subject) == want {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *assignmentService) Stats(ctx context.Context, owner string) (*Stats, error) {
	list, err := s.assignments.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	st := &Stats{Total: len(list)}
	if st.Total == 0 {
		return st, nil
	}
	var diffSum, riskSum int
	for _, a := range list {
		diffSum += a.Difficulty
		riskSum += a.Risk
	}
	st.AvgDifficulty = float64(diffSum) / float64(st.Total)
	st.AvgRisk = float64(riskSum) / float64(st.Total)
	return st, nil
}

func (s *assignmentService) Owners(ctx context.Context) ([]string, error) {
	return s.assignments.Owners(ctx)
}
