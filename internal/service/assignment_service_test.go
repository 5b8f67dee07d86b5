package service

import (
	"context"
	"testing"
	"time"

	"github.com/avetisov/deadlinebot/internal/domain"
	"github.com/avetisov/deadlinebot/internal/repository"
	"github.com/avetisov/deadlinebot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var svcToday = time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (context.Context, AssignmentService) {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteAssignmentRepo(database)
	svc := NewAssignmentService(repo, testutil.NewTestUoW(database), func() time.Time { return svcToday })
	return context.Background(), svc
}

func svcDay(offset int) time.Time {
	return domain.CivilDate(svcToday).AddDate(0, 0, offset)
}

func TestAssignmentService_Create_DerivesRisk(t *testing.T) {
	ctx, svc := setupService(t)

	// One day of lead time against difficulty five: high risk.
	a, err := svc.Create(ctx, "u1", "Math", svcDay(1), 5)
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, domain.RiskHigh, a.Risk)

	// Plenty of lead time: low risk.
	b, err := svc.Create(ctx, "u1", "History", svcDay(60), 2)
	require.NoError(t, err)
	assert.Equal(t, domain.RiskLow, b.Risk)
}

func TestAssignmentService_Create_TrimsSubject(t *testing.T) {
	ctx, svc := setupService(t)

	a, err := svc.Create(ctx, "u1", "  Math  ", svcDay(10), 3)
	require.NoError(t, err)
	assert.Equal(t, "Math", a.Subject)
}

func TestAssignmentService_Create_RejectsInvalid(t *testing.T) {
	ctx, svc := setupService(t)

	_, err := svc.Create(ctx, "u1", "   ", svcDay(10), 3)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(ctx, "u1", "Math", svcDay(10), 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAssignmentService_UpdateByID_RecomputesRisk(t *testing.T) {
	ctx, svc := setupService(t)

	a, err := svc.Create(ctx, "u1", "Math", svcDay(60), 2)
	require.NoError(t, err)
	require.Equal(t, domain.RiskLow, a.Risk)

	updated, err := svc.UpdateByID(ctx, a.ID, "Math exam", svcDay(2), 4)
	require.NoError(t, err)
	assert.Equal(t, "Math exam", updated.Subject)
	assert.Equal(t, domain.RiskHigh, updated.Risk, "risk must follow the new deadline/difficulty")

	got, err := svc.GetByPosition(ctx, "u1", 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RiskHigh, got.Risk)
}

func TestAssignmentService_UpdateByID_NotFound(t *testing.T) {
	ctx, svc := setupService(t)

	_, err := svc.UpdateByID(ctx, "missing-id", "Math", svcDay(5), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAssignmentService_DeleteByPosition(t *testing.T) {
	ctx, svc := setupService(t)

	_, err := svc.Create(ctx, "u1", "Math", svcDay(1), 3)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u1", "History", svcDay(2), 3)
	require.NoError(t, err)

	removed, err := svc.DeleteByPosition(ctx, "u1", 1)
	require.NoError(t, err)
	assert.True(t, removed)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "History", list[0].Subject)

	removed, err = svc.DeleteByPosition(ctx, "u1", 9)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAssignmentService_FilterBySubject_ExactCaseInsensitive(t *testing.T) {
	ctx, svc := setupService(t)

	_, err := svc.Create(ctx, "u1", "Math", svcDay(1), 3)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u1", "Mathematics", svcDay(2), 3)
	require.NoError(t, err)

	got, err := svc.FilterBySubject(ctx, "u1", "math")
	require.NoError(t, err)
	require.Len(t, got, 1, "no substring matching")
	assert.Equal(t, "Math", got[0].Subject)

	got, err = svc.FilterBySubject(ctx, "u1", "chemistry")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAssignmentService_Stats(t *testing.T) {
	ctx, svc := setupService(t)

	empty, err := svc.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Total)

	_, err = svc.Create(ctx, "u1", "Math", svcDay(1), 5) // risk 5
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u1", "History", svcDay(60), 1) // risk 1
	require.NoError(t, err)

	st, err := svc.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, st.Total)
	assert.InDelta(t, 3.0, st.AvgDifficulty, 0.001)
	assert.InDelta(t, 3.0, st.AvgRisk, 0.001)
}
