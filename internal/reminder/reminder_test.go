package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/avetisov/deadlinebot/internal/domain"
	"github.com/avetisov/deadlinebot/internal/repository"
	"github.com/avetisov/deadlinebot/internal/service"
	"github.com/avetisov/deadlinebot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sweepToday = time.Date(2026, 8, 28, 8, 0, 0, 0, time.UTC)

type recordedMessage struct {
	Owner string
	Text  string
}

type recordingSender struct {
	mu   sync.Mutex
	sent []recordedMessage
	fail bool
}

func (s *recordingSender) Send(ctx context.Context, owner, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("transport down")
	}
	s.sent = append(s.sent, recordedMessage{Owner: owner, Text: text})
	return nil
}

func (s *recordingSender) messages() []recordedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedMessage(nil), s.sent...)
}

func newSweepFixture(t *testing.T) (context.Context, *Sweeper, *recordingSender, service.AssignmentService) {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteAssignmentRepo(database)
	now := func() time.Time { return sweepToday }
	svc := service.NewAssignmentService(repo, testutil.NewTestUoW(database), now)
	sender := &recordingSender{}
	sweeper := NewSweeper(svc, sender, time.Hour, 0, now, nil)
	return context.Background(), sweeper, sender, svc
}

func sweepDate(offset int) time.Time {
	return domain.CivilDate(sweepToday).AddDate(0, 0, offset)
}

func TestNewSweeper_IntervalAndDelayFallbacks(t *testing.T) {
	s := NewSweeper(nil, nil, 0, -time.Second, nil, nil)
	assert.Equal(t, DefaultInterval, s.interval)
	assert.Equal(t, DefaultInitialDelay, s.delay)

	// A zero delay is a valid setting: the first sweep runs immediately.
	s = NewSweeper(nil, nil, time.Hour, 0, nil, nil)
	assert.Equal(t, time.Hour, s.interval)
	assert.Equal(t, time.Duration(0), s.delay)
}

func TestSweepOnce_AggregatesPerOwner(t *testing.T) {
	ctx, sweeper, sender, svc := newSweepFixture(t)

	_, err := svc.Create(ctx, "u1", "Math", sweepDate(1), 2)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u1", "History", sweepDate(0), 3)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u1", "Far away", sweepDate(10), 3)
	require.NoError(t, err)

	require.NoError(t, sweeper.SweepOnce(ctx))

	msgs := sender.messages()
	require.Len(t, msgs, 1, "one aggregated notification per owner")
	assert.Equal(t, "u1", msgs[0].Owner)
	assert.Contains(t, msgs[0].Text, "Math")
	assert.Contains(t, msgs[0].Text, "History")
	assert.NotContains(t, msgs[0].Text, "Far away")
}

func TestSweepOnce_SilentSkipOutsideWindow(t *testing.T) {
	ctx, sweeper, sender, svc := newSweepFixture(t)

	_, err := svc.Create(ctx, "u1", "Next month", sweepDate(30), 1)
	require.NoError(t, err)

	require.NoError(t, sweeper.SweepOnce(ctx))
	assert.Empty(t, sender.messages(), "owners with nothing due get nothing")
}

func TestSweepOnce_ExcludesOverdue(t *testing.T) {
	ctx, _, sender, svc := newSweepFixture(t)

	// Created while still in the future, overdue by the time this
	// sweeper's clock runs.
	_, err := svc.Create(ctx, "u1", "Was due", sweepDate(1), 1)
	require.NoError(t, err)

	late := NewSweeper(svc, sender, time.Hour, 0, func() time.Time { return sweepToday.AddDate(0, 0, 3) }, nil)
	require.NoError(t, late.SweepOnce(ctx))
	assert.Empty(t, sender.messages())
}

func TestSweepOnce_NoDeduplicationAcrossSweeps(t *testing.T) {
	ctx, sweeper, sender, svc := newSweepFixture(t)

	_, err := svc.Create(ctx, "u1", "Math", sweepDate(1), 2)
	require.NoError(t, err)

	require.NoError(t, sweeper.SweepOnce(ctx))
	require.NoError(t, sweeper.SweepOnce(ctx))

	msgs := sender.messages()
	require.Len(t, msgs, 2, "the sweep is stateless; a rerun re-sends")
	assert.Equal(t, msgs[0].Text, msgs[1].Text)
}

func TestSweepOnce_MultipleOwners(t *testing.T) {
	ctx, sweeper, sender, svc := newSweepFixture(t)

	_, err := svc.Create(ctx, "u1", "Math", sweepDate(1), 2)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", "Biology", sweepDate(0), 4)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u3", "Nothing soon", sweepDate(20), 2)
	require.NoError(t, err)

	require.NoError(t, sweeper.SweepOnce(ctx))

	msgs := sender.messages()
	require.Len(t, msgs, 2)
	owners := map[string]bool{}
	for _, m := range msgs {
		owners[m.Owner] = true
	}
	assert.True(t, owners["u1"])
	assert.True(t, owners["u2"])
	assert.False(t, owners["u3"])
}

func TestSweepOnce_SendFailureDoesNotAbort(t *testing.T) {
	ctx, sweeper, sender, svc := newSweepFixture(t)
	sender.fail = true

	_, err := svc.Create(ctx, "u1", "Math", sweepDate(1), 2)
	require.NoError(t, err)

	assert.NoError(t, sweeper.SweepOnce(ctx), "a failed send is logged, not escalated")
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	_, sweeper, _, _ := newSweepFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
