package service

import (
	"context"
	"testing"
	"time"

	"github.com/avikbasu/docket/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextHearingOf(t *testing.T, e *engine, caseID string) *time.Time {
	t.Helper()
	c, err := e.caseRepo.GetByID(context.Background(), caseID)
	require.NoError(t, err)
	return c.NextHearing
}

func TestPropagation_EarliestFutureWins(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	_, err := e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "14:00"))
	require.NoError(t, err)

	earlier, err := e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "09:00"))
	require.NoError(t, err)

	next := nextHearingOf(t, e, c.ID)
	require.NotNil(t, next)
	assert.True(t, next.Equal(earlier.StartAt))
}

func TestPropagation_ClearedWhenLastFutureHearingDeleted(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	h, err := e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "10:00"))
	require.NoError(t, err)
	require.NotNil(t, nextHearingOf(t, e, c.ID))

	require.NoError(t, e.hearings.Delete(ctx, h.ID, "u1"))
	assert.Nil(t, nextHearingOf(t, e, c.ID))
}

func TestPropagation_CancellationDropsHearingFromProjection(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	early, err := e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "09:00"))
	require.NoError(t, err)
	late, err := e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "15:00"))
	require.NoError(t, err)

	_, err = e.hearings.SetStatus(ctx, early.ID, "u1", domain.HearingCancelled)
	require.NoError(t, err)

	next := nextHearingOf(t, e, c.ID)
	require.NotNil(t, next)
	assert.True(t, next.Equal(late.StartAt))
}

func TestPropagation_FollowUpDateOutranksStart(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	// An adjourned hearing with an explicit follow-up still projects it.
	req := kolkataRequest(c.ID, "u1", "10:00")
	req.NextHearingDate = "2025-05-20"
	req.NextHearingTime = "11:00"
	h, err := e.hearings.Schedule(ctx, req)
	require.NoError(t, err)
	_, err = e.hearings.SetStatus(ctx, h.ID, "u1", domain.HearingAdjourned)
	require.NoError(t, err)

	next := nextHearingOf(t, e, c.ID)
	require.NotNil(t, next)
	assert.Equal(t, time.Date(2025, 5, 20, 5, 30, 0, 0, time.UTC), next.UTC())
}

func TestRecomputeNextHearing_Idempotent(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	h, err := e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "10:00"))
	require.NoError(t, err)

	first, err := e.cases.RecomputeNextHearing(ctx, c.ID, "u1")
	require.NoError(t, err)
	second, err := e.cases.RecomputeNextHearing(ctx, c.ID, "u1")
	require.NoError(t, err)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.True(t, first.Equal(*second))
	assert.True(t, first.Equal(h.StartAt))
}

func TestRecomputeNextHearing_EmptyCase(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")

	next, err := e.cases.RecomputeNextHearing(context.Background(), c.ID, "u1")
	require.NoError(t, err)
	assert.Nil(t, next)
}
