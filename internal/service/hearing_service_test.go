package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/avikbasu/docket/internal/contract"
	"github.com/avikbasu/docket/internal/domain"
	"github.com/avikbasu/docket/internal/repository"
	"github.com/avikbasu/docket/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNow pins "current time" well before the scheduled fixtures so
// past/future filtering is deterministic.
var testNow = time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)

type engine struct {
	hearings HearingService
	cases    CaseService
	caseRepo repository.CaseRepo
	hearRepo repository.HearingRepo
	actRepo  repository.ActivityRepo
	db       *sql.DB
}

func newTestEngine(t *testing.T) *engine {
	t.Helper()
	database := testutil.NewFileTestDB(t)

	caseRepo := repository.NewSQLiteCaseRepo(database)
	hearRepo := repository.NewSQLiteHearingRepo(database)
	actRepo := repository.NewSQLiteActivityRepo(database)
	uow := testutil.NewTestUoW(database)

	clock := func() time.Time { return testNow }
	return &engine{
		hearings: NewHearingService(hearRepo, caseRepo, actRepo, uow, WithClock(clock)),
		cases:    NewCaseService(caseRepo, hearRepo, WithCaseClock(clock)),
		caseRepo: caseRepo,
		hearRepo: hearRepo,
		actRepo:  actRepo,
		db:       database,
	}
}

func (e *engine) seedCase(t *testing.T, owner string) *domain.Case {
	t.Helper()
	c := testutil.NewTestCase(owner)
	require.NoError(t, e.caseRepo.Create(context.Background(), c))
	return c
}

func kolkataRequest(caseID, owner, hearingTime string) contract.ScheduleRequest {
	req := contract.NewScheduleRequest(caseID, owner)
	req.HearingDate = "2025-06-01"
	req.HearingTime = hearingTime
	req.Timezone = "Asia/Kolkata"
	req.Now = &testNow
	return req
}

func TestSchedule_CreateDerivesInstants(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")

	h, err := e.hearings.Schedule(context.Background(), kolkataRequest(c.ID, "u1", "10:00"))
	require.NoError(t, err)

	assert.NotEmpty(t, h.ID)
	assert.Equal(t, domain.HearingScheduled, h.Status)
	assert.Equal(t, time.Date(2025, 6, 1, 4, 30, 0, 0, time.UTC), h.StartAt.UTC())
	assert.Equal(t, time.Date(2025, 6, 1, 5, 30, 0, 0, time.UTC), h.EndAt.UTC())

	got, err := e.hearRepo.GetByID(context.Background(), h.ID)
	require.NoError(t, err)
	assert.True(t, got.StartAt.Equal(h.StartAt))
}

func TestSchedule_PropagatesNextHearing(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")

	h, err := e.hearings.Schedule(context.Background(), kolkataRequest(c.ID, "u1", "10:00"))
	require.NoError(t, err)

	got, err := e.caseRepo.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.NextHearing)
	assert.True(t, got.NextHearing.Equal(h.StartAt))
}

func TestSchedule_ConflictWithoutOverride(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	winner, err := e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "10:00"))
	require.NoError(t, err)

	_, err = e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "10:30"))
	var schedErr *contract.ScheduleError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, contract.ErrConflict, schedErr.Code)
	require.Len(t, schedErr.Conflicts, 1)
	assert.Equal(t, winner.ID, schedErr.Conflicts[0].HearingID)
	assert.Equal(t, c.CaseNumber, schedErr.Conflicts[0].CaseNumber)
	assert.Equal(t, domain.ReasonTimeOverlap, schedErr.Conflicts[0].Reason)

	// Rejected request must leave no partial state behind.
	hearings, err := e.hearRepo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, hearings, 1)
}

func TestSchedule_OverrideSucceeds(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	a, err := e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "10:00"))
	require.NoError(t, err)

	probe, err := e.hearings.CheckConflict(ctx, contract.CheckConflictRequest{
		Owner:   "u1",
		StartAt: time.Date(2025, 6, 1, 5, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, probe.HasConflict)
	require.Len(t, probe.Conflicts, 1)
	assert.Equal(t, a.ID, probe.Conflicts[0].HearingID)

	req := kolkataRequest(c.ID, "u1", "10:30")
	req.Override = &contract.OverrideRequest{Reason: "Emergency hearing"}
	b, err := e.hearings.Schedule(ctx, req)
	require.NoError(t, err)

	require.NotNil(t, b.Override)
	assert.True(t, b.Override.Allowed)
	assert.Equal(t, "Emergency hearing", b.Override.Reason)
	assert.Equal(t, "u1", b.Override.OverriddenBy)
	assert.Equal(t, []string{a.ID}, b.Override.ConflictingHearings)

	// One audit entry summarizing the override.
	entries, err := e.actRepo.ListByEntity(ctx, "hearing", b.ID)
	require.NoError(t, err)
	var overrideEntries int
	for _, entry := range entries {
		if entry.Action == domain.ActionConflictOverride {
			overrideEntries++
			assert.Contains(t, entry.Detail, "1 conflict(s)")
			assert.Contains(t, entry.Detail, "Emergency hearing")
		}
	}
	assert.Equal(t, 1, overrideEntries)
}

func TestSchedule_OverrideReasonRequired(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	_, err := e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "10:00"))
	require.NoError(t, err)

	req := kolkataRequest(c.ID, "u1", "10:30")
	req.Override = &contract.OverrideRequest{Reason: "   "}
	_, err = e.hearings.Schedule(ctx, req)

	var schedErr *contract.ScheduleError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, contract.ErrValidation, schedErr.Code)
	assert.Equal(t, "Override reason is required", schedErr.Message)
}

func TestSchedule_OverrideWithoutConflictIsUnmarked(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")

	req := kolkataRequest(c.ID, "u1", "10:00")
	req.Override = &contract.OverrideRequest{Reason: "paranoia"}
	h, err := e.hearings.Schedule(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, h.Override, "override on a conflict-free write is a no-op")
}

func TestSchedule_UpdateToFreeSlotClearsOverride(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	_, err := e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "10:00"))
	require.NoError(t, err)

	req := kolkataRequest(c.ID, "u1", "10:30")
	req.Override = &contract.OverrideRequest{Reason: "Emergency hearing"}
	b, err := e.hearings.Schedule(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, b.Override)

	// Moved to a free slot, the old override no longer describes anything.
	move := kolkataRequest(c.ID, "u1", "16:00")
	move.HearingID = b.ID
	moved, err := e.hearings.Schedule(ctx, move)
	require.NoError(t, err)
	assert.Nil(t, moved.Override)

	got, err := e.hearRepo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Override)
}

func TestSchedule_StaleOverrideDoesNotBypassNewConflict(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	a, err := e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "10:00"))
	require.NoError(t, err)

	req := kolkataRequest(c.ID, "u1", "16:00")
	req.Override = &contract.OverrideRequest{Reason: "Emergency hearing"}
	b, err := e.hearings.Schedule(ctx, req)
	require.NoError(t, err)
	assert.Nil(t, b.Override, "no conflict at 16:00, nothing to override")

	// Moving back onto A without a fresh override must conflict.
	move := kolkataRequest(c.ID, "u1", "10:30")
	move.HearingID = b.ID
	_, err = e.hearings.Schedule(ctx, move)
	var schedErr *contract.ScheduleError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, contract.ErrConflict, schedErr.Code)
	require.Len(t, schedErr.Conflicts, 1)
	assert.Equal(t, a.ID, schedErr.Conflicts[0].HearingID)
}

func TestSchedule_UpdateExcludesSelf(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	h, err := e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "10:00"))
	require.NoError(t, err)

	// Nudging a hearing within its own slot must not self-conflict.
	req := kolkataRequest(c.ID, "u1", "10:15")
	req.HearingID = h.ID
	updated, err := e.hearings.Schedule(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, h.ID, updated.ID)
	assert.Equal(t, time.Date(2025, 6, 1, 4, 45, 0, 0, time.UTC), updated.StartAt.UTC())
}

func TestSchedule_ScopeNarrowing(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	first := kolkataRequest(c.ID, "u1", "10:00")
	first.ResourceScope = map[string]string{"court": "high-court"}
	a, err := e.hearings.Schedule(ctx, first)
	require.NoError(t, err)

	// Same time, different court: both scoped, nothing shared, no conflict.
	second := kolkataRequest(c.ID, "u1", "10:00")
	second.ResourceScope = map[string]string{"court": "district-court"}
	_, err = e.hearings.Schedule(ctx, second)
	require.NoError(t, err)

	// Same court: the more specific double-booking reason.
	third := kolkataRequest(c.ID, "u1", "10:30")
	third.ResourceScope = map[string]string{"court": "high-court"}
	_, err = e.hearings.Schedule(ctx, third)
	var schedErr *contract.ScheduleError
	require.ErrorAs(t, err, &schedErr)
	require.Len(t, schedErr.Conflicts, 1)
	assert.Equal(t, a.ID, schedErr.Conflicts[0].HearingID)
	assert.Equal(t, domain.ReasonResourceClash, schedErr.Conflicts[0].Reason)
}

func TestSchedule_ValidationFailures(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*contract.ScheduleRequest)
	}{
		{"missing owner", func(r *contract.ScheduleRequest) { r.Owner = "" }},
		{"missing case", func(r *contract.ScheduleRequest) { r.CaseID = "" }},
		{"unknown case", func(r *contract.ScheduleRequest) { r.CaseID = "nope" }},
		{"bad date", func(r *contract.ScheduleRequest) { r.HearingDate = "June 1st" }},
		{"bad time", func(r *contract.ScheduleRequest) { r.HearingTime = "sometime" }},
		{"bad zone", func(r *contract.ScheduleRequest) { r.Timezone = "Mars/Olympus" }},
		{"negative duration", func(r *contract.ScheduleRequest) { r.DurationMin = -15 }},
		{"bad status", func(r *contract.ScheduleRequest) { r.Status = "pending" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := kolkataRequest(c.ID, "u1", "10:00")
			tt.mutate(&req)
			_, err := e.hearings.Schedule(ctx, req)
			var schedErr *contract.ScheduleError
			require.ErrorAs(t, err, &schedErr)
			assert.Equal(t, contract.ErrValidation, schedErr.Code)
		})
	}
}

func TestSchedule_OwnerMismatchRejected(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	req := kolkataRequest(c.ID, "u2", "10:00")
	_, err := e.hearings.Schedule(ctx, req)
	var schedErr *contract.ScheduleError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, contract.ErrValidation, schedErr.Code)
}

func TestSchedule_NonScheduledSkipsConflictCheck(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	_, err := e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "10:00"))
	require.NoError(t, err)

	// Recording an already-completed hearing in the same slot is not a conflict.
	req := kolkataRequest(c.ID, "u1", "10:30")
	req.Status = string(domain.HearingCompleted)
	h, err := e.hearings.Schedule(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, domain.HearingCompleted, h.Status)
}

func TestSetStatus_Transitions(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	h, err := e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "10:00"))
	require.NoError(t, err)

	updated, err := e.hearings.SetStatus(ctx, h.ID, "u1", domain.HearingAdjourned)
	require.NoError(t, err)
	assert.Equal(t, domain.HearingAdjourned, updated.Status)

	// Terminal-ish: no second transition.
	_, err = e.hearings.SetStatus(ctx, h.ID, "u1", domain.HearingCompleted)
	var schedErr *contract.ScheduleError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, contract.ErrValidation, schedErr.Code)

	// scheduled is not a transition target.
	h2, err := e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "14:00"))
	require.NoError(t, err)
	_, err = e.hearings.SetStatus(ctx, h2.ID, "u1", domain.HearingScheduled)
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, contract.ErrValidation, schedErr.Code)
}

func TestDelete_RemovesHearing(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	h, err := e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "10:00"))
	require.NoError(t, err)

	require.NoError(t, e.hearings.Delete(ctx, h.ID, "u1"))

	_, err = e.hearRepo.GetByID(ctx, h.ID)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestDelete_OwnerMismatchRejected(t *testing.T) {
	e := newTestEngine(t)
	c := e.seedCase(t, "u1")
	ctx := context.Background()

	h, err := e.hearings.Schedule(ctx, kolkataRequest(c.ID, "u1", "10:00"))
	require.NoError(t, err)

	err = e.hearings.Delete(ctx, h.ID, "u2")
	var schedErr *contract.ScheduleError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, contract.ErrValidation, schedErr.Code)
}

func TestCheckConflict_Validation(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	_, err := e.hearings.CheckConflict(ctx, contract.CheckConflictRequest{
		Owner:   "",
		StartAt: testNow,
		EndAt:   testNow.Add(time.Hour),
	})
	var schedErr *contract.ScheduleError
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, contract.ErrValidation, schedErr.Code)

	_, err = e.hearings.CheckConflict(ctx, contract.CheckConflictRequest{
		Owner:   "u1",
		StartAt: testNow.Add(time.Hour),
		EndAt:   testNow,
	})
	require.ErrorAs(t, err, &schedErr)
	assert.Equal(t, contract.ErrValidation, schedErr.Code)
}

func TestCheckConflict_NoConflicts(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	resp, err := e.hearings.CheckConflict(ctx, contract.CheckConflictRequest{
		Owner:   "u1",
		StartAt: testNow,
		EndAt:   testNow.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.False(t, resp.HasConflict)
	assert.Empty(t, resp.Conflicts)
}
