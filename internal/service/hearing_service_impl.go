package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avikbasu/docket/internal/contract"
	"github.com/avikbasu/docket/internal/db"
	"github.com/avikbasu/docket/internal/domain"
	"github.com/avikbasu/docket/internal/repository"
	"github.com/avikbasu/docket/internal/schedule"
	"github.com/google/uuid"
)

type hearingService struct {
	hearings repository.HearingRepo
	cases    repository.CaseRepo
	activity repository.ActivityRepo
	uow      db.UnitOfWork
	locks    *ownerLocks
	match    schedule.ScopeMatcher
	observer UseCaseObserver
	clock    func() time.Time
}

// HearingOption customizes a HearingService.
type HearingOption func(*hearingService)

// WithClock pins the service clock, keeping past/future comparisons
// deterministic in tests.
func WithClock(clock func() time.Time) HearingOption {
	return func(s *hearingService) { s.clock = clock }
}

// WithScopeMatcher swaps the resource-scope contention rule.
func WithScopeMatcher(m schedule.ScopeMatcher) HearingOption {
	return func(s *hearingService) { s.match = m }
}

// WithObserver attaches use-case telemetry.
func WithObserver(obs UseCaseObserver) HearingOption {
	return func(s *hearingService) { s.observer = useCaseObserverOrNoop([]UseCaseObserver{obs}) }
}

func NewHearingService(hearings repository.HearingRepo, cases repository.CaseRepo, activity repository.ActivityRepo, uow db.UnitOfWork, opts ...HearingOption) HearingService {
	s := &hearingService{
		hearings: hearings,
		cases:    cases,
		activity: activity,
		uow:      uow,
		locks:    newOwnerLocks(),
		match:    schedule.AnyPairMatch,
		observer: NoopUseCaseObserver{},
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *hearingService) Schedule(ctx context.Context, req contract.ScheduleRequest) (*domain.Hearing, error) {
	started := time.Now()
	now := nowOrDefault(req.Now, s.clock)

	if req.Owner == "" {
		return nil, validationErr("owner is required")
	}
	actor := req.ActorID
	if actor == "" {
		actor = req.Owner
	}

	// Serialize check+write per owner: the conflict re-check below runs
	// against committed state, so of two concurrent overlapping requests
	// the second observes the first's hearing and fails with CONFLICT.
	lock := s.locks.acquire(req.Owner)
	lock.Lock()
	defer lock.Unlock()

	var written *domain.Hearing
	var overrideApplied *domain.ConflictOverride
	creating := req.HearingID == ""

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txHearings := repository.NewSQLiteHearingRepo(tx)
		txCases := repository.NewSQLiteCaseRepo(tx)

		var existing *domain.Hearing
		if !creating {
			h, err := txHearings.GetByID(ctx, req.HearingID)
			if errors.Is(err, repository.ErrNotFound) {
				return validationErr("hearing %s not found", req.HearingID)
			}
			if err != nil {
				return err
			}
			if h.Owner != req.Owner {
				return validationErr("hearing %s does not belong to %s", req.HearingID, req.Owner)
			}
			existing = h
		}

		draft, err := mergeDraft(req, existing)
		if err != nil {
			return err
		}

		kase, err := txCases.GetByID(ctx, draft.CaseID)
		if errors.Is(err, repository.ErrNotFound) {
			return validationErr("case %s not found", draft.CaseID)
		}
		if err != nil {
			return err
		}
		if kase.Owner != req.Owner {
			return validationErr("case %s does not belong to %s", draft.CaseID, req.Owner)
		}

		start, end, err := schedule.ResolveWindow(draft.HearingDate, draft.HearingTime, draft.Timezone, draft.DurationMin)
		if err != nil {
			return validationErr("%v", err)
		}
		draft.StartAt, draft.EndAt = start, end
		if draft.DurationMin == 0 {
			draft.DurationMin = schedule.DefaultDurationMin
		}

		// An override belongs to the write that needed it. Drop any carried
		// over from the stored hearing so a move to a free slot doesn't keep
		// a stale one; the check below re-attaches it when still required.
		draft.Override = nil

		// Only scheduled hearings can collide; completed, adjourned and
		// cancelled ones neither block nor get blocked.
		if draft.Status == domain.HearingScheduled {
			candidates, err := txHearings.ListConflictCandidates(ctx, req.Owner)
			if err != nil {
				return err
			}
			conflicts := schedule.FindConflicts(start, end, draft.ResourceScope, candidates, draft.ID, s.match)
			if len(conflicts) > 0 {
				if req.Override == nil {
					return &contract.ScheduleError{
						Code:      contract.ErrConflict,
						Message:   fmt.Sprintf("%d conflicting hearing(s) on %s's calendar", len(conflicts), req.Owner),
						Conflicts: conflicts,
					}
				}
				override, err := schedule.BuildOverride(conflicts, req.Override.Reason, actor, now)
				if errors.Is(err, schedule.ErrReasonRequired) {
					return validationErr("Override reason is required")
				}
				if err != nil {
					return validationErr("%v", err)
				}
				draft.Override = override
				overrideApplied = override
			}
		}

		if creating {
			if draft.ID == "" {
				draft.ID = uuid.New().String()
			}
			draft.CreatedAt = now
			draft.UpdatedAt = now
			if err := txHearings.Create(ctx, draft); err != nil {
				return err
			}
		} else {
			draft.UpdatedAt = now
			if err := txHearings.Update(ctx, draft); err != nil {
				return err
			}
		}
		written = draft
		return nil
	})
	if err != nil {
		var schedErr *contract.ScheduleError
		if !errors.As(err, &schedErr) {
			schedErr = internalErr()
		}
		s.observe(ctx, "hearing_schedule", started, err, map[string]any{"owner": req.Owner, "create": creating})
		return nil, schedErr
	}

	action := domain.ActionHearingUpdated
	if creating {
		action = domain.ActionHearingScheduled
	}
	s.audit(ctx, actor, action, written.ID, fmt.Sprintf("case %s at %s", written.CaseID, written.StartAt.UTC().Format(time.RFC3339)), now)
	if overrideApplied != nil {
		s.audit(ctx, actor, domain.ActionConflictOverride, written.ID,
			fmt.Sprintf("overrode %d conflict(s): %s", len(overrideApplied.ConflictingHearings), overrideApplied.Reason), now)
	}

	s.propagate(ctx, written.CaseID, req.Owner, now)
	s.observe(ctx, "hearing_schedule", started, nil, map[string]any{"owner": req.Owner, "create": creating, "override": overrideApplied != nil})
	return written, nil
}

func (s *hearingService) CheckConflict(ctx context.Context, req contract.CheckConflictRequest) (*contract.CheckConflictResponse, error) {
	started := time.Now()

	if req.Owner == "" {
		return nil, validationErr("owner is required")
	}
	if !req.StartAt.Before(req.EndAt) {
		return nil, validationErr("start must precede end")
	}

	candidates, err := s.hearings.ListConflictCandidates(ctx, req.Owner)
	if err != nil {
		s.observe(ctx, "conflict_check", started, err, map[string]any{"owner": req.Owner})
		return nil, internalErr()
	}

	conflicts := schedule.FindConflicts(req.StartAt, req.EndAt, req.ResourceScope, candidates, req.ExcludeHearingID, s.match)
	s.observe(ctx, "conflict_check", started, nil, map[string]any{"owner": req.Owner, "conflicts": len(conflicts)})
	return &contract.CheckConflictResponse{
		HasConflict: len(conflicts) > 0,
		Conflicts:   conflicts,
	}, nil
}

func (s *hearingService) GetByID(ctx context.Context, id string) (*domain.Hearing, error) {
	return s.hearings.GetByID(ctx, id)
}

func (s *hearingService) ListByCase(ctx context.Context, caseID, owner string) ([]*domain.Hearing, error) {
	return s.hearings.ListByCase(ctx, caseID, owner)
}

func (s *hearingService) ListByOwner(ctx context.Context, owner string) ([]*domain.Hearing, error) {
	return s.hearings.ListByOwner(ctx, owner)
}

func (s *hearingService) SetStatus(ctx context.Context, id, owner string, status domain.HearingStatus) (*domain.Hearing, error) {
	started := time.Now()
	now := s.clock().UTC()

	switch status {
	case domain.HearingCompleted, domain.HearingAdjourned, domain.HearingCancelled:
	default:
		return nil, validationErr("cannot transition a hearing to %q", status)
	}

	h, err := s.hearings.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, validationErr("hearing %s not found", id)
	}
	if err != nil {
		return nil, internalErr()
	}
	if h.Owner != owner {
		return nil, validationErr("hearing %s does not belong to %s", id, owner)
	}
	if h.Status != domain.HearingScheduled {
		return nil, validationErr("hearing %s is already %s", id, h.Status)
	}

	h.Status = status
	h.UpdatedAt = now
	if err := s.hearings.Update(ctx, h); err != nil {
		s.observe(ctx, "hearing_set_status", started, err, map[string]any{"owner": owner, "status": string(status)})
		return nil, internalErr()
	}

	s.audit(ctx, owner, domain.ActionHearingUpdated, h.ID, fmt.Sprintf("status -> %s", status), now)
	s.propagate(ctx, h.CaseID, owner, now)
	s.observe(ctx, "hearing_set_status", started, nil, map[string]any{"owner": owner, "status": string(status)})
	return h, nil
}

func (s *hearingService) Delete(ctx context.Context, id, owner string) error {
	started := time.Now()
	now := s.clock().UTC()

	h, err := s.hearings.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return validationErr("hearing %s not found", id)
	}
	if err != nil {
		return internalErr()
	}
	if h.Owner != owner {
		return validationErr("hearing %s does not belong to %s", id, owner)
	}

	if err := s.hearings.Delete(ctx, id); err != nil {
		s.observe(ctx, "hearing_delete", started, err, map[string]any{"owner": owner})
		return internalErr()
	}

	s.audit(ctx, owner, domain.ActionHearingDeleted, id, fmt.Sprintf("case %s", h.CaseID), now)
	s.propagate(ctx, h.CaseID, owner, now)
	s.observe(ctx, "hearing_delete", started, nil, map[string]any{"owner": owner})
	return nil
}

// audit writes one activity entry. Best-effort: audit is observability, not
// a correctness invariant, so failures are logged and never block the write.
func (s *hearingService) audit(ctx context.Context, actor, action, hearingID, detail string, now time.Time) {
	entry := &domain.ActivityEntry{
		ID:         uuid.New().String(),
		Actor:      actor,
		Action:     action,
		EntityType: "hearing",
		EntityID:   hearingID,
		Detail:     detail,
		CreatedAt:  now,
	}
	if err := s.activity.Create(ctx, entry); err != nil {
		s.observe(ctx, "audit_write", time.Now(), err, map[string]any{"action": action, "hearing": hearingID})
	}
}

// propagate recomputes the owning case's next-hearing value after a hearing
// mutation. The hearing write has already committed; recompute failures are
// logged, never surfaced to the caller.
func (s *hearingService) propagate(ctx context.Context, caseID, owner string, now time.Time) {
	started := time.Now()
	next, err := recomputeNextHearing(ctx, s.hearings, s.cases, caseID, owner, now)
	fields := map[string]any{"case": caseID}
	if err == nil && next != nil {
		fields["next_hearing"] = next.UTC().Format(time.RFC3339)
	}
	s.observe(ctx, "next_hearing_recompute", started, err, fields)
}

func (s *hearingService) observe(ctx context.Context, name string, started time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
}

// mergeDraft builds the hearing to be written from the request, overlaying
// provided fields onto the existing hearing for updates.
func mergeDraft(req contract.ScheduleRequest, existing *domain.Hearing) (*domain.Hearing, error) {
	if existing == nil && req.CaseID == "" {
		return nil, validationErr("case is required")
	}
	draft := &domain.Hearing{
		ID:       req.HearingID,
		CaseID:   req.CaseID,
		Owner:    req.Owner,
		Status:   domain.HearingScheduled,
		Timezone: "UTC",
	}
	if existing != nil {
		clone := *existing
		draft = &clone
		if req.CaseID != "" && req.CaseID != existing.CaseID {
			return nil, validationErr("hearing %s cannot move to another case", existing.ID)
		}
	}

	if req.HearingDate != "" {
		draft.HearingDate = req.HearingDate
	}
	if req.HearingTime != "" {
		draft.HearingTime = req.HearingTime
	}
	if req.Timezone != "" {
		draft.Timezone = req.Timezone
	}
	if req.DurationMin != 0 {
		draft.DurationMin = req.DurationMin
	}
	if req.ResourceScope != nil {
		draft.ResourceScope = req.ResourceScope
	}
	if req.NextHearingDate != "" {
		draft.NextHearingDate = req.NextHearingDate
	}
	if req.NextHearingTime != "" {
		draft.NextHearingTime = req.NextHearingTime
	}
	if req.Status != "" {
		if !domain.ValidHearingStatuses[req.Status] {
			return nil, validationErr("invalid hearing status %q", req.Status)
		}
		draft.Status = domain.HearingStatus(req.Status)
	}
	return draft, nil
}
