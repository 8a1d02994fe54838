package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avikbasu/docket/internal/contract"
	"github.com/avikbasu/docket/internal/repository"
	"github.com/avikbasu/docket/internal/schedule"
)

// nowOrDefault prefers a request-pinned clock value over the service clock.
func nowOrDefault(pinned *time.Time, clock func() time.Time) time.Time {
	if pinned != nil {
		return *pinned
	}
	return clock().UTC()
}

func validationErr(format string, args ...any) *contract.ScheduleError {
	return &contract.ScheduleError{
		Code:    contract.ErrValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// internalErr hides persistence detail behind a generic, retryable message.
// The cause goes to the observer log, not to the caller.
func internalErr() *contract.ScheduleError {
	return &contract.ScheduleError{
		Code:    contract.ErrInternal,
		Message: "internal error, safe to retry",
	}
}

// recomputeNextHearing re-derives and persists a case's next-hearing value
// from its full hearing set. Always re-reads state, so repeated or
// concurrent runs converge on the last committed hearing set.
func recomputeNextHearing(ctx context.Context, hearings repository.HearingRepo, cases repository.CaseRepo, caseID, owner string, now time.Time) (*time.Time, error) {
	hs, err := hearings.ListByCase(ctx, caseID, owner)
	if err != nil {
		return nil, fmt.Errorf("loading hearings for recompute: %w", err)
	}
	next := schedule.NextHearing(hs, now)
	if err := cases.UpdateNextHearing(ctx, caseID, next, now); err != nil {
		return nil, fmt.Errorf("persisting next hearing: %w", err)
	}
	return next, nil
}
