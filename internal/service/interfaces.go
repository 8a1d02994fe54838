package service

import (
	"context"
	"time"

	"github.com/avikbasu/docket/internal/contract"
	"github.com/avikbasu/docket/internal/domain"
)

type HearingService interface {
	// Schedule creates a hearing, or updates one when req.HearingID is set.
	// On detected conflicts without a valid override it returns a
	// *contract.ScheduleError with code CONFLICT carrying the conflict set.
	Schedule(ctx context.Context, req contract.ScheduleRequest) (*domain.Hearing, error)
	// CheckConflict is the read-only probe over the owner's calendar.
	CheckConflict(ctx context.Context, req contract.CheckConflictRequest) (*contract.CheckConflictResponse, error)
	GetByID(ctx context.Context, id string) (*domain.Hearing, error)
	ListByCase(ctx context.Context, caseID, owner string) ([]*domain.Hearing, error)
	ListByOwner(ctx context.Context, owner string) ([]*domain.Hearing, error)
	// SetStatus moves a hearing out of the scheduled state
	// (completed, adjourned or cancelled).
	SetStatus(ctx context.Context, id, owner string, status domain.HearingStatus) (*domain.Hearing, error)
	Delete(ctx context.Context, id, owner string) error
}

type CaseService interface {
	Create(ctx context.Context, c *domain.Case) error
	GetByID(ctx context.Context, id string) (*domain.Case, error)
	GetByNumber(ctx context.Context, owner, caseNumber string) (*domain.Case, error)
	ListByOwner(ctx context.Context, owner string) ([]*domain.Case, error)
	Update(ctx context.Context, c *domain.Case) error
	Delete(ctx context.Context, id string) error
	// RecomputeNextHearing re-derives the case's next-hearing value from
	// its full hearing set and persists it. Idempotent.
	RecomputeNextHearing(ctx context.Context, caseID, owner string) (*time.Time, error)
}

type ActivityService interface {
	Record(ctx context.Context, e *domain.ActivityEntry) error
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*domain.ActivityEntry, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.ActivityEntry, error)
}
