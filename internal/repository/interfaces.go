package repository

import (
	"context"
	"time"

	"github.com/avikbasu/docket/internal/domain"
	"github.com/avikbasu/docket/internal/schedule"
)

type CaseRepo interface {
	Create(ctx context.Context, c *domain.Case) error
	GetByID(ctx context.Context, id string) (*domain.Case, error)
	GetByNumber(ctx context.Context, owner, caseNumber string) (*domain.Case, error)
	ListByOwner(ctx context.Context, owner string) ([]*domain.Case, error)
	Update(ctx context.Context, c *domain.Case) error
	// UpdateNextHearing persists the derived next-hearing value. It is the
	// propagator's write path; nothing else mutates the field.
	UpdateNextHearing(ctx context.Context, caseID string, next *time.Time, now time.Time) error
	Delete(ctx context.Context, id string) error
}

type HearingRepo interface {
	Create(ctx context.Context, h *domain.Hearing) error
	GetByID(ctx context.Context, id string) (*domain.Hearing, error)
	ListByCase(ctx context.Context, caseID, owner string) ([]*domain.Hearing, error)
	ListByOwner(ctx context.Context, owner string) ([]*domain.Hearing, error)
	// ListConflictCandidates returns the owner's scheduled hearings joined
	// with their case numbers, the input shape for conflict detection.
	ListConflictCandidates(ctx context.Context, owner string) ([]schedule.Candidate, error)
	Update(ctx context.Context, h *domain.Hearing) error
	Delete(ctx context.Context, id string) error
}

type ActivityRepo interface {
	Create(ctx context.Context, e *domain.ActivityEntry) error
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*domain.ActivityEntry, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.ActivityEntry, error)
}
