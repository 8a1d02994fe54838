package service

import (
	"context"
	"time"

	"github.com/avikbasu/docket/internal/domain"
	"github.com/avikbasu/docket/internal/repository"
	"github.com/google/uuid"
)

type caseService struct {
	cases    repository.CaseRepo
	hearings repository.HearingRepo
	clock    func() time.Time
}

// CaseOption customizes a CaseService.
type CaseOption func(*caseService)

// WithCaseClock pins the service clock for deterministic recomputes.
func WithCaseClock(clock func() time.Time) CaseOption {
	return func(s *caseService) { s.clock = clock }
}

func NewCaseService(cases repository.CaseRepo, hearings repository.HearingRepo, opts ...CaseOption) CaseService {
	s := &caseService{cases: cases, hearings: hearings, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *caseService) Create(ctx context.Context, c *domain.Case) error {
	if c.Owner == "" {
		return validationErr("owner is required")
	}
	if c.CaseNumber == "" {
		return validationErr("case number is required")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := s.clock().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = domain.CaseOpen
	}
	return s.cases.Create(ctx, c)
}

func (s *caseService) GetByID(ctx context.Context, id string) (*domain.Case, error) {
	return s.cases.GetByID(ctx, id)
}

func (s *caseService) GetByNumber(ctx context.Context, owner, caseNumber string) (*domain.Case, error) {
	return s.cases.GetByNumber(ctx, owner, caseNumber)
}

func (s *caseService) ListByOwner(ctx context.Context, owner string) ([]*domain.Case, error) {
	return s.cases.ListByOwner(ctx, owner)
}

func (s *caseService) Update(ctx context.Context, c *domain.Case) error {
	c.UpdatedAt = s.clock().UTC()
	return s.cases.Update(ctx, c)
}

func (s *caseService) Delete(ctx context.Context, id string) error {
	return s.cases.Delete(ctx, id)
}

func (s *caseService) RecomputeNextHearing(ctx context.Context, caseID, owner string) (*time.Time, error) {
	return recomputeNextHearing(ctx, s.hearings, s.cases, caseID, owner, s.clock().UTC())
}
