package service

import (
	"context"
	"time"

	"github.com/avikbasu/docket/internal/domain"
	"github.com/avikbasu/docket/internal/repository"
	"github.com/google/uuid"
)

type activityService struct {
	activity repository.ActivityRepo
}

func NewActivityService(activity repository.ActivityRepo) ActivityService {
	return &activityService{activity: activity}
}

func (s *activityService) Record(ctx context.Context, e *domain.ActivityEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return s.activity.Create(ctx, e)
}

func (s *activityService) ListByEntity(ctx context.Context, entityType, entityID string) ([]*domain.ActivityEntry, error) {
	return s.activity.ListByEntity(ctx, entityType, entityID)
}

func (s *activityService) ListRecent(ctx context.Context, limit int) ([]*domain.ActivityEntry, error) {
	return s.activity.ListRecent(ctx, limit)
}
