package service

import (
	"context"
	"fmt"

	"github.com/kbo-registry/kbo-crud/models"
	"github.com/kbo-registry/kbo-crud/storage"
)

// ActivityService exposes the imported activity codes read-only.
type ActivityService struct {
	store *storage.Store
}

func NewActivityService(store *storage.Store) *ActivityService {
	return &ActivityService{store: store}
}

func (s *ActivityService) ListActivities(ctx context.Context, skip, limit int) ([]models.Activity, error) {
	activities, err := models.NewActivitiesRepository(s.store.DB(ctx)).GetActivities(skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}
