package models

import (
	"errors"

	"gorm.io/gorm"
)

type ActivitiesRepository struct {
	db *gorm.DB
}

// ErrActivityNotFound is returned when no activity carries the requested NACE code.
var ErrActivityNotFound = errors.New("activity not found")

func NewActivitiesRepository(db *gorm.DB) *ActivitiesRepository {
	return &ActivitiesRepository{
		db: db,
	}
}

func (r *ActivitiesRepository) GetActivities(offset, limit int) ([]Activity, error) {
	var activities []Activity
	if err := r.db.
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *ActivitiesRepository) GetByNaceCode(code string) (*Activity, error) {
	var activity Activity
	if err := r.db.
		Where("nace_code = ?", code).
		First(&activity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return &activity, nil
}

func (r *ActivitiesRepository) NaceCodeExists(code string) (bool, error) {
	var count int64
	if err := r.db.Model(&Activity{}).
		Where("nace_code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ActivitiesRepository) CreateActivity(activity *Activity) error {
	return r.db.Create(activity).Error
}
