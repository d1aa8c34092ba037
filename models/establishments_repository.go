package models

import (
	"errors"

	"gorm.io/gorm"
)

type EstablishmentsRepository struct {
	db *gorm.DB
}

// ErrEstablishmentNotFound is returned when an establishment is not found.
var ErrEstablishmentNotFound = errors.New("establishment not found")

// editableEstablishmentColumns are rewritten on a full replace.
var editableEstablishmentColumns = []string{"name", "street", "number", "postcode", "city", "country"}

func NewEstablishmentsRepository(db *gorm.DB) *EstablishmentsRepository {
	return &EstablishmentsRepository{
		db: db,
	}
}

func (r *EstablishmentsRepository) GetByCompany(companyID uint) ([]Establishment, error) {
	establishments := []Establishment{}
	if err := r.db.
		Where("company_id = ?", companyID).
		Order("id").
		Find(&establishments).Error; err != nil {
		return nil, err
	}
	return establishments, nil
}

func (r *EstablishmentsRepository) GetByID(id uint) (*Establishment, error) {
	var establishment Establishment
	if err := r.db.Where("id = ?", id).First(&establishment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEstablishmentNotFound
		}
		return nil, err
	}
	return &establishment, nil
}

func (r *EstablishmentsRepository) EstablishmentNumberExists(number string) (bool, error) {
	var count int64
	if err := r.db.Model(&Establishment{}).
		Where("establishment_number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *EstablishmentsRepository) CreateEstablishment(establishment *Establishment) error {
	return r.db.Create(establishment).Error
}

// ReplaceEstablishment overwrites every editable column, including the ones
// left nil on the given value. The owning company and the registry number are kept.
func (r *EstablishmentsRepository) ReplaceEstablishment(establishment *Establishment) error {
	res := r.db.Model(&Establishment{}).
		Where("id = ?", establishment.ID).
		Select(editableEstablishmentColumns).
		Updates(establishment)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEstablishmentNotFound
	}
	return nil
}

func (r *EstablishmentsRepository) DeleteEstablishment(id uint) error {
	res := r.db.Delete(&Establishment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEstablishmentNotFound
	}
	return nil
}
