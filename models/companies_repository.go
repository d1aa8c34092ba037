package models

import (
	"errors"

	"gorm.io/gorm"
)

type CompaniesRepository struct {
	db *gorm.DB
}

// ErrCompanyNotFound is returned when a company is not found.
var ErrCompanyNotFound = errors.New("company not found")

func NewCompaniesRepository(db *gorm.DB) *CompaniesRepository {
	return &CompaniesRepository{
		db: db,
	}
}

func orderedEstablishments(db *gorm.DB) *gorm.DB {
	return db.Order("establishments.id")
}

func (r *CompaniesRepository) GetCompanies(offset, limit int) ([]Company, error) {
	var companies []Company
	if err := r.db.
		Preload("Establishments", orderedEstablishments).
		Order("companies.id").
		Offset(offset).
		Limit(limit).
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *CompaniesRepository) GetByID(id uint) (*Company, error) {
	var company Company
	if err := r.db.
		Preload("Establishments", orderedEstablishments).
		Where("id = ?", id).
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err // Other DB error
	}
	return &company, nil
}

func (r *CompaniesRepository) GetByEnterpriseNumber(number string) (*Company, error) {
	var company Company
	if err := r.db.
		Where("enterprise_number = ?", number).
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompaniesRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&Company{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CompaniesRepository) EnterpriseNumberExists(number string) (bool, error) {
	var count int64
	if err := r.db.Model(&Company{}).
		Where("enterprise_number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CompaniesRepository) CreateCompany(company *Company) error {
	return r.db.Create(company).Error
}

// UpdateFields writes only the given columns. A nil value clears the column.
func (r *CompaniesRepository) UpdateFields(id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&Company{}).Where("id = ?", id).Updates(fields).Error
}

// DeleteCompany removes the company and its establishments. The foreign key
// also cascades, but sqlite only enforces it when foreign_keys is on.
func (r *CompaniesRepository) DeleteCompany(id uint) error {
	if err := r.db.Where("company_id = ?", id).Delete(&Establishment{}).Error; err != nil {
		return err
	}
	res := r.db.Delete(&Company{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
