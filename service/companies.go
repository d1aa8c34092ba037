// Package service implements the company and establishment operations on top
// of the storage context. Every call opens its own session from the Store and
// returns *errs.Error for failures the client caused.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kbo-registry/kbo-crud/errs"
	"github.com/kbo-registry/kbo-crud/models"
	"github.com/kbo-registry/kbo-crud/schemas"
	"github.com/kbo-registry/kbo-crud/storage"
)

type CompanyService struct {
	store *storage.Store
	log   zerolog.Logger
}

func NewCompanyService(store *storage.Store, log zerolog.Logger) *CompanyService {
	return &CompanyService{store: store, log: log.With().Str("service", "companies").Logger()}
}

func (s *CompanyService) CreateCompany(ctx context.Context, in schemas.CompanyCreate) (*models.Company, error) {
	company := &models.Company{
		EnterpriseNumber: nonEmpty(in.EnterpriseNumber),
		Name:             in.Name,
		LegalForm:        in.LegalForm,
		Street:           in.Street,
		Number:           in.Number,
		Postcode:         in.Postcode,
		City:             in.City,
		Country:          countryOrDefault(in.Country),
		ActivityCode:     nonEmpty(in.ActivityCode),
		Establishments:   []models.Establishment{},
	}

	err := s.store.Tx(ctx, func(tx *gorm.DB) error {
		if company.ActivityCode != nil {
			known, err := models.NewActivitiesRepository(tx).NaceCodeExists(*company.ActivityCode)
			if err != nil {
				return err
			}
			if !known {
				return errs.Validation("unknown activity code", nil)
			}
		}

		companies := models.NewCompaniesRepository(tx)
		if company.EnterpriseNumber != nil {
			used, err := companies.EnterpriseNumberExists(*company.EnterpriseNumber)
			if err != nil {
				return err
			}
			if used {
				return errs.Conflict("enterprise number already exists", nil)
			}
		}

		if err := companies.CreateCompany(company); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errs.Conflict("enterprise number already exists", err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("company_id", company.ID).Msg("company created")
	return company, nil
}

func (s *CompanyService) ListCompanies(ctx context.Context, skip, limit int) ([]models.Company, error) {
	companies, err := models.NewCompaniesRepository(s.store.DB(ctx)).GetCompanies(skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

func (s *CompanyService) GetCompany(ctx context.Context, id uint) (*models.Company, error) {
	company, err := models.NewCompaniesRepository(s.store.DB(ctx)).GetByID(id)
	if err != nil {
		return nil, companyError(err)
	}
	return company, nil
}

// UpdateCompany applies only the fields present in the payload. Activity code
// and enterprise number are not re-checked; the unique index still rejects a
// duplicate number.
func (s *CompanyService) UpdateCompany(ctx context.Context, id uint, in schemas.CompanyUpdate) (*models.Company, error) {
	var company *models.Company
	err := s.store.Tx(ctx, func(tx *gorm.DB) error {
		companies := models.NewCompaniesRepository(tx)
		found, err := companies.Exists(id)
		if err != nil {
			return err
		}
		if !found {
			return models.ErrCompanyNotFound
		}

		columns := in.Columns()
		for _, key := range []string{"enterprise_number", "activity_code"} {
			if v, ok := columns[key]; ok && v == "" {
				columns[key] = nil
			}
		}
		if err := companies.UpdateFields(id, columns); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errs.Conflict("enterprise number already exists", err)
			}
			return err
		}

		company, err = companies.GetByID(id)
		return err
	})
	if err != nil {
		return nil, companyError(err)
	}
	return company, nil
}

// DeleteCompany removes the company together with all of its establishments.
func (s *CompanyService) DeleteCompany(ctx context.Context, id uint) error {
	err := s.store.Tx(ctx, func(tx *gorm.DB) error {
		return models.NewCompaniesRepository(tx).DeleteCompany(id)
	})
	if err != nil {
		return companyError(err)
	}
	s.log.Info().Uint("company_id", id).Msg("company deleted")
	return nil
}

func companyError(err error) error {
	if errors.Is(err, models.ErrCompanyNotFound) {
		return errs.NotFound("company not found", err)
	}
	return err
}

func countryOrDefault(country *string) *string {
	if country == nil || *country == "" {
		c := models.DefaultCountry
		return &c
	}
	return country
}

// nonEmpty stores empty identifiers as NULL so they do not collide on the
// unique indexes.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
