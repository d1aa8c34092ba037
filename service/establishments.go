package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kbo-registry/kbo-crud/errs"
	"github.com/kbo-registry/kbo-crud/models"
	"github.com/kbo-registry/kbo-crud/schemas"
	"github.com/kbo-registry/kbo-crud/storage"
)

type EstablishmentService struct {
	store *storage.Store
	log   zerolog.Logger
}

func NewEstablishmentService(store *storage.Store, log zerolog.Logger) *EstablishmentService {
	return &EstablishmentService{store: store, log: log.With().Str("service", "establishments").Logger()}
}

func (s *EstablishmentService) CreateEstablishment(ctx context.Context, companyID uint, in schemas.EstablishmentCreate) (*models.Establishment, error) {
	establishment := &models.Establishment{
		EstablishmentNumber: nonEmpty(in.EstablishmentNumber),
		Name:                in.Name,
		Street:              in.Street,
		Number:              in.Number,
		Postcode:            in.Postcode,
		City:                in.City,
		Country:             countryOrDefault(in.Country),
		CompanyID:           companyID,
	}

	err := s.store.Tx(ctx, func(tx *gorm.DB) error {
		found, err := models.NewCompaniesRepository(tx).Exists(companyID)
		if err != nil {
			return err
		}
		if !found {
			return errs.NotFound("company not found", models.ErrCompanyNotFound)
		}

		establishments := models.NewEstablishmentsRepository(tx)
		if establishment.EstablishmentNumber != nil {
			used, err := establishments.EstablishmentNumberExists(*establishment.EstablishmentNumber)
			if err != nil {
				return err
			}
			if used {
				return errs.Conflict("establishment number already exists", nil)
			}
		}

		if err := establishments.CreateEstablishment(establishment); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errs.Conflict("establishment number already exists", err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Uint("establishment_id", establishment.ID).Uint("company_id", companyID).Msg("establishment created")
	return establishment, nil
}

func (s *EstablishmentService) ListEstablishments(ctx context.Context, companyID uint) ([]models.Establishment, error) {
	var establishments []models.Establishment
	err := s.store.Tx(ctx, func(tx *gorm.DB) error {
		found, err := models.NewCompaniesRepository(tx).Exists(companyID)
		if err != nil {
			return err
		}
		if !found {
			return errs.NotFound("company not found", models.ErrCompanyNotFound)
		}
		establishments, err = models.NewEstablishmentsRepository(tx).GetByCompany(companyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return establishments, nil
}

func (s *EstablishmentService) GetEstablishment(ctx context.Context, id uint) (*models.Establishment, error) {
	establishment, err := models.NewEstablishmentsRepository(s.store.DB(ctx)).GetByID(id)
	if err != nil {
		return nil, establishmentError(err)
	}
	return establishment, nil
}

// ReplaceEstablishment overwrites every editable field; fields missing from
// the payload become null and a missing country becomes the default.
func (s *EstablishmentService) ReplaceEstablishment(ctx context.Context, id uint, in schemas.EstablishmentInput) (*models.Establishment, error) {
	var establishment *models.Establishment
	err := s.store.Tx(ctx, func(tx *gorm.DB) error {
		establishments := models.NewEstablishmentsRepository(tx)
		if err := establishments.ReplaceEstablishment(&models.Establishment{
			ID:       id,
			Name:     in.Name,
			Street:   in.Street,
			Number:   in.Number,
			Postcode: in.Postcode,
			City:     in.City,
			Country:  countryOrDefault(in.Country),
		}); err != nil {
			return err
		}
		var err error
		establishment, err = establishments.GetByID(id)
		return err
	})
	if err != nil {
		return nil, establishmentError(err)
	}
	return establishment, nil
}

func (s *EstablishmentService) DeleteEstablishment(ctx context.Context, id uint) error {
	if err := models.NewEstablishmentsRepository(s.store.DB(ctx)).DeleteEstablishment(id); err != nil {
		return establishmentError(err)
	}
	s.log.Info().Uint("establishment_id", id).Msg("establishment deleted")
	return nil
}

func establishmentError(err error) error {
	if errors.Is(err, models.ErrEstablishmentNotFound) {
		return errs.NotFound("establishment not found", err)
	}
	return err
}
