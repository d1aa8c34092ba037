// Package importer loads KBO open-data CSV extracts into the store.
//
// Each loader reads one file inside a single transaction, skips rows that lack
// their registry key or whose key is already stored, and stops once its row
// limit is reached. A missing file is logged and skipped.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kbo-registry/kbo-crud/config"
	"github.com/kbo-registry/kbo-crud/models"
	"github.com/kbo-registry/kbo-crud/storage"
)

const (
	ActivityFile      = "activity.csv"
	EnterpriseFile    = "enterprise.csv"
	EstablishmentFile = "establishment.csv"
)

// progressEvery is how often, in data rows, a progress line is logged.
const progressEvery = 10000

// Result summarises one loader run.
type Result struct {
	File             string
	Missing          bool
	Read             int
	Inserted         int
	SkippedMissing   int
	SkippedDuplicate int
	SkippedOrphan    int
}

type outcome int

const (
	inserted outcome = iota
	skippedMissing
	skippedDuplicate
	skippedOrphan
)

func (r *Result) record(o outcome) {
	switch o {
	case inserted:
		r.Inserted++
	case skippedMissing:
		r.SkippedMissing++
	case skippedDuplicate:
		r.SkippedDuplicate++
	case skippedOrphan:
		r.SkippedOrphan++
	}
}

type Importer struct {
	store *storage.Store
	cfg   config.ImportConfig
	log   zerolog.Logger
}

func New(store *storage.Store, cfg config.ImportConfig, log zerolog.Logger) *Importer {
	return &Importer{store: store, cfg: cfg, log: log.With().Str("component", "importer").Logger()}
}

// Run loads activities, companies and establishments, in that order so that
// establishments can resolve their company. A failing loader does not stop
// the others; their errors are joined.
func (im *Importer) Run(ctx context.Context) ([]Result, error) {
	im.log.Info().Str("data_dir", im.cfg.DataDir).Msg("import started")

	var results []Result
	var errs []error
	for _, load := range []func(context.Context) (Result, error){
		im.ImportActivities,
		im.ImportCompanies,
		im.ImportEstablishments,
	} {
		res, err := load(ctx)
		results = append(results, res)
		if err != nil {
			im.log.Error().Err(err).Str("file", res.File).Msg("import failed")
			errs = append(errs, err)
		}
	}

	im.log.Info().Msg("import finished")
	return results, errors.Join(errs...)
}

func (im *Importer) ImportActivities(ctx context.Context) (Result, error) {
	return im.load(ctx, ActivityFile, im.cfg.ActivityLimit, func(tx *gorm.DB, r row) (outcome, error) {
		naceCode := r.get("NaceCode", "NACECode", "NACE_CODE", "Nacecode")
		if naceCode == "" {
			return skippedMissing, nil
		}

		activities := models.NewActivitiesRepository(tx)
		exists, err := activities.NaceCodeExists(naceCode)
		if err != nil {
			return 0, err
		}
		if exists {
			return skippedDuplicate, nil
		}

		return inserted, activities.CreateActivity(&models.Activity{
			NaceCode:       naceCode,
			ActivityGroup:  r.optional("ActivityGroup", "ACTIVITYGROUP"),
			NaceVersion:    r.optional("NaceVersion", "NACEVERSION"),
			Classification: r.optional("Classification", "CLASSIFICATION"),
		})
	})
}

// ImportCompanies imports enterprise numbers and legal forms. Names are
// synthesized from the number; activity codes are left empty.
func (im *Importer) ImportCompanies(ctx context.Context) (Result, error) {
	return im.load(ctx, EnterpriseFile, im.cfg.CompanyLimit, func(tx *gorm.DB, r row) (outcome, error) {
		number := r.get("EnterpriseNumber")
		if number == "" {
			return skippedMissing, nil
		}

		companies := models.NewCompaniesRepository(tx)
		exists, err := companies.EnterpriseNumberExists(number)
		if err != nil {
			return 0, err
		}
		if exists {
			return skippedDuplicate, nil
		}

		country := models.DefaultCountry
		return inserted, companies.CreateCompany(&models.Company{
			EnterpriseNumber: &number,
			Name:             "Enterprise " + number,
			LegalForm:        r.optional("JuridicalForm"),
			Country:          &country,
		})
	})
}

// ImportEstablishments attaches establishments to companies imported earlier.
// Rows whose enterprise is not in the store are skipped.
func (im *Importer) ImportEstablishments(ctx context.Context) (Result, error) {
	return im.load(ctx, EstablishmentFile, im.cfg.EstablishmentLimit, func(tx *gorm.DB, r row) (outcome, error) {
		number := r.get("EstablishmentNumber")
		enterprise := r.get("EnterpriseNumber")
		if number == "" || enterprise == "" {
			return skippedMissing, nil
		}

		establishments := models.NewEstablishmentsRepository(tx)
		exists, err := establishments.EstablishmentNumberExists(number)
		if err != nil {
			return 0, err
		}
		if exists {
			return skippedDuplicate, nil
		}

		company, err := models.NewCompaniesRepository(tx).GetByEnterpriseNumber(enterprise)
		if errors.Is(err, models.ErrCompanyNotFound) {
			return skippedOrphan, nil
		}
		if err != nil {
			return 0, err
		}

		country := models.DefaultCountry
		return inserted, establishments.CreateEstablishment(&models.Establishment{
			EstablishmentNumber: &number,
			Name:                "Establishment " + number,
			Country:             &country,
			CompanyID:           company.ID,
		})
	})
}

type rowFunc func(tx *gorm.DB, r row) (outcome, error)

func (im *Importer) load(ctx context.Context, file string, limit int, fn rowFunc) (Result, error) {
	res := Result{File: file}
	path := filepath.Join(im.cfg.DataDir, file)
	log := im.log.With().Str("file", file).Logger()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error().Str("path", path).Msg("file not found, skipping")
			res.Missing = true
			return res, nil
		}
		return res, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := newRowReader(f)
	if err != nil {
		return res, fmt.Errorf("%s: %w", file, err)
	}
	log.Info().Strs("columns", rows.header).Msg("reading")

	err = im.store.Tx(ctx, func(tx *gorm.DB) error {
		for limit <= 0 || res.Inserted < limit {
			if err := ctx.Err(); err != nil {
				return err
			}

			r, err := rows.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			res.Read++

			o, err := fn(tx, r)
			if err != nil {
				return fmt.Errorf("%s line %d: %w", file, r.line, err)
			}
			res.record(o)

			if res.Read%progressEvery == 0 {
				log.Info().Int("read", res.Read).Int("inserted", res.Inserted).Msg("progress")
			}
		}
		log.Info().Int("limit", limit).Msg("row limit reached")
		return nil
	})
	if err != nil {
		return Result{File: file}, err
	}

	log.Info().
		Int("read", res.Read).
		Int("inserted", res.Inserted).
		Int("skipped_missing", res.SkippedMissing).
		Int("skipped_duplicate", res.SkippedDuplicate).
		Int("skipped_orphan", res.SkippedOrphan).
		Msg("imported")
	return res, nil
}
