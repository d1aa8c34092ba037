package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbo-registry/kbo-crud/config"
	"github.com/kbo-registry/kbo-crud/models"
	"github.com/kbo-registry/kbo-crud/storage"
)

// --- Helpers ---

func newTestImporter(t *testing.T, files map[string]string, limits ...int) (*Importer, *storage.Store) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	store, err := storage.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "kbo.db"),
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { store.Close() })

	cfg := config.ImportConfig{DataDir: dir, ActivityLimit: 500, CompanyLimit: 50, EstablishmentLimit: 50}
	if len(limits) == 3 {
		cfg.ActivityLimit, cfg.CompanyLimit, cfg.EstablishmentLimit = limits[0], limits[1], limits[2]
	}
	return New(store, cfg, zerolog.Nop()), store
}

func lines(rows ...string) string {
	return strings.Join(rows, "\n") + "\n"
}

// --- Activities ---

func TestImportActivitiesSkipsDuplicateNaceCode(t *testing.T) {
	im, store := newTestImporter(t, map[string]string{
		ActivityFile: lines(
			`"EntityNumber","ActivityGroup","NaceVersion","NaceCode","Classification"`,
			`"0200.065.765","006","2008","84130","MAIN"`,
			`"0200.065.765","006","2008","84130","MAIN"`,
			`"0200.068.636","001","2025","62010","SECO"`,
		),
	})

	res, err := im.ImportActivities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Read)
	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, 1, res.SkippedDuplicate)

	var activities []models.Activity
	require.NoError(t, store.DB(context.Background()).Order("id").Find(&activities).Error)
	require.Len(t, activities, 2)
	assert.Equal(t, "84130", activities[0].NaceCode)
	assert.Equal(t, "006", *activities[0].ActivityGroup)
	assert.Equal(t, "2008", *activities[0].NaceVersion)
	assert.Equal(t, "MAIN", *activities[0].Classification)
}

func TestImportActivitiesColumnVariants(t *testing.T) {
	im, store := newTestImporter(t, map[string]string{
		ActivityFile: lines(
			utf8BOM+"NACE_CODE,Nacecode,ACTIVITYGROUP,NACEVERSION",
			"01110,,001,2008",
			",46900,003,2025",
			",,004,2025",
		),
	})

	res, err := im.ImportActivities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, 1, res.SkippedMissing)

	var codes []string
	require.NoError(t, store.DB(context.Background()).Model(&models.Activity{}).Order("id").Pluck("nace_code", &codes).Error)
	assert.Equal(t, []string{"01110", "46900"}, codes)

	var first models.Activity
	require.NoError(t, store.DB(context.Background()).Where("nace_code = ?", "01110").First(&first).Error)
	assert.Equal(t, "001", *first.ActivityGroup)
	assert.Nil(t, first.Classification)
}

func TestImportActivitiesStopsAtLimit(t *testing.T) {
	im, store := newTestImporter(t, map[string]string{
		ActivityFile: lines("NaceCode", "1", "2", "3", "4", "5"),
	}, 3, 50, 50)

	res, err := im.ImportActivities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Inserted)
	assert.Equal(t, 3, res.Read, "reading stops once the limit is reached")

	var count int64
	require.NoError(t, store.DB(context.Background()).Model(&models.Activity{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestImportActivitiesNoLimit(t *testing.T) {
	im, _ := newTestImporter(t, map[string]string{
		ActivityFile: lines("NaceCode", "1", "2", "3", "4", "5"),
	}, 0, 0, 0)

	res, err := im.ImportActivities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, res.Inserted)
}

func TestImportActivitiesRerunIsIdempotent(t *testing.T) {
	im, store := newTestImporter(t, map[string]string{
		ActivityFile: lines("NaceCode", "62010", "62020"),
	})

	_, err := im.ImportActivities(context.Background())
	require.NoError(t, err)
	res, err := im.ImportActivities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 2, res.SkippedDuplicate)

	var count int64
	require.NoError(t, store.DB(context.Background()).Model(&models.Activity{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

// --- Companies ---

func TestImportCompanies(t *testing.T) {
	im, store := newTestImporter(t, map[string]string{
		EnterpriseFile: lines(
			`"EnterpriseNumber","Status","JuridicalSituation","TypeOfEnterprise","JuridicalForm","JuridicalFormCAC","StartDate"`,
			`"0200.065.765","AC","000","2","417","","09-08-1960"`,
			`"","AC","000","2","417","","09-08-1960"`,
			`"0200.065.765","AC","000","2","417","","09-08-1960"`,
			`"0200.068.636","AC","000","2","","","01-01-1970"`,
		),
	})

	res, err := im.ImportCompanies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, 1, res.SkippedMissing)
	assert.Equal(t, 1, res.SkippedDuplicate)

	var companies []models.Company
	require.NoError(t, store.DB(context.Background()).Order("id").Find(&companies).Error)
	require.Len(t, companies, 2)
	assert.Equal(t, "Enterprise 0200.065.765", companies[0].Name)
	assert.Equal(t, "417", *companies[0].LegalForm)
	assert.Equal(t, models.DefaultCountry, *companies[0].Country)
	assert.Nil(t, companies[0].ActivityCode)
	assert.Nil(t, companies[1].LegalForm)
}

// --- Establishments ---

func TestImportEstablishments(t *testing.T) {
	im, store := newTestImporter(t, map[string]string{
		EnterpriseFile: lines(
			"EnterpriseNumber,JuridicalForm",
			"0200.065.765,417",
		),
		EstablishmentFile: lines(
			"EstablishmentNumber,StartDate,EnterpriseNumber",
			"2.000.000.339,01-11-1974,0200.065.765",
			"2.000.000.339,01-11-1974,0200.065.765",
			"2.000.000.537,01-01-1980,0999.999.999",
			",01-01-1980,0200.065.765",
			"2.000.000.735,01-01-1980,",
			"2.000.000.933,01-01-1990,0200.065.765",
		),
	})

	_, err := im.ImportCompanies(context.Background())
	require.NoError(t, err)
	res, err := im.ImportEstablishments(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, 1, res.SkippedDuplicate)
	assert.Equal(t, 1, res.SkippedOrphan)
	assert.Equal(t, 2, res.SkippedMissing)

	company, err := models.NewCompaniesRepository(store.DB(context.Background())).GetByEnterpriseNumber("0200.065.765")
	require.NoError(t, err)
	establishments, err := models.NewEstablishmentsRepository(store.DB(context.Background())).GetByCompany(company.ID)
	require.NoError(t, err)
	require.Len(t, establishments, 2)
	assert.Equal(t, "Establishment 2.000.000.339", establishments[0].Name)
	assert.Equal(t, "2.000.000.933", *establishments[1].EstablishmentNumber)
}

// --- Run ---

func TestRunWithMissingFiles(t *testing.T) {
	im, store := newTestImporter(t, map[string]string{
		EnterpriseFile: lines("EnterpriseNumber,JuridicalForm", "0200.065.765,417"),
	})

	results, err := im.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Missing)
	assert.Equal(t, ActivityFile, results[0].File)
	assert.False(t, results[1].Missing)
	assert.Equal(t, 1, results[1].Inserted)
	assert.True(t, results[2].Missing)

	var count int64
	require.NoError(t, store.DB(context.Background()).Model(&models.Company{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRunContinuesAfterFailedLoader(t *testing.T) {
	im, _ := newTestImporter(t, map[string]string{
		ActivityFile:   "",
		EnterpriseFile: lines("EnterpriseNumber", "0200.065.765"),
	})

	results, err := im.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty file")
	assert.Equal(t, 1, results[1].Inserted)
}

func TestImportRollsBackFileOnCancel(t *testing.T) {
	im, store := newTestImporter(t, map[string]string{
		ActivityFile: lines("NaceCode", "1", "2"),
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := im.ImportActivities(ctx)
	require.Error(t, err)

	var count int64
	require.NoError(t, store.DB(context.Background()).Model(&models.Activity{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
