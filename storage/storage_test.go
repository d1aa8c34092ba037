package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kbo-registry/kbo-crud/config"
	"github.com/kbo-registry/kbo-crud/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "db", "kbo.db"),
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMigrateCreatesTables(t *testing.T) {
	store := openTestStore(t)
	db := store.DB(context.Background())

	for _, table := range []string{"activities", "companies", "establishments"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	// Running it again is a no-op.
	assert.NoError(t, store.Migrate())
}

func TestUniqueViolationIsTranslated(t *testing.T) {
	store := openTestStore(t)
	db := store.DB(context.Background())
	number := "0123456789"

	require.NoError(t, db.Create(&models.Company{Name: "A", EnterpriseNumber: &number}).Error)
	err := db.Create(&models.Company{Name: "B", EnterpriseNumber: &number}).Error

	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)
}

func TestForeignKeyCascade(t *testing.T) {
	store := openTestStore(t)
	db := store.DB(context.Background())

	company := models.Company{Name: "Parent"}
	require.NoError(t, db.Create(&company).Error)
	require.NoError(t, db.Create(&models.Establishment{Name: "Branch", CompanyID: company.ID}).Error)

	require.NoError(t, db.Exec("DELETE FROM companies WHERE id = ?", company.ID).Error)

	var count int64
	require.NoError(t, db.Model(&models.Establishment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestTxRollsBack(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	err := store.Tx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Activity{NaceCode: "62010"}).Error; err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, store.DB(ctx).Model(&models.Activity{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "mysql", DSN: "x"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "host=db user=kbo password=*** dbname=kbo", maskDSN("host=db user=kbo password=secret dbname=kbo"))
	assert.Equal(t, "postgres://kbo:***@db:5432/kbo", maskDSN("postgres://kbo:secret@db:5432/kbo"))
	assert.Equal(t, "data/kbo.db", maskDSN("data/kbo.db"))
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "data/kbo.db?_foreign_keys=on", sqliteDSN("data/kbo.db"))
	assert.Equal(t, "file:kbo.db?cache=shared&_foreign_keys=on", sqliteDSN("file:kbo.db?cache=shared"))
	assert.Equal(t, "kbo.db?_fk=1", sqliteDSN("kbo.db?_fk=1"))
}
