// Package storage owns the database handle. A Store is built once at startup
// and handed to the services, which open a request-scoped session per call.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kbo-registry/kbo-crud/config"
	"github.com/kbo-registry/kbo-crud/models"
)

type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open connects to the configured database. Unique violations are translated
// to gorm.ErrDuplicatedKey for both drivers.
func Open(cfg config.DatabaseConfig, log zerolog.Logger) (*Store, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	if cfg.Driver == "sqlite" {
		// A single connection avoids "database is locked" between pooled writers.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info().Str("driver", cfg.Driver).Str("dsn", maskDSN(cfg.DSN)).Msg("database connected")
	return &Store{db: db, log: log}, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		path, _, _ := strings.Cut(cfg.DSN, "?")
		if dir := filepath.Dir(path); path != ":memory:" && dir != "." && !strings.HasPrefix(path, "file:") {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		return sqlite.Open(sqliteDSN(cfg.DSN)), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqliteDSN turns on foreign key enforcement, which sqlite keeps per
// connection and disables by default. Cascading deletes depend on it.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// Migrate creates the activities, companies and establishments tables when missing.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&models.Activity{}, &models.Company{}, &models.Establishment{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	for _, table := range []string{"activities", "companies", "establishments"} {
		if !s.db.Migrator().HasTable(table) {
			return fmt.Errorf("missing table after migration: %s", table)
		}
	}
	s.log.Debug().Msg("schema up to date")
	return nil
}

// DB returns a new session bound to ctx. Sessions are cheap and are released
// when the caller stops using them; connections go back to the pool after
// each statement or transaction.
func (s *Store) DB(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Tx runs fn inside a transaction bound to ctx. It commits when fn returns nil
// and rolls back otherwise.
func (s *Store) Tx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// maskDSN hides the password of URL or key=value postgres DSNs.
func maskDSN(dsn string) string {
	if i := strings.Index(dsn, "password="); i >= 0 {
		end := strings.IndexAny(dsn[i:], " &")
		if end < 0 {
			return dsn[:i] + "password=***"
		}
		return dsn[:i] + "password=***" + dsn[i+end:]
	}
	if scheme := strings.Index(dsn, "://"); scheme >= 0 {
		if at := strings.Index(dsn, "@"); at > scheme {
			creds := dsn[scheme+3 : at]
			if colon := strings.Index(creds, ":"); colon >= 0 {
				return dsn[:scheme+3] + creds[:colon] + ":***" + dsn[at:]
			}
		}
	}
	return dsn
}
