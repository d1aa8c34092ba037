// Command kbo serves the KBO registry CRUD API and imports registry CSV
// extracts into its database.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kbo-registry/kbo-crud/config"
	"github.com/kbo-registry/kbo-crud/logger"
	"github.com/kbo-registry/kbo-crud/storage"
)

type cli struct {
	cfg *config.Config
	log zerolog.Logger
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rt := &cli{}

	root := &cobra.Command{
		Use:           "kbo",
		Short:         "KBO business registry CRUD backend",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.log = logger.New(cfg.Log)
			return nil
		},
	}

	root.AddCommand(newServeCmd(rt), newImportCmd(rt), newMigrateCmd(rt))
	return root
}

// openStore connects and brings the schema up to date.
func (rt *cli) openStore() (*storage.Store, error) {
	store, err := storage.Open(rt.cfg.Database, rt.log)
	if err != nil {
		rt.log.Error().Err(err).Msg("database connection failed")
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		store.Close()
		rt.log.Error().Err(err).Msg("migration failed")
		return nil, err
	}
	return store, nil
}

func newMigrateCmd(rt *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rt.openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			rt.log.Info().Msg("migrations completed")
			return nil
		},
	}
}
