package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbo-registry/kbo-crud/importer"
)

func newImportCmd(rt *cli) *cobra.Command {
	var (
		dataDir            string
		activityLimit      int
		companyLimit       int
		establishmentLimit int
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load activity.csv, enterprise.csv and establishment.csv into the database",
		Long: "Load the registry extracts from the data directory. Rows already in the\n" +
			"database are skipped, so the command can be run again safely.\n" +
			"A limit of 0 imports every row.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ic := &rt.cfg.Import
			flags := cmd.Flags()
			if flags.Changed("data-dir") {
				ic.DataDir = dataDir
			}
			if flags.Changed("activity-limit") {
				ic.ActivityLimit = activityLimit
			}
			if flags.Changed("company-limit") {
				ic.CompanyLimit = companyLimit
			}
			if flags.Changed("establishment-limit") {
				ic.EstablishmentLimit = establishmentLimit
			}

			return rt.runImport(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dataDir, "data-dir", "", "directory holding the CSV extracts (overrides KBO_IMPORT_DATA_DIR)")
	flags.IntVar(&activityLimit, "activity-limit", 0, "maximum activities to insert")
	flags.IntVar(&companyLimit, "company-limit", 0, "maximum companies to insert")
	flags.IntVar(&establishmentLimit, "establishment-limit", 0, "maximum establishments to insert")
	return cmd
}

func (rt *cli) runImport(ctx context.Context) error {
	store, err := rt.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := importer.New(store, rt.cfg.Import, rt.log).Run(ctx)
	for _, res := range results {
		if res.Missing {
			fmt.Printf("%-18s missing\n", res.File)
			continue
		}
		fmt.Printf("%-18s read=%d inserted=%d skipped_missing=%d skipped_duplicate=%d skipped_orphan=%d\n",
			res.File, res.Read, res.Inserted, res.SkippedMissing, res.SkippedDuplicate, res.SkippedOrphan)
	}
	return err
}
