package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vgclean/pkg/dataset"
	"vgclean/pkg/store"
)

var exportDB string

// exportCmd writes the cleaned dataset into a SQLite database
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the cleaned dataset to a SQLite database",
	Long: `Loads the cleaned artifact and replaces the vgsales table in the
target SQLite file, giving the presentation layer a queryable copy. The
CSV artifact remains the canonical handoff.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDB, "db", "", "SQLite output path (overrides VGSALES_SQLITE_PATH)")
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.Named("export")
	ctx := context.Background()

	records, err := dataset.LoadCleaned(cfg.CleanPath)
	if err != nil {
		return err
	}

	target := cfg.SQLitePath
	if exportDB != "" {
		target = exportDB
	}

	st, err := store.Open(ctx, target, log)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Replace(ctx, records); err != nil {
		return err
	}

	count, err := st.Count(ctx)
	if err != nil {
		return err
	}

	log.Info("Export complete",
		zap.String("path", target),
		zap.Int64("rows", count))
	return nil
}
