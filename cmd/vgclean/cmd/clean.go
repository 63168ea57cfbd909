package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vgclean/pkg/cleaner"
	"vgclean/pkg/dataset"
)

// cleanCmd runs the normalization pipeline end to end
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Run the normalization pipeline over the raw dataset",
	Long: `Reads the raw dataset, applies the cleaning policy (type coercion,
missing-value resolution, year bounds, deduplication, total recomputation)
and atomically replaces the cleaned artifact.`,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	log := logger.Named("clean")

	raws, err := dataset.Load(cfg.RawPath)
	if err != nil {
		return err
	}

	c, err := cleaner.NewCleaner(cfg.Policy, log)
	if err != nil {
		return err
	}

	records, result, err := c.Clean(raws)
	if err != nil {
		return err
	}

	if err := dataset.Write(cfg.CleanPath, records); err != nil {
		return err
	}

	log.Info("Cleaned dataset written",
		zap.String("path", cfg.CleanPath),
		zap.Int("rows", len(records)),
		zap.Int("rows_dropped", result.RowsDropped()),
		zap.String("run_id", result.RunID))
	return nil
}
