package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vgclean/pkg/dataset"
	"vgclean/pkg/report"
)

var reportOut string

// reportCmd renders a markdown profile of the cleaned dataset
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a markdown profile of the cleaned dataset",
	Long: `Summarizes the cleaned dataset: shape, regional sales totals, top
genres, publishers and platforms, and global sales by year. Writes to
stdout unless --file is given.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportOut, "file", "", "write the report to a file instead of stdout")
}

func runReport(cmd *cobra.Command, args []string) error {
	records, err := dataset.LoadCleaned(cfg.CleanPath)
	if err != nil {
		return err
	}

	generator, err := report.NewGenerator(logger.Named("report"))
	if err != nil {
		return err
	}

	profile := generator.Generate(records, nil)

	if reportOut == "" {
		fmt.Print(profile)
		return nil
	}

	if err := os.WriteFile(reportOut, []byte(profile), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
