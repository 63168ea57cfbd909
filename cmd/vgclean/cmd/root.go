// Package cmd provides the CLI commands for vgclean.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vgclean/pkg/config"
	"vgclean/pkg/logging"
)

var (
	rawPath    string
	cleanPath  string
	policyPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vgclean",
	Short: "Normalize the video game sales dataset",
	Long: `vgclean is the ingestion pipeline behind the video game sales dashboard.

It reads the raw sales CSV, enforces the dataset invariants (valid release
years, no missing categoricals, regional sales summing to the global total,
unique name/platform/year keys) and writes the cleaned artifact the
dashboard reads.

Examples:
  vgclean clean
  vgclean clean --raw data/vgsales_raw.csv --out data/vgsales_clean.csv
  vgclean verify
  vgclean report --file profile.md
  vgclean export --db data/vgsales_clean.sqlite`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&rawPath, "raw", "", "raw dataset path (overrides VGSALES_RAW_PATH)")
	rootCmd.PersistentFlags().StringVar(&cleanPath, "out", "", "cleaned dataset path (overrides VGSALES_CLEAN_PATH)")
	rootCmd.PersistentFlags().StringVar(&policyPath, "policy", "", "cleaning policy YAML (overrides VGSALES_POLICY_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if policyPath != "" {
		os.Setenv("VGSALES_POLICY_PATH", policyPath)
	}

	loaded, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded

	// CLI flags win over environment
	if rawPath != "" {
		cfg.RawPath = rawPath
	}
	if cleanPath != "" {
		cfg.CleanPath = cleanPath
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	logger, err = logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("vgclean version 0.1.0")
	},
}
