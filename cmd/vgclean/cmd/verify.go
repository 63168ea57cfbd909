package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vgclean/pkg/verifier"
)

// How many individual violations to print before summarizing.
const maxPrintedIssues = 20

// verifyCmd checks an existing cleaned artifact against the invariants
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the cleaned artifact satisfies the dataset invariants",
	Long: `Checks the cleaned artifact the way the dashboard consumes it: schema
exact, totals matching the regional sums, years within bounds, no empty
categoricals, no duplicate keys. Exits non-zero on any violation.`,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	v, err := verifier.NewVerifier(cfg.Policy, logger.Named("verify"))
	if err != nil {
		return err
	}

	report, err := v.VerifyFile(cfg.CleanPath)
	if err != nil {
		return err
	}

	if report.OK() {
		fmt.Printf("OK: %d rows verified in %s\n", report.Rows, cfg.CleanPath)
		return nil
	}

	for i, issue := range report.Issues {
		if i >= maxPrintedIssues {
			fmt.Fprintf(os.Stderr, "... and %d more\n", len(report.Issues)-maxPrintedIssues)
			break
		}
		fmt.Fprintln(os.Stderr, issue.String())
	}

	return fmt.Errorf("verification failed: %d issue(s) in %s", len(report.Issues), cfg.CleanPath)
}
