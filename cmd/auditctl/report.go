package main

import (
	"github.com/spf13/cobra"

	"github.com/account-compliance-api/internal/report"
)

// Report-specific flag values.
var (
	reportCategory string
	reportSearch   string
)

// reportCmd prints the metrics block and the account table.
var reportCmd = &cobra.Command{
	Use:   "report <file.json>",
	Short: "Print a compliance report for an account export",
	Long: `Print the summary counters and the accounts visible under the given
category and search, sorted by password age. Rows needing attention are
highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportCategory, "category", "c", "", "show one category: blocked, disabled, expired, compliant")
	reportCmd.Flags().StringVarP(&reportSearch, "search", "s", "", "case-insensitive match on name or email")
}

func runReport(cmd *cobra.Command, args []string) error {
	r, err := runPipeline(args[0], reportCategory, reportSearch)
	if r != nil {
		if renderErr := report.Render(cmd.OutOrStdout(), r); renderErr != nil {
			return renderErr
		}
	}
	return err
}
