package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/account-compliance-api/internal/audit"
)

// Export-specific flag values.
var (
	exportCategory string
	exportSearch   string
	exportOutput   string
	exportFormat   string
)

// exportCmd writes the visible rows to a CSV or XLSX file.
var exportCmd = &cobra.Command{
	Use:   "export <file.json>",
	Short: "Export the visible accounts to CSV or XLSX",
	Long: `Write the accounts visible under the given category and search to a file.
The format follows the output extension unless --format is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportCategory, "category", "c", "", "export one category: blocked, disabled, expired, compliant")
	exportCmd.Flags().StringVarP(&exportSearch, "search", "s", "", "case-insensitive match on name or email")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file path (default: stdout, csv)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "csv or xlsx")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := exportFormatFor(exportOutput, exportFormat)
	if err != nil {
		return exitError(ExitInvalidArgs, "auditctl: %v", err)
	}

	r, err := runPipeline(args[0], exportCategory, exportSearch)
	if err != nil {
		if r != nil && r.Warning != "" {
			return exitError(ExitInputError, "auditctl: %s", r.Warning)
		}
		return err
	}

	if exportOutput == "" {
		return audit.WriteExport(cmd.OutOrStdout(), r.Table, format)
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return exitError(ExitInvalidArgs, "auditctl: cannot create %q (%v)", exportOutput, err)
	}
	if err := audit.WriteExport(f, r.Table, format); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", exportOutput, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", exportOutput, err)
	}

	log.Info().Str("file", exportOutput).Int("rows", len(r.Table.Rows)).Msg("Export written")
	fmt.Fprintf(cmd.ErrOrStderr(), "%d rows written to %s\n", len(r.Table.Rows), exportOutput)
	return nil
}

// exportFormatFor resolves the format from the flag or the output extension.
func exportFormatFor(output, format string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
		if format == "" {
			format = audit.FormatCSV
		}
	}
	switch format {
	case audit.FormatCSV, audit.FormatXLSX:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (use csv or xlsx)", format)
	}
}
