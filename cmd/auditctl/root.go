package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/account-compliance-api/internal/models"
	"github.com/account-compliance-api/pkg/logger"
)

// Global flag values.
var (
	verbose    bool
	noColor    bool
	maxAgeDays int
)

// log is configured in PersistentPreRun.
var log = zerolog.Nop()

// rootCmd is the base command for auditctl.
var rootCmd = &cobra.Command{
	Use:   "auditctl",
	Short: "Audit directory account exports for password compliance",
	Long: `auditctl reads a JSON export of directory user accounts, classifies each
account as blocked, disabled, expired or compliant, and prints or exports the
result sorted by password age.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if noColor {
			color.NoColor = true
		}
		level := "error"
		if verbose {
			level = "debug"
		}
		log = logger.New(logger.Options{Level: level, Pretty: true, Out: os.Stderr})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log ingestion anomalies to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().IntVar(&maxAgeDays, "max-age-days", models.DefaultPasswordMaxAgeDays, "password age in days after which a password is expired")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}
