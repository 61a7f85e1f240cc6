// Package cli provides the medic command line interface.
package cli

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mukesh2006/medic/internal/core/ports/driven"
	"github.com/mukesh2006/medic/internal/core/ports/driving"
	"github.com/mukesh2006/medic/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services wired in by main before Execute.
var (
	intakeService   driving.IntakeService
	contactService  driving.ContactService
	settingsService driving.SettingsService
	formSource      driven.FormSchemaSource
	gatherer        prometheus.Gatherer
)

// Services groups the dependencies of the commands.
type Services struct {
	Intake   driving.IntakeService
	Contacts driving.ContactService
	Settings driving.SettingsService
	Forms    driven.FormSchemaSource

	// Gatherer exposes metrics on the gateway's /metrics route.
	Gatherer prometheus.Gatherer
}

var rootCmd = &cobra.Command{
	Use:   "medic",
	Short: "SMS form intake and contact hierarchy store",
	Long: `medic turns structured SMS reports from community health workers into
data records, links them to the reporting facility and keeps the contact
hierarchy (district hospitals, health centers, clinics, people) with
embedded lineages.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices configures the services used by the commands.
func SetServices(s Services) {
	intakeService = s.Intake
	contactService = s.Contacts
	settingsService = s.Settings
	formSource = s.Forms
	gatherer = s.Gatherer
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
