package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mukesh2006/medic/internal/adapters/driving/gateway"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP SMS gateway",
	Long: `Start the HTTP gateway that receives SMS submissions from the phone
gateway app and exposes records and contacts.

Routes:
  POST /sms             receive an SMS (form or JSON encoded)
  GET  /records/{id}    fetch a stored data record
  POST /contacts        save a contact submission
  GET  /contacts        list contacts
  GET  /contacts/{id}   fetch a contact
  GET  /metrics         Prometheus metrics
  GET  /healthz         liveness probe`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides gateway.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if intakeService == nil {
		return errors.New("intake service not configured")
	}

	cfg := gateway.Config{Gatherer: gatherer}
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		cfg.Addr = settings.Gateway.Addr
		cfg.RatePerSecond = settings.Gateway.RatePerSecond
		cfg.Burst = settings.Gateway.Burst
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	server, err := gateway.NewServer(&gateway.Ports{
		Intake:   intakeService,
		Contacts: contactService,
	}, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "SMS gateway listening on http://%s\n", cfg.Addr)
	return server.Run(cmd.Context())
}
