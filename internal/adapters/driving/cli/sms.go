package cli

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mukesh2006/medic/internal/core/domain"
)

var (
	smsFrom          string
	smsSentTimestamp string
	smsDryRun        bool
	smsJSON          bool
)

var smsCmd = &cobra.Command{
	Use:   "sms",
	Short: "SMS intake commands",
}

var smsReceiveCmd = &cobra.Command{
	Use:   "receive [message]",
	Short: "Parse and store an SMS form submission",
	Long: `Parses a structured SMS of the form <version>!<form>!<field>#<field>...,
links it to the facility registered with the sender's phone and stores
the resulting data record.

Examples:
  medic sms receive --from +13125551212 '1!MSBB!2012#1#24#abcdef#1111#bbbbbb#22#15#cccccc'
  medic sms receive --from +1 --dry-run '1!MSBB!2012#1'`,
	Args: cobra.ExactArgs(1),
	RunE: runSMSReceive,
}

func init() {
	smsReceiveCmd.Flags().StringVar(&smsFrom, "from", "", "sender phone number")
	smsReceiveCmd.Flags().StringVar(&smsSentTimestamp, "sent-timestamp", "", "send time reported by the phone")
	smsReceiveCmd.Flags().BoolVar(&smsDryRun, "dry-run", false, "parse without storing the record")
	smsReceiveCmd.Flags().BoolVar(&smsJSON, "json", false, "output the record as JSON")
	smsCmd.AddCommand(smsReceiveCmd)
	rootCmd.AddCommand(smsCmd)
}

func runSMSReceive(cmd *cobra.Command, args []string) error {
	if intakeService == nil {
		return errors.New("intake service not configured")
	}
	if smsFrom == "" {
		return errors.New("--from is required")
	}

	msg := &domain.RawMessage{
		From:          smsFrom,
		Message:       args[0],
		SentTimestamp: smsSentTimestamp,
	}

	var (
		rec *domain.DataRecord
		err error
	)
	if smsDryRun {
		rec, err = intakeService.Preview(cmd.Context(), msg)
	} else {
		rec, err = intakeService.Receive(cmd.Context(), msg)
	}
	if err != nil {
		return fmt.Errorf("failed to receive message: %w", err)
	}

	if smsJSON {
		return printJSON(cmd, rec)
	}
	printRecord(cmd, rec, !smsDryRun)
	return nil
}

func printRecord(cmd *cobra.Command, rec *domain.DataRecord, stored bool) {
	if stored {
		cmd.Printf("Stored record %s (%s)\n", rec.ID, rec.Form)
	} else {
		cmd.Printf("Parsed record %s (%s, not stored)\n", rec.ID, rec.Form)
	}

	keys := rec.FieldOrder
	if len(keys) == 0 {
		keys = slices.Sorted(maps.Keys(rec.Fields))
	}
	if len(keys) > 0 {
		cmd.Println()
		cmd.Println("Fields:")
		for _, k := range keys {
			cmd.Printf("  %s: %s\n", k, rec.Fields[k].String())
		}
	}

	if len(rec.Errors) > 0 {
		cmd.Println()
		cmd.Println("Errors:")
		for _, e := range rec.Errors {
			cmd.Printf("  [%s] %s\n", e.Code, e.Message)
		}
	}

	if clinic := rec.RelatedEntities.Clinic; clinic != nil {
		cmd.Println()
		cmd.Printf("Clinic: %s (%s)\n", clinic.Name, clinic.ID)
	}

	if len(rec.Responses) > 0 || len(rec.Tasks) > 0 {
		cmd.Println()
		cmd.Println("Outbound:")
		for _, r := range rec.Responses {
			cmd.Printf("  -> %s: %s\n", r.To, r.Message)
		}
		for _, task := range rec.Tasks {
			for _, m := range task.Messages {
				cmd.Printf("  -> %s (%s): %s\n", m.To, task.State, m.Message)
			}
		}
	}
}
