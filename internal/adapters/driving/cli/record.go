package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var recordJSON bool

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Data record commands",
}

var recordGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a stored data record",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordGet,
}

func init() {
	recordGetCmd.Flags().BoolVar(&recordJSON, "json", false, "output the record as JSON")
	recordCmd.AddCommand(recordGetCmd)
	rootCmd.AddCommand(recordCmd)
}

func runRecordGet(cmd *cobra.Command, args []string) error {
	if intakeService == nil {
		return errors.New("intake service not configured")
	}

	rec, err := intakeService.GetRecord(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	if recordJSON {
		return printJSON(cmd, rec)
	}
	printRecord(cmd, rec, true)
	return nil
}
