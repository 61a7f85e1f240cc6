package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "SMS form commands",
}

var formsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known SMS forms and their fields",
	RunE:  runFormsList,
}

func init() {
	formsCmd.AddCommand(formsListCmd)
	rootCmd.AddCommand(formsCmd)
}

func runFormsList(cmd *cobra.Command, _ []string) error {
	if formSource == nil {
		return errors.New("form catalog not configured")
	}

	codes := formSource.Codes()
	if len(codes) == 0 {
		cmd.Println("No forms configured.")
		return nil
	}

	for _, code := range codes {
		schema, ok := formSource.Schema(code)
		if !ok {
			continue
		}
		if schema.Title != "" {
			cmd.Printf("%s - %s\n", schema.Code, schema.Title)
		} else {
			cmd.Println(schema.Code)
		}
		for i, f := range schema.Fields {
			cmd.Printf("  %2d. %-16s %s\n", i+1, f.Key, f.Type)
		}
		cmd.Println()
	}
	return nil
}
