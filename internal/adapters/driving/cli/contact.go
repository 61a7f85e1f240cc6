package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mukesh2006/medic/internal/core/domain"
)

var (
	contactID       string
	contactType     string
	contactFile     string
	contactListDead bool
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Contact hierarchy commands",
}

var contactSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create or update a contact",
	Long: `Saves a contact submission read as JSON from --file or stdin:

  {
    "doc": {"name": "Alice", "parent": "NEW"},
    "siblings": {"parent": {"name": "Center", "type": "health_center", "parent": "PARENT"}},
    "repeats": {"child_data": [{"name": "Bob"}]}
  }

A relation may name an existing contact id, NEW for the sibling submitted
under the same key, or PARENT inside a sibling to point back at the
primary contact. All documents are written in one batch with refreshed
lineages.`,
	RunE: runContactSave,
}

var contactGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactGet,
}

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts by hierarchy level and name",
	RunE:  runContactList,
}

func init() {
	contactSaveCmd.Flags().StringVar(&contactID, "id", "", "id of the contact to update")
	contactSaveCmd.Flags().StringVar(&contactType, "type", "", "contact type of a new contact")
	contactSaveCmd.Flags().StringVarP(&contactFile, "file", "f", "", "submission JSON file (default stdin)")
	contactListCmd.Flags().BoolVar(&contactListDead, "all", false, "include deceased contacts")
	contactCmd.AddCommand(contactSaveCmd)
	contactCmd.AddCommand(contactGetCmd)
	contactCmd.AddCommand(contactListCmd)
	rootCmd.AddCommand(contactCmd)
}

func runContactSave(cmd *cobra.Command, _ []string) error {
	if contactService == nil {
		return errors.New("contact service not configured")
	}

	sub, err := readSubmission(cmd)
	if err != nil {
		return err
	}

	result, err := contactService.Save(cmd.Context(), sub, contactID, contactType)
	var batchErr *domain.BatchError
	if errors.As(err, &batchErr) && result != nil {
		printSaveResult(cmd, result)
	}
	if err != nil {
		return fmt.Errorf("failed to save contact: %w", err)
	}

	printSaveResult(cmd, result)
	return nil
}

func readSubmission(cmd *cobra.Command) (domain.ContactSubmission, error) {
	var r io.Reader = cmd.InOrStdin()
	if contactFile != "" {
		f, err := os.Open(contactFile)
		if err != nil {
			return domain.ContactSubmission{}, fmt.Errorf("failed to open submission: %w", err)
		}
		defer f.Close()
		r = f
	}

	var sub domain.ContactSubmission
	if err := json.NewDecoder(r).Decode(&sub); err != nil {
		return domain.ContactSubmission{}, fmt.Errorf("failed to decode submission: %w", err)
	}
	if sub.Doc == nil {
		return domain.ContactSubmission{}, errors.New("submission has no doc")
	}
	return sub, nil
}

func printSaveResult(cmd *cobra.Command, result *domain.SaveResult) {
	cmd.Printf("Contact: %s\n", result.DocID)
	for _, r := range result.Results {
		if r.OK {
			cmd.Printf("  %s saved (%s)\n", r.ID, r.Rev)
		} else {
			cmd.Printf("  %s failed: %s\n", r.ID, r.Reason)
		}
	}
}

func runContactGet(cmd *cobra.Command, args []string) error {
	if contactService == nil {
		return errors.New("contact service not configured")
	}

	c, err := contactService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get contact: %w", err)
	}
	return printJSON(cmd, c)
}

func runContactList(cmd *cobra.Command, _ []string) error {
	if contactService == nil {
		return errors.New("contact service not configured")
	}

	list, err := contactService.ListSorted(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list contacts: %w", err)
	}

	shown := 0
	for _, c := range list {
		if c.Dead && !contactListDead {
			continue
		}
		marker := ""
		if c.Dead {
			marker = " (deceased)"
		}
		cmd.Printf("  %-18s %-24s %s%s\n", c.Type, c.Name, c.ID, marker)
		shown++
	}
	if shown == 0 {
		cmd.Println("No contacts found.")
	}
	return nil
}
