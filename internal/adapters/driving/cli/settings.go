package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mukesh2006/medic/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the document store, SMS locales and the HTTP gateway.

Settings live in ~/.medic/config.toml. MEDIC_* environment variables
override file values.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsStoreCmd = &cobra.Command{
	Use:   "store [driver]",
	Short: "Set the document store driver",
	Long: `Set the backend documents are stored in.

Available drivers:
  sqlite - local SQLite file (default)
  mongo  - MongoDB server, see store.mongo_uri
  memory - process memory, lost on exit

Without an argument the driver is chosen interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsStore,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsStoreCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Driver: %s\n", settings.Store.Driver.Description())
	switch settings.Store.Driver {
	case domain.StoreDriverSQLite:
		path := settings.Store.Path
		if path == "" {
			path = "(default)"
		}
		cmd.Printf("  Path: %s\n", path)
	case domain.StoreDriverMongo:
		cmd.Printf("  URI: %s\n", maskURI(settings.Store.MongoURI))
		cmd.Printf("  Database: %s\n", settings.Store.MongoDatabase)
	}
	cmd.Printf("  Timeout: %s\n", settings.Store.Timeout)
	cmd.Println()

	cmd.Println("[SMS]")
	cmd.Printf("  Locale: %s\n", settings.SMS.Locale)
	cmd.Printf("  Task locale: %s\n", settings.SMS.TaskLocale)
	if settings.SMS.FormsPath != "" {
		cmd.Printf("  Forms path: %s\n", settings.SMS.FormsPath)
	}
	cmd.Println()

	cmd.Println("[Gateway]")
	cmd.Printf("  Address: %s\n", settings.Gateway.Addr)
	if settings.Gateway.RatePerSecond > 0 {
		cmd.Printf("  Rate limit: %g/s (burst %d)\n", settings.Gateway.RatePerSecond, settings.Gateway.Burst)
	} else {
		cmd.Println("  Rate limit: off")
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'medic settings store' to fix the store configuration.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsStore(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var driver domain.StoreDriver
	if len(args) == 1 {
		driver = domain.StoreDriver(strings.ToLower(args[0]))
	} else {
		var err error
		driver, err = chooseDriver(cmd, cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	if err := settingsService.SetStoreDriver(driver); err != nil {
		return fmt.Errorf("failed to set store driver: %w", err)
	}
	cmd.Printf("Store driver set to: %s\n", driver.Description())
	return nil
}

func chooseDriver(cmd *cobra.Command, in io.Reader) (domain.StoreDriver, error) {
	reader := bufio.NewReader(in)

	cmd.Println("Select Store Driver")
	cmd.Println("-------------------")
	drivers := domain.AllStoreDrivers()
	for i, d := range drivers {
		cmd.Printf("  %d. %s\n", i+1, d.Description())
	}
	cmd.Print("\nEnter choice: ")
	idx := parseChoice(readLine(reader), len(drivers), 0)
	if idx == 0 {
		return "", errors.New("invalid selection")
	}
	return drivers[idx-1], nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// maskURI hides the password of a connection string.
func maskURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), "xxxxx")
	return strings.Replace(u.String(), ":xxxxx@", ":****@", 1)
}
