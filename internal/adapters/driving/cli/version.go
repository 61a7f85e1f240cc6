package cli

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionJSON bool

type versionInfo struct {
	Version  string   `json:"version"`
	Revision string   `json:"revision,omitempty"`
	Go       string   `json:"go"`
	Platform string   `json:"platform"`
	Forms    []string `json:"forms,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := buildVersionInfo()
		if versionJSON {
			return printJSON(cmd, info)
		}
		cmd.Printf("medic version %s\n", info.Version)
		if info.Revision != "" {
			cmd.Printf("  revision: %s\n", info.Revision)
		}
		cmd.Printf("  go: %s %s\n", info.Go, info.Platform)
		if len(info.Forms) > 0 {
			cmd.Printf("  forms: %d loaded\n", len(info.Forms))
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(versionCmd)
}

func buildVersionInfo() versionInfo {
	info := versionInfo{
		Version:  version,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				info.Revision = s.Value
			}
		}
	}
	if formSource != nil {
		info.Forms = formSource.Codes()
	}
	return info
}
