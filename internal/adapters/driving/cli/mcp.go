package cli

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mukesh2006/medic/internal/adapters/driving/mcp"
)

var (
	mcpPort int
	mcpHost string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose medic to MCP clients",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server offering the submit_sms,
save_contact, get_contact and list_contacts tools plus read-only resources
for forms, records and contacts.

Without --port the server speaks JSON-RPC over stdio, which is what desktop
assistants launch. With --port it serves the streamable HTTP transport on /mcp.

Examples:
  medic mcp serve
  medic mcp serve --port 8080 --host 0.0.0.0`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "127.0.0.1", "HTTP bind host")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if mcpPort < 0 || mcpPort > 65535 {
		return errors.New("--port must be between 0 and 65535")
	}

	ports := &mcp.Ports{
		Intake:   intakeService,
		Contacts: contactService,
		Forms:    formSource,
	}
	server, err := mcp.NewServer(ports, mcp.WithVersion(version))
	if err != nil {
		return fmt.Errorf("failed to start MCP server: %w", err)
	}

	if mcpPort == 0 {
		return server.Run(cmd.Context())
	}

	addr := net.JoinHostPort(mcpHost, strconv.Itoa(mcpPort))
	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://%s%s\n", addr, mcp.Endpoint)
	return server.RunHTTP(cmd.Context(), addr)
}
