package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wagiedev/feishu-mcp-go/internal/mcp"
)

func newClientConfigCommand(flags *globalFlags) *cobra.Command {
	var (
		name          string
		command       string
		includeSecret bool
	)

	cmd := &cobra.Command{
		Use:   "client-config",
		Short: "Print an mcpServers entry that launches this binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.load()
			if err != nil {
				return err
			}

			if command == "" {
				command, err = os.Executable()
				if err != nil {
					return fmt.Errorf("resolve executable path: %w", err)
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)

			return enc.Encode(mcp.NewRegistration(name, command, &opts.Feishu, includeSecret))
		},
	}

	cmd.Flags().StringVar(&name, "name", "feishu", "server name in the mcpServers map")
	cmd.Flags().StringVar(&command, "command", "", "command clients run (default: this executable)")
	cmd.Flags().BoolVar(&includeSecret, "include-secret", false, "emit the app secret instead of a placeholder")

	return cmd
}
