package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	feishumcp "github.com/wagiedev/feishu-mcp-go"
)

func newToolsCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalog as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.load()
			if err != nil {
				return err
			}

			server, err := feishumcp.NewServer(feishumcp.WithOptions(opts))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)

			return enc.Encode(server.ListTools())
		},
	}
}
