package main

import (
	"fmt"

	"github.com/spf13/cobra"

	feishumcp "github.com/wagiedev/feishu-mcp-go"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", feishumcp.ServerName, feishumcp.Version)
		},
	}
}
