package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	feishumcp "github.com/wagiedev/feishu-mcp-go"
)

func newServeCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdin and stdout (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.load()
			if err != nil {
				return err
			}

			logger, closeLog, err := feishumcp.NewLogger(os.Stderr, opts.Log)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			opts.Logger = logger

			server, err := feishumcp.NewServer(feishumcp.WithOptions(opts))
			if err != nil {
				return err
			}

			logger.Info("feishu mcp server running on stdio",
				"version", feishumcp.Version,
				"base_url", opts.Feishu.BaseURL,
				"tools", len(server.ListTools()),
			)

			err = server.Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				logger.Info("shutting down")

				return nil
			}

			return err
		},
	}
}
