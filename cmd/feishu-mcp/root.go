package main

import (
	"fmt"

	"github.com/spf13/cobra"

	feishumcp "github.com/wagiedev/feishu-mcp-go"
	"github.com/wagiedev/feishu-mcp-go/internal/config"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFile    string
	logFormat  string
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	serve := newServeCommand(flags)

	root := &cobra.Command{
		Use:           "feishu-mcp",
		Short:         "Feishu Open API tools for MCP clients",
		Long:          "feishu-mcp exposes Feishu Bitable, permission and contact operations as MCP tools over stdio.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          serve.RunE,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to a TOML config file (default $"+config.EnvConfigPath+" or the user config dir)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&flags.logFile, "log-file", "", "also write logs to this file, rotated by size")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(
		serve,
		newToolsCommand(flags),
		newClientConfigCommand(flags),
		newVersionCommand(),
	)

	return root
}

// load reads the config file and environment, then applies flag overrides.
func (f *globalFlags) load() (*feishumcp.Options, error) {
	path := f.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	opts, err := feishumcp.Load(path)
	if err != nil {
		return nil, err
	}

	if f.logLevel != "" {
		opts.Log.Level = f.logLevel
	}

	if f.logFile != "" {
		opts.Log.File = f.logFile
	}

	if f.logFormat != "" {
		opts.Log.Format = f.logFormat
	}

	opts.Fill()

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	return opts, nil
}
