package mcp

import "github.com/wagiedev/feishu-mcp-go/internal/config"

// ServerType represents how an MCP client launches or reaches a server.
type ServerType string

// ServerTypeStdio launches the server as a subprocess speaking over stdio.
const ServerTypeStdio ServerType = "stdio"

// StdioServerConfig is the client-side entry that launches this gateway.
type StdioServerConfig struct {
	Type    ServerType        `json:"type"`
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// Registration is the "mcpServers" document understood by MCP clients.
type Registration struct {
	MCPServers map[string]*StdioServerConfig `json:"mcpServers"`
}

// NewRegistration describes how a client should launch command as serverName.
// Credentials are emitted as placeholders unless includeSecrets is set.
func NewRegistration(serverName, command string, opts *config.FeishuOptions, includeSecrets bool) *Registration {
	env := map[string]string{
		config.EnvAppID:     "<your app id>",
		config.EnvAppSecret: "<your app secret>",
	}

	if opts != nil {
		if opts.AppID != "" {
			env[config.EnvAppID] = opts.AppID
		}

		if includeSecrets && opts.AppSecret != "" {
			env[config.EnvAppSecret] = opts.AppSecret
		}

		if opts.BaseURL != "" && opts.BaseURL != config.DefaultBaseURL {
			env[config.EnvBaseURL] = opts.BaseURL
		}
	}

	return &Registration{
		MCPServers: map[string]*StdioServerConfig{
			serverName: {
				Type:    ServerTypeStdio,
				Command: command,
				Args:    []string{"serve"},
				Env:     env,
			},
		},
	}
}
