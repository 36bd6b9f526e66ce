package feishumcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/feishu-mcp-go/internal/credential"
	"github.com/wagiedev/feishu-mcp-go/internal/feishu"
	internalmcp "github.com/wagiedev/feishu-mcp-go/internal/mcp"
	"github.com/wagiedev/feishu-mcp-go/internal/resources"
	"github.com/wagiedev/feishu-mcp-go/internal/tools"
)

// ServerName is the name reported in the MCP initialize handshake.
const ServerName = "feishu-mcp-server"

// Version is the server version. It is overridden at build time with
// -ldflags "-X github.com/wagiedev/feishu-mcp-go.Version=...".
var Version = "1.0.0"

// ConfigResourceURI is the URI of the redacted configuration resource.
const ConfigResourceURI = resources.ConfigURI

// Server is the Feishu tool-dispatch gateway.
//
// It is safe for concurrent use. The only shared mutable state is the cached
// tenant access token.
type Server struct {
	options     *Options
	credentials *credential.Manager
	dispatcher  *internalmcp.Dispatcher
}

// NewServer creates a Server. Missing app credentials are not an error:
// the server starts and every tool call reports a credential failure.
func NewServer(opts ...Option) (*Server, error) {
	options := applyOptions(opts)

	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	transport := feishu.NewTransport(feishu.TransportOptions{
		BaseURL:    options.Feishu.BaseURL,
		HTTPClient: options.HTTPClient,
		Timeout:    options.Feishu.Timeout,
		RateLimit:  options.Feishu.RateLimit,
		RateBurst:  options.Feishu.RateBurst,
		Logger:     log,
	})

	manager := credential.NewManager(options.Feishu.AppID, options.Feishu.AppSecret, transport, log)

	toolRegistry, err := tools.NewRegistry(tools.Config{
		API:    feishu.NewClient(transport, manager, log),
		Tokens: manager,
		WebURL: options.Feishu.WebURL,
		Logger: log,
	})
	if err != nil {
		return nil, fmt.Errorf("build tool registry: %w", err)
	}

	resourceRegistry := resources.NewRegistry(options.Feishu.AppID, options.Feishu.AppSecret != "", manager)

	if !options.Feishu.HasCredentials() {
		log.Warn("FEISHU_APP_ID or FEISHU_APP_SECRET is not set, tool calls will fail until configured")
	}

	return &Server{
		options:     options,
		credentials: manager,
		dispatcher:  internalmcp.NewDispatcher(ServerName, Version, toolRegistry, resourceRegistry, log),
	}, nil
}

// Run serves the protocol over stdin and stdout until the client disconnects
// or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, &mcp.StdioTransport{})
}

// Serve serves the protocol over transport.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	return s.dispatcher.Serve(ctx, transport)
}

// MCPServer returns a new MCP SDK server wired to this gateway, for callers
// that manage sessions or transports themselves.
func (s *Server) MCPServer() *mcp.Server {
	return s.dispatcher.NewSDKServer()
}

// ListTools returns the tool catalog.
func (s *Server) ListTools() []*mcp.Tool {
	return s.dispatcher.ListTools()
}

// ListResources returns resource metadata.
func (s *Server) ListResources() []*mcp.Resource {
	return s.dispatcher.ListResources()
}

// ReadResource returns the content of uri. Unknown URIs fail with
// *NotFoundError.
func (s *Server) ReadResource(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	return s.dispatcher.ReadResource(ctx, uri)
}

// CallTool invokes a tool in-process. Failures are reported in the result
// with IsError set, never as a Go error.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) *mcp.CallToolResult {
	raw, err := json.Marshal(args)
	if err != nil {
		return internalmcp.ErrorResult("Error: failed to marshal arguments: " + err.Error())
	}

	return s.dispatcher.CallTool(ctx, name, raw)
}

// HasToken reports whether a tenant access token is cached.
func (s *Server) HasToken() bool {
	return s.credentials.HasToken()
}

// Options returns the effective options. The returned value must not be
// modified.
func (s *Server) Options() *Options {
	return s.options
}
