package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/feishu-mcp-go/internal/errors"
	"github.com/wagiedev/feishu-mcp-go/internal/resources"
	"github.com/wagiedev/feishu-mcp-go/internal/tools"
)

// methodCallTool is the protocol method name of a tool invocation.
const methodCallTool = "tools/call"

// Dispatcher routes protocol requests to the tool and resource registries.
//
// CallTool is the single fault boundary of the gateway: every failure while
// executing a tool, including unknown names, bad arguments and panics, becomes
// an error result instead of a protocol error. Resource and listing failures
// are protocol errors.
type Dispatcher struct {
	name      string
	version   string
	tools     *tools.Registry
	resources *resources.Registry
	log       *slog.Logger
}

// NewDispatcher creates a Dispatcher over the given registries.
func NewDispatcher(
	name, version string,
	toolRegistry *tools.Registry,
	resourceRegistry *resources.Registry,
	logger *slog.Logger,
) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Dispatcher{
		name:      name,
		version:   version,
		tools:     toolRegistry,
		resources: resourceRegistry,
		log:       logger.With("component", "dispatcher"),
	}
}

// Name returns the server name.
func (d *Dispatcher) Name() string {
	return d.name
}

// Version returns the server version.
func (d *Dispatcher) Version() string {
	return d.version
}

// ListTools returns the advertised tools in catalog order.
func (d *Dispatcher) ListTools() []*mcp.Tool {
	descriptors := d.tools.List()

	result := make([]*mcp.Tool, 0, len(descriptors))
	for _, t := range descriptors {
		tool := NewTool(t.Name, t.Description, t.InputSchema)
		if t.ID.ReadOnly() {
			tool.Annotations = &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true}
		}

		result = append(result, tool)
	}

	return result
}

// ListResources returns resource metadata.
func (d *Dispatcher) ListResources() []*mcp.Resource {
	descriptors := d.resources.List()

	result := make([]*mcp.Resource, 0, len(descriptors))
	for _, r := range descriptors {
		result = append(result, &mcp.Resource{
			URI:         r.URI,
			Name:        r.Name,
			Description: r.Description,
			MIMEType:    r.MIMEType,
		})
	}

	return result
}

// ReadResource returns the content of uri. Unknown URIs fail with
// *errors.NotFoundError.
func (d *Dispatcher) ReadResource(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	content, err := d.resources.Read(ctx, uri)
	if err != nil {
		d.log.Warn("Resource read failed", "uri", uri, "error", err)

		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      content.URI,
			MIMEType: content.MIMEType,
			Text:     content.Text,
		}},
	}, nil
}

// CallTool executes a tool by name with raw JSON arguments. It never returns
// a nil result and never lets a failure escape.
func (d *Dispatcher) CallTool(ctx context.Context, name string, arguments json.RawMessage) (result *mcp.CallToolResult) {
	callID := ulid.Make().String()
	log := d.log.With("call_id", callID, "tool", name)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("Tool handler panicked", "panic", r)

			result = ErrorResult(fmt.Sprintf("Error: internal error in %s: %v", name, r))
		}
	}()

	text, err := d.callTool(ctx, name, arguments)
	if err != nil {
		log.Warn("Tool call failed",
			"error", err,
			"kind", errorKind(err),
			"elapsed", time.Since(start),
		)

		return ErrorResult("Error: " + err.Error())
	}

	log.Info("Tool call succeeded", "elapsed", time.Since(start))

	return TextResult(text)
}

func (d *Dispatcher) callTool(ctx context.Context, name string, arguments json.RawMessage) (string, error) {
	if _, ok := d.tools.Lookup(name); !ok {
		return "", &errors.UnknownToolError{Name: name}
	}

	args, err := ParseArguments(arguments)
	if err != nil {
		return "", &errors.InvalidArgumentError{Tool: name, Reason: "arguments must be a JSON object", Err: err}
	}

	return d.tools.Call(ctx, name, args)
}

// errorKind names the error category for log records.
func errorKind(err error) string {
	var (
		credErr     *errors.CredentialError
		apiErr      *errors.RemoteAPIError
		notFoundErr *errors.NotFoundError
		unknownErr  *errors.UnknownToolError
		invalidErr  *errors.InvalidArgumentError
	)

	switch {
	case stderrors.As(err, &credErr):
		return "credential"
	case stderrors.As(err, &apiErr):
		return "remote_api"
	case stderrors.As(err, &notFoundErr):
		return "not_found"
	case stderrors.As(err, &unknownErr):
		return "unknown_tool"
	case stderrors.As(err, &invalidErr):
		return "invalid_argument"
	default:
		return "internal"
	}
}

// TextResult creates a CallToolResult with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// ErrorResult creates a CallToolResult indicating an error.
func ErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}

// NewTool creates an mcp.Tool with the given parameters.
func NewTool(name, description string, inputSchema *jsonschema.Schema) *mcp.Tool {
	return &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: inputSchema,
	}
}

// ParseArguments unmarshals raw tool arguments into a map. Absent or null
// arguments yield an empty map.
func ParseArguments(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return make(map[string]any), nil
	}

	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("failed to unmarshal arguments: %w", err)
	}

	if args == nil {
		args = make(map[string]any)
	}

	return args, nil
}
