package mcp

import (
	"context"
	stderrors "errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/feishu-mcp-go/internal/errors"
)

// NewSDKServer builds an MCP SDK server that serves the dispatcher's tools
// and resources.
//
// The SDK answers calls to unregistered tools with a protocol error. A
// receiving middleware routes those calls through CallTool instead, so they
// produce an error result like any other tool failure.
func (d *Dispatcher) NewSDKServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: d.name, Version: d.version},
		&mcp.ServerOptions{Logger: d.log},
	)

	for _, tool := range d.ListTools() {
		server.AddTool(tool, d.handleTool)
	}

	for _, resource := range d.ListResources() {
		server.AddResource(resource, d.handleResource)
	}

	server.AddReceivingMiddleware(d.unknownToolMiddleware)

	return server
}

// Serve runs an SDK server on transport until the peer disconnects or ctx is
// cancelled.
func (d *Dispatcher) Serve(ctx context.Context, transport mcp.Transport) error {
	d.log.Info("Serving", "name", d.name, "version", d.version, "tools", len(d.tools.List()))

	return d.NewSDKServer().Run(ctx, transport)
}

func (d *Dispatcher) handleTool(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return d.CallTool(ctx, req.Params.Name, req.Params.Arguments), nil
}

func (d *Dispatcher) handleResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	result, err := d.ReadResource(ctx, req.Params.URI)
	if err != nil {
		var notFound *errors.NotFoundError
		if stderrors.As(err, &notFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}

		return nil, err
	}

	return result, nil
}

func (d *Dispatcher) unknownToolMiddleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if method != methodCallTool {
			return next(ctx, method, req)
		}

		call, ok := req.(*mcp.CallToolRequest)
		if !ok || call.Params == nil {
			return next(ctx, method, req)
		}

		if _, known := d.tools.Lookup(call.Params.Name); known {
			return next(ctx, method, req)
		}

		return d.CallTool(ctx, call.Params.Name, call.Params.Arguments), nil
	}
}
