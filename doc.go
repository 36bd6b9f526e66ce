// Package feishumcp is a Model Context Protocol gateway for the Feishu (Lark)
// Open API.
//
// A Server advertises a fixed catalog of tools for Bitable apps, permissions
// and contacts plus one read-only resource, feishu://config. Each tool call is
// validated against the tool's JSON Schema and executed against the Open API
// with a cached tenant_access_token.
//
// # Basic Usage
//
// Serve over stdio, reading credentials from the environment:
//
//	server, err := feishumcp.NewServer(
//	    feishumcp.WithEnv(),
//	    feishumcp.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := server.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # In-process Calls
//
// Tools can be invoked without a transport. Failures never surface as Go
// errors; they are reported in the result with IsError set and text starting
// with "Error: ":
//
//	result := server.CallTool(ctx, "get_tables", map[string]any{"app_token": "bascn..."})
//	if result.IsError {
//	    // result.Content[0] holds the message
//	}
//
// # Configuration
//
// Load reads a TOML file and overlays FEISHU_APP_ID, FEISHU_APP_SECRET,
// FEISHU_BASE_URL, FEISHU_MCP_LOG_LEVEL and FEISHU_MCP_LOG_FILE:
//
//	opts, err := feishumcp.Load("/etc/feishu-mcp/config.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	server, err := feishumcp.NewServer(feishumcp.WithOptions(opts))
//
// # Error Handling
//
// Errors returned by ReadResource and carried inside failed tool results are
// typed:
//
//	if _, err := server.ReadResource(ctx, uri); err != nil {
//	    if nf, ok := errors.AsType[*feishumcp.NotFoundError](err); ok {
//	        log.Printf("no such %s: %s", nf.Kind, nf.Key)
//	    }
//	}
//
// # Logging
//
// Stdout carries the protocol, so logs go to stderr or a file. The logger
// never records the app secret and shortens tokens to a prefix.
package feishumcp
