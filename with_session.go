package feishumcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// WithSession runs fn against an in-process MCP client session connected to a
// new Server, then closes the session and stops the server.
//
// The callback sees the gateway exactly as a remote client would, which is
// useful for tests and for embedding the gateway in a host application.
// If closing the session fails, a warning is logged but does not override the
// callback's error.
//
// Example usage:
//
//	err := feishumcp.WithSession(ctx, func(s *mcp.ClientSession) error {
//	    res, err := s.CallTool(ctx, &mcp.CallToolParams{Name: "get_tenant_access_token"})
//	    if err != nil {
//	        return err
//	    }
//	    // inspect res.IsError and res.Content...
//	    return nil
//	},
//	    feishumcp.WithEnv(),
//	)
func WithSession(ctx context.Context, fn func(*mcp.ClientSession) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	server, err := NewServer(opts...)
	if err != nil {
		return err
	}

	log := server.options.Logger
	if log == nil {
		log = NopLogger()
	}

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	done := make(chan error, 1)
	go func() { done <- server.Serve(serveCtx, serverTransport) }()

	client := mcp.NewClient(&mcp.Implementation{Name: ServerName + "-session", Version: Version}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		<-done

		return fmt.Errorf("failed to connect session: %w", err)
	}

	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			log.Warn("failed to close session", "error", closeErr)
		}

		cancel()
		<-done
	}()

	return fn(session)
}
