//go:build integration

package integration

import (
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// TestSession_ToolCallOverProtocol tests a live call through a full MCP session.
func TestSession_ToolCallOverProtocol(t *testing.T) {
	server := newLiveServer(t)
	ctx := testContext(t)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, serverTransport) }()

	client := mcp.NewClient(&mcp.Implementation{Name: "integration", Version: "0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 8)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "get_tenant_access_token"})
	require.NoError(t, err)
	require.False(t, result.IsError, resultText(t, result))

	require.NoError(t, session.Close())
	<-done
}
