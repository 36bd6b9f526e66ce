package feishumcp_test

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	feishumcp "github.com/wagiedev/feishu-mcp-go"
)

func TestWithSession_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := feishumcp.WithSession(ctx, func(_ *mcp.ClientSession) error {
		t.Error("callback should not be called with cancelled context")

		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWithSession_InvalidOptions(t *testing.T) {
	err := feishumcp.WithSession(context.Background(), func(_ *mcp.ClientSession) error {
		t.Error("callback should not be called with invalid options")

		return nil
	}, feishumcp.WithBaseURL("ftp://example.com"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid options")
}

func TestWithSession_CallbackError(t *testing.T) {
	sentinel := errors.New("callback failed")

	err := feishumcp.WithSession(context.Background(), func(_ *mcp.ClientSession) error {
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)
}

func TestWithSession_ProtocolView(t *testing.T) {
	ctx := context.Background()

	err := feishumcp.WithSession(ctx, func(s *mcp.ClientSession) error {
		tools, err := s.ListTools(ctx, nil)
		require.NoError(t, err)
		require.Len(t, tools.Tools, 8)

		resources, err := s.ListResources(ctx, nil)
		require.NoError(t, err)
		require.Len(t, resources.Resources, 1)
		require.Equal(t, feishumcp.ConfigResourceURI, resources.Resources[0].URI)

		result, err := s.CallTool(ctx, &mcp.CallToolParams{Name: "no_such_tool"})
		require.NoError(t, err)
		require.True(t, result.IsError)

		text, ok := result.Content[0].(*mcp.TextContent)
		require.True(t, ok)
		require.Equal(t, "Error: Unknown tool: no_such_tool", text.Text)

		return nil
	}, feishumcp.WithAppCredentials("", ""))
	require.NoError(t, err)
}
