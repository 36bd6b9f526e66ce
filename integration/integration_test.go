//go:build integration

package integration

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	feishumcp "github.com/wagiedev/feishu-mcp-go"
)

// newLiveServer creates a server against the real Open API, skipping the test
// when no app credentials are configured.
func newLiveServer(t *testing.T) *feishumcp.Server {
	t.Helper()

	if os.Getenv("FEISHU_APP_ID") == "" || os.Getenv("FEISHU_APP_SECRET") == "" {
		t.Skip("FEISHU_APP_ID and FEISHU_APP_SECRET not set")
	}

	server, err := feishumcp.NewServer(
		feishumcp.WithEnv(),
		feishumcp.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	)
	require.NoError(t, err)

	return server
}

// requireEnv returns the value of key, skipping the test when it is unset.
func requireEnv(t *testing.T, key string) string {
	t.Helper()

	v := os.Getenv(key)
	if v == "" {
		t.Skipf("%s not set", key)
	}

	return v
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)

	return ctx
}

// callOK invokes a tool and fails the test on an error result.
func callOK(t *testing.T, ctx context.Context, server *feishumcp.Server, name string, args map[string]any) string {
	t.Helper()

	result := server.CallTool(ctx, name, args)
	text := resultText(t, result)
	require.False(t, result.IsError, "%s failed: %s", name, text)
	require.True(t, strings.HasPrefix(text, "✅"), "unexpected %s output: %s", name, text)

	return text
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	return text.Text
}

// lineValue returns the text after prefix on the first matching line.
func lineValue(text, prefix string) string {
	for line := range strings.SplitSeq(text, "\n") {
		if v, ok := strings.CutPrefix(line, prefix); ok {
			return strings.TrimSpace(v)
		}
	}

	return ""
}
