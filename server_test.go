package feishumcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// fakeOpenAPI serves the token exchange and the Bitable endpoints used in tests.
type fakeOpenAPI struct {
	exchanges atomic.Int32
	records   atomic.Int32
	lastForm  atomic.Value
}

func (f *fakeOpenAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /open-apis/auth/v3/tenant_access_token/internal", func(w http.ResponseWriter, _ *http.Request) {
		f.exchanges.Add(1)
		time.Sleep(20 * time.Millisecond)
		_, _ = io.WriteString(w, `{"code":0,"msg":"ok","tenant_access_token":"t-root-test-token-abcdefgh","expire":7200}`)
	})

	mux.HandleFunc("POST /open-apis/bitable/v1/apps/{app}/tables/{table}/records", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer t-root-test-token-abcdefgh", r.Header.Get("Authorization"))
		f.records.Add(1)
		_, _ = io.WriteString(w, `{"code":0,"data":{"record":{"record_id":"rec1"}}}`)
	})

	mux.HandleFunc("POST /open-apis/permission/v2/permissions/add_member", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		f.lastForm.Store(r.PostForm.Encode())
		_, _ = io.WriteString(w, `{"code":1063002,"msg":"Permission denied"}`)
	})

	return mux
}

func newTestServer(t *testing.T, opts ...Option) (*Server, *fakeOpenAPI) {
	t.Helper()

	remote := &fakeOpenAPI{}
	srv := httptest.NewServer(remote.handler(t))
	t.Cleanup(srv.Close)

	base := []Option{
		WithAppCredentials("cli_test_app_id", "test-secret"),
		WithBaseURL(srv.URL + "/open-apis"),
		WithTimeout(5 * time.Second),
	}

	server, err := NewServer(append(base, opts...)...)
	require.NoError(t, err)

	return server, remote
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	return text.Text
}

// TestNewServer_InvalidOptions tests that malformed options fail at startup.
func TestNewServer_InvalidOptions(t *testing.T) {
	_, err := NewServer(WithBaseURL("ftp://open.feishu.cn"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid options")
}

// TestNewServer_NoCredentials tests that missing secrets are reported per call.
func TestNewServer_NoCredentials(t *testing.T) {
	server, err := NewServer()
	require.NoError(t, err)
	require.Len(t, server.ListTools(), 8)
	require.False(t, server.HasToken())

	result := server.CallTool(context.Background(), "get_tables", map[string]any{"app_token": "bascn"})
	require.True(t, result.IsError)
	require.Contains(t, textOf(t, result), "FEISHU_APP_ID and FEISHU_APP_SECRET must be set")
}

// TestServer_ConcurrentCallsShareOneTokenExchange tests credential acquisition under concurrency.
func TestServer_ConcurrentCallsShareOneTokenExchange(t *testing.T) {
	server, remote := newTestServer(t)

	g, ctx := errgroup.WithContext(context.Background())

	for range 8 {
		g.Go(func() error {
			result := server.CallTool(ctx, "add_record", map[string]any{
				"app_token": "bascnX",
				"table_id":  "tblY",
				"fields":    map[string]any{"Title": "hello"},
			})
			if result.IsError {
				return fmt.Errorf("add_record failed: %v", result.Content)
			}

			return nil
		})
	}

	require.NoError(t, g.Wait())
	require.Equal(t, int32(1), remote.exchanges.Load())
	require.Equal(t, int32(8), remote.records.Load())
	require.True(t, server.HasToken())
}

// TestServer_AddCollaboratorFailureCarriesCode tests the form-encoded call and its error text.
func TestServer_AddCollaboratorFailureCarriesCode(t *testing.T) {
	server, remote := newTestServer(t)

	result := server.CallTool(context.Background(), "add_collaborator", map[string]any{
		"app_token":   "bascnX",
		"member_type": "user",
		"member_id":   "ou_1",
		"perm_type":   "full_access",
	})
	require.True(t, result.IsError)
	require.Equal(t, "Error: failed to add collaborator: Permission denied (code: 1063002)", textOf(t, result))

	form, _ := remote.lastForm.Load().(string)
	require.Contains(t, form, "resource_type=bitable")
	require.Contains(t, form, "perm_type=full_access")
}

// TestServer_ReadResource tests the configuration snapshot and unknown URIs.
func TestServer_ReadResource(t *testing.T) {
	server, _ := newTestServer(t)

	result, err := server.ReadResource(context.Background(), ConfigResourceURI)
	require.NoError(t, err)

	var snapshot map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &snapshot))
	require.Equal(t, "cli_test_a...", snapshot["app_id"])
	require.Equal(t, true, snapshot["has_secret"])
	require.NotContains(t, result.Contents[0].Text, "test-secret")

	_, err = server.ReadResource(context.Background(), "feishu://other")

	nf, ok := errors.AsType[*NotFoundError](err)
	require.True(t, ok)
	require.Equal(t, "feishu://other", nf.Key)
}

// TestServer_ServeInMemory tests a full protocol session over in-memory transports.
func TestServer_ServeInMemory(t *testing.T) {
	server, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, serverTransport) }()

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	initResult := session.InitializeResult()
	require.Equal(t, ServerName, initResult.ServerInfo.Name)
	require.Equal(t, Version, initResult.ServerInfo.Version)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "get_tenant_access_token"})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.True(t, strings.HasPrefix(textOf(t, result), "✅ 成功获取访问令牌: t-root-test-token-ab..."))

	require.NoError(t, session.Close())

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after the client disconnected")
	}
}
