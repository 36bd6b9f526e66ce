//go:build integration

package integration

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestBitable_Lifecycle tests creating an app and writing to its first table.
// It creates a real document, so it only runs with FEISHU_INTEGRATION_WRITE set.
func TestBitable_Lifecycle(t *testing.T) {
	server := newLiveServer(t)
	requireEnv(t, "FEISHU_INTEGRATION_WRITE")

	ctx := testContext(t)

	created := callOK(t, ctx, server, "create_bitable", map[string]any{
		"name":         fmt.Sprintf("feishu-mcp integration %s", time.Now().Format(time.RFC3339)),
		"folder_token": os.Getenv("FEISHU_FOLDER_TOKEN"),
	})

	appToken := lineValue(created, "应用Token:")
	require.NotEmpty(t, appToken, created)
	require.Contains(t, lineValue(created, "应用链接:"), appToken)

	tables := callOK(t, ctx, server, "get_tables", map[string]any{"app_token": appToken})

	var tableID string

	for line := range strings.SplitSeq(tables, "\n") {
		if id, _, ok := strings.Cut(strings.TrimPrefix(line, "- "), ":"); ok && strings.HasPrefix(line, "- ") {
			tableID = id

			break
		}
	}

	require.NotEmpty(t, tableID, tables)

	callOK(t, ctx, server, "add_table_field", map[string]any{
		"app_token":  appToken,
		"table_id":   tableID,
		"field_name": "Score",
		"field_type": 2,
	})

	callOK(t, ctx, server, "add_record", map[string]any{
		"app_token": appToken,
		"table_id":  tableID,
		"fields":    map[string]any{"Score": 42},
	})

	records := callOK(t, ctx, server, "get_records", map[string]any{
		"app_token": appToken,
		"table_id":  tableID,
		"page_size": 10,
	})
	require.Contains(t, records, "42")
}

// TestBitable_UnknownApp tests the remote error text for a missing app.
func TestBitable_UnknownApp(t *testing.T) {
	server := newLiveServer(t)

	result := server.CallTool(testContext(t), "get_tables", map[string]any{"app_token": "bascnDoesNotExist0000000000"})
	require.True(t, result.IsError)

	text := resultText(t, result)
	require.True(t, strings.HasPrefix(text, "Error: failed to get tables: "), text)
	require.Contains(t, text, "(code: ")
}
