package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/wagiedev/feishu-mcp-go/internal/errors"
	"github.com/wagiedev/feishu-mcp-go/internal/feishu"
)

const (
	appsPath          = "/bitable/v1/apps"
	addMemberPath     = "/permission/v2/permissions/add_member"
	userByEmailPath   = "/contact/v3/users/get_by_email"
	defaultPageSize   = 20
	maxPageSize       = 500
	tokenPreviewChars = 20
)

// arguments are validated tool arguments as decoded from JSON.
type arguments map[string]any

func (a arguments) str(name string) string {
	s, _ := a[name].(string)

	return s
}

// integer reads a JSON number. Validation has already checked it is integral.
func (a arguments) integer(name string) int {
	switch v := a[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		n, _ := v.Int64()

		return int(n)
	default:
		return 0
	}
}

func (a arguments) object(name string) map[string]any {
	m, _ := a[name].(map[string]any)

	return m
}

type handlers struct {
	api    API
	tokens TokenAcquirer
	webURL string
}

func (h *handlers) dispatch(ctx context.Context, id ToolID, args arguments) (string, error) {
	switch id {
	case GetTenantAccessToken:
		return h.getTenantAccessToken(ctx)
	case CreateBitable:
		return h.createBitable(ctx, args.str("name"), args.str("folder_token"))
	case GetTables:
		return h.getTables(ctx, args.str("app_token"))
	case AddTableField:
		return h.addTableField(ctx, args.str("app_token"), args.str("table_id"), args.str("field_name"), args.integer("field_type"))
	case AddRecord:
		return h.addRecord(ctx, args.str("app_token"), args.str("table_id"), args.object("fields"))
	case GetRecords:
		return h.getRecords(ctx, args.str("app_token"), args.str("table_id"), args.integer("page_size"))
	case AddCollaborator:
		return h.addCollaborator(ctx, args.str("app_token"), args.str("member_type"), args.str("member_id"), args.str("perm_type"))
	case GetUserByEmail:
		return h.getUserByEmail(ctx, args.str("email"))
	default:
		return "", &errors.UnknownToolError{Name: id.String()}
	}
}

func (h *handlers) getTenantAccessToken(ctx context.Context) (string, error) {
	token, err := h.tokens.Acquire(ctx)
	if err != nil {
		return "", err
	}

	preview := token
	if len(preview) > tokenPreviewChars {
		preview = preview[:tokenPreviewChars]
	}

	return fmt.Sprintf("✅ 成功获取访问令牌: %s...", preview), nil
}

func (h *handlers) createBitable(ctx context.Context, name, folderToken string) (string, error) {
	body := map[string]any{"name": name}
	if folderToken != "" {
		body["folder_token"] = folderToken
	}

	var out struct {
		App struct {
			AppToken string `json:"app_token"`
		} `json:"app"`
	}

	if err := h.api.Call(ctx, feishu.JSONRequest(http.MethodPost, appsPath, body), &out); err != nil {
		return "", fmt.Errorf("failed to create bitable: %w", err)
	}

	appToken := out.App.AppToken

	return fmt.Sprintf("✅ 成功创建多维表格\n应用Token: %s\n应用链接: %s%s", appToken, h.webURL, appToken), nil
}

func (h *handlers) getTables(ctx context.Context, appToken string) (string, error) {
	var out struct {
		Items []struct {
			TableID string `json:"table_id"`
			Name    string `json:"name"`
		} `json:"items"`
	}

	req := feishu.QueryRequest(http.MethodGet, feishu.Path(appsPath, appToken, "tables"), nil)
	if err := h.api.Call(ctx, req, &out); err != nil {
		return "", fmt.Errorf("failed to get tables: %w", err)
	}

	lines := make([]string, 0, len(out.Items))
	for _, t := range out.Items {
		lines = append(lines, fmt.Sprintf("- %s: %s", t.TableID, t.Name))
	}

	return fmt.Sprintf("✅ 获取到 %d 个数据表:\n%s", len(out.Items), strings.Join(lines, "\n")), nil
}

func (h *handlers) addTableField(ctx context.Context, appToken, tableID, fieldName string, fieldType int) (string, error) {
	body := map[string]any{
		"field_name": fieldName,
		"type":       fieldType,
	}

	req := feishu.JSONRequest(http.MethodPost, feishu.Path(appsPath, appToken, "tables", tableID, "fields"), body)
	if err := h.api.Call(ctx, req, nil); err != nil {
		return "", fmt.Errorf("failed to add field: %w", err)
	}

	return "✅ 成功添加字段: " + fieldName, nil
}

func (h *handlers) addRecord(ctx context.Context, appToken, tableID string, fields map[string]any) (string, error) {
	req := feishu.JSONRequest(http.MethodPost, feishu.Path(appsPath, appToken, "tables", tableID, "records"),
		map[string]any{"fields": fields})
	if err := h.api.Call(ctx, req, nil); err != nil {
		return "", fmt.Errorf("failed to add record: %w", err)
	}

	return "✅ 成功添加记录", nil
}

func (h *handlers) getRecords(ctx context.Context, appToken, tableID string, pageSize int) (string, error) {
	var out struct {
		Items []json.RawMessage `json:"items"`
	}

	query := url.Values{"page_size": {strconv.Itoa(pageSize)}}

	req := feishu.QueryRequest(http.MethodGet, feishu.Path(appsPath, appToken, "tables", tableID, "records"), query)
	if err := h.api.Call(ctx, req, &out); err != nil {
		return "", fmt.Errorf("failed to get records: %w", err)
	}

	records := out.Items
	if records == nil {
		records = []json.RawMessage{}
	}

	pretty, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format records: %w", err)
	}

	return fmt.Sprintf("✅ 获取到 %d 条记录:\n%s", len(records), pretty), nil
}

func (h *handlers) addCollaborator(ctx context.Context, appToken, memberType, memberID, permType string) (string, error) {
	form := url.Values{
		"resource_type": {"bitable"},
		"resource_id":   {appToken},
		"perm_type":     {permType},
		"member_type":   {memberType},
		"member_id":     {memberID},
	}

	if err := h.api.Call(ctx, feishu.FormRequest(http.MethodPost, addMemberPath, form), nil); err != nil {
		return "", fmt.Errorf("failed to add collaborator: %w", err)
	}

	return fmt.Sprintf("✅ 成功添加协作者: %s (%s)", memberID, permType), nil
}

func (h *handlers) getUserByEmail(ctx context.Context, email string) (string, error) {
	body := map[string]any{
		"emails":           []string{email},
		"include_resigned": false,
	}

	var out struct {
		UserList []struct {
			UserID string `json:"user_id"`
			OpenID string `json:"open_id"`
			Name   string `json:"name"`
		} `json:"user_list"`
	}

	if err := h.api.Call(ctx, feishu.JSONRequest(http.MethodPost, userByEmailPath, body), &out); err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if len(out.UserList) == 0 {
		return "", &errors.NotFoundError{Kind: "User", Key: email}
	}

	user := out.UserList[0]

	openID := user.OpenID
	if openID == "" {
		// get_by_email reports the open_id in user_id by default.
		openID = user.UserID
	}

	if openID == "" {
		return "", &errors.NotFoundError{Kind: "User", Key: email}
	}

	name := user.Name
	if name == "" {
		name = "N/A"
	}

	return fmt.Sprintf("✅ 找到用户:\n姓名: %s\nOpen ID: %s\n邮箱: %s", name, openID, email), nil
}
