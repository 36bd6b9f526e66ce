package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/wagiedev/feishu-mcp-go/internal/errors"
	"github.com/wagiedev/feishu-mcp-go/internal/feishu"
)

// API performs authenticated Open API calls. *feishu.Client implements it.
type API interface {
	Call(ctx context.Context, req *feishu.Request, out any) error
}

// TokenAcquirer forces a fresh tenant access token exchange.
// *credential.Manager implements it.
type TokenAcquirer interface {
	Acquire(ctx context.Context) (string, error)
}

// Compile-time verification that the adapter satisfies API.
var _ API = (*feishu.Client)(nil)

// Config holds the dependencies of the tool handlers.
type Config struct {
	API    API
	Tokens TokenAcquirer

	// WebURL prefixes app tokens to form bitable links.
	WebURL string

	Logger *slog.Logger
}

// Descriptor is the advertised metadata of a tool.
type Descriptor struct {
	ID          ToolID
	Name        string
	Description string
	InputSchema *jsonschema.Schema

	resolved *jsonschema.Resolved
}

// Registry is the immutable tool catalog together with its handlers.
// It is safe for concurrent use.
type Registry struct {
	tools    []*Descriptor
	byName   map[string]*Descriptor
	handlers *handlers
	log      *slog.Logger
}

// NewRegistry builds the catalog and resolves every input schema.
func NewRegistry(cfg Config) (*Registry, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := &Registry{
		tools:  make([]*Descriptor, 0, toolCount),
		byName: make(map[string]*Descriptor, toolCount),
		handlers: &handlers{
			api:    cfg.API,
			tokens: cfg.Tokens,
			webURL: cfg.WebURL,
		},
		log: logger.With("component", "tool_registry"),
	}

	for _, id := range AllToolIDs() {
		description, schema := describe(id)

		resolved, err := schema.Resolve(&jsonschema.ResolveOptions{ValidateDefaults: true})
		if err != nil {
			return nil, fmt.Errorf("resolve input schema of %s: %w", id, err)
		}

		d := &Descriptor{
			ID:          id,
			Name:        id.Name(),
			Description: description,
			InputSchema: schema,
			resolved:    resolved,
		}

		r.tools = append(r.tools, d)
		r.byName[d.Name] = d
	}

	return r, nil
}

// List returns the descriptors in catalog order.
func (r *Registry) List() []*Descriptor {
	out := make([]*Descriptor, len(r.tools))
	copy(out, r.tools)

	return out
}

// Lookup finds a tool by wire name.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	d, ok := r.byName[name]

	return d, ok
}

// Call validates args against the tool's schema, fills defaults and runs the
// handler. It returns the success text or the handler's error unchanged.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	d, ok := r.byName[name]
	if !ok {
		return "", &errors.UnknownToolError{Name: name}
	}

	if args == nil {
		args = make(map[string]any)
	}

	if err := d.resolved.ApplyDefaults(&args); err != nil {
		return "", &errors.InvalidArgumentError{Tool: name, Reason: err.Error(), Err: err}
	}

	if err := d.resolved.Validate(args); err != nil {
		return "", &errors.InvalidArgumentError{Tool: name, Reason: err.Error(), Err: err}
	}

	r.log.Debug("Dispatching tool", "tool", name)

	return r.handlers.dispatch(ctx, d.ID, arguments(args))
}

// describe returns the description and input schema of id.
func describe(id ToolID) (string, *jsonschema.Schema) {
	appToken := stringParam("app_token", "多维表格应用token")
	tableID := stringParam("table_id", "数据表ID")

	switch id {
	case GetTenantAccessToken:
		return "获取飞书 tenant_access_token（访问令牌）", objectSchema()
	case CreateBitable:
		return "创建飞书多维表格应用", objectSchema(
			stringParam("name", "多维表格名称"),
			stringParam("folder_token", "文件夹token（可选，空字符串表示根目录）").asOptional(),
		)
	case GetTables:
		return "获取多维表格中的所有数据表", objectSchema(appToken)
	case AddTableField:
		return "为数据表添加字段", objectSchema(
			appToken,
			tableID,
			stringParam("field_name", "字段名称"),
			integerParam("field_type", "字段类型：1=文本，2=数字，3=单选，4=多选，5=日期，7=附件，11=电话，12=邮箱，13=网址，15=进度"),
		)
	case AddRecord:
		return "向数据表添加记录", objectSchema(
			appToken,
			tableID,
			objectParam("fields", "记录字段数据，键值对形式"),
		)
	case GetRecords:
		return "获取数据表中的记录", objectSchema(
			appToken,
			tableID,
			integerParam("page_size", "每页记录数（默认20）").asOptional().between(1, maxPageSize).withDefault(defaultPageSize),
		)
	case AddCollaborator:
		return "添加协作者到多维表格", objectSchema(
			appToken,
			enumParam("member_type", "成员类型：user（用户）、group（用户组）", "user", "group"),
			stringParam("member_id", "成员ID（open_id 或 union_id）"),
			enumParam("perm_type", "权限类型：view（查看）、edit（编辑）、full_access（完全管理）", "view", "edit", "full_access"),
		)
	case GetUserByEmail:
		return "通过邮箱获取用户信息", objectSchema(stringParam("email", "用户邮箱"))
	default:
		panic(fmt.Sprintf("tools: no descriptor for %s", id))
	}
}
