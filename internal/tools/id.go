package tools

// ToolID identifies one tool in the fixed catalog.
type ToolID int

// The catalog, in advertised order.
const (
	GetTenantAccessToken ToolID = iota
	CreateBitable
	GetTables
	AddTableField
	AddRecord
	GetRecords
	AddCollaborator
	GetUserByEmail

	toolCount
)

// AllToolIDs returns every ToolID in catalog order.
func AllToolIDs() []ToolID {
	ids := make([]ToolID, 0, toolCount)
	for id := range toolCount {
		ids = append(ids, id)
	}

	return ids
}

// Name returns the wire name of the tool.
func (id ToolID) Name() string {
	switch id {
	case GetTenantAccessToken:
		return "get_tenant_access_token"
	case CreateBitable:
		return "create_bitable"
	case GetTables:
		return "get_tables"
	case AddTableField:
		return "add_table_field"
	case AddRecord:
		return "add_record"
	case GetRecords:
		return "get_records"
	case AddCollaborator:
		return "add_collaborator"
	case GetUserByEmail:
		return "get_user_by_email"
	default:
		return ""
	}
}

func (id ToolID) String() string {
	if name := id.Name(); name != "" {
		return name
	}

	return "ToolID(invalid)"
}

// ReadOnly reports whether the tool only reads remote state.
func (id ToolID) ReadOnly() bool {
	switch id {
	case GetTables, GetRecords, GetUserByEmail:
		return true
	default:
		return false
	}
}
