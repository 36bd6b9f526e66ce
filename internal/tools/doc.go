// Package tools holds the fixed tool catalog and the handler of each tool.
//
// Every tool is identified by a ToolID. NewRegistry builds one Descriptor per
// ToolID with a resolved JSON Schema; Registry.Call validates arguments
// against that schema before the handler runs. Handlers reach Feishu only
// through the API interface and never catch remote or credential errors, so
// callers can inspect them with errors.As.
package tools
