// Package mcp serves the gateway over the Model Context Protocol.
//
// Dispatcher routes list, read and call requests to the tool and resource
// registries and is the single fault boundary for tool execution.
// NewSDKServer exposes the dispatcher through the official MCP SDK server,
// which handles framing and the initialize handshake on any transport.
package mcp
