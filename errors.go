package feishumcp

import "github.com/wagiedev/feishu-mcp-go/internal/errors"

// Re-export error types from internal package

// CredentialError indicates the tenant access token could not be obtained.
type CredentialError = errors.CredentialError

// RemoteAPIError indicates the Feishu API answered with a non-zero code.
type RemoteAPIError = errors.RemoteAPIError

// NotFoundError indicates a lookup returned no entity.
type NotFoundError = errors.NotFoundError

// UnknownToolError indicates a call named a tool absent from the catalog.
type UnknownToolError = errors.UnknownToolError

// InvalidArgumentError indicates tool arguments failed schema validation.
type InvalidArgumentError = errors.InvalidArgumentError

// GatewayError is the base interface for all gateway errors.
type GatewayError = errors.GatewayError

// Re-export sentinel errors from internal package.
var (
	// ErrMissingCredentials indicates the app id or app secret is not configured.
	ErrMissingCredentials = errors.ErrMissingCredentials

	// ErrEmptyToken indicates the token exchange returned no token.
	ErrEmptyToken = errors.ErrEmptyToken
)
