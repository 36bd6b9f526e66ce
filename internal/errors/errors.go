package errors

import (
	"errors"
	"fmt"
)

// GatewayError is the base interface for all gateway errors.
type GatewayError interface {
	error
	IsGatewayError() bool
}

// Compile-time verification that all error types implement GatewayError.
var (
	_ GatewayError = (*CredentialError)(nil)
	_ GatewayError = (*RemoteAPIError)(nil)
	_ GatewayError = (*NotFoundError)(nil)
	_ GatewayError = (*UnknownToolError)(nil)
	_ GatewayError = (*InvalidArgumentError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrMissingCredentials indicates the app id or app secret is not configured.
	ErrMissingCredentials = errors.New("FEISHU_APP_ID and FEISHU_APP_SECRET must be set")

	// ErrEmptyToken indicates the token exchange succeeded but returned no token.
	ErrEmptyToken = errors.New("token exchange returned an empty tenant_access_token")
)

// CredentialError indicates the tenant access token could not be obtained.
type CredentialError struct {
	Err error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("failed to obtain tenant access token: %v", e.Err)
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

// IsGatewayError implements GatewayError.
func (e *CredentialError) IsGatewayError() bool { return true }

// RemoteAPIError indicates the Feishu API answered with a non-zero code.
// Message is the remote msg field, verbatim.
type RemoteAPIError struct {
	Code    int
	Message string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("%s (code: %d)", e.Message, e.Code)
}

// IsGatewayError implements GatewayError.
func (e *RemoteAPIError) IsGatewayError() bool { return true }

// NotFoundError indicates a lookup returned no entity.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// IsGatewayError implements GatewayError.
func (e *NotFoundError) IsGatewayError() bool { return true }

// UnknownToolError indicates a call named a tool absent from the registry.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return "Unknown tool: " + e.Name
}

// IsGatewayError implements GatewayError.
func (e *UnknownToolError) IsGatewayError() bool { return true }

// InvalidArgumentError indicates tool arguments failed schema validation.
type InvalidArgumentError struct {
	Tool   string
	Reason string
	Err    error
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Tool, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error {
	return e.Err
}

// IsGatewayError implements GatewayError.
func (e *InvalidArgumentError) IsGatewayError() bool { return true }
