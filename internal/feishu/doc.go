// Package feishu is the remote call adapter for the Feishu Open API.
//
// Transport sends raw requests and turns a non-zero envelope code into an
// *errors.RemoteAPIError. Client layers the tenant access token on top and
// returns the unwrapped data payload to tool handlers.
package feishu
