// Package credential manages the tenant access token used to authenticate
// Open API calls.
package credential
