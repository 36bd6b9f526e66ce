// Package resources holds the read-only resources exposed by the gateway.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wagiedev/feishu-mcp-go/internal/errors"
)

// ConfigURI is the URI of the redacted configuration snapshot.
const ConfigURI = "feishu://config"

const appIDPreviewChars = 10

// TokenStatus reports whether a credential is cached.
// *credential.Manager implements it.
type TokenStatus interface {
	HasToken() bool
}

// Descriptor is the advertised metadata of a resource.
type Descriptor struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
}

// Content is the body of a resource read.
type Content struct {
	URI      string
	MIMEType string
	Text     string
}

type resource struct {
	Descriptor
	read func(ctx context.Context) (string, error)
}

// Registry is the fixed resource catalog.
type Registry struct {
	resources []*resource
}

// NewRegistry builds the catalog. appID and hasSecret describe the configured
// credentials; tokens is consulted on every read.
func NewRegistry(appID string, hasSecret bool, tokens TokenStatus) *Registry {
	config := &resource{
		Descriptor: Descriptor{
			URI:         ConfigURI,
			Name:        "Feishu Configuration",
			Description: "当前飞书配置信息",
			MIMEType:    "application/json",
		},
		read: func(context.Context) (string, error) {
			return configSnapshot(appID, hasSecret, tokens.HasToken())
		},
	}

	return &Registry{resources: []*resource{config}}
}

// List returns resource metadata without content.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.resources))
	for _, res := range r.resources {
		out = append(out, res.Descriptor)
	}

	return out
}

// Read produces the current content of uri.
func (r *Registry) Read(ctx context.Context, uri string) (*Content, error) {
	for _, res := range r.resources {
		if res.URI != uri {
			continue
		}

		text, err := res.read(ctx)
		if err != nil {
			return nil, err
		}

		return &Content{URI: res.URI, MIMEType: res.MIMEType, Text: text}, nil
	}

	return nil, &errors.NotFoundError{Kind: "Resource", Key: uri}
}

// configSnapshot never includes the secret or the token, only their presence.
func configSnapshot(appID string, hasSecret, hasToken bool) (string, error) {
	shown := "Not configured"
	if appID != "" {
		preview := appID
		if len(preview) > appIDPreviewChars {
			preview = preview[:appIDPreviewChars]
		}

		shown = preview + "..."
	}

	snapshot := struct {
		AppID     string `json:"app_id"`
		HasSecret bool   `json:"has_secret"`
		HasToken  bool   `json:"has_token"`
	}{
		AppID:     shown,
		HasSecret: hasSecret,
		HasToken:  hasToken,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode config snapshot: %w", err)
	}

	return string(data), nil
}
