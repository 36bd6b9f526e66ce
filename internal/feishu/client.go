package feishu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	gwerrors "github.com/wagiedev/feishu-mcp-go/internal/errors"
)

// TokenSource supplies tenant access tokens to the Client.
type TokenSource interface {
	// Token returns the cached token, acquiring one if none is cached.
	Token(ctx context.Context) (string, error)
	// Invalidate drops token if it is still the cached one.
	Invalidate(token string)
}

// Doer sends a single request. *Transport implements it.
type Doer interface {
	Do(ctx context.Context, req *Request, token string) (*Envelope, error)
}

// Compile-time verification that Transport implements Doer.
var _ Doer = (*Transport)(nil)

// authFailureCodes are the Open API codes that mean the tenant access token
// was rejected (missing, invalid or expired).
var authFailureCodes = map[int]struct{}{
	99991661: {},
	99991663: {},
	99991668: {},
	99991677: {},
}

// IsAuthFailure reports whether err is a remote rejection of the access token.
func IsAuthFailure(err error) bool {
	var apiErr *gwerrors.RemoteAPIError
	if !errors.As(err, &apiErr) {
		return false
	}

	_, ok := authFailureCodes[apiErr.Code]

	return ok
}

// Client performs authenticated Open API calls. Every tool handler reaches
// Feishu through Invoke.
type Client struct {
	doer   Doer
	tokens TokenSource
	log    *slog.Logger
}

// NewClient creates a Client.
func NewClient(doer Doer, tokens TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		doer:   doer,
		tokens: tokens,
		log:    logger.With("component", "feishu_client"),
	}
}

// Invoke sends req and returns the unwrapped data payload.
//
// When the remote side rejects the cached token, the token is invalidated and
// the call is sent once more with a freshly acquired one. Any other failure is
// returned as-is.
func (c *Client) Invoke(ctx context.Context, req *Request) (json.RawMessage, error) {
	if !req.RequiresAuth {
		env, err := c.doer.Do(ctx, req, "")
		if err != nil {
			return nil, err
		}

		return env.Data, nil
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	env, err := c.doer.Do(ctx, req, token)
	if err != nil && IsAuthFailure(err) {
		c.log.Info("Access token rejected, re-authenticating", "path", req.Path, "error", err)
		c.tokens.Invalidate(token)

		token, err = c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}

		env, err = c.doer.Do(ctx, req, token)
	}

	if err != nil {
		return nil, err
	}

	return env.Data, nil
}

// Call sends req and decodes the data payload into out. A nil out discards it.
func (c *Client) Call(ctx context.Context, req *Request, out any) error {
	data, err := c.Invoke(ctx, req)
	if err != nil {
		return err
	}

	if out == nil || len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.Path, err)
	}

	return nil
}
