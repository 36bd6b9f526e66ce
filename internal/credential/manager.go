package credential

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/wagiedev/feishu-mcp-go/internal/errors"
	"github.com/wagiedev/feishu-mcp-go/internal/feishu"
	"github.com/wagiedev/feishu-mcp-go/internal/logging"
)

// TokenPath is the tenant access token exchange endpoint for self-built apps.
const TokenPath = "/auth/v3/tenant_access_token/internal"

// Compile-time verification that Manager can back a feishu.Client.
var _ feishu.TokenSource = (*Manager)(nil)

// Status is a read-only view of the credential slot.
type Status struct {
	HasToken   bool
	AcquiredAt time.Time
}

// Manager owns the single cached tenant access token.
//
// The token is acquired lazily on first use and held until Invalidate is
// called with it. There is no expiry clock. Concurrent acquisitions are
// collapsed into one exchange.
type Manager struct {
	appID     string
	appSecret string
	doer      feishu.Doer
	log       *slog.Logger

	group singleflight.Group

	mu         sync.RWMutex
	token      string
	acquiredAt time.Time
}

// NewManager creates a Manager. appID and appSecret may be empty; every
// acquisition then fails with a *errors.CredentialError.
func NewManager(appID, appSecret string, doer feishu.Doer, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Manager{
		appID:     appID,
		appSecret: appSecret,
		doer:      doer,
		log:       logger.With("component", "credential_manager"),
	}
}

// Token returns the cached token without network I/O when present,
// otherwise acquires and caches a new one.
func (m *Manager) Token(ctx context.Context) (string, error) {
	if token := m.cached(); token != "" {
		return token, nil
	}

	return m.acquire(ctx, "token", func(ctx context.Context) (string, error) {
		// Another caller may have filled the slot while this one waited.
		if token := m.cached(); token != "" {
			return token, nil
		}

		return m.exchange(ctx)
	})
}

// Acquire performs a fresh token exchange and replaces the cached token.
// Calls that overlap an exchange already in flight share its result.
func (m *Manager) Acquire(ctx context.Context) (string, error) {
	return m.acquire(ctx, "acquire", m.exchange)
}

func (m *Manager) acquire(ctx context.Context, key string, fn func(context.Context) (string, error)) (string, error) {
	if m.appID == "" || m.appSecret == "" {
		return "", &errors.CredentialError{Err: errors.ErrMissingCredentials}
	}

	// The exchange outlives a single caller's cancellation since other
	// callers may be joined to it. The HTTP client timeout still bounds it.
	ch := m.group.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return "", &errors.CredentialError{Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}

		token, _ := res.Val.(string)

		return token, nil
	}
}

func (m *Manager) cached() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token
}

func (m *Manager) exchange(ctx context.Context) (string, error) {
	req := &feishu.Request{
		Method: http.MethodPost,
		Path:   TokenPath,
		JSON: map[string]string{
			"app_id":     m.appID,
			"app_secret": m.appSecret,
		},
	}

	env, err := m.doer.Do(ctx, req, "")
	if err != nil {
		m.log.Warn("Token exchange failed", "error", err)

		return "", &errors.CredentialError{Err: err}
	}

	if env.TenantAccessToken == "" {
		return "", &errors.CredentialError{Err: errors.ErrEmptyToken}
	}

	now := time.Now()

	m.mu.Lock()
	m.token = env.TenantAccessToken
	m.acquiredAt = now
	m.mu.Unlock()

	m.log.Info("Acquired tenant access token",
		"token", logging.TokenPrefix(env.TenantAccessToken),
		"expire_seconds", env.Expire,
	)

	return env.TenantAccessToken, nil
}

// Invalidate clears the cached token if it still equals token, so a token
// acquired concurrently by another caller is kept.
func (m *Manager) Invalidate(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token == "" || m.token != token {
		return
	}

	m.token = ""
	m.acquiredAt = time.Time{}

	m.log.Debug("Invalidated tenant access token", "token", logging.TokenPrefix(token))
}

// Status reports whether a token is cached and when it was acquired.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Status{HasToken: m.token != "", AcquiredAt: m.acquiredAt}
}

// HasToken reports whether a token is cached.
func (m *Manager) HasToken() bool {
	return m.Status().HasToken
}
