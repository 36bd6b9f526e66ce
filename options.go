package feishumcp

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/wagiedev/feishu-mcp-go/internal/config"
)

// Options configures a Server. Use Load to read it from a TOML file and the
// environment, or build it with functional options.
type Options = config.Options

// FeishuOptions configures the remote API.
type FeishuOptions = config.FeishuOptions

// LogOptions configures the process logger.
type LogOptions = config.LogOptions

// Option configures Options using the functional options pattern.
type Option func(*Options)

// Load reads options from a TOML file (empty path skips it) and the
// environment. See the config package constants for recognised variables.
func Load(path string) (*Options, error) {
	return config.Load(path)
}

// applyOptions applies functional options on top of defaults.
func applyOptions(opts []Option) *Options {
	options := config.Default()
	for _, opt := range opts {
		opt(options)
	}

	options.Fill()

	return options
}

// ===== Basic Configuration =====

// WithLogger sets the logger for diagnostic output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithOptions replaces all settings with a copy of base, typically the
// result of Load. Later options still apply on top.
func WithOptions(base *Options) Option {
	return func(o *Options) {
		if base != nil {
			*o = *base
		}
	}
}

// WithEnv overlays FEISHU_APP_ID, FEISHU_APP_SECRET and the other recognised
// environment variables.
func WithEnv() Option {
	return func(o *Options) {
		o.ApplyEnv(os.LookupEnv)
	}
}

// ===== Feishu =====

// WithAppCredentials sets the app id and app secret exchanged for a tenant
// access token.
func WithAppCredentials(appID, appSecret string) Option {
	return func(o *Options) {
		o.Feishu.AppID = appID
		o.Feishu.AppSecret = appSecret
	}
}

// WithBaseURL sets the Open API root, e.g. https://open.larksuite.com/open-apis.
func WithBaseURL(baseURL string) Option {
	return func(o *Options) {
		o.Feishu.BaseURL = baseURL
	}
}

// WithWebURL sets the prefix used to build bitable links.
func WithWebURL(webURL string) Option {
	return func(o *Options) {
		o.Feishu.WebURL = webURL
	}
}

// WithTimeout bounds each outgoing HTTP request. Defaults to 10 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Feishu.Timeout = timeout
	}
}

// WithHTTPClient sets the HTTP client used for every Open API request.
// WithTimeout has no effect when a client is given.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = client
	}
}

// WithRateLimit caps outgoing requests per second with the given burst.
// A zero rate disables limiting.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(o *Options) {
		o.Feishu.RateLimit = perSecond
		o.Feishu.RateBurst = burst
	}
}
