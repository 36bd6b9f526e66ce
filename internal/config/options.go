// Package config holds gateway options and loads them from TOML and the
// environment.
package config

import (
	"log/slog"
	"net/http"
	"time"
)

// Defaults applied by Default and by Load before the file is decoded.
const (
	DefaultBaseURL    = "https://open.feishu.cn/open-apis"
	DefaultWebURL     = "https://feishu.cn/base/"
	DefaultTimeout    = 10 * time.Second
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
	DefaultMaxSizeMB  = 20
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 14
)

// Environment variables read by ApplyEnv.
const (
	EnvAppID      = "FEISHU_APP_ID"
	EnvAppSecret  = "FEISHU_APP_SECRET"
	EnvBaseURL    = "FEISHU_BASE_URL"
	EnvConfigPath = "FEISHU_MCP_CONFIG"
	EnvLogLevel   = "FEISHU_MCP_LOG_LEVEL"
	EnvLogFile    = "FEISHU_MCP_LOG_FILE"
)

// Options configures the gateway.
type Options struct {
	// Logger is the slog logger for diagnostic output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger `toml:"-"`

	// HTTPClient, when set, carries every Open API request and
	// Feishu.Timeout is ignored.
	HTTPClient *http.Client `toml:"-"`

	Feishu FeishuOptions `toml:"feishu"`
	Log    LogOptions    `toml:"log"`
}

// FeishuOptions configures the remote API.
type FeishuOptions struct {
	// AppID and AppSecret are the application credentials exchanged for a
	// tenant_access_token. Either may be empty at startup; tool calls then
	// fail with a credential error.
	AppID     string `toml:"app_id"`
	AppSecret string `toml:"app_secret"`

	// BaseURL is the Open API root, without a trailing slash.
	BaseURL string `toml:"base_url"`

	// WebURL prefixes app tokens to form bitable links.
	WebURL string `toml:"web_url"`

	// Timeout bounds every outgoing HTTP request.
	Timeout time.Duration `toml:"timeout"`

	// RateLimit caps outgoing requests per second. Zero disables the limiter.
	RateLimit float64 `toml:"rate_limit"`
	RateBurst int     `toml:"rate_burst"`
}

// LogOptions configures the process logger built by the binary.
type LogOptions struct {
	Level  string `toml:"level"`  // debug, info, warn or error
	Format string `toml:"format"` // text or json

	// File, when set, receives log records in addition to stderr and is
	// rotated by size.
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Default returns Options populated with default values and no credentials.
func Default() *Options {
	return &Options{
		Feishu: FeishuOptions{
			BaseURL: DefaultBaseURL,
			WebURL:  DefaultWebURL,
			Timeout: DefaultTimeout,
		},
		Log: LogOptions{
			Level:      DefaultLogLevel,
			Format:     DefaultLogFormat,
			MaxSizeMB:  DefaultMaxSizeMB,
			MaxBackups: DefaultMaxBackups,
			MaxAgeDays: DefaultMaxAgeDays,
		},
	}
}

// HasCredentials reports whether both the app id and app secret are set.
func (o *FeishuOptions) HasCredentials() bool {
	return o.AppID != "" && o.AppSecret != ""
}

// Fill replaces zero values with defaults. It is safe to call repeatedly.
func (o *Options) Fill() {
	def := Default()

	if o.Feishu.BaseURL == "" {
		o.Feishu.BaseURL = def.Feishu.BaseURL
	}

	if o.Feishu.WebURL == "" {
		o.Feishu.WebURL = def.Feishu.WebURL
	}

	if o.Feishu.Timeout == 0 {
		o.Feishu.Timeout = def.Feishu.Timeout
	}

	if o.Feishu.RateLimit > 0 && o.Feishu.RateBurst == 0 {
		o.Feishu.RateBurst = 1
	}

	o.Log.Level = NormalizeLevel(o.Log.Level)
	if o.Log.Level == "" {
		o.Log.Level = def.Log.Level
	}

	if o.Log.Format == "" {
		o.Log.Format = def.Log.Format
	}

	if o.Log.MaxSizeMB == 0 {
		o.Log.MaxSizeMB = def.Log.MaxSizeMB
	}

	if o.Log.MaxBackups == 0 {
		o.Log.MaxBackups = def.Log.MaxBackups
	}

	if o.Log.MaxAgeDays == 0 {
		o.Log.MaxAgeDays = def.Log.MaxAgeDays
	}
}
