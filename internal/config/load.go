package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

var envRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads a TOML file from path, expanding ${VAR} references, then applies
// environment overrides and defaults. An empty path skips the file.
func Load(path string) (*Options, error) {
	opts := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		md, err := toml.Decode(expandEnv(string(data)), opts)
		if err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}

			return nil, fmt.Errorf("parsing config %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	}

	opts.ApplyEnv(os.LookupEnv)
	opts.Fill()

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return opts, nil
}

// DefaultPath returns the config file location: $FEISHU_MCP_CONFIG if set,
// otherwise $XDG_CONFIG_HOME/feishu-mcp/config.toml when that file exists.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	p := filepath.Join(dir, "feishu-mcp", "config.toml")
	if _, err := os.Stat(p); err != nil {
		return ""
	}

	return p
}

// ApplyEnv overlays values from the environment. lookup is usually
// os.LookupEnv; tests pass a map-backed function.
func (o *Options) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	set(&o.Feishu.AppID, EnvAppID)
	set(&o.Feishu.AppSecret, EnvAppSecret)
	set(&o.Feishu.BaseURL, EnvBaseURL)
	set(&o.Log.Level, EnvLogLevel)
	set(&o.Log.File, EnvLogFile)
}

// Validate checks field formats. Missing credentials are not an error.
func (o *Options) Validate() error {
	u, err := url.Parse(o.Feishu.BaseURL)
	if err != nil {
		return fmt.Errorf("feishu.base_url is not a valid URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("feishu.base_url must use http or https scheme")
	}

	if o.Feishu.Timeout < 0 {
		return fmt.Errorf("feishu.timeout must not be negative")
	}

	if o.Feishu.RateLimit < 0 || o.Feishu.RateBurst < 0 {
		return fmt.Errorf("feishu.rate_limit and feishu.rate_burst must not be negative")
	}

	if _, err := ParseLevel(o.Log.Level); err != nil {
		return err
	}

	switch o.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", o.Log.Format)
	}

	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", s, err)
	}

	return level, nil
}

// expandEnv replaces only the braced ${VAR} form. Bare $ is kept literally,
// since app secrets may contain it.
func expandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")

		return os.Getenv(name)
	})
}
