// Package config parses the pplx.toml user configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/LISSConsulting/pplx/internal/store"
)

// DefaultAccentColor is the default TUI accent color (teal).
const DefaultAccentColor = "#20B8CD"

// Environment variables that override file locations.
const (
	EnvConfigPath = "PPLX_CONFIG"
	EnvLogPath    = "PPLX_LOG_PATH"
)

// hexColorRe matches a 6-digit hex color string like "#20B8CD".
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Config is the top-level pplx configuration.
type Config struct {
	API   APIConfig   `toml:"api"`
	Log   LogConfig   `toml:"log"`
	TUI   TUIConfig   `toml:"tui"`
	Modes ModesConfig `toml:"modes"`
}

// APIConfig controls the search API client.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	APIKeyEnv      string `toml:"api_key_env"`
	TimeoutSeconds int    `toml:"timeout_seconds"` // 0 = no timeout
}

// LogConfig controls the query log.
type LogConfig struct {
	Path         string `toml:"path"` // empty = <data-dir>/pplx/log.jsonl
	HistoryLimit int    `toml:"history_limit"`
}

// TUIConfig controls the interactive history browser.
type TUIConfig struct {
	AccentColor string `toml:"accent_color"`
}

// ModeConfig is the backend model and fixed cost estimate for one mode.
type ModeConfig struct {
	Model      string  `toml:"model"`
	EstCostUSD float64 `toml:"est_cost_usd"`
}

// ModesConfig holds one ModeConfig per known mode. Only these four tables
// are accepted under [modes].
type ModesConfig struct {
	Search   ModeConfig `toml:"search"`
	Ask      ModeConfig `toml:"ask"`
	Research ModeConfig `toml:"research"`
	Reason   ModeConfig `toml:"reason"`
}

// Lookup returns the configuration for mode.
func (m ModesConfig) Lookup(mode store.Mode) (ModeConfig, bool) {
	switch mode {
	case store.ModeSearch:
		return m.Search, true
	case store.ModeAsk:
		return m.Ask, true
	case store.ModeResearch:
		return m.Research, true
	case store.ModeReason:
		return m.Reason, true
	}
	return ModeConfig{}, false
}

// Validate checks the configuration for issues that would cause confusing
// runtime failures. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.ParseRequestURI(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url must be a valid http or https URL"))
	}
	if c.API.APIKeyEnv == "" {
		errs = append(errs, fmt.Errorf("api.api_key_env must not be empty"))
	}
	if c.API.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("api.timeout_seconds must be >= 0 (0 = no timeout)"))
	}
	if c.Log.HistoryLimit <= 0 {
		errs = append(errs, fmt.Errorf("log.history_limit must be > 0"))
	}
	if c.TUI.AccentColor != "" && !hexColorRe.MatchString(c.TUI.AccentColor) {
		errs = append(errs, fmt.Errorf("tui.accent_color must be a hex color (e.g. \"#20B8CD\")"))
	}
	for _, mode := range store.KnownModes {
		mc, _ := c.Modes.Lookup(mode)
		if mc.Model == "" {
			errs = append(errs, fmt.Errorf("modes.%s.model must not be empty", mode))
		}
		if mc.EstCostUSD < 0 || math.IsNaN(mc.EstCostUSD) || math.IsInf(mc.EstCostUSD, 0) {
			errs = append(errs, fmt.Errorf("modes.%s.est_cost_usd must be a finite number >= 0", mode))
		}
	}

	return errors.Join(errs...)
}

// Defaults returns a Config with the stock endpoint, log location and the
// per-mode model and price table.
func Defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL:        "https://api.perplexity.ai",
			APIKeyEnv:      "PERPLEXITY_API_KEY",
			TimeoutSeconds: 300,
		},
		Log: LogConfig{
			Path:         "",
			HistoryLimit: 20,
		},
		TUI: TUIConfig{
			AccentColor: DefaultAccentColor,
		},
		Modes: ModesConfig{
			Search:   ModeConfig{Model: "sonar", EstCostUSD: 0.006},
			Ask:      ModeConfig{Model: "sonar-pro", EstCostUSD: 0.01},
			Research: ModeConfig{Model: "sonar-deep-research", EstCostUSD: 0.40},
			Reason:   ModeConfig{Model: "sonar-reasoning-pro", EstCostUSD: 0.01},
		},
	}
}

// Timeout returns the API timeout; zero means none.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// APIKey reads the API key from the configured environment variable.
func (c *Config) APIKey() (string, error) {
	key := strings.TrimSpace(os.Getenv(c.API.APIKeyEnv))
	if key == "" {
		return "", fmt.Errorf("config: %s not set", c.API.APIKeyEnv)
	}
	return key, nil
}

// LogPath resolves the query log location: $PPLX_LOG_PATH, then log.path,
// then <data-dir>/pplx/log.jsonl.
func (c *Config) LogPath() (string, error) {
	if p := os.Getenv(EnvLogPath); p != "" {
		return expandHome(p)
	}
	if c.Log.Path != "" {
		return expandHome(c.Log.Path)
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pplx", "log.jsonl"), nil
}

// Load reads the config file at path. If path is empty, $PPLX_CONFIG or the
// default location is used. A missing file yields the defaults. Unknown keys
// (likely typos) and invalid values are errors.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s (possible typos?)", path, joinKeys(keys))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid %s: %w", path, err)
	}
	return &cfg, nil
}

// joinKeys formats a slice of key names for display.
func joinKeys(keys []string) string {
	return strings.Join(keys, ", ")
}

// DefaultPath returns $PPLX_CONFIG or <user-config-dir>/pplx/config.toml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return expandHome(p)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate config dir: %w", err)
	}
	return filepath.Join(dir, "pplx", "config.toml"), nil
}

// DataDir returns the per-user application data directory:
// $XDG_DATA_HOME, else the platform convention.
func DataDir() (string, error) {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" && filepath.IsAbs(d) {
		return d, nil
	}
	switch runtime.GOOS {
	case "windows":
		if d := os.Getenv("APPDATA"); d != "" {
			return d, nil
		}
		return "", errors.New("config: %APPDATA% is not set")
	case "darwin", "ios":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: locate data dir: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: locate data dir: %w", err)
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}

func expandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: expand %s: %w", p, err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

// InitFile writes a default config template to path, creating its
// directory. It refuses to overwrite an existing file.
func InitFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

const template = `# pplx configuration

[api]
base_url = "https://api.perplexity.ai"
api_key_env = "PERPLEXITY_API_KEY"  # environment variable holding the bearer key
timeout_seconds = 300                # 0 = no timeout

[log]
path = ""           # empty = <data-dir>/pplx/log.jsonl
history_limit = 20  # entries shown by 'pplx log' without --all

[tui]
accent_color = "#20B8CD"

# Model and fixed cost estimate recorded for each mode.
[modes.search]
model = "sonar"
est_cost_usd = 0.006

[modes.ask]
model = "sonar-pro"
est_cost_usd = 0.01

[modes.research]
model = "sonar-deep-research"
est_cost_usd = 0.40

[modes.reason]
model = "sonar-reasoning-pro"
est_cost_usd = 0.01
`
