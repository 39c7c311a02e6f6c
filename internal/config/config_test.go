package config

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/LISSConsulting/pplx/internal/store"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"api.base_url", cfg.API.BaseURL, "https://api.perplexity.ai"},
		{"api.api_key_env", cfg.API.APIKeyEnv, "PERPLEXITY_API_KEY"},
		{"api.timeout_seconds", cfg.API.TimeoutSeconds, 300},
		{"log.path", cfg.Log.Path, ""},
		{"log.history_limit", cfg.Log.HistoryLimit, 20},
		{"tui.accent_color", cfg.TUI.AccentColor, DefaultAccentColor},
		{"modes.search.model", cfg.Modes.Search.Model, "sonar"},
		{"modes.search.est_cost_usd", cfg.Modes.Search.EstCostUSD, 0.006},
		{"modes.ask.model", cfg.Modes.Ask.Model, "sonar-pro"},
		{"modes.ask.est_cost_usd", cfg.Modes.Ask.EstCostUSD, 0.01},
		{"modes.research.model", cfg.Modes.Research.Model, "sonar-deep-research"},
		{"modes.research.est_cost_usd", cfg.Modes.Research.EstCostUSD, 0.40},
		{"modes.reason.model", cfg.Modes.Reason.Model, "sonar-reasoning-pro"},
		{"modes.reason.est_cost_usd", cfg.Modes.Reason.EstCostUSD, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		dir := t.TempDir()
		content := `
[api]
base_url = "http://localhost:8080"
api_key_env = "MY_KEY"
timeout_seconds = 30

[log]
path = "/var/tmp/pplx.jsonl"
history_limit = 50

[tui]
accent_color = "#FF0000"

[modes.research]
model = "sonar-deep-research-v2"
est_cost_usd = 0.5
`
		path := filepath.Join(dir, "config.toml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}

		tests := []struct {
			name string
			got  any
			want any
		}{
			{"api.base_url", cfg.API.BaseURL, "http://localhost:8080"},
			{"api.api_key_env", cfg.API.APIKeyEnv, "MY_KEY"},
			{"api.timeout_seconds", cfg.API.TimeoutSeconds, 30},
			{"log.path", cfg.Log.Path, "/var/tmp/pplx.jsonl"},
			{"log.history_limit", cfg.Log.HistoryLimit, 50},
			{"tui.accent_color", cfg.TUI.AccentColor, "#FF0000"},
			{"modes.research.model", cfg.Modes.Research.Model, "sonar-deep-research-v2"},
			{"modes.research.est_cost_usd", cfg.Modes.Research.EstCostUSD, 0.5},
			{"modes.search.model (default)", cfg.Modes.Search.Model, "sonar"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if tt.got != tt.want {
					t.Errorf("got %v, want %v", tt.got, tt.want)
				}
			})
		}
		if cfg.Timeout() != 30*time.Second {
			t.Errorf("Timeout() = %v", cfg.Timeout())
		}
	})

	t.Run("partial mode table keeps default cost", func(t *testing.T) {
		dir := t.TempDir()
		content := `
[modes.ask]
model = "sonar-pro-2"
`
		path := filepath.Join(dir, "config.toml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Modes.Ask.Model != "sonar-pro-2" {
			t.Errorf("modes.ask.model: got %q", cfg.Modes.Ask.Model)
		}
		if cfg.Modes.Ask.EstCostUSD != 0.01 {
			t.Errorf("modes.ask.est_cost_usd: got %v, want 0.01 (default)", cfg.Modes.Ask.EstCostUSD)
		}
	})

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		if err != nil {
			t.Fatalf("expected defaults for missing file, got %v", err)
		}
		if cfg.API.BaseURL != "https://api.perplexity.ai" {
			t.Errorf("base_url: got %q", cfg.API.BaseURL)
		}
	})

	t.Run("invalid toml returns error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("not valid [[[ toml"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected error for invalid TOML")
		}
	})

	t.Run("unknown keys rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[api]
base_ur = "https://typo.example"

[modes.summarize]
model = "x"
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil {
			t.Fatal("expected error for unknown keys")
		}
		for _, want := range []string{"api.base_ur", "modes.summarize"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q should mention %q", err, want)
			}
		}
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[log]
history_limit = 0
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("non-finite cost rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[modes.search]
est_cost_usd = nan

[modes.ask]
est_cost_usd = inf
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if err == nil {
			t.Fatal("expected error for nan/inf cost")
		}
		for _, want := range []string{"modes.search.est_cost_usd", "modes.ask.est_cost_usd"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q should mention %q", err, want)
			}
		}
	})

	t.Run("PPLX_CONFIG used when path empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.toml")
		if err := os.WriteFile(path, []byte("[log]\nhistory_limit = 7\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv(EnvConfigPath, path)

		cfg, err := Load("")
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Log.HistoryLimit != 7 {
			t.Errorf("history_limit: got %d, want 7", cfg.Log.HistoryLimit)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"bad base url", func(c *Config) { c.API.BaseURL = "not a url" }, "api.base_url"},
		{"ftp base url", func(c *Config) { c.API.BaseURL = "ftp://example.com" }, "api.base_url"},
		{"empty key env", func(c *Config) { c.API.APIKeyEnv = "" }, "api.api_key_env"},
		{"negative timeout", func(c *Config) { c.API.TimeoutSeconds = -1 }, "api.timeout_seconds"},
		{"zero history limit", func(c *Config) { c.Log.HistoryLimit = 0 }, "log.history_limit"},
		{"bad accent", func(c *Config) { c.TUI.AccentColor = "teal" }, "tui.accent_color"},
		{"empty accent ok", func(c *Config) { c.TUI.AccentColor = "" }, ""},
		{"empty model", func(c *Config) { c.Modes.Reason.Model = "" }, "modes.reason.model"},
		{"negative cost", func(c *Config) { c.Modes.Search.EstCostUSD = -0.1 }, "modes.search.est_cost_usd"},
		{"nan cost", func(c *Config) { c.Modes.Search.EstCostUSD = math.NaN() }, "modes.search.est_cost_usd"},
		{"inf cost", func(c *Config) { c.Modes.Ask.EstCostUSD = math.Inf(1) }, "modes.ask.est_cost_usd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestModesLookup(t *testing.T) {
	modes := Defaults().Modes
	for _, m := range store.KnownModes {
		mc, ok := modes.Lookup(m)
		if !ok || mc.Model == "" {
			t.Errorf("Lookup(%q) = %+v, %v", m, mc, ok)
		}
	}
	if _, ok := modes.Lookup("summarize"); ok {
		t.Error("unknown mode should not resolve")
	}
}

func TestAPIKey(t *testing.T) {
	cfg := Defaults()
	cfg.API.APIKeyEnv = "PPLX_TEST_KEY"

	t.Setenv("PPLX_TEST_KEY", "")
	if _, err := cfg.APIKey(); err == nil || !strings.Contains(err.Error(), "PPLX_TEST_KEY not set") {
		t.Errorf("expected not-set error, got %v", err)
	}

	t.Setenv("PPLX_TEST_KEY", "  pplx-abc  ")
	key, err := cfg.APIKey()
	if err != nil {
		t.Fatal(err)
	}
	if key != "pplx-abc" {
		t.Errorf("key = %q", key)
	}
}

func TestLogPath(t *testing.T) {
	t.Run("env override wins", func(t *testing.T) {
		t.Setenv(EnvLogPath, "/tmp/env.jsonl")
		cfg := Defaults()
		cfg.Log.Path = "/tmp/cfg.jsonl"
		got, err := cfg.LogPath()
		if err != nil {
			t.Fatal(err)
		}
		if got != "/tmp/env.jsonl" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("config path", func(t *testing.T) {
		t.Setenv(EnvLogPath, "")
		cfg := Defaults()
		cfg.Log.Path = "/tmp/cfg.jsonl"
		got, err := cfg.LogPath()
		if err != nil {
			t.Fatal(err)
		}
		if got != "/tmp/cfg.jsonl" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("home expansion", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("USERPROFILE", home)
		t.Setenv(EnvLogPath, "")
		cfg := Defaults()
		cfg.Log.Path = "~/logs/pplx.jsonl"
		got, err := cfg.LogPath()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(home, "logs", "pplx.jsonl"); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		data := t.TempDir()
		t.Setenv(EnvLogPath, "")
		t.Setenv("XDG_DATA_HOME", data)
		cfg := Defaults()
		got, err := cfg.LogPath()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(data, "pplx", "log.jsonl"); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("platform default", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("uses %APPDATA%")
		}
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("XDG_DATA_HOME", "")
		t.Setenv(EnvLogPath, "")
		cfg := Defaults()
		got, err := cfg.LogPath()
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(got, home) || !strings.HasSuffix(got, filepath.Join("pplx", "log.jsonl")) {
			t.Errorf("got %q, want under %q", got, home)
		}
	})
}

func TestInitFile(t *testing.T) {
	t.Run("creates config with parents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pplx", "config.toml")
		if err := InitFile(path); err != nil {
			t.Fatal(err)
		}

		// Verify it's valid and matches the defaults by loading it.
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("generated file is not valid: %v", err)
		}
		if *cfg != Defaults() {
			t.Errorf("template drifted from Defaults():\n got %+v\nwant %+v", *cfg, Defaults())
		}
	})

	t.Run("refuses to overwrite existing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("existing"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := InitFile(path); err == nil {
			t.Error("expected error when config already exists")
		}
	})
}
