// Package config handles configuration loading and pantry home resolution.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is where the pantry API is deployed by default.
const DefaultBaseURL = "http://localhost:8080/SmartFood-1.0-SNAPSHOT"

// Environment variables consulted during resolution.
const (
	EnvHome   = "PANTRY_HOME"
	EnvAPIURL = "PANTRY_API_URL"
)

// ---------------------------------------------------------------------------
// Config types
// ---------------------------------------------------------------------------

// APIConfig locates the pantry REST service.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// DashboardConfig tunes the dashboard counters.
type DashboardConfig struct {
	ExpiringDays int `yaml:"expiring_days"` // window passed to /api/notifications
}

// LogConfig controls slog output.
type LogConfig struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// PantryConfig is the root per-home configuration.
type PantryConfig struct {
	API       APIConfig       `yaml:"api"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Log       LogConfig       `yaml:"log"`
}

// Default returns a PantryConfig populated with sensible defaults.
func Default() *PantryConfig {
	return &PantryConfig{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: 10 * time.Second,
		},
		Dashboard: DashboardConfig{
			ExpiringDays: 7,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a per-home config.yaml from path.
// If the file does not exist it returns Default() with no error.
// Missing keys retain their default values. PANTRY_API_URL, when set,
// overrides api.base_url.
func Load(path string) (*PantryConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	if err == nil {
		// Unmarshal into a plain map so we can apply only the keys that are present.
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		if err := apply(cfg, raw); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if env := strings.TrimSpace(os.Getenv(EnvAPIURL)); env != "" {
		cfg.API.BaseURL = env
	}
	return cfg, nil
}

func apply(cfg *PantryConfig, raw map[string]any) error {
	if api, ok := raw["api"].(map[string]any); ok {
		if v, ok := api["base_url"].(string); ok && v != "" {
			cfg.API.BaseURL = v
		}
		switch v := api["timeout"].(type) {
		case string:
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("api.timeout: %w", err)
			}
			cfg.API.Timeout = d
		case int:
			cfg.API.Timeout = time.Duration(v) * time.Second
		}
	}

	if dash, ok := raw["dashboard"].(map[string]any); ok {
		if v, ok := dash["expiring_days"].(int); ok && v >= 0 {
			cfg.Dashboard.ExpiringDays = v
		}
	}

	if lg, ok := raw["log"].(map[string]any); ok {
		if v, ok := lg["level"].(string); ok && v != "" {
			cfg.Log.Level = v
		}
	}
	return nil
}

// SlogLevel maps Log.Level to a slog.Level, defaulting to info.
func (c *PantryConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ---------------------------------------------------------------------------
// Pantry home resolution
// ---------------------------------------------------------------------------

// globalConfigPath returns the path to the global pantry config file.
// This file stores only pantry_home.
func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pantry", "config.yaml"), nil
}

// normalizePath expands ~ and makes the path absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// ResolveHome returns the pantry home path and the source of the resolution.
// Priority: PANTRY_HOME env → persisted global config → ~/.pantry
// source is one of "env", "config", or "default".
func ResolveHome() (path, source string) {
	if env := os.Getenv(EnvHome); env != "" {
		p, err := normalizePath(env)
		if err == nil {
			return p, "env"
		}
	}

	if persisted, ok, _ := GetPersistedHome(); ok {
		return persisted, "config"
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pantry"), "default"
}

// GetHome returns the resolved pantry home path.
func GetHome() string {
	path, _ := ResolveHome()
	return path
}

// Path returns the config.yaml location inside home.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// LogDir returns the log directory inside home.
func LogDir(home string) string {
	return filepath.Join(home, "logs")
}

// GetPersistedHome reads pantry_home from the global config.
// Returns ("", false, nil) if not set.
func GetPersistedHome() (string, bool, error) {
	cfgPath, err := globalConfigPath()
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return "", false, nil
	}

	val, _ := raw["pantry_home"].(string)
	val = strings.TrimSpace(val)
	if val == "" {
		return "", false, nil
	}

	p, err := normalizePath(val)
	if err != nil {
		return "", false, err
	}
	return p, true, nil
}

// SetPersistedHome normalizes path and persists it in the global config.
// Returns the normalized path.
func SetPersistedHome(path string) (string, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return "", err
	}

	cfgPath, err := globalConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", err
	}

	// Read existing global config, preserving any other keys.
	var raw map[string]any
	if data, err := os.ReadFile(cfgPath); err == nil {
		_ = yaml.Unmarshal(data, &raw)
	}
	if raw == nil {
		raw = make(map[string]any)
	}
	raw["pantry_home"] = normalized

	out, err := yaml.Marshal(raw)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cfgPath, out, 0o600); err != nil {
		return "", err
	}
	return normalized, nil
}

// ClearPersistedHome removes pantry_home from the global config.
// Returns true if the key was present and removed.
// If the file becomes empty after removal it is deleted.
func ClearPersistedHome() (bool, error) {
	cfgPath, err := globalConfigPath()
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return false, nil
	}

	if _, ok := raw["pantry_home"]; !ok {
		return false, nil
	}
	delete(raw, "pantry_home")

	if len(raw) == 0 {
		_ = os.Remove(cfgPath)
		return true, nil
	}

	out, err := yaml.Marshal(raw)
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(cfgPath, out, 0o600)
}

// ---------------------------------------------------------------------------
// Starter config
// ---------------------------------------------------------------------------

// Template is the starter config.yaml written by `pantry init` and
// `pantry config init`.
const Template = `# Pantry configuration

# Where the pantry REST API is deployed.
# PANTRY_API_URL and --api-url override base_url.
api:
  base_url: ` + DefaultBaseURL + `
  timeout: 10s

# Window in days for the "Expiring Soon" dashboard card.
dashboard:
  expiring_days: 7

# debug | info | warn | error
log:
  level: info
`

// WriteTemplate writes Template to home/config.yaml. An existing file is kept
// unless force is set; created reports whether the file was written.
func WriteTemplate(home string, force bool) (path string, created bool, err error) {
	path = Path(home)
	if _, err := os.Stat(path); err == nil && !force {
		return path, false, nil
	}
	if err := os.MkdirAll(home, 0o755); err != nil {
		return path, false, err
	}
	if err := os.WriteFile(path, []byte(Template), 0o600); err != nil {
		return path, false, err
	}
	return path, true, nil
}
