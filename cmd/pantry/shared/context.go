// Package shared holds the context passed to all CLI commands.
package shared

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/go-ports/pantry/internal/config"
	"github.com/go-ports/pantry/internal/logging"
	"github.com/go-ports/pantry/internal/service"
)

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// PantryHome overrides the pantry home directory.
	// When empty, resolution falls through to PANTRY_HOME env → persisted config → ~/.pantry.
	PantryHome string
	// APIURL overrides api.base_url from config.yaml and PANTRY_API_URL.
	APIURL string
	// Verbose forces debug logging.
	Verbose bool
}

// Home returns the pantry home for this invocation.
func (c *Context) Home() string {
	if c.PantryHome != "" {
		return c.PantryHome
	}
	return config.GetHome()
}

// LogLevel returns the configured slog level, or debug under --verbose.
func (c *Context) LogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	cfg, err := config.Load(config.Path(c.Home()))
	if err != nil {
		return slog.LevelInfo
	}
	return cfg.SlogLevel()
}

// ServiceOptions returns the service options implied by the global flags,
// logging to w.
func (c *Context) ServiceOptions(w io.Writer) []service.Option {
	return []service.Option{
		service.WithBaseURL(c.APIURL),
		service.WithLogger(logging.New(w, c.LogLevel())),
	}
}

// Service builds a service for this invocation, logging to w.
func (c *Context) Service(w io.Writer) (*service.Service, error) {
	return service.New(c.Home(), c.ServiceOptions(w)...)
}

// WriteJSON writes v to w as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
