package setup_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/pantry/internal/checkers"
	"github.com/go-ports/pantry/internal/setup"
)

// ---------------------------------------------------------------------------
// ConfigPath
// ---------------------------------------------------------------------------

func TestConfigPath(t *testing.T) {
	c := qt.New(t)
	root := c.TempDir()

	tests := []struct {
		agent   setup.Agent
		project bool
		want    string
	}{
		{setup.ClaudeCode, false, ".claude.json"},
		{setup.ClaudeCode, true, ".mcp.json"},
		{setup.Cursor, false, filepath.Join(".cursor", "mcp.json")},
		{setup.Codex, false, filepath.Join(".codex", "config.toml")},
		{setup.OpenCode, false, filepath.Join(".config", "opencode", "opencode.json")},
		{setup.OpenCode, true, "opencode.json"},
	}
	for _, tt := range tests {
		got, err := setup.Target{Agent: tt.agent, Root: root, Project: tt.project}.ConfigPath()
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, filepath.Join(root, tt.want), qt.Commentf("%s project=%v", tt.agent, tt.project))
	}

	_, err := setup.Target{Agent: "vim", Root: root}.ConfigPath()
	c.Assert(err, qt.ErrorMatches, `setup: unknown agent "vim"`)
}

// ---------------------------------------------------------------------------
// JSON agents
// ---------------------------------------------------------------------------

func TestInstall_ClaudeCode_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("first install writes a stdio entry", func(c *qt.C) {
		root := c.TempDir()
		res, err := setup.Install(setup.Target{Agent: setup.ClaudeCode, Root: root, Project: true})
		c.Assert(err, qt.IsNil)
		c.Assert(res.Changed, qt.IsTrue)
		c.Assert(res.Message, qt.Contains, "Installed")

		data, err := os.ReadFile(filepath.Join(root, ".mcp.json"))
		c.Assert(err, qt.IsNil)
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.pantry.command"), "pantry")
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.pantry.type"), "stdio")
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.pantry.args[0]"), "mcp")
	})

	c.Run("flags are forwarded to pantry mcp", func(c *qt.C) {
		root := c.TempDir()
		_, err := setup.Install(setup.Target{
			Agent: setup.ClaudeCode, Root: root,
			Command: "/usr/local/bin/pantry", PantryHome: "/data/pantry", APIURL: "http://pantry:8080",
		})
		c.Assert(err, qt.IsNil)

		data, err := os.ReadFile(filepath.Join(root, ".claude.json"))
		c.Assert(err, qt.IsNil)
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.pantry.command"), "/usr/local/bin/pantry")
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.pantry.args[2]"), "/data/pantry")
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.pantry.args[4]"), "http://pantry:8080")
	})

	c.Run("second install is idempotent", func(c *qt.C) {
		root := c.TempDir()
		target := setup.Target{Agent: setup.Cursor, Root: root}
		_, err := setup.Install(target)
		c.Assert(err, qt.IsNil)

		res, err := setup.Install(target)
		c.Assert(err, qt.IsNil)
		c.Assert(res.Changed, qt.IsFalse)
		c.Assert(res.Message, qt.Contains, "Already installed")
	})

	c.Run("other servers are preserved", func(c *qt.C) {
		root := c.TempDir()
		path := filepath.Join(root, ".claude.json")
		err := os.WriteFile(path, []byte(`{"theme":"dark","mcpServers":{"other":{"command":"x"}}}`), 0o600)
		c.Assert(err, qt.IsNil)

		_, err = setup.Install(setup.Target{Agent: setup.ClaudeCode, Root: root})
		c.Assert(err, qt.IsNil)

		data, err := os.ReadFile(path)
		c.Assert(err, qt.IsNil)
		c.Assert(data, checkers.JSONPathEquals("$.theme"), "dark")
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.other.command"), "x")
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.pantry.command"), "pantry")
	})
}

func TestInstall_FailurePath(t *testing.T) {
	c := qt.New(t)

	c.Run("malformed config is reported, not overwritten", func(c *qt.C) {
		root := c.TempDir()
		path := filepath.Join(root, ".claude.json")
		c.Assert(os.WriteFile(path, []byte(`{broken`), 0o600), qt.IsNil)

		_, err := setup.Install(setup.Target{Agent: setup.ClaudeCode, Root: root})
		c.Assert(err, qt.ErrorMatches, `setup: install claude-code: parse .*`)

		data, err := os.ReadFile(path)
		c.Assert(err, qt.IsNil)
		c.Assert(string(data), qt.Equals, `{broken`)
	})

	c.Run("unknown agent", func(c *qt.C) {
		_, err := setup.Install(setup.Target{Agent: "emacs", Root: c.TempDir()})
		c.Assert(err, qt.ErrorMatches, `setup: unknown agent "emacs"`)
	})
}

func TestUninstall_JSON_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("sole entry removes the file", func(c *qt.C) {
		root := c.TempDir()
		target := setup.Target{Agent: setup.OpenCode, Root: root, Project: true}
		_, err := setup.Install(target)
		c.Assert(err, qt.IsNil)

		data, err := os.ReadFile(filepath.Join(root, "opencode.json"))
		c.Assert(err, qt.IsNil)
		c.Assert(data, checkers.JSONPathEquals("$.mcp.pantry.command[1]"), "mcp")

		res, err := setup.Uninstall(target)
		c.Assert(err, qt.IsNil)
		c.Assert(res.Changed, qt.IsTrue)
		_, err = os.Stat(filepath.Join(root, "opencode.json"))
		c.Assert(os.IsNotExist(err), qt.IsTrue)
	})

	c.Run("other keys survive", func(c *qt.C) {
		root := c.TempDir()
		path := filepath.Join(root, ".cursor", "mcp.json")
		c.Assert(os.MkdirAll(filepath.Dir(path), 0o755), qt.IsNil)
		c.Assert(os.WriteFile(path, []byte(`{"mcpServers":{"other":{"command":"x"}}}`), 0o600), qt.IsNil)

		target := setup.Target{Agent: setup.Cursor, Root: root}
		_, err := setup.Install(target)
		c.Assert(err, qt.IsNil)
		_, err = setup.Uninstall(target)
		c.Assert(err, qt.IsNil)

		data, err := os.ReadFile(path)
		c.Assert(err, qt.IsNil)
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.other.command"), "x")
		c.Assert(string(data), qt.Not(qt.Contains), "pantry")
	})

	c.Run("nothing to remove", func(c *qt.C) {
		res, err := setup.Uninstall(setup.Target{Agent: setup.ClaudeCode, Root: c.TempDir()})
		c.Assert(err, qt.IsNil)
		c.Assert(res.Changed, qt.IsFalse)
		c.Assert(res.Message, qt.Contains, "Nothing to remove")
	})
}

// ---------------------------------------------------------------------------
// Codex (TOML)
// ---------------------------------------------------------------------------

func TestCodex_HappyPath(t *testing.T) {
	c := qt.New(t)
	root := c.TempDir()
	path := filepath.Join(root, ".codex", "config.toml")
	c.Assert(os.MkdirAll(filepath.Dir(path), 0o755), qt.IsNil)
	c.Assert(os.WriteFile(path, []byte("model = \"o3\"\n\n[mcp_servers.other]\ncommand = \"x\"\n"), 0o600), qt.IsNil)

	target := setup.Target{Agent: setup.Codex, Root: root, PantryHome: "/data/pantry"}
	res, err := setup.Install(target)
	c.Assert(err, qt.IsNil)
	c.Assert(res.Changed, qt.IsTrue)

	data, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Contains, "[mcp_servers.pantry]\ncommand = \"pantry\"\nargs = [\"mcp\", \"--pantry-home\", \"/data/pantry\"]\n")

	res, err = setup.Install(target)
	c.Assert(err, qt.IsNil)
	c.Assert(res.Changed, qt.IsFalse)

	res, err = setup.Uninstall(target)
	c.Assert(err, qt.IsNil)
	c.Assert(res.Changed, qt.IsTrue)

	data, err = os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(strings.Contains(string(data), "mcp_servers.pantry"), qt.IsFalse)
	c.Assert(string(data), qt.Contains, "[mcp_servers.other]\ncommand = \"x\"")
	c.Assert(string(data), qt.Contains, "model = \"o3\"")
}

func TestCodex_UninstallRemovesEmptyFile(t *testing.T) {
	c := qt.New(t)
	root := c.TempDir()
	target := setup.Target{Agent: setup.Codex, Root: root}

	_, err := setup.Install(target)
	c.Assert(err, qt.IsNil)
	_, err = setup.Uninstall(target)
	c.Assert(err, qt.IsNil)

	_, err = os.Stat(filepath.Join(root, ".codex", "config.toml"))
	c.Assert(os.IsNotExist(err), qt.IsTrue)
}

func TestAgents(t *testing.T) {
	c := qt.New(t)
	c.Assert(setup.Agents(), qt.DeepEquals, []setup.Agent{setup.ClaudeCode, setup.Cursor, setup.Codex, setup.OpenCode})
}
