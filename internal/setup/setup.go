// Package setup registers and removes the pantry MCP server in the
// configuration files of supported coding agents (Claude Code, Cursor, Codex,
// OpenCode).
package setup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ServerName is the key the pantry server is registered under.
const ServerName = "pantry"

// Agent names a supported coding agent.
type Agent string

// Supported agents.
const (
	ClaudeCode Agent = "claude-code"
	Cursor     Agent = "cursor"
	Codex      Agent = "codex"
	OpenCode   Agent = "opencode"
)

// Agents lists the supported agents in display order.
func Agents() []Agent { return []Agent{ClaudeCode, Cursor, Codex, OpenCode} }

// Target describes one install or uninstall.
type Target struct {
	Agent Agent
	// Root is the directory the agent config lives under. Defaults to the
	// user home directory, or the working directory when Project is set.
	Root    string
	Project bool
	// Command is the pantry executable. Defaults to "pantry".
	Command string
	// PantryHome and APIURL, when set, are passed as flags to `pantry mcp`.
	PantryHome string
	APIURL     string
}

// Result reports what Install or Uninstall did.
type Result struct {
	Changed bool
	Path    string
	Message string
}

// ConfigPath returns the file the agent's MCP servers are declared in.
func (t Target) ConfigPath() (string, error) {
	root := t.Root
	if root == "" {
		var err error
		if t.Project {
			root, err = os.Getwd()
		} else {
			root, err = os.UserHomeDir()
		}
		if err != nil {
			return "", fmt.Errorf("setup: resolve root: %w", err)
		}
	}
	switch t.Agent {
	case ClaudeCode:
		if t.Project {
			return filepath.Join(root, ".mcp.json"), nil
		}
		return filepath.Join(root, ".claude.json"), nil
	case Cursor:
		return filepath.Join(root, ".cursor", "mcp.json"), nil
	case Codex:
		return filepath.Join(root, ".codex", "config.toml"), nil
	case OpenCode:
		if t.Project {
			return filepath.Join(root, "opencode.json"), nil
		}
		return filepath.Join(root, ".config", "opencode", "opencode.json"), nil
	default:
		return "", fmt.Errorf("setup: unknown agent %q", t.Agent)
	}
}

func (t Target) args() []string {
	args := []string{"mcp"}
	if t.PantryHome != "" {
		args = append(args, "--pantry-home", t.PantryHome)
	}
	if t.APIURL != "" {
		args = append(args, "--api-url", t.APIURL)
	}
	return args
}

func (t Target) command() string {
	if t.Command == "" {
		return "pantry"
	}
	return t.Command
}

// Install registers the pantry server for t.Agent. Installing twice is a no-op.
func Install(t Target) (Result, error) {
	path, err := t.ConfigPath()
	if err != nil {
		return Result{}, err
	}
	var added bool
	switch t.Agent {
	case Codex:
		added, err = appendTOMLSection(path, t.tomlSection())
	case OpenCode:
		added, err = installJSON(path, "mcp", map[string]any{
			"type":    "local",
			"command": append([]string{t.command()}, t.args()...),
		})
	default:
		added, err = installJSON(path, "mcpServers", map[string]any{
			"type":    "stdio",
			"command": t.command(),
			"args":    t.args(),
		})
	}
	if err != nil {
		return Result{}, fmt.Errorf("setup: install %s: %w", t.Agent, err)
	}
	if !added {
		return Result{Path: path, Message: "Already installed in " + path}, nil
	}
	return Result{Changed: true, Path: path, Message: "Installed pantry MCP server in " + path}, nil
}

// Uninstall removes the pantry server for t.Agent, leaving other entries
// untouched. A config file left empty is deleted.
func Uninstall(t Target) (Result, error) {
	path, err := t.ConfigPath()
	if err != nil {
		return Result{}, err
	}
	var removed bool
	switch t.Agent {
	case Codex:
		removed, err = removeTOMLSection(path)
	case OpenCode:
		removed, err = uninstallJSON(path, "mcp")
	default:
		removed, err = uninstallJSON(path, "mcpServers")
	}
	if err != nil {
		return Result{}, fmt.Errorf("setup: uninstall %s: %w", t.Agent, err)
	}
	if !removed {
		return Result{Path: path, Message: "Nothing to remove in " + path}, nil
	}
	return Result{Changed: true, Path: path, Message: "Removed pantry MCP server from " + path}, nil
}

// ---------------------------------------------------------------------------
// JSON configs (Claude Code, Cursor, OpenCode)
// ---------------------------------------------------------------------------

func readJSON(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if len(strings.TrimSpace(string(data))) == 0 {
		return make(map[string]any), nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

func writeJSON(path string, data map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644) // #nosec G306 -- agent config files hold no secrets
}

func installJSON(path, key string, entry map[string]any) (bool, error) {
	data, err := readJSON(path)
	if err != nil {
		return false, err
	}
	servers, _ := data[key].(map[string]any)
	if servers == nil {
		servers = make(map[string]any)
		data[key] = servers
	}
	if _, exists := servers[ServerName]; exists {
		return false, nil
	}
	servers[ServerName] = entry
	return true, writeJSON(path, data)
}

func uninstallJSON(path, key string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	data, err := readJSON(path)
	if err != nil {
		return false, err
	}
	servers, _ := data[key].(map[string]any)
	if _, exists := servers[ServerName]; !exists {
		return false, nil
	}
	delete(servers, ServerName)
	if len(servers) == 0 {
		delete(data, key)
	}
	if len(data) == 0 {
		return true, os.Remove(path)
	}
	return true, writeJSON(path, data)
}

// ---------------------------------------------------------------------------
// TOML config (Codex). Text based: only the [mcp_servers.pantry] table is
// ever touched.
// ---------------------------------------------------------------------------

const tomlHeader = "[mcp_servers." + ServerName + "]"

func (t Target) tomlSection() string {
	quoted := make([]string, 0, len(t.args()))
	for _, a := range t.args() {
		quoted = append(quoted, strconv.Quote(a))
	}
	return fmt.Sprintf("\n%s\ncommand = %s\nargs = [%s]\n",
		tomlHeader, strconv.Quote(t.command()), strings.Join(quoted, ", "))
}

func hasTOMLSection(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == tomlHeader {
			return true
		}
	}
	return false
}

func appendTOMLSection(path, section string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	if hasTOMLSection(string(data)) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, err
	}
	defer f.Close()
	_, err = f.WriteString(section)
	return err == nil, err
}

func removeTOMLSection(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	content := string(data)
	if !hasTOMLSection(content) {
		return false, nil
	}
	// Drop the header and its keys up to the next table header or EOF.
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	inSection := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == tomlHeader {
			inSection = true
			continue
		}
		if inSection && strings.HasPrefix(trimmed, "[") {
			inSection = false
		}
		if !inSection {
			kept = append(kept, line)
		}
	}
	cleaned := strings.TrimSpace(strings.Join(kept, "\n"))
	if cleaned == "" {
		return true, os.Remove(path)
	}
	return true, os.WriteFile(path, []byte(cleaned+"\n"), 0o644) // #nosec G306 -- agent TOML config holds no secrets
}
