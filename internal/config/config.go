// Package config loads sisi settings from a YAML file.
//
// Every field is optional. A missing file yields Default().
//
//	session_name: sisi-workspace
//	exclude_patterns: [fixtures, tmp]
//	max_directories: 100
//	scan_timeout: 30s
//	tmux_timeout: 10s
//	claude_commands: [claude, claude-code]
//	editor_command: code .
//	respect_gitignore: true
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/sisi-cmux/sisi/internal/filesystem"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSessionName    = "sisi-workspace"
	DefaultMaxDirectories = 100
	DefaultScanTimeout    = 30 * time.Second
	DefaultTmuxTimeout    = 10 * time.Second
	DefaultEditorCommand  = "code ."
)

// Config holds the runtime configuration.
type Config struct {
	SessionName      string        `yaml:"session_name"`
	ExcludePatterns  []string      `yaml:"exclude_patterns,omitempty"`
	MaxDirectories   int           `yaml:"max_directories"`
	ScanTimeout      time.Duration `yaml:"scan_timeout"`
	TmuxTimeout      time.Duration `yaml:"tmux_timeout"`
	ClaudeCommands   []string      `yaml:"claude_commands"`
	EditorCommand    string        `yaml:"editor_command"`
	RespectGitignore *bool         `yaml:"respect_gitignore,omitempty"`

	// Path is the file the config was read from, empty when defaults are used.
	Path string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	respect := true
	return &Config{
		SessionName:      DefaultSessionName,
		MaxDirectories:   DefaultMaxDirectories,
		ScanTimeout:      DefaultScanTimeout,
		TmuxTimeout:      DefaultTmuxTimeout,
		ClaudeCommands:   []string{"claude", "claude-code"},
		EditorCommand:    DefaultEditorCommand,
		RespectGitignore: &respect,
	}
}

// Load reads the config at path, falling back to defaults when the file is absent.
// SISI_SESSION overrides the session name from the file.
func Load(fsys filesystem.FileSystem, path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := fsys.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
			cfg.Path = path
		}
	}

	if session := os.Getenv(EnvSession); session != "" {
		cfg.SessionName = session
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills blank strings and lists left by a partial YAML document.
// Numeric limits are decoded over Default(), so an omitted key keeps its
// default and an explicit zero reaches Validate.
func (c *Config) applyDefaults() {
	d := Default()
	if c.SessionName == "" {
		c.SessionName = d.SessionName
	}
	if len(c.ClaudeCommands) == 0 {
		c.ClaudeCommands = d.ClaudeCommands
	}
	if strings.TrimSpace(c.EditorCommand) == "" {
		c.EditorCommand = d.EditorCommand
	}
	if c.RespectGitignore == nil {
		c.RespectGitignore = d.RespectGitignore
	}
}

// Validate checks the config for values tmux or the scanner cannot use.
func (c *Config) Validate() error {
	if err := ValidateSessionName(c.SessionName); err != nil {
		return err
	}
	if c.MaxDirectories <= 0 {
		return fmt.Errorf("max_directories must be positive, got %d", c.MaxDirectories)
	}
	if c.ScanTimeout <= 0 {
		return fmt.Errorf("scan_timeout must be positive, got %s", c.ScanTimeout)
	}
	if c.TmuxTimeout <= 0 {
		return fmt.Errorf("tmux_timeout must be positive, got %s", c.TmuxTimeout)
	}
	return nil
}

// ValidateSessionName rejects names tmux would misparse as a target.
func ValidateSessionName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("session name cannot be empty")
	}
	if strings.ContainsAny(name, ".:") {
		return fmt.Errorf("invalid session name %q: must not contain '.' or ':'", name)
	}
	return nil
}

// GitignoreEnabled reports whether discovery should honour the root .gitignore.
func (c *Config) GitignoreEnabled() bool {
	return c.RespectGitignore == nil || *c.RespectGitignore
}

// YAML renders the effective configuration.
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}
