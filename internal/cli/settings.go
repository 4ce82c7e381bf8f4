package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/sisi-cmux/sisi/internal/config"
	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/tmux"
	"github.com/sisi-cmux/sisi/internal/tmuxconf"
	"github.com/sisi-cmux/sisi/internal/workspace"
	"github.com/spf13/cobra"
)

const (
	sessionFlag = "session"
	configFlag  = "config"
	debugFlag   = "debug"
	pathFlag    = "path"
)

// settings is the configuration resolved for one command invocation.
type settings struct {
	*config.Config

	// ConfigPath is where the config file was looked up, present or not.
	ConfigPath string
}

// loadSettings reads the config file and applies --session on top of it.
func loadSettings(cmd *cobra.Command, fs filesystem.FileSystem) (*settings, error) {
	path, _ := cmd.Flags().GetString(configFlag)
	if path == "" {
		resolved, err := config.ConfigFilePath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
		path = resolved
	}

	cfg, err := config.Load(fs, path)
	if err != nil {
		return nil, err
	}

	if session, _ := cmd.Flags().GetString(sessionFlag); session != "" {
		if err := config.ValidateSessionName(session); err != nil {
			return nil, err
		}
		cfg.SessionName = session
	}

	return &settings{Config: cfg, ConfigPath: path}, nil
}

// TemplatePath is the optional tmux config template next to the config file.
func (s *settings) TemplatePath() string {
	return filepath.Join(filepath.Dir(s.ConfigPath), tmuxconf.TemplateFileName)
}

func (s *settings) tmuxClient(exec executor.CommandExecutor, env Env, out io.Writer) *tmux.Client {
	options := []tmux.Option{
		tmux.WithTimeout(s.TmuxTimeout),
		tmux.WithOutput(out),
	}
	if env.Getenv != nil {
		options = append(options, tmux.WithGetenv(env.Getenv))
	}
	return tmux.New(s.SessionName, exec, options...)
}

func (s *settings) scanner(fs filesystem.FileSystem, out io.Writer) *workspace.Scanner {
	return workspace.New(fs,
		workspace.WithOutput(out),
		workspace.WithExcludePatterns(s.ExcludePatterns...),
		workspace.WithMaxDirectories(s.MaxDirectories),
		workspace.WithGitignore(s.GitignoreEnabled()),
	)
}

// pathFromCmd returns --path resolved against the working directory.
func pathFromCmd(cmd *cobra.Command, fs filesystem.FileSystem) (string, error) {
	path, _ := cmd.Flags().GetString(pathFlag)
	dir, err := workspace.ResolveDirectory(fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory: %w", err)
	}
	return dir, nil
}
