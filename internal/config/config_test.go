package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvSession, "")
	fs := filesystem.NewMockFileSystem()

	cfg, err := Load(fs, "/home/me/.config/sisi/config.yaml")
	require.NoError(t, err)
	require.Equal(t, DefaultSessionName, cfg.SessionName)
	require.Equal(t, 100, cfg.MaxDirectories)
	require.Equal(t, 30*time.Second, cfg.ScanTimeout)
	require.Equal(t, 10*time.Second, cfg.TmuxTimeout)
	require.Equal(t, []string{"claude", "claude-code"}, cfg.ClaudeCommands)
	require.True(t, cfg.GitignoreEnabled())
	require.Empty(t, cfg.Path)
}

func TestLoad_PartialFile(t *testing.T) {
	t.Setenv(EnvSession, "")
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/cfg/config.yaml", []byte(`session_name: mono
exclude_patterns: [fixtures, scratch]
scan_timeout: 5s
respect_gitignore: false
`))

	cfg, err := Load(fs, "/cfg/config.yaml")
	require.NoError(t, err)
	require.Equal(t, "mono", cfg.SessionName)
	require.Equal(t, []string{"fixtures", "scratch"}, cfg.ExcludePatterns)
	require.Equal(t, 5*time.Second, cfg.ScanTimeout)
	require.Equal(t, DefaultTmuxTimeout, cfg.TmuxTimeout)
	require.Equal(t, DefaultEditorCommand, cfg.EditorCommand)
	require.False(t, cfg.GitignoreEnabled())
	require.Equal(t, "/cfg/config.yaml", cfg.Path)
}

func TestLoad_SessionEnvOverride(t *testing.T) {
	t.Setenv(EnvSession, "from-env")
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/cfg/config.yaml", []byte("session_name: from-file\n"))

	cfg, err := Load(fs, "/cfg/config.yaml")
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.SessionName)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Setenv(EnvSession, "")
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/cfg/config.yaml", []byte("session_name: [unterminated\n"))

	_, err := Load(fs, "/cfg/config.yaml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse config")
}

func TestLoad_RejectsNegativeValues(t *testing.T) {
	t.Setenv(EnvSession, "")
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/cfg/config.yaml", []byte("max_directories: -1\n"))

	_, err := Load(fs, "/cfg/config.yaml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "max_directories")
}

func TestLoad_RejectsExplicitZero(t *testing.T) {
	t.Setenv(EnvSession, "")
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"max directories", "max_directories: 0\n", "max_directories must be positive, got 0"},
		{"scan timeout", "scan_timeout: 0s\n", "scan_timeout must be positive, got 0s"},
		{"tmux timeout", "tmux_timeout: 0s\n", "tmux_timeout must be positive, got 0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := filesystem.NewMockFileSystem()
			fs.AddFile("/cfg/config.yaml", []byte(tt.yaml))

			_, err := Load(fs, "/cfg/config.yaml")
			require.EqualError(t, err, tt.want)
		})
	}
}

func TestValidateSessionName(t *testing.T) {
	require.NoError(t, ValidateSessionName("sisi-workspace"))
	require.Error(t, ValidateSessionName(""))
	require.Error(t, ValidateSessionName("a.b"))
	require.Error(t, ValidateSessionName("a:b"))
}

func TestConfigFilePath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	path, err := ConfigFilePath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/xdg", "sisi", "config.yaml"), path)

	t.Setenv(EnvConfigPath, "/explicit.yaml")
	path, err = ConfigFilePath()
	require.NoError(t, err)
	require.Equal(t, "/explicit.yaml", path)
}

func TestConfig_YAML(t *testing.T) {
	out, err := Default().YAML()
	require.NoError(t, err)
	require.Contains(t, out, "session_name: sisi-workspace")
	require.Contains(t, out, "scan_timeout: 30s")
}
