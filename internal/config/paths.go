package config

import (
	"os"
	"path/filepath"
)

const appName = "sisi"

// Env vars consulted by path and config resolution.
const (
	EnvConfigPath = "SISI_CONFIG"
	EnvSession    = "SISI_SESSION"
)

// ConfigFilePath resolves the config file location.
// Resolution order: $SISI_CONFIG, $XDG_CONFIG_HOME/sisi/config.yaml, ~/.config/sisi/config.yaml.
func ConfigFilePath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.yaml"), nil
}

// StateDir is where transient files such as logs are written.
func StateDir() (string, error) {
	dir, err := xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

func xdgDir(envVar, homeFallback string) (string, error) {
	if dir := os.Getenv(envVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeFallback), nil
}
