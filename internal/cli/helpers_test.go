package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/sisi-cmux/sisi/internal/config"
	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/sisi-cmux/sisi/internal/filesystem"
)

const testConfigPath = "/home/dev/.config/sisi/config.yaml"

func testEnv() Env {
	return Env{
		Getenv:     func(string) string { return "" },
		Executable: func() (string, error) { return "/usr/local/bin/sisi", nil },
		IsTerminal: func() bool { return false },
	}
}

// runCLI executes the root command with args and returns everything it printed.
func runCLI(t *testing.T, fs filesystem.FileSystem, exec executor.CommandExecutor, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvSession, "")

	root := NewRootCommand(fs, exec, testEnv())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", testConfigPath}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// noSessionUntilCreated makes has-session fail until new-session has run.
func noSessionUntilCreated(exec *executor.MockExecutor) {
	created := false
	exec.AddRule(func(dir, name string, args []string) bool {
		for _, a := range args {
			if name == "tmux" && a == "new-session" {
				created = true
			}
		}
		return false
	}, executor.MockResponse{})
	exec.AddRule(func(dir, name string, args []string) bool {
		return name == "tmux" && len(args) > 0 && args[0] == "has-session" && !created
	}, executor.MockResponse{Err: &executor.ExitError{Code: 1}})
}

func noSession(exec *executor.MockExecutor) {
	exec.AddPrefixMatch("tmux", []string{"has-session"}, executor.MockResponse{Err: &executor.ExitError{Code: 1}})
}

func interactiveCalls(exec *executor.MockExecutor) []executor.MockCall {
	var calls []executor.MockCall
	for _, c := range exec.Calls() {
		if c.Interactive {
			calls = append(calls, c)
		}
	}
	return calls
}
