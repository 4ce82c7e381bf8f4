package executor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMockExecutor_ExactAndPrefixRules(t *testing.T) {
	mock := NewMockExecutor()
	mock.AddExactMatch("tmux", []string{"-V"}, MockResponse{Stdout: []byte("tmux 3.4\n")})
	mock.AddPrefixMatch("tmux", []string{"has-session"}, MockResponse{Err: &ExitError{Code: 1}})

	ctx := context.Background()

	stdout, _, err := mock.Run(ctx, "", "tmux", "-V")
	require.NoError(t, err)
	require.Equal(t, "tmux 3.4\n", string(stdout))

	_, _, err = mock.Run(ctx, "", "tmux", "has-session", "-t", "x")
	require.Error(t, err)
	require.Equal(t, 1, ExitCode(err))

	_, _, err = mock.Run(ctx, "/work", "git", "status")
	require.NoError(t, err, "unmatched commands succeed")

	require.Equal(t, []string{"tmux -V", "tmux has-session -t x", "git status"}, mock.CallStrings())
	require.Equal(t, "/work", mock.Calls()[2].Dir)
	require.Len(t, mock.CallsWithPrefix("tmux", "has-session"), 1)
}

func TestMockExecutor_InteractiveIsRecorded(t *testing.T) {
	mock := NewMockExecutor()
	require.NoError(t, mock.Interactive(context.Background(), "/p", "sh", "-c", "npm test"))

	calls := mock.Calls()
	require.Len(t, calls, 1)
	require.True(t, calls[0].Interactive)
	require.Equal(t, []string{"-c", "npm test"}, calls[0].Args)
}

func TestMockExecutor_CanceledContext(t *testing.T) {
	mock := NewMockExecutor()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := mock.Run(ctx, "", "tmux", "list-windows")
	require.ErrorIs(t, err, context.Canceled)
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 0, ExitCode(nil))
	require.Equal(t, 3, ExitCode(fmt.Errorf("wrapped: %w", &ExitError{Code: 3})))
	require.Equal(t, -1, ExitCode(errors.New("spawn failed")))
}

func TestIsNotFound(t *testing.T) {
	_, err := exec.LookPath("definitely-not-a-real-binary-sisi")
	require.True(t, IsNotFound(err))
	require.False(t, IsNotFound(errors.New("exit status 1")))
}
