package cli

import (
	"fmt"

	"github.com/sisi-cmux/sisi/internal/apperr"
	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/tui"
	"github.com/spf13/cobra"
)

// StopCommand handles the stop command
type StopCommand struct {
	fs   filesystem.FileSystem
	exec executor.CommandExecutor
	env  Env
}

// NewStopCommand creates a new stop command
func NewStopCommand(fs filesystem.FileSystem, exec executor.CommandExecutor, env Env) *cobra.Command {
	cmd := &StopCommand{
		fs:   fs,
		exec: exec,
		env:  env,
	}

	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the workspace",
		Args:  cobra.NoArgs,
		RunE:  cmd.Run,
	}
}

// Run executes the stop command
func (c *StopCommand) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	s, err := loadSettings(cmd, c.fs)
	if err != nil {
		return err
	}
	client := s.tmuxClient(c.exec, c.env, out)

	if !client.SessionExists(ctx) {
		fmt.Fprintln(out, tui.WarnStyle.Render("No workspace running"))
		return nil
	}

	if err := client.Kill(ctx); err != nil {
		return apperr.WithContext("Failed to stop workspace", err)
	}

	fmt.Fprintln(out, tui.SuccessStyle.Render("✅ Workspace stopped"))
	return nil
}
