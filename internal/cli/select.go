package cli

import (
	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/selector"
	"github.com/spf13/cobra"
)

// SelectCommand handles the select command
type SelectCommand struct {
	fs   filesystem.FileSystem
	exec executor.CommandExecutor
	env  Env
}

// NewSelectCommand creates a new select command
func NewSelectCommand(fs filesystem.FileSystem, exec executor.CommandExecutor, env Env) *cobra.Command {
	cmd := &SelectCommand{
		fs:   fs,
		exec: exec,
		env:  env,
	}

	cobraCmd := &cobra.Command{
		Use:   "select",
		Short: "Jump to a project window",
		Long:  `Shows a tmux menu of the workspace windows. Bound to Ctrl+b P inside the session.`,
		Args:  cobra.NoArgs,
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().Bool("tui", false, "Use a terminal picker instead of the tmux menu")

	return cobraCmd
}

// Run executes the select command
func (c *SelectCommand) Run(cmd *cobra.Command, args []string) error {
	useTUI, _ := cmd.Flags().GetBool("tui")

	s, err := loadSettings(cmd, c.fs)
	if err != nil {
		return err
	}

	sel := selector.New(s.tmuxClient(c.exec, c.env, cmd.OutOrStdout()), cmd.OutOrStdout())
	if useTUI {
		return sel.ShowTUI(cmd.Context())
	}
	return sel.Show(cmd.Context())
}
