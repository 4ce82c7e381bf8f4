package cli

import (
	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/quickactions"
	"github.com/spf13/cobra"
)

// ActionsCommand handles the actions command
type ActionsCommand struct {
	fs   filesystem.FileSystem
	exec executor.CommandExecutor
	env  Env
}

// NewActionsCommand creates a new actions command
func NewActionsCommand(fs filesystem.FileSystem, exec executor.CommandExecutor, env Env) *cobra.Command {
	cmd := &ActionsCommand{
		fs:   fs,
		exec: exec,
		env:  env,
	}

	cobraCmd := &cobra.Command{
		Use:   "actions",
		Short: "Show the quick actions panel for a project",
		Long: `Shows the project status (git, dependencies, running processes) and the
actions available for it. On a terminal, press an action key to run it.

Bound to Ctrl+b Q inside the session.`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringP("execute", "e", "", "Run the action bound to this key and exit")
	cobraCmd.Flags().StringP(pathFlag, "p", "", "Project directory (default: current directory)")

	return cobraCmd
}

// Run executes the actions command
func (c *ActionsCommand) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	key, _ := cmd.Flags().GetString("execute")

	s, err := loadSettings(cmd, c.fs)
	if err != nil {
		return err
	}

	dir, err := pathFromCmd(cmd, c.fs)
	if err != nil {
		return err
	}

	status := quickactions.NewGatherer(c.fs, c.exec).Gather(ctx, dir)
	panel := quickactions.NewPanel(dir, status, c.exec, out, s.EditorCommand)

	if key != "" {
		return panel.Execute(ctx, key)
	}

	if c.env.IsTerminal == nil || !c.env.IsTerminal() {
		panel.Show()
		return nil
	}

	action, chosen, err := panel.Pick()
	if err != nil {
		return err
	}
	if !chosen {
		return nil
	}
	return panel.Execute(ctx, action.Key)
}
