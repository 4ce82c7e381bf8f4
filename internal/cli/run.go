package cli

import (
	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/models"
	"github.com/sisi-cmux/sisi/internal/projectcmd"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	fs   filesystem.FileSystem
	exec executor.CommandExecutor
}

// NewRunCommand creates a new run command
func NewRunCommand(fs filesystem.FileSystem, exec executor.CommandExecutor) *cobra.Command {
	cmd := &RunCommand{
		fs:   fs,
		exec: exec,
	}

	cobraCmd := &cobra.Command{
		Use:       "run <dev|test|build>",
		Short:     "Run the dev, test or build command for a project",
		Long:      `Detects the project type and runs the best matching command in the project directory.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: actionNames(),
		RunE:      cmd.Run,
	}

	cobraCmd.Flags().Bool("dry-run", false, "Only report the detected project type")
	cobraCmd.Flags().StringP(pathFlag, "p", "", "Project directory (default: current directory)")

	return cobraCmd
}

// Run executes the run command
func (c *RunCommand) Run(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	action, err := models.ParseAction(args[0])
	if err != nil {
		return err
	}

	dir, err := pathFromCmd(cmd, c.fs)
	if err != nil {
		return err
	}

	runner := projectcmd.NewRunner(c.fs, c.exec, cmd.OutOrStdout())
	if dryRun {
		runner.DryRun(dir)
		return nil
	}
	return runner.Execute(cmd.Context(), action, dir)
}

func actionNames() []string {
	names := make([]string, 0, len(models.Actions))
	for _, a := range models.Actions {
		names = append(names, a.String())
	}
	return names
}
