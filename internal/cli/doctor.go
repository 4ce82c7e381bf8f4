package cli

import (
	"errors"
	"fmt"

	"github.com/sisi-cmux/sisi/internal/deps"
	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/spf13/cobra"
)

// DoctorCommand handles the doctor command
type DoctorCommand struct {
	fs   filesystem.FileSystem
	exec executor.CommandExecutor
}

// NewDoctorCommand creates a new doctor command
func NewDoctorCommand(fs filesystem.FileSystem, exec executor.CommandExecutor) *cobra.Command {
	cmd := &DoctorCommand{
		fs:   fs,
		exec: exec,
	}

	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that tmux, claude and git are installed",
		Args:  cobra.NoArgs,
		RunE:  cmd.Run,
	}
}

// Run executes the doctor command
func (c *DoctorCommand) Run(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, c.fs)
	if err != nil {
		return err
	}

	results := deps.NewChecker(c.exec, s.ClaudeCommands).CheckAll(cmd.Context())
	fmt.Fprint(cmd.OutOrStdout(), deps.FormatCheckResults(results))

	if !deps.Healthy(results) {
		return errors.New("required dependencies are missing")
	}
	return nil
}
