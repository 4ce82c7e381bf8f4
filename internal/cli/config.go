package cli

import (
	"fmt"

	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/spf13/cobra"
)

// ConfigCommand handles the config command
type ConfigCommand struct {
	fs filesystem.FileSystem
}

// NewConfigCommand creates a new config command
func NewConfigCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &ConfigCommand{fs: fs}

	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  `Prints the configuration after defaults, the config file, $SISI_SESSION and --session are applied.`,
		Args:  cobra.NoArgs,
		RunE:  cmd.Run,
	}
}

// Run executes the config command
func (c *ConfigCommand) Run(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, c.fs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if s.Path != "" {
		fmt.Fprintf(out, "# %s\n", s.Path)
	} else {
		fmt.Fprintf(out, "# %s (not found, using defaults)\n", s.ConfigPath)
	}

	text, err := s.YAML()
	if err != nil {
		return err
	}
	fmt.Fprint(out, text)
	return nil
}
