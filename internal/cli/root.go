package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sisi-cmux/sisi/internal/apperr"
	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/logger"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set at build time with -ldflags "-X github.com/sisi-cmux/sisi/internal/cli.Version=..."
var Version = "dev"

// Env carries the process hooks commands use beyond the filesystem and executor.
type Env struct {
	Getenv     func(string) string
	Executable func() (string, error)
	IsTerminal func() bool
}

// OSEnv returns an Env backed by the running process.
func OSEnv() Env {
	return Env{
		Getenv:     os.Getenv,
		Executable: os.Executable,
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, exec executor.CommandExecutor, env Env) *cobra.Command {
	start := &StartCommand{fs: fs, exec: exec, env: env}

	rootCmd := &cobra.Command{
		Use:   "sisi [directory]",
		Short: "Multi-project workspace manager with Claude integration",
		Long: `sisi opens every project under a directory as a window of one tmux session.

Each window starts in its project directory. Key bindings inside the session
launch Claude, open the project selector and run dev, test and build commands.`,
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool(debugFlag)
			logger.SetDebug(debug)
			logger.WithComponent("cli").Debug("running command", "command", cmd.CommandPath(), "args", args)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to `sisi start` when no subcommand is provided.
			return start.Run(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringP(sessionFlag, "s", "", "tmux session name (default from config or $SISI_SESSION)")
	rootCmd.PersistentFlags().String(configFlag, "", "config file (default $XDG_CONFIG_HOME/sisi/config.yaml)")
	rootCmd.PersistentFlags().Bool(debugFlag, false, "write debug logs")

	rootCmd.AddCommand(NewStartCommand(fs, exec, env))
	rootCmd.AddCommand(NewStopCommand(fs, exec, env))
	rootCmd.AddCommand(NewRefreshCommand(fs, exec, env))
	rootCmd.AddCommand(NewSelectCommand(fs, exec, env))
	rootCmd.AddCommand(NewActionsCommand(fs, exec, env))
	rootCmd.AddCommand(NewRunCommand(fs, exec))
	rootCmd.AddCommand(NewDoctorCommand(fs, exec))
	rootCmd.AddCommand(NewConfigCommand(fs))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	exec := executor.NewRealExecutor()

	if path, err := logger.DefaultLogPath(); err == nil {
		_ = logger.Init(path)
	}
	defer func() { _ = logger.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := NewRootCommand(fs, exec, OSEnv())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.WithComponent("cli").Error("command failed", "error", err, "code", apperr.Code(err))
		_, _ = fmt.Fprintln(os.Stderr, apperr.Format(err))
		return err
	}

	return nil
}
