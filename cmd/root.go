package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mcserver/internal/api"
	"mcserver/internal/cli"
	"mcserver/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeCommandFailed indicates that zellij, mcrcon or another external
	// tool exited with a failure status.
	ExitCodeCommandFailed = 2
	// ExitCodeConfigError indicates the configuration could not be read,
	// written or resolved.
	ExitCodeConfigError = 3
)

var (
	debug     bool
	configDir string
)

// rootCmd represents the base command for the mcserver application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mcserver",
	Short: "Run game servers inside zellij sessions",
	Long: `mcserver manages a directory of game servers, each started inside its
own zellij session. It can deploy, attach to, stop and inspect servers, keeps
track of when each server was last used, and stores its settings in
~/.config/mc-server/config.toml.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelWarn
		if debug {
			level = logging.LevelDebug
		}
		logging.InitForCLI(level, os.Stderr)
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application. After the
// command has run, a changed configuration is written back to disk. A
// failed write is reported as a warning and does not change the exit code.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mcserver version %s\n" .Version}}`)

	err := rootCmd.Execute()
	flushConfig(os.Stderr)

	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var cmdFailure *api.CommandFailureError
	if errors.As(err, &cmdFailure) {
		return ExitCodeCommandFailed
	}

	var (
		parseErr     *api.ConfigParseError
		serializeErr *api.ConfigSerializeError
		expandErr    *api.PathExpansionError
		poisonedErr  *api.LockPoisonedError
		rconErr      *api.MissingConnectionConfigError
	)
	switch {
	case errors.As(err, &parseErr),
		errors.As(err, &serializeErr),
		errors.As(err, &expandErr),
		errors.As(err, &poisonedErr),
		errors.As(err, &rconErr),
		errors.Is(err, api.ErrNoDefaultServer):
		return ExitCodeConfigError
	}

	// Default to general error
	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default "+defaultConfigDirHint()+")")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newAttachCmd())
	rootCmd.AddCommand(newDefaultCmd())
	rootCmd.AddCommand(newDeployCmd())
	rootCmd.AddCommand(newRestartCmd())
	rootCmd.AddCommand(newStopCmd())
	rootCmd.AddCommand(newExecuteCmd())
	rootCmd.AddCommand(newKillCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newTemplateCmd())
	rootCmd.AddCommand(newRconCmd())
	rootCmd.AddCommand(newConfigCmd())
}

// flushConfig persists configuration changes and warns on failure.
func flushConfig(stderr io.Writer) {
	if store == nil {
		return
	}
	if err := store.EnsureWritten(); err != nil {
		cli.Warn(stderr, "Failed to save configuration: %v", err)
	}
}
