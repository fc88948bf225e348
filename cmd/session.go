package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mcserver/internal/api"
	"mcserver/internal/session"
)

func newAttachCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "attach [server]",
		Aliases: []string{"att", "connect", "con"},
		Short:   "Attach to a running server's session",
		Long: `Attach the terminal to a server's zellij session. Without a server the
default server is used; "." means the server containing the working directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, ctrl, err := sessionTarget(args)
			if err != nil {
				return err
			}
			return ctrl.Attach(commandContext(cmd), server)
		},
	}
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "stop [server]",
		Aliases: []string{"stp"},
		Short:   "Ask a server to shut down",
		Long:    `Type "stop" into the server console. The session closes once the server exits.`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, ctrl, err := sessionTarget(args)
			if err != nil {
				return err
			}
			return ctrl.WriteLine(commandContext(cmd), session.SessionName(server), "stop")
		},
	}
}

func newExecuteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "execute <server> <command...>",
		Aliases: []string{"exec", "x"},
		Short:   "Run a console command on a server",
		Long: `Type a command into the server console and press enter. The words after
the server name are joined with spaces.

Example:
  mcserver execute survival say Restarting in 5 minutes`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, ctrl, err := sessionTarget(args[:1])
			if err != nil {
				return err
			}
			return ctrl.WriteLine(commandContext(cmd), session.SessionName(server), strings.Join(args[1:], " "))
		},
	}
}

func newKillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kill [server]",
		Short: "Kill a server's session immediately",
		Long:  `Kill the zellij session without letting the server save. Prefer "stop".`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, ctrl, err := sessionTarget(args)
			if err != nil {
				return err
			}
			return ctrl.KillSession(commandContext(cmd), session.SessionName(server))
		},
	}
}

func newDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "deploy [server]",
		Aliases: []string{"dpl", "start", "st"},
		Short:   "Start a server in a new session",
		Long: `Open a new zellij session for the server and launch it with the jar
named in Server/jarfile.txt. The command returns when you detach or the
server stops.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := resolveServer(args)
			if err != nil {
				return err
			}
			registry, err := getRegistry()
			if err != nil {
				return err
			}
			deployment, err := getDeployment(registry)
			if err != nil {
				return err
			}
			command, err := deployment.Command(server)
			if err != nil {
				return err
			}
			return getController(registry).Create(commandContext(cmd), server, command)
		},
	}
}

func newRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Start the server again from inside its session",
		Long: `Run inside a server's zellij session after the server has stopped to
launch it again in the same session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, ok := lookupEnv(session.SessionNameEnv)
			if !ok || name == "" {
				return api.ErrNoSessionName
			}
			server, ok := session.ServerName(name)
			if !ok {
				return &api.InvalidServerSessionError{Session: name}
			}

			registry, err := getRegistry()
			if err != nil {
				return err
			}
			deployment, err := getDeployment(registry)
			if err != nil {
				return err
			}
			command, err := deployment.Command(server)
			if err != nil {
				return fmt.Errorf("failed to build start command for %s: %w", server, err)
			}
			return getController(registry).WriteLine(commandContext(cmd), name, command)
		},
	}
}
