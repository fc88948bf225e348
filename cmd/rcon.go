package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"mcserver/internal/config"
	"mcserver/internal/rcon"
)

// runRcon is a variable to allow tests to replace mcrcon
var runRcon = func(ctx context.Context, rc config.RconConfig) error {
	return rcon.NewClient().Run(ctx, rc)
}

func newRconCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rcon [server]",
		Short: "Open a remote console to a server",
		Long: `Open an interactive mcrcon console using the connection settings stored
with "mcserver config rcon set".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := resolveServer(args)
			if err != nil {
				return err
			}
			rc, err := getStore().Rcon(server)
			if err != nil {
				return err
			}
			return runRcon(commandContext(cmd), rc)
		},
	}
}
