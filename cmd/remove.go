package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mcserver/internal/api"
	"mcserver/internal/cli"
	"mcserver/internal/servers"
)

// confirm is a variable to allow tests to answer the prompt
var confirm = cli.ConfirmByName

func newRemoveCmd() *cobra.Command {
	var yes bool

	removeCmd := &cobra.Command{
		Use:     "remove <server>",
		Aliases: []string{"rm"},
		Short:   "Delete a server directory",
		Long: `Delete a server and all of its files. You are asked to type the server
name to confirm; entering nothing cancels. Running servers must be stopped
first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := getStore().ServerOrDefault(args[0])
			if err != nil {
				return err
			}
			if err := servers.ValidateName(server); err != nil {
				return err
			}
			registry, err := getRegistry()
			if err != nil {
				return err
			}
			if !registry.Exists(server) {
				return api.NewServerNotFoundError(server)
			}

			state, err := getController(registry).State(commandContext(cmd), server)
			if err != nil {
				return err
			}
			if state.IsAlive() {
				return fmt.Errorf("server %s is running, stop it before removing it", server)
			}

			if !yes {
				ok, err := confirm("delete the server", server)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			err = cli.WithSpinner(cmd.ErrOrStderr(), !cli.IsTerminal(cmd.ErrOrStderr()), "Removing "+server, func() error {
				return registry.Remove(server)
			})
			if err != nil {
				return err
			}

			if err := clearDefaultIf(server); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Removed "+server))
			return nil
		},
	}

	removeCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return removeCmd
}

// clearDefaultIf unsets default_server when it names server.
func clearDefaultIf(server string) error {
	def, err := getStore().DefaultServer()
	if err != nil || def != server {
		return err
	}
	return getStore().SetDefaultServer("")
}
