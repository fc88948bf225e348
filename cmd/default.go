package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mcserver/internal/api"
	"mcserver/internal/servers"
)

func newDefaultCmd() *cobra.Command {
	defaultCmd := &cobra.Command{
		Use:     "default",
		Aliases: []string{"def"},
		Short:   "Show or change the default server",
		Long: `The default server is used by commands that take an optional server
argument when none is given.`,
	}

	defaultCmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the default server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := getStore().DefaultServer()
			if err != nil {
				return err
			}
			if server == "" {
				return api.ErrNoDefaultServer
			}
			fmt.Fprintln(cmd.OutOrStdout(), server)
			return nil
		},
	})

	defaultCmd.AddCommand(&cobra.Command{
		Use:   "set <server>",
		Short: "Set the default server",
		Args:  cobra.ExactArgs(1),
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
			return getStore().SetDefaultServer(server)
		},
	})

	return defaultCmd
}
