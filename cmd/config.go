package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mcserver/internal/cli"
	"mcserver/internal/config"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"cfg"},
		Short:   "Inspect and change the mcserver configuration",
	}

	var output string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the configuration with passwords hidden",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(output); err != nil {
				return err
			}
			cfg, err := getStore().View()
			if err != nil {
				return err
			}
			return cli.WriteConfig(cmd.OutOrStdout(), cfg, cli.OutputFormat(output))
		},
	}
	showCmd.Flags().StringVarP(&output, "output", "o", string(cli.OutputFormatTable), "Output format (table, json, yaml)")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the path of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := getStore().Path()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	configCmd.AddCommand(showCmd, pathCmd, newConfigRconCmd())
	return configCmd
}

func newConfigRconCmd() *cobra.Command {
	rconCmd := &cobra.Command{
		Use:   "rcon",
		Short: "Manage remote-console connection settings",
	}

	var (
		address  string
		port     uint16
		password string
	)
	setCmd := &cobra.Command{
		Use:   "set <server>",
		Short: "Store rcon settings for a server",
		Long: `Store the address, port and password used by "mcserver rcon". Flags that
are not given keep their current value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := getStore().ServerOrDefault(args[0])
			if err != nil {
				return err
			}
			return getStore().With(func(cfg *config.DynamicConfig) error {
				rc := cfg.Rcon[server]
				if cmd.Flags().Changed("address") {
					rc.ServerAddress = address
				}
				if cmd.Flags().Changed("port") {
					rc.Port = port
				}
				if cmd.Flags().Changed("password") {
					rc.Password = config.Password(password)
				}
				cfg.Rcon[server] = rc
				return nil
			})
		},
	}
	setCmd.Flags().StringVar(&address, "address", "", "Server address")
	setCmd.Flags().Uint16Var(&port, "port", 0, "Rcon port")
	setCmd.Flags().StringVar(&password, "password", "", "Rcon password")

	removeCmd := &cobra.Command{
		Use:     "remove <server>",
		Aliases: []string{"rm"},
		Short:   "Delete the rcon settings of a server",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := getStore().ServerOrDefault(args[0])
			if err != nil {
				return err
			}
			return getStore().RemoveRcon(server)
		},
	}

	rconCmd.AddCommand(setCmd, removeCmd)
	return rconCmd
}
