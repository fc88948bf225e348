package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mcserver/internal/cli"
)

func newTemplateCmd() *cobra.Command {
	templateCmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"tpl"},
		Short:   "Create templates and servers from templates",
		Long: `A template is a server directory whose name ends in ".template". Templates
are copied to create new servers and cannot be deployed themselves.`,
	}

	templateCmd.AddCommand(&cobra.Command{
		Use:   "new <server>",
		Short: "Create a template from an existing server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := getStore().ServerOrDefault(args[0])
			if err != nil {
				return err
			}
			registry, err := getRegistry()
			if err != nil {
				return err
			}

			var name string
			err = cli.WithSpinner(cmd.ErrOrStderr(), !cli.IsTerminal(cmd.ErrOrStderr()), "Copying "+server, func() error {
				name, err = registry.NewTemplate(server)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created template %s", name)))
			return nil
		},
	})

	templateCmd.AddCommand(&cobra.Command{
		Use:   "from <template> [name]",
		Short: "Create a server from a template",
		Long: `Copy a template into a new server. Without a name the template's name is
used, with -2, -3 and so on appended if it is taken.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 1 {
				name = args[1]
			}
			registry, err := getRegistry()
			if err != nil {
				return err
			}

			var created string
			err = cli.WithSpinner(cmd.ErrOrStderr(), !cli.IsTerminal(cmd.ErrOrStderr()), "Copying "+args[0], func() error {
				created, err = registry.FromTemplate(args[0], name)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created server %s", created)))
			return nil
		},
	})

	return templateCmd
}
