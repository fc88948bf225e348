package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"mcserver/internal/api"
	"mcserver/internal/cli"
	"mcserver/internal/servers"
	"mcserver/internal/session"
	"mcserver/pkg/logging"
)

type listOptions struct {
	active    bool
	inactive  bool
	dead      bool
	output    string
	noHeaders bool
	names     bool
	watch     bool
}

func newListCmd() *cobra.Command {
	opts := &listOptions{}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List servers and their sessions",
		Long: `List every server in the servers directory with its session state and
when it was last used.

Filters:
  --active     only servers with a running session
  --inactive   only servers without a running session
  --dead       only servers whose session has exited`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	listCmd.Flags().BoolVarP(&opts.active, "active", "a", false, "Only list servers with a running session")
	listCmd.Flags().BoolVarP(&opts.inactive, "inactive", "i", false, "Only list servers without a running session")
	listCmd.Flags().BoolVarP(&opts.dead, "dead", "d", false, "Only list servers whose session has exited")
	listCmd.Flags().StringVarP(&opts.output, "output", "o", string(cli.OutputFormatTable), "Output format (table, json, yaml)")
	listCmd.Flags().BoolVar(&opts.noHeaders, "no-headers", false, "Suppress the header row in table output")
	listCmd.Flags().BoolVar(&opts.names, "names", false, "Print only server names")
	listCmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Print the list again whenever servers are added or removed")
	listCmd.MarkFlagsMutuallyExclusive("active", "inactive", "dead")

	return listCmd
}

func runList(cmd *cobra.Command, opts *listOptions) error {
	if err := cli.ValidateOutputFormat(opts.output); err != nil {
		return err
	}

	registry, err := getRegistry()
	if err != nil {
		return err
	}
	ctrl := getController(registry)
	out := cmd.OutOrStdout()

	render := func(ctx context.Context) error {
		list, err := collectServers(ctx, registry, ctrl, opts)
		if err != nil {
			return err
		}
		return cli.WriteServers(out, list, cli.ListOptions{
			Format:    cli.OutputFormat(opts.output),
			NoHeaders: opts.noHeaders,
			Colour:    cli.IsTerminal(out),
			NamesOnly: opts.names,
		})
	}

	if err := render(commandContext(cmd)); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	return servers.NewWatcher(registry.Root(), 0).Run(ctx, func() {
		fmt.Fprintln(out)
		if err := render(ctx); err != nil {
			logging.Warn("List", "Failed to refresh server list: %v", err)
		}
	})
}

func collectServers(ctx context.Context, registry *servers.Registry, ctrl *session.Controller, opts *listOptions) ([]api.Server, error) {
	list, err := registry.List()
	if err != nil {
		return nil, err
	}

	switch {
	case opts.active:
		return ctrl.RetainActive(ctx, list)
	case opts.inactive:
		return ctrl.RetainInactive(ctx, list)
	case opts.dead:
		return ctrl.RetainDead(ctx, list)
	default:
		return list, ctrl.TagServers(ctx, list)
	}
}
