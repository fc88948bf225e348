package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"mcserver/internal/config"
	"mcserver/internal/servers"
	"mcserver/internal/session"
)

var (
	// store is created on first use so that --config-dir is honoured.
	store *config.Store

	// newBackend is a variable to allow tests to replace zellij
	newBackend = func() session.Backend { return session.NewZellijBackend() }

	settleDelay = session.DefaultSettleDelay

	lookupEnv = os.LookupEnv
)

func defaultConfigDirHint() string {
	return config.GetStatic().ConfigDirectory
}

func getStore() *config.Store {
	if store == nil {
		if configDir != "" {
			store = config.NewStoreWithPath(configDir)
		} else {
			store = config.NewStore(config.GetStatic())
		}
	}
	return store
}

func getRegistry() (*servers.Registry, error) {
	dir, err := getStore().ExpandedServersDirectory()
	if err != nil {
		return nil, err
	}
	return servers.NewRegistry(dir), nil
}

func getController(registry *servers.Registry) *session.Controller {
	ctrl := session.NewController(newBackend(), registry)
	ctrl.SetSettleDelay(settleDelay)
	return ctrl
}

func getDeployment(registry *servers.Registry) (*servers.Deployment, error) {
	cfg, err := getStore().View()
	if err != nil {
		return nil, err
	}
	return servers.NewDeployment(registry, servers.LaunchOptions{
		Multiplexer: session.BaseCommand,
		JavaArgs:    cfg.DefaultJavaArgs,
		NoGUI:       cfg.NoGUI,
	}), nil
}

// resolveServer maps an optional server argument to a server name: the
// argument itself, "." for the server containing the working directory, or
// the configured default.
func resolveServer(args []string) (string, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	return getStore().ServerOrDefault(name)
}

// sessionTarget resolves the server argument and prepares a controller for it.
func sessionTarget(args []string) (string, *session.Controller, error) {
	server, err := resolveServer(args)
	if err != nil {
		return "", nil, err
	}
	registry, err := getRegistry()
	if err != nil {
		return "", nil, err
	}
	return server, getController(registry), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
