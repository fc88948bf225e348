package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mcserver/internal/config"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of mcserver",
		Long:  `Print the version of mcserver and where to report problems.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mcserver version %s\n", rootCmd.Version)
			if contact := config.GetStatic().Contact; contact != "" && contact != "none" {
				fmt.Fprintf(cmd.OutOrStdout(), "contact: %s\n", contact)
			}
		},
	}
}
