package commands

import (
	"github.com/spf13/cobra"

	"github.com/lps-ufrj-br/pvectl/cmd/pvectl/handlers"
)

// Init returns the init command.
//
// Init scaffolds a datacenter configuration file through an interactive
// wizard: cluster name, master host, member nodes, and executor backend.
func Init(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Interactively scaffold a datacenter configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), flags.configPath)
		},
	}
}
