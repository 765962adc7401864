// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// globalFlags are bound as persistent flags on the root command and shared
// by every subcommand.
type globalFlags struct {
	configPath string
	dryRun     bool
	verbose    bool
}

// Root returns the root command for the pvectl CLI.
func Root() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "pvectl",
		Short: "Provision Proxmox VE clusters and virtual machines",
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "datacenter.yaml", "Path to the datacenter configuration file")
	cmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "Display the commands that would run without executing them")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Emit extra diagnostic narration")

	cmd.AddCommand(Cluster(flags))
	cmd.AddCommand(VM(flags))
	cmd.AddCommand(Image(flags))
	cmd.AddCommand(Init(flags))
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
