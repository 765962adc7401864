package commands

import (
	"github.com/spf13/cobra"

	"github.com/lps-ufrj-br/pvectl/cmd/pvectl/handlers"
)

// Cluster returns the cluster command group.
func Cluster(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Manage Proxmox VE clusters",
	}

	cmd.AddCommand(clusterCreate(flags))
	cmd.AddCommand(clusterDestroy(flags))
	cmd.AddCommand(clusterReboot(flags))
	cmd.AddCommand(clusterPing(flags))
	cmd.AddCommand(clusterStorage(flags))

	return cmd
}

func clusterCreate(flags *globalFlags) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Provision a cluster end to end",
		Long: `Create provisions the named cluster through a fixed, fail-fast sequence:

  1. Reset all nodes (wipe corosync and cluster filesystem state)
  2. Reboot all nodes, then wait for services to settle
  3. Create the cluster on the master host, then wait for quorum
  4. Join every node, then wait before configuring
  5. Configure all nodes (reboots the fleet on success)

Any step failing aborts the sequence; there is no rollback.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ClusterCreate(cmd.Context(), flags.options(name))
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "The name of the cluster (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func clusterDestroy(flags *globalFlags) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Tear a cluster down (reset, then reboot)",
		Long: `Destroy resets every node's cluster membership state and reboots the
fleet. Teardown is fire-and-forget: the reboot runs even when the reset
fails.

WARNING: This operation is irreversible. Cluster membership is lost.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ClusterDestroy(cmd.Context(), flags.options(name))
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "The name of the cluster (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func clusterReboot(flags *globalFlags) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "reboot",
		Short: "Reboot every node in a cluster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ClusterReboot(cmd.Context(), flags.options(name))
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "The name of the cluster (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func clusterPing(flags *globalFlags) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check liveness of every node in a cluster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ClusterPing(cmd.Context(), flags.options(name))
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "The name of the cluster (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func clusterStorage(flags *globalFlags) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Register every configured NFS storage target on the master",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ClusterStorage(cmd.Context(), flags.options(name))
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "The name of the cluster (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// options snapshots the persistent flags plus the entity name.
func (f *globalFlags) options(name string) handlers.Options {
	return handlers.Options{
		ConfigPath: f.configPath,
		Name:       name,
		DryRun:     f.dryRun,
		Verbose:    f.verbose,
	}
}
