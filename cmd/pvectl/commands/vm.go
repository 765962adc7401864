package commands

import (
	"github.com/spf13/cobra"

	"github.com/lps-ufrj-br/pvectl/cmd/pvectl/handlers"
)

// VM returns the vm command group.
func VM(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vm",
		Short: "Manage virtual machines",
	}

	cmd.AddCommand(vmCreate(flags))
	cmd.AddCommand(vmDestroy(flags))
	cmd.AddCommand(vmPing(flags))
	cmd.AddCommand(vmRun(flags))

	return cmd
}

func vmCreate(flags *globalFlags) *cobra.Command {
	var name string
	var snapname string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Restore, configure and snapshot a virtual machine",
		Long: `Create provisions the named VM: the image is restored onto the host's
storage and the machine started, its network is brought up from the init
host, hardware options are applied, and finally a snapshot and a reboot
are attempted best-effort.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.VMCreate(cmd.Context(), flags.options(name), snapname)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "The name of the vm (required)")
	cmd.Flags().StringVar(&snapname, "snapname", "base", "Name of the post-provisioning snapshot")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func vmDestroy(flags *globalFlags) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Stop and destroy a virtual machine, including its disks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.VMDestroy(cmd.Context(), flags.options(name))
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "The name of the vm (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func vmPing(flags *globalFlags) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check liveness of a virtual machine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.VMPing(cmd.Context(), flags.options(name))
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "The name of the vm (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func vmRun(flags *globalFlags) *cobra.Command {
	var name string
	var shellCommand string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an ad-hoc shell instruction on a virtual machine",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.VMRun(cmd.Context(), flags.options(name), shellCommand)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "The name of the vm (required)")
	cmd.Flags().StringVarP(&shellCommand, "command", "c", "", "The shell instruction to run (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("command")

	return cmd
}
