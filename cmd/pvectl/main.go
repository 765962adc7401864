// Package main is the entry point for the pvectl CLI.
//
// pvectl provisions and tears down Proxmox VE infrastructure: it drives
// cluster bring-up (reset, reboot, create, join, configure) and VM
// lifecycles (restore, network, options, snapshot) against a
// configuration-described fleet of hosts.
//
// Commands: cluster, vm, image, init, version, completion.
//
// For detailed usage information, run:
//
//	pvectl --help
package main

import (
	"fmt"
	"os"

	"github.com/lps-ufrj-br/pvectl/cmd/pvectl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
