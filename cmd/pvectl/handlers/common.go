// Package handlers implements the execution side of every CLI command.
//
// Handlers load the configuration, build the executor gateway, and drive
// the entity facades. Construction goes through factory variables so tests
// can substitute each collaborator.
package handlers

import (
	"context"
	"os"

	"github.com/lps-ufrj-br/pvectl/internal/config"
	"github.com/lps-ufrj-br/pvectl/internal/executor"
	"github.com/lps-ufrj-br/pvectl/internal/lifecycle"
	"github.com/lps-ufrj-br/pvectl/internal/render"
)

// Options carries the flag values shared by every operation.
type Options struct {
	ConfigPath string
	Name       string
	DryRun     bool
	Verbose    bool
}

// Factory function variables - can be replaced in tests.
var (
	// loadConfigFile loads the datacenter configuration.
	loadConfigFile = config.LoadFile

	// newGateway builds the configured executor backend.
	newGateway = buildGateway
)

// buildGateway selects the executor backend named by the configuration.
func buildGateway(cfg *config.Config, verbose bool) (executor.Gateway, error) {
	switch cfg.Executor {
	case config.ExecutorSSH:
		return executor.NewSSHGateway(cfg.SSH, executor.InventoryFromConfig(cfg))
	default:
		return executor.NewAnsibleGateway(cfg.Ansible, verbose), nil
	}
}

// setup loads the configuration and builds the gateway and lifecycle
// context for one operation. Dry-run substitutes the display-only gateway,
// leaving control flow and settle waits untouched.
func setup(ctx context.Context, opts Options) (*config.Config, executor.Gateway, *lifecycle.Context, error) {
	cfg, err := loadConfigFile(opts.ConfigPath)
	if err != nil {
		return nil, nil, nil, err
	}

	var gw executor.Gateway
	if opts.DryRun {
		gw = executor.NewDryRun(render.New(os.Stdout))
	} else {
		gw, err = newGateway(cfg, opts.Verbose)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	lctx := lifecycle.NewContext(ctx, lifecycle.Options{
		DryRun:  opts.DryRun,
		Verbose: opts.Verbose,
	})
	return cfg, gw, lctx, nil
}
