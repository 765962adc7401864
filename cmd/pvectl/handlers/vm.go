package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/lps-ufrj-br/pvectl/internal/vm"
)

// VMCreate restores and configures the named virtual machine from its
// backup image, closing with a snapshot under snapname.
func VMCreate(ctx context.Context, opts Options, snapname string) error {
	cfg, gw, lctx, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	v, err := vm.New(cfg, opts.Name, gw)
	if err != nil {
		return err
	}
	if err := v.Create(lctx, snapname); err != nil {
		return fmt.Errorf("vm create failed: %w", err)
	}
	log.Printf("vm %s created successfully", opts.Name)
	return nil
}

// VMDestroy stops and purges the named virtual machine.
func VMDestroy(ctx context.Context, opts Options) error {
	cfg, gw, lctx, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	v, err := vm.New(cfg, opts.Name, gw)
	if err != nil {
		return err
	}
	if err := v.Destroy(lctx); err != nil {
		return fmt.Errorf("vm destroy failed: %w", err)
	}
	log.Printf("vm %s destroyed", opts.Name)
	return nil
}

// VMPing checks liveness of the named virtual machine.
func VMPing(ctx context.Context, opts Options) error {
	cfg, gw, lctx, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	v, err := vm.New(cfg, opts.Name, gw)
	if err != nil {
		return err
	}
	if err := v.Ping(lctx); err != nil {
		return err
	}
	log.Printf("vm %s is alive", opts.Name)
	return nil
}

// VMRun executes an ad-hoc shell command on the named virtual machine.
func VMRun(ctx context.Context, opts Options, shellCommand string) error {
	cfg, gw, lctx, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	v, err := vm.New(cfg, opts.Name, gw)
	if err != nil {
		return err
	}
	return v.Run(lctx, shellCommand)
}
