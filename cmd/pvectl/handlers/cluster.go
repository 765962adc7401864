package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/lps-ufrj-br/pvectl/internal/cluster"
)

// ClusterCreate provisions the named cluster end to end.
func ClusterCreate(ctx context.Context, opts Options) error {
	cfg, gw, lctx, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	c, err := cluster.New(cfg, opts.Name, gw)
	if err != nil {
		return err
	}
	if err := c.Create(lctx); err != nil {
		return fmt.Errorf("cluster create failed: %w", err)
	}
	log.Printf("cluster %s created successfully", opts.Name)
	return nil
}

// ClusterDestroy tears the named cluster down.
func ClusterDestroy(ctx context.Context, opts Options) error {
	cfg, gw, lctx, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	c, err := cluster.New(cfg, opts.Name, gw)
	if err != nil {
		return err
	}
	if err := c.Destroy(lctx); err != nil {
		return fmt.Errorf("cluster destroy failed: %w", err)
	}
	log.Printf("cluster %s destroyed", opts.Name)
	return nil
}

// ClusterReboot reboots every node of the named cluster.
func ClusterReboot(ctx context.Context, opts Options) error {
	cfg, gw, lctx, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	c, err := cluster.New(cfg, opts.Name, gw)
	if err != nil {
		return err
	}
	return c.Reboot(lctx)
}

// ClusterPing checks liveness of every node of the named cluster.
func ClusterPing(ctx context.Context, opts Options) error {
	cfg, gw, lctx, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	c, err := cluster.New(cfg, opts.Name, gw)
	if err != nil {
		return err
	}
	if err := c.Ping(lctx); err != nil {
		return err
	}
	log.Printf("cluster %s is alive", opts.Name)
	return nil
}

// ClusterStorage registers every configured storage target on the master.
func ClusterStorage(ctx context.Context, opts Options) error {
	cfg, gw, lctx, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	c, err := cluster.New(cfg, opts.Name, gw)
	if err != nil {
		return err
	}
	return c.CreateStorages(lctx)
}
