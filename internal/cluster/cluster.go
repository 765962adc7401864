// Package cluster is the lifecycle facade for Proxmox VE clusters.
//
// A Cluster binds the generic step vocabulary to the attributes of one
// named cluster: its master host, its member node group, and the storage
// targets registered on it. Attributes are decoded once at construction
// and never re-fetched.
package cluster

import (
	"fmt"
	"path"
	"time"

	"github.com/lps-ufrj-br/pvectl/internal/command"
	"github.com/lps-ufrj-br/pvectl/internal/config"
	"github.com/lps-ufrj-br/pvectl/internal/executor"
	"github.com/lps-ufrj-br/pvectl/internal/lifecycle"
)

// Settle waits between dependent cluster provisioning steps.
const (
	rebootSettle        = 30 * time.Second // services coming back before cluster creation
	createClusterSettle = 10 * time.Second // quorum and cluster filesystem initialization
	addNodesSettle      = 5 * time.Second  // joins landing before node configuration
)

// Cluster is a per-cluster view over the orchestration primitives.
type Cluster struct {
	name      string
	spec      config.ClusterSpec
	storages  []config.StorageSpec
	scripts   config.ScriptsConfig
	masterKey func() (string, error)
	gw        executor.Gateway
}

// New builds the facade for the named cluster. A missing cluster entry is
// a setup-time fatal error, reported here rather than by a later step.
func New(cfg *config.Config, name string, gw executor.Gateway) (*Cluster, error) {
	spec, err := cfg.Cluster(name)
	if err != nil {
		return nil, err
	}
	return &Cluster{
		name:      name,
		spec:      spec,
		storages:  cfg.Storages(),
		scripts:   cfg.Scripts,
		masterKey: cfg.MasterKey,
		gw:        gw,
	}, nil
}

// allNodes targets every member host; the cluster name is the group id.
func (c *Cluster) allNodes() executor.Target {
	return executor.Group(c.name)
}

func (c *Cluster) master() executor.Target {
	return executor.Host(c.spec.Host)
}

// Ping checks liveness of the whole node group. No retries.
func (c *Cluster) Ping(ctx *lifecycle.Context) error {
	return c.gw.Ping(ctx, c.allNodes())
}

// Reset stops cluster services, wipes corosync and pmxcfs membership
// state, and restarts the base daemon on every member host.
func (c *Cluster) Reset(ctx *lifecycle.Context) error {
	cmd := command.New("reset nodes...").
		Append("systemctl stop pve-cluster corosync").
		Append("pmxcfs -l").
		Append("rm -rf /etc/corosync/*").
		Append("rm -rf /etc/pve/corosync.conf").
		Append("killall pmxcfs").
		Append("systemctl start pve-cluster").
		Append("rm -rf /etc/pve/nodes/*")
	return c.gw.RunShell(ctx, c.allNodes(), cmd)
}

// Reboot invokes the external reboot procedure on every member host.
func (c *Cluster) Reboot(ctx *lifecycle.Context) error {
	return c.gw.RunProcedure(ctx, "reboot.yaml", c.allNodes(), nil)
}

// CreateCluster creates a single-vote cluster on the master host only.
func (c *Cluster) CreateCluster(ctx *lifecycle.Context) error {
	cmd := command.New("create cluster...").
		Appendf("pvecm create %s --votes 1", c.name)
	return c.gw.RunShell(ctx, c.master(), cmd)
}

// CreateNodes joins every member host to the cluster. Each host attempts
// the join independently; the aggregate pass/fail is the only signal.
func (c *Cluster) CreateNodes(ctx *lifecycle.Context) error {
	key, err := c.masterKey()
	if err != nil {
		return err
	}
	params := map[string]string{
		"ip_address": fmt.Sprintf("'%s'", c.spec.IPAddress),
		"master_key": fmt.Sprintf("'%s'", key),
	}
	return c.gw.RunProcedure(ctx, "add_node.yaml", c.allNodes(), params)
}

// CreateStorage registers one NFS-backed storage target on the master.
func (c *Cluster) CreateStorage(ctx *lifecycle.Context, storage config.StorageSpec) error {
	ctx.Observer.Printf("add storage %s into the cluster %s...", storage.Name, c.name)
	cmd := command.New("add storages...").
		Appendf("pvesm add nfs %s --server %s --export %s --content iso,backup,images",
			storage.Name, storage.Server, storage.Path)
	return c.gw.RunShell(ctx, c.master(), cmd)
}

// CreateStorages registers every configured storage target, stopping at
// the first failure.
func (c *Cluster) CreateStorages(ctx *lifecycle.Context) error {
	for _, storage := range c.storages {
		if err := c.CreateStorage(ctx, storage); err != nil {
			return err
		}
	}
	return nil
}

// ConfigureNodes fetches and runs the node configuration script on every
// member host, then reboots the fleet, but only if configuration passed.
func (c *Cluster) ConfigureNodes(ctx *lifecycle.Context) error {
	scriptURL := c.scripts.ConfigureNode
	cmd := command.New("configure nodes...").
		Appendf("wget %s && python3 %s", scriptURL, path.Base(scriptURL))
	if err := c.gw.RunShell(ctx, c.allNodes(), cmd); err != nil {
		ctx.Observer.Printf("it is not possible to configure nodes...")
		return err
	}
	return c.Reboot(ctx)
}

// Create provisions the cluster end to end: reset, reboot, create the
// cluster on the master, join the nodes, configure them. Fail-fast with
// no rollback; settle waits let the fleet converge between steps.
func (c *Cluster) Create(ctx *lifecycle.Context) error {
	steps := []lifecycle.Step{
		{
			Name: fmt.Sprintf("reset all nodes into the cluster %s", c.name),
			Run:  c.Reset,
		},
		{
			Name:   fmt.Sprintf("reboot all nodes into the cluster %s", c.name),
			Run:    c.Reboot,
			Settle: rebootSettle,
		},
		{
			Name:   fmt.Sprintf("create the cluster with name %s", c.name),
			Run:    c.CreateCluster,
			Settle: createClusterSettle,
		},
		{
			Name:   fmt.Sprintf("add nodes into the cluster %s", c.name),
			Run:    c.CreateNodes,
			Settle: addNodesSettle,
		},
		{
			Name: fmt.Sprintf("configure all nodes into the cluster %s", c.name),
			Run:  c.ConfigureNodes,
		},
	}
	return lifecycle.Run(ctx, steps)
}

// Destroy tears the cluster down: reset, then reboot. The reset result is
// deliberately not checked before rebooting; teardown is fire-and-forget.
func (c *Cluster) Destroy(ctx *lifecycle.Context) error {
	steps := []lifecycle.Step{
		{
			Name: fmt.Sprintf("reset all nodes into the cluster %s", c.name),
			Run:  c.Reset,
			Mode: lifecycle.BestEffort,
		},
		{
			Name: fmt.Sprintf("reboot all nodes into the cluster %s", c.name),
			Run:  c.Reboot,
		},
	}
	return lifecycle.Run(ctx, steps)
}
