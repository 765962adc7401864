package config

import "fmt"

// Validate checks the configuration for structural problems that would
// otherwise surface mid-operation.
func (c *Config) Validate() error {
	if c.Executor != ExecutorAnsible && c.Executor != ExecutorSSH {
		return fmt.Errorf("executor must be %q or %q, got %q", ExecutorAnsible, ExecutorSSH, c.Executor)
	}

	for name, cluster := range c.Clusters {
		if cluster.Host == "" {
			return fmt.Errorf("cluster %q: host is required", name)
		}
		if c.Executor == ExecutorSSH && len(cluster.Nodes) == 0 {
			return fmt.Errorf("cluster %q: nodes are required with the ssh executor", name)
		}
	}

	for name, vm := range c.VMs {
		if vm.Host == "" {
			return fmt.Errorf("vm %q: host is required", name)
		}
		if vm.VMID <= 0 {
			return fmt.Errorf("vm %q: vmid must be positive", name)
		}
		if vm.Image == "" {
			return fmt.Errorf("vm %q: image is required", name)
		}
	}

	for name, storage := range c.Storage {
		if storage.Server == "" || storage.Path == "" {
			return fmt.Errorf("storage %q: server and path are required", name)
		}
	}

	return nil
}
