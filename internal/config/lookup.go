package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// LookupError reports a named entity or key absent from the configuration.
// It is a setup-time fatal error: facades refuse to construct on it rather
// than failing a step later.
type LookupError struct {
	Kind string // "cluster", "vm", "image", "master key"
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no %s named %q in configuration", e.Kind, e.Name)
}

// Cluster returns the attribute snapshot for the named cluster.
func (c *Config) Cluster(name string) (ClusterSpec, error) {
	spec, ok := c.Clusters[name]
	if !ok {
		return ClusterSpec{}, &LookupError{Kind: "cluster", Name: name}
	}
	return spec, nil
}

// VM returns the attribute snapshot for the named virtual machine.
func (c *Config) VM(name string) (VMSpec, error) {
	spec, ok := c.VMs[name]
	if !ok {
		return VMSpec{}, &LookupError{Kind: "vm", Name: name}
	}
	return spec, nil
}

// ImagePath resolves an image key to its restorable image path.
func (c *Config) ImagePath(key string) (string, error) {
	path, ok := c.Images.Paths[key]
	if !ok {
		return "", &LookupError{Kind: "image", Name: key}
	}
	return path, nil
}

// Storages returns all configured storage targets in stable name order.
func (c *Config) Storages() []StorageSpec {
	storages := make([]StorageSpec, 0, len(c.Storage))
	for _, s := range c.Storage {
		storages = append(storages, s)
	}
	sort.Slice(storages, func(i, j int) bool { return storages[i].Name < storages[j].Name })
	return storages
}

// MasterKey returns the shared cluster join secret. The PVE_MASTER_KEY
// environment variable wins; otherwise the configured key file is read.
func (c *Config) MasterKey() (string, error) {
	if key := os.Getenv("PVE_MASTER_KEY"); key != "" {
		return key, nil
	}
	if c.MasterKeyFile == "" {
		return "", &LookupError{Kind: "master key", Name: "PVE_MASTER_KEY"}
	}
	// #nosec G304
	data, err := os.ReadFile(c.MasterKeyFile)
	if err != nil {
		return "", fmt.Errorf("failed to read master key file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
