package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	ClusterName string
	MasterHost  string
	Nodes       string
	Executor    string
	VMName      string
	VMHost      string
}

// RunWizard walks the operator through a minimal datacenter configuration.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		Executor: ExecutorAnsible,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster name").
				Description("Name of the Proxmox cluster and its inventory group").
				Placeholder("cluster01").
				Value(&result.ClusterName).
				Validate(validateName),

			huh.NewInput().
				Title("Master node").
				Description("Hostname of the node that creates the cluster").
				Placeholder("node01").
				Value(&result.MasterHost).
				Validate(validateName),

			huh.NewInput().
				Title("Member nodes").
				Description("Comma-separated hostnames that join the cluster (excluding the master)").
				Placeholder("node02, node03").
				Value(&result.Nodes),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Executor backend").
				Description("How pvectl reaches the nodes").
				Options(
					huh.NewOption("Ansible (shell modules and playbooks)", ExecutorAnsible),
					huh.NewOption("SSH (direct connections)", ExecutorSSH),
				).
				Value(&result.Executor),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("First VM name (optional)").
				Description("Leave empty to skip the vms section").
				Placeholder("vm-gateway").
				Value(&result.VMName),

			huh.NewInput().
				Title("First VM host").
				Description("Node that hosts the VM (ignored when no VM name is set)").
				Placeholder("node01").
				Value(&result.VMHost),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result to a Config skeleton.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		Executor: r.Executor,
		Clusters: map[string]ClusterSpec{
			r.ClusterName: {
				Host:  r.MasterHost,
				Nodes: splitNodes(r.Nodes),
			},
		},
	}
	if r.VMName != "" {
		cfg.VMs = map[string]VMSpec{
			r.VMName: {
				Host:     r.VMHost,
				VMID:     100,
				Image:    "debian12",
				Sockets:  1,
				Cores:    2,
				MemoryMB: 2048,
			},
		}
		cfg.Images = ImagesConfig{
			Paths: map[string]string{
				"debian12": "/var/lib/vz/dump/vzdump-qemu-debian12.vma.zst",
			},
		}
	}
	return cfg
}

// WriteYAML writes the config skeleton to a YAML file.
func WriteYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func splitNodes(s string) []string {
	var nodes []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			nodes = append(nodes, part)
		}
	}
	return nodes
}

// validateName rejects empty or whitespace-containing identifiers.
func validateName(s string) error {
	if s == "" {
		return fmt.Errorf("a value is required")
	}
	if strings.ContainsAny(s, " \t") {
		return fmt.Errorf("must not contain whitespace")
	}
	return nil
}
