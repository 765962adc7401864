package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Load(data)
}

// Load parses configuration from raw YAML bytes.
func Load(data []byte) (*Config, error) {
	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	if err := mapstructure.Decode(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Executor == "" {
		c.Executor = ExecutorAnsible
	}
	if c.SSH.User == "" {
		c.SSH.User = "root"
	}
	if c.SSH.Port == 0 {
		c.SSH.Port = 22
	}
	if c.Ansible.Inventory == "" {
		c.Ansible.Inventory = "/etc/ansible/hosts"
	}
	if c.Ansible.PlaybookDir == "" {
		c.Ansible.PlaybookDir = "playbooks"
	}
	if c.Scripts.ConfigureNode == "" {
		c.Scripts.ConfigureNode = DefaultConfigureNodeScript
	}
	if c.Scripts.ConfigureNetwork == "" {
		c.Scripts.ConfigureNetwork = DefaultConfigureNetworkScript
	}

	// Storage specs are keyed by name in YAML; carry the key into the spec.
	for name, s := range c.Storage {
		if s.Name == "" {
			s.Name = name
			c.Storage[name] = s
		}
	}
}
