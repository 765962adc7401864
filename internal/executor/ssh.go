package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/lps-ufrj-br/pvectl/internal/command"
	"github.com/lps-ufrj-br/pvectl/internal/config"
	"github.com/lps-ufrj-br/pvectl/internal/retry"
)

// SSHGateway executes directly over SSH, one host at a time. Groups are
// resolved through a static inventory (cluster name to node list); every
// member must succeed for a group call to pass.
type SSHGateway struct {
	user       string
	port       int
	privateKey []byte
	inventory  map[string][]string

	// procedureDir holds local scripts run for RunProcedure, streamed to
	// the remote shell over stdin.
	procedureDir string

	dialTimeout time.Duration
}

// NewSSHGateway creates a gateway that dials each target host directly.
// The inventory maps group names to member hosts.
func NewSSHGateway(cfg config.SSHConfig, inventory map[string][]string) (*SSHGateway, error) {
	key, err := os.ReadFile(cfg.KeyFile) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read ssh key: %w", err)
	}
	return &SSHGateway{
		user:         cfg.User,
		port:         cfg.Port,
		privateKey:   key,
		inventory:    inventory,
		procedureDir: "procedures",
		dialTimeout:  10 * time.Second,
	}, nil
}

// InventoryFromConfig builds the group inventory from the cluster specs.
func InventoryFromConfig(cfg *config.Config) map[string][]string {
	inventory := make(map[string][]string, len(cfg.Clusters))
	for name, cluster := range cfg.Clusters {
		inventory[name] = cluster.Nodes
	}
	return inventory
}

// RunShell implements Gateway.
func (g *SSHGateway) RunShell(ctx context.Context, target Target, cmd command.Command) error {
	if cmd.Empty() {
		return nil
	}
	return g.onEachHost(ctx, target, cmd.Label, func(client *ssh.Client) ([]byte, error) {
		session, err := client.NewSession()
		if err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		defer session.Close()
		return session.CombinedOutput(cmd.Render())
	})
}

// RunProcedure implements Gateway. The named script is read locally and
// streamed to a remote shell, with parameters exported as environment
// variables.
func (g *SSHGateway) RunProcedure(ctx context.Context, name string, target Target, params map[string]string) error {
	script, err := os.ReadFile(filepath.Join(g.procedureDir, name)) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to read procedure %s: %w", name, err)
	}

	var env strings.Builder
	for _, k := range sortedKeys(params) {
		fmt.Fprintf(&env, "export %s=%s\n", k, params[k])
	}

	return g.onEachHost(ctx, target, name, func(client *ssh.Client) ([]byte, error) {
		session, err := client.NewSession()
		if err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		defer session.Close()
		session.Stdin = strings.NewReader(env.String() + string(script))
		return session.CombinedOutput("bash -s")
	})
}

// Ping implements Gateway.
func (g *SSHGateway) Ping(ctx context.Context, target Target) error {
	return g.onEachHost(ctx, target, "ping", func(client *ssh.Client) ([]byte, error) {
		session, err := client.NewSession()
		if err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		defer session.Close()
		return session.CombinedOutput("true")
	})
}

// Resolve expands a target into its member hosts.
func (g *SSHGateway) Resolve(target Target) ([]string, error) {
	if !target.IsGroup() {
		return []string{target.Name()}, nil
	}
	hosts, ok := g.inventory[target.Name()]
	if !ok {
		return nil, fmt.Errorf("unknown host group %q", target.Name())
	}
	return hosts, nil
}

func (g *SSHGateway) onEachHost(ctx context.Context, target Target, label string, run func(*ssh.Client) ([]byte, error)) error {
	hosts, err := g.Resolve(target)
	if err != nil {
		return err
	}
	for _, host := range hosts {
		client, err := g.dial(ctx, host)
		if err != nil {
			return &RemoteExecutionError{Target: host, Label: label, Err: err}
		}
		output, err := run(client)
		client.Close()
		if err != nil {
			return &RemoteExecutionError{
				Target: host,
				Label:  label,
				Output: strings.TrimSpace(string(output)),
				Err:    err,
			}
		}
	}
	return nil
}

func (g *SSHGateway) dial(ctx context.Context, host string) (*ssh.Client, error) {
	signer, err := ssh.ParsePrivateKey(g.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	clientConfig := &ssh.ClientConfig{
		User:            g.user,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // #nosec G106 -- fleet hosts are reimaged constantly
		Timeout:         g.dialTimeout,
	}

	addr := fmt.Sprintf("%s:%d", host, g.port)
	var client *ssh.Client
	err = retry.Do(ctx, func() error {
		var dialErr error
		client, dialErr = ssh.Dial("tcp", addr, clientConfig)
		return dialErr
	}, retry.WithMaxAttempts(5), retry.WithInitialDelay(2*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
	}
	return client, nil
}
