package executor

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lps-ufrj-br/pvectl/internal/command"
	"github.com/lps-ufrj-br/pvectl/internal/config"
)

// AnsibleGateway executes through the local ansible and ansible-playbook
// binaries. Groups map directly onto inventory groups, so resolution and
// aggregation are ansible's problem.
type AnsibleGateway struct {
	inventory   string
	playbookDir string
	verbose     bool

	// runCommand is replaceable in tests.
	runCommand func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewAnsibleGateway creates a gateway backed by the ansible CLI.
func NewAnsibleGateway(cfg config.AnsibleConfig, verbose bool) *AnsibleGateway {
	return &AnsibleGateway{
		inventory:   cfg.Inventory,
		playbookDir: cfg.PlaybookDir,
		verbose:     verbose,
		runCommand: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

// RunShell implements Gateway.
func (g *AnsibleGateway) RunShell(ctx context.Context, target Target, cmd command.Command) error {
	if cmd.Empty() {
		return nil
	}
	args := []string{target.Name(), "-i", g.inventory, "-m", "shell", "-a", cmd.Render()}
	if g.verbose {
		args = append(args, "-v")
	}
	output, err := g.runCommand(ctx, "ansible", args...)
	if err != nil {
		return &RemoteExecutionError{
			Target: target.String(),
			Label:  cmd.Label,
			Output: strings.TrimSpace(string(output)),
			Err:    err,
		}
	}
	return nil
}

// RunProcedure implements Gateway.
func (g *AnsibleGateway) RunProcedure(ctx context.Context, name string, target Target, params map[string]string) error {
	args := []string{
		filepath.Join(g.playbookDir, name),
		"-i", g.inventory,
		"-l", target.Name(),
	}
	for _, k := range sortedKeys(params) {
		args = append(args, "-e", fmt.Sprintf("%s=%s", k, params[k]))
	}
	if g.verbose {
		args = append(args, "-v")
	}
	output, err := g.runCommand(ctx, "ansible-playbook", args...)
	if err != nil {
		return &RemoteExecutionError{
			Target: target.String(),
			Label:  name,
			Output: strings.TrimSpace(string(output)),
			Err:    err,
		}
	}
	return nil
}

// Ping implements Gateway.
func (g *AnsibleGateway) Ping(ctx context.Context, target Target) error {
	output, err := g.runCommand(ctx, "ansible", target.Name(), "-i", g.inventory, "-m", "ping")
	if err != nil {
		return &RemoteExecutionError{
			Target: target.String(),
			Label:  "ping",
			Output: strings.TrimSpace(string(output)),
			Err:    err,
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
