// Package executor runs commands and procedures on remote hosts.
//
// The Gateway is the only path from the orchestration core to the fleet.
// Target group resolution and per-host aggregation are the gateway's
// responsibility; callers treat every call as atomic pass/fail.
package executor

import (
	"context"
	"fmt"

	"github.com/lps-ufrj-br/pvectl/internal/command"
)

// Gateway executes commands against a target selector.
type Gateway interface {
	// RunShell executes the rendered command on the target.
	RunShell(ctx context.Context, target Target, cmd command.Command) error

	// RunProcedure runs a named external procedure (a playbook or script)
	// on the target with string parameters.
	RunProcedure(ctx context.Context, name string, target Target, params map[string]string) error

	// Ping answers a liveness query for the target.
	Ping(ctx context.Context, target Target) error
}

// RemoteExecutionError reports a dispatched command that failed on the
// remote side. Output carries the diagnostic text captured from execution.
type RemoteExecutionError struct {
	Target string
	Label  string
	Output string
	Err    error
}

func (e *RemoteExecutionError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s failed on %s: %v: %s", e.Label, e.Target, e.Err, e.Output)
	}
	return fmt.Sprintf("%s failed on %s: %v", e.Label, e.Target, e.Err)
}

func (e *RemoteExecutionError) Unwrap() error {
	return e.Err
}
