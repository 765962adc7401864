package executor

import (
	"context"

	"github.com/lps-ufrj-br/pvectl/internal/command"
)

// Renderer displays what an operation would do without doing it.
// Implemented by internal/render.
type Renderer interface {
	Shell(target Target, cmd command.Command)
	Procedure(name string, target Target, params map[string]string)
	Ping(target Target)
}

// DryRun is a Gateway that renders every call and reports success without
// touching any execute path. Control flow and settle placement in the
// orchestrator are preserved exactly as in a real run.
type DryRun struct {
	renderer Renderer
}

// NewDryRun creates a display-only gateway.
func NewDryRun(renderer Renderer) *DryRun {
	return &DryRun{renderer: renderer}
}

// RunShell implements Gateway.
func (d *DryRun) RunShell(_ context.Context, target Target, cmd command.Command) error {
	d.renderer.Shell(target, cmd)
	return nil
}

// RunProcedure implements Gateway.
func (d *DryRun) RunProcedure(_ context.Context, name string, target Target, params map[string]string) error {
	d.renderer.Procedure(name, target, params)
	return nil
}

// Ping implements Gateway.
func (d *DryRun) Ping(_ context.Context, target Target) error {
	d.renderer.Ping(target)
	return nil
}
