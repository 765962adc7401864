// Package lifecycle sequences high-level operations against a fleet.
//
// A sequence is a list of steps executed strictly one after another. Every
// step may carry a settle wait: an unconditional fixed pause applied after
// the step runs and BEFORE its result gates the sequence. Blocking steps
// abort the sequence on failure; best-effort steps only narrate theirs.
package lifecycle

import (
	"context"
	"time"
)

// Context carries the dependencies shared by every step of a sequence.
type Context struct {
	context.Context

	Observer Observer
	DryRun   bool
	Verbose  bool

	// Sleep performs settle waits. Replaceable in tests so settle
	// placement can be asserted without real delays.
	Sleep func(time.Duration)
}

// Options configures a lifecycle context.
type Options struct {
	Observer Observer
	DryRun   bool
	Verbose  bool
	Sleep    func(time.Duration)
}

// NewContext creates a lifecycle context with console narration and real
// sleeps unless overridden.
func NewContext(ctx context.Context, opts Options) *Context {
	if opts.Observer == nil {
		opts.Observer = NewConsoleObserver()
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	return &Context{
		Context:  ctx,
		Observer: opts.Observer,
		DryRun:   opts.DryRun,
		Verbose:  opts.Verbose,
		Sleep:    opts.Sleep,
	}
}
