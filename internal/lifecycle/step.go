package lifecycle

import (
	"fmt"
	"time"
)

// StepMode distinguishes steps that gate the sequence from steps whose
// outcome is deliberately ignored.
type StepMode int

const (
	// Blocking steps abort the sequence on failure.
	Blocking StepMode = iota
	// BestEffort steps narrate their failure and never gate.
	BestEffort
)

// Step is one unit of a lifecycle sequence.
type Step struct {
	// Name is the narration text, e.g. "resetting all nodes into the cluster c1".
	Name string

	// Run performs the step.
	Run func(ctx *Context) error

	// Mode selects blocking or best-effort gating. Zero value is Blocking.
	Mode StepMode

	// Settle is an unconditional pause applied after Run returns and
	// before the result is checked. The wait elapses even when Run failed.
	Settle time.Duration
}

// StepError reports the step at which a sequence aborted.
type StepError struct {
	Index int // 1-based
	Name  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %v", e.Index, e.Name, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Run executes the steps strictly in order, fail-fast on blocking steps.
// There is no rollback and no retry: each step is dispatched exactly once.
func Run(ctx *Context, steps []Step) error {
	for i, step := range steps {
		index := i + 1
		ctx.Observer.Event(Event{
			Type:  EventStepStarted,
			Step:  step.Name,
			Index: index,
		})

		err := step.Run(ctx)

		if step.Settle > 0 {
			ctx.Observer.Event(Event{
				Type:    EventSettleWait,
				Step:    step.Name,
				Index:   index,
				Message: fmt.Sprintf("waiting %v to settle", step.Settle),
			})
			ctx.Sleep(step.Settle)
		}

		if err != nil {
			if step.Mode == BestEffort {
				ctx.Observer.Event(Event{
					Type:    EventStepBestEffort,
					Step:    step.Name,
					Index:   index,
					Message: fmt.Sprintf("it is not possible to %s: %v", step.Name, err),
				})
				continue
			}
			ctx.Observer.Event(Event{
				Type:    EventStepFailed,
				Step:    step.Name,
				Index:   index,
				Message: fmt.Sprintf("it is not possible to %s: %v", step.Name, err),
			})
			return &StepError{Index: index, Name: step.Name, Err: err}
		}

		ctx.Observer.Event(Event{
			Type:  EventStepCompleted,
			Step:  step.Name,
			Index: index,
		})
	}
	return nil
}
