package lifecycle

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Observer receives the operator-facing narration of a lifecycle sequence.
type Observer interface {
	// Printf emits free-form narration.
	Printf(format string, v ...interface{})

	// Event emits a structured sequence event.
	Event(event Event)
}

// Event represents a structured lifecycle event.
type Event struct {
	Type      EventType
	Step      string // step narration text
	Index     int    // 1-based position in the sequence, 0 if not step-scoped
	Message   string
	Timestamp time.Time
}

// EventType classifies lifecycle events.
type EventType string

const (
	// EventStepStarted indicates a step is about to run.
	EventStepStarted EventType = "step.started"
	// EventStepCompleted indicates a blocking step succeeded.
	EventStepCompleted EventType = "step.completed"
	// EventStepFailed indicates a blocking step failed, aborting the sequence.
	EventStepFailed EventType = "step.failed"
	// EventStepBestEffort indicates a best-effort step failed without gating.
	EventStepBestEffort EventType = "step.best-effort-failed"
	// EventSettleWait indicates an unconditional settle pause.
	EventSettleWait EventType = "settle.waiting"
)

// ConsoleObserver narrates to the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	log.Print(formatEvent(event))
}

func formatEvent(event Event) string {
	var parts []string

	switch event.Type {
	case EventStepStarted:
		parts = append(parts, fmt.Sprintf("[step %d] %s...", event.Index, event.Step))
	case EventStepFailed:
		parts = append(parts, fmt.Sprintf("[step %d] %s", event.Index, event.Message))
	case EventStepBestEffort:
		parts = append(parts, fmt.Sprintf("[step %d] %s (continuing)", event.Index, event.Message))
	case EventSettleWait:
		parts = append(parts, event.Message)
	default:
		if event.Index > 0 {
			parts = append(parts, fmt.Sprintf("[step %d]", event.Index))
		}
		if event.Message != "" {
			parts = append(parts, event.Message)
		}
	}

	return strings.Join(parts, " ")
}
