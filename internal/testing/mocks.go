// Package testing provides shared mocks and helpers for lifecycle tests.
package testing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/lps-ufrj-br/pvectl/internal/command"
	"github.com/lps-ufrj-br/pvectl/internal/executor"
	"github.com/lps-ufrj-br/pvectl/internal/lifecycle"
)

// MockGateway is a mock implementation of executor.Gateway.
type MockGateway struct {
	mock.Mock
}

// RunShell executes a mocked shell call.
func (m *MockGateway) RunShell(ctx context.Context, target executor.Target, cmd command.Command) error {
	args := m.Called(ctx, target, cmd)
	return args.Error(0)
}

// RunProcedure executes a mocked procedure call.
func (m *MockGateway) RunProcedure(ctx context.Context, name string, target executor.Target, params map[string]string) error {
	args := m.Called(ctx, name, target, params)
	return args.Error(0)
}

// Ping executes a mocked liveness query.
func (m *MockGateway) Ping(ctx context.Context, target executor.Target) error {
	args := m.Called(ctx, target)
	return args.Error(0)
}

// RecordingObserver captures narration for assertions.
type RecordingObserver struct {
	mu     sync.Mutex
	Events []lifecycle.Event
	Lines  []string
}

// NewRecordingObserver creates an observer that records everything.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{}
}

// Printf implements lifecycle.Observer.
func (o *RecordingObserver) Printf(format string, v ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Lines = append(o.Lines, fmt.Sprintf(format, v...))
}

// Event implements lifecycle.Observer.
func (o *RecordingObserver) Event(event lifecycle.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Events = append(o.Events, event)
}

// EventsOfType returns all recorded events of the given type, in order.
func (o *RecordingObserver) EventsOfType(t lifecycle.EventType) []lifecycle.Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []lifecycle.Event
	for _, e := range o.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// NewRecordingContext builds a lifecycle context whose settle waits are
// recorded instead of slept.
func NewRecordingContext(observer *RecordingObserver) (*lifecycle.Context, *[]time.Duration) {
	sleeps := &[]time.Duration{}
	ctx := lifecycle.NewContext(context.Background(), lifecycle.Options{
		Observer: observer,
		Sleep: func(d time.Duration) {
			*sleeps = append(*sleeps, d)
		},
	})
	return ctx, sleeps
}
