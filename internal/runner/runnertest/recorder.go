// Package runnertest provides a recording runner.Runner for tests.
package runnertest

import (
	"context"
	"sync"

	"github.com/luntergroup/octopus-make/internal/runner"
)

// Recorder records every command it is asked to run and answers with a
// status chosen per tool name.
type Recorder struct {
	mu       sync.Mutex
	Commands []runner.Command

	// Status maps a command name to the exit status to report. Names that
	// are absent report 0.
	Status map[string]int

	// Err maps a command name to a start error, as for a missing tool.
	Err map[string]error
}

func (r *Recorder) Run(_ context.Context, c runner.Command) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Commands = append(r.Commands, c)
	if err := r.Err[c.Name]; err != nil {
		return -1, err
	}
	return r.Status[c.Name], nil
}

// Names returns the tool names run so far, in order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		names[i] = c.Name
	}
	return names
}
