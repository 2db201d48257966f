// Package gnumake drives the make-based build and install step that follows
// a cmake configuration using the Unix Makefiles generator.
package gnumake

import (
	"context"

	"github.com/luntergroup/octopus-make/internal/runner"
	"github.com/luntergroup/octopus-make/pkgs/buildsys"
)

// Make runs make targets in a configured build directory.
type Make struct {
	r       runner.Runner
	dir     string
	wrapper string
	targets []string
}

var _ buildsys.Installer = (*Make)(nil)

// New returns a Make that installs from dir.
func New(r runner.Runner, dir string) *Make {
	return &Make{r: r, dir: dir, targets: []string{"install"}}
}

// Elevate runs make through wrapper (e.g. "sudo"). An empty wrapper runs make
// directly.
func (m *Make) Elevate(wrapper string) *Make {
	m.wrapper = wrapper
	return m
}

// Targets replaces the default "install" target.
func (m *Make) Targets(targets ...string) *Make {
	m.targets = targets
	return m
}

// Command returns the invocation Install would run.
func (m *Make) Command() runner.Command {
	if m.wrapper == "" {
		return runner.Command{Dir: m.dir, Name: "make", Args: append([]string(nil), m.targets...)}
	}
	return runner.Command{Dir: m.dir, Name: m.wrapper, Args: append([]string{"make"}, m.targets...)}
}

// Install runs the install targets.
func (m *Make) Install(ctx context.Context) (int, error) {
	return m.r.Run(ctx, m.Command())
}
