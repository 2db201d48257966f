// Package toolcheck reports whether the external tools the launcher drives
// are available and recent enough for the source tree.
package toolcheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/luntergroup/octopus-make/internal/layout"
	"github.com/luntergroup/octopus-make/internal/platform"
	"github.com/luntergroup/octopus-make/pkgs/buildsys/cmake"
)

// Tool is the availability of one external program.
type Tool struct {
	Name    string
	Path    string
	Found   bool
	Version string
}

// Report is the outcome of a check.
type Report struct {
	Tools []Tool

	// CMakeMinimum is the version required by CMakeLists.txt, if declared.
	CMakeMinimum string

	// CMakeTooOld is set when the cmake found is older than CMakeMinimum.
	CMakeTooOld bool
}

// OK reports whether every tool was found and cmake is recent enough.
func (r Report) OK() bool {
	for _, t := range r.Tools {
		if !t.Found {
			return false
		}
	}
	return !r.CMakeTooOld
}

// Print writes one line per tool.
func (r Report) Print(w io.Writer) {
	for _, t := range r.Tools {
		switch {
		case !t.Found:
			fmt.Fprintf(w, "%s: not found\n", t.Name)
		case t.Version != "":
			fmt.Fprintf(w, "%s: %s (%s)\n", t.Name, t.Path, t.Version)
		default:
			fmt.Fprintf(w, "%s: %s\n", t.Name, t.Path)
		}
	}
	if r.CMakeTooOld {
		fmt.Fprintf(w, "cmake is older than %s required by CMakeLists.txt\n", r.CMakeMinimum)
	}
}

// Checker looks up tools. The function fields exist so tests can avoid the
// real PATH.
type Checker struct {
	LookPath func(file string) (string, error)
	Output   func(ctx context.Context, name string, args ...string) ([]byte, error)
}

func New() *Checker {
	return &Checker{
		LookPath: exec.LookPath,
		Output: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// Check inspects the tools needed to configure and install tree on host.
// elevate adds the privilege elevation wrapper to the list.
func (c *Checker) Check(ctx context.Context, tree layout.Tree, host platform.Host, elevate bool) (Report, error) {
	var r Report

	names := []string{"cmake"}
	if host.SupportsInstall() {
		names = append(names, "make")
		if elevate {
			names = append(names, platform.ElevationWrapper)
		}
	}
	for _, name := range names {
		t := Tool{Name: name}
		if path, err := c.LookPath(name); err == nil {
			t.Path, t.Found = path, true
		}
		r.Tools = append(r.Tools, t)
	}

	cm := &r.Tools[0]
	if cm.Found {
		out, err := c.Output(ctx, cm.Path, "--version")
		if err != nil {
			log.Debugf("cmake --version: %v", err)
		} else if v, ok := cmake.ParseVersion(out); ok {
			cm.Version = v
		}
	}

	data, err := os.ReadFile(tree.Descriptor())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return r, nil
	case err != nil:
		return r, fmt.Errorf("failed to read %s: %w", tree.Descriptor(), err)
	}
	if required, ok := cmake.MinimumRequired(data); ok {
		r.CMakeMinimum = required
		if cm.Version != "" && semver.Compare(canonical(cm.Version), canonical(required)) < 0 {
			r.CMakeTooOld = true
		}
	}
	return r, nil
}

// canonical turns a cmake version into a semver string, dropping any fourth
// component cmake allows.
func canonical(v string) string {
	parts := strings.SplitN(v, ".", 4)
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return semver.Canonical("v" + strings.Join(parts, "."))
}
