// Package launcher validates an octopus source tree, configures it with cmake
// from its build directory and, when configuration succeeds on a supported
// host, installs it with make.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/luntergroup/octopus-make/internal/layout"
	"github.com/luntergroup/octopus-make/internal/platform"
	"github.com/luntergroup/octopus-make/internal/runner"
	"github.com/luntergroup/octopus-make/pkgs/buildsys/cmake"
	"github.com/luntergroup/octopus-make/pkgs/buildsys/gnumake"
)

const (
	msgMakingBin   = "No bin directory found, making one"
	msgUnsupported = "make install is not implemented for this platform"
)

// Options are the user-selected invocation options.
type Options struct {
	// Root installs system-wide and runs the install step through sudo.
	Root bool

	// Compiler, when set, pins CMAKE_CXX_COMPILER.
	Compiler string
}

// Stage is where a run stopped.
type Stage int

const (
	StageInvalidTree Stage = iota + 1
	StageConfigureFailed
	StageUnsupportedHost
	StageInstalled
)

func (s Stage) String() string {
	switch s {
	case StageInvalidTree:
		return "invalid-tree"
	case StageConfigureFailed:
		return "configure-failed"
	case StageUnsupportedHost:
		return "unsupported-host"
	case StageInstalled:
		return "installed"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Result records what a run did. InstallStatus is informational only; it
// never changes the outcome of a run.
type Result struct {
	Stage           Stage
	BinCreated      bool
	ConfigureStatus int
	Installed       bool
	InstallStatus   int
}

// Launcher runs the configure and install steps for one source tree.
type Launcher struct {
	Runner runner.Runner
	Host   platform.Host
	Stdout io.Writer
}

func New(r runner.Runner, host platform.Host, stdout io.Writer) *Launcher {
	return &Launcher{Runner: r, Host: host, Stdout: stdout}
}

// ConfigureArgs returns the cmake arguments for a project rooted at root.
func ConfigureArgs(root string, opts Options) []string {
	return newConfigurer(nil, layout.Tree{Root: root}, opts).Args()
}

func newConfigurer(r runner.Runner, tree layout.Tree, opts Options) *cmake.CMake {
	c := cmake.New(r, tree.BuildDir())
	if opts.Root {
		c.DefineBool(cmake.InstallRoot, true).Arg(tree.Root)
	}
	if opts.Compiler != "" {
		c.Define(cmake.CXXCompiler, opts.Compiler)
	}
	return c
}

// Run drives a single launch. A corrupted tree or a failed configuration is
// not an error: it is reported through Result. The returned error is
// reserved for filesystem failures other than missing files.
func (l *Launcher) Run(ctx context.Context, root string, opts Options) (Result, error) {
	var res Result
	tree := layout.Tree{Root: root}
	log.Debugf("project root: %s", root)

	if err := tree.Validate(); err != nil {
		if errors.Is(err, layout.ErrMissingDescriptor) || errors.Is(err, layout.ErrMissingBuildDir) {
			l.println(err.Error())
			res.Stage = StageInvalidTree
			return res, nil
		}
		return res, fmt.Errorf("failed to inspect %s: %w", root, err)
	}

	created, err := tree.EnsureBinDir()
	if err != nil {
		return res, err
	}
	if created {
		l.println(msgMakingBin)
		res.BinCreated = true
	}

	cfg := newConfigurer(l.Runner, tree, opts)
	log.Debugf("configure: %s", cfg.Command())
	status, err := cfg.Configure(ctx)
	res.ConfigureStatus = status
	if err != nil {
		log.Warnf("configuration step did not run: %v", err)
		res.Stage = StageConfigureFailed
		return res, nil
	}
	if status != 0 {
		log.Debugf("configure exited with status %d, skipping install", status)
		res.Stage = StageConfigureFailed
		return res, nil
	}

	if !l.Host.SupportsInstall() {
		l.println(msgUnsupported)
		res.Stage = StageUnsupportedHost
		return res, nil
	}

	inst := gnumake.New(l.Runner, tree.BuildDir())
	if opts.Root {
		if platform.IsElevated() {
			log.Debugf("already running as root, %s will not prompt", platform.ElevationWrapper)
		}
		inst.Elevate(platform.ElevationWrapper)
	}
	log.Debugf("install: %s", inst.Command())
	status, err = inst.Install(ctx)
	res.Installed = true
	res.InstallStatus = status
	if err != nil {
		log.Debugf("install step did not run: %v", err)
	} else {
		log.Debugf("install exited with status %d", status)
	}
	res.Stage = StageInstalled
	return res, nil
}

func (l *Launcher) println(msg string) {
	fmt.Fprintln(l.Stdout, msg)
}
