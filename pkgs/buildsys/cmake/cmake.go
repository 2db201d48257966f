// Package cmake drives the cmake configuration step.
package cmake

import (
	"bufio"
	"bytes"
	"context"
	"regexp"
	"slices"
	"strings"

	"github.com/luntergroup/octopus-make/internal/runner"
	"github.com/luntergroup/octopus-make/pkgs/buildsys"
)

// Well-known cache entries.
const (
	CXXCompiler = "CMAKE_CXX_COMPILER"
	InstallRoot = "INSTALL_ROOT"
)

// CMake assembles a cmake command line and runs it from a build directory.
// Options are emitted in the order they were added, followed by the source
// directory.
type CMake struct {
	r         runner.Runner
	buildDir  string
	sourceDir string
	args      []string
}

var _ buildsys.Configurer = (*CMake)(nil)

// New returns a CMake that runs in buildDir with ".." as its source.
func New(r runner.Runner, buildDir string) *CMake {
	return &CMake{
		r:         r,
		buildDir:  buildDir,
		sourceDir: "..",
	}
}

// Source overrides the source directory argument.
func (c *CMake) Source(dir string) *CMake {
	c.sourceDir = dir
	return c
}

// Define adds an untyped -D<key>=<value> definition.
func (c *CMake) Define(key, value string) *CMake {
	c.args = append(c.args, "-D"+key+"="+value)
	return c
}

// DefineTyped adds a -D<key>:<type>=<value> definition.
func (c *CMake) DefineTyped(key, typeName, value string) *CMake {
	c.args = append(c.args, "-D"+key+":"+typeName+"="+value)
	return c
}

// DefineBool adds a -D<key>=ON/OFF definition.
func (c *CMake) DefineBool(key string, value bool) *CMake {
	if value {
		return c.Define(key, "ON")
	}
	return c.Define(key, "OFF")
}

// Arg appends raw arguments at the current position.
func (c *CMake) Arg(values ...string) *CMake {
	c.args = append(c.args, values...)
	return c
}

// Args returns the full argument list, source directory last.
func (c *CMake) Args() []string {
	return append(slices.Clone(c.args), c.sourceDir)
}

// Command returns the invocation Configure would run.
func (c *CMake) Command() runner.Command {
	return runner.Command{Dir: c.buildDir, Name: "cmake", Args: c.Args()}
}

// Configure runs cmake in the build directory.
func (c *CMake) Configure(ctx context.Context) (int, error) {
	return c.r.Run(ctx, c.Command())
}

var (
	versionRe     = regexp.MustCompile(`^cmake version (\d+(?:\.\d+){0,2})`)
	minRequiredRe = regexp.MustCompile(`(?i)^\s*cmake_minimum_required\s*\(\s*VERSION\s+(\d+(?:\.\d+){0,3})`)
)

// ParseVersion extracts "X.Y.Z" from `cmake --version` output.
func ParseVersion(out []byte) (string, bool) {
	line, _, _ := bytes.Cut(out, []byte("\n"))
	m := versionRe.FindSubmatch(bytes.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}

// MinimumRequired returns the version named by the first
// cmake_minimum_required call in a CMakeLists.txt. Ranges such as
// "3.10...3.28" yield their lower bound.
func MinimumRequired(data []byte) (string, bool) {
	s := bufio.NewScanner(bytes.NewReader(data))
	for s.Scan() {
		line := s.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if m := minRequiredRe.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}
