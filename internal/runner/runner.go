// Package runner executes the external tools driven by the launcher.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command describes a single subprocess invocation. Dir is the working
// directory of the child; the launcher's own working directory is never
// changed.
type Command struct {
	Dir  string
	Name string
	Args []string
}

// String renders the command as "[dir] name args...".
func (c Command) String() string {
	s := strings.Join(append([]string{c.Name}, c.Args...), " ")
	if c.Dir != "" {
		return "[" + c.Dir + "] " + s
	}
	return s
}

// Runner runs a command to completion and reports its exit status.
//
// The returned error is non-nil only when the child could not be started or
// did not exit normally. A child that exits with a non-zero code is not an
// error: the code is returned as status.
type Runner interface {
	Run(ctx context.Context, cmd Command) (status int, err error)
}

// Exec runs commands with os/exec.
type Exec struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExec returns an Exec bound to the standard streams of this process.
func NewExec() *Exec {
	return &Exec{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (e *Exec) Run(ctx context.Context, c Command) (int, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		return -1, fmt.Errorf("%s: %w", c.Name, err)
	}
	return -1, fmt.Errorf("failed to run %s: %w", c.Name, err)
}

// DryRun prints commands instead of running them and reports success.
type DryRun struct {
	Out io.Writer
}

func (d *DryRun) Run(_ context.Context, c Command) (int, error) {
	if _, err := fmt.Fprintln(d.Out, c.String()); err != nil {
		return -1, err
	}
	return 0, nil
}
