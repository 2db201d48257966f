// Package layout locates and validates the octopus source tree.
package layout

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	ErrMissingDescriptor = errors.New("octopus source directory corrupted: root CMakeLists.txt is missing. Please redownload source code.")
	ErrMissingBuildDir   = errors.New("octopus source directory corrupted: build directory is missing. Please redownload source code.")
)

const (
	descriptorName = "CMakeLists.txt"
	buildDirName   = "build"
	binDirName     = "bin"
)

// ResolveRoot returns the absolute, symlink-free project root. An empty
// override means the directory holding the running executable, after
// resolving links to the executable itself.
func ResolveRoot(override string) (string, error) {
	if override == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("failed to locate executable: %w", err)
		}
		exe, err = filepath.EvalSymlinks(exe)
		if err != nil {
			return "", err
		}
		return filepath.Dir(exe), nil
	}
	abs, err := filepath.Abs(override)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// Tree is a project source tree rooted at Root.
type Tree struct {
	Root string
}

func (t Tree) Descriptor() string { return filepath.Join(t.Root, descriptorName) }
func (t Tree) BuildDir() string   { return filepath.Join(t.Root, buildDirName) }
func (t Tree) BinDir() string     { return filepath.Join(t.Root, binDirName) }

// Validate checks that the root descriptor and the build directory exist,
// in that order. Any stat failure other than absence is returned as is.
func (t Tree) Validate() error {
	if ok, err := exists(t.Descriptor()); err != nil {
		return err
	} else if !ok {
		return ErrMissingDescriptor
	}
	if ok, err := exists(t.BuildDir()); err != nil {
		return err
	} else if !ok {
		return ErrMissingBuildDir
	}
	return nil
}

// EnsureBinDir creates the bin directory if it is absent and reports whether
// it did. Creation tolerates the directory appearing concurrently.
func (t Tree) EnsureBinDir() (created bool, err error) {
	ok, err := exists(t.BinDir())
	if err != nil || ok {
		return false, err
	}
	if err := os.MkdirAll(t.BinDir(), 0o755); err != nil {
		return false, fmt.Errorf("failed to create %s: %w", t.BinDir(), err)
	}
	return true, nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
