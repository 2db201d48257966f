package internal

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luntergroup/octopus-make/internal/layout"
	"github.com/luntergroup/octopus-make/internal/platform"
)

// resetFlags restores every flag of every command to its default so that
// tests sharing rootCmd do not leak values into each other.
func resetFlags(t *testing.T) {
	t.Helper()
	var reset func(c *cobra.Command)
	reset = func(c *cobra.Command) {
		for _, fs := range []*pflag.FlagSet{c.PersistentFlags(), c.Flags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			})
		}
		for _, sub := range c.Commands() {
			reset(sub)
		}
	}
	reset(rootCmd)
	t.Cleanup(func() {
		reset(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})
}

func newTree(t *testing.T, build bool) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "CMakeLists.txt"), []byte("project(octopus)\n"), 0o644))
	if build {
		require.NoError(t, os.Mkdir(filepath.Join(root, "build"), 0o755))
	}
	root, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	return root
}

func TestInitCommands(t *testing.T) {
	resetFlags(t)

	helpFlag := "-h"
	commandArgs := [][]string{{"root", helpFlag}}
	for _, command := range rootCmd.Commands() {
		commandArgs = append(commandArgs, []string{command.Name(), command.Name(), helpFlag})
	}

	for _, args := range commandArgs {
		t.Run(fmt.Sprintf("Testing Command %s", args[0]), func(t *testing.T) {
			rootCmd.SetArgs(args[1:])
			rootCmd.SetOut(io.Discard)
			if err := rootCmd.Execute(); err != nil {
				t.Errorf("expected no error while running %s command, got %v", args[0], err)
			}
		})
	}
}

func TestFlagNameToEnvVar(t *testing.T) {
	assert.Equal(t, "OCTOPUS_LOG_LEVEL", FlagNameToEnvVar("log-level", envPrefix))
	assert.Equal(t, "OCTOPUS_COMPILER", FlagNameToEnvVar("compiler", envPrefix))
}

func TestSetFlagsFromEnvVars(t *testing.T) {
	var (
		cc   string
		root bool
		lvl  string
	)
	cmd := &cobra.Command{
		Use: "octopus-make",
		Run: func(cmd *cobra.Command, args []string) {
			SetFlagsFromEnvVars(cmd)
		},
	}
	cmd.Flags().StringVar(&cc, "compiler", "", "")
	cmd.Flags().BoolVar(&root, "root", false, "")
	cmd.Flags().StringVar(&lvl, "log-level", "warn", "")

	t.Setenv("OCTOPUS_COMPILER", "/usr/bin/clang++")
	t.Setenv("OCTOPUS_ROOT", "true")
	t.Setenv("OCTOPUS_LOG_LEVEL", "debug")

	cmd.SetArgs([]string{"--log-level", "info"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "/usr/bin/clang++", cc)
	assert.True(t, root)
	assert.Equal(t, "info", lvl, "command line must win over the environment")
}

func TestRunDryRun(t *testing.T) {
	resetFlags(t)
	root := newTree(t, true)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--source-dir", root, "--dry-run", "--root", "--compiler", "/path/to/cc"})
	require.NoError(t, rootCmd.Execute())

	build := filepath.Join(root, "build")
	want := "No bin directory found, making one\n" +
		"[" + build + "] cmake -DINSTALL_ROOT=ON " + root + " -DCMAKE_CXX_COMPILER=/path/to/cc ..\n"
	if platform.Current().SupportsInstall() {
		want += "[" + build + "] sudo make install\n"
	} else {
		want += "make install is not implemented for this platform\n"
	}
	assert.Equal(t, want, out.String())
}

func TestRunCorruptedTreeExitsCleanly(t *testing.T) {
	resetFlags(t)
	root := newTree(t, false)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--source-dir", root, "--dry-run"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, layout.ErrMissingBuildDir.Error()+"\n", out.String())
}

func TestRunCompilerFromEnv(t *testing.T) {
	resetFlags(t)
	root := newTree(t, true)
	require.NoError(t, os.Mkdir(filepath.Join(root, "bin"), 0o755))
	t.Setenv("OCTOPUS_COMPILER", "/opt/gcc/bin/g++")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--source-dir", root, "--dry-run"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "cmake -DCMAKE_CXX_COMPILER=/opt/gcc/bin/g++ ..\n")
}

func TestVersion(t *testing.T) {
	resetFlags(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, version+"\n", out.String())
}
