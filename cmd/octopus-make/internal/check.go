package internal

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luntergroup/octopus-make/internal/layout"
	"github.com/luntergroup/octopus-make/internal/platform"
	"github.com/luntergroup/octopus-make/internal/toolcheck"
)

var errToolsMissing = errors.New("required build tools are missing or too old")

const checkLong = `Check looks up cmake, make and, with --root, sudo on PATH, and compares the
installed cmake with the version required by CMakeLists.txt.`

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that cmake and make are available",
	Long:  checkLong,
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	root, err := layout.ResolveRoot(sourceDir)
	if err != nil {
		return fmt.Errorf("failed to resolve source directory: %w", err)
	}

	report, err := toolcheck.New().Check(cmd.Context(), layout.Tree{Root: root}, platform.Current(), rootFlag)
	if err != nil {
		return err
	}
	report.Print(cmd.OutOrStdout())
	if !report.OK() {
		return errToolsMissing
	}
	return nil
}
