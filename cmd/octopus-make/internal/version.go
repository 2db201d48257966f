package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at link time with -ldflags "-X .../internal.version=v1.2.3".
var version = "development"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the octopus-make version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
