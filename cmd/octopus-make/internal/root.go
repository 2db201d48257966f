package internal

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/luntergroup/octopus-make/internal/launcher"
	"github.com/luntergroup/octopus-make/internal/layout"
	"github.com/luntergroup/octopus-make/internal/logutil"
	"github.com/luntergroup/octopus-make/internal/platform"
	"github.com/luntergroup/octopus-make/internal/runner"
)

const envPrefix = "OCTOPUS_"

var (
	logLevel  string
	logFile   string
	sourceDir string
	rootFlag  bool
	compiler  string
	dryRun    bool
)

const rootLong = `octopus-make checks the octopus source tree, runs cmake from its build
directory and, if configuration succeeds, runs make install.`

var rootCmd = &cobra.Command{
	Use:               "octopus-make",
	Short:             "Configure, build and install octopus",
	Long:              rootLong,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runLaunch,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "warn", "sets the log level (panic, fatal, error, warn, info, debug, trace)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", logutil.Console, "sets the log path. If console is specified the log will be output to stderr")
	rootCmd.PersistentFlags().StringVar(&sourceDir, "source-dir", "", "octopus source directory (default: the directory of this executable)")
	rootCmd.PersistentFlags().BoolVar(&rootFlag, "root", false, "install into /usr/local/bin, running make install through sudo")

	rootCmd.Flags().StringVar(&compiler, "compiler", "", "C++ compiler path")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print commands without executing them")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	SetFlagsFromEnvVars(cmd)
	return logutil.InitLog(logLevel, logFile)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	root, err := layout.ResolveRoot(sourceDir)
	if err != nil {
		return fmt.Errorf("failed to resolve source directory: %w", err)
	}

	var r runner.Runner = runner.NewExec()
	if dryRun {
		r = &runner.DryRun{Out: cmd.OutOrStdout()}
	}

	l := launcher.New(r, platform.Current(), cmd.OutOrStdout())
	res, err := l.Run(cmd.Context(), root, launcher.Options{Root: rootFlag, Compiler: compiler})
	if err != nil {
		return err
	}
	log.Debugf("launcher stopped at %s", res.Stage)
	return nil
}

// SetFlagsFromEnvVars sets every flag not given on the command line from an
// OCTOPUS_ prefixed environment variable, e.g. OCTOPUS_LOG_LEVEL.
func SetFlagsFromEnvVars(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		envVar := FlagNameToEnvVar(f.Name, envPrefix)
		if value, present := os.LookupEnv(envVar); present {
			if err := flags.Set(f.Name, value); err != nil {
				log.Infof("unable to configure flag %s using variable %s, err: %v", f.Name, envVar, err)
			}
		}
	})
}

// FlagNameToEnvVar converts a flag name to an environment variable name,
// e.g. "log-level" with prefix "OCTOPUS_" becomes "OCTOPUS_LOG_LEVEL".
func FlagNameToEnvVar(cmdFlag string, prefix string) string {
	parsed := strings.ReplaceAll(cmdFlag, "-", "_")
	upper := strings.ToUpper(parsed)
	return prefix + upper
}
