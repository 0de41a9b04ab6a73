package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/runbook/internal/log"
	"github.com/felixgeelhaar/runbook/internal/ux"
)

var (
	flagLogLevel  string
	flagLogFormat string
	flagNoColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "runbook",
	Short: "Dependency-ordered task runner",
	Long: `runbook executes a set of named tasks whose order is constrained by
explicit dependency edges. Each task runs only after all of its dependencies
have completed; a missing reference or a dependency cycle fails the run.

Tasks are defined in a YAML runbook file:

  version: 1
  name: ml-train
  tasks:
    - id: data
      run: ./scripts/fetch.sh
    - id: train
      depends_on: [data]
      run: python train.py`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetDefaultLogger(log.New(log.Config{
			Level:  log.ParseLevel(flagLogLevel),
			Format: log.ParseFormat(flagLogFormat),
			Output: log.OutputStderr(),
		}))
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// styles returns the console styles honoring --no-color and NO_COLOR
func styles() ux.Styles {
	if flagNoColor || os.Getenv("NO_COLOR") != "" {
		return ux.PlainStyles()
	}
	return ux.DefaultStyles()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
}
