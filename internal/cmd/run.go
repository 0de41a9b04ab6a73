package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/runbook/internal/engine"
	"github.com/felixgeelhaar/runbook/internal/log"
	"github.com/felixgeelhaar/runbook/internal/runbook"
	"github.com/felixgeelhaar/runbook/internal/shell"
	"github.com/felixgeelhaar/runbook/internal/trace"
	"github.com/felixgeelhaar/runbook/internal/ux"
)

// DefaultRunbookFile is used when no file argument is given
const DefaultRunbookFile = "runbook.yaml"

var (
	runDryRun      bool
	runNoPreflight bool
	runTraceDir    string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Execute a runbook",
	Long: `Execute every task in a runbook in dependency order.

The run aborts on the first task failure. When the remaining tasks can never
become ready (a missing depends_on reference or a cycle), the run aborts with
a dependency error listing the stuck tasks. Already-completed tasks are never
rolled back.

By default the runbook is statically validated before anything executes;
--no-preflight skips that and relies on the executor's lazy detection alone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "print commands instead of executing them")
	runCmd.Flags().BoolVar(&runNoPreflight, "no-preflight", false, "skip static validation before the run")
	runCmd.Flags().StringVar(&runTraceDir, "trace-dir", "", "write a JSONL trace of the run to this directory")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	path := DefaultRunbookFile
	if len(args) == 1 {
		path = args[0]
	}

	rb, err := runbook.Load(path)
	if err != nil {
		return err
	}

	if !runNoPreflight {
		if err := rb.Validate(); err != nil {
			return err
		}
	}

	fingerprint, err := rb.Fingerprint()
	if err != nil {
		return err
	}

	factory := shell.NewFactory(shell.Options{
		BaseDir: filepath.Dir(path),
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
		DryRun:  runDryRun,
	})

	reg, err := rb.ToRegistry(factory)
	if err != nil {
		return err
	}

	runID := uuid.New().String()

	traceLogger, err := trace.NewLogger(trace.Config{
		RunID:   runID,
		LogDir:  runTraceDir,
		Enabled: runTraceDir != "",
	})
	if err != nil {
		return err
	}
	defer traceLogger.Close()

	recorder := trace.NewRecorder(traceLogger)
	console := ux.NewConsole(cmd.OutOrStdout(), styles())

	logger := log.DefaultLogger().With("runbook", rb.Name)
	logger.Info("run starting", "run_id", runID, "tasks", reg.Len(), "fingerprint", fingerprint)

	recorder.RunStarted(rb.Name, reg.Len(), fingerprint)

	exec := &engine.Executor{
		Observer: engine.CombineObservers(console, recorder),
		Logger:   logger,
		RunID:    runID,
	}

	if _, err := exec.Run(cmd.Context(), reg); err != nil {
		return err
	}

	if traceLogger.Path() != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Trace written to %s\n", traceLogger.Path())
	}

	return nil
}
