package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/runbook/internal/runbook"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Statically validate a runbook",
	Long: `Check a runbook without executing anything.

Validation covers:
- YAML structure, schema version, task ids and commands
- duplicate task ids
- depends_on references to undefined tasks
- dependency cycles (with the exact cycle path)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := DefaultRunbookFile
	if len(args) == 1 {
		path = args[0]
	}

	rb, err := runbook.Load(path)
	if err != nil {
		return err
	}

	if err := rb.Validate(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d task(s), no issues found\n", path, len(rb.Tasks))
	return nil
}
