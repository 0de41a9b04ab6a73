package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/runbook/internal/runbook"
	"github.com/felixgeelhaar/runbook/internal/ux"
)

var graphFormat string

var graphCmd = &cobra.Command{
	Use:   "graph [file]",
	Short: "Show a runbook's dependency graph and execution waves",
	Long: `Show the dependency edges of a runbook and the waves in which its
tasks become ready: each wave lists the tasks whose dependencies are all
satisfied by previous waves. The executor runs tasks one at a time, but the
waves make the ordering constraints visible at a glance.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVarP(&graphFormat, "output", "o", "text", "output format (text, json, yaml)")

	rootCmd.AddCommand(graphCmd)
}

type graphTask struct {
	ID        string   `json:"id" yaml:"id"`
	DependsOn []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}

type graphOutput struct {
	Name  string      `json:"name,omitempty" yaml:"name,omitempty"`
	Tasks []graphTask `json:"tasks" yaml:"tasks"`
	Waves [][]string  `json:"waves" yaml:"waves"`
}

// String renders the graph for the text formatter
func (g graphOutput) String() string {
	var b strings.Builder

	if g.Name != "" {
		b.WriteString(g.Name + "\n")
	}
	for _, t := range g.Tasks {
		if len(t.DependsOn) == 0 {
			b.WriteString(fmt.Sprintf("  %s\n", t.ID))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s <- %s\n", t.ID, strings.Join(t.DependsOn, ", ")))
	}

	b.WriteString("waves:\n")
	for i, wave := range g.Waves {
		b.WriteString(fmt.Sprintf("  %d: %s\n", i+1, strings.Join(wave, ", ")))
	}

	return strings.TrimRight(b.String(), "\n")
}

func runGraph(cmd *cobra.Command, args []string) error {
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

	out := graphOutput{Name: rb.Name, Waves: waves(rb)}
	for _, step := range rb.Tasks {
		out.Tasks = append(out.Tasks, graphTask{ID: step.ID, DependsOn: step.DependsOn})
	}

	formatter, err := ux.NewFormatter(graphFormat, &ux.FormatterOptions{Writer: cmd.OutOrStdout()})
	if err != nil {
		return err
	}

	return formatter.Format(out)
}

// waves groups task ids by the sweep in which they become ready, mirroring
// the executor's scheduling without running anything. The runbook must have
// passed Validate; a validated graph always makes progress.
func waves(rb *runbook.Runbook) [][]string {
	completed := make(map[string]bool, len(rb.Tasks))
	var result [][]string

	for len(completed) < len(rb.Tasks) {
		var wave []string
		for _, step := range rb.Tasks {
			if completed[step.ID] {
				continue
			}
			ready := true
			for _, dep := range step.DependsOn {
				if !completed[dep] {
					ready = false
					break
				}
			}
			if ready {
				wave = append(wave, step.ID)
			}
		}

		if len(wave) == 0 {
			break
		}

		for _, id := range wave {
			completed[id] = true
		}
		result = append(result, wave)
	}

	return result
}
