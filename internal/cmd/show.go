package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/runbook/internal/runbook"
	"github.com/felixgeelhaar/runbook/internal/ux"
)

var showFormat string

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Summarize a runbook",
	Long:  `Print a runbook's name, fingerprint, and tasks without executing anything.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showFormat, "output", "o", "text", "output format (text, json, yaml)")

	rootCmd.AddCommand(showCmd)
}

type showTask struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	DependsOn []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	Run       string   `json:"run" yaml:"run"`
}

type showOutput struct {
	Name        string     `json:"name,omitempty" yaml:"name,omitempty"`
	Version     int        `json:"version" yaml:"version"`
	Fingerprint string     `json:"fingerprint" yaml:"fingerprint"`
	Tasks       []showTask `json:"tasks" yaml:"tasks"`
}

// String renders the summary for the text formatter
func (s showOutput) String() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s (version %d)\n", s.Name, s.Version))
	b.WriteString(fmt.Sprintf("fingerprint: %s\n", s.Fingerprint))
	b.WriteString(fmt.Sprintf("tasks: %d\n", len(s.Tasks)))
	for _, t := range s.Tasks {
		line := fmt.Sprintf("  %s", t.ID)
		if t.Name != "" && t.Name != t.ID {
			line += fmt.Sprintf(" (%s)", t.Name)
		}
		if len(t.DependsOn) > 0 {
			line += fmt.Sprintf(" <- %s", strings.Join(t.DependsOn, ", "))
		}
		b.WriteString(line + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func runShow(cmd *cobra.Command, args []string) error {
	path := DefaultRunbookFile
	if len(args) == 1 {
		path = args[0]
	}

	rb, err := runbook.Load(path)
	if err != nil {
		return err
	}

	fingerprint, err := rb.Fingerprint()
	if err != nil {
		return err
	}

	out := showOutput{Name: rb.Name, Version: rb.Version, Fingerprint: fingerprint}
	for _, step := range rb.Tasks {
		out.Tasks = append(out.Tasks, showTask{
			ID:        step.ID,
			Name:      step.Name,
			DependsOn: step.DependsOn,
			Run:       step.Run,
		})
	}

	formatter, err := ux.NewFormatter(showFormat, &ux.FormatterOptions{Writer: cmd.OutOrStdout()})
	if err != nil {
		return err
	}

	return formatter.Format(out)
}
