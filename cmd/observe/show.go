package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run record in full",
	Long: `Show every field of one recorded run.

Examples:
  observe show 2026-08-25-a3f2c1
  observe show 2026-08-25-a3f2c1 --json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		record, err := store.GetRun(ctx, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if showJSON {
			data, err := json.MarshalIndent(record, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
			return
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		fmt.Printf("\n%s %s\n\n", cyan("Run"), record.RunID)
		field("Source", record.Source)
		field("Input type", string(record.InputType))
		field("Input ref", record.InputRef)
		field("Recorded", record.Timestamp.UTC().Format("2006-01-02 15:04:05 MST"))
		if record.DurationMinutes != nil {
			field("Duration", fmt.Sprintf("%.1f minutes", *record.DurationMinutes))
		} else {
			field("Duration", "unknown")
		}
		if record.LLMModel != "" {
			field("Model", record.LLMModel)
		}
		if len(record.PipelineSteps) > 0 {
			steps := make([]string, len(record.PipelineSteps))
			for i, s := range record.PipelineSteps {
				steps[i] = string(s)
			}
			field("Steps", strings.Join(steps, " → "))
		}
		if record.BuildSuccess {
			field("Build", green("succeeded"))
		} else {
			field("Build", red("failed"))
		}
		field("Tests", fmt.Sprintf("%d passed / %d failed", record.TestsPassed, record.TestsFailed))
		field("Lint errors", fmt.Sprintf("%d", record.LintErrors))
		field("Type errors", fmt.Sprintf("%d", record.TypeErrors))
		field("Diff size", fmt.Sprintf("%d lines", record.DiffSizeLines))
		field("Files", fmt.Sprintf("%d created, %d modified", record.FilesCreated, record.FilesModified))
		if record.ManualIntervention {
			field("Manual intervention", red("yes")+": "+record.ManualInterventionReason)
		} else {
			field("Manual intervention", "no")
		}
		if record.Notes != "" {
			field("Notes", record.Notes)
		}
		fmt.Println()
	},
}

// field prints one aligned name/value line of a detail view.
func field(name, value string) {
	fmt.Printf("  %-22s %s\n", name, value)
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the raw record as JSON")
}
