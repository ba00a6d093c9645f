package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs",
	Long: `List recorded runs, oldest first.

Examples:
  observe list
  observe list --limit 20   # only the 20 most recent`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		records, err := store.ListRuns(ctx, listLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(records) == 0 {
			fmt.Println("No runs recorded yet. Try: observe record")
			return
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RUN\tWHEN\tTYPE\tREF\tDURATION\tBUILD\tTESTS\tLINT\tMANUAL")
		for _, r := range records {
			duration := "–"
			if r.DurationMinutes != nil {
				duration = fmt.Sprintf("%.0fm", *r.DurationMinutes)
			}
			build := green("✓")
			if !r.BuildSuccess {
				build = red("✗")
			}
			manual := ""
			if r.ManualIntervention {
				manual = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d/%d\t%d\t%s\n",
				r.RunID,
				r.Timestamp.UTC().Format("2006-01-02 15:04"),
				r.InputType,
				truncate(r.InputRef, 28),
				duration,
				build,
				r.TestsPassed, r.TestsPassed+r.TestsFailed,
				r.LintErrors,
				manual)
		}
		w.Flush()
		fmt.Printf("\n%d run(s)\n", len(records))
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "show only the N most recent runs (0 = all)")
}
