package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var agentStatsLimit int

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Inspect the analysis agent",
	Long: `Inspect the analysis agent's execution history. Every analysis pass
logs one entry, success or failure, so the log is a complete account of
what the agent has done.

Examples:
  observe agent stats
  observe agent stats --limit 50`,
}

var agentStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show agent execution history and success rate",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		entries, err := store.ReadAgentLog(ctx, agentStatsLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(entries) == 0 {
			gray := color.New(color.FgHiBlack).SprintFunc()
			fmt.Printf("No agent executions yet. %s\n", gray("Try: observe analyze"))
			return
		}

		rate, total, err := store.AgentLogSuccessRate(ctx, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		fmt.Printf("\nAgent executions: %d total, %.0f%% success\n\n", total, rate*100)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tAGENT\tOK\tRUNS\tWINDOW\tFINDINGS\tDURATION\tREPORT")
		for _, e := range entries {
			ok := green("✓")
			if !e.Success {
				ok = red("✗")
			}
			report := e.ReportFilename
			if !e.Success && e.Error != "" {
				report = truncate(e.Error, 40)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.2fs\t%s\n",
				e.Timestamp.Format("2006-01-02 15:04"),
				e.AgentName,
				ok,
				e.RunsAnalyzed,
				e.WindowSize,
				e.FindingsCount,
				e.DurationSeconds,
				report)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(agentCmd)
	agentCmd.AddCommand(agentStatsCmd)
	agentStatsCmd.Flags().IntVar(&agentStatsLimit, "limit", 20, "show at most this many recent executions")
}
