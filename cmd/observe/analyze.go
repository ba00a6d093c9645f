package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/steveyegge/observe/internal/analysis"
	"github.com/steveyegge/observe/internal/types"
)

var (
	analyzeWindow int
	analyzePrint  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run an analysis pass and write a report",
	Long: `Run one analysis pass: compute current and previous window metrics,
classify every configured target into a finding, and write a markdown
report under analysis/. Every pass also appends one entry to the agent
execution log, success or failure.

Examples:
  observe analyze
  observe analyze --window 20
  observe analyze --print    # also dump the report to stdout`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		agent, err := analysis.New(&analysis.Config{Hub: store})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		result := agent.Run(ctx, analyzeWindow)

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		if !result.Success {
			fmt.Fprintf(os.Stderr, "%s Analysis failed: %s\n", red("✗"), result.Error)
			os.Exit(1)
		}

		fmt.Printf("\n%s Analysis complete in %.2fs\n\n", green("✓"), result.Duration.Seconds())
		fmt.Printf("  Report:        %s\n", result.ReportFilename)
		fmt.Printf("  Runs analyzed: %d (window %d, previous window %d)\n",
			result.RunsAnalyzed, result.WindowSize, result.Previous.RunCount)
		fmt.Printf("  Findings:      %d\n\n", result.FindingsCount())

		for _, f := range result.Findings {
			marker := gray("·")
			switch f.Severity {
			case types.SeverityCritical:
				marker = red("✗")
			case types.SeverityWarning:
				marker = color.New(color.FgYellow).Sprint("!")
			case types.SeverityInfo:
				marker = green("✓")
			}
			fmt.Printf("  %s [%s] %s\n", marker, f.Category, f.Message)
		}
		fmt.Println()

		if analyzePrint {
			fmt.Println(string(result.Markdown))
		} else {
			fmt.Printf("%s\n\n", gray("observe analyze --print  # to dump the report"))
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().IntVar(&analyzeWindow, "window", 0, "override the analysis window size")
	analyzeCmd.Flags().BoolVar(&analyzePrint, "print", false, "print the markdown report to stdout")
}
