package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/steveyegge/observe/internal/analysis"
	"github.com/steveyegge/observe/internal/metrics"
)

var (
	metricsWindow int
	metricsSave   bool
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Aggregate metrics over the recent window",
	Long: `Compute aggregate metrics over the most recent window of runs and
compare them against the configured targets.

The window size comes from the latest parameter config unless overridden.

Examples:
  observe metrics
  observe metrics --window 20
  observe metrics --save     # also persist a snapshot under metrics/`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		params, err := store.LatestParameters(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		settings := analysis.SettingsFrom(params)
		if metricsWindow > 0 {
			settings.WindowSize = metricsWindow
		}

		records, err := store.ListRuns(ctx, settings.WindowSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		summary := metrics.Compute(records)

		cyan := color.New(color.FgCyan).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s (window %d, parameters %s)\n\n", cyan("Pipeline Metrics"), settings.WindowSize, params.Version)

		if summary.RunCount == 0 {
			fmt.Println("No runs recorded yet. Try: observe record")
			return
		}

		fmt.Printf("  Runs analyzed:       %d", summary.RunCount)
		if summary.FirstRun != nil && summary.LastRun != nil {
			fmt.Printf(" %s", gray(fmt.Sprintf("(%s → %s)",
				summary.FirstRun.UTC().Format("01-02 15:04"),
				summary.LastRun.UTC().Format("01-02 15:04"))))
		}
		fmt.Println()

		judge := func(miss bool) string {
			if miss {
				return red("MISS")
			}
			return green("ok")
		}

		fmt.Println()
		fmt.Println(cyan("  Reliability"))
		fmt.Printf("    Build success rate:  %.0f%%  (target ≥ %.0f%%)  %s\n",
			summary.BuildSuccessRate*100, settings.TargetBuildSuccessRate*100,
			judge(summary.BuildSuccessRate < settings.TargetBuildSuccessRate))
		fmt.Printf("    Test pass rate:      %.0f%%  (%d passed / %d failed)\n",
			summary.TestPassRate*100, summary.TestsPassedTotal, summary.TestsFailedTotal)

		fmt.Println()
		fmt.Println(cyan("  Duration (minutes)"))
		d := summary.Duration
		if d.Count == 0 {
			fmt.Println("    no measured durations in window")
		} else {
			fmt.Printf("    Median:              %.1f  (target ≤ %.1f)  %s\n",
				d.Median, settings.TargetMedianCycleTime,
				judge(d.Median > settings.TargetMedianCycleTime))
			fmt.Printf("    Mean / P95:          %.1f / %.1f\n", d.Mean, d.P95)
			fmt.Printf("    Min / Max / StdDev:  %.1f / %.1f / %.1f\n", d.Min, d.Max, d.StdDev)
		}

		fmt.Println()
		fmt.Println(cyan("  Hygiene"))
		fmt.Printf("    Lint errors / run:   %.1f  (target ≤ %.0f)  %s\n",
			summary.AvgLintErrors, settings.MaxLintErrors,
			judge(summary.AvgLintErrors > settings.MaxLintErrors))
		fmt.Printf("    Type errors / run:   %.1f  (target ≤ %.0f)  %s\n",
			summary.AvgTypeErrors, settings.MaxTypeErrors,
			judge(summary.AvgTypeErrors > settings.MaxTypeErrors))
		fmt.Printf("    Diff size / run:     %.0f lines (total %d)\n",
			summary.AvgDiffSize, summary.TotalDiffLines)

		fmt.Println()
		fmt.Println(cyan("  Autonomy"))
		fmt.Printf("    Manual intervention: %.0f%%  (target ≤ %.0f%%)  %s\n",
			summary.ManualInterventionRate*100, settings.TargetManualRate*100,
			judge(summary.ManualInterventionRate > settings.TargetManualRate))
		fmt.Printf("    Step completion:     %.0f%%\n", summary.StepCompletionRate*100)
		fmt.Println()

		if metricsSave {
			name, err := store.SaveMetricsSnapshot(ctx, summary)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to save snapshot: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("%s Snapshot saved: %s\n\n", green("✓"), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
	metricsCmd.Flags().IntVar(&metricsWindow, "window", 0, "override the analysis window size")
	metricsCmd.Flags().BoolVar(&metricsSave, "save", false, "persist the summary as a metrics snapshot")
}
