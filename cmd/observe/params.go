package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var paramsJSON bool

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Show the active parameter set",
	Long: `Show the latest parameter version: observer settings and pipeline
targets. Parameters change only through approved proposals.

Examples:
  observe params
  observe params --json
  observe params history`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		ps, err := store.LatestParameters(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if paramsJSON {
			data, err := json.MarshalIndent(ps, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
			return
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\nParameters %s\n", cyan(ps.Version))
		if ps.Description != "" {
			fmt.Printf("%s\n", gray(ps.Description))
		}
		if ps.AppliedFromProposal != "" {
			fmt.Printf("%s\n", gray("From proposal "+ps.AppliedFromProposal))
		}
		fmt.Println("\nObserver:")
		field("Analysis window", fmt.Sprintf("%d runs", ps.Observer.AnalysisWindowSize))
		field("Trend threshold", fmt.Sprintf("%.2f", ps.Observer.TrendThreshold))
		fmt.Println("\nTargets:")
		field("Median cycle time", fmt.Sprintf("%.1f min", ps.Targets.MedianCycleTimeMinutes))
		field("Build success rate", fmt.Sprintf("%.0f%%", ps.Targets.BuildSuccessRate*100))
		field("Manual intervention", fmt.Sprintf("≤ %.0f%%", ps.Targets.ManualInterventionRate*100))
		field("Lint errors", fmt.Sprintf("≤ %.0f per run", ps.Targets.MaxLintErrors))
		field("Type errors", fmt.Sprintf("≤ %.0f per run", ps.Targets.MaxTypeErrors))
		fmt.Println()
	},
}

var paramsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List all parameter versions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		versions, err := store.ListParameterVersions(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(versions) == 0 {
			gray := color.New(color.FgHiBlack).SprintFunc()
			fmt.Printf("No parameter versions yet. %s\n", gray("Try: observe init"))
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tCREATED\tFROM PROPOSAL\tDESCRIPTION")
		for _, v := range versions {
			ps, err := store.GetParameters(ctx, v)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			created := ""
			if ps.Created != nil {
				created = ps.Created.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ps.Version, created, ps.AppliedFromProposal, ps.Description)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(paramsCmd)
	paramsCmd.AddCommand(paramsHistoryCmd)
	paramsCmd.Flags().BoolVar(&paramsJSON, "json", false, "print the raw parameter set")
}
