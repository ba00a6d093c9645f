package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/steveyegge/observe/internal/analysis"
	"github.com/steveyegge/observe/internal/proposal"
)

var proposeWindow int

var proposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "Run analysis and generate a parameter change proposal",
	Long: `Run an analysis pass and, if any finding warrants a parameter
change, write a pending proposal. Only one proposal may be pending at a
time; approve or reject the current one before generating another.

Proposals never change anything by themselves. Apply one with:
  observe approve <proposal-id>

Examples:
  observe propose
  observe propose --window 20`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		agent, err := analysis.New(&analysis.Config{Hub: store})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		engine, err := proposal.New(&proposal.Config{Hub: store, Agent: agent})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		prop, result, err := engine.Generate(ctx, proposeWindow)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		if prop == nil {
			fmt.Printf("\n%s Analysis complete: %d findings, nothing to propose.\n",
				green("✓"), result.FindingsCount())
			fmt.Printf("%s\n\n", gray("All targets within tolerance; parameters left as they are."))
			return
		}

		fmt.Printf("\n%s Proposal %s created (pending)\n\n", green("✓"), cyan(prop.ProposalID))
		fmt.Printf("  Impact:  %s\n", prop.ImpactLevel)
		fmt.Printf("  Version: %s → %s\n", prop.VersionFrom, prop.VersionTo)
		fmt.Printf("  Report:  %s\n\n", prop.SourceReport)

		for _, d := range prop.ParameterDiffs {
			fmt.Printf("  %s: %s → %s\n", d.Path, formatParam(d.OldValue), formatParam(d.NewValue))
			fmt.Printf("    %s\n", gray(d.Reason))
		}
		fmt.Println()
		fmt.Printf("%s\n", gray(fmt.Sprintf("observe approve %s   # apply", prop.ProposalID)))
		fmt.Printf("%s\n\n", gray(fmt.Sprintf("observe reject %s --reason \"...\"   # discard", prop.ProposalID)))
	},
}

// formatParam trims trailing zeros so integer-valued parameters print
// as integers.
func formatParam(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func init() {
	rootCmd.AddCommand(proposeCmd)
	proposeCmd.Flags().IntVar(&proposeWindow, "window", 0, "override the analysis window size")
}
