package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/steveyegge/observe/internal/proposal"
)

var approveBy string

var approveCmd = &cobra.Command{
	Use:   "approve <proposal-id>",
	Short: "Approve a pending proposal and apply its parameter changes",
	Long: `Approve a pending proposal: write a new parameter version with the
proposal's changes applied, then mark the proposal approved. The
proposal records who approved it and when.

Examples:
  observe approve prop-20260825-141530-a1b2c3
  observe approve prop-20260825-141530-a1b2c3 --by alice`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		resolver := approveBy
		if resolver == "" {
			resolver = cfg.Actor
		}

		gate, err := proposal.NewGate(store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		prop, params, err := gate.Approve(ctx, args[0], resolver)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s Approved %s by %s\n\n", green("✓"), cyan(prop.ProposalID), resolver)
		fmt.Printf("  Parameters now at %s\n", cyan(params.Version))
		for _, d := range prop.ParameterDiffs {
			fmt.Printf("  %s: %s → %s\n", d.Path, formatParam(d.OldValue), formatParam(d.NewValue))
		}
		fmt.Println()
		fmt.Printf("%s\n\n", gray("observe params   # inspect the active set"))
	},
}

func init() {
	rootCmd.AddCommand(approveCmd)
	approveCmd.Flags().StringVar(&approveBy, "by", "", "who is approving (defaults to configured actor)")
}
