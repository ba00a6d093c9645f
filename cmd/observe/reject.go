package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/steveyegge/observe/internal/proposal"
)

var (
	rejectBy     string
	rejectReason string
)

var rejectCmd = &cobra.Command{
	Use:   "reject <proposal-id>",
	Short: "Reject a pending proposal",
	Long: `Reject a pending proposal. No parameters change. The proposal keeps
its full diff for the record, along with who rejected it and why.

Examples:
  observe reject prop-20260825-141530-a1b2c3 --reason "cycle target is fine"
  observe reject prop-20260825-141530-a1b2c3 --by alice --reason "too aggressive"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		resolver := rejectBy
		if resolver == "" {
			resolver = cfg.Actor
		}

		gate, err := proposal.NewGate(store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		prop, err := gate.Reject(ctx, args[0], resolver, rejectReason)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s Rejected %s by %s\n", green("✓"), cyan(prop.ProposalID), resolver)
		fmt.Printf("  Reason: %s\n\n", prop.RejectionReason)
		fmt.Printf("%s\n\n", gray("Parameters unchanged. observe propose to generate a new one."))
	},
}

func init() {
	rootCmd.AddCommand(rejectCmd)
	rejectCmd.Flags().StringVar(&rejectBy, "by", "", "who is rejecting (defaults to configured actor)")
	rejectCmd.Flags().StringVar(&rejectReason, "reason", "", "why the proposal is rejected (required)")
}
