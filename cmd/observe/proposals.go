package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/steveyegge/observe/internal/types"
)

var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "List all proposals",
	Long: `List every proposal ever generated, oldest first, with its status
and resolution.

Examples:
  observe proposals
  observe proposals show prop-20260825-141530-a1b2c3`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		props, err := store.ListProposals(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(props) == 0 {
			gray := color.New(color.FgHiBlack).SprintFunc()
			fmt.Printf("No proposals yet. %s\n", gray("Try: observe propose"))
			return
		}

		yellow := color.New(color.FgYellow).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PROPOSAL\tCREATED\tSTATUS\tIMPACT\tCHANGES\tVERSION\tRESOLVED BY")
		for _, p := range props {
			status := string(p.Status)
			switch p.Status {
			case types.ProposalPending:
				status = yellow(status)
			case types.ProposalApproved:
				status = green(status)
			case types.ProposalRejected:
				status = red(status)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s → %s\t%s\n",
				p.ProposalID,
				p.CreatedAt.Format("2006-01-02 15:04"),
				status,
				p.ImpactLevel,
				p.DiffCount(),
				p.VersionFrom, p.VersionTo,
				p.ResolvedBy)
		}
		w.Flush()
	},
}

var proposalsShowJSON bool

var proposalsShowCmd = &cobra.Command{
	Use:   "show <proposal-id>",
	Short: "Show one proposal in full",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		p, err := store.GetProposal(ctx, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if proposalsShowJSON {
			data, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
			return
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s\n\n", cyan(p.ProposalID))
		field("Status", string(p.Status))
		field("Created", p.CreatedAt.Format("2006-01-02 15:04:05"))
		field("Impact", string(p.ImpactLevel))
		field("Version", fmt.Sprintf("%s → %s", p.VersionFrom, p.VersionTo))
		field("Report", p.SourceReport)
		if p.ResolvedBy != "" {
			field("Resolved by", p.ResolvedBy)
		}
		if p.ResolvedAt != nil {
			field("Resolved at", p.ResolvedAt.Format("2006-01-02 15:04:05"))
		}
		if p.RejectionReason != "" {
			field("Rejection", p.RejectionReason)
		}
		fmt.Printf("\nRationale: %s\n", p.Rationale)

		if len(p.FindingsSummary) > 0 {
			fmt.Println("\nFindings:")
			for _, f := range p.FindingsSummary {
				fmt.Printf("  %s\n", f)
			}
		}

		fmt.Println("\nParameter changes:")
		for _, d := range p.ParameterDiffs {
			fmt.Printf("  %s: %s → %s\n", d.Path, formatParam(d.OldValue), formatParam(d.NewValue))
			fmt.Printf("    %s\n", gray(d.Reason))
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(proposalsCmd)
	proposalsCmd.AddCommand(proposalsShowCmd)
	proposalsShowCmd.Flags().BoolVar(&proposalsShowJSON, "json", false, "print the raw proposal record")
}
