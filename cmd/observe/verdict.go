package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/steveyegge/observe/internal/verdict"
)

var verdictCmd = &cobra.Command{
	Use:   "verdict <run-id>",
	Short: "Judge a recorded run against the quality checks",
	Long: `Evaluate one recorded run against the quality checks: build success,
tests passing, and hygiene error counts. Blocking check failures fail
the verdict; advisory failures only warn. Each failure comes with a fix
hint and the verdict carries a stable signature of what failed, so
identical failures can be grouped.

Examples:
  observe verdict 2026-08-25-a1b2c3`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		rec, err := store.GetRun(ctx, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		v := verdict.Evaluate(rec)

		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		outcome := green("PASS")
		switch v.Outcome {
		case verdict.OutcomeWarn:
			outcome = yellow("WARN")
		case verdict.OutcomeFail:
			outcome = red("FAIL")
		}

		fmt.Printf("\n%s  %s\n\n", cyan(v.RunID), outcome)
		for _, c := range v.Checks {
			marker := green("✓")
			if !c.Passed {
				if c.Severity == verdict.SeverityBlocking {
					marker = red("✗")
				} else {
					marker = yellow("!")
				}
			}
			fmt.Printf("  %s %-14s %s\n", marker, c.ID, c.Detail)
		}

		if len(v.FixHints) > 0 {
			fmt.Println("\nFix hints:")
			for _, h := range v.FixHints {
				fmt.Printf("  → %s\n", h)
			}
		}
		if v.Outcome == verdict.OutcomeFail {
			fmt.Println()
			if v.RetryEligible {
				fmt.Printf("%s\n", gray("Retry eligible: no manual intervention was recorded."))
			} else {
				fmt.Printf("%s\n", gray("Not retry eligible: the run needed manual intervention."))
			}
			fmt.Printf("%s\n", gray("Failure signature: "+v.FailureSignature))
		}
		fmt.Println()

		if v.Outcome == verdict.OutcomeFail {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(verdictCmd)
}
