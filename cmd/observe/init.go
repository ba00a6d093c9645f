package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the observer storage tree",
	Long: `Initialize the observer storage tree in the configured directory.

This creates:
  - runs/        one JSON file per recorded pipeline run
  - parameters/  one JSON file per parameter config version
  - proposals/   one JSON file per parameter change proposal
  - analysis/    one markdown file per analysis report
  - metrics/     agent execution log and metrics snapshots

and seeds parameters/ with the default config (v0.1.0) if it is empty.
Running init on an existing tree is harmless.

Example:
  observe init
  observe init --dir /var/lib/observe`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		seeded, err := store.EnsureDefaultParameters(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s Initialized observer storage\n\n", green("✓"))
		fmt.Printf("  Storage root: %s\n", cyan(store.Root()))
		if seeded {
			fmt.Printf("  Parameters:   %s\n", cyan("v0.1.0 (defaults)"))
		} else {
			fmt.Printf("  Parameters:   %s\n", gray("already present"))
		}
		fmt.Println()

		fmt.Printf("%s Next steps:\n", gray("→"))
		fmt.Printf("  %s\n", gray("observe record        # record a pipeline run"))
		fmt.Printf("  %s\n", gray("observe metrics       # aggregate the recent window"))
		fmt.Printf("  %s\n", gray("observe analyze       # write an analysis report"))
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
