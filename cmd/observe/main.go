package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/steveyegge/observe/internal/config"
	"github.com/steveyegge/observe/internal/hub"
)

var (
	flagDir string

	// cfg and store are resolved once per invocation before any command
	// runs; commands treat them as read-only.
	cfg   *config.Config
	store *hub.Hub
)

var rootCmd = &cobra.Command{
	Use:   "observe",
	Short: "Advisory telemetry and recommendations for a build pipeline",
	Long: `observe watches the outcomes of an external build pipeline: it stores
immutable run records, computes trend-aware metrics against configurable
targets, and proposes parameter adjustments that a human must approve
before they take effect.

It never controls or modifies the pipeline it observes.

Typical flow:
  observe init                 # create the storage tree and default parameters
  observe record               # record a completed pipeline run
  observe metrics              # aggregate the recent window
  observe analyze              # write an analysis report
  observe propose              # turn findings into a pending proposal
  observe approve <id> --by me # apply it as the next parameter version`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Resolve(flagDir)
		if err != nil {
			return err
		}
		store, err = hub.New(&hub.Config{Root: cfg.StorageDir})
		if err != nil {
			return err
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "d", "",
		fmt.Sprintf("storage directory (default $%s, then %s)", config.EnvDir, config.DefaultDir))
}
