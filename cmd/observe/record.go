package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/steveyegge/observe/internal/types"
)

var (
	recordSource    string
	recordInputType string
	recordRef       string
	recordDuration  float64
	recordModel     string
	recordSteps     string
	recordBuildOK   bool
	recordTestsPass int
	recordTestsFail int
	recordLint      int
	recordTypeErrs  int
	recordDiffLines int
	recordFilesNew  int
	recordFilesMod  int
	recordManual    bool
	recordManualWhy string
	recordNotes     string
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a completed pipeline run",
	Long: `Record one completed pipeline run as an immutable run record.

Without --ref the command prompts for each field interactively; with --ref
it reads everything from flags, which suits scripted callers.

Examples:
  # Interactive
  observe record

  # Scripted
  observe record --ref PRD-142 --input-type prd --duration 28.5 \
    --build-success --tests-passed 42 --steps ingest,build,audit,ship

Records are append-only: a duplicate identifier is rejected, and
corrections mean recording a new run, not editing an old one.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		var (
			record *types.RunRecord
			err    error
		)
		if recordRef == "" {
			record, err = promptRecord()
			if err != nil {
				if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
					fmt.Fprintln(os.Stderr, "Aborted; nothing recorded.")
					os.Exit(1)
				}
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		} else {
			record = recordFromFlags(cmd)
		}

		if err := store.AppendRun(ctx, record); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()
		fmt.Printf("\n%s Recorded run %s\n", green("✓"), record.RunID)
		fmt.Printf("  %s\n\n", gray("observe show "+record.RunID))
	},
}

// recordFromFlags builds a run record purely from command flags.
func recordFromFlags(cmd *cobra.Command) *types.RunRecord {
	now := time.Now().UTC()
	record := &types.RunRecord{
		RunID:                    types.NewRunID(now),
		Source:                   recordSource,
		InputType:                types.InputType(strings.ToLower(recordInputType)),
		InputRef:                 recordRef,
		Timestamp:                now,
		LLMModel:                 recordModel,
		PipelineSteps:            parseSteps(recordSteps),
		BuildSuccess:             recordBuildOK,
		TestsPassed:              recordTestsPass,
		TestsFailed:              recordTestsFail,
		LintErrors:               recordLint,
		TypeErrors:               recordTypeErrs,
		DiffSizeLines:            recordDiffLines,
		FilesCreated:             recordFilesNew,
		FilesModified:            recordFilesMod,
		ManualIntervention:       recordManual,
		ManualInterventionReason: recordManualWhy,
		Notes:                    recordNotes,
	}
	if record.Source == "" {
		record.Source = cfg.Source
	}
	// Duration stays null unless the caller measured one.
	if cmd.Flags().Changed("duration") && recordDuration >= 0 {
		d := recordDuration
		record.DurationMinutes = &d
	}
	return record
}

func parseSteps(s string) []types.PipelineStep {
	var steps []types.PipelineStep
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		steps = append(steps, types.PipelineStep(part))
	}
	return steps
}

// promptRecord walks through every field interactively. Ctrl-C or EOF at
// any prompt aborts without writing anything.
func promptRecord() (*types.RunRecord, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "abort",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	p := &prompter{rl: rl, label: color.New(color.FgCyan).SprintFunc()}

	fmt.Println("Recording a pipeline run. Enter accepts the [default].")

	inputType, err := p.askChoice("Input type", inputTypeNames(), string(types.InputFeature))
	if err != nil {
		return nil, err
	}
	ref, err := p.askRequired("Input reference (PRD id, ticket, description)")
	if err != nil {
		return nil, err
	}
	source, err := p.ask("Source", cfg.Source)
	if err != nil {
		return nil, err
	}
	duration, err := p.askOptionalFloat("Duration in minutes (blank if unknown)")
	if err != nil {
		return nil, err
	}
	model, err := p.ask("Model identifier", "")
	if err != nil {
		return nil, err
	}
	steps, err := p.ask("Pipeline steps executed (comma separated)", "ingest,build,audit,debug,ship")
	if err != nil {
		return nil, err
	}
	buildOK, err := p.askBool("Build success", true)
	if err != nil {
		return nil, err
	}
	testsPassed, err := p.askInt("Tests passed", 0)
	if err != nil {
		return nil, err
	}
	testsFailed, err := p.askInt("Tests failed", 0)
	if err != nil {
		return nil, err
	}
	lint, err := p.askInt("Lint errors", 0)
	if err != nil {
		return nil, err
	}
	typeErrs, err := p.askInt("Type errors", 0)
	if err != nil {
		return nil, err
	}
	diffLines, err := p.askInt("Diff size (lines)", 0)
	if err != nil {
		return nil, err
	}
	filesNew, err := p.askInt("Files created", 0)
	if err != nil {
		return nil, err
	}
	filesMod, err := p.askInt("Files modified", 0)
	if err != nil {
		return nil, err
	}
	manual, err := p.askBool("Manual intervention", false)
	if err != nil {
		return nil, err
	}
	manualWhy := ""
	if manual {
		manualWhy, err = p.askRequired("Manual intervention reason")
		if err != nil {
			return nil, err
		}
	}
	notes, err := p.ask("Notes", "")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &types.RunRecord{
		RunID:                    types.NewRunID(now),
		Source:                   source,
		InputType:                types.InputType(inputType),
		InputRef:                 ref,
		Timestamp:                now,
		DurationMinutes:          duration,
		LLMModel:                 model,
		PipelineSteps:            parseSteps(steps),
		BuildSuccess:             buildOK,
		TestsPassed:              testsPassed,
		TestsFailed:              testsFailed,
		LintErrors:               lint,
		TypeErrors:               typeErrs,
		DiffSizeLines:            diffLines,
		FilesCreated:             filesNew,
		FilesModified:            filesMod,
		ManualIntervention:       manual,
		ManualInterventionReason: manualWhy,
		Notes:                    notes,
	}
	return record, nil
}

func inputTypeNames() []string {
	var names []string
	for _, t := range types.InputTypes() {
		names = append(names, string(t))
	}
	return names
}

// prompter wraps a readline instance with typed single-field prompts.
type prompter struct {
	rl    *readline.Instance
	label func(a ...interface{}) string
}

func (p *prompter) ask(label, def string) (string, error) {
	prompt := fmt.Sprintf("%s: ", p.label(label))
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]: ", p.label(label), def)
	}
	p.rl.SetPrompt(prompt)
	line, err := p.rl.Readline()
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

func (p *prompter) askRequired(label string) (string, error) {
	for {
		v, err := p.ask(label, "")
		if err != nil {
			return "", err
		}
		if v != "" {
			return v, nil
		}
		fmt.Println("  required, please enter a value")
	}
}

func (p *prompter) askChoice(label string, options []string, def string) (string, error) {
	full := fmt.Sprintf("%s (%s)", label, strings.Join(options, "/"))
	for {
		v, err := p.ask(full, def)
		if err != nil {
			return "", err
		}
		v = strings.ToLower(v)
		for _, o := range options {
			if v == o {
				return v, nil
			}
		}
		fmt.Printf("  please choose one of: %s\n", strings.Join(options, ", "))
	}
}

func (p *prompter) askInt(label string, def int) (int, error) {
	for {
		v, err := p.ask(label, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(v)
		if convErr == nil && n >= 0 {
			return n, nil
		}
		fmt.Println("  please enter a non-negative integer")
	}
}

func (p *prompter) askOptionalFloat(label string) (*float64, error) {
	for {
		v, err := p.ask(label, "")
		if err != nil {
			return nil, err
		}
		if v == "" {
			return nil, nil
		}
		f, convErr := strconv.ParseFloat(v, 64)
		if convErr == nil && f >= 0 {
			return &f, nil
		}
		fmt.Println("  please enter a non-negative number or leave blank")
	}
}

func (p *prompter) askBool(label string, def bool) (bool, error) {
	defStr := "y"
	if !def {
		defStr = "n"
	}
	for {
		v, err := p.ask(label+" (y/n)", defStr)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(v) {
		case "y", "yes", "true":
			return true, nil
		case "n", "no", "false":
			return false, nil
		}
		fmt.Println("  please answer y or n")
	}
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().StringVar(&recordSource, "source", "", "source tag (default from config)")
	recordCmd.Flags().StringVar(&recordInputType, "input-type", "feature", "input type: prd, feature, bugfix, refactor, hotfix, other")
	recordCmd.Flags().StringVar(&recordRef, "ref", "", "input reference; setting this skips interactive prompts")
	recordCmd.Flags().Float64Var(&recordDuration, "duration", -1, "duration in minutes (omit if unknown)")
	recordCmd.Flags().StringVar(&recordModel, "model", "", "model identifier used by the pipeline")
	recordCmd.Flags().StringVar(&recordSteps, "steps", "", "comma-separated pipeline steps executed")
	recordCmd.Flags().BoolVar(&recordBuildOK, "build-success", false, "the build succeeded")
	recordCmd.Flags().IntVar(&recordTestsPass, "tests-passed", 0, "tests passed")
	recordCmd.Flags().IntVar(&recordTestsFail, "tests-failed", 0, "tests failed")
	recordCmd.Flags().IntVar(&recordLint, "lint-errors", 0, "lint errors")
	recordCmd.Flags().IntVar(&recordTypeErrs, "type-errors", 0, "type errors")
	recordCmd.Flags().IntVar(&recordDiffLines, "diff-lines", 0, "diff size in lines")
	recordCmd.Flags().IntVar(&recordFilesNew, "files-created", 0, "files created")
	recordCmd.Flags().IntVar(&recordFilesMod, "files-modified", 0, "files modified")
	recordCmd.Flags().BoolVar(&recordManual, "manual", false, "a human had to intervene")
	recordCmd.Flags().StringVar(&recordManualWhy, "manual-reason", "", "why intervention was needed")
	recordCmd.Flags().StringVar(&recordNotes, "notes", "", "free-form notes")
}
