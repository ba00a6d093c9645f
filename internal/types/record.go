package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RunRecord is one completed observation of an external pipeline execution.
// Records are immutable once persisted: corrections require a new record,
// never an update.
type RunRecord struct {
	RunID                    string         `json:"run_id"`
	Source                   string         `json:"source"`
	InputType                InputType      `json:"input_type"`
	InputRef                 string         `json:"input_ref"`
	Timestamp                time.Time      `json:"timestamp"`
	DurationMinutes          *float64       `json:"duration_minutes,omitempty"` // nil when elapsed time could not be determined
	LLMModel                 string         `json:"llm_model,omitempty"`
	PipelineSteps            []PipelineStep `json:"pipeline_steps_executed"`
	BuildSuccess             bool           `json:"build_success"`
	TestsPassed              int            `json:"tests_passed"`
	TestsFailed              int            `json:"tests_failed"`
	LintErrors               int            `json:"lint_errors"`
	TypeErrors               int            `json:"type_errors"`
	DiffSizeLines            int            `json:"diff_size_lines"`
	FilesCreated             int            `json:"files_created"`
	FilesModified            int            `json:"files_modified"`
	ManualIntervention       bool           `json:"manual_intervention"`
	ManualInterventionReason string         `json:"manual_intervention_reason,omitempty"`
	Notes                    string         `json:"notes,omitempty"`
}

// Validate checks every field constraint and reports all violations at once,
// so a caller fixing bad input sees the full list rather than one issue per
// attempt. Returns nil or a *ValidationError.
func (r *RunRecord) Validate() error {
	var issues []string

	if strings.TrimSpace(r.RunID) == "" {
		issues = append(issues, "run_id is required")
	}
	if strings.TrimSpace(r.Source) == "" {
		issues = append(issues, "source is required")
	}
	if !r.InputType.IsValid() {
		issues = append(issues, fmt.Sprintf("invalid input_type: %q", r.InputType))
	}
	if strings.TrimSpace(r.InputRef) == "" {
		issues = append(issues, "input_ref is required")
	}
	if r.Timestamp.IsZero() {
		issues = append(issues, "timestamp is required")
	}
	if r.DurationMinutes != nil && *r.DurationMinutes < 0 {
		issues = append(issues, fmt.Sprintf("duration_minutes cannot be negative (got %.2f)", *r.DurationMinutes))
	}
	for _, step := range r.PipelineSteps {
		if !step.IsValid() {
			issues = append(issues, fmt.Sprintf("invalid pipeline step: %q", step))
		}
	}
	counts := []struct {
		name  string
		value int
	}{
		{"tests_passed", r.TestsPassed},
		{"tests_failed", r.TestsFailed},
		{"lint_errors", r.LintErrors},
		{"type_errors", r.TypeErrors},
		{"diff_size_lines", r.DiffSizeLines},
		{"files_created", r.FilesCreated},
		{"files_modified", r.FilesModified},
	}
	for _, c := range counts {
		if c.value < 0 {
			issues = append(issues, fmt.Sprintf("%s cannot be negative (got %d)", c.name, c.value))
		}
	}
	if !r.ManualIntervention && r.ManualInterventionReason != "" {
		issues = append(issues, "manual_intervention_reason set but manual_intervention is false")
	}

	if len(issues) > 0 {
		return &ValidationError{Entity: "run record", Issues: issues}
	}
	return nil
}

// InputType categorizes what kind of work the pipeline was given.
type InputType string

const (
	InputPRD      InputType = "prd"
	InputFeature  InputType = "feature"
	InputBugfix   InputType = "bugfix"
	InputRefactor InputType = "refactor"
	InputHotfix   InputType = "hotfix"
	InputOther    InputType = "other"
)

// IsValid checks if the input type value is valid
func (t InputType) IsValid() bool {
	switch t {
	case InputPRD, InputFeature, InputBugfix, InputRefactor, InputHotfix, InputOther:
		return true
	}
	return false
}

// InputTypes returns all valid input types in display order.
func InputTypes() []InputType {
	return []InputType{InputPRD, InputFeature, InputBugfix, InputRefactor, InputHotfix, InputOther}
}

// PipelineStep names one stage of the observed pipeline.
type PipelineStep string

const (
	StepIngest      PipelineStep = "ingest"
	StepBuild       PipelineStep = "build"
	StepAudit       PipelineStep = "audit"
	StepDebug       PipelineStep = "debug"
	StepShip        PipelineStep = "ship"
	StepCodeReview  PipelineStep = "code_review"
	StepValidation  PipelineStep = "validation"
	StepCursorAudit PipelineStep = "cursor_audit"
)

// IsValid checks if the pipeline step value is valid
func (s PipelineStep) IsValid() bool {
	switch s {
	case StepIngest, StepBuild, StepAudit, StepDebug, StepShip, StepCodeReview, StepValidation, StepCursorAudit:
		return true
	}
	return false
}

// NewRunID generates a run identifier of the form YYYY-MM-DD-<6 hex chars>.
// The date prefix keeps directory listings in rough chronological order; the
// random suffix disambiguates runs recorded the same day.
func NewRunID(t time.Time) string {
	return fmt.Sprintf("%s-%s", t.Format("2006-01-02"), ShortHex(6))
}

// ShortHex returns n random hex characters, suitable as an identifier
// suffix.
func ShortHex(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	return s[:n]
}
