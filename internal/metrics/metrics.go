// Package metrics turns an ordered window of run records into aggregate
// rates, duration statistics, and trend deltas against a prior window. All
// functions are pure: no storage access, no clock, defined for any input
// length including zero.
package metrics

import (
	"time"

	"github.com/steveyegge/observe/internal/types"
)

// coreSteps is the canonical pipeline whose coverage the step-completion
// rate measures. Auxiliary steps (code review, validation) do not count
// against completion.
var coreSteps = []types.PipelineStep{
	types.StepIngest,
	types.StepBuild,
	types.StepAudit,
	types.StepDebug,
	types.StepShip,
}

// Summary aggregates one window of run records. A Summary with RunCount 0
// means "no data": every rate is 0 and the duration distribution is empty,
// never NaN.
type Summary struct {
	RunCount  int        `json:"run_count"`
	FirstRun  *time.Time `json:"first_run,omitempty"`
	LastRun   *time.Time `json:"last_run,omitempty"`

	Duration Distribution `json:"duration_minutes"`

	BuildSuccessRate float64 `json:"build_success_rate"`

	TestsPassedTotal int     `json:"tests_passed_total"`
	TestsFailedTotal int     `json:"tests_failed_total"`
	TestPassRate     float64 `json:"test_pass_rate"`

	AvgLintErrors   float64 `json:"avg_lint_errors"`
	TotalLintErrors int     `json:"total_lint_errors"`
	AvgTypeErrors   float64 `json:"avg_type_errors"`
	TotalTypeErrors int     `json:"total_type_errors"`

	AvgDiffSize    float64 `json:"avg_diff_size_lines"`
	TotalDiffLines int     `json:"total_diff_lines"`

	ManualInterventionRate float64 `json:"manual_intervention_rate"`
	StepCompletionRate     float64 `json:"step_completion_rate"`
}

// HygieneErrorsPerRun is the combined mean of lint and type errors, the
// scalar the hygiene trend tracks.
func (s Summary) HygieneErrorsPerRun() float64 {
	return s.AvgLintErrors + s.AvgTypeErrors
}

// Compute aggregates a window of run records into a Summary. The input
// order does not affect any statistic except the first/last window bounds,
// which assume ascending timestamps as returned by the hub.
func Compute(records []*types.RunRecord) Summary {
	var s Summary
	s.RunCount = len(records)
	if s.RunCount == 0 {
		return s
	}

	first := records[0].Timestamp
	last := records[len(records)-1].Timestamp
	s.FirstRun = &first
	s.LastRun = &last

	var durations []float64
	var succeeded, intervened int
	var stepCoverage float64

	for _, r := range records {
		// Records without a measurable duration stay out of the
		// distribution rather than polluting it with zeros.
		if r.DurationMinutes != nil && *r.DurationMinutes > 0 {
			durations = append(durations, *r.DurationMinutes)
		}
		if r.BuildSuccess {
			succeeded++
		}
		if r.ManualIntervention {
			intervened++
		}
		s.TestsPassedTotal += r.TestsPassed
		s.TestsFailedTotal += r.TestsFailed
		s.TotalLintErrors += r.LintErrors
		s.TotalTypeErrors += r.TypeErrors
		s.TotalDiffLines += r.DiffSizeLines
		stepCoverage += coreStepCoverage(r.PipelineSteps)
	}

	n := float64(s.RunCount)
	s.Duration = computeDistribution(durations)
	s.BuildSuccessRate = float64(succeeded) / n
	s.ManualInterventionRate = float64(intervened) / n
	s.AvgLintErrors = float64(s.TotalLintErrors) / n
	s.AvgTypeErrors = float64(s.TotalTypeErrors) / n
	s.AvgDiffSize = float64(s.TotalDiffLines) / n
	s.StepCompletionRate = stepCoverage / n

	totalTests := s.TestsPassedTotal + s.TestsFailedTotal
	if totalTests > 0 {
		s.TestPassRate = float64(s.TestsPassedTotal) / float64(totalTests)
	}

	return s
}

// coreStepCoverage returns the fraction of the canonical pipeline the run
// executed.
func coreStepCoverage(steps []types.PipelineStep) float64 {
	if len(steps) == 0 {
		return 0
	}
	seen := make(map[types.PipelineStep]bool, len(steps))
	for _, s := range steps {
		seen[s] = true
	}
	covered := 0
	for _, s := range coreSteps {
		if seen[s] {
			covered++
		}
	}
	return float64(covered) / float64(len(coreSteps))
}
