package verdict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/observe/internal/types"
)

func cleanRun(mutate func(r *types.RunRecord)) *types.RunRecord {
	d := 22.0
	r := &types.RunRecord{
		RunID:           "2026-08-14-aaaaaa",
		Source:          "founder-pm",
		InputType:       types.InputFeature,
		InputRef:        "PRD-3",
		Timestamp:       time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC),
		DurationMinutes: &d,
		PipelineSteps:   []types.PipelineStep{types.StepIngest, types.StepBuild, types.StepShip},
		BuildSuccess:    true,
		TestsPassed:     14,
	}
	if mutate != nil {
		mutate(r)
	}
	return r
}

func checkByID(t *testing.T, v Verdict, id CheckID) CheckResult {
	t.Helper()
	for _, c := range v.Checks {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("no check %s in verdict", id)
	return CheckResult{}
}

func TestEvaluatePass(t *testing.T) {
	v := Evaluate(cleanRun(nil))

	assert.Equal(t, OutcomePass, v.Outcome)
	assert.Equal(t, "2026-08-14-aaaaaa", v.RunID)
	assert.Len(t, v.Checks, 4)
	assert.Empty(t, v.FixHints)
	assert.Empty(t, v.FailureSignature)
	assert.False(t, v.RetryEligible)
	for _, c := range v.Checks {
		assert.True(t, c.Passed, "check %s", c.ID)
		assert.NotEmpty(t, c.Detail)
	}
}

func TestEvaluateAdvisoryOnlyWarns(t *testing.T) {
	v := Evaluate(cleanRun(func(r *types.RunRecord) { r.LintErrors = 3 }))

	assert.Equal(t, OutcomeWarn, v.Outcome)
	assert.Empty(t, v.FailureSignature, "advisory failures carry no signature")
	assert.False(t, v.RetryEligible)

	lint := checkByID(t, v, CheckLintClean)
	assert.False(t, lint.Passed)
	assert.Equal(t, SeverityAdvisory, lint.Severity)
	assert.Equal(t, "3 lint error(s)", lint.Detail)
	require.Len(t, v.FixHints, 1)
	assert.Contains(t, v.FixHints[0], "lint_clean:")
}

func TestEvaluateBlockingFailure(t *testing.T) {
	v := Evaluate(cleanRun(func(r *types.RunRecord) { r.BuildSuccess = false }))

	assert.Equal(t, OutcomeFail, v.Outcome)
	assert.NotEmpty(t, v.FailureSignature)
	assert.True(t, v.RetryEligible, "unattended failure may clear on retry")

	build := checkByID(t, v, CheckBuildSuccess)
	assert.False(t, build.Passed)
	assert.Equal(t, SeverityBlocking, build.Severity)
	assert.Equal(t, "build failed", build.Detail)
}

func TestEvaluateManualInterventionBlocksRetry(t *testing.T) {
	v := Evaluate(cleanRun(func(r *types.RunRecord) {
		r.BuildSuccess = false
		r.ManualIntervention = true
		r.ManualInterventionReason = "hand-patched the build script"
	}))

	assert.Equal(t, OutcomeFail, v.Outcome)
	assert.False(t, v.RetryEligible, "a run that needed a human will not clear on its own")
}

func TestEvaluateReportsEveryFailure(t *testing.T) {
	v := Evaluate(cleanRun(func(r *types.RunRecord) {
		r.BuildSuccess = false
		r.TestsFailed = 2
		r.TypeErrors = 1
		r.LintErrors = 4
	}))

	assert.Equal(t, OutcomeFail, v.Outcome)
	require.Len(t, v.Checks, 4, "failed blocking checks never short-circuit the rest")
	for _, c := range v.Checks {
		assert.False(t, c.Passed, "check %s", c.ID)
	}
	assert.Len(t, v.FixHints, 4)
}

func TestEvaluateBlockingOutranksAdvisory(t *testing.T) {
	v := Evaluate(cleanRun(func(r *types.RunRecord) {
		r.TestsFailed = 1
		r.LintErrors = 9
	}))

	assert.Equal(t, OutcomeFail, v.Outcome, "warn never masks a blocking failure")
}

func TestFailureSignatureGroupsByFailedChecks(t *testing.T) {
	buildOnly := Evaluate(cleanRun(func(r *types.RunRecord) { r.BuildSuccess = false }))
	buildAgain := Evaluate(cleanRun(func(r *types.RunRecord) {
		r.BuildSuccess = false
		r.RunID = "2026-08-15-bbbbbb"
		r.LintErrors = 7 // advisory noise must not change the signature
	}))
	testsOnly := Evaluate(cleanRun(func(r *types.RunRecord) { r.TestsFailed = 3 }))

	assert.Equal(t, buildOnly.FailureSignature, buildAgain.FailureSignature,
		"same blocking failure shape, same signature")
	assert.NotEqual(t, buildOnly.FailureSignature, testsOnly.FailureSignature,
		"different blocking failure shape, different signature")
	assert.Len(t, buildOnly.FailureSignature, 16)
}
