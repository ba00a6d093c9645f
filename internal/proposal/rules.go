package proposal

import (
	"math"

	"github.com/steveyegge/observe/internal/types"
)

// The rule table. Each finding kind maps to exactly one parameter
// adjustment, applied when that finding is present at warning-or-worse
// severity; the trend rule fires once when any critical finding carries a
// degrading trend. Adding a metric kind without extending adjustFor is a
// compile-visible gap here, not a silent string-lookup miss.

const (
	// maxWindowSize caps how far the trend rule can widen the analysis
	// window.
	maxWindowSize = 30

	// minBuildSuccessTarget floors how far the build success target can be
	// relaxed.
	minBuildSuccessTarget = 0.50
)

// adjustFor returns the parameter diff for a single warning-or-worse
// finding, or nil when the finding's kind has no adjustment rule.
func adjustFor(f types.Finding, ps *types.ParameterSet) *types.ParameterDiff {
	switch f.Metric {
	case types.MetricCycleTime:
		old := ps.Targets.MedianCycleTimeMinutes
		return &types.ParameterDiff{
			Path:     types.ParamMedianCycleTimeMinutes,
			OldValue: old,
			NewValue: round1(old * 1.10),
			Reason:   "cycle time consistently exceeds target; relaxing by 10%",
		}
	case types.MetricBuildSuccess:
		old := ps.Targets.BuildSuccessRate
		return &types.ParameterDiff{
			Path:     types.ParamBuildSuccessRate,
			OldValue: old,
			NewValue: math.Max(round2(old-0.05), minBuildSuccessTarget),
			Reason:   "build success rate below target; lowering expectation toward observed reliability",
		}
	case types.MetricLintErrors:
		old := ps.Targets.MaxLintErrors
		return &types.ParameterDiff{
			Path:     types.ParamMaxLintErrors,
			OldValue: old,
			NewValue: old + 2,
			Reason:   "lint errors exceed budget; raising allowance while hygiene recovers",
		}
	case types.MetricTypeErrors:
		old := ps.Targets.MaxTypeErrors
		return &types.ParameterDiff{
			Path:     types.ParamMaxTypeErrors,
			OldValue: old,
			NewValue: old + 1,
			Reason:   "type errors exceed budget; raising allowance while hygiene recovers",
		}
	case types.MetricManualRate:
		old := ps.Targets.ManualInterventionRate
		return &types.ParameterDiff{
			Path:     types.ParamManualInterventionRate,
			OldValue: old,
			NewValue: math.Min(round2(old+0.05), 1.00),
			Reason:   "manual intervention rate exceeds target; acknowledging current autonomy level",
		}
	}
	return nil
}

// widenWindow is the trend rule: a critical finding with a degrading trend
// widens the analysis window so the next pass judges a larger sample.
func widenWindow(ps *types.ParameterSet) *types.ParameterDiff {
	old := ps.Observer.AnalysisWindowSize
	widened := old + 5
	if widened > maxWindowSize {
		widened = maxWindowSize
	}
	if widened == old {
		return nil
	}
	return &types.ParameterDiff{
		Path:     types.ParamAnalysisWindowSize,
		OldValue: float64(old),
		NewValue: float64(widened),
		Reason:   "critical degrading trend; widening analysis window for a steadier signal",
	}
}

// applyRules runs the rule table over one analysis pass's findings. At most
// one diff is produced per parameter path; the first rule to claim a path
// wins.
func applyRules(findings []types.Finding, ps *types.ParameterSet) []types.ParameterDiff {
	var diffs []types.ParameterDiff
	seen := make(map[string]bool)

	add := func(d *types.ParameterDiff) {
		if d == nil || seen[d.Path] {
			return
		}
		seen[d.Path] = true
		diffs = append(diffs, *d)
	}

	for _, f := range findings {
		if !f.Severity.AtLeastWarning() {
			continue
		}
		add(adjustFor(f, ps))
	}
	for _, f := range findings {
		if f.Severity == types.SeverityCritical && f.Trend == types.TrendDegrading {
			add(widenWindow(ps))
			break
		}
	}
	return diffs
}

// computeImpact classifies a proposal's scope: any critical finding makes
// it high regardless of change count, more than two changes make it medium,
// anything else is low.
func computeImpact(findings []types.Finding, diffCount int) types.ImpactLevel {
	for _, f := range findings {
		if f.Severity == types.SeverityCritical {
			return types.ImpactHigh
		}
	}
	if diffCount > 2 {
		return types.ImpactMedium
	}
	return types.ImpactLow
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
