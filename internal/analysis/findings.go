package analysis

import (
	"fmt"
	"sort"

	"github.com/steveyegge/observe/internal/metrics"
	"github.com/steveyegge/observe/internal/types"
)

// categoryFor groups findings the way the report presents them.
func categoryFor(kind types.MetricKind) string {
	switch kind {
	case types.MetricBuildSuccess:
		return "reliability"
	case types.MetricCycleTime:
		return "duration"
	case types.MetricManualRate:
		return "autonomy"
	default:
		return "hygiene"
	}
}

// buildFindings classifies the current window against every configured
// target, emitting exactly one finding per target:
//
//   - critical: the unfavorable miss exceeds the trend threshold
//   - warning: any unfavorable miss, or target met but the trend for that
//     dimension is degrading beyond the threshold
//   - info: target met and not degrading
//
// Misses on rate targets compare absolutely; duration and hygiene misses
// compare relative to the target (absolute when the target is zero, as with
// the default type-error budget).
func buildFindings(current metrics.Summary, trend metrics.TrendDelta, s Settings) []types.Finding {
	findings := make([]types.Finding, 0, len(types.MetricKinds()))

	if current.RunCount == 0 {
		// Nothing observed: report per-target info findings rather than
		// judging zeros against real targets.
		for _, kind := range types.MetricKinds() {
			findings = append(findings, types.Finding{
				Severity: types.SeverityInfo,
				Metric:   kind,
				Category: categoryFor(kind),
				Message:  fmt.Sprintf("No runs in window to judge %s", kind),
				Target:   s.Target(kind),
				Trend:    types.TrendInsufficient,
			})
		}
		return findings
	}

	for _, kind := range types.MetricKinds() {
		findings = append(findings, classifyTarget(kind, current, trend, s))
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity.Rank() < findings[j].Severity.Rank()
	})
	return findings
}

func classifyTarget(kind types.MetricKind, current metrics.Summary, trend metrics.TrendDelta, s Settings) types.Finding {
	target := s.Target(kind)
	var observed, margin float64

	switch kind {
	case types.MetricBuildSuccess:
		observed = current.BuildSuccessRate
		margin = target - observed
	case types.MetricManualRate:
		observed = current.ManualInterventionRate
		margin = observed - target
	case types.MetricCycleTime:
		observed = current.Duration.Median
		margin = relativeMiss(observed, target)
	case types.MetricLintErrors:
		observed = current.AvgLintErrors
		margin = relativeMiss(observed, target)
	case types.MetricTypeErrors:
		observed = current.AvgTypeErrors
		margin = relativeMiss(observed, target)
	}

	dim := trend.TrendFor(kind)
	severity := types.SeverityInfo
	switch {
	case margin > s.TrendThreshold:
		severity = types.SeverityCritical
	case margin > 0:
		severity = types.SeverityWarning
	case dim.Direction == types.TrendDegrading:
		severity = types.SeverityWarning
	}

	f := types.Finding{
		Severity: severity,
		Metric:   kind,
		Category: categoryFor(kind),
		Observed: observed,
		Target:   target,
		Trend:    dim.Direction,
	}
	f.Message = messageFor(kind, severity, observed, target)
	if dim.Direction == types.TrendDegrading || dim.Direction == types.TrendImproving {
		f.Detail = fmt.Sprintf("trend %s vs previous window (delta %+.2f)", dim.Direction, dim.Delta)
	}
	return f
}

// relativeMiss measures how far observed overshoots target, scaled by the
// target. A zero target degrades to the raw overshoot so a zero-budget
// metric (type errors by default) still classifies.
func relativeMiss(observed, target float64) float64 {
	if observed <= target {
		return observed - target // favorable or exact; non-positive
	}
	if target > 0 {
		return (observed - target) / target
	}
	return observed
}

func messageFor(kind types.MetricKind, severity types.Severity, observed, target float64) string {
	switch kind {
	case types.MetricBuildSuccess:
		if observed < target {
			return fmt.Sprintf("Build success rate %.0f%% below target %.0f%%", observed*100, target*100)
		}
		return fmt.Sprintf("Build success rate %.0f%% meets target %.0f%%", observed*100, target*100)
	case types.MetricCycleTime:
		if observed > target {
			return fmt.Sprintf("Median cycle time %.1f min exceeds target %.1f min", observed, target)
		}
		return fmt.Sprintf("Median cycle time %.1f min within target %.1f min", observed, target)
	case types.MetricManualRate:
		if observed > target {
			return fmt.Sprintf("Manual intervention rate %.0f%% exceeds target %.0f%%", observed*100, target*100)
		}
		return fmt.Sprintf("Manual intervention rate %.0f%% within target %.0f%%", observed*100, target*100)
	case types.MetricLintErrors:
		if observed > target {
			return fmt.Sprintf("Lint errors averaging %.1f per run exceed target %.0f", observed, target)
		}
		return fmt.Sprintf("Lint errors averaging %.1f per run within target %.0f", observed, target)
	case types.MetricTypeErrors:
		if observed > target {
			return fmt.Sprintf("Type errors averaging %.1f per run exceed target %.0f", observed, target)
		}
		return fmt.Sprintf("Type errors averaging %.1f per run within target %.0f", observed, target)
	}
	return fmt.Sprintf("%s: observed %.2f target %.2f (%s)", kind, observed, target, severity)
}
