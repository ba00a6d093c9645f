package analysis

import "github.com/steveyegge/observe/internal/types"

// Settings are the effective thresholds for one analysis pass, resolved
// from the latest parameter config with an optional CLI window override
// applied on top.
type Settings struct {
	WindowSize     int
	TrendThreshold float64

	TargetMedianCycleTime  float64
	TargetBuildSuccessRate float64
	TargetManualRate       float64
	MaxLintErrors          float64
	MaxTypeErrors          float64
}

// SettingsFrom extracts analysis settings from a parameter config.
func SettingsFrom(ps types.ParameterSet) Settings {
	return Settings{
		WindowSize:             ps.Observer.AnalysisWindowSize,
		TrendThreshold:         ps.Observer.TrendThreshold,
		TargetMedianCycleTime:  ps.Targets.MedianCycleTimeMinutes,
		TargetBuildSuccessRate: ps.Targets.BuildSuccessRate,
		TargetManualRate:       ps.Targets.ManualInterventionRate,
		MaxLintErrors:          ps.Targets.MaxLintErrors,
		MaxTypeErrors:          ps.Targets.MaxTypeErrors,
	}
}

// Target returns the configured target value for a metric kind.
func (s Settings) Target(kind types.MetricKind) float64 {
	switch kind {
	case types.MetricBuildSuccess:
		return s.TargetBuildSuccessRate
	case types.MetricCycleTime:
		return s.TargetMedianCycleTime
	case types.MetricManualRate:
		return s.TargetManualRate
	case types.MetricLintErrors:
		return s.MaxLintErrors
	case types.MetricTypeErrors:
		return s.MaxTypeErrors
	}
	return 0
}
