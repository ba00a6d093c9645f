package types

import (
	"fmt"
	"time"
)

// Parameter paths addressable by proposal diffs. Every tunable the rule
// table can touch has exactly one path; Value and SetValue dispatch over
// this set exhaustively so an unknown path is a hard error, not a silent
// dictionary write.
const (
	ParamAnalysisWindowSize     = "observer.analysis_window_size"
	ParamTrendThreshold         = "observer.trend_threshold"
	ParamMedianCycleTimeMinutes = "targets.median_cycle_time_minutes"
	ParamBuildSuccessRate       = "targets.build_success_rate"
	ParamManualInterventionRate = "targets.manual_intervention_rate"
	ParamMaxLintErrors          = "targets.max_lint_errors"
	ParamMaxTypeErrors          = "targets.max_type_errors"
)

// ParameterSet is a versioned, immutable snapshot of operating thresholds.
// A new version is written per approved proposal; existing versions are
// never edited.
type ParameterSet struct {
	Version             string           `json:"version"`
	Description         string           `json:"description,omitempty"`
	Created             *time.Time       `json:"created,omitempty"`
	AppliedFromProposal string           `json:"applied_from_proposal,omitempty"`
	Observer            ObserverSettings `json:"observer"`
	Targets             TargetSettings   `json:"targets"`
}

// ObserverSettings holds tunables of the analysis pass itself.
type ObserverSettings struct {
	AnalysisWindowSize int     `json:"analysis_window_size"`
	TrendThreshold     float64 `json:"trend_threshold"`
}

// TargetSettings holds the thresholds observed metrics are judged against.
type TargetSettings struct {
	MedianCycleTimeMinutes float64 `json:"median_cycle_time_minutes"`
	BuildSuccessRate       float64 `json:"build_success_rate"`
	ManualInterventionRate float64 `json:"manual_intervention_rate"`
	MaxLintErrors          float64 `json:"max_lint_errors"`
	MaxTypeErrors          float64 `json:"max_type_errors"`
}

// DefaultParameters returns the documented defaults used when no Parameter
// Config exists yet. Absence of a config on disk is not an error.
func DefaultParameters() ParameterSet {
	return ParameterSet{
		Version:     "v0.1.0",
		Description: "Default observer parameters",
		Observer: ObserverSettings{
			AnalysisWindowSize: 10,
			TrendThreshold:     0.1,
		},
		Targets: TargetSettings{
			MedianCycleTimeMinutes: 30.0,
			BuildSuccessRate:       0.9,
			ManualInterventionRate: 0.1,
			MaxLintErrors:          5,
			MaxTypeErrors:          0,
		},
	}
}

// Validate checks structural constraints on a parameter set.
func (p *ParameterSet) Validate() error {
	var issues []string
	if p.Version == "" {
		issues = append(issues, "version is required")
	}
	if p.Observer.AnalysisWindowSize <= 0 {
		issues = append(issues, fmt.Sprintf("observer.analysis_window_size must be positive (got %d)", p.Observer.AnalysisWindowSize))
	}
	if p.Observer.TrendThreshold < 0 {
		issues = append(issues, fmt.Sprintf("observer.trend_threshold cannot be negative (got %g)", p.Observer.TrendThreshold))
	}
	if p.Targets.BuildSuccessRate < 0 || p.Targets.BuildSuccessRate > 1 {
		issues = append(issues, fmt.Sprintf("targets.build_success_rate must be in [0,1] (got %g)", p.Targets.BuildSuccessRate))
	}
	if p.Targets.ManualInterventionRate < 0 || p.Targets.ManualInterventionRate > 1 {
		issues = append(issues, fmt.Sprintf("targets.manual_intervention_rate must be in [0,1] (got %g)", p.Targets.ManualInterventionRate))
	}
	if p.Targets.MedianCycleTimeMinutes < 0 {
		issues = append(issues, "targets.median_cycle_time_minutes cannot be negative")
	}
	if p.Targets.MaxLintErrors < 0 || p.Targets.MaxTypeErrors < 0 {
		issues = append(issues, "hygiene targets cannot be negative")
	}
	if len(issues) > 0 {
		return &ValidationError{Entity: "parameter set", Issues: issues}
	}
	return nil
}

// Value returns the tunable addressed by path. All tunables are numeric;
// integer settings are returned as their float value.
func (p *ParameterSet) Value(path string) (float64, error) {
	switch path {
	case ParamAnalysisWindowSize:
		return float64(p.Observer.AnalysisWindowSize), nil
	case ParamTrendThreshold:
		return p.Observer.TrendThreshold, nil
	case ParamMedianCycleTimeMinutes:
		return p.Targets.MedianCycleTimeMinutes, nil
	case ParamBuildSuccessRate:
		return p.Targets.BuildSuccessRate, nil
	case ParamManualInterventionRate:
		return p.Targets.ManualInterventionRate, nil
	case ParamMaxLintErrors:
		return p.Targets.MaxLintErrors, nil
	case ParamMaxTypeErrors:
		return p.Targets.MaxTypeErrors, nil
	}
	return 0, &ValidationError{Entity: "parameter path", Issues: []string{fmt.Sprintf("unknown parameter path: %q", path)}}
}

// SetValue assigns the tunable addressed by path. Integer settings are
// truncated from the float value.
func (p *ParameterSet) SetValue(path string, v float64) error {
	switch path {
	case ParamAnalysisWindowSize:
		p.Observer.AnalysisWindowSize = int(v)
	case ParamTrendThreshold:
		p.Observer.TrendThreshold = v
	case ParamMedianCycleTimeMinutes:
		p.Targets.MedianCycleTimeMinutes = v
	case ParamBuildSuccessRate:
		p.Targets.BuildSuccessRate = v
	case ParamManualInterventionRate:
		p.Targets.ManualInterventionRate = v
	case ParamMaxLintErrors:
		p.Targets.MaxLintErrors = v
	case ParamMaxTypeErrors:
		p.Targets.MaxTypeErrors = v
	default:
		return &ValidationError{Entity: "parameter path", Issues: []string{fmt.Sprintf("unknown parameter path: %q", path)}}
	}
	return nil
}
