package types

// Severity classifies how urgently a finding needs attention.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// IsValid checks if the severity value is valid
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// Rank orders severities for sorting: critical first, info last.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// AtLeastWarning reports whether the severity is warning or critical. The
// proposal rule table only fires on findings at this level.
func (s Severity) AtLeastWarning() bool {
	return s == SeverityCritical || s == SeverityWarning
}

// MetricKind identifies which configured target a finding judges. The
// analysis agent emits exactly one finding per kind per pass, and the
// proposal rule table dispatches exhaustively over these variants.
type MetricKind string

const (
	MetricBuildSuccess MetricKind = "build_success_rate"
	MetricCycleTime    MetricKind = "median_cycle_time"
	MetricManualRate   MetricKind = "manual_intervention_rate"
	MetricLintErrors   MetricKind = "lint_errors"
	MetricTypeErrors   MetricKind = "type_errors"
)

// MetricKinds returns all tracked metric kinds in report order.
func MetricKinds() []MetricKind {
	return []MetricKind{MetricBuildSuccess, MetricCycleTime, MetricManualRate, MetricLintErrors, MetricTypeErrors}
}

// IsValid checks if the metric kind value is valid
func (m MetricKind) IsValid() bool {
	switch m {
	case MetricBuildSuccess, MetricCycleTime, MetricManualRate, MetricLintErrors, MetricTypeErrors:
		return true
	}
	return false
}

// TrendDirection describes how a metric moved between the previous and
// current analysis windows.
type TrendDirection string

const (
	TrendImproving    TrendDirection = "improving"
	TrendStable       TrendDirection = "stable"
	TrendDegrading    TrendDirection = "degrading"
	TrendInsufficient TrendDirection = "insufficient_data"
)

// Finding is one severity-classified comparison of an observed metric
// against its configured target. Findings live inside the report and the
// proposal that consumed them; they are not stored on their own.
type Finding struct {
	Severity Severity       `json:"severity"`
	Metric   MetricKind     `json:"metric"`
	Category string         `json:"category"`
	Message  string         `json:"message"`
	Detail   string         `json:"detail,omitempty"`
	Observed float64        `json:"observed"`
	Target   float64        `json:"target"`
	Trend    TrendDirection `json:"trend,omitempty"`
}
