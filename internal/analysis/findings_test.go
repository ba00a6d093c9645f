package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/observe/internal/metrics"
	"github.com/steveyegge/observe/internal/types"
)

func defaultSettings() Settings {
	return SettingsFrom(types.DefaultParameters())
}

// healthySummary meets every default target with room to spare.
func healthySummary() metrics.Summary {
	return metrics.Summary{
		RunCount:               10,
		Duration:               metrics.Distribution{Count: 10, Median: 20},
		BuildSuccessRate:       1.0,
		ManualInterventionRate: 0.0,
		AvgLintErrors:          2.0,
		AvgTypeErrors:          0.0,
	}
}

func stableTrend() metrics.TrendDelta {
	stable := metrics.TrendMeasure{Direction: types.TrendStable}
	return metrics.TrendDelta{Duration: stable, Reliability: stable, Hygiene: stable, Autonomy: stable}
}

func TestBuildFindingsEmptyWindow(t *testing.T) {
	findings := buildFindings(metrics.Summary{}, metrics.TrendDelta{}, defaultSettings())

	require.Len(t, findings, len(types.MetricKinds()))
	seen := make(map[types.MetricKind]bool)
	for _, f := range findings {
		assert.Equal(t, types.SeverityInfo, f.Severity)
		assert.Equal(t, types.TrendInsufficient, f.Trend)
		assert.Contains(t, f.Message, "No runs in window to judge")
		assert.Equal(t, 0.0, f.Observed)
		seen[f.Metric] = true
	}
	assert.Len(t, seen, len(types.MetricKinds()))

	// Targets still come from config so the empty report names them.
	for _, f := range findings {
		if f.Metric == types.MetricCycleTime {
			assert.Equal(t, 30.0, f.Target)
		}
	}
}

func TestBuildFindingsAllTargetsMet(t *testing.T) {
	findings := buildFindings(healthySummary(), stableTrend(), defaultSettings())

	require.Len(t, findings, len(types.MetricKinds()))
	for _, f := range findings {
		assert.Equal(t, types.SeverityInfo, f.Severity, "metric %s", f.Metric)
		assert.Empty(t, f.Detail)
	}
}

func TestBuildFindingsClassification(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(s *metrics.Summary)
		trend        func(d *metrics.TrendDelta)
		metric       types.MetricKind
		wantSeverity types.Severity
		wantMessage  string
	}{
		{
			name:         "cycle time far over target is critical",
			mutate:       func(s *metrics.Summary) { s.Duration.Median = 40 },
			metric:       types.MetricCycleTime,
			wantSeverity: types.SeverityCritical,
			wantMessage:  "Median cycle time 40.0 min exceeds target 30.0 min",
		},
		{
			name:         "cycle time slightly over target is warning",
			mutate:       func(s *metrics.Summary) { s.Duration.Median = 32 },
			metric:       types.MetricCycleTime,
			wantSeverity: types.SeverityWarning,
			wantMessage:  "Median cycle time 32.0 min exceeds target 30.0 min",
		},
		{
			name:         "build success below target is critical",
			mutate:       func(s *metrics.Summary) { s.BuildSuccessRate = 0.7 },
			metric:       types.MetricBuildSuccess,
			wantSeverity: types.SeverityCritical,
			wantMessage:  "Build success rate 70% below target 90%",
		},
		{
			name:         "build success just below target is warning",
			mutate:       func(s *metrics.Summary) { s.BuildSuccessRate = 0.85 },
			metric:       types.MetricBuildSuccess,
			wantSeverity: types.SeverityWarning,
			wantMessage:  "Build success rate 85% below target 90%",
		},
		{
			name:         "target met but degrading trend is warning",
			mutate:       func(s *metrics.Summary) { s.BuildSuccessRate = 0.95 },
			trend: func(d *metrics.TrendDelta) {
				d.Reliability = metrics.TrendMeasure{Delta: -0.05, Direction: types.TrendDegrading}
			},
			metric:       types.MetricBuildSuccess,
			wantSeverity: types.SeverityWarning,
			wantMessage:  "Build success rate 95% meets target 90%",
		},
		{
			name:         "manual rate far over target is critical",
			mutate:       func(s *metrics.Summary) { s.ManualInterventionRate = 0.25 },
			metric:       types.MetricManualRate,
			wantSeverity: types.SeverityCritical,
			wantMessage:  "Manual intervention rate 25% exceeds target 10%",
		},
		{
			name:         "lint errors slightly over budget is warning",
			mutate:       func(s *metrics.Summary) { s.AvgLintErrors = 5.4 },
			metric:       types.MetricLintErrors,
			wantSeverity: types.SeverityWarning,
			wantMessage:  "Lint errors averaging 5.4 per run exceed target 5",
		},
		{
			name:         "any type errors against a zero budget is critical",
			mutate:       func(s *metrics.Summary) { s.AvgTypeErrors = 0.5 },
			metric:       types.MetricTypeErrors,
			wantSeverity: types.SeverityCritical,
			wantMessage:  "Type errors averaging 0.5 per run exceed target 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := healthySummary()
			tt.mutate(&summary)
			trend := stableTrend()
			if tt.trend != nil {
				tt.trend(&trend)
			}

			findings := buildFindings(summary, trend, defaultSettings())

			var got *types.Finding
			for i := range findings {
				if findings[i].Metric == tt.metric {
					got = &findings[i]
				}
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantSeverity, got.Severity)
			assert.Equal(t, tt.wantMessage, got.Message)
		})
	}
}

func TestBuildFindingsTrendDetail(t *testing.T) {
	trend := stableTrend()
	trend.Duration = metrics.TrendMeasure{Delta: 0.6, Direction: types.TrendDegrading}
	summary := healthySummary()
	summary.Duration.Median = 40

	findings := buildFindings(summary, trend, defaultSettings())

	var cycle types.Finding
	for _, f := range findings {
		if f.Metric == types.MetricCycleTime {
			cycle = f
		}
	}
	assert.Equal(t, types.SeverityCritical, cycle.Severity)
	assert.Equal(t, "trend degrading vs previous window (delta +0.60)", cycle.Detail)
	assert.Equal(t, types.TrendDegrading, cycle.Trend)
}

func TestBuildFindingsSortsBySeverity(t *testing.T) {
	summary := healthySummary()
	summary.Duration.Median = 40          // critical
	summary.ManualInterventionRate = 0.15 // warning

	findings := buildFindings(summary, stableTrend(), defaultSettings())

	require.Len(t, findings, 5)
	assert.Equal(t, types.MetricCycleTime, findings[0].Metric)
	assert.Equal(t, types.SeverityCritical, findings[0].Severity)
	assert.Equal(t, types.MetricManualRate, findings[1].Metric)
	assert.Equal(t, types.SeverityWarning, findings[1].Severity)
	for _, f := range findings[2:] {
		assert.Equal(t, types.SeverityInfo, f.Severity)
	}
}
