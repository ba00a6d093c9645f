package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/steveyegge/observe/internal/metrics"
	"github.com/steveyegge/observe/internal/types"
)

// reportInput bundles everything the renderer needs; rendering is pure so
// it can be tested without storage.
type reportInput struct {
	GeneratedAt time.Time
	Settings    Settings
	Current     metrics.Summary
	Previous    metrics.Summary
	Trend       metrics.TrendDelta
	Findings    []types.Finding
	Records     []*types.RunRecord // current window, ascending
}

// renderReport produces the markdown analysis report: window bounds,
// findings ordered critical→warning→info, the metrics-vs-targets table,
// trends, duration distribution, test health, and the most recent runs.
func renderReport(in reportInput) []byte {
	var sb strings.Builder

	sb.WriteString("# Pipeline Analysis Report\n\n")
	fmt.Fprintf(&sb, "**Generated:** %s\n", in.GeneratedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&sb, "**Window:** %d run(s)", in.Current.RunCount)
	if in.Current.FirstRun != nil && in.Current.LastRun != nil {
		fmt.Fprintf(&sb, " from %s to %s",
			in.Current.FirstRun.UTC().Format("2006-01-02 15:04"),
			in.Current.LastRun.UTC().Format("2006-01-02 15:04"))
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "**Previous window:** %d run(s)\n\n", in.Previous.RunCount)

	writeFindings(&sb, in.Findings)
	writeTargetTable(&sb, in.Current, in.Settings)
	writeTrends(&sb, in.Previous, in.Trend)

	if in.Current.RunCount > 0 {
		writeDurations(&sb, in.Current.Duration)
		writeTestHealth(&sb, in.Current)
		writeRunRows(&sb, in.Records)
	}

	return []byte(sb.String())
}

func writeFindings(sb *strings.Builder, findings []types.Finding) {
	sb.WriteString("## Findings\n\n")
	if len(findings) == 0 {
		sb.WriteString("No findings.\n\n")
		return
	}
	marker := map[types.Severity]string{
		types.SeverityCritical: "🔴",
		types.SeverityWarning:  "🟡",
		types.SeverityInfo:     "🟢",
	}
	for _, f := range findings {
		fmt.Fprintf(sb, "- %s **%s** [%s] %s", marker[f.Severity], strings.ToUpper(string(f.Severity)), f.Category, f.Message)
		if f.Detail != "" {
			fmt.Fprintf(sb, " (%s)", f.Detail)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

func writeTargetTable(sb *strings.Builder, s metrics.Summary, set Settings) {
	sb.WriteString("## Metrics vs Targets\n\n")
	sb.WriteString("| Metric | Observed | Target | Status |\n")
	sb.WriteString("|---|---|---|---|\n")

	row := func(name, observed, target string, miss bool) {
		status := "ok"
		if miss {
			status = "MISS"
		}
		fmt.Fprintf(sb, "| %s | %s | %s | %s |\n", name, observed, target, status)
	}

	row("Build success rate",
		fmt.Sprintf("%.0f%%", s.BuildSuccessRate*100),
		fmt.Sprintf("≥ %.0f%%", set.TargetBuildSuccessRate*100),
		s.BuildSuccessRate < set.TargetBuildSuccessRate)
	row("Median cycle time",
		fmt.Sprintf("%.1f min", s.Duration.Median),
		fmt.Sprintf("≤ %.1f min", set.TargetMedianCycleTime),
		s.Duration.Median > set.TargetMedianCycleTime)
	row("Manual intervention",
		fmt.Sprintf("%.0f%%", s.ManualInterventionRate*100),
		fmt.Sprintf("≤ %.0f%%", set.TargetManualRate*100),
		s.ManualInterventionRate > set.TargetManualRate)
	row("Lint errors / run",
		fmt.Sprintf("%.1f", s.AvgLintErrors),
		fmt.Sprintf("≤ %.0f", set.MaxLintErrors),
		s.AvgLintErrors > set.MaxLintErrors)
	row("Type errors / run",
		fmt.Sprintf("%.1f", s.AvgTypeErrors),
		fmt.Sprintf("≤ %.0f", set.MaxTypeErrors),
		s.AvgTypeErrors > set.MaxTypeErrors)
	sb.WriteString("\n")
}

func writeTrends(sb *strings.Builder, previous metrics.Summary, t metrics.TrendDelta) {
	sb.WriteString("## Trends vs Previous Window\n\n")
	if previous.RunCount == 0 {
		sb.WriteString("Insufficient data: no previous window to compare against.\n\n")
		return
	}
	sb.WriteString("| Dimension | Delta | Direction |\n")
	sb.WriteString("|---|---|---|\n")
	dims := []struct {
		name    string
		m       metrics.TrendMeasure
		percent bool
	}{
		{"Duration", t.Duration, true},
		{"Reliability", t.Reliability, false},
		{"Hygiene", t.Hygiene, true},
		{"Autonomy", t.Autonomy, false},
	}
	for _, d := range dims {
		delta := fmt.Sprintf("%+.2f", d.m.Delta)
		if d.percent {
			delta = fmt.Sprintf("%+.0f%%", d.m.Delta*100)
		}
		if d.m.Direction == types.TrendInsufficient {
			delta = "–"
		}
		fmt.Fprintf(sb, "| %s | %s | %s |\n", d.name, delta, d.m.Direction)
	}
	sb.WriteString("\n")
}

func writeDurations(sb *strings.Builder, d metrics.Distribution) {
	sb.WriteString("## Duration Distribution\n\n")
	if d.Count == 0 {
		sb.WriteString("No runs with a measured duration.\n\n")
		return
	}
	fmt.Fprintf(sb, "%d run(s) with measured duration: mean %.1f, median %.1f, p95 %.1f, min %.1f, max %.1f, stddev %.1f (minutes)\n\n",
		d.Count, d.Mean, d.Median, d.P95, d.Min, d.Max, d.StdDev)
}

func writeTestHealth(sb *strings.Builder, s metrics.Summary) {
	sb.WriteString("## Test Health\n\n")
	total := s.TestsPassedTotal + s.TestsFailedTotal
	if total == 0 {
		sb.WriteString("No test results recorded in this window.\n\n")
		return
	}
	fmt.Fprintf(sb, "%d passed / %d failed (%.0f%% pass rate)\n\n",
		s.TestsPassedTotal, s.TestsFailedTotal, s.TestPassRate*100)
}

func writeRunRows(sb *strings.Builder, records []*types.RunRecord) {
	sb.WriteString("## Runs in Window\n\n")
	sb.WriteString("| Run | When | Duration | Build | Tests | Lint | Type | Manual |\n")
	sb.WriteString("|---|---|---|---|---|---|---|---|\n")

	// Newest first, capped so the report stays readable on big windows.
	const maxRows = 15
	shown := 0
	for i := len(records) - 1; i >= 0 && shown < maxRows; i-- {
		r := records[i]
		duration := "–"
		if r.DurationMinutes != nil {
			duration = fmt.Sprintf("%.0fm", *r.DurationMinutes)
		}
		build := "✗"
		if r.BuildSuccess {
			build = "✓"
		}
		manual := ""
		if r.ManualIntervention {
			manual = "yes"
		}
		fmt.Fprintf(sb, "| %s | %s | %s | %s | %d/%d | %d | %d | %s |\n",
			r.RunID,
			r.Timestamp.UTC().Format("01-02 15:04"),
			duration, build,
			r.TestsPassed, r.TestsPassed+r.TestsFailed,
			r.LintErrors, r.TypeErrors, manual)
		shown++
	}
	sb.WriteString("\n")
}
