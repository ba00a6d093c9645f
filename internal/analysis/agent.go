// Package analysis is the deterministic analysis agent: it reads run
// records through the hub, computes current and previous window metrics,
// classifies every configured target into a severity-ranked finding, and
// persists a markdown report plus one agent log entry per invocation.
//
// The agent is an isolation boundary. Run never returns an error and never
// panics past itself; internal failures come back as a failure Result and
// are still logged, so a broken analysis can never take down or corrupt
// whatever triggered it.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/steveyegge/observe/internal/hub"
	"github.com/steveyegge/observe/internal/metrics"
	"github.com/steveyegge/observe/internal/types"
)

// DefaultAgentName identifies this agent in the execution log.
const DefaultAgentName = "analysis-agent"

// Config holds analysis agent configuration.
type Config struct {
	Hub *hub.Hub

	// AgentName labels log entries. Defaults to DefaultAgentName.
	AgentName string
}

// Agent runs analysis passes against a hub.
type Agent struct {
	hub  *hub.Hub
	name string
	now  func() time.Time
}

// New creates an analysis agent.
func New(cfg *Config) (*Agent, error) {
	if cfg == nil || cfg.Hub == nil {
		return nil, fmt.Errorf("hub is required")
	}
	name := cfg.AgentName
	if name == "" {
		name = DefaultAgentName
	}
	return &Agent{hub: cfg.Hub, name: name, now: time.Now}, nil
}

// Result is the outcome of one analysis pass, consumed verbatim by the
// proposal engine and the CLI.
type Result struct {
	Success        bool
	Error          string
	ReportFilename string
	Markdown       []byte
	Findings       []types.Finding
	RunsAnalyzed   int
	WindowSize     int
	Current        metrics.Summary
	Previous       metrics.Summary
	Trend          metrics.TrendDelta
	Duration       time.Duration
}

// FindingsCount returns the number of findings the pass produced.
func (r *Result) FindingsCount() int { return len(r.Findings) }

// Run executes one analysis pass. windowOverride > 0 takes precedence over
// the window size in the latest parameter config. The returned Result
// reports failure instead of an error; exactly one log entry is appended
// per call, success or not.
func (a *Agent) Run(ctx context.Context, windowOverride int) *Result {
	started := a.now()
	result := &Result{}

	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Success = false
				result.Error = fmt.Sprintf("analysis panic: %v", r)
			}
		}()
		a.run(ctx, windowOverride, result)
	}()

	result.Duration = a.now().Sub(started)
	a.log(ctx, started, result)
	return result
}

func (a *Agent) run(ctx context.Context, windowOverride int, result *Result) {
	params, err := a.hub.LatestParameters(ctx)
	if err != nil {
		result.Error = fmt.Sprintf("loading parameters: %v", err)
		return
	}
	settings := SettingsFrom(params)
	if windowOverride > 0 {
		settings.WindowSize = windowOverride
	}
	result.WindowSize = settings.WindowSize

	// Up to two windows of records, ascending. The tail is the current
	// window; whatever precedes it is the previous window, truncated when
	// history is short. The two never overlap.
	records, err := a.hub.ListRuns(ctx, 2*settings.WindowSize)
	if err != nil {
		result.Error = fmt.Sprintf("listing runs: %v", err)
		return
	}
	split := 0
	if len(records) > settings.WindowSize {
		split = len(records) - settings.WindowSize
	}
	previous, current := records[:split], records[split:]
	result.RunsAnalyzed = len(current)

	result.Current = metrics.Compute(current)
	result.Previous = metrics.Compute(previous)
	result.Trend = metrics.ComputeTrend(result.Current, result.Previous, settings.TrendThreshold)
	result.Findings = buildFindings(result.Current, result.Trend, settings)

	generatedAt := a.now().UTC()
	result.Markdown = renderReport(reportInput{
		GeneratedAt: generatedAt,
		Settings:    settings,
		Current:     result.Current,
		Previous:    result.Previous,
		Trend:       result.Trend,
		Findings:    result.Findings,
		Records:     current,
	})

	filename := fmt.Sprintf("analysis-%s.md", generatedAt.Format("20060102-150405"))
	err = a.hub.WriteReport(ctx, filename, result.Markdown)
	if types.IsConflict(err) {
		// Second pass within the same second; disambiguate rather than fail.
		filename = fmt.Sprintf("analysis-%s-%s.md", generatedAt.Format("20060102-150405"), types.ShortHex(4))
		err = a.hub.WriteReport(ctx, filename, result.Markdown)
	}
	if err != nil {
		result.Error = fmt.Sprintf("writing report: %v", err)
		return
	}

	result.ReportFilename = filename
	result.Success = true
}

// log appends the execution log entry for a finished pass. Logging is best
// effort: a log failure is reported to stderr via the hub's warn hook and
// never alters the result.
func (a *Agent) log(ctx context.Context, started time.Time, result *Result) {
	entry := &types.AgentLogEntry{
		AgentName:       a.name,
		Timestamp:       started.UTC(),
		DurationSeconds: result.Duration.Seconds(),
		RunsAnalyzed:    result.RunsAnalyzed,
		FindingsCount:   result.FindingsCount(),
		Success:         result.Success,
		Error:           result.Error,
		ReportFilename:  result.ReportFilename,
		WindowSize:      result.WindowSize,
	}
	if err := a.hub.AppendAgentLog(ctx, entry); err != nil {
		a.hub.Warnf("warning: failed to append agent log entry: %v", err)
	}
}
