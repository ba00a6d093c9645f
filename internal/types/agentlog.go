package types

import "time"

// AgentLogEntry records one analysis agent invocation. Entries are appended
// as JSON lines to the agent log and never modified; failed invocations are
// logged with the same fidelity as successful ones.
type AgentLogEntry struct {
	AgentName       string    `json:"agent_name"`
	Timestamp       time.Time `json:"timestamp"`
	DurationSeconds float64   `json:"duration_seconds"`
	RunsAnalyzed    int       `json:"runs_analyzed"`
	FindingsCount   int       `json:"findings_count"`
	Success         bool      `json:"success"`
	Error           string    `json:"error,omitempty"`
	ReportFilename  string    `json:"report_filename,omitempty"`
	WindowSize      int       `json:"window_size"`
}
