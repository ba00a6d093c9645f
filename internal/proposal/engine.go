// Package proposal turns analysis findings into auditable parameter change
// proposals and governs their resolution. The engine maps findings through
// a fixed rule table; the gate is the two-state approval workflow that
// turns an approved proposal into the next parameter config version.
package proposal

import (
	"context"
	"fmt"
	"time"

	"github.com/steveyegge/observe/internal/analysis"
	"github.com/steveyegge/observe/internal/hub"
	"github.com/steveyegge/observe/internal/types"
)

// Config holds proposal engine configuration.
type Config struct {
	Hub   *hub.Hub
	Agent *analysis.Agent
}

// Engine generates proposals from fresh analysis passes. It never proposes
// from a stale report: every Generate call runs the agent again.
type Engine struct {
	hub   *hub.Hub
	agent *analysis.Agent
	now   func() time.Time
}

// New creates a proposal engine.
func New(cfg *Config) (*Engine, error) {
	if cfg == nil || cfg.Hub == nil {
		return nil, fmt.Errorf("hub is required")
	}
	if cfg.Agent == nil {
		return nil, fmt.Errorf("analysis agent is required")
	}
	return &Engine{hub: cfg.Hub, agent: cfg.Agent, now: time.Now}, nil
}

// Generate runs a fresh analysis pass and converts its findings into a
// pending proposal. A nil proposal with nil error means the rule table
// produced no changes; nothing to propose is an expected outcome, not a
// failure. A pending proposal already in the store fails with ConflictError
// before analysis runs; the caller must resolve it first.
func (e *Engine) Generate(ctx context.Context, windowOverride int) (*types.Proposal, *analysis.Result, error) {
	pending, err := e.hub.LatestPendingProposal(ctx)
	if err != nil {
		return nil, nil, err
	}
	if pending != nil {
		return nil, nil, &types.ConflictError{
			Kind:   "proposal",
			ID:     pending.ProposalID,
			Reason: "a pending proposal already exists; approve or reject it first",
		}
	}

	result := e.agent.Run(ctx, windowOverride)
	if !result.Success {
		return nil, result, fmt.Errorf("analysis failed: %s", result.Error)
	}

	params, err := e.hub.LatestParameters(ctx)
	if err != nil {
		return nil, result, err
	}

	diffs := applyRules(result.Findings, &params)
	if len(diffs) == 0 {
		return nil, result, nil
	}

	impact := computeImpact(result.Findings, len(diffs))
	now := e.now().UTC()
	p := &types.Proposal{
		ProposalID:      types.NewProposalID(now),
		CreatedAt:       now,
		Status:          types.ProposalPending,
		FindingsSummary: summarizeFindings(result.Findings),
		SourceReport:    result.ReportFilename,
		ParameterDiffs:  diffs,
		ImpactLevel:     impact,
		Rationale: fmt.Sprintf("Analysis of the last %d run(s) produced %d finding(s) at warning or worse; proposing %d parameter change(s).",
			result.RunsAnalyzed, warningOrWorse(result.Findings), len(diffs)),
		VersionFrom: params.Version,
		VersionTo:   BumpVersion(params.Version, impact),
	}

	// WriteProposal re-checks the one-pending invariant against the
	// directory; a racing generator loses there with ConflictError.
	if err := e.hub.WriteProposal(ctx, p); err != nil {
		return nil, result, err
	}
	return p, result, nil
}

func summarizeFindings(findings []types.Finding) []string {
	var summary []string
	for _, f := range findings {
		if f.Severity.AtLeastWarning() {
			summary = append(summary, fmt.Sprintf("[%s] %s", f.Severity, f.Message))
		}
	}
	return summary
}

func warningOrWorse(findings []types.Finding) int {
	n := 0
	for _, f := range findings {
		if f.Severity.AtLeastWarning() {
			n++
		}
	}
	return n
}
