package types

import (
	"fmt"
	"strings"
	"time"
)

// ProposalStatus is the state of a proposal in the approval workflow.
// pending is the only initial state; approved and rejected are terminal.
type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalApproved ProposalStatus = "approved"
	ProposalRejected ProposalStatus = "rejected"
)

// IsValid checks if the proposal status value is valid
func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalPending, ProposalApproved, ProposalRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to next. The only
// legal transitions are pending→approved and pending→rejected; resolved
// proposals never reopen.
func (s ProposalStatus) CanTransitionTo(next ProposalStatus) bool {
	return s == ProposalPending && (next == ProposalApproved || next == ProposalRejected)
}

// ImpactLevel classifies the scope of a proposal and drives the size of its
// version bump.
type ImpactLevel string

const (
	ImpactLow    ImpactLevel = "low"
	ImpactMedium ImpactLevel = "medium"
	ImpactHigh   ImpactLevel = "high"
)

// IsValid checks if the impact level value is valid
func (l ImpactLevel) IsValid() bool {
	switch l {
	case ImpactLow, ImpactMedium, ImpactHigh:
		return true
	}
	return false
}

// ParameterDiff is one proposed change to a single tunable, addressed by
// its parameter path. All tunables are numeric.
type ParameterDiff struct {
	Path     string  `json:"path"`
	OldValue float64 `json:"old_value"`
	NewValue float64 `json:"new_value"`
	Reason   string  `json:"reason"`
}

// Proposal is a pending or resolved request to change the Parameter Config.
// The diff list is fixed at creation; resolution only ever touches the
// status, resolver, timestamp, and rejection reason fields.
type Proposal struct {
	ProposalID      string          `json:"proposal_id"`
	CreatedAt       time.Time       `json:"created_at"`
	Status          ProposalStatus  `json:"status"`
	FindingsSummary []string        `json:"findings_summary"`
	SourceReport    string          `json:"source_report,omitempty"`
	ParameterDiffs  []ParameterDiff `json:"parameter_diffs"`
	ImpactLevel     ImpactLevel     `json:"impact_level"`
	Rationale       string          `json:"rationale"`
	VersionFrom     string          `json:"version_from"`
	VersionTo       string          `json:"version_to"`
	ResolvedBy      string          `json:"resolved_by,omitempty"`
	ResolvedAt      *time.Time      `json:"resolved_at,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
}

// IsPending reports whether the proposal still awaits resolution.
func (p *Proposal) IsPending() bool {
	return p.Status == ProposalPending
}

// DiffCount returns the number of parameter changes the proposal carries.
func (p *Proposal) DiffCount() int {
	return len(p.ParameterDiffs)
}

// Summary renders a one-paragraph human description of the proposal.
func (p *Proposal) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] %s impact, %d change(s), %s -> %s",
		p.ProposalID, p.Status, p.ImpactLevel, p.DiffCount(), p.VersionFrom, p.VersionTo)
	for _, d := range p.ParameterDiffs {
		fmt.Fprintf(&sb, "\n  %s: %g -> %g (%s)", d.Path, d.OldValue, d.NewValue, d.Reason)
	}
	return sb.String()
}

// Validate checks structural constraints on a proposal.
func (p *Proposal) Validate() error {
	var issues []string
	if strings.TrimSpace(p.ProposalID) == "" {
		issues = append(issues, "proposal_id is required")
	}
	if !p.Status.IsValid() {
		issues = append(issues, fmt.Sprintf("invalid status: %q", p.Status))
	}
	if !p.ImpactLevel.IsValid() {
		issues = append(issues, fmt.Sprintf("invalid impact_level: %q", p.ImpactLevel))
	}
	if len(p.ParameterDiffs) == 0 {
		issues = append(issues, "parameter_diffs cannot be empty")
	}
	if p.VersionFrom == "" || p.VersionTo == "" {
		issues = append(issues, "version_from and version_to are required")
	}
	if p.Status == ProposalRejected && strings.TrimSpace(p.RejectionReason) == "" {
		issues = append(issues, "rejection_reason is required for rejected proposals")
	}
	if len(issues) > 0 {
		return &ValidationError{Entity: "proposal", Issues: issues}
	}
	return nil
}

// NewProposalID generates a proposal identifier of the form
// prop-YYYYMMDD-HHMMSS-<6 hex chars>.
func NewProposalID(t time.Time) string {
	return fmt.Sprintf("prop-%s-%s", t.Format("20060102-150405"), ShortHex(6))
}
