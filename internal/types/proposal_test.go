package types

import (
	"strings"
	"testing"
	"time"
)

func TestProposalStatusTransitions(t *testing.T) {
	tests := []struct {
		from ProposalStatus
		to   ProposalStatus
		want bool
	}{
		{ProposalPending, ProposalApproved, true},
		{ProposalPending, ProposalRejected, true},
		{ProposalPending, ProposalPending, false},
		{ProposalApproved, ProposalRejected, false},
		{ProposalApproved, ProposalApproved, false},
		{ProposalApproved, ProposalPending, false},
		{ProposalRejected, ProposalApproved, false},
		{ProposalRejected, ProposalPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func validProposal() Proposal {
	return Proposal{
		ProposalID: "prop-20260825-140000-a1b2c3",
		CreatedAt:  time.Date(2026, 8, 25, 14, 0, 0, 0, time.UTC),
		Status:     ProposalPending,
		ParameterDiffs: []ParameterDiff{
			{Path: ParamMedianCycleTimeMinutes, OldValue: 30, NewValue: 33, Reason: "cycle time over target"},
		},
		ImpactLevel: ImpactLow,
		Rationale:   "one target missed",
		VersionFrom: "v0.1.0",
		VersionTo:   "v0.1.1",
	}
}

func TestProposalValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *Proposal)
		wantIssue string
	}{
		{
			name:   "valid pending proposal",
			mutate: func(p *Proposal) {},
		},
		{
			name:      "missing id",
			mutate:    func(p *Proposal) { p.ProposalID = "" },
			wantIssue: "proposal_id is required",
		},
		{
			name:      "invalid status",
			mutate:    func(p *Proposal) { p.Status = "open" },
			wantIssue: "invalid status",
		},
		{
			name:      "invalid impact",
			mutate:    func(p *Proposal) { p.ImpactLevel = "severe" },
			wantIssue: "invalid impact_level",
		},
		{
			name:      "empty diffs",
			mutate:    func(p *Proposal) { p.ParameterDiffs = nil },
			wantIssue: "parameter_diffs cannot be empty",
		},
		{
			name:      "missing versions",
			mutate:    func(p *Proposal) { p.VersionTo = "" },
			wantIssue: "version_from and version_to are required",
		},
		{
			name:      "rejected without reason",
			mutate:    func(p *Proposal) { p.Status = ProposalRejected },
			wantIssue: "rejection_reason is required",
		},
		{
			name: "rejected with reason is valid",
			mutate: func(p *Proposal) {
				p.Status = ProposalRejected
				p.RejectionReason = "target is fine as is"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProposal()
			tt.mutate(&p)
			err := p.Validate()

			if tt.wantIssue == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want issue containing %q", tt.wantIssue)
			}
			if !strings.Contains(err.Error(), tt.wantIssue) {
				t.Errorf("Validate() = %q, want to contain %q", err.Error(), tt.wantIssue)
			}
		})
	}
}

func TestNewProposalID(t *testing.T) {
	ts := time.Date(2026, 8, 25, 14, 15, 30, 0, time.UTC)
	id := NewProposalID(ts)

	if !strings.HasPrefix(id, "prop-20260825-141530-") {
		t.Errorf("NewProposalID() = %q, want prefix prop-20260825-141530-", id)
	}
	suffix := strings.TrimPrefix(id, "prop-20260825-141530-")
	if len(suffix) != 6 {
		t.Errorf("NewProposalID() suffix = %q, want 6 hex chars", suffix)
	}
}

func TestProposalSummary(t *testing.T) {
	p := validProposal()
	s := p.Summary()
	for _, want := range []string{p.ProposalID, "pending", "low impact", "1 change(s)", "v0.1.0 -> v0.1.1", ParamMedianCycleTimeMinutes} {
		if !strings.Contains(s, want) {
			t.Errorf("Summary() = %q, want to contain %q", s, want)
		}
	}
}
