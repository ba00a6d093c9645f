package proposal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/steveyegge/observe/internal/hub"
	"github.com/steveyegge/observe/internal/types"
)

// Gate resolves pending proposals. Approval is the only path that ever
// creates a new parameter config version; rejection touches nothing but the
// proposal itself. Both are one-shot: replaying a resolution fails with
// ConflictError instead of double-applying.
type Gate struct {
	hub *hub.Hub
	now func() time.Time
}

// NewGate creates an approval gate.
func NewGate(h *hub.Hub) (*Gate, error) {
	if h == nil {
		return nil, fmt.Errorf("hub is required")
	}
	return &Gate{hub: h, now: time.Now}, nil
}

// Approve applies the proposal's stored diffs to the current latest
// parameter config, writes the result as the proposal's target version, and
// marks the proposal approved. The parameter write happens first so a
// failure there leaves the proposal pending and the operation retryable.
func (g *Gate) Approve(ctx context.Context, id, resolver string) (*types.Proposal, *types.ParameterSet, error) {
	if strings.TrimSpace(resolver) == "" {
		return nil, nil, &types.ValidationError{Entity: "approval", Issues: []string{"resolver is required"}}
	}

	p, err := g.hub.GetProposal(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !p.IsPending() {
		return nil, nil, &types.ConflictError{Kind: "proposal", ID: id, Reason: "already " + string(p.Status)}
	}

	current, err := g.hub.LatestParameters(ctx)
	if err != nil {
		return nil, nil, err
	}

	next := current
	for _, d := range p.ParameterDiffs {
		if err := next.SetValue(d.Path, d.NewValue); err != nil {
			return nil, nil, err
		}
	}
	created := g.now().UTC()
	next.Version = p.VersionTo
	next.Created = &created
	next.Description = fmt.Sprintf("Applied proposal %s (%s impact)", p.ProposalID, p.ImpactLevel)
	next.AppliedFromProposal = p.ProposalID

	if err := g.hub.WriteParameters(ctx, &next); err != nil {
		return nil, nil, err
	}

	updated, err := g.hub.UpdateProposal(ctx, id, types.ProposalApproved, resolver, "")
	if err != nil {
		return nil, nil, err
	}
	return updated, &next, nil
}

// Reject marks the proposal rejected with the given reason. The reason is
// required; no parameter config is created or modified.
func (g *Gate) Reject(ctx context.Context, id, resolver, reason string) (*types.Proposal, error) {
	if strings.TrimSpace(resolver) == "" {
		return nil, &types.ValidationError{Entity: "rejection", Issues: []string{"resolver is required"}}
	}
	if strings.TrimSpace(reason) == "" {
		return nil, &types.ValidationError{Entity: "rejection", Issues: []string{"reason is required"}}
	}
	return g.hub.UpdateProposal(ctx, id, types.ProposalRejected, resolver, reason)
}
