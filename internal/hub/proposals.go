package hub

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/steveyegge/observe/internal/types"
)

// WriteProposal persists a new proposal. The one-pending invariant is
// re-checked against the directory immediately before the write; a pending
// proposal already on disk fails the call with ConflictError, as does an
// identifier collision on the proposal file itself.
func (h *Hub) WriteProposal(ctx context.Context, p *types.Proposal) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Status == types.ProposalPending {
		pending, err := h.LatestPendingProposal(ctx)
		if err != nil {
			return err
		}
		if pending != nil {
			return &types.ConflictError{Kind: "proposal", ID: pending.ProposalID, Reason: "a pending proposal already exists; resolve it first"}
		}
	}

	data, err := marshalIndent(p)
	if err != nil {
		return err
	}
	if err := writeFileExclusive(h.proposalPath(p.ProposalID), data); err != nil {
		if types.IsConflict(err) {
			return &types.ConflictError{Kind: "proposal", ID: p.ProposalID, Reason: "proposal already exists"}
		}
		return err
	}
	return nil
}

// GetProposal returns the proposal with the given identifier.
func (h *Hub) GetProposal(ctx context.Context, id string) (*types.Proposal, error) {
	var p types.Proposal
	if err := readJSON(h.proposalPath(id), &p, "proposal", id); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProposals returns all proposals ordered by creation time ascending.
func (h *Hub) ListProposals(ctx context.Context) ([]*types.Proposal, error) {
	names, err := listJSONNames(filepath.Join(h.root, dirProposals))
	if err != nil {
		return nil, err
	}
	proposals := make([]*types.Proposal, 0, len(names))
	for _, name := range names {
		p, err := h.GetProposal(ctx, name)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	sort.Slice(proposals, func(i, j int) bool {
		if proposals[i].CreatedAt.Equal(proposals[j].CreatedAt) {
			return proposals[i].ProposalID < proposals[j].ProposalID
		}
		return proposals[i].CreatedAt.Before(proposals[j].CreatedAt)
	})
	return proposals, nil
}

// LatestPendingProposal returns the newest proposal still in pending state,
// or nil when none is pending. No pending proposal is a normal condition,
// not an error.
func (h *Hub) LatestPendingProposal(ctx context.Context) (*types.Proposal, error) {
	proposals, err := h.ListProposals(ctx)
	if err != nil {
		return nil, err
	}
	for i := len(proposals) - 1; i >= 0; i-- {
		if proposals[i].IsPending() {
			return proposals[i], nil
		}
	}
	return nil, nil
}

// UpdateProposal applies the one permitted in-place transition: resolving a
// pending proposal to approved or rejected. Resolving an already-resolved
// proposal fails with ConflictError; rejection requires a non-empty reason.
// The proposal file is rewritten atomically and the updated proposal
// returned.
func (h *Hub) UpdateProposal(ctx context.Context, id string, status types.ProposalStatus, resolver, reason string) (*types.Proposal, error) {
	p, err := h.GetProposal(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransitionTo(status) {
		return nil, &types.ConflictError{
			Kind:   "proposal",
			ID:     id,
			Reason: "cannot transition from " + string(p.Status) + " to " + string(status),
		}
	}
	if status == types.ProposalRejected && strings.TrimSpace(reason) == "" {
		return nil, &types.ValidationError{Entity: "proposal", Issues: []string{"rejection reason is required"}}
	}

	now := h.now().UTC()
	p.Status = status
	p.ResolvedBy = resolver
	p.ResolvedAt = &now
	if status == types.ProposalRejected {
		p.RejectionReason = reason
	}

	data, err := marshalIndent(p)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(h.proposalPath(id), data); err != nil {
		return nil, err
	}
	return p, nil
}
