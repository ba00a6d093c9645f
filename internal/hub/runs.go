package hub

import (
	"context"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/steveyegge/observe/internal/types"
)

// AppendRun persists a new run record. The record is validated first and
// written with an exclusive create: re-emitting an identifier that already
// exists fails with ConflictError and leaves the stored record untouched.
func (h *Hub) AppendRun(ctx context.Context, record *types.RunRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	data, err := marshalIndent(record)
	if err != nil {
		return err
	}
	if err := writeFileExclusive(h.runPath(record.RunID), data); err != nil {
		if types.IsConflict(err) {
			return &types.ConflictError{Kind: "run", ID: record.RunID, Reason: "record already exists"}
		}
		return err
	}
	return nil
}

// GetRun returns the run record with the given identifier.
func (h *Hub) GetRun(ctx context.Context, id string) (*types.RunRecord, error) {
	var record types.RunRecord
	if err := readJSON(h.runPath(id), &record, "run", id); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListRuns returns run records ordered by creation timestamp ascending.
// window > 0 limits the result to the most recent window records, still in
// ascending order. Files are read with bounded concurrency; order is
// restored after the reads complete.
func (h *Hub) ListRuns(ctx context.Context, window int) ([]*types.RunRecord, error) {
	names, err := listJSONNames(filepath.Join(h.root, dirRuns))
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}

	records := make([]*types.RunRecord, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var record types.RunRecord
			if err := readJSON(h.runPath(name), &record, "run", name); err != nil {
				return err
			}
			records[i] = &record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Timestamp.Equal(records[j].Timestamp) {
			return records[i].RunID < records[j].RunID
		}
		return records[i].Timestamp.Before(records[j].Timestamp)
	})

	if window > 0 && len(records) > window {
		records = records[len(records)-window:]
	}
	return records, nil
}

// CountRuns returns the number of stored run records without decoding them.
func (h *Hub) CountRuns(ctx context.Context) (int, error) {
	names, err := listJSONNames(filepath.Join(h.root, dirRuns))
	if err != nil {
		return 0, err
	}
	return len(names), nil
}
