package hub

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/steveyegge/observe/internal/types"
)

// WriteReport persists a rendered analysis report under its filename.
// Reports are immutable once written; a filename collision (two analyses in
// the same second) fails with ConflictError rather than overwriting.
func (h *Hub) WriteReport(ctx context.Context, filename string, markdown []byte) error {
	if filename == "" || strings.Contains(filename, "/") {
		return &types.ValidationError{Entity: "report", Issues: []string{"filename must be a bare name"}}
	}
	if err := writeFileExclusive(h.reportPath(filename), markdown); err != nil {
		if types.IsConflict(err) {
			return &types.ConflictError{Kind: "report", ID: filename, Reason: "report already exists"}
		}
		return err
	}
	return nil
}

// ReadReport returns the raw markdown of a stored report.
func (h *Hub) ReadReport(ctx context.Context, filename string) ([]byte, error) {
	data, err := os.ReadFile(h.reportPath(filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &types.NotFoundError{Kind: "report", ID: filename}
		}
		return nil, &types.StorageError{Op: "read", Path: h.reportPath(filename), Err: err}
	}
	return data, nil
}

// ListReports returns stored report filenames, oldest first. Report names
// embed their creation timestamp, so lexical order is chronological.
func (h *Hub) ListReports(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(h.root, dirAnalysis))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &types.StorageError{Op: "list", Path: filepath.Join(h.root, dirAnalysis), Err: err}
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
