package hub

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/steveyegge/observe/internal/types"
)

// writeFileExclusive atomically creates path with the given contents,
// failing with ConflictError if path already exists. The data lands in a
// temp file first and is linked into place, so a concurrent writer racing
// on the same name loses cleanly and no partial file is ever visible.
func writeFileExclusive(path string, data []byte) error {
	tmp := tempName(path)
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return &types.StorageError{Op: "write", Path: tmp, Err: err}
	}
	defer os.Remove(tmp)

	if err := os.Link(tmp, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &types.ConflictError{Kind: "file", ID: filepath.Base(path), Reason: "already exists"}
		}
		return &types.StorageError{Op: "create", Path: path, Err: err}
	}
	return nil
}

// writeFileAtomic atomically replaces path with the given contents via a
// temp file and rename. Used only for the single permitted in-place
// transition (resolving a proposal); run records and parameter versions go
// through writeFileExclusive instead.
func writeFileAtomic(path string, data []byte) error {
	tmp := tempName(path)
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return &types.StorageError{Op: "write", Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &types.StorageError{Op: "rename", Path: path, Err: err}
	}
	return nil
}

func tempName(path string) string {
	return fmt.Sprintf("%s.tmp-%s", path, uuid.NewString()[:8])
}

// readJSON decodes the JSON file at path into v. A missing file is reported
// as notFound (kind/id supplied by the caller); any other failure is a
// StorageError.
func readJSON(path string, v any, kind, id string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &types.NotFoundError{Kind: kind, ID: id}
		}
		return &types.StorageError{Op: "read", Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &types.StorageError{Op: "decode", Path: path, Err: err}
	}
	return nil
}

// marshalIndent is the canonical on-disk encoding: two-space indented JSON
// with a trailing newline.
func marshalIndent(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, &types.StorageError{Op: "encode", Path: "", Err: err}
	}
	return append(data, '\n'), nil
}

// listJSONNames returns the base names (without extension) of all .json
// files in dir, unsorted. Temp files from in-flight writes are skipped.
func listJSONNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &types.StorageError{Op: "list", Path: dir, Err: err}
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, e.Name()[:len(e.Name())-len(".json")])
	}
	return names, nil
}
