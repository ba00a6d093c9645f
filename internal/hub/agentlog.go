package hub

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/steveyegge/observe/internal/types"
)

// AppendAgentLog appends one agent execution log entry to the JSONL log.
// Each entry is a single line; the file only ever grows.
func (h *Hub) AppendAgentLog(ctx context.Context, entry *types.AgentLogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return &types.StorageError{Op: "encode", Path: h.agentLogPath(), Err: err}
	}

	f, err := os.OpenFile(h.agentLogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &types.StorageError{Op: "open", Path: h.agentLogPath(), Err: err}
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return &types.StorageError{Op: "append", Path: h.agentLogPath(), Err: err}
	}
	return nil
}

// ReadAgentLog returns log entries newest first. limit > 0 caps the result.
// Malformed lines are skipped with a warning so one bad line never hides
// the rest of the history.
func (h *Hub) ReadAgentLog(ctx context.Context, limit int) ([]types.AgentLogEntry, error) {
	f, err := os.Open(h.agentLogPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &types.StorageError{Op: "open", Path: h.agentLogPath(), Err: err}
	}
	defer f.Close()

	var entries []types.AgentLogEntry
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry types.AgentLogEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			h.warnf("warning: skipping malformed agent log line %d: %v", lineNo, err)
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, &types.StorageError{Op: "read", Path: h.agentLogPath(), Err: err}
	}

	// Newest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// SaveMetricsSnapshot persists an arbitrary metrics artifact as a
// timestamped JSON snapshot and returns the filename written.
func (h *Hub) SaveMetricsSnapshot(ctx context.Context, v any) (string, error) {
	data, err := marshalIndent(v)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("snapshot-%s.json", h.now().UTC().Format("20060102-150405"))
	if err := writeFileExclusive(filepath.Join(h.root, dirMetrics, name), data); err != nil {
		return "", err
	}
	return name, nil
}

// AgentLogSuccessRate returns the success rate over the most recent limit
// entries (all entries when limit <= 0) and the number considered.
func (h *Hub) AgentLogSuccessRate(ctx context.Context, limit int) (float64, int, error) {
	entries, err := h.ReadAgentLog(ctx, limit)
	if err != nil {
		return 0, 0, err
	}
	if len(entries) == 0 {
		return 0, 0, nil
	}
	succeeded := 0
	for _, e := range entries {
		if e.Success {
			succeeded++
		}
	}
	return float64(succeeded) / float64(len(entries)), len(entries), nil
}
