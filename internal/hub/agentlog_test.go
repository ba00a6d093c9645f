package hub

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/steveyegge/observe/internal/types"
)

func testLogEntry(n int, success bool, ts time.Time) *types.AgentLogEntry {
	e := &types.AgentLogEntry{
		AgentName:       "analysis-agent",
		Timestamp:       ts,
		DurationSeconds: 0.05,
		RunsAnalyzed:    n,
		FindingsCount:   5,
		Success:         success,
		WindowSize:      10,
	}
	if success {
		e.ReportFilename = "analysis-20260825-100000.md"
	} else {
		e.Error = "listing runs: permission denied"
	}
	return e
}

func TestAgentLogAppendAndRead(t *testing.T) {
	h, _ := newTestHub(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if err := h.AppendAgentLog(ctx, testLogEntry(i, true, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("AppendAgentLog(%d) = %v", i, err)
		}
	}

	entries, err := h.ReadAgentLog(ctx, 0)
	if err != nil {
		t.Fatalf("ReadAgentLog() = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("ReadAgentLog() = %d entries, want 3", len(entries))
	}
	// Newest first.
	if entries[0].RunsAnalyzed != 2 || entries[2].RunsAnalyzed != 0 {
		t.Errorf("entries not newest-first: got RunsAnalyzed %d,%d,%d",
			entries[0].RunsAnalyzed, entries[1].RunsAnalyzed, entries[2].RunsAnalyzed)
	}

	limited, err := h.ReadAgentLog(ctx, 2)
	if err != nil {
		t.Fatalf("ReadAgentLog(2) = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("ReadAgentLog(2) = %d entries, want 2", len(limited))
	}
}

func TestReadAgentLogMissingFile(t *testing.T) {
	h, _ := newTestHub(t)

	entries, err := h.ReadAgentLog(context.Background(), 0)
	if err != nil {
		t.Fatalf("ReadAgentLog() on missing log = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("ReadAgentLog() = %d entries, want 0", len(entries))
	}
}

func TestReadAgentLogSkipsMalformedLines(t *testing.T) {
	h, warnings := newTestHub(t)
	ctx := context.Background()

	if err := h.AppendAgentLog(ctx, testLogEntry(1, true, time.Now().UTC())); err != nil {
		t.Fatalf("AppendAgentLog() = %v", err)
	}

	// Corrupt the log with a half-written line, then append another good one.
	f, err := os.OpenFile(h.agentLogPath(), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("opening log: %v", err)
	}
	if _, err := f.WriteString("{\"agent_name\": \"trunc\n"); err != nil {
		t.Fatalf("corrupting log: %v", err)
	}
	f.Close()

	if err := h.AppendAgentLog(ctx, testLogEntry(2, true, time.Now().UTC())); err != nil {
		t.Fatalf("AppendAgentLog() = %v", err)
	}

	entries, err := h.ReadAgentLog(ctx, 0)
	if err != nil {
		t.Fatalf("ReadAgentLog() = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("ReadAgentLog() = %d entries, want 2 (malformed line skipped)", len(entries))
	}
	found := false
	for _, w := range *warnings {
		if strings.Contains(w, "malformed") {
			found = true
		}
	}
	if !found {
		t.Error("skipped line should have been reported through Warnf")
	}
}

func TestAgentLogSuccessRate(t *testing.T) {
	h, _ := newTestHub(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	rate, count, err := h.AgentLogSuccessRate(ctx, 0)
	if err != nil {
		t.Fatalf("AgentLogSuccessRate() on empty log = %v", err)
	}
	if rate != 0 || count != 0 {
		t.Errorf("empty log rate = %g/%d, want 0/0", rate, count)
	}

	for i, success := range []bool{true, false, true, true} {
		if err := h.AppendAgentLog(ctx, testLogEntry(i, success, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("AppendAgentLog(%d) = %v", i, err)
		}
	}

	rate, count, err = h.AgentLogSuccessRate(ctx, 0)
	if err != nil {
		t.Fatalf("AgentLogSuccessRate() = %v", err)
	}
	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}
	if rate != 0.75 {
		t.Errorf("rate = %g, want 0.75", rate)
	}

	// Limiting to the two most recent (both successes) changes the rate.
	rate, count, err = h.AgentLogSuccessRate(ctx, 2)
	if err != nil {
		t.Fatalf("AgentLogSuccessRate(2) = %v", err)
	}
	if count != 2 || rate != 1.0 {
		t.Errorf("limited rate = %g/%d, want 1.0/2", rate, count)
	}
}

func TestSaveMetricsSnapshot(t *testing.T) {
	h, _ := newTestHub(t)

	name, err := h.SaveMetricsSnapshot(context.Background(), map[string]int{"run_count": 7})
	if err != nil {
		t.Fatalf("SaveMetricsSnapshot() = %v", err)
	}
	if !strings.HasPrefix(name, "snapshot-") || !strings.HasSuffix(name, ".json") {
		t.Errorf("snapshot name = %q, want snapshot-<ts>.json", name)
	}

	data, err := os.ReadFile(filepath.Join(h.root, dirMetrics, name))
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if !strings.Contains(string(data), "\"run_count\": 7") {
		t.Errorf("snapshot content = %q", data)
	}
}
