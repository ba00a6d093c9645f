// Package hub is the sole persistence boundary of the observer: an
// append-only, file-per-record store for run records, parameter configs,
// proposals, analysis reports, and the agent execution log.
//
// Every entity is one file under the storage root, partitioned by kind so
// listing one kind never scans another. Writes are atomic and collision
// detecting; nothing ever opens a run record for in-place modification.
package hub

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	dirRuns       = "runs"
	dirParameters = "parameters"
	dirProposals  = "proposals"
	dirAnalysis   = "analysis"
	dirMetrics    = "metrics"

	agentLogName = "agent_runs.jsonl"

	// listConcurrency bounds parallel run-file reads in ListRuns.
	listConcurrency = 8
)

// Config holds hub configuration.
type Config struct {
	// Root is the storage directory. Required; there is no ambient default.
	Root string

	// Warnf receives non-fatal anomalies (for example a malformed parameter
	// file that was skipped in favor of defaults). Defaults to stderr.
	Warnf func(format string, args ...any)
}

// Hub provides access to the storage tree. Safe for use by a single
// process; cross-process races resolve at the filesystem level via
// exclusive creates.
type Hub struct {
	root  string
	warnf func(format string, args ...any)
	now   func() time.Time
}

// New creates a Hub rooted at cfg.Root and ensures the per-kind
// subdirectories exist. Creating them is idempotent, so New is safe to call
// on both fresh and existing storage trees.
func New(cfg *Config) (*Hub, error) {
	if cfg == nil || cfg.Root == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	warnf := cfg.Warnf
	if warnf == nil {
		warnf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}

	h := &Hub{
		root:  cfg.Root,
		warnf: warnf,
		now:   time.Now,
	}
	for _, d := range h.kindDirs() {
		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, fmt.Errorf("creating storage directory %s: %w", d, err)
		}
	}
	return h, nil
}

// Root returns the storage root directory.
func (h *Hub) Root() string { return h.root }

// Warnf reports a non-fatal anomaly through the hub's configured warn hook.
func (h *Hub) Warnf(format string, args ...any) {
	h.warnf(format, args...)
}

func (h *Hub) kindDirs() []string {
	return []string{
		filepath.Join(h.root, dirRuns),
		filepath.Join(h.root, dirParameters),
		filepath.Join(h.root, dirProposals),
		filepath.Join(h.root, dirAnalysis),
		filepath.Join(h.root, dirMetrics),
	}
}

func (h *Hub) runPath(id string) string {
	return filepath.Join(h.root, dirRuns, id+".json")
}

func (h *Hub) parameterPath(version string) string {
	return filepath.Join(h.root, dirParameters, version+".json")
}

func (h *Hub) proposalPath(id string) string {
	return filepath.Join(h.root, dirProposals, id+".json")
}

func (h *Hub) reportPath(name string) string {
	return filepath.Join(h.root, dirAnalysis, name)
}

func (h *Hub) agentLogPath() string {
	return filepath.Join(h.root, dirMetrics, agentLogName)
}
