package types

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorPredicates(t *testing.T) {
	validation := &ValidationError{Entity: "run record", Issues: []string{"source is required"}}
	notFound := &NotFoundError{Kind: "run", ID: "2026-08-25-a1b2c3"}
	conflict := &ConflictError{Kind: "proposal", ID: "prop-1", Reason: "already resolved"}
	config := &ConfigError{Path: "parameters/v0.1.0.json", Err: errors.New("unexpected end of JSON input")}
	storage := &StorageError{Op: "read", Path: "runs/x.json", Err: errors.New("permission denied")}

	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{"validation", validation, IsValidation},
		{"not found", notFound, IsNotFound},
		{"conflict", conflict, IsConflict},
		{"config", config, IsConfig},
		{"storage", storage, IsStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.pred(tt.err) {
				t.Errorf("predicate rejected its own error type: %v", tt.err)
			}
			// Predicates must see through wrapping.
			wrapped := fmt.Errorf("outer context: %w", tt.err)
			if !tt.pred(wrapped) {
				t.Errorf("predicate rejected wrapped error: %v", wrapped)
			}
			// And must not match unrelated errors.
			if tt.pred(errors.New("plain failure")) {
				t.Error("predicate matched an unrelated error")
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	one := &ValidationError{Entity: "proposal", Issues: []string{"proposal_id is required"}}
	if got := one.Error(); got != "invalid proposal: proposal_id is required" {
		t.Errorf("Error() = %q", got)
	}

	many := &ValidationError{Entity: "run record", Issues: []string{"a", "b", "c"}}
	msg := many.Error()
	if !strings.Contains(msg, "3 issues") {
		t.Errorf("Error() = %q, want issue count", msg)
	}
	for _, issue := range many.Issues {
		if !strings.Contains(msg, issue) {
			t.Errorf("Error() = %q, want to contain %q", msg, issue)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("disk full")
	se := &StorageError{Op: "write", Path: "runs/x.json", Err: inner}
	if !errors.Is(se, inner) {
		t.Error("StorageError should unwrap to its cause")
	}

	ce := &ConfigError{Path: "observe.yaml", Err: inner}
	if !errors.Is(ce, inner) {
		t.Error("ConfigError should unwrap to its cause")
	}
}
