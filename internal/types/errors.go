package types

import (
	"errors"
	"fmt"
	"strings"
)

// The error taxonomy every layer surfaces. Storage and schema errors
// propagate synchronously to the caller; only the analysis agent converts
// errors into a failure result instead of returning them.

// ValidationError reports malformed or out-of-contract input. Issues holds
// one human-readable line per violated constraint.
type ValidationError struct {
	Entity string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("invalid %s: %s", e.Entity, e.Issues[0])
	}
	return fmt.Sprintf("invalid %s: %d issues: %s", e.Entity, len(e.Issues), strings.Join(e.Issues, "; "))
}

// NotFoundError reports a lookup miss for a specific entity.
type NotFoundError struct {
	Kind string // "run", "proposal", "parameters", "report"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ConflictError reports a write that would violate a uniqueness or state
// invariant: duplicate run identifier, second pending proposal, resolving an
// already-resolved proposal, or a version collision.
type ConflictError struct {
	Kind   string
	ID     string
	Reason string
}

func (e *ConflictError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s conflict: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s conflict on %s: %s", e.Kind, e.ID, e.Reason)
}

// ConfigError reports a malformed Parameter Config or tool config on disk.
// Readers fall back to documented defaults rather than failing the caller,
// but the anomaly is still reported so it can be logged.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bad config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// StorageError wraps an underlying I/O failure with the operation and path
// that hit it.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsConfig reports whether err is (or wraps) a ConfigError.
func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
