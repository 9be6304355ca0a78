package scheduler

import (
	"fmt"
	"strings"

	"traintrack/models"
)

// ValidationError reports missing or malformed request fields, keyed by field
// name. The operation was not attempted.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ConflictError reports that a proposed range overlaps existing allocations.
// Conflicts carries the overlapping set for caller display. No write occurred.
type ConflictError struct {
	TrainerID string
	Conflicts []models.AllocationConflict
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("trainer %s has %d conflicting allocation(s) in the requested range", e.TrainerID, len(e.Conflicts))
}

// NotFoundError reports an unknown allocation ID.
type NotFoundError struct {
	AllocationID string
}

func (e NotFoundError) Error() string {
	return "allocation " + e.AllocationID + " not found"
}

// DependencyError reports that a collaborator (persistence, lock store) was
// unavailable. The caller may retry.
type DependencyError struct {
	Op  string
	Err error
}

func (e DependencyError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e DependencyError) Unwrap() error {
	return e.Err
}
