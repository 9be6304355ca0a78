package workflow

import "strings"

// ValidationError reports missing or malformed submission fields, keyed by
// field name. The operation was not attempted.
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

// DuplicateError reports an email collision with a pending application or an
// existing account. No record was created.
type DuplicateError struct {
	Email string
}

func (e DuplicateError) Error() string {
	return "an application or account with email " + e.Email + " already exists"
}

// NotFoundError reports an unknown application ID.
type NotFoundError struct {
	ApplicationID string
}

func (e NotFoundError) Error() string {
	return "application " + e.ApplicationID + " not found"
}

// AlreadyDecidedError reports a decision attempt on a non-pending
// application. The earlier decision stands untouched.
type AlreadyDecidedError struct {
	ApplicationID string
}

func (e AlreadyDecidedError) Error() string {
	return "application " + e.ApplicationID + " has already been decided"
}

// DependencyError reports that a collaborator (persistence) was unavailable.
// The caller may retry; no half-applied state is left behind.
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
