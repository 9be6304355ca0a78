package models

import (
	"fmt"
	"time"
)

// Allocation lifecycle statuses. CANCELLED allocations are excluded from the
// trainer's conflict set; every other status keeps the range reserved.
const (
	AllocationScheduled  = "SCHEDULED"
	AllocationInProgress = "IN_PROGRESS"
	AllocationCompleted  = "COMPLETED"
	AllocationCancelled  = "CANCELLED"
)

// DateLayout is the wire and storage format for allocation dates.
// ISO dates compare correctly as strings, which the overlap test relies on.
const DateLayout = "2006-01-02"

// DateRange is a closed date-level range [Start, End]. Start == End is a
// valid single-day range.
type DateRange struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// Validate checks that both bounds are present, well-formed and ordered.
func (r DateRange) Validate() error {
	if r.Start == "" || r.End == "" {
		return fmt.Errorf("start and end dates are required")
	}
	if _, err := time.Parse(DateLayout, r.Start); err != nil {
		return fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", r.Start)
	}
	if _, err := time.Parse(DateLayout, r.End); err != nil {
		return fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", r.End)
	}
	if r.Start > r.End {
		return fmt.Errorf("start date %s is after end date %s", r.Start, r.End)
	}
	return nil
}

// Allocation represents a trainer's scheduled session for a client company.
type Allocation struct {
	ID        string    `bson:"id" json:"id"`
	TrainerID string    `bson:"trainerId" json:"trainerId"`
	SessionID string    `bson:"sessionId" json:"sessionId"`
	ClientID  string    `bson:"clientId" json:"clientId"`
	DateRange DateRange `bson:"dateRange" json:"dateRange"`
	Hours     string    `bson:"hours,omitempty" json:"hours,omitempty"` // e.g. "09:00-17:00"
	Location  string    `bson:"location,omitempty" json:"location,omitempty"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AllocationConflict is one entry of the conflicting set returned to callers
// when a proposed range overlaps an existing allocation.
type AllocationConflict struct {
	AllocationID string `json:"allocationId"`
	SessionID    string `json:"sessionId"`
	SessionTitle string `json:"sessionTitle,omitempty"`
	Start        string `json:"start"`
	End          string `json:"end"`
}

// AllocationRequest is the payload for creating a new allocation.
type AllocationRequest struct {
	TrainerID string    `json:"trainerId"`
	SessionID string    `json:"sessionId"`
	ClientID  string    `json:"clientId"`
	DateRange DateRange `json:"dateRange"`
	Hours     string    `json:"hours,omitempty"`
	Location  string    `json:"location,omitempty"`
}

// AllocationChanges carries the mutable fields of a revision request.
// Nil fields are left untouched.
type AllocationChanges struct {
	DateRange *DateRange `json:"dateRange,omitempty"`
	SessionID *string    `json:"sessionId,omitempty"`
	ClientID  *string    `json:"clientId,omitempty"`
	Hours     *string    `json:"hours,omitempty"`
	Location  *string    `json:"location,omitempty"`
}
