package models

// EmailPayload is the queued unit of notification work. Delivery is
// best-effort: a failed send is logged and retried by the queue, never
// surfaced to the operation that triggered it.
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// AllocationNotice carries the resolved display details of a booked or
// revised allocation for notification composition.
type AllocationNotice struct {
	Allocation   Allocation `json:"allocation"`
	SessionTitle string     `json:"sessionTitle"`
	Hours        string     `json:"hours,omitempty"`
	TrainerEmail string     `json:"trainerEmail,omitempty"`
	ClientEmail  string     `json:"clientEmail,omitempty"`
	ClientName   string     `json:"clientName,omitempty"`
	Revised      bool       `json:"revised,omitempty"`
}

// DecisionNotice carries what the applicant needs to hear about a decision.
type DecisionNotice struct {
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	Accepted     bool   `json:"accepted"`
	Comment      string `json:"comment,omitempty"`
	TempPassword string `json:"tempPassword,omitempty"`
}
