package models

import "time"

// Application statuses. PENDING is the only mutable state; ACCEPTED and
// REJECTED are terminal.
const (
	ApplicationPending  = "PENDING"
	ApplicationAccepted = "ACCEPTED"
	ApplicationRejected = "REJECTED"
)

// Application is a trainer candidacy awaiting an administrative decision.
type Application struct {
	ID              string    `bson:"id" json:"id"`
	FirstName       string    `bson:"firstName" json:"firstName"`
	LastName        string    `bson:"lastName" json:"lastName"`
	Email           string    `bson:"email" json:"email"`
	Phone           string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Skills          []string  `bson:"skills" json:"skills"`
	Specialties     []string  `bson:"specialties" json:"specialties"`
	ExperienceYears int       `bson:"experienceYears,omitempty" json:"experienceYears,omitempty"`
	ResumeRef       string    `bson:"resumeRef,omitempty" json:"resumeRef,omitempty"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Status          string    `bson:"status" json:"status"`
	SubmittedAt     time.Time `bson:"submittedAt" json:"submittedAt"`
	DecidedAt       time.Time `bson:"decidedAt" json:"decidedAt,omitzero"`
	DecisionComment string    `bson:"decisionComment,omitempty" json:"decisionComment,omitempty"`
}

// ApplicationRequest is the submission payload. Skills and specialties may
// arrive as arrays or as delimited text; the workflow normalizes both.
type ApplicationRequest struct {
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	SkillsText      string   `json:"skillsText,omitempty"`
	Specialties     []string `json:"specialties,omitempty"`
	SpecialtiesText string   `json:"specialtiesText,omitempty"`
	ExperienceYears int      `json:"experienceYears,omitempty"`
	ResumeRef       string   `json:"resumeRef,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// ApplicationFilter narrows application listings.
type ApplicationFilter struct {
	Status string `json:"status,omitempty"`
	Search string `json:"search,omitempty"`
}

// DecisionResult is returned by a successful Accept: the decided application,
// the provisioned account and the plaintext temporary credential. The
// credential is returned exactly once and never stored.
type DecisionResult struct {
	Application  *Application `json:"application"`
	Account      *Account     `json:"account,omitempty"`
	TempPassword string       `json:"temporaryPassword,omitempty"`
}
