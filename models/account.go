package models

import "time"

// Account roles.
const (
	RoleAdmin   = "ADMIN"
	RoleTrainer = "TRAINER"
)

// Account is a platform login identity. Email is globally unique.
type Account struct {
	ID           string    `bson:"id" json:"id"`
	FirstName    string    `bson:"firstName" json:"firstName"`
	LastName     string    `bson:"lastName" json:"lastName"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TrainerProfile holds the trainer-specific data linked to an account,
// seeded from the accepted application. At most one profile per account.
type TrainerProfile struct {
	ID              string    `bson:"id" json:"id"`
	AccountID       string    `bson:"accountId" json:"accountId"`
	Skills          []string  `bson:"skills" json:"skills"`
	Specialties     []string  `bson:"specialties" json:"specialties"`
	ExperienceYears int       `bson:"experienceYears,omitempty" json:"experienceYears,omitempty"`
	ResumeRef       string    `bson:"resumeRef,omitempty" json:"resumeRef,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AuthResponse is returned after a successful authentication.
type AuthResponse struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}
