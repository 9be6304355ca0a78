package models

import "time"

// TrainingSession is a catalogue offering a trainer can be allocated to.
type TrainingSession struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Hours       string    `bson:"hours,omitempty" json:"hours,omitempty"` // default daily hours, e.g. "09:00-17:00"
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// ClientCompany is a company that books training sessions.
type ClientCompany struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	ContactEmail string    `bson:"contactEmail" json:"contactEmail"`
	ContactName  string    `bson:"contactName,omitempty" json:"contactName,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
