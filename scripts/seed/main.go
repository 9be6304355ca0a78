package main

import (
	"context"
	"log"
	"time"

	"traintrack/config"
	"traintrack/database"
	"traintrack/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a local database with an admin account and a small catalogue of
// training sessions and client companies for manual testing.
func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.DB()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	accounts := db.Collection("accounts")
	sessions := db.Collection("training_sessions")
	clients := db.Collection("client_companies")

	// Admin account (idempotent on email).
	adminEmail := "admin@traintrack.io"
	count, err := accounts.CountDocuments(ctx, bson.M{"email": adminEmail})
	if err != nil {
		log.Fatalf("failed to check admin account: %v", err)
	}
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}
		now := time.Now()
		admin := models.Account{
			ID:           uuid.New().String(),
			FirstName:    "Platform",
			LastName:     "Admin",
			Email:        adminEmail,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if _, err := accounts.InsertOne(ctx, admin); err != nil {
			log.Fatalf("failed to insert admin account: %v", err)
		}
		log.Printf("created admin account %s", adminEmail)
	}

	sampleSessions := []models.TrainingSession{
		{ID: uuid.New().String(), Title: "Go Fundamentals", Hours: "09:00-17:00", CreatedAt: time.Now()},
		{ID: uuid.New().String(), Title: "Kubernetes in Production", Hours: "09:00-17:00", CreatedAt: time.Now()},
		{ID: uuid.New().String(), Title: "Secure Coding Workshop", Hours: "10:00-16:00", CreatedAt: time.Now()},
	}
	for _, s := range sampleSessions {
		if _, err := sessions.InsertOne(ctx, s); err != nil {
			log.Fatalf("failed to insert session %q: %v", s.Title, err)
		}
	}

	sampleClients := []models.ClientCompany{
		{ID: uuid.New().String(), Name: "Acme Logistics", ContactEmail: "training@acme.example", ContactName: "R. Vance", CreatedAt: time.Now()},
		{ID: uuid.New().String(), Name: "Borealis Bank", ContactEmail: "l-and-d@borealis.example", CreatedAt: time.Now()},
	}
	for _, c := range sampleClients {
		if _, err := clients.InsertOne(ctx, c); err != nil {
			log.Fatalf("failed to insert client %q: %v", c.Name, err)
		}
	}

	log.Printf("seeded %d sessions and %d clients", len(sampleSessions), len(sampleClients))
}
