package recordsRepo

import (
	"context"
	"time"

	"traintrack/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateSession inserts a new training session offering and returns its ID.
func (r *mongoCatalogueRepo) CreateSession(ctx context.Context, session models.TrainingSession) (string, error) {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	session.CreatedAt = time.Now()

	if _, err := r.sessionColl.InsertOne(ctx, session); err != nil {
		return "", err
	}
	return session.ID, nil
}

// GetSessionByID returns a training session by its ID.
func (r *mongoCatalogueRepo) GetSessionByID(ctx context.Context, id string) (*models.TrainingSession, error) {
	var session models.TrainingSession
	if err := r.sessionColl.FindOne(ctx, bson.M{"id": id}).Decode(&session); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// CreateClient inserts a new client company and returns its ID.
func (r *mongoCatalogueRepo) CreateClient(ctx context.Context, client models.ClientCompany) (string, error) {
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	client.CreatedAt = time.Now()

	if _, err := r.clientColl.InsertOne(ctx, client); err != nil {
		return "", err
	}
	return client.ID, nil
}

// GetClientByID returns a client company by its ID.
func (r *mongoCatalogueRepo) GetClientByID(ctx context.Context, id string) (*models.ClientCompany, error) {
	var client models.ClientCompany
	if err := r.clientColl.FindOne(ctx, bson.M{"id": id}).Decode(&client); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}
