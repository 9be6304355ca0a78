package recordsRepo

import (
	"context"

	"traintrack/database"
	"traintrack/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogueRepository holds the simple reference records the core resolves
// for display and notifications: training session offerings and client
// companies. Lookups return (nil, nil) when no record exists.
type CatalogueRepository interface {
	CreateSession(ctx context.Context, session models.TrainingSession) (string, error)
	GetSessionByID(ctx context.Context, id string) (*models.TrainingSession, error)
	CreateClient(ctx context.Context, client models.ClientCompany) (string, error)
	GetClientByID(ctx context.Context, id string) (*models.ClientCompany, error)
}

type mongoCatalogueRepo struct {
	sessionColl *mongo.Collection
	clientColl  *mongo.Collection
}

// NewMongoCatalogueRepo returns a new CatalogueRepository instance using MongoDB.
func NewMongoCatalogueRepo() CatalogueRepository {
	db := database.DB()
	return &mongoCatalogueRepo{
		sessionColl: db.Collection("training_sessions"),
		clientColl:  db.Collection("client_companies"),
	}
}
