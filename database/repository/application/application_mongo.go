package applicationRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"traintrack/database"
	"traintrack/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoApplicationRepo implements ApplicationRepository using MongoDB. It
// also holds the account and profile collections so acceptance can provision
// them inside one transaction.
type MongoApplicationRepo struct {
	coll        *mongo.Collection
	accountColl *mongo.Collection
	profileColl *mongo.Collection
}

// NewMongoApplicationRepo creates a new instance of ApplicationRepository using MongoDB.
func NewMongoApplicationRepo() ApplicationRepository {
	db := database.DB()
	repo := &MongoApplicationRepo{
		coll:        db.Collection("applications"),
		accountColl: db.Collection("accounts"),
		profileColl: db.Collection("trainer_profiles"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, app); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// GetByID retrieves an application by its unique ID. Returns (nil, nil) when
// no application exists.
func (r *MongoApplicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var app models.Application
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&app); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch application %s: %w", id, err)
	}
	return &app, nil
}

func (r *MongoApplicationRepo) FindPendingByEmail(ctx context.Context, email string) (*models.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"email": email, "status": models.ApplicationPending}
	var app models.Application
	if err := r.coll.FindOne(ctx, filter).Decode(&app); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pending application for %s: %w", email, err)
	}
	return &app, nil
}

// Find lists applications newest-first, optionally narrowed by status and a
// case-insensitive name/email search.
func (r *MongoApplicationRepo) Find(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"firstName": pattern},
			bson.M{"lastName": pattern},
			bson.M{"email": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer cursor.Close(ctx)

	var apps []models.Application
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("error decoding applications: %w", err)
	}
	return apps, nil
}
