package accountRepo

import (
	"context"
	"fmt"
	"time"

	"traintrack/database"
	"traintrack/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAccountRepo implements AccountRepository using MongoDB.
type MongoAccountRepo struct {
	coll        *mongo.Collection
	profileColl *mongo.Collection
}

// NewMongoAccountRepo creates a new instance of AccountRepository using MongoDB.
func NewMongoAccountRepo() AccountRepository {
	db := database.DB()
	repo := &MongoAccountRepo{
		coll:        db.Collection("accounts"),
		profileColl: db.Collection("trainer_profiles"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoAccountRepo) Create(ctx context.Context, account *models.Account) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, account); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *MongoAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var account models.Account
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", id, err)
	}
	return &account, nil
}

func (r *MongoAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var account models.Account
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch account with email %s: %w", email, err)
	}
	return &account, nil
}

func (r *MongoAccountRepo) Update(ctx context.Context, account *models.Account) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	account.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": account.ID}, account)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("account %s not found", account.ID)
	}
	return nil
}

func (r *MongoAccountRepo) GetProfileByAccount(ctx context.Context, accountID string) (*models.TrainerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.TrainerProfile
	if err := r.profileColl.FindOne(ctx, bson.M{"accountId": accountID}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch trainer profile for account %s: %w", accountID, err)
	}
	return &profile, nil
}
