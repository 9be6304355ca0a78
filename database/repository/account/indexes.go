package accountRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for fields frequently used in queries. The
// unique email index is what backs the platform-wide email invariant; the
// unique accountId index on profiles enforces at most one profile per account.
func (r *MongoAccountRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	accountIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, accountIndexes); err != nil {
		return fmt.Errorf("failed to create account indexes: %w", err)
	}

	profileIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "accountId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.profileColl.Indexes().CreateMany(ctx, profileIndexes); err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", err)
	}
	return nil
}
