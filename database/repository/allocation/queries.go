package allocationRepo

import (
	"context"
	"fmt"
	"time"

	"traintrack/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindByTrainer fetches a trainer's allocations sorted by start date
// ascending. With excludeCancelled it returns the conflict set the scheduler
// runs the overlap test against.
func (r *MongoAllocationRepo) FindByTrainer(ctx context.Context, trainerID string, excludeCancelled bool) ([]models.Allocation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"trainerId": trainerID}
	if excludeCancelled {
		filter["status"] = bson.M{"$ne": models.AllocationCancelled}
	}

	opts := options.Find().SetSort(bson.D{{Key: "dateRange.start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allocations for trainer %s: %w", trainerID, err)
	}
	defer cursor.Close(ctx)

	var allocs []models.Allocation
	if err := cursor.All(ctx, &allocs); err != nil {
		return nil, fmt.Errorf("error decoding allocations: %w", err)
	}
	return allocs, nil
}
