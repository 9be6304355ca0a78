package allocationRepo

import (
	"context"
	"fmt"
	"time"

	"traintrack/database"
	"traintrack/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAllocationRepo implements AllocationRepository using MongoDB.
type MongoAllocationRepo struct {
	coll *mongo.Collection
}

// NewMongoAllocationRepo creates a new instance of AllocationRepository using MongoDB.
func NewMongoAllocationRepo() AllocationRepository {
	coll := database.DB().Collection("allocations")
	repo := &MongoAllocationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoAllocationRepo) Create(ctx context.Context, alloc *models.Allocation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, alloc); err != nil {
		return fmt.Errorf("failed to create allocation: %w", err)
	}
	return nil
}

// GetByID retrieves an allocation by its unique ID. Returns (nil, nil) when
// no allocation exists.
func (r *MongoAllocationRepo) GetByID(ctx context.Context, id string) (*models.Allocation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var alloc models.Allocation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&alloc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch allocation %s: %w", id, err)
	}
	return &alloc, nil
}

// Update writes the mutable booking fields with a $set, never the status, so
// a concurrent cancellation is not overwritten by a revision. The post-update
// document is decoded back into alloc.
func (r *MongoAllocationRepo) Update(ctx context.Context, alloc *models.Allocation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"sessionId": alloc.SessionID,
		"clientId":  alloc.ClientID,
		"dateRange": alloc.DateRange,
		"hours":     alloc.Hours,
		"location":  alloc.Location,
		"updatedAt": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": alloc.ID}, update, opts).Decode(alloc); err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("allocation %s not found", alloc.ID)
		}
		return fmt.Errorf("failed to update allocation %s: %w", alloc.ID, err)
	}
	return nil
}

// SetStatus atomically updates the lifecycle status and returns the updated
// record. CANCELLED is terminal: lifecycle transitions carry a status guard
// in the update filter, so a cancelled allocation cannot be reactivated into
// a range that was freed and rebooked. Returns (nil, nil) when the filter
// matches nothing.
func (r *MongoAllocationRepo) SetStatus(ctx context.Context, id, status string) (*models.Allocation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	if status != models.AllocationCancelled {
		filter["status"] = bson.M{"$ne": models.AllocationCancelled}
	}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var alloc models.Allocation
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&alloc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to set status for allocation %s: %w", id, err)
	}
	return &alloc, nil
}

// Delete removes the allocation record entirely. Administrative override:
// bypasses the overlap invariant, normal flows cancel instead.
func (r *MongoAllocationRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete allocation %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("allocation %s not found", id)
	}
	return nil
}
