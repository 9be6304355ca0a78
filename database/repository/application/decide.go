package applicationRepo

import (
	"context"
	"fmt"

	"traintrack/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Decide performs the PENDING -> decided transition as a single transaction.
// The status guard is a compare-and-swap: the update filter requires
// status == PENDING, so a concurrent decision on the same application matches
// nothing and the loser gets ErrAlreadyDecided. For an acceptance the account
// and trainer profile are inserted in the same transaction; the unique email
// index on accounts aborts the whole transaction on a collision, so no
// account ever exists without its status update or vice versa.
func (r *MongoApplicationRepo) Decide(
	ctx context.Context,
	id string,
	decision Decision,
	account *models.Account,
	profile *models.TrainerProfile,
) (*models.Application, error) {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var decided models.Application

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{"id": id, "status": models.ApplicationPending}
		update := bson.M{"$set": bson.M{
			"status":          decision.Status,
			"decidedAt":       decision.DecidedAt,
			"decisionComment": decision.Comment,
		}}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

		if err := r.coll.FindOneAndUpdate(sc, filter, update, opts).Decode(&decided); err != nil {
			if err != mongo.ErrNoDocuments {
				return fmt.Errorf("decision update failed: %w", err)
			}
			// Guard did not match: distinguish missing from already decided.
			count, cErr := r.coll.CountDocuments(sc, bson.M{"id": id})
			if cErr != nil {
				return fmt.Errorf("decision lookup failed: %w", cErr)
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrAlreadyDecided
		}

		if account != nil {
			if _, err := r.accountColl.InsertOne(sc, account); err != nil {
				return fmt.Errorf("insert account failed: %w", err)
			}
		}
		if profile != nil {
			if _, err := r.profileColl.InsertOne(sc, profile); err != nil {
				return fmt.Errorf("insert trainer profile failed: %w", err)
			}
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrNotFound || err == ErrAlreadyDecided {
			return nil, err
		}
		return nil, fmt.Errorf("decision transaction failed: %w", err)
	}

	return &decided, nil
}
