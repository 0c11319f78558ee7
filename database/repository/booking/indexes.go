package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the lookup indexes and the unique conflict index.
// The conflict index is the storage-level guarantee that the admission
// check-then-insert cannot double-admit across concurrent processes.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conflictKeys := bson.D{
		{Key: "selectedDate", Value: 1},
		{Key: "service", Value: 1},
		{Key: "email", Value: 1},
	}
	if r.scope == ScopeSlot {
		conflictKeys = append(conflictKeys, bson.E{Key: "slot", Value: 1})
	}

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "selectedDate", Value: 1}}},
		{Keys: conflictKeys, Options: options.Index().SetUnique(true).SetName("uniq_conflict_key")},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
