package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskflow/task-system/internal/core/domain"
)

const activityCollection = "task_activity"

// ActivityRepository persists audit entries. Write-only from the service's
// perspective; reads happen out of band (reporting, support tooling).
type ActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{coll: db.Collection(activityCollection)}
}

func (r *ActivityRepository) Record(ctx context.Context, entry *domain.ActivityEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"task_id":     entry.TaskID,
		"action":      string(entry.Action),
		"actor_id":    entry.ActorID,
		"recorded_at": entry.RecordedAt,
	}
	if entry.Detail != "" {
		doc["detail"] = entry.Detail
	}
	if oid, err := primitive.ObjectIDFromHex(entry.TaskID); err == nil {
		doc["task_id"] = oid
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}
