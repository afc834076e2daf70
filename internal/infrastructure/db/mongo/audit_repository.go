package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/questionsapp/questions-api/internal/core/domain"
)

const authEventsCollection = "auth_events"

// MongoAuditRepository appends auth events to the auth_events collection.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(authEventsCollection)}
}

type mongoAuthEvent struct {
	Email     string `bson:"email"`
	Action    string `bson:"action"`
	Success   bool   `bson:"success"`
	Reason    string `bson:"reason,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *MongoAuditRepository) InsertEvent(ctx context.Context, event *domain.AuthEvent) error {
	doc := mongoAuthEvent{
		Email:     event.Email,
		Action:    event.Action,
		Success:   event.Success,
		Reason:    event.Reason,
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
