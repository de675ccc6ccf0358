package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bloglane/blog-api/internal/core/domain"
)

const collectionAccountEvents = "account_events"

// AccountEventRepository implements ports.AccountEventRepository using MongoDB.
type AccountEventRepository struct {
	col *mongo.Collection
	now func() time.Time
}

// NewAccountEventRepository creates a new AccountEventRepository.
func NewAccountEventRepository(db *mongo.Database) *AccountEventRepository {
	return &AccountEventRepository{col: db.Collection(collectionAccountEvents), now: time.Now}
}

func accountEventDoc(event *domain.AccountEvent, recordedAt time.Time) bson.M {
	return bson.M{
		"userId":     event.UserID,
		"type":       string(event.Type),
		"occurredAt": event.OccurredAt.UTC(),
		"recordedAt": recordedAt.UTC(),
	}
}

// InsertEvent appends an event to the account_events audit collection.
func (r *AccountEventRepository) InsertEvent(ctx context.Context, event *domain.AccountEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, accountEventDoc(event, r.now())); err != nil {
		return storeErr("insert account event", err)
	}
	return nil
}

// EnsureIndexes creates the per-user timeline index.
func (r *AccountEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "occurredAt", Value: 1}},
	})
	return err
}
