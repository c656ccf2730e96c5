package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/leadline/crm-system/internal/core/domain"
)

const collectionActivities = "activities"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivities)}
}

func (r *ActivityRepository) Append(ctx context.Context, a domain.Activity) (*domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	a.ID = primitive.NewObjectID().Hex()
	doc := bson.M{
		"id":          a.ID,
		"customer_id": a.CustomerID,
		"entity_type": a.EntityType,
		"entity_id":   a.EntityID,
		"action":      a.Action,
		"actor":       a.Actor,
		"occurred_at": a.OccurredAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ActivityRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"customer_id": customerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]domain.Activity, 0)
	for cur.Next(ctx) {
		var doc struct {
			ID         string    `bson:"id"`
			CustomerID string    `bson:"customer_id"`
			EntityType string    `bson:"entity_type"`
			EntityID   string    `bson:"entity_id"`
			Action     string    `bson:"action"`
			Actor      string    `bson:"actor"`
			OccurredAt time.Time `bson:"occurred_at"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, domain.Activity{
			ID:         doc.ID,
			CustomerID: doc.CustomerID,
			EntityType: doc.EntityType,
			EntityID:   doc.EntityID,
			Action:     doc.Action,
			Actor:      doc.Actor,
			OccurredAt: doc.OccurredAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
