package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/leadline/crm-system/internal/core/domain"
)

const collectionLeads = "leads"

// LeadRepository implements ports.LeadRepository using MongoDB.
type LeadRepository struct {
	col *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{col: db.Collection(collectionLeads)}
}

type mongoLead struct {
	ID          string    `bson:"id"`
	CustomerID  string    `bson:"customer_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Status      string    `bson:"status"`
	Value       float64   `bson:"value"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (m mongoLead) toDomain() domain.Lead {
	return domain.Lead{
		ID:          m.ID,
		CustomerID:  m.CustomerID,
		Title:       m.Title,
		Description: m.Description,
		Status:      domain.LeadStatus(m.Status),
		Value:       m.Value,
		CreatedAt:   m.CreatedAt,
	}
}

func fromDomainLead(l domain.Lead) mongoLead {
	return mongoLead{
		ID:          l.ID,
		CustomerID:  l.CustomerID,
		Title:       l.Title,
		Description: l.Description,
		Status:      string(l.Status),
		Value:       l.Value,
		CreatedAt:   l.CreatedAt.UTC(),
	}
}

func (r *LeadRepository) list(ctx context.Context, query bson.M) ([]domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]domain.Lead, 0)
	for cur.Next(ctx) {
		var ml mongoLead
		if err := cur.Decode(&ml); err != nil {
			return nil, err
		}
		out = append(out, ml.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LeadRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Lead, error) {
	return r.list(ctx, bson.M{"customer_id": customerID})
}

func (r *LeadRepository) ListAll(ctx context.Context) ([]domain.Lead, error) {
	return r.list(ctx, bson.M{})
}

func (r *LeadRepository) Create(ctx context.Context, l domain.Lead) (*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	l.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, fromDomainLead(l)); err != nil {
		return nil, err
	}
	return &l, nil
}

// Update replaces the mutable fields; customer_id and created_at are
// immutable and deliberately excluded from the $set.
func (r *LeadRepository) Update(ctx context.Context, l domain.Lead) (*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var existing mongoLead
	err := r.col.FindOneAndUpdate(ctx, bson.M{"id": l.ID}, bson.M{"$set": bson.M{
		"title":       l.Title,
		"description": l.Description,
		"status":      string(l.Status),
		"value":       l.Value,
	}}).Decode(&existing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, err
	}

	l.CustomerID = existing.CustomerID
	l.CreatedAt = existing.CreatedAt
	return &l, nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) (*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var removed mongoLead
	err := r.col.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&removed)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, err
	}
	l := removed.toDomain()
	return &l, nil
}

func (r *LeadRepository) DeleteByCustomer(ctx context.Context, customerID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"customer_id": customerID})
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
}

// EnsureIndexes creates the indexes the lead queries rely on.
func (r *LeadRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
