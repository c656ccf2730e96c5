package domain

import "time"

// Activity actions recorded in the audit trail.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Activity entity types.
const (
	EntityCustomer = "customer"
	EntityLead     = "lead"
)

// Activity records a single mutation against a customer or one of its leads.
type Activity struct {
	ID         string    `json:"id" bson:"id"`
	CustomerID string    `json:"customer_id" bson:"customer_id"`
	EntityType string    `json:"entity_type" bson:"entity_type"`
	EntityID   string    `json:"entity_id" bson:"entity_id"`
	Action     string    `json:"action" bson:"action"`
	Actor      string    `json:"actor" bson:"actor"`
	OccurredAt time.Time `json:"occurred_at" bson:"occurred_at"`
}
