package domain

import (
	"errors"
	"time"
)

// LeadStatus represents the pipeline stage of a sales lead.
type LeadStatus string

const (
	StatusNew       LeadStatus = "New"
	StatusContacted LeadStatus = "Contacted"
	StatusConverted LeadStatus = "Converted"
	StatusLost      LeadStatus = "Lost"
)

// LeadStatuses lists all valid statuses in pipeline order.
var LeadStatuses = []LeadStatus{StatusNew, StatusContacted, StatusConverted, StatusLost}

var ErrInvalidStatus = errors.New("invalid lead status")
var ErrNegativeValue = errors.New("lead value must not be negative")

// IsValid reports whether s is one of the known pipeline stages.
func (s LeadStatus) IsValid() bool {
	for _, known := range LeadStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Lead is a sales opportunity attached to a customer.
// Leads are kept most-recent-first within their customer's bucket.
type Lead struct {
	ID          string     `json:"id" bson:"id"`
	CustomerID  string     `json:"customer_id" bson:"customer_id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Status      LeadStatus `json:"status" bson:"status"`
	Value       float64    `json:"value" bson:"value"`
	// CreatedAt is assigned by the store at creation and never changes,
	// including across updates.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
