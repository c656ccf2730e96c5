package domain

import "errors"

var ErrCustomerNotFound = errors.New("customer not found")
var ErrLeadNotFound = errors.New("lead not found")
var ErrForbidden = errors.New("access forbidden")

// Customer is a company contact managed in the CRM.
// Customers are kept most-recent-first: new records are prepended.
type Customer struct {
	ID      string `json:"id" bson:"id"`
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email" bson:"email"`
	Phone   string `json:"phone" bson:"phone"`
	Company string `json:"company" bson:"company"`
}
