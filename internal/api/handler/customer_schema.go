package handler

import (
	"time"

	"github.com/leadline/crm-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createCustomerRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

type updateCustomerRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal domain changes.

type customerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

type paginationResponse struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

type listCustomersResponse struct {
	Data       []customerResponse `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type deletedResponse struct {
	ID string `json:"id"`
}

type activityResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Action     string    `json:"action"`
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// --- Mapping ---

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Company: c.Company,
	}
}

func toCustomerResponses(in []domain.Customer) []customerResponse {
	out := make([]customerResponse, len(in))
	for i, c := range in {
		out[i] = toCustomerResponse(c)
	}
	return out
}

func toActivityResponses(in []domain.Activity) []activityResponse {
	out := make([]activityResponse, len(in))
	for i, a := range in {
		out[i] = activityResponse{
			ID:         a.ID,
			CustomerID: a.CustomerID,
			EntityType: a.EntityType,
			EntityID:   a.EntityID,
			Action:     a.Action,
			Actor:      a.Actor,
			OccurredAt: a.OccurredAt,
		}
	}
	return out
}
