package handler

import (
	"time"

	"github.com/leadline/crm-system/internal/core/domain"
)

// --- Request types ---

type createLeadRequest struct {
	CustomerID  string  `json:"customer_id" validate:"required"`
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status"      validate:"required,oneof=New Contacted Converted Lost"`
	Value       float64 `json:"value"       validate:"gte=0"`
}

type updateLeadRequest struct {
	Title       string  `json:"title"  validate:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status" validate:"required,oneof=New Contacted Converted Lost"`
	Value       float64 `json:"value"  validate:"gte=0"`
}

// --- Response types ---

type leadResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Value       float64   `json:"value"`
	CreatedAt   time.Time `json:"created_at"`
}

// dashboardResponse aggregates the full lead snapshot for the dashboard.
type dashboardResponse struct {
	TotalLeads     int                `json:"total_leads"`
	TotalValue     float64            `json:"total_value"`
	CountByStatus  map[string]int     `json:"count_by_status"`
	ValueByStatus  map[string]float64 `json:"value_by_status"`
	ConversionRate float64            `json:"conversion_rate"`
}

// --- Mapping ---

func toLeadResponse(l domain.Lead) leadResponse {
	return leadResponse{
		ID:          l.ID,
		CustomerID:  l.CustomerID,
		Title:       l.Title,
		Description: l.Description,
		Status:      string(l.Status),
		Value:       l.Value,
		CreatedAt:   l.CreatedAt,
	}
}

func toLeadResponses(in []domain.Lead) []leadResponse {
	out := make([]leadResponse, len(in))
	for i, l := range in {
		out[i] = toLeadResponse(l)
	}
	return out
}
