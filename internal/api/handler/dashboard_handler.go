package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leadline/crm-system/internal/core/ports"
	"github.com/leadline/crm-system/internal/state"
)

// DashboardHandler serves the aggregate metrics view over the full lead
// snapshot. The aggregation itself is the pure helper shared with the
// client-side state package, so both surfaces always agree.
type DashboardHandler struct {
	leads ports.LeadService
}

func NewDashboardHandler(leads ports.LeadService) *DashboardHandler {
	return &DashboardHandler{leads: leads}
}

// Metrics handles GET /v1/dashboard/metrics.
//
// @Summary      Aggregate lead metrics
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/dashboard/metrics [get]
func (h *DashboardHandler) Metrics(c echo.Context) error {
	leads, err := h.leads.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	agg := state.Aggregate(leads)

	counts := make(map[string]int, len(agg.CountByStatus))
	for status, n := range agg.CountByStatus {
		counts[string(status)] = n
	}
	values := make(map[string]float64, len(agg.ValueByStatus))
	for status, v := range agg.ValueByStatus {
		values[string(status)] = v
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		TotalLeads:     agg.TotalLeads,
		TotalValue:     agg.TotalValue,
		CountByStatus:  counts,
		ValueByStatus:  values,
		ConversionRate: agg.ConversionRate,
	})
}
