package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leadline/crm-system/internal/core/domain"
	"github.com/leadline/crm-system/internal/core/ports"
)

// LeadHandler handles HTTP requests for lead operations.
type LeadHandler struct {
	leads ports.LeadService
}

func NewLeadHandler(leads ports.LeadService) *LeadHandler {
	return &LeadHandler{leads: leads}
}

// ListForCustomer handles GET /v1/customers/:id/leads.
//
// @Summary      List a customer's leads
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Customer id"
// @Success      200  {array}   leadResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/customers/{id}/leads [get]
func (h *LeadHandler) ListForCustomer(c echo.Context) error {
	leads, err := h.leads.ListForCustomer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLeadResponses(leads))
}

// ListAll handles GET /v1/leads — the flat snapshot used by the dashboard.
//
// @Summary      List all leads
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   leadResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/leads [get]
func (h *LeadHandler) ListAll(c echo.Context) error {
	leads, err := h.leads.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLeadResponses(leads))
}

// Create handles POST /v1/leads.
//
// @Summary      Create a lead under a customer
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLeadRequest  true  "Lead details"
// @Success      201   {object}  leadResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	var req createLeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	created, err := h.leads.Create(c.Request().Context(), ports.CreateLeadInput{
		CustomerID:  req.CustomerID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.LeadStatus(req.Status),
		Value:       req.Value,
		Actor:       actor,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toLeadResponse(*created))
}

// Update handles PUT /v1/leads/:id.
//
// @Summary      Update a lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Lead id"
// @Param        body  body      updateLeadRequest  true  "Replacement lead details"
// @Success      200   {object}  leadResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/leads/{id} [put]
func (h *LeadHandler) Update(c echo.Context) error {
	var req updateLeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	updated, err := h.leads.Update(c.Request().Context(), ports.UpdateLeadInput{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.LeadStatus(req.Status),
		Value:       req.Value,
		Actor:       actor,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toLeadResponse(*updated))
}

// Delete handles DELETE /v1/leads/:id.
//
// @Summary      Delete a lead
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead id"
// @Success      200  {object}  deletedResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/leads/{id} [delete]
func (h *LeadHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	removed, err := h.leads.Delete(c.Request().Context(), ports.DeleteLeadInput{ID: c.Param("id"), Actor: actor})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deletedResponse{ID: removed.ID})
}
