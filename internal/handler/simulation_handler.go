package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "ticketsim/internal/errors"
	"ticketsim/internal/scoring"
	"ticketsim/internal/service"
)

// SimulationHandler handles simulate and history endpoints.
type SimulationHandler struct {
	simulationService service.SimulationService
}

// NewSimulationHandler creates a new simulation handler.
func NewSimulationHandler(simulationService service.SimulationService) *SimulationHandler {
	return &SimulationHandler{simulationService: simulationService}
}

// SimulateRequest represents a simulate request. Unrecognized category
// values are accepted and score zero.
type SimulateRequest struct {
	Platform   LooseString `json:"platform" swaggertype:"string" example:"ibon"`
	EntryTime  LooseString `json:"entry_time" swaggertype:"string" example:"early"`
	TicketType LooseString `json:"ticket_type" swaggertype:"string" example:"3800"`
	Network    LooseString `json:"network" swaggertype:"string" example:"fast"`
	UserID     *UserID  `json:"user_id" validate:"required" swaggertype:"integer" example:"1"`
}

// SimulateResponse represents a simulate result.
type SimulateResponse struct {
	SuccessRate int    `json:"success_rate"`
	Suggestion  string `json:"suggestion"`
}

// Simulate godoc
// @Summary Simulate a ticket-grab success rate
// @Tags simulation
// @Accept json
// @Produce json
// @Param request body SimulateRequest true "Choices"
// @Success 200 {object} SimulateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /simulate [post]
func (h *SimulationHandler) Simulate(c echo.Context) error {
	var req SimulateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sim, err := h.simulationService.Simulate(c.Request().Context(), uint(*req.UserID), scoring.Input{
		Platform:   string(req.Platform),
		EntryTime:  string(req.EntryTime),
		TicketType: string(req.TicketType),
		Network:    string(req.Network),
	})
	if err != nil {
		return respondError(c, "simulate", err)
	}

	return c.JSON(http.StatusOK, SimulateResponse{
		SuccessRate: sim.SuccessRate,
		Suggestion:  sim.Suggestion,
	})
}

// History godoc
// @Summary List a user's simulations, newest first
// @Tags simulation
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {array} model.Simulation
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /history [get]
func (h *SimulationHandler) History(c echo.Context) error {
	raw := c.QueryParam("user_id")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "user_id is required",
			Code:    "VALIDATION_ERROR",
		})
	}
	userID, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "invalid user_id",
			Code:    "VALIDATION_ERROR",
		})
	}

	sims, err := h.simulationService.History(c.Request().Context(), uint(userID))
	if err != nil {
		return respondError(c, "history", err)
	}
	return c.JSON(http.StatusOK, sims)
}
