package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ticketsim/internal/service"
)

// QRHandler handles QR code endpoints.
type QRHandler struct {
	qrService service.QRService
}

// NewQRHandler creates a new QR handler.
func NewQRHandler(qrService service.QRService) *QRHandler {
	return &QRHandler{qrService: qrService}
}

// GenerateQRRequest represents a payload QR request.
type GenerateQRRequest struct {
	Data string `json:"data"`
}

// QRResponse carries a rendered QR code as an image data URI.
type QRResponse struct {
	QRCode string `json:"qrCode"`
}

// TicketQRRequest represents a ticket QR request. strategy_id and user_id
// are copied into the payload as sent.
type TicketQRRequest struct {
	StrategyID   interface{} `json:"strategy_id" swaggertype:"number" example:"12"`
	UserID       interface{} `json:"user_id" swaggertype:"integer" example:"1"`
	TicketNumber LooseString `json:"ticket_number,omitempty" swaggertype:"string" example:"TKT-1700000000000"`
}

// TicketQRResponse represents a rendered ticket.
type TicketQRResponse struct {
	QRCode       string `json:"qrCode"`
	TicketNumber string `json:"ticket_number"`
}

// GenerateQR godoc
// @Summary Render a payload as a QR code
// @Tags qr
// @Accept json
// @Produce json
// @Param request body GenerateQRRequest true "Payload"
// @Success 200 {object} QRResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /generate-qr [post]
func (h *QRHandler) GenerateQR(c echo.Context) error {
	var req GenerateQRRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	uri, err := h.qrService.Generate(c.Request().Context(), req.Data)
	if err != nil {
		return respondError(c, "generate-qr", err)
	}
	return c.JSON(http.StatusOK, QRResponse{QRCode: uri})
}

// GenerateTicketQR godoc
// @Summary Render a ticket as a QR code
// @Tags qr
// @Accept json
// @Produce json
// @Param request body TicketQRRequest true "Ticket"
// @Success 200 {object} TicketQRResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /generate-ticket-qr [post]
func (h *QRHandler) GenerateTicketQR(c echo.Context) error {
	var req TicketQRRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ticket, err := h.qrService.GenerateTicket(c.Request().Context(), service.TicketRequest{
		StrategyID:   req.StrategyID,
		UserID:       req.UserID,
		TicketNumber: string(req.TicketNumber),
	})
	if err != nil {
		return respondError(c, "generate-ticket-qr", err)
	}
	return c.JSON(http.StatusOK, TicketQRResponse{
		QRCode:       ticket.QRCode,
		TicketNumber: ticket.TicketNumber,
	})
}
