package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ticketsim/internal/service"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	accountService service.AccountService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(accountService service.AccountService) *AuthHandler {
	return &AuthHandler{accountService: accountService}
}

// CredentialsRequest represents a registration request.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a login request. Empty credentials are not
// rejected up front; they fail authentication like any other mismatch.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"user_id"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Registration data"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req CredentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.accountService.Register(c.Request().Context(), req.Username, req.Password); err != nil {
		return respondError(c, "register", err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Register success"})
}

// Login godoc
// @Summary Check credentials
// @Description Stateless: no session or token is issued.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.accountService.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, "login", err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message: "Login success",
		UserID:  user.ID,
	})
}

// Logout godoc
// @Summary Logout user
// @Description Acknowledgement only; there is no server-side session.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logout success"})
}
