package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "ticketsim/internal/errors"
)

// LooseString is a text field that clients send either as a string or as a
// number (ticket_type is often sent as 3800). Numbers are kept in canonical
// decimal form, so 3800, 3800.0 and 3.8e3 all read as "3800". Any other
// JSON value reads as empty.
type LooseString string

// UnmarshalJSON implements json.Unmarshaler.
func (l *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = LooseString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		if d, err := decimal.NewFromString(n.String()); err == nil {
			*l = LooseString(d.String())
		} else {
			*l = LooseString(n.String())
		}
		return nil
	}
	*l = ""
	return nil
}

// UserID is a user id sent either as a JSON number or a numeric string.
type UserID uint

// UnmarshalJSON implements json.Unmarshaler.
func (u *UserID) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return fmt.Errorf("invalid user_id %s", data)
	}
	*u = UserID(id)
	return nil
}

// bindAndValidate decodes the request body into req and runs struct
// validation. Failures are returned as ready-to-send 400 errors.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "invalid request body",
			Code:    "INVALID_REQUEST",
		})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: err.Error(),
			Code:    "VALIDATION_ERROR",
		})
	}
	return nil
}

// respondError converts a service error into an HTTP error. Internal
// failures are logged with the request id and answered generically.
func respondError(c echo.Context, op string, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		c.Logger().Errorf("request_id=%s op=%s: %v",
			c.Response().Header().Get(echo.HeaderXRequestID), op, err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
