package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ticketsim/internal/auth"
	"ticketsim/internal/config"
	"ticketsim/internal/handler"
	"ticketsim/internal/metrics"
	"ticketsim/internal/model"
	"ticketsim/internal/qr"
	"ticketsim/internal/repository"
	"ticketsim/internal/scoring"
	"ticketsim/internal/service"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	store := repository.NewMemoryStore()
	accounts, err := service.NewAccountService(store, auth.NewBcryptHasher(bcrypt.MinCost))
	require.NoError(t, err)

	e := echo.New()
	Register(e,
		&config.Config{AllowedOrigins: []string{"*"}},
		handler.NewAuthHandler(accounts),
		handler.NewSimulationHandler(service.NewSimulationService(store, nil, 0)),
		handler.NewQRHandler(service.NewQRService(qr.NewPNGEncoder(qr.DefaultSize), nil, 0)),
	)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestAuthFlow(t *testing.T) {
	e := newTestServer(t)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantBody   map[string]interface{}
	}{
		{
			name:       "register",
			path:       "/register",
			body:       `{"username":"alice","password":"secret"}`,
			wantStatus: http.StatusOK,
			wantBody:   map[string]interface{}{"message": "Register success"},
		},
		{
			name:       "register duplicate",
			path:       "/register",
			body:       `{"username":"alice","password":"other"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]interface{}{"message": "username already exists", "code": "DUPLICATE_USERNAME"},
		},
		{
			name:       "login",
			path:       "/login",
			body:       `{"username":"alice","password":"secret"}`,
			wantStatus: http.StatusOK,
			wantBody:   map[string]interface{}{"message": "Login success", "user_id": float64(1)},
		},
		{
			name:       "login wrong password",
			path:       "/login",
			body:       `{"username":"alice","password":"nope"}`,
			wantStatus: http.StatusUnauthorized,
			wantBody:   map[string]interface{}{"message": "invalid username or password", "code": "INVALID_CREDENTIALS"},
		},
		{
			name:       "login unknown user",
			path:       "/login",
			body:       `{"username":"bob","password":"secret"}`,
			wantStatus: http.StatusUnauthorized,
			wantBody:   map[string]interface{}{"message": "invalid username or password", "code": "INVALID_CREDENTIALS"},
		},
		{
			name:       "login empty password",
			path:       "/login",
			body:       `{"username":"alice","password":""}`,
			wantStatus: http.StatusUnauthorized,
			wantBody:   map[string]interface{}{"message": "invalid username or password", "code": "INVALID_CREDENTIALS"},
		},
		{
			name:       "login missing credentials",
			path:       "/login",
			body:       `{}`,
			wantStatus: http.StatusUnauthorized,
			wantBody:   map[string]interface{}{"message": "invalid username or password", "code": "INVALID_CREDENTIALS"},
		},
		{
			name:       "logout",
			path:       "/logout",
			wantStatus: http.StatusOK,
			wantBody:   map[string]interface{}{"message": "Logout success"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, decode(t, rec))
		})
	}
}

func TestBadRequests(t *testing.T) {
	e := newTestServer(t)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode string
	}{
		{"register missing password", http.MethodPost, "/register", `{"username":"alice"}`, "VALIDATION_ERROR"},
		{"register empty body", http.MethodPost, "/register", `{}`, "VALIDATION_ERROR"},
		{"register malformed", http.MethodPost, "/register", `{"username":`, "INVALID_REQUEST"},
		{"simulate missing user", http.MethodPost, "/simulate", `{"platform":"ibon"}`, "VALIDATION_ERROR"},
		{"simulate bad user", http.MethodPost, "/simulate", `{"user_id":"abc"}`, "INVALID_REQUEST"},
		{"history missing user", http.MethodGet, "/history", "", "VALIDATION_ERROR"},
		{"history bad user", http.MethodGet, "/history?user_id=-1", "", "VALIDATION_ERROR"},
		{"qr empty data", http.MethodPost, "/generate-qr", `{"data":""}`, "VALIDATION_ERROR"},
		{"ticket missing ids", http.MethodPost, "/generate-ticket-qr", `{"strategy_id":5}`, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantCode, decode(t, rec)["code"])
		})
	}
}

func TestSimulateAndHistory(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/simulate",
		`{"platform":"ibon","entry_time":"early","ticket_type":"3800","network":"fast","user_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{
		"success_rate": float64(100),
		"suggestion":   scoring.SuggestionKeepGoing,
	}, decode(t, rec))

	// Numeric ticket types and string user ids are accepted.
	rec = do(e, http.MethodPost, "/simulate",
		`{"platform":"拓元","entry_time":"late","ticket_type":6800,"network":"slow","user_id":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{
		"success_rate": float64(63),
		"suggestion":   scoring.SuggestionCheaperTier,
	}, decode(t, rec))

	// Unknown values score zero instead of failing.
	rec = do(e, http.MethodPost, "/simulate", `{"platform":"Ticketmaster","user_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["success_rate"])

	rec = do(e, http.MethodGet, "/history?user_id=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var history []model.Simulation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 3)
	assert.Equal(t, "Ticketmaster", history[0].Platform)
	assert.Equal(t, "6800", history[1].TicketType)
	assert.Equal(t, 100, history[2].SuccessRate)
	for _, h := range history {
		assert.Equal(t, uint(1), h.UserID)
	}

	rec = do(e, http.MethodGet, "/history?user_id=42", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestQREndpoints(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/generate-qr", `{"data":"https://example.com/ticket/1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(decode(t, rec)["qrCode"].(string), "data:image/png;base64,"))

	rec = do(e, http.MethodPost, "/generate-ticket-qr", `{"strategy_id":0.42,"user_id":1,"ticket_number":"TKT-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "TKT-1", body["ticket_number"])
	assert.True(t, strings.HasPrefix(body["qrCode"].(string), "data:image/png;base64,"))

	rec = do(e, http.MethodPost, "/generate-ticket-qr", `{"strategy_id":7,"user_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["ticket_number"], 12)
}

func TestOperationalRoutes(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	do(e, http.MethodPost, "/logout", "")
	rec = do(e, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ticketsim_http_requests_total")

	rec = do(e, http.MethodGet, "/logout", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPanicsAreRecoveredAndCounted(t *testing.T) {
	e := newTestServer(t)
	e.GET("/panics", func(c echo.Context) error {
		panic("boom")
	})

	before := testutil.ToFloat64(metrics.RequestCounter.WithLabelValues("500", http.MethodGet, "/panics"))
	rec := do(e, http.MethodGet, "/panics", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RequestCounter.WithLabelValues("500", http.MethodGet, "/panics")))
}

func TestNumericTicketFieldsOverHTTP(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/simulate",
		`{"platform":"ibon","entry_time":"early","ticket_type":3800.0,"network":"fast","user_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(100), decode(t, rec)["success_rate"])

	rec = do(e, http.MethodPost, "/generate-ticket-qr", `{"strategy_id":0.42,"user_id":1,"ticket_number":12345}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "12345", decode(t, rec)["ticket_number"])
}

func TestCORSPreflight(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/simulate", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:19006")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestRequestIDIsEchoed(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/logout", "")
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
