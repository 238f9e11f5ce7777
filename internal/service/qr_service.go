package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ticketsim/internal/cache"
	apperrors "ticketsim/internal/errors"
	"ticketsim/internal/metrics"
	"ticketsim/internal/qr"
)

// DefaultQRCacheTTL bounds how long a rendered payload QR code is cached.
const DefaultQRCacheTTL = 10 * time.Minute

// timestampLayout renders UTC instants like JavaScript's toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// TicketRequest identifies the ticket to encode. StrategyID and UserID are
// opaque JSON values copied into the payload as sent.
type TicketRequest struct {
	StrategyID   interface{}
	UserID       interface{}
	TicketNumber string
}

// Ticket is a rendered ticket QR code.
type Ticket struct {
	QRCode       string
	TicketNumber string
	Payload      string
}

type ticketPayload struct {
	StrategyID   interface{} `json:"strategy_id"`
	UserID       interface{} `json:"user_id"`
	TicketNumber string      `json:"ticket_number"`
	Timestamp    string      `json:"timestamp"`
}

// QRService renders arbitrary payloads and ticket payloads as QR codes.
type QRService interface {
	Generate(ctx context.Context, data string) (string, error)
	GenerateTicket(ctx context.Context, req TicketRequest) (*Ticket, error)
}

type qrService struct {
	encoder   qr.Encoder
	cache     *cache.Client
	ttl       time.Duration
	now       func() time.Time
	newTicket func() string
}

// NewQRService creates a new QR service. The cache may be nil.
func NewQRService(encoder qr.Encoder, cache *cache.Client, ttl time.Duration) QRService {
	if ttl <= 0 {
		ttl = DefaultQRCacheTTL
	}
	return &qrService{
		encoder:   encoder,
		cache:     cache,
		ttl:       ttl,
		now:       time.Now,
		newTicket: randomTicketNumber,
	}
}

func (s *qrService) cacheKey(data string) string {
	sum := sha256.Sum256([]byte(data))
	return "qr:" + hex.EncodeToString(sum[:])
}

// Generate renders data as a QR code data URI.
func (s *qrService) Generate(ctx context.Context, data string) (string, error) {
	if data == "" {
		return "", fmt.Errorf("%w: data", apperrors.ErrMissingField)
	}

	key := s.cacheKey(data)
	if cached, _ := s.cache.Get(ctx, key); cached != nil {
		metrics.CacheHits.WithLabelValues("qr").Inc()
		return string(cached), nil
	}
	metrics.CacheMisses.WithLabelValues("qr").Inc()

	uri, err := s.encoder.Encode(data)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	_ = s.cache.Set(ctx, key, []byte(uri), s.ttl)
	metrics.QRCodesGenerated.WithLabelValues("data").Inc()
	return uri, nil
}

// GenerateTicket encodes {strategy_id, user_id, ticket_number, timestamp}
// as JSON and renders it. A missing ticket number is replaced by a random
// token.
func (s *qrService) GenerateTicket(ctx context.Context, req TicketRequest) (*Ticket, error) {
	if !present(req.StrategyID) || !present(req.UserID) {
		return nil, fmt.Errorf("%w: strategy_id and user_id", apperrors.ErrMissingField)
	}

	ticketNumber := req.TicketNumber
	if ticketNumber == "" {
		ticketNumber = s.newTicket()
	}

	payload, err := json.Marshal(ticketPayload{
		StrategyID:   req.StrategyID,
		UserID:       req.UserID,
		TicketNumber: ticketNumber,
		Timestamp:    s.now().UTC().Format(timestampLayout),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal ticket payload: %w", err)
	}

	uri, err := s.encoder.Encode(string(payload))
	if err != nil {
		return nil, fmt.Errorf("encode ticket qr: %w", err)
	}
	metrics.QRCodesGenerated.WithLabelValues("ticket").Inc()

	return &Ticket{
		QRCode:       uri,
		TicketNumber: ticketNumber,
		Payload:      string(payload),
	}, nil
}

// present reports whether a decoded JSON value counts as supplied: null,
// false, zero and the empty string do not.
func present(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case json.Number:
		f, err := val.Float64()
		return err == nil && f != 0
	case string:
		return val != ""
	default:
		return true
	}
}

func randomTicketNumber() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
