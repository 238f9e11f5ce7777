// Package qr renders string payloads as QR code images.
package qr

import (
	"encoding/base64"
	"errors"
	"fmt"
	"image/color"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the rendered image width and height in pixels.
const DefaultSize = 300

const dataURIPrefix = "data:image/png;base64,"

// ErrEmptyPayload is returned when asked to encode an empty string.
var ErrEmptyPayload = errors.New("qr payload is empty")

// Encoder maps a payload string to a renderable image data URI.
type Encoder interface {
	Encode(payload string) (string, error)
}

// PNGEncoder renders black-on-white PNG QR codes.
type PNGEncoder struct {
	size  int
	level qrcode.RecoveryLevel
}

// Ensure PNGEncoder implements Encoder
var _ Encoder = (*PNGEncoder)(nil)

// NewPNGEncoder creates an encoder producing size×size images.
func NewPNGEncoder(size int) *PNGEncoder {
	if size <= 0 {
		size = DefaultSize
	}
	return &PNGEncoder{size: size, level: qrcode.Medium}
}

// Encode returns payload as a data:image/png;base64 URI.
func (e *PNGEncoder) Encode(payload string) (string, error) {
	if payload == "" {
		return "", ErrEmptyPayload
	}
	q, err := qrcode.New(payload, e.level)
	if err != nil {
		return "", fmt.Errorf("build qr code: %w", err)
	}
	q.ForegroundColor = color.Black
	q.BackgroundColor = color.White

	png, err := q.PNG(e.size)
	if err != nil {
		return "", fmt.Errorf("render png: %w", err)
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}
