// Package qrcode renders promo codes as QR images.
package qrcode

import (
	"encoding/json"
	"strings"

	"github.com/skip2/go-qrcode"

	"veluna/internal/domain/service"
	"veluna/internal/errors"
)

const (
	qrTypePromo      = "promo"
	defaultImageSize = 256
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// QRCodeData is the JSON payload encoded in a promo QR code
type QRCodeData struct {
	Code string `json:"code"`
	Type string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	if size <= 0 {
		size = defaultImageSize
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(errorCorrectionLevel),
	}
}

func recoveryLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToUpper(level) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GeneratePromoQR renders a PNG carrying the promo code
func (s *qrcodeService) GeneratePromoQR(code string) ([]byte, error) {
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("promo code is empty")
	}

	payload, err := json.Marshal(QRCodeData{Code: code, Type: qrTypePromo})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal QR code data")
	}

	qr, err := qrcode.New(string(payload), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	png, err := qr.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return png, nil
}

// ParsePromoQR extracts the promo code from scanned QR content
func (s *qrcodeService) ParsePromoQR(qrData string) (string, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal QR code data")
	}

	if data.Type != qrTypePromo {
		return "", errors.Errorf("invalid QR code type: %s", data.Type)
	}
	if data.Code == "" {
		return "", errors.New("QR code carries no promo code")
	}

	return data.Code, nil
}
