package service

// QRCodeService defines the interface for promo code QR generation and parsing
type QRCodeService interface {
	// GeneratePromoQR renders a PNG QR code that carries the promo code
	GeneratePromoQR(code string) ([]byte, error)

	// ParsePromoQR extracts the promo code from scanned QR content
	ParsePromoQR(qrData string) (string, error)
}
