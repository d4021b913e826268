package service

import (
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// ReceiptQRGenerator encodes a link to the order receipt as a PNG QR code.
type ReceiptQRGenerator struct {
	BaseURL string
}

func (g ReceiptQRGenerator) Generate(orderID uuid.UUID) ([]byte, error) {
	return qrcode.Encode(g.BaseURL+"/orders/"+orderID.String(), qrcode.Medium, 256)
}

var _ ReceiptGenerator = ReceiptQRGenerator{}
