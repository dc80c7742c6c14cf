package cards

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	qrcode "github.com/skip2/go-qrcode"
)

// BarcodeImage encodes a student ID as a Code128 barcode. IDs containing
// symbols outside the Code128 set fail here, which aborts the whole
// generation run; there is no textual fallback on the card.
func BarcodeImage(id string) (image.Image, error) {
	bc, err := code128.Encode(id)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %q as Code128: %w", id, err)
	}
	scaled, err := barcode.Scale(bc, 600, 160)
	if err != nil {
		return nil, fmt.Errorf("failed to scale barcode for %q: %w", id, err)
	}
	return scaled, nil
}

// QRImage encodes a student ID as a QR code for the card variant that
// carries one.
func QRImage(id string) (image.Image, error) {
	png, err := qrcode.Encode(id, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %q as QR: %w", id, err)
	}
	img, _, err := image.Decode(bytes.NewReader(png))
	if err != nil {
		return nil, fmt.Errorf("failed to decode QR image for %q: %w", id, err)
	}
	return img, nil
}
