package ticket

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// QRCodePNG renders the scannable code for a credential as a PNG image
// of the payload URL.
func QRCodePNG(origin string, c Credential) ([]byte, error) {
	png, err := qrcode.Encode(PayloadURL(origin, c), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
