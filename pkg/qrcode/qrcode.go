package qrcode

import qr "github.com/skip2/go-qrcode"

const defaultSize = 512

// Generate renders the content as a PNG QR code.
func Generate(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = defaultSize
	}
	return qr.Encode(content, qr.Medium, size)
}
