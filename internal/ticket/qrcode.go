package ticket

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

const dataURIPrefix = "data:image/png;base64,"

// QRPNG encodes text as a QR code PNG of size x size pixels with medium
// error correction.
func QRPNG(text string, size int) ([]byte, error) {
	qr, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	png, err := qr.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR to PNG: %w", err)
	}
	return png, nil
}

// QRDataURI returns the QR code for text as a PNG data URI that can be
// used directly as an <img> source.
func QRDataURI(text string, size int) (string, error) {
	png, err := QRPNG(text, size)
	if err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}

// decodeDataURI returns the PNG bytes held in a data URI produced by
// QRDataURI.
func decodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, dataURIPrefix) {
		return nil, errors.New("not a PNG data URI")
	}
	return base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, dataURIPrefix))
}
