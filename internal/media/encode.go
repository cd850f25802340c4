package media

// Package media converts uploaded avatar/logo images into the base64
// data URLs the marketplace API expects on registration.

import (
	"encoding/base64"
	"fmt"
	"io"
)

// MaxImageBytes is the upload size ceiling (4MB).
const MaxImageBytes = 4 << 20

// allowedImageTypes is the MIME allow-list for profile images.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// AllowedImageType reports whether the MIME type may be uploaded.
func AllowedImageType(mimeType string) bool {
	return allowedImageTypes[mimeType]
}

// EncodeImage reads an uploaded image and returns it as a base64 data
// URL. The MIME type is checked against the allow-list and the size
// against MaxImageBytes before any encoding happens.
func EncodeImage(r io.Reader, mimeType string, declaredSize int64) (string, error) {
	if !AllowedImageType(mimeType) {
		return "", fmt.Errorf("unsupported image type %q: use JPEG, PNG, or WebP", mimeType)
	}
	if declaredSize > MaxImageBytes {
		return "", fmt.Errorf("image is too large (%d bytes): the limit is 4MB", declaredSize)
	}

	// Read one byte past the limit to catch understated sizes.
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("image is too large: the limit is 4MB")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("image is empty")
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
