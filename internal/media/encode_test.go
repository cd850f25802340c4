package media

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedImageType(t *testing.T) {
	assert.True(t, AllowedImageType("image/jpeg"))
	assert.True(t, AllowedImageType("image/png"))
	assert.True(t, AllowedImageType("image/webp"))
	assert.False(t, AllowedImageType("image/gif"))
	assert.False(t, AllowedImageType("application/pdf"))
	assert.False(t, AllowedImageType(""))
}

func TestEncodeImage(t *testing.T) {
	t.Run("encodes to a data url", func(t *testing.T) {
		payload := []byte{0xFF, 0xD8, 0xFF, 0xE0}
		got, err := EncodeImage(bytes.NewReader(payload), "image/jpeg", int64(len(payload)))
		require.NoError(t, err)

		require.True(t, strings.HasPrefix(got, "data:image/jpeg;base64,"))
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(got, "data:image/jpeg;base64,"))
		require.NoError(t, err)
		assert.Equal(t, payload, decoded)
	})

	t.Run("rejects disallowed types", func(t *testing.T) {
		_, err := EncodeImage(bytes.NewReader([]byte("x")), "image/gif", 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported image type")
	})

	t.Run("rejects declared oversize", func(t *testing.T) {
		_, err := EncodeImage(bytes.NewReader(nil), "image/png", MaxImageBytes+1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})

	t.Run("catches understated sizes", func(t *testing.T) {
		big := bytes.NewReader(make([]byte, MaxImageBytes+1))
		_, err := EncodeImage(big, "image/png", 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})

	t.Run("rejects empty uploads", func(t *testing.T) {
		_, err := EncodeImage(bytes.NewReader(nil), "image/png", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})
}
