package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_RoundTrip(t *testing.T) {
	original := ResetPayload{Email: "user@example.com", Token: "e4f6c1aa-18a2-4f5e-9f60-2dce7408c7e2"}

	decoded, err := DecodePayload(EncodePayload(original))

	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodePayload_NotBase64(t *testing.T) {
	_, err := DecodePayload("%%%not-base64%%%")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodePayload_NotJSON(t *testing.T) {
	encoded := base64.URLEncoding.EncodeToString([]byte("plain text, no json"))

	_, err := DecodePayload(encoded)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodePayload_MissingFields(t *testing.T) {
	for _, body := range []string{
		`{}`,
		`{"email":"user@example.com"}`,
		`{"token":"tok-1"}`,
		`{"email":"","token":""}`,
	} {
		encoded := base64.URLEncoding.EncodeToString([]byte(body))

		_, err := DecodePayload(encoded)
		assert.ErrorIs(t, err, ErrInvalidToken, "payload %s must be rejected", body)
	}
}
