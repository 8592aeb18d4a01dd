package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeSequenceToken(t *testing.T) {
	token := EncodeSequenceToken(42)
	assert.NotEmpty(t, token, "Token should not be empty")

	sequenceNo, err := DecodeSequenceToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, int64(42), sequenceNo, "Sequence number should match after decode")

	// Large sequence numbers survive the round trip too
	big := int64(9_223_372_036_854_775_807)
	sequenceNo, err = DecodeSequenceToken(EncodeSequenceToken(big))
	assert.NoError(t, err)
	assert.Equal(t, big, sequenceNo)
}

func TestDecodeSequenceTokenError(t *testing.T) {
	_, err := DecodeSequenceToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	// Valid base64, but not a number
	notANumber := base64.StdEncoding.EncodeToString([]byte("forty-two"))
	_, err = DecodeSequenceToken(notANumber)
	assert.Error(t, err, "Should return an error for a non-numeric payload")
	assert.Contains(t, err.Error(), "sequence parse")
}

func TestEncodeDecodeTimeIDToken(t *testing.T) {
	createdAt := time.Date(2025, 5, 15, 14, 30, 45, 123456789, time.UTC)
	id := "2f9cfe39-4f4a-4d0a-9a5c-21a1f1a34f5e"

	token := EncodeTimeIDToken(createdAt, id)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeTimeIDToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedAt, "Creation time should match after decode")
	assert.Equal(t, id, decodedID, "Row id should match after decode")
}

func TestDecodeTimeIDTokenError(t *testing.T) {
	_, _, err := DecodeTimeIDToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	// Missing separator
	noSeparator := base64.StdEncoding.EncodeToString([]byte("2025-05-15T00:00:00Z"))
	_, _, err = DecodeTimeIDToken(noSeparator)
	assert.Error(t, err, "Should return an error for a token without a separator")
	assert.Contains(t, err.Error(), "split")

	// Bad timestamp
	badTime := base64.StdEncoding.EncodeToString([]byte("notadate|some-id"))
	_, _, err = DecodeTimeIDToken(badTime)
	assert.Error(t, err, "Should return an error for an unparseable timestamp")
	assert.Contains(t, err.Error(), "created_at parse")
}
