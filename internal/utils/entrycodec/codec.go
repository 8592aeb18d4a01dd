// Package entrycodec serializes an account entry's sensitive fields into a
// single encrypted bag stored in one persistence column, and reconstructs
// them defensively on the way back out.
package entrycodec

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/core/ports"
)

// Fallback values substituted when a field is missing, empty, or fails to
// decrypt. One corrupt field must not blank an entire ledger page.
const (
	FallbackText    = "[Decryption Failed]"
	FallbackNumeric = "0"
)

// bag keys, fixed by the stored format.
const (
	keyDescription    = "description"
	keyDebit          = "debit"
	keyCredit         = "credit"
	keyRunningTotal   = "runningTotal"
	keyOwnerPublicKey = "ownerPublicKey"
)

// Encode encrypts each sensitive field independently through the cipher and
// returns the serialized JSON bag. Encoding is strict: any cipher failure
// aborts, since a half-encrypted entry must never be persisted.
func Encode(ctx context.Context, cipher ports.Cipher, f domain.EntryFields) (string, error) {
	plain := map[string]string{
		keyDescription:    f.Description,
		keyDebit:          f.Debit.String(),
		keyCredit:         f.Credit.String(),
		keyRunningTotal:   f.RunningTotal.String(),
		keyOwnerPublicKey: f.OwnerPublicKey,
	}

	encrypted := make(map[string]string, len(plain))
	for key, value := range plain {
		ciphertext, err := cipher.Encrypt(ctx, value)
		if err != nil {
			return "", fmt.Errorf("encrypt field %s: %w", key, err)
		}
		encrypted[key] = ciphertext
	}

	bag, err := json.Marshal(encrypted)
	if err != nil {
		return "", fmt.Errorf("marshal encrypted bag: %w", err)
	}
	return string(bag), nil
}

// Decode deserializes and decrypts an encrypted bag. Decoding is defensive:
// a field that is missing or fails to decrypt is replaced by a documented
// fallback and logged, never propagated as a hard failure.
func Decode(ctx context.Context, cipher ports.Cipher, bag string) domain.EntryFields {
	logger := slog.Default()

	var encrypted map[string]string
	if err := json.Unmarshal([]byte(bag), &encrypted); err != nil {
		logger.Warn("Encrypted bag is not valid JSON, substituting fallbacks", slog.String("error", err.Error()))
		encrypted = map[string]string{}
	}

	return domain.EntryFields{
		Description:    decodeText(ctx, cipher, logger, encrypted, keyDescription),
		Debit:          decodeNumeric(ctx, cipher, logger, encrypted, keyDebit),
		Credit:         decodeNumeric(ctx, cipher, logger, encrypted, keyCredit),
		RunningTotal:   decodeNumeric(ctx, cipher, logger, encrypted, keyRunningTotal),
		OwnerPublicKey: decodeText(ctx, cipher, logger, encrypted, keyOwnerPublicKey),
	}
}

func decodeText(ctx context.Context, cipher ports.Cipher, logger *slog.Logger, bag map[string]string, key string) string {
	ciphertext, ok := bag[key]
	if !ok || ciphertext == "" {
		logger.Warn("Encrypted field missing from bag", slog.String("field", key))
		return FallbackText
	}
	plaintext, err := cipher.Decrypt(ctx, ciphertext)
	if err != nil {
		logger.Warn("Failed to decrypt field", slog.String("field", key), slog.String("error", err.Error()))
		return FallbackText
	}
	return plaintext
}

func decodeNumeric(ctx context.Context, cipher ports.Cipher, logger *slog.Logger, bag map[string]string, key string) decimal.Decimal {
	ciphertext, ok := bag[key]
	if !ok || ciphertext == "" {
		logger.Warn("Encrypted field missing from bag", slog.String("field", key))
		return decimal.Zero
	}
	plaintext, err := cipher.Decrypt(ctx, ciphertext)
	if err != nil {
		logger.Warn("Failed to decrypt field", slog.String("field", key), slog.String("error", err.Error()))
		return decimal.Zero
	}
	value, err := decimal.NewFromString(plaintext)
	if err != nil {
		logger.Warn("Decrypted field is not a valid decimal", slog.String("field", key), slog.String("error", err.Error()))
		return decimal.Zero
	}
	return value
}
