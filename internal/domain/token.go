package domain

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

const (
	refreshTokenLength int = 32
)

type RefreshToken struct {
	Plaintext string
	Hash      []byte
	UserID    uuid.UUID
	Expiry    time.Time
}

func GenerateRefreshToken(userID uuid.UUID, ttl time.Duration) (*RefreshToken, error) {
	randomBytes := make([]byte, refreshTokenLength)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}

	plaintext := base64.RawURLEncoding.EncodeToString(randomBytes)

	token := &RefreshToken{
		Plaintext: plaintext,
		Hash:      HashRefreshToken(plaintext),
		UserID:    userID,
		Expiry:    time.Now().Add(ttl),
	}

	return token, nil
}

func HashRefreshToken(plaintext string) []byte {
	hash := sha256.Sum256([]byte(plaintext))
	return hash[:]
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	// Rotate deletes the unexpired token with oldHash and stores the token returned by generate in the
	// same transaction. It returns ErrInvalidRefreshToken when no such token exists.
	Rotate(ctx context.Context, oldHash []byte, generate func(userID uuid.UUID) (*RefreshToken, error)) (*RefreshToken, error)
	Delete(ctx context.Context, hash []byte) error
}
