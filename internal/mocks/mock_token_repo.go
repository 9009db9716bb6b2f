package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

// MockRefreshTokenRepo is a mock implementation of RefreshTokenRepository
type MockRefreshTokenRepo struct {
	domain.RefreshTokenRepository
	CreateFunc func(ctx context.Context, token *domain.RefreshToken) error
	RotateFunc func(
		ctx context.Context,
		oldHash []byte,
		generate func(userID uuid.UUID) (*domain.RefreshToken, error)) (*domain.RefreshToken, error)
	DeleteFunc func(ctx context.Context, hash []byte) error
}

func (m *MockRefreshTokenRepo) Create(ctx context.Context, token *domain.RefreshToken) error {
	return m.CreateFunc(ctx, token)
}

func (m *MockRefreshTokenRepo) Rotate(
	ctx context.Context,
	oldHash []byte,
	generate func(userID uuid.UUID) (*domain.RefreshToken, error)) (*domain.RefreshToken, error) {

	return m.RotateFunc(ctx, oldHash, generate)
}

func (m *MockRefreshTokenRepo) Delete(ctx context.Context, hash []byte) error {
	return m.DeleteFunc(ctx, hash)
}
