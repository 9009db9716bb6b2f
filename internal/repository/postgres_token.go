package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

type PostgresRefreshTokenRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRefreshTokenRepository(db *pgxpool.Pool) *PostgresRefreshTokenRepository {
	return &PostgresRefreshTokenRepository{
		db: db,
	}
}

func (p *PostgresRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (hash, user_id, expiry)
			VALUES($1, $2, $3)`

	_, err := p.db.Exec(ctx, query, token.Hash, token.UserID, token.Expiry)
	if err != nil {
		return err
	}

	return nil
}

func (p *PostgresRefreshTokenRepository) Rotate(
	ctx context.Context,
	oldHash []byte,
	generate func(userID uuid.UUID) (*domain.RefreshToken, error)) (*domain.RefreshToken, error) {

	var token *domain.RefreshToken

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `DELETE FROM refresh_tokens
			WHERE hash = $1
			RETURNING user_id, expiry > NOW()`

		var (
			userID uuid.UUID
			valid  bool
		)

		err := tx.QueryRow(ctx, query, oldHash).Scan(&userID, &valid)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrInvalidRefreshToken
			}
			return err
		}

		if !valid {
			return domain.ErrInvalidRefreshToken
		}

		token, err = generate(userID)
		if err != nil {
			return err
		}

		query = `INSERT INTO refresh_tokens (hash, user_id, expiry)
			VALUES($1, $2, $3)`

		_, err = tx.Exec(ctx, query, token.Hash, token.UserID, token.Expiry)
		return err
	})
	if err != nil {
		return nil, err
	}

	return token, nil
}

func (p *PostgresRefreshTokenRepository) Delete(ctx context.Context, hash []byte) error {
	query := `DELETE FROM refresh_tokens WHERE hash = $1`

	_, err := p.db.Exec(ctx, query, hash)
	return err
}
