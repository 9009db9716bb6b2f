package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

// imageTable describes one of the per-owner image tables. Both fields are fixed identifiers, never input.
type imageTable struct {
	name        string
	ownerColumn string
}

var (
	hallImages  = imageTable{name: "hall_images", ownerColumn: "hall_id"}
	movieImages = imageTable{name: "movie_images", ownerColumn: "movie_id"}
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (t imageTable) insert(ctx context.Context, tx pgx.Tx, ownerID uuid.UUID, images []domain.Image) ([]domain.Image, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s, filename, content_type, data)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`, t.name, t.ownerColumn)

	stored := make([]domain.Image, 0, len(images))

	for _, image := range images {
		image.OwnerID = ownerID

		err := tx.QueryRow(ctx, query, ownerID, image.Filename, image.ContentType, image.Data).
			Scan(&image.ID, &image.CreatedAt)
		if err != nil {
			return nil, err
		}

		stored = append(stored, image)
	}

	return stored, nil
}

func (t imageTable) load(ctx context.Context, q querier, ownerID uuid.UUID) ([]domain.Image, error) {
	query := fmt.Sprintf(`SELECT id, %s, filename, content_type, data, created_at
		FROM %s
		WHERE %s = $1
		ORDER BY created_at, id`, t.ownerColumn, t.name, t.ownerColumn)

	rows, err := q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]domain.Image, 0)

	for rows.Next() {
		var image domain.Image

		err := rows.Scan(
			&image.ID,
			&image.OwnerID,
			&image.Filename,
			&image.ContentType,
			&image.Data,
			&image.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		images = append(images, image)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return images, nil
}

func (t imageTable) deleteAll(ctx context.Context, q querier, ownerID uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.name, t.ownerColumn)

	_, err := q.Exec(ctx, query, ownerID)
	return err
}

func (t imageTable) deleteOne(ctx context.Context, db *pgxpool.Pool, imageID uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.name)

	result, err := db.Exec(ctx, query, imageID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrImageNotFound
	}

	return nil
}

// addImages stores images for an existing owner; notFound is returned when the owner row is missing.
func (t imageTable) addImages(
	ctx context.Context,
	db *pgxpool.Pool,
	ownerID uuid.UUID,
	images []domain.Image,
	notFound error) ([]domain.Image, error) {

	var stored []domain.Image

	err := runInTx(ctx, db, func(tx pgx.Tx) error {
		var err error

		stored, err = t.insert(ctx, tx, ownerID, images)
		if err != nil && isForeignKeyViolation(err) {
			return notFound
		}

		return err
	})
	if err != nil {
		return nil, err
	}

	return stored, nil
}
