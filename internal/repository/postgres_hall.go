package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

type PostgresHallRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHallRepository(db *pgxpool.Pool) *PostgresHallRepository {
	return &PostgresHallRepository{
		db: db,
	}
}

func (p *PostgresHallRepository) Create(ctx context.Context, hall *domain.Hall) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO halls (name, description, type, capacity, accessibility, maintenance)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRow(
			ctx,
			query,
			hall.Name,
			hall.Description,
			hall.Type,
			hall.Capacity,
			hall.Accessibility,
			hall.Maintenance,
		).Scan(&hall.ID, &hall.CreatedAt, &hall.UpdatedAt)
		if err != nil {
			return err
		}

		images, err := hallImages.insert(ctx, tx, hall.ID, hall.Images)
		if err != nil {
			return err
		}

		hall.Images = images

		return nil
	})
}

func (p *PostgresHallRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Hall, error) {
	query := `
		SELECT id, name, description, type, capacity, accessibility, maintenance, created_at, updated_at
		FROM halls
		WHERE id = $1
	`

	var hall domain.Hall

	err := p.db.QueryRow(ctx, query, id).Scan(
		&hall.ID,
		&hall.Name,
		&hall.Description,
		&hall.Type,
		&hall.Capacity,
		&hall.Accessibility,
		&hall.Maintenance,
		&hall.CreatedAt,
		&hall.UpdatedAt,
	)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrHallNotFound)
	}

	hall.Images, err = hallImages.load(ctx, p.db, hall.ID)
	if err != nil {
		return nil, err
	}

	return &hall, nil
}

func (p *PostgresHallRepository) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.Hall, *domain.Metadata, error) {

	const source = `FROM halls`

	query := `
		SELECT COUNT(*) OVER(), id, name, description, type, capacity, accessibility, maintenance,
			created_at, updated_at
		` + source + `
		ORDER BY name, id
		LIMIT $1 OFFSET $2
	`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	halls := make([]*domain.Hall, 0)
	totalRecords := 0

	for rows.Next() {
		var hall domain.Hall

		err := rows.Scan(
			&totalRecords,
			&hall.ID,
			&hall.Name,
			&hall.Description,
			&hall.Type,
			&hall.Capacity,
			&hall.Accessibility,
			&hall.Maintenance,
			&hall.CreatedAt,
			&hall.UpdatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		halls = append(halls, &hall)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	totalRecords, err = pageTotal(ctx, p.db, pagination, totalRecords, len(halls), source)
	if err != nil {
		return nil, nil, err
	}

	return halls, pagination.Metadata(totalRecords), nil
}

func (p *PostgresHallRepository) Update(ctx context.Context, hall *domain.Hall) error {
	query := `
		UPDATE halls
		SET name = $1, description = $2, type = $3, capacity = $4, accessibility = $5, maintenance = $6,
			updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		hall.Name,
		hall.Description,
		hall.Type,
		hall.Capacity,
		hall.Accessibility,
		hall.Maintenance,
		hall.ID,
	).Scan(&hall.UpdatedAt)

	return notFoundAs(err, domain.ErrHallNotFound)
}

func (p *PostgresHallRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		err := hallImages.deleteAll(ctx, tx, id)
		if err != nil {
			return err
		}

		result, err := tx.Exec(ctx, `DELETE FROM halls WHERE id = $1`, id)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrHasSessions
			}
			return err
		}

		if result.RowsAffected() == 0 {
			return domain.ErrHallNotFound
		}

		return nil
	})
}

func (p *PostgresHallRepository) AddImages(
	ctx context.Context,
	hallID uuid.UUID,
	images []domain.Image) ([]domain.Image, error) {

	return hallImages.addImages(ctx, p.db, hallID, images, domain.ErrHallNotFound)
}

func (p *PostgresHallRepository) RemoveImage(ctx context.Context, imageID uuid.UUID) error {
	return hallImages.deleteOne(ctx, p.db, imageID)
}
