package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO movies (title, description, duration)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRow(ctx, query, movie.Title, movie.Description, movie.Duration).
			Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)
		if err != nil {
			return err
		}

		images, err := movieImages.insert(ctx, tx, movie.ID, movie.Images)
		if err != nil {
			return err
		}

		movie.Images = images

		return nil
	})
}

func (p *PostgresMovieRepository) GetAll(
	ctx context.Context,
	filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {

	source := `FROM movies
		WHERE ((to_tsvector('simple', title) @@ plainto_tsquery('simple', $1)
			OR to_tsvector('simple', description) @@ plainto_tsquery('simple', $1))
			OR $1 = '')`

	query := `SELECT count(*) OVER(), id, title, description, duration, created_at, updated_at
		` + source + `
		ORDER BY title, id
		LIMIT $2 OFFSET $3`

	rows, err := p.db.Query(ctx, query, filters.Term, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.Duration,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)

		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	totalRecords, err = pageTotal(ctx, p.db, filters.Pagination, totalRecords, len(movies), source, filters.Term)
	if err != nil {
		return nil, nil, err
	}

	return movies, filters.Metadata(totalRecords), nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	query := `SELECT id, title, description, duration, created_at, updated_at
		FROM movies
		WHERE id = $1`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Duration,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrMovieNotFound)
	}

	movie.Images, err = movieImages.load(ctx, p.db, movie.ID)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `UPDATE movies
		SET title = $1, description = $2, duration = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at`

	err := p.db.QueryRow(ctx, query, movie.Title, movie.Description, movie.Duration, movie.ID).
		Scan(&movie.UpdatedAt)

	return notFoundAs(err, domain.ErrMovieNotFound)
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		err := movieImages.deleteAll(ctx, tx, id)
		if err != nil {
			return err
		}

		result, err := tx.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrHasSessions
			}
			return err
		}

		if result.RowsAffected() == 0 {
			return domain.ErrMovieNotFound
		}

		return nil
	})
}

func (p *PostgresMovieRepository) AddImages(
	ctx context.Context,
	movieID uuid.UUID,
	images []domain.Image) ([]domain.Image, error) {

	return movieImages.addImages(ctx, p.db, movieID, images, domain.ErrMovieNotFound)
}

func (p *PostgresMovieRepository) RemoveImage(ctx context.Context, imageID uuid.UUID) error {
	return movieImages.deleteOne(ctx, p.db, imageID)
}
