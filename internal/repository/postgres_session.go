package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

const sessionSelect = `
	SELECT
		s.id, s.start_time, s.end_time, s.status, s.hall_id, s.movie_id, s.created_at, s.updated_at,
		h.name AS hall_name, h.description AS hall_description, h.type, h.capacity, h.accessibility,
		h.maintenance, m.title, m.description AS movie_description, m.duration
	FROM sessions s
	JOIN halls h ON s.hall_id = h.id
	JOIN movies m ON s.movie_id = m.id
`

type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{
		db: db,
	}
}

func (p *PostgresSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		err := p.checkSchedule(ctx, tx, session, uuid.Nil)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO sessions (start_time, end_time, hall_id, movie_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, status, created_at, updated_at
		`

		return tx.QueryRow(
			ctx,
			query,
			session.StartTime,
			session.EndTime,
			session.HallID,
			session.MovieID,
		).Scan(&session.ID, &session.Status, &session.CreatedAt, &session.UpdatedAt)
	})
}

func (p *PostgresSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var exists bool

		err := tx.QueryRow(ctx, `SELECT true FROM sessions WHERE id = $1 FOR UPDATE`, session.ID).Scan(&exists)
		if err != nil {
			return notFoundAs(err, domain.ErrSessionNotFound)
		}

		err = p.checkSchedule(ctx, tx, session, session.ID)
		if err != nil {
			return err
		}

		query := `
			UPDATE sessions
			SET start_time = $1, end_time = $2, hall_id = $3, movie_id = $4, updated_at = NOW()
			WHERE id = $5
			RETURNING status, created_at, updated_at
		`

		return tx.QueryRow(
			ctx,
			query,
			session.StartTime,
			session.EndTime,
			session.HallID,
			session.MovieID,
			session.ID,
		).Scan(&session.Status, &session.CreatedAt, &session.UpdatedAt)
	})
}

// checkSchedule locks the hall and then the movie row so that concurrent scheduling against either one is
// serialized until the transaction ends. Halls are always locked before movies.
func (p *PostgresSessionRepository) checkSchedule(
	ctx context.Context,
	tx pgx.Tx,
	session *domain.Session,
	excludeID uuid.UUID) error {

	var hall domain.Hall

	query := `
		SELECT id, name, description, type, capacity, accessibility, maintenance, created_at, updated_at
		FROM halls
		WHERE id = $1
		FOR UPDATE
	`

	err := tx.QueryRow(ctx, query, session.HallID).Scan(
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
		return notFoundAs(err, domain.ErrHallNotFound)
	}

	var movie domain.Movie

	query = `
		SELECT id, title, description, duration, created_at, updated_at
		FROM movies
		WHERE id = $1
		FOR UPDATE
	`

	err = tx.QueryRow(ctx, query, session.MovieID).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Duration,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return notFoundAs(err, domain.ErrMovieNotFound)
	}

	err = domain.CheckSessionWindow(session.StartTime, session.EndTime, movie.Duration)
	if err != nil {
		return err
	}

	// Overlap is inclusive at both ends and counts every stored session, canceled ones included.
	overlapQuery := func(column string) string {
		return `
			SELECT EXISTS (
				SELECT 1 FROM sessions
				WHERE ` + column + ` = $1
					AND id <> $2
					AND start_time <= $4
					AND end_time >= $3
			)
		`
	}

	var conflict bool

	err = tx.QueryRow(ctx, overlapQuery("hall_id"), session.HallID, excludeID, session.StartTime, session.EndTime).
		Scan(&conflict)
	if err != nil {
		return err
	}
	if conflict {
		return domain.ErrHallDoubleBooked
	}

	err = tx.QueryRow(ctx, overlapQuery("movie_id"), session.MovieID, excludeID, session.StartTime, session.EndTime).
		Scan(&conflict)
	if err != nil {
		return err
	}
	if conflict {
		return domain.ErrMovieDoubleBooked
	}

	session.Hall = &hall
	session.Movie = &movie

	return nil
}

func (p *PostgresSessionRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	query := sessionSelect + `WHERE s.id = $1`

	session, err := scanSession(p.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundAs(err, domain.ErrSessionNotFound)
	}

	return session, nil
}

func (p *PostgresSessionRepository) GetAll(
	ctx context.Context,
	filters domain.SessionFilters,
	pagination domain.Pagination) ([]*domain.Session, *domain.Metadata, error) {

	source := `FROM (` + sessionSelect + `) sub
		WHERE ($1::uuid IS NULL OR sub.hall_id = $1)
			AND ($2::uuid IS NULL OR sub.movie_id = $2)
			AND ($3::text IS NULL OR sub.status = $3)
			AND ($4::timestamptz IS NULL OR sub.start_time >= $4)
			AND ($5::timestamptz IS NULL OR sub.start_time <= $5)`

	query := `
		SELECT COUNT(*) OVER(), sub.*
		` + source + `
		ORDER BY sub.start_time, sub.id
		LIMIT $6 OFFSET $7
	`

	filterArgs := []any{
		filters.HallID,
		filters.MovieID,
		filters.Status,
		filters.Range.StartOrNil(),
		filters.Range.EndOrNil(),
	}

	rows, err := p.db.Query(ctx, query, append(filterArgs, pagination.Limit(), pagination.Offset())...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	totalRecords := 0

	for rows.Next() {
		session, err := scanSession(rows, &totalRecords)
		if err != nil {
			return nil, nil, err
		}

		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	totalRecords, err = pageTotal(ctx, p.db, pagination, totalRecords, len(sessions), source, filterArgs...)
	if err != nil {
		return nil, nil, err
	}

	return sessions, pagination.Metadata(totalRecords), nil
}

func (p *PostgresSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := p.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

func (p *PostgresSessionRepository) Cancel(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	query := `UPDATE sessions
		SET status = 'canceled', updated_at = NOW()
		WHERE id = $1`

	result, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return nil, err
	}

	if result.RowsAffected() == 0 {
		return nil, domain.ErrSessionNotFound
	}

	return p.GetById(ctx, id)
}

// scanSession reads one sessionSelect row. Leading destinations, such as a window count, are scanned first.
func scanSession(row pgx.Row, leading ...any) (*domain.Session, error) {
	var (
		session domain.Session
		hall    domain.Hall
		movie   domain.Movie
	)

	dest := append(leading,
		&session.ID,
		&session.StartTime,
		&session.EndTime,
		&session.Status,
		&session.HallID,
		&session.MovieID,
		&session.CreatedAt,
		&session.UpdatedAt,
		&hall.Name,
		&hall.Description,
		&hall.Type,
		&hall.Capacity,
		&hall.Accessibility,
		&hall.Maintenance,
		&movie.Title,
		&movie.Description,
		&movie.Duration,
	)

	err := row.Scan(dest...)
	if err != nil {
		return nil, err
	}

	hall.ID = session.HallID
	movie.ID = session.MovieID
	session.Hall = &hall
	session.Movie = &movie

	return &session, nil
}
