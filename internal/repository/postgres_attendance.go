package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

type PostgresAttendanceRepository struct {
	db *pgxpool.Pool
}

func NewPostgresAttendanceRepository(db *pgxpool.Pool) *PostgresAttendanceRepository {
	return &PostgresAttendanceRepository{
		db: db,
	}
}

func (p *PostgresAttendanceRepository) Attend(
	ctx context.Context,
	sessionID,
	ticketID uuid.UUID) (*domain.Attendance, error) {

	var attendance *domain.Attendance

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var ticket domain.Ticket

		// the ticket row lock serializes concurrent admissions with the same ticket
		query := `SELECT id, type, purchase_date, user_id FROM tickets WHERE id = $1 FOR UPDATE`

		err := tx.QueryRow(ctx, query, ticketID).Scan(&ticket.ID, &ticket.Type, &ticket.PurchaseDate, &ticket.UserID)
		if err != nil {
			return notFoundAs(err, domain.ErrTicketNotFound)
		}

		ticket.Attendances, err = loadAttendances(ctx, tx, ticket.ID)
		if err != nil {
			return err
		}

		var session *domain.Session

		query = `SELECT id, status, start_time, end_time, hall_id, movie_id FROM sessions WHERE id = $1 FOR SHARE`

		var s domain.Session
		err = tx.QueryRow(ctx, query, sessionID).Scan(&s.ID, &s.Status, &s.StartTime, &s.EndTime, &s.HallID, &s.MovieID)
		switch {
		case err == nil:
			session = &s
		case !errors.Is(err, pgx.ErrNoRows):
			return err
		}

		err = domain.CheckAttendance(&ticket, session)
		if err != nil {
			return err
		}

		attendance = &domain.Attendance{SessionID: sessionID, TicketID: ticketID}

		query = `
			INSERT INTO session_attendances (session_id, ticket_id)
			VALUES ($1, $2)
			RETURNING id, created_at
		`

		return tx.QueryRow(ctx, query, sessionID, ticketID).Scan(&attendance.ID, &attendance.CreatedAt)
	})
	if err != nil {
		return nil, err
	}

	return attendance, nil
}

func (p *PostgresAttendanceRepository) GetHallAttendance(
	ctx context.Context,
	hallID uuid.UUID,
	dateRange domain.DateRange) (*domain.HallAttendance, error) {

	query := `
		SELECT s.id, s.start_time, s.end_time, COUNT(a.id)
		FROM sessions s
		LEFT JOIN session_attendances a ON a.session_id = s.id
		WHERE s.hall_id = $1
			AND ($2::timestamptz IS NULL OR s.start_time >= $2)
			AND ($3::timestamptz IS NULL OR s.start_time <= $3)
		GROUP BY s.id
		ORDER BY s.start_time, s.id
	`

	rows, err := p.db.Query(ctx, query, hallID, dateRange.StartOrNil(), dateRange.EndOrNil())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := &domain.HallAttendance{
		HallID:   hallID,
		Sessions: make([]domain.SessionAttendance, 0),
	}

	for rows.Next() {
		var entry domain.SessionAttendance

		err := rows.Scan(&entry.SessionID, &entry.StartTime, &entry.EndTime, &entry.Attendances)
		if err != nil {
			return nil, err
		}

		report.Sessions = append(report.Sessions, entry)
		report.TotalAttendances += entry.Attendances
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return report, nil
}

func (p *PostgresAttendanceRepository) CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(a.id)
		FROM sessions s
		LEFT JOIN session_attendances a ON a.session_id = s.id
		WHERE s.id = $1
		GROUP BY s.id
	`

	var count int

	err := p.db.QueryRow(ctx, query, sessionID).Scan(&count)
	if err != nil {
		return 0, notFoundAs(err, domain.ErrSessionNotFound)
	}

	return count, nil
}

func (p *PostgresAttendanceRepository) GetOverview(
	ctx context.Context,
	dateRange domain.DateRange) (*domain.AttendanceOverview, error) {

	query := `
		SELECT COUNT(a.id), COUNT(DISTINCT s.id)
		FROM sessions s
		LEFT JOIN session_attendances a ON a.session_id = s.id
		WHERE ($1::timestamptz IS NULL OR s.start_time >= $1)
			AND ($2::timestamptz IS NULL OR s.start_time <= $2)
	`

	overview := &domain.AttendanceOverview{Range: dateRange}

	err := p.db.QueryRow(ctx, query, dateRange.StartOrNil(), dateRange.EndOrNil()).
		Scan(&overview.OverallAttendance, &overview.Sessions)
	if err != nil {
		return nil, err
	}

	return overview, nil
}
