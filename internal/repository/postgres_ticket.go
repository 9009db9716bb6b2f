package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

func (p *PostgresTicketRepository) GetByIdWithAttendances(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	query := `SELECT id, type, purchase_date, user_id FROM tickets WHERE id = $1`

	var ticket domain.Ticket

	err := p.db.QueryRow(ctx, query, id).Scan(&ticket.ID, &ticket.Type, &ticket.PurchaseDate, &ticket.UserID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrTicketNotFound)
	}

	ticket.Attendances, err = loadAttendances(ctx, p.db, ticket.ID)
	if err != nil {
		return nil, err
	}

	return &ticket, nil
}

func (p *PostgresTicketRepository) GetByUserId(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error) {
	query := `
		SELECT t.id, t.type, t.purchase_date, t.user_id, a.id, a.session_id, a.created_at
		FROM tickets t
		LEFT JOIN session_attendances a ON a.ticket_id = t.id
		WHERE t.user_id = $1
		ORDER BY t.purchase_date DESC, t.id, a.created_at
	`

	rows, err := p.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*domain.Ticket, 0)
	byID := make(map[uuid.UUID]*domain.Ticket)

	for rows.Next() {
		var (
			ticket       domain.Ticket
			attendanceID *uuid.UUID
			sessionID    *uuid.UUID
			attendedAt   *time.Time
		)

		err := rows.Scan(
			&ticket.ID,
			&ticket.Type,
			&ticket.PurchaseDate,
			&ticket.UserID,
			&attendanceID,
			&sessionID,
			&attendedAt,
		)
		if err != nil {
			return nil, err
		}

		current, ok := byID[ticket.ID]
		if !ok {
			ticket.Attendances = []domain.Attendance{}
			current = &ticket
			byID[ticket.ID] = current
			tickets = append(tickets, current)
		}

		if attendanceID != nil {
			current.Attendances = append(current.Attendances, domain.Attendance{
				ID:        *attendanceID,
				SessionID: *sessionID,
				TicketID:  current.ID,
				CreatedAt: *attendedAt,
			})
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func loadAttendances(ctx context.Context, q querier, ticketID uuid.UUID) ([]domain.Attendance, error) {
	query := `
		SELECT id, session_id, ticket_id, created_at
		FROM session_attendances
		WHERE ticket_id = $1
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendances := make([]domain.Attendance, 0)

	for rows.Next() {
		var attendance domain.Attendance

		err := rows.Scan(&attendance.ID, &attendance.SessionID, &attendance.TicketID, &attendance.CreatedAt)
		if err != nil {
			return nil, err
		}

		attendances = append(attendances, attendance)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return attendances, nil
}
