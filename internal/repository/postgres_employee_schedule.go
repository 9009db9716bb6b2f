package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

type PostgresEmployeeScheduleRepository struct {
	db *pgxpool.Pool
}

func NewPostgresEmployeeScheduleRepository(db *pgxpool.Pool) *PostgresEmployeeScheduleRepository {
	return &PostgresEmployeeScheduleRepository{
		db: db,
	}
}

func (p *PostgresEmployeeScheduleRepository) Create(ctx context.Context, schedule *domain.EmployeeSchedule) error {
	query := `
		INSERT INTO employee_schedules (employee_id, start_time, end_time, date, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		schedule.EmployeeID,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Date,
		schedule.Description,
	).Scan(&schedule.ID, &schedule.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrEmployeeNotFound
		}
		return err
	}

	return nil
}

func (p *PostgresEmployeeScheduleRepository) GetByEmployee(
	ctx context.Context,
	employeeID uuid.UUID,
	dateRange domain.DateRange) ([]*domain.EmployeeSchedule, error) {

	query := `
		SELECT id, employee_id, start_time, end_time, date, description, created_at
		FROM employee_schedules
		WHERE employee_id = $1
			AND ($2::date IS NULL OR date >= $2)
			AND ($3::date IS NULL OR date <= $3)
		ORDER BY date, start_time
	`

	rows, err := p.db.Query(ctx, query, employeeID, dateRange.StartOrNil(), dateRange.EndOrNil())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*domain.EmployeeSchedule, 0)

	for rows.Next() {
		var schedule domain.EmployeeSchedule

		err := rows.Scan(
			&schedule.ID,
			&schedule.EmployeeID,
			&schedule.StartTime,
			&schedule.EndTime,
			&schedule.Date,
			&schedule.Description,
			&schedule.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		schedules = append(schedules, &schedule)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}
