package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-management-system/internal/domain"
)

const userColumns = `id, name, email, password_hash, role, balance, currency, created_at, updated_at`

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

func (p *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, balance, currency, created_at, updated_at`

	err := p.db.QueryRow(ctx,
		query,
		user.Name,
		user.Email,
		user.Password.Hash,
		user.Role).Scan(&user.ID, &user.Balance, &user.Currency, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}

		return err
	}

	return nil
}

func (p *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(p.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, notFoundAs(err, domain.ErrRecordNotFound)
	}

	return user, nil
}

func (p *PostgresUserRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(p.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundAs(err, domain.ErrRecordNotFound)
	}

	return user, nil
}

func (p *PostgresUserRepository) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.User, *domain.Metadata, error) {

	return p.list(ctx, pagination, `FROM users`)
}

func (p *PostgresUserRepository) GetEmployees(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.User, *domain.Metadata, error) {

	roles := make([]string, len(domain.EmployeeRoles))
	for i, role := range domain.EmployeeRoles {
		roles[i] = string(role)
	}

	return p.list(ctx, pagination, `FROM users WHERE role = ANY($1)`, roles)
}

// list pages through the users matched by source, a FROM clause whose placeholders are bound to filterArgs.
func (p *PostgresUserRepository) list(
	ctx context.Context,
	pagination domain.Pagination,
	source string,
	filterArgs ...any) ([]*domain.User, *domain.Metadata, error) {

	n := len(filterArgs)
	query := fmt.Sprintf(`SELECT COUNT(*) OVER(), %s %s ORDER BY created_at, id LIMIT $%d OFFSET $%d`,
		userColumns, source, n+1, n+2)

	args := append(append([]any{}, filterArgs...), pagination.Limit(), pagination.Offset())

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	totalRecords := 0

	for rows.Next() {
		var user domain.User

		err := rows.Scan(
			&totalRecords,
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Password.Hash,
			&user.Role,
			&user.Balance,
			&user.Currency,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		users = append(users, &user)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	totalRecords, err = pageTotal(ctx, p.db, pagination, totalRecords, len(users), source, filterArgs...)
	if err != nil {
		return nil, nil, err
	}

	return users, pagination.Metadata(totalRecords), nil
}

func (p *PostgresUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role domain.Role) (*domain.User, error) {
	query := `UPDATE users
		SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + userColumns

	user, err := scanUser(p.db.QueryRow(ctx, query, role, id))
	if err != nil {
		return nil, notFoundAs(err, domain.ErrRecordNotFound)
	}

	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password.Hash,
		&user.Role,
		&user.Balance,
		&user.Currency,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
