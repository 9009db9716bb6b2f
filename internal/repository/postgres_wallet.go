package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-management-system/internal/domain"
	"github.com/shopspring/decimal"
)

type PostgresWalletRepository struct {
	db *pgxpool.Pool
}

func NewPostgresWalletRepository(db *pgxpool.Pool) *PostgresWalletRepository {
	return &PostgresWalletRepository{
		db: db,
	}
}

func (p *PostgresWalletRepository) Deposit(
	ctx context.Context,
	userID uuid.UUID,
	amount decimal.Decimal) (*domain.WalletResult, error) {

	return p.apply(ctx, userID, func(tx pgx.Tx, user *domain.User) (*domain.WalletResult, error) {
		err := user.Credit(amount)
		if err != nil {
			return nil, err
		}

		return p.record(ctx, tx, user, amount, domain.TransactionDeposit)
	})
}

func (p *PostgresWalletRepository) Withdraw(
	ctx context.Context,
	userID uuid.UUID,
	amount decimal.Decimal) (*domain.WalletResult, error) {

	return p.apply(ctx, userID, func(tx pgx.Tx, user *domain.User) (*domain.WalletResult, error) {
		err := user.Debit(amount)
		if err != nil {
			return nil, err
		}

		return p.record(ctx, tx, user, amount, domain.TransactionWithdrawal)
	})
}

func (p *PostgresWalletRepository) PurchaseTicket(
	ctx context.Context,
	userID uuid.UUID,
	ticketType domain.TicketType) (*domain.WalletResult, error) {

	return p.apply(ctx, userID, func(tx pgx.Tx, user *domain.User) (*domain.WalletResult, error) {
		cost, err := user.Charge(ticketType)
		if err != nil {
			return nil, err
		}

		ticket := &domain.Ticket{
			Type:        ticketType,
			UserID:      user.ID,
			Attendances: []domain.Attendance{},
		}

		query := `
			INSERT INTO tickets (type, user_id)
			VALUES ($1, $2)
			RETURNING id, purchase_date
		`

		err = tx.QueryRow(ctx, query, ticket.Type, ticket.UserID).Scan(&ticket.ID, &ticket.PurchaseDate)
		if err != nil {
			return nil, err
		}

		result, err := p.record(ctx, tx, user, cost, domain.TransactionTicketPurchased)
		if err != nil {
			return nil, err
		}

		result.Ticket = ticket

		return result, nil
	})
}

// apply locks the user's row for the duration of fn. fn mutates the in-memory balance and appends the
// ledger entry; the new balance is written only if fn succeeds.
func (p *PostgresWalletRepository) apply(
	ctx context.Context,
	userID uuid.UUID,
	fn func(tx pgx.Tx, user *domain.User) (*domain.WalletResult, error)) (*domain.WalletResult, error) {

	var result *domain.WalletResult

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		user := domain.User{ID: userID}

		query := `SELECT balance, currency FROM users WHERE id = $1 FOR UPDATE`

		err := tx.QueryRow(ctx, query, userID).Scan(&user.Balance, &user.Currency)
		if err != nil {
			return notFoundAs(err, domain.ErrUserNotFound)
		}

		result, err = fn(tx, &user)
		if err != nil {
			return err
		}

		query = `UPDATE users SET balance = $1, updated_at = NOW() WHERE id = $2`

		_, err = tx.Exec(ctx, query, user.Balance, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (p *PostgresWalletRepository) record(
	ctx context.Context,
	tx pgx.Tx,
	user *domain.User,
	amount decimal.Decimal,
	txType domain.TransactionType) (*domain.WalletResult, error) {

	transaction := &domain.Transaction{
		UserID:   user.ID,
		Amount:   amount,
		Currency: user.Currency,
		Type:     txType,
	}

	query := `
		INSERT INTO transactions (user_id, amount, currency, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, date
	`

	err := tx.QueryRow(ctx, query, transaction.UserID, transaction.Amount, transaction.Currency, transaction.Type).
		Scan(&transaction.ID, &transaction.Date)
	if err != nil {
		return nil, err
	}

	return &domain.WalletResult{
		Balance:     user.Balance,
		Currency:    user.Currency,
		Transaction: transaction,
	}, nil
}

func (p *PostgresWalletRepository) GetLedger(ctx context.Context, userID uuid.UUID) (*domain.Ledger, error) {
	ledger := domain.Ledger{Transactions: make([]*domain.Transaction, 0)}

	err := p.db.QueryRow(ctx, `SELECT balance, currency FROM users WHERE id = $1`, userID).
		Scan(&ledger.Balance, &ledger.Currency)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound)
	}

	query := `
		SELECT id, user_id, amount, currency, type, date
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, id
	`

	rows, err := p.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var transaction domain.Transaction

		err := rows.Scan(
			&transaction.ID,
			&transaction.UserID,
			&transaction.Amount,
			&transaction.Currency,
			&transaction.Type,
			&transaction.Date,
		)
		if err != nil {
			return nil, err
		}

		ledger.Transactions = append(ledger.Transactions, &transaction)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &ledger, nil
}
