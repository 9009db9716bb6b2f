package integration_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-management-system/api"
	"github.com/metinatakli/cinema-management-system/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testCard = "4111111111111111"

type WalletTestSuite struct {
	BaseSuite
}

func TestWalletSuite(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	suite.Run(t, new(WalletTestSuite))
}

func (s *WalletTestSuite) SetupTest() {
	truncateAll(s.T(), s.app.DB)
	s.app.Mailer.Reset()
}

func (s *WalletTestSuite) balance(userID uuid.UUID) decimal.Decimal {
	var balance decimal.Decimal
	err := s.app.DB.QueryRow(context.Background(), "SELECT balance FROM users WHERE id = $1", userID).Scan(&balance)
	require.NoError(s.T(), err)
	return balance
}

// ledgerSum nets the user's transactions: deposits add, everything else subtracts.
func (s *WalletTestSuite) ledgerSum(userID uuid.UUID) decimal.Decimal {
	var sum decimal.Decimal
	err := s.app.DB.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(CASE WHEN type = 'deposit' THEN amount ELSE -amount END), 0)
		FROM transactions WHERE user_id = $1
	`, userID).Scan(&sum)
	require.NoError(s.T(), err)
	return sum
}

func (s *WalletTestSuite) TestDepositThenWithdraw() {
	t := s.T()

	userID, token := createUser(t, s.app, TestUserEmail, domain.RoleClient, "0")

	var deposit api.WalletResponse
	res := do(t, s.app, http.MethodPost, "/transactions/deposit", api.DepositRequest{
		Amount: decimal.RequireFromString("50.25"),
		Card:   testCard,
	}, token, &deposit)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, deposit.Balance.Equal(decimal.RequireFromString("50.25")))
	assert.Equal(t, string(domain.TransactionDeposit), deposit.Transaction.Type)

	var withdraw api.WalletResponse
	res = do(t, s.app, http.MethodPost, "/transactions/withdraw", api.WithdrawRequest{
		Amount:      decimal.RequireFromString("20"),
		BankAccount: "DE89370400440532013000",
	}, token, &withdraw)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, withdraw.Balance.Equal(decimal.RequireFromString("30.25")))

	assert.True(t, s.balance(userID).Equal(decimal.RequireFromString("30.25")))
	assert.Equal(t, 2, countRows(t, s.app.DB, "SELECT COUNT(*) FROM transactions WHERE user_id = $1", userID))

	var ledger api.LedgerResponse
	res = do(t, s.app, http.MethodGet, "/transactions", nil, token, &ledger)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, ledger.Transactions, 2)
	assert.True(t, ledger.Balance.Equal(decimal.RequireFromString("30.25")))
}

func (s *WalletTestSuite) TestOverdrawLeavesBalanceUntouched() {
	t := s.T()

	userID, token := createUser(t, s.app, TestUserEmail, domain.RoleClient, "15")

	var errResp api.ErrorResponse
	res := do(t, s.app, http.MethodPost, "/transactions/withdraw", api.WithdrawRequest{
		Amount:      decimal.RequireFromString("15.01"),
		BankAccount: "DE89370400440532013000",
	}, token, &errResp)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Insufficient balance.", errResp.Message)
	assert.True(t, s.balance(userID).Equal(decimal.NewFromInt(15)))
	assert.Equal(t, 0, countRows(t, s.app.DB, "SELECT COUNT(*) FROM transactions"))
}

func (s *WalletTestSuite) TestParallelWithdrawalsCannotOverdraw() {
	t := s.T()

	userID, token := createUser(t, s.app, TestUserEmail, domain.RoleClient, "15")

	statuses := race(t, s.app, 8, http.MethodPost, "/transactions/withdraw", api.WithdrawRequest{
		Amount:      decimal.NewFromInt(10),
		BankAccount: "DE89370400440532013000",
	}, token)

	assert.Equal(t, 1, countStatus(statuses, http.StatusOK), "statuses: %v", statuses)
	assert.Equal(t, 7, countStatus(statuses, http.StatusBadRequest), "statuses: %v", statuses)
	assert.True(t, s.balance(userID).Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 1, countRows(t, s.app.DB, "SELECT COUNT(*) FROM transactions WHERE user_id = $1", userID))
	assert.True(t, s.ledgerSum(userID).Equal(decimal.NewFromInt(-10)))
}

func (s *WalletTestSuite) TestParallelDepositsAllLand() {
	t := s.T()

	userID, token := createUser(t, s.app, TestUserEmail, domain.RoleClient, "0")

	statuses := race(t, s.app, 12, http.MethodPost, "/transactions/deposit", api.DepositRequest{
		Amount: decimal.RequireFromString("2.50"),
		Card:   testCard,
	}, token)

	assert.Equal(t, 12, countStatus(statuses, http.StatusOK), "statuses: %v", statuses)
	assert.True(t, s.balance(userID).Equal(decimal.NewFromInt(30)))
	assert.True(t, s.ledgerSum(userID).Equal(decimal.NewFromInt(30)))
}

func (s *WalletTestSuite) TestSubCentAmountsAreRejected() {
	t := s.T()

	userID, token := createUser(t, s.app, TestUserEmail, domain.RoleClient, "5")

	var errResp api.ErrorResponse
	res := do(t, s.app, http.MethodPost, "/transactions/withdraw", api.WithdrawRequest{
		Amount:      decimal.RequireFromString("4.995"),
		BankAccount: "DE89370400440532013000",
	}, token, &errResp)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = do(t, s.app, http.MethodPost, "/transactions/deposit", api.DepositRequest{
		Amount: decimal.RequireFromString("0.004"),
		Card:   testCard,
	}, token, &errResp)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	assert.True(t, s.balance(userID).Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 0, countRows(t, s.app.DB, "SELECT COUNT(*) FROM transactions"))
}

func (s *WalletTestSuite) TestBuyTicket() {
	t := s.T()

	userID, token := createUser(t, s.app, TestUserEmail, domain.RoleClient, "25")

	var bought api.WalletResponse
	res := do(t, s.app, http.MethodPost, "/transactions/buy-ticket", api.BuyTicketRequest{
		TicketType: string(domain.TicketSuper),
	}, token, &bought)
	require.Equal(t, http.StatusOK, res.StatusCode)

	require.NotNil(t, bought.Ticket)
	assert.Equal(t, string(domain.TicketSuper), bought.Ticket.Type)
	assert.Equal(t, 10, bought.Ticket.RemainingUses)
	assert.True(t, bought.Balance.Equal(decimal.NewFromInt(5)))

	var errResp api.ErrorResponse
	res = do(t, s.app, http.MethodPost, "/tickets/buy", api.BuyTicketRequest{
		TicketType: string(domain.TicketRegular),
	}, token, &errResp)

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Insufficient balance to buy ticket.", errResp.Message)

	assert.True(t, s.balance(userID).Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 1, countRows(t, s.app.DB, "SELECT COUNT(*) FROM tickets WHERE user_id = $1", userID))
	assert.Equal(t, 1, countRows(t, s.app.DB, "SELECT COUNT(*) FROM transactions WHERE user_id = $1", userID))

	var tickets []api.TicketResponse
	res = do(t, s.app, http.MethodGet, "/tickets", nil, token, &tickets)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, tickets, 1)
	assert.Equal(t, bought.Ticket.Id, tickets[0].Id)
}
