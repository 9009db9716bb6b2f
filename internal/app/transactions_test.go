package app

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-management-system/api"
	"github.com/metinatakli/cinema-management-system/internal/domain"
	"github.com/metinatakli/cinema-management-system/internal/mailer"
	"github.com/metinatakli/cinema-management-system/internal/mocks"
	"github.com/metinatakli/cinema-management-system/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WalletTestSuite struct {
	suite.Suite
	app        *Application
	walletRepo *mocks.MockWalletRepo
	mailer     *mailer.MockMailer
	userID     uuid.UUID
}

func (s *WalletTestSuite) SetupTest() {
	s.walletRepo = new(mocks.MockWalletRepo)
	s.mailer = mailer.NewMockMailer()
	s.userID = uuid.New()

	s.app = newTestApplication(func(a *Application) {
		a.walletRepo = s.walletRepo
		a.mailer = s.mailer
		a.userRepo = &mocks.MockUserRepo{
			GetByIdFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				return &domain.User{ID: id, Email: "brian@example.com"}, nil
			},
		}
	})
}

func TestWalletSuite(t *testing.T) {
	suite.Run(t, new(WalletTestSuite))
}

func decimalEq(want string) any {
	d := decimal.RequireFromString(want)
	return mock.MatchedBy(func(got decimal.Decimal) bool {
		return got.Equal(d)
	})
}

func walletResult(balance string, amount string, txType domain.TransactionType) *domain.WalletResult {
	return &domain.WalletResult{
		Balance:  decimal.RequireFromString(balance),
		Currency: domain.DefaultCurrency,
		Transaction: &domain.Transaction{
			ID:       uuid.New(),
			Amount:   decimal.RequireFromString(amount),
			Currency: domain.DefaultCurrency,
			Type:     txType,
			Date:     time.Now(),
		},
	}
}

func (s *WalletTestSuite) TestDeposit() {
	tests := []struct {
		name           string
		input          any
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
		wantBalance    string
	}{
		{
			name:  "credits the wallet",
			input: map[string]any{"amount": 50.25, "card": "4242424242424242"},
			setupMocks: func() {
				s.walletRepo.On("Deposit", mock.Anything, s.userID, decimalEq("50.25")).
					Return(walletResult("150.25", "50.25", domain.TransactionDeposit), nil).Once()
			},
			wantStatus:  http.StatusOK,
			wantBalance: "150.25",
		},
		{
			name:           "negative amount",
			input:          map[string]any{"amount": -5, "card": "4242424242424242"},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "must be greater than 0",
		},
		{
			name:           "fraction of a cent",
			input:          map[string]any{"amount": 0.004, "card": "4242424242424242"},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: validator.ErrCents,
		},
		{
			name:           "invalid card",
			input:          map[string]any{"amount": 10, "card": "1234"},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: validator.ErrCreditCard,
		},
		{
			name:  "unknown wallet owner",
			input: map[string]any{"amount": 10, "card": "4242424242424242"},
			setupMocks: func() {
				s.walletRepo.On("Deposit", mock.Anything, s.userID, decimalEq("10")).
					Return(nil, domain.ErrUserNotFound).Once()
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "User not found.",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/transactions/deposit", tt.input)
			authorize(s.T(), s.app, r, s.userID, domain.RoleClient)
			serve(s.app, w, r)

			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)

			if tt.wantStatus == http.StatusOK {
				resp := decodeResponse[api.WalletResponse](s.T(), w)
				s.True(decimal.RequireFromString(tt.wantBalance).Equal(resp.Balance))
				s.Require().NotNil(resp.Transaction)
				s.Equal("deposit", resp.Transaction.Type)
				s.Nil(resp.Ticket)
			}

			s.walletRepo.AssertExpectations(s.T())
		})
	}
}

func (s *WalletTestSuite) TestWithdraw() {
	tests := []struct {
		name           string
		input          any
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:  "debits the wallet",
			input: map[string]any{"amount": 20, "bankAccount": "TR330006100519786457841326"},
			setupMocks: func() {
				s.walletRepo.On("Withdraw", mock.Anything, s.userID, decimalEq("20")).
					Return(walletResult("80", "20", domain.TransactionWithdrawal), nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "overdraw",
			input: map[string]any{"amount": 1000, "bankAccount": "TR330006100519786457841326"},
			setupMocks: func() {
				s.walletRepo.On("Withdraw", mock.Anything, s.userID, decimalEq("1000")).
					Return(nil, domain.ErrInsufficientBalance).Once()
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "Insufficient balance.",
		},
		{
			name:           "fraction of a cent",
			input:          map[string]any{"amount": 4.995, "bankAccount": "TR330006100519786457841326"},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: validator.ErrCents,
		},
		{
			name:           "bank account too short",
			input:          map[string]any{"amount": 20, "bankAccount": "123"},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "must be at least 8 characters long",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/transactions/withdraw", tt.input)
			authorize(s.T(), s.app, r, s.userID, domain.RoleClient)
			serve(s.app, w, r)

			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)
			s.walletRepo.AssertExpectations(s.T())
		})
	}
}

func (s *WalletTestSuite) TestBuyTicket() {
	tests := []struct {
		name           string
		path           string
		input          any
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
		wantReceipt    bool
	}{
		{
			name:  "buys a super ticket",
			path:  "/transactions/buy-ticket",
			input: api.BuyTicketRequest{TicketType: "super"},
			setupMocks: func() {
				result := walletResult("30", "20", domain.TransactionTicketPurchased)
				result.Ticket = &domain.Ticket{ID: uuid.New(), Type: domain.TicketSuper, UserID: s.userID}

				s.walletRepo.On("PurchaseTicket", mock.Anything, s.userID, domain.TicketSuper).
					Return(result, nil).Once()
			},
			wantStatus:  http.StatusOK,
			wantReceipt: true,
		},
		{
			name:  "tickets route buys too",
			path:  "/tickets/buy",
			input: api.BuyTicketRequest{TicketType: "regular"},
			setupMocks: func() {
				result := walletResult("40", "10", domain.TransactionTicketPurchased)
				result.Ticket = &domain.Ticket{ID: uuid.New(), Type: domain.TicketRegular, UserID: s.userID}

				s.walletRepo.On("PurchaseTicket", mock.Anything, s.userID, domain.TicketRegular).
					Return(result, nil).Once()
			},
			wantStatus:  http.StatusOK,
			wantReceipt: true,
		},
		{
			name:           "unknown ticket type",
			path:           "/transactions/buy-ticket",
			input:          api.BuyTicketRequest{TicketType: "vip"},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: validator.ErrTicketType,
		},
		{
			name:  "insufficient balance",
			path:  "/transactions/buy-ticket",
			input: api.BuyTicketRequest{TicketType: "super"},
			setupMocks: func() {
				s.walletRepo.On("PurchaseTicket", mock.Anything, s.userID, domain.TicketSuper).
					Return(nil, domain.ErrInsufficientForTicket).Once()
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "Insufficient balance to buy ticket.",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, tt.path, tt.input)
			authorize(s.T(), s.app, r, s.userID, domain.RoleClient)
			serve(s.app, w, r)

			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)

			if tt.wantStatus == http.StatusOK {
				resp := decodeResponse[api.WalletResponse](s.T(), w)
				s.Require().NotNil(resp.Ticket)
				s.Equal(resp.Ticket.Type, tt.input.(api.BuyTicketRequest).TicketType)
				s.Equal("ticket_purchased", resp.Transaction.Type)
			}

			if tt.wantReceipt {
				s.Eventually(func() bool {
					return len(s.mailer.GetSentEmails()) == 1
				}, time.Second, 10*time.Millisecond)

				email := s.mailer.GetSentEmails()[0]
				s.Equal("brian@example.com", email.Recipient)
				s.Equal("ticket_receipt.tmpl", email.TemplateFile)
			}

			s.walletRepo.AssertExpectations(s.T())
		})
	}
}

func (s *WalletTestSuite) TestGetTransactions() {
	ledger := &domain.Ledger{
		Balance:  decimal.NewFromInt(70),
		Currency: domain.DefaultCurrency,
		Transactions: []*domain.Transaction{
			{ID: uuid.New(), Amount: decimal.NewFromInt(100), Type: domain.TransactionDeposit},
			{ID: uuid.New(), Amount: decimal.NewFromInt(30), Type: domain.TransactionWithdrawal},
		},
	}

	s.walletRepo.On("GetLedger", mock.Anything, s.userID).Return(ledger, nil).Once()

	w, r := executeRequest(s.T(), http.MethodGet, "/transactions", nil)
	authorize(s.T(), s.app, r, s.userID, domain.RoleClient)
	serve(s.app, w, r)

	checkErrorResponse(s.T(), w, http.StatusOK, "")

	resp := decodeResponse[api.LedgerResponse](s.T(), w)
	s.True(decimal.NewFromInt(70).Equal(resp.Balance))
	s.Len(resp.Transactions, 2)
	s.walletRepo.AssertExpectations(s.T())
}

func (s *WalletTestSuite) TestGetUserTransactions() {
	tests := []struct {
		name           string
		role           domain.Role
		setupMocks     func(uuid.UUID)
		wantStatus     int
		wantErrMessage string
	}{
		{
			name: "admin reads another ledger",
			role: domain.RoleAdmin,
			setupMocks: func(id uuid.UUID) {
				s.walletRepo.On("GetLedger", mock.Anything, id).
					Return(&domain.Ledger{Transactions: []*domain.Transaction{}}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "unknown user",
			role: domain.RoleSuperAdmin,
			setupMocks: func(id uuid.UUID) {
				s.walletRepo.On("GetLedger", mock.Anything, id).Return(nil, domain.ErrUserNotFound).Once()
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "User not found.",
		},
		{
			name: "database error",
			role: domain.RoleAdmin,
			setupMocks: func(id uuid.UUID) {
				s.walletRepo.On("GetLedger", mock.Anything, id).Return(nil, errors.New("timeout")).Once()
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name:           "client is forbidden",
			role:           domain.RoleClient,
			wantStatus:     http.StatusForbidden,
			wantErrMessage: ErrForbidden,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			target := uuid.New()
			if tt.setupMocks != nil {
				tt.setupMocks(target)
			}

			w, r := executeRequest(s.T(), http.MethodGet, "/transactions/users/"+target.String(), nil)
			authorize(s.T(), s.app, r, s.userID, tt.role)
			serve(s.app, w, r)

			checkErrorResponse(s.T(), w, tt.wantStatus, tt.wantErrMessage)
			s.walletRepo.AssertExpectations(s.T())
		})
	}
}

func (s *WalletTestSuite) TestListTickets() {
	ticket := &domain.Ticket{
		ID:          uuid.New(),
		Type:        domain.TicketSuper,
		Attendances: make([]domain.Attendance, 3),
	}

	s.app.ticketRepo = &mocks.MockTicketRepo{
		GetByUserIdFunc: func(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error) {
			s.Equal(s.userID, userID)
			return []*domain.Ticket{ticket}, nil
		},
	}

	w, r := executeRequest(s.T(), http.MethodGet, "/tickets", nil)
	authorize(s.T(), s.app, r, s.userID, domain.RoleClient)
	serve(s.app, w, r)

	checkErrorResponse(s.T(), w, http.StatusOK, "")

	resp := decodeResponse[[]api.TicketResponse](s.T(), w)
	s.Require().Len(resp, 1)
	s.Equal(3, resp[0].Attendances)
	s.Equal(7, resp[0].RemainingUses)
}
