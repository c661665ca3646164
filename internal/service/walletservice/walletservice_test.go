package walletservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/ledger"
	"github.com/GlebRadaev/elevatex/internal/pg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

type mocks struct {
	users        *MockUserRepo
	transactions *MockTransactionRepo
	notifier     *MockNotifier
	tx           *pg.MockTXManager
}

var (
	fixedNow = time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	errDB    = errors.New("db error")
)

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		users:        NewMockUserRepo(ctrl),
		transactions: NewMockTransactionRepo(ctrl),
		notifier:     NewMockNotifier(ctrl),
		tx:           pg.NewMockTXManager(ctrl),
	}
	m.tx.EXPECT().Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error { return fn(ctx) }).
		AnyTimes()
	service := New(m.users, m.transactions, m.notifier, m.tx, Options{
		ActivationFee: decimal.NewFromInt(1000),
		MinWithdrawal: decimal.NewFromInt(1000),
	})
	service.now = func() time.Time { return fixedNow }
	service.newReference = func(prefix string) string { return prefix + "TEST" }
	return service, m
}

func user(available, pending int64, activated bool) *domain.User {
	return &domain.User{
		ID:                 1,
		IsActivated:        activated,
		AvailableBalance:   decimal.NewFromInt(available),
		PendingWithdrawals: decimal.NewFromInt(pending),
		TotalEarned:        decimal.NewFromInt(available + pending),
	}
}

func TestGetBalance(t *testing.T) {
	service, m := NewMock(t)
	m.users.EXPECT().FindByID(gomock.Any(), 1).Return(user(1500, 200, true), nil)

	wallet, err := service.GetBalance(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, wallet.AvailableBalance.Equal(decimal.NewFromInt(1500)))
	assert.True(t, wallet.PendingWithdrawals.Equal(decimal.NewFromInt(200)))
	assert.True(t, wallet.IsActivated)
}

func TestGetBalance_UnknownUser(t *testing.T) {
	service, m := NewMock(t)
	m.users.EXPECT().FindByID(gomock.Any(), 1).Return(nil, nil)

	_, err := service.GetBalance(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestInitiateActivation(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(m *mocks)
		wantErr   error
	}{
		{
			name: "Pending activation created",
			mockSetup: func(m *mocks) {
				m.users.EXPECT().FindByID(gomock.Any(), 1).Return(user(0, 0, false), nil)
				m.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
						assert.Equal(t, domain.TransactionActivation, tx.Type)
						assert.Equal(t, domain.StatusPending, tx.Status)
						assert.Equal(t, "ACT-TEST", tx.Reference)
						assert.True(t, tx.Amount.Equal(decimal.NewFromInt(1000)))
						return tx, nil
					})
			},
		},
		{
			name: "Already activated",
			mockSetup: func(m *mocks) {
				m.users.EXPECT().FindByID(gomock.Any(), 1).Return(user(0, 0, true), nil)
			},
			wantErr: ErrAlreadyActivated,
		},
		{
			name: "Unknown user",
			mockSetup: func(m *mocks) {
				m.users.EXPECT().FindByID(gomock.Any(), 1).Return(nil, nil)
			},
			wantErr: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.mockSetup(m)

			tx, err := service.InitiateActivation(context.Background(), 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tx)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, tx)
		})
	}
}

func TestFund(t *testing.T) {
	tests := []struct {
		name      string
		amount    decimal.Decimal
		mockSetup func(m *mocks)
		wantErr   error
	}{
		{
			name:   "Pending funding created",
			amount: decimal.NewFromInt(5000),
			mockSetup: func(m *mocks) {
				m.users.EXPECT().FindByID(gomock.Any(), 1).Return(user(0, 0, false), nil)
				m.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
						assert.Equal(t, domain.TransactionFund, tx.Type)
						assert.Equal(t, domain.StatusPending, tx.Status)
						assert.Equal(t, "FND-TEST", tx.Reference)
						assert.True(t, tx.Amount.Equal(decimal.NewFromInt(5000)))
						return tx, nil
					})
			},
		},
		{
			name:   "Lower bound accepted",
			amount: decimal.NewFromInt(100),
			mockSetup: func(m *mocks) {
				m.users.EXPECT().FindByID(gomock.Any(), 1).Return(user(0, 0, true), nil)
				m.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) { return tx, nil })
			},
		},
		{
			name:      "Below minimum",
			amount:    decimal.RequireFromString("99.99"),
			mockSetup: func(m *mocks) {},
			wantErr:   ErrFundingOutOfRange,
		},
		{
			name:      "Above maximum",
			amount:    decimal.NewFromInt(1_000_001),
			mockSetup: func(m *mocks) {},
			wantErr:   ErrFundingOutOfRange,
		},
		{
			name:      "Negative",
			amount:    decimal.NewFromInt(-500),
			mockSetup: func(m *mocks) {},
			wantErr:   ErrInvalidAmount,
		},
		{
			name:   "Unknown user",
			amount: decimal.NewFromInt(5000),
			mockSetup: func(m *mocks) {
				m.users.EXPECT().FindByID(gomock.Any(), 1).Return(nil, nil)
			},
			wantErr: ErrUserNotFound,
		},
		{
			name:   "Insert fails",
			amount: decimal.NewFromInt(5000),
			mockSetup: func(m *mocks) {
				m.users.EXPECT().FindByID(gomock.Any(), 1).Return(user(0, 0, false), nil)
				m.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errDB)
			},
			wantErr: errDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.mockSetup(m)

			tx, err := service.Fund(context.Background(), 1, tt.amount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tx)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.TransactionFund, tx.Type)
		})
	}
}

func TestWithdraw(t *testing.T) {
	tests := []struct {
		name      string
		amount    decimal.Decimal
		mockSetup func(m *mocks)
		wantErr   error
	}{
		{
			name:   "Reserved",
			amount: decimal.NewFromInt(1200),
			mockSetup: func(m *mocks) {
				m.users.EXPECT().LockByID(gomock.Any(), 1).Return(user(1500, 0, true), nil)
				m.users.EXPECT().UpdateBalances(gomock.Any(), 1, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int, b ledger.Balances) error {
						assert.True(t, b.Available.Equal(decimal.NewFromInt(300)))
						assert.True(t, b.Pending.Equal(decimal.NewFromInt(1200)))
						return nil
					})
				m.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
						assert.Equal(t, "WDR-TEST", tx.Reference)
						assert.Equal(t, domain.TransactionWithdrawal, tx.Type)
						return tx, nil
					})
				m.notifier.EXPECT().Notify(gomock.Any(), 1, domain.NotificationWithdrawal, gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "Below minimum",
			amount:    decimal.NewFromInt(999),
			mockSetup: func(m *mocks) {},
			wantErr:   ErrBelowMinimum,
		},
		{
			name:      "Three fractional digits",
			amount:    decimal.RequireFromString("1000.005"),
			mockSetup: func(m *mocks) {},
			wantErr:   ErrInvalidAmount,
		},
		{
			name:   "Not activated",
			amount: decimal.NewFromInt(1000),
			mockSetup: func(m *mocks) {
				m.users.EXPECT().LockByID(gomock.Any(), 1).Return(user(5000, 0, false), nil)
			},
			wantErr: ErrNotActivated,
		},
		{
			name:   "Insufficient balance",
			amount: decimal.NewFromInt(2000),
			mockSetup: func(m *mocks) {
				m.users.EXPECT().LockByID(gomock.Any(), 1).Return(user(1500, 0, true), nil)
			},
			wantErr: ErrInsufficientBalance,
		},
		{
			name:   "Insert fails",
			amount: decimal.NewFromInt(1000),
			mockSetup: func(m *mocks) {
				m.users.EXPECT().LockByID(gomock.Any(), 1).Return(user(1500, 0, true), nil)
				m.users.EXPECT().UpdateBalances(gomock.Any(), 1, gomock.Any()).Return(nil)
				m.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errDB)
			},
			wantErr: errDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.mockSetup(m)

			tx, err := service.Withdraw(context.Background(), 1, tt.amount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tx)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusPending, tx.Status)
		})
	}
}

func TestConfirmPayment(t *testing.T) {
	pending := func(kind domain.TransactionType, amount int64) *domain.Transaction {
		return &domain.Transaction{ID: 9, UserID: 1, Type: kind, Amount: decimal.NewFromInt(amount), Status: domain.StatusPending, Reference: "REF"}
	}

	tests := []struct {
		name       string
		succeeded  bool
		mockSetup  func(m *mocks)
		wantStatus domain.TransactionStatus
		wantErr    error
	}{
		{
			name:      "Activation confirmed",
			succeeded: true,
			mockSetup: func(m *mocks) {
				m.transactions.EXPECT().LockByReference(gomock.Any(), "REF").Return(pending(domain.TransactionActivation, 1000), nil)
				m.users.EXPECT().Activate(gomock.Any(), 1, fixedNow).Return(true, nil)
				m.transactions.EXPECT().UpdateStatus(gomock.Any(), 9, domain.StatusCompleted).Return(nil)
				m.notifier.EXPECT().Notify(gomock.Any(), 1, domain.NotificationActivation, "Account activated", gomock.Any()).Return(nil)
			},
			wantStatus: domain.StatusCompleted,
		},
		{
			name:      "Activation declined",
			succeeded: false,
			mockSetup: func(m *mocks) {
				m.transactions.EXPECT().LockByReference(gomock.Any(), "REF").Return(pending(domain.TransactionActivation, 1000), nil)
				m.transactions.EXPECT().UpdateStatus(gomock.Any(), 9, domain.StatusFailed).Return(nil)
				m.notifier.EXPECT().Notify(gomock.Any(), 1, domain.NotificationActivation, "Activation failed", gomock.Any()).Return(nil)
			},
			wantStatus: domain.StatusFailed,
		},
		{
			name:      "Withdrawal paid",
			succeeded: true,
			mockSetup: func(m *mocks) {
				m.transactions.EXPECT().LockByReference(gomock.Any(), "REF").Return(pending(domain.TransactionWithdrawal, 1200), nil)
				m.users.EXPECT().LockByID(gomock.Any(), 1).Return(user(300, 1200, true), nil)
				m.users.EXPECT().UpdateBalances(gomock.Any(), 1, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int, b ledger.Balances) error {
						assert.True(t, b.Available.Equal(decimal.NewFromInt(300)))
						assert.True(t, b.Pending.IsZero())
						return nil
					})
				m.transactions.EXPECT().UpdateStatus(gomock.Any(), 9, domain.StatusCompleted).Return(nil)
				m.notifier.EXPECT().Notify(gomock.Any(), 1, domain.NotificationWithdrawal, "Withdrawal paid", gomock.Any()).Return(nil)
			},
			wantStatus: domain.StatusCompleted,
		},
		{
			name:      "Withdrawal failed is reversed",
			succeeded: false,
			mockSetup: func(m *mocks) {
				m.transactions.EXPECT().LockByReference(gomock.Any(), "REF").Return(pending(domain.TransactionWithdrawal, 1200), nil)
				m.users.EXPECT().LockByID(gomock.Any(), 1).Return(user(300, 1200, true), nil)
				m.users.EXPECT().UpdateBalances(gomock.Any(), 1, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int, b ledger.Balances) error {
						assert.True(t, b.Available.Equal(decimal.NewFromInt(1500)))
						assert.True(t, b.Pending.IsZero())
						return nil
					})
				m.transactions.EXPECT().UpdateStatus(gomock.Any(), 9, domain.StatusFailed).Return(nil)
				m.notifier.EXPECT().Notify(gomock.Any(), 1, domain.NotificationWithdrawal, "Withdrawal failed", gomock.Any()).Return(nil)
			},
			wantStatus: domain.StatusFailed,
		},
		{
			name:      "Funding confirmed leaves balances untouched",
			succeeded: true,
			mockSetup: func(m *mocks) {
				m.transactions.EXPECT().LockByReference(gomock.Any(), "REF").Return(pending(domain.TransactionFund, 5000), nil)
				m.users.EXPECT().LockByID(gomock.Any(), gomock.Any()).Times(0)
				m.users.EXPECT().UpdateBalances(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				m.transactions.EXPECT().UpdateStatus(gomock.Any(), 9, domain.StatusCompleted).Return(nil)
				m.notifier.EXPECT().Notify(gomock.Any(), 1, domain.NotificationSystem, "Payment received", gomock.Any()).Return(nil)
			},
			wantStatus: domain.StatusCompleted,
		},
		{
			name:      "Funding declined",
			succeeded: false,
			mockSetup: func(m *mocks) {
				m.transactions.EXPECT().LockByReference(gomock.Any(), "REF").Return(pending(domain.TransactionFund, 5000), nil)
				m.transactions.EXPECT().UpdateStatus(gomock.Any(), 9, domain.StatusFailed).Return(nil)
				m.notifier.EXPECT().Notify(gomock.Any(), 1, domain.NotificationSystem, "Payment failed", gomock.Any()).Return(nil)
			},
			wantStatus: domain.StatusFailed,
		},
		{
			name:      "Already settled is a no-op",
			succeeded: true,
			mockSetup: func(m *mocks) {
				tx := pending(domain.TransactionWithdrawal, 1200)
				tx.Status = domain.StatusCompleted
				m.transactions.EXPECT().LockByReference(gomock.Any(), "REF").Return(tx, nil)
			},
			wantStatus: domain.StatusCompleted,
		},
		{
			name:      "Unknown reference",
			succeeded: true,
			mockSetup: func(m *mocks) {
				m.transactions.EXPECT().LockByReference(gomock.Any(), "REF").Return(nil, nil)
			},
			wantErr: ErrTransactionNotFound,
		},
		{
			name:      "Commission is not gateway-settled",
			succeeded: true,
			mockSetup: func(m *mocks) {
				m.transactions.EXPECT().LockByReference(gomock.Any(), "REF").Return(pending(domain.TransactionCommission, 200), nil)
			},
			wantErr: ErrUnsupportedTransaction,
		},
		{
			name:      "Pending smaller than payout",
			succeeded: true,
			mockSetup: func(m *mocks) {
				m.transactions.EXPECT().LockByReference(gomock.Any(), "REF").Return(pending(domain.TransactionWithdrawal, 1200), nil)
				m.users.EXPECT().LockByID(gomock.Any(), 1).Return(user(300, 100, true), nil)
			},
			wantErr: ledger.ErrLedgerInvariantViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.mockSetup(m)

			tx, err := service.ConfirmPayment(context.Background(), "REF", tt.succeeded)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, tx.Status)
		})
	}
}

func TestGetTransactions(t *testing.T) {
	service, m := NewMock(t)
	expected := []domain.Transaction{{ID: 1, UserID: 1}}
	m.transactions.EXPECT().ListByUser(gomock.Any(), 1, 20, 0).Return(expected, nil)

	txs, err := service.GetTransactions(context.Background(), 1, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, expected, txs)
}

func TestNewReference(t *testing.T) {
	ref := newReference(WithdrawalPrefix)
	assert.Regexp(t, `^WDR-[0-9A-F]{32}$`, ref)
}
