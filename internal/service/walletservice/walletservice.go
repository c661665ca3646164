package walletservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/ledger"
	"github.com/GlebRadaev/elevatex/internal/metrics"
	"github.com/GlebRadaev/elevatex/internal/pg"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=walletservice.go -destination=mock_walletservice.go -package=walletservice

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	LockByID(ctx context.Context, id int) (*domain.User, error)
	UpdateBalances(ctx context.Context, userID int, b ledger.Balances) error
	Activate(ctx context.Context, userID int, at time.Time) (bool, error)
}

type TransactionRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	LockByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, id int, status domain.TransactionStatus) error
	ListByUser(ctx context.Context, userID, limit, offset int) ([]domain.Transaction, error)
}

type Notifier interface {
	Notify(ctx context.Context, userID int, kind domain.NotificationType, title, message string) error
}

var (
	ErrInsufficientBalance    = ledger.ErrInsufficientBalance
	ErrInvalidAmount          = ledger.ErrInvalidAmount
	ErrBelowMinimum           = errors.New("amount is below the minimum withdrawal")
	ErrFundingOutOfRange      = errors.New("funding amount is out of range")
	ErrNotActivated           = errors.New("account is not activated")
	ErrAlreadyActivated       = errors.New("account is already activated")
	ErrUserNotFound           = errors.New("user not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrUnsupportedTransaction = errors.New("transaction is not settled by the payment gateway")
)

const (
	ActivationPrefix = "ACT-"
	WithdrawalPrefix = "WDR-"
	FundPrefix       = "FND-"
)

var (
	MinFunding = decimal.NewFromInt(100)
	MaxFunding = decimal.NewFromInt(1_000_000)
)

type Options struct {
	ActivationFee decimal.Decimal
	MinWithdrawal decimal.Decimal
}

type Service struct {
	userRepo        UserRepo
	transactionRepo TransactionRepo
	notifier        Notifier
	txManager       pg.TXManager
	opts            Options
	now             func() time.Time
	newReference    func(prefix string) string
}

func New(userRepo UserRepo, transactionRepo TransactionRepo, notifier Notifier, txManager pg.TXManager, opts Options) *Service {
	return &Service{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		notifier:        notifier,
		txManager:       txManager,
		opts:            opts,
		now:             time.Now,
		newReference:    newReference,
	}
}

func newReference(prefix string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

func (s *Service) GetBalance(ctx context.Context, userID int) (*domain.Wallet, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &domain.Wallet{
		UserID:             user.ID,
		AvailableBalance:   user.AvailableBalance,
		PendingWithdrawals: user.PendingWithdrawals,
		TotalEarned:        user.TotalEarned,
		IsActivated:        user.IsActivated,
		ActivationDate:     user.ActivationDate,
	}, nil
}

// InitiateActivation records a pending activation payment. The account is
// activated when the gateway confirms it.
func (s *Service) InitiateActivation(ctx context.Context, userID int) (*domain.Transaction, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsActivated {
		return nil, ErrAlreadyActivated
	}

	tx, err := s.transactionRepo.Create(ctx, &domain.Transaction{
		UserID:      userID,
		Type:        domain.TransactionActivation,
		Amount:      s.opts.ActivationFee,
		Status:      domain.StatusPending,
		Reference:   s.newReference(ActivationPrefix),
		Description: "Account activation fee",
	})
	if err != nil {
		zap.L().Error("failed to create activation transaction", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	zap.L().Info("activation initiated", zap.Int("user_id", userID), zap.String("reference", tx.Reference))
	return tx, nil
}

// Fund records a pending wallet funding for the gateway to collect. Funding
// never reaches the available balance, which only grows from commissions.
func (s *Service) Fund(ctx context.Context, userID int, amount decimal.Decimal) (*domain.Transaction, error) {
	if err := ledger.CheckAmount(amount); err != nil {
		return nil, err
	}
	if amount.LessThan(MinFunding) || amount.GreaterThan(MaxFunding) {
		return nil, fmt.Errorf("%w: NGN %s to NGN %s", ErrFundingOutOfRange, MinFunding.StringFixed(2), MaxFunding.StringFixed(2))
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	tx, err := s.transactionRepo.Create(ctx, &domain.Transaction{
		UserID:      userID,
		Type:        domain.TransactionFund,
		Amount:      amount,
		Status:      domain.StatusPending,
		Reference:   s.newReference(FundPrefix),
		Description: "Wallet funding",
	})
	if err != nil {
		zap.L().Error("failed to create funding transaction", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	zap.L().Info("funding initiated", zap.Int("user_id", userID), zap.String("reference", tx.Reference))
	return tx, nil
}

// Withdraw reserves the amount from the available balance and records a
// pending withdrawal for the gateway to pay out.
func (s *Service) Withdraw(ctx context.Context, userID int, amount decimal.Decimal) (*domain.Transaction, error) {
	if err := ledger.CheckAmount(amount); err != nil {
		return nil, err
	}
	if amount.LessThan(s.opts.MinWithdrawal) {
		return nil, fmt.Errorf("%w of NGN %s", ErrBelowMinimum, s.opts.MinWithdrawal.StringFixed(2))
	}

	var created *domain.Transaction
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.LockByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		if !user.IsActivated {
			return ErrNotActivated
		}

		next, err := ledger.Reserve(balancesOf(user), amount)
		if err != nil {
			return err
		}
		if err := s.userRepo.UpdateBalances(ctx, userID, next); err != nil {
			return err
		}
		created, err = s.transactionRepo.Create(ctx, &domain.Transaction{
			UserID:      userID,
			Type:        domain.TransactionWithdrawal,
			Amount:      amount,
			Status:      domain.StatusPending,
			Reference:   s.newReference(WithdrawalPrefix),
			Description: "Withdrawal to bank account",
		})
		return err
	})
	if err != nil {
		zap.L().Warn("withdrawal rejected", zap.Int("user_id", userID), zap.String("amount", amount.String()), zap.Error(err))
		return nil, err
	}

	s.notify(ctx, userID, domain.NotificationWithdrawal, "Withdrawal requested",
		fmt.Sprintf("Your withdrawal of NGN %s is being processed.", amount.StringFixed(2)))
	return created, nil
}

// ConfirmPayment applies the gateway's verdict to a pending activation,
// withdrawal or funding. Confirming a transaction that already left pending changes nothing.
func (s *Service) ConfirmPayment(ctx context.Context, reference string, succeeded bool) (*domain.Transaction, error) {
	var (
		tx      *domain.Transaction
		changed bool
	)
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		changed = false

		var err error
		tx, err = s.transactionRepo.LockByReference(ctx, reference)
		if err != nil {
			return err
		}
		if tx == nil {
			return ErrTransactionNotFound
		}
		if tx.Status != domain.StatusPending {
			return nil
		}

		next := domain.StatusFailed
		if succeeded {
			next = domain.StatusCompleted
		}

		switch tx.Type {
		case domain.TransactionActivation:
			if succeeded {
				if _, err := s.userRepo.Activate(ctx, tx.UserID, s.now()); err != nil {
					return err
				}
			}
		case domain.TransactionWithdrawal:
			if err := s.settleWithdrawal(ctx, tx, succeeded); err != nil {
				return err
			}
		case domain.TransactionFund:
			// only the status moves
		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedTransaction, tx.Type)
		}

		if !domain.CanTransition(tx.Status, next) {
			return fmt.Errorf("transaction %s cannot move from %s to %s", reference, tx.Status, next)
		}
		if err := s.transactionRepo.UpdateStatus(ctx, tx.ID, next); err != nil {
			return err
		}
		tx.Status = next
		changed = true
		return nil
	})
	if err != nil {
		zap.L().Error("failed to confirm payment", zap.String("reference", reference), zap.Error(err))
		return nil, err
	}
	if !changed {
		zap.L().Debug("payment already confirmed", zap.String("reference", reference), zap.String("status", string(tx.Status)))
		return tx, nil
	}

	metrics.PayoutsProcessedTotal.WithLabelValues(string(tx.Status)).Inc()
	zap.L().Info("payment confirmed",
		zap.String("reference", reference),
		zap.String("type", string(tx.Type)),
		zap.String("status", string(tx.Status)),
	)
	s.announce(ctx, tx)
	return tx, nil
}

func (s *Service) settleWithdrawal(ctx context.Context, tx *domain.Transaction, succeeded bool) error {
	user, err := s.userRepo.LockByID(ctx, tx.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	var next ledger.Balances
	if succeeded {
		next, err = ledger.Settle(balancesOf(user), tx.Amount)
	} else {
		next, err = ledger.Release(balancesOf(user), tx.Amount)
	}
	if err != nil {
		return err
	}
	return s.userRepo.UpdateBalances(ctx, user.ID, next)
}

func (s *Service) GetTransactions(ctx context.Context, userID, limit, offset int) ([]domain.Transaction, error) {
	txs, err := s.transactionRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return txs, nil
}

func (s *Service) announce(ctx context.Context, tx *domain.Transaction) {
	amount := tx.Amount.StringFixed(2)
	switch {
	case tx.Type == domain.TransactionActivation && tx.Status == domain.StatusCompleted:
		s.notify(ctx, tx.UserID, domain.NotificationActivation, "Account activated",
			"Your account is active. You now earn commissions from new members in your network.")
	case tx.Type == domain.TransactionActivation:
		s.notify(ctx, tx.UserID, domain.NotificationActivation, "Activation failed",
			"Your activation payment did not go through.")
	case tx.Type == domain.TransactionFund && tx.Status == domain.StatusCompleted:
		s.notify(ctx, tx.UserID, domain.NotificationSystem, "Payment received",
			fmt.Sprintf("We received your payment of NGN %s.", amount))
	case tx.Type == domain.TransactionFund:
		s.notify(ctx, tx.UserID, domain.NotificationSystem, "Payment failed",
			fmt.Sprintf("Your payment of NGN %s did not go through.", amount))
	case tx.Status == domain.StatusCompleted:
		s.notify(ctx, tx.UserID, domain.NotificationWithdrawal, "Withdrawal paid",
			fmt.Sprintf("NGN %s has been paid to your bank account.", amount))
	default:
		s.notify(ctx, tx.UserID, domain.NotificationWithdrawal, "Withdrawal failed",
			fmt.Sprintf("NGN %s has been returned to your balance.", amount))
	}
}

func (s *Service) notify(ctx context.Context, userID int, kind domain.NotificationType, title, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, kind, title, message); err != nil {
		zap.L().Warn("failed to send wallet notification", zap.Int("user_id", userID), zap.Error(err))
	}
}

func balancesOf(u *domain.User) ledger.Balances {
	return ledger.Balances{
		Available:   u.AvailableBalance,
		Pending:     u.PendingWithdrawals,
		TotalEarned: u.TotalEarned,
	}
}
