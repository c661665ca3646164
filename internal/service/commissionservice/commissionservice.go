package commissionservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/ledger"
	"github.com/GlebRadaev/elevatex/internal/metrics"
	"github.com/GlebRadaev/elevatex/internal/pg"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=commissionservice.go -destination=mock_commissionservice.go -package=commissionservice

type AncestorWalker interface {
	GetAncestors(ctx context.Context, userID, maxLevels int) ([]domain.Ancestor, error)
}

type UserRepo interface {
	LockByID(ctx context.Context, id int) (*domain.User, error)
	UpdateBalances(ctx context.Context, userID int, b ledger.Balances) error
}

type ChainRepo interface {
	Lock(ctx context.Context, chainID int) error
}

type ReferralRepo interface {
	LockByID(ctx context.Context, id int) (*domain.Referral, error)
	AddEarnings(ctx context.Context, edgeID int, amount decimal.Decimal) error
	MarkCommissionSettled(ctx context.Context, edgeID int, at time.Time) (bool, error)
}

type TransactionRepo interface {
	ExistsByReference(ctx context.Context, reference string) (bool, error)
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
}

type Notifier interface {
	Notify(ctx context.Context, userID int, kind domain.NotificationType, title, message string) error
}

// MaxLevels is how far up the graph a placement pays. Payout entries past it are ignored.
const MaxLevels = 5

var (
	ErrCommissionApplyFailed = errors.New("commission apply failed")

	errEdgeNotFound = errors.New("referral edge not found")
)

// Reference is the idempotency key of one commission credit.
func Reference(edgeID, level int) string {
	return fmt.Sprintf("COMM-%d-L%d", edgeID, level)
}

type credit struct {
	tx    domain.Transaction
	level int
}

type Service struct {
	walker          AncestorWalker
	userRepo        UserRepo
	chainRepo       ChainRepo
	referralRepo    ReferralRepo
	transactionRepo TransactionRepo
	notifier        Notifier
	txManager       pg.TXManager
	payouts         []decimal.Decimal
}

func New(
	walker AncestorWalker,
	userRepo UserRepo,
	chainRepo ChainRepo,
	referralRepo ReferralRepo,
	transactionRepo TransactionRepo,
	notifier Notifier,
	txManager pg.TXManager,
	payouts []decimal.Decimal,
) *Service {
	return &Service{
		walker:          walker,
		userRepo:        userRepo,
		chainRepo:       chainRepo,
		referralRepo:    referralRepo,
		transactionRepo: transactionRepo,
		notifier:        notifier,
		txManager:       txManager,
		payouts:         payouts,
	}
}

// OnPlacement credits the ancestors of a freshly placed member in one
// transaction and returns the commission transactions it wrote. Replaying a
// settled edge writes nothing.
func (s *Service) OnPlacement(ctx context.Context, edge *domain.Referral) ([]domain.Transaction, error) {
	if edge == nil {
		return nil, nil
	}

	var credited []credit
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		credited = credited[:0]

		if err := s.chainRepo.Lock(ctx, edge.ChainID); err != nil {
			return err
		}
		locked, err := s.referralRepo.LockByID(ctx, edge.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return errEdgeNotFound
		}
		if locked.CommissionSettled() {
			zap.L().Debug("commission already settled", zap.Int("edge_id", edge.ID))
			return nil
		}

		ancestors, err := s.walker.GetAncestors(ctx, locked.ChildID, MaxLevels)
		if err != nil {
			return err
		}
		for _, a := range ancestors {
			tx, err := s.apply(ctx, locked, a)
			if err != nil {
				return err
			}
			if tx != nil {
				credited = append(credited, credit{tx: *tx, level: a.Level})
			}
		}

		_, err = s.referralRepo.MarkCommissionSettled(ctx, locked.ID, time.Now())
		return err
	})
	if err != nil {
		zap.L().Error("failed to apply commission", zap.Int("edge_id", edge.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrCommissionApplyFailed, err)
	}

	txs := make([]domain.Transaction, 0, len(credited))
	for _, c := range credited {
		s.announce(ctx, c)
		txs = append(txs, c.tx)
	}
	return txs, nil
}

func (s *Service) apply(ctx context.Context, edge *domain.Referral, a domain.Ancestor) (*domain.Transaction, error) {
	if a.Level < 1 || a.Level > MaxLevels || a.Level > len(s.payouts) {
		return nil, nil
	}
	amount := s.payouts[a.Level-1]
	if !amount.IsPositive() {
		return nil, nil
	}
	if !a.EdgeActive {
		s.skip(edge, a, "inactive_edge")
		return nil, nil
	}

	user, err := s.userRepo.LockByID(ctx, a.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.skip(edge, a, "missing_user")
		return nil, nil
	}
	if !user.IsActivated {
		s.skip(edge, a, "not_activated")
		return nil, nil
	}

	reference := Reference(edge.ID, a.Level)
	exists, err := s.transactionRepo.ExistsByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if exists {
		s.skip(edge, a, "already_credited")
		return nil, nil
	}

	next, err := ledger.Credit(ledger.Balances{
		Available:   user.AvailableBalance,
		Pending:     user.PendingWithdrawals,
		TotalEarned: user.TotalEarned,
	}, amount)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateBalances(ctx, user.ID, next); err != nil {
		return nil, err
	}
	if err := s.referralRepo.AddEarnings(ctx, a.EdgeID, amount); err != nil {
		return nil, err
	}
	return s.transactionRepo.Create(ctx, &domain.Transaction{
		UserID:      user.ID,
		Type:        domain.TransactionCommission,
		Amount:      amount,
		Status:      domain.StatusCompleted,
		Reference:   reference,
		Description: fmt.Sprintf("Level %d commission for member %d", a.Level, edge.ChildID),
	})
}

func (s *Service) skip(edge *domain.Referral, a domain.Ancestor, reason string) {
	metrics.CommissionSkipsTotal.WithLabelValues(reason).Inc()
	zap.L().Debug("commission skipped",
		zap.Int("edge_id", edge.ID),
		zap.Int("ancestor_id", a.UserID),
		zap.Int("level", a.Level),
		zap.String("reason", reason),
	)
}

func (s *Service) announce(ctx context.Context, c credit) {
	metrics.ObserveCommission(c.level)
	tx := c.tx

	if s.notifier == nil {
		return
	}
	msg := fmt.Sprintf("You earned NGN %s from your network.", tx.Amount.StringFixed(2))
	if err := s.notifier.Notify(ctx, tx.UserID, domain.NotificationEarning, "Commission earned", msg); err != nil {
		zap.L().Warn("failed to send commission notification", zap.Int("user_id", tx.UserID), zap.Error(err))
	}
}
