package completionservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/metrics"
	"github.com/GlebRadaev/elevatex/internal/pg"
	"go.uber.org/zap"
)

//go:generate mockgen -source=completionservice.go -destination=mock_completionservice.go -package=completionservice

type ChainRepo interface {
	Lock(ctx context.Context, chainID int) error
	FindByID(ctx context.Context, id int) (*domain.Chain, error)
	MarkComplete(ctx context.Context, chainID int, at time.Time) (bool, error)
}

type UserRepo interface {
	AddBadge(ctx context.Context, userID int, badge string) (bool, error)
}

type Enqueuer interface {
	EnqueueLeaderboardRecompute(ctx context.Context, month, year int) error
}

type Notifier interface {
	Notify(ctx context.Context, userID int, kind domain.NotificationType, title, message string) error
}

var ErrChainNotFound = errors.New("chain not found")

type Service struct {
	chainRepo     ChainRepo
	userRepo      UserRepo
	enqueuer      Enqueuer
	notifier      Notifier
	txManager     pg.TXManager
	totalRequired int
	now           func() time.Time
}

func New(chainRepo ChainRepo, userRepo UserRepo, enqueuer Enqueuer, notifier Notifier, txManager pg.TXManager, totalRequired int) *Service {
	return &Service{
		chainRepo:     chainRepo,
		userRepo:      userRepo,
		enqueuer:      enqueuer,
		notifier:      notifier,
		txManager:     txManager,
		totalRequired: totalRequired,
		now:           time.Now,
	}
}

// OnPlacement marks the edge's chain complete the first time it holds
// totalRequired members and awards the origin user its badge. It reports
// whether this call completed the chain.
func (s *Service) OnPlacement(ctx context.Context, edge *domain.Referral) (bool, error) {
	if edge == nil {
		return false, nil
	}

	var chain *domain.Chain
	completed := false
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		completed = false

		if err := s.chainRepo.Lock(ctx, edge.ChainID); err != nil {
			return err
		}
		var err error
		chain, err = s.chainRepo.FindByID(ctx, edge.ChainID)
		if err != nil {
			return err
		}
		if chain == nil {
			return ErrChainNotFound
		}
		if chain.IsComplete() || chain.MemberCount < s.totalRequired {
			return nil
		}

		marked, err := s.chainRepo.MarkComplete(ctx, chain.ID, s.now())
		if err != nil {
			return err
		}
		if !marked {
			return nil
		}
		if _, err := s.userRepo.AddBadge(ctx, chain.OriginUserID, domain.BadgeChainMaster); err != nil {
			return err
		}
		completed = true
		return nil
	})
	if err != nil {
		zap.L().Error("failed to check chain completion", zap.Int("chain_id", edge.ChainID), zap.Error(err))
		return false, fmt.Errorf("chain completion: %w", err)
	}
	if !completed {
		return false, nil
	}

	metrics.ChainsCompletedTotal.Inc()
	zap.L().Info("chain completed", zap.Int("chain_id", chain.ID), zap.Int("origin_user_id", chain.OriginUserID))

	now := s.now().UTC()
	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueueLeaderboardRecompute(ctx, int(now.Month()), now.Year()); err != nil {
			zap.L().Warn("failed to enqueue leaderboard recompute", zap.Int("chain_id", chain.ID), zap.Error(err))
		}
	}
	if s.notifier != nil {
		msg := fmt.Sprintf("Your chain is complete with %d members. You earned the %s badge.", s.totalRequired, domain.BadgeChainMaster)
		if err := s.notifier.Notify(ctx, chain.OriginUserID, domain.NotificationAchievement, "Chain completed", msg); err != nil {
			zap.L().Warn("failed to send completion notification", zap.Int("user_id", chain.OriginUserID), zap.Error(err))
		}
	}
	return true, nil
}
