package reconcile

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/service/placementservice"
	"github.com/GlebRadaev/elevatex/pkg/workerpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=reconcile.go -destination=mock_reconcile.go -package=reconcile

type UserRepo interface {
	FindUnplaced(ctx context.Context, olderThan time.Time, limit int) ([]domain.UnplacedUser, error)
}

type ReferralRepo interface {
	FindUnsettled(ctx context.Context, olderThan time.Time, limit int) ([]domain.Referral, error)
}

type Referrals interface {
	Join(ctx context.Context, userID int, inviterCode string) (*domain.PlacementResult, error)
	Reapply(ctx context.Context, edge *domain.Referral) error
}

const (
	batchLimit = 200
	poolSize   = 4
	// work younger than this may still be running inside a signup request
	gracePeriod = time.Minute
)

// Service finishes work a request left behind: users whose placement failed
// during signup and edges whose commission never settled.
type Service struct {
	userRepo     UserRepo
	referralRepo ReferralRepo
	referrals    Referrals
	workerPool   workerpool.WorkerPoolI
	interval     time.Duration
	now          func() time.Time

	inFlight sync.Map
}

func New(userRepo UserRepo, referralRepo ReferralRepo, referrals Referrals, interval time.Duration) *Service {
	if interval <= 0 {
		interval = time.Second * 30
	}
	return &Service{
		userRepo:     userRepo,
		referralRepo: referralRepo,
		referrals:    referrals,
		workerPool:   workerpool.New("reconcile", poolSize),
		interval:     interval,
		now:          time.Now,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("reconciler started", zap.Duration("interval", s.interval))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer s.workerPool.Close()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping reconciler")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce schedules one pass over unplaced users and unsettled edges.
func (s *Service) RunOnce(ctx context.Context) {
	cutoff := s.now().Add(-gracePeriod)

	var g errgroup.Group
	users, err := s.userRepo.FindUnplaced(ctx, cutoff, batchLimit)
	if err != nil {
		zap.L().Error("failed to fetch unplaced users", zap.Error(err))
	}
	for _, u := range users {
		u := u
		s.schedule(ctx, &g, placeKey(u.UserID), func() error { return s.place(ctx, u) })
	}

	edges, err := s.referralRepo.FindUnsettled(ctx, cutoff, batchLimit)
	if err != nil {
		zap.L().Error("failed to fetch unsettled edges", zap.Error(err))
	}
	for _, edge := range edges {
		edge := edge
		s.schedule(ctx, &g, settleKey(edge.ID), func() error { return s.settle(ctx, &edge) })
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("error scheduling reconciliation", zap.Error(err))
	}
}

func (s *Service) schedule(ctx context.Context, g *errgroup.Group, key string, task workerpool.Task) {
	if _, loaded := s.inFlight.LoadOrStore(key, struct{}{}); loaded {
		return
	}
	g.Go(func() error {
		err := s.workerPool.AddTask(ctx, func() error {
			defer s.inFlight.Delete(key)
			return task()
		})
		if err != nil {
			s.inFlight.Delete(key)
			return err
		}
		return nil
	})
}

// place retries the join with the inviter the user signed up with. A code the
// placement engine rejects is reported and the user stays unplaced.
func (s *Service) place(ctx context.Context, u domain.UnplacedUser) error {
	result, err := s.referrals.Join(ctx, u.UserID, u.InviterCode)
	if errors.Is(err, placementservice.ErrDuplicatePlacement) {
		return nil
	}
	if errors.Is(err, placementservice.ErrInvalidReferralCode) {
		zap.L().Error("inviter code rejected on reconcile",
			zap.Int("user_id", u.UserID), zap.String("inviter_code", u.InviterCode))
		return err
	}
	if err != nil {
		return err
	}
	zap.L().Info("reconciled unplaced user", zap.Int("user_id", u.UserID), zap.Int("chain_id", result.ChainID))
	return nil
}

func (s *Service) settle(ctx context.Context, edge *domain.Referral) error {
	if err := s.referrals.Reapply(ctx, edge); err != nil {
		return err
	}
	zap.L().Info("reconciled edge commission", zap.Int("edge_id", edge.ID))
	return nil
}

func placeKey(userID int) string { return "place:" + strconv.Itoa(userID) }

func settleKey(edgeID int) string { return "settle:" + strconv.Itoa(edgeID) }
