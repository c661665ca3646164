package placementservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/metrics"
	"github.com/GlebRadaev/elevatex/internal/pg"
	"github.com/GlebRadaev/elevatex/pkg/validate"
	"go.uber.org/zap"
)

//go:generate mockgen -source=placementservice.go -destination=mock_placementservice.go -package=placementservice

type UserRepo interface {
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)
}

type ChainRepo interface {
	LockPlacement(ctx context.Context, userID int) error
	Lock(ctx context.Context, chainID int) error
	LockCounter(ctx context.Context) error
	FindByID(ctx context.Context, id int) (*domain.Chain, error)
	FindByOrigin(ctx context.Context, userID int) (*domain.Chain, error)
	FindOpen(ctx context.Context, capacity, limit int) ([]domain.Chain, error)
	Create(ctx context.Context, originUserID int) (*domain.Chain, error)
	IncrementMembers(ctx context.Context, chainID int) (int, error)
}

type ReferralRepo interface {
	Create(ctx context.Context, ref *domain.Referral) (*domain.Referral, error)
	FindByChild(ctx context.Context, childID int) (*domain.Referral, error)
	CountDirectChildren(ctx context.Context, parentID int) (int, error)
	ChildCounts(ctx context.Context, chainID int) (map[int]int, error)
	ListByChain(ctx context.Context, chainID int) ([]domain.Referral, error)
}

var (
	ErrInvalidReferralCode    = errors.New("invalid referral code")
	ErrDuplicatePlacement     = errors.New("user is already placed")
	ErrChainCapacityExhausted = errors.New("chain capacity exhausted")

	errChainFilled = errors.New("chain filled concurrently")
)

const defaultMaxAttempts = 5

type Options struct {
	FanOut        int
	TotalRequired int
	MaxAttempts   int
}

type Service struct {
	userRepo     UserRepo
	chainRepo    ChainRepo
	referralRepo ReferralRepo
	txManager    pg.TXManager
	opts         Options
}

func New(userRepo UserRepo, chainRepo ChainRepo, referralRepo ReferralRepo, txManager pg.TXManager, opts Options) *Service {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	return &Service{
		userRepo:     userRepo,
		chainRepo:    chainRepo,
		referralRepo: referralRepo,
		txManager:    txManager,
		opts:         opts,
	}
}

// Place attaches a new user to the referral graph. With a code the user goes
// under the inviter while the inviter has fewer than FanOut children and the
// inviter's chain has room; otherwise the user is system-placed into the open
// chain with the fewest members, or opens a new chain at position 1.
func (s *Service) Place(ctx context.Context, newUserID int, inviterCode string) (*domain.PlacementResult, error) {
	code := validate.NormalizeReferralCode(inviterCode)
	if code != "" {
		result, err := s.placeDirect(ctx, newUserID, code)
		if err != nil {
			return nil, s.fail(newUserID, err)
		}
		if result != nil {
			s.observe(result)
			return result, nil
		}
	}

	result, err := s.placeSystem(ctx, newUserID)
	if err != nil {
		return nil, s.fail(newUserID, err)
	}
	s.observe(result)
	return result, nil
}

// placeDirect returns a nil result when the newcomer has to fall back to system placement.
func (s *Service) placeDirect(ctx context.Context, newUserID int, code string) (*domain.PlacementResult, error) {
	var result *domain.PlacementResult
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.guard(ctx, newUserID); err != nil {
			return err
		}
		if !validate.IsReferralCode(code) {
			return ErrInvalidReferralCode
		}
		inviter, err := s.userRepo.FindByReferralCode(ctx, code)
		if err != nil {
			return err
		}
		// Accounts are never deactivated, so any existing user may invite.
		// is_activated only decides whether the inviter earns on the edge.
		if inviter == nil || inviter.ID == newUserID {
			return ErrInvalidReferralCode
		}

		chainID, err := s.currentChain(ctx, inviter.ID)
		if err != nil {
			return err
		}
		if chainID == 0 {
			zap.L().Info("inviter is not placed yet, using system placement", zap.Int("inviter_id", inviter.ID))
			return nil
		}

		if err := s.chainRepo.Lock(ctx, chainID); err != nil {
			return err
		}
		chain, err := s.chainRepo.FindByID(ctx, chainID)
		if err != nil {
			return err
		}
		if chain == nil || !chain.HasCapacity(s.opts.TotalRequired) {
			return nil
		}
		children, err := s.referralRepo.CountDirectChildren(ctx, inviter.ID)
		if err != nil {
			return err
		}
		if children >= s.opts.FanOut {
			return nil
		}

		result, err = s.attach(ctx, newUserID, inviter.ID, chainID, domain.PlacementDirect)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) placeSystem(ctx context.Context, newUserID int) (*domain.PlacementResult, error) {
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		var result *domain.PlacementResult
		err := s.txManager.Begin(ctx, func(ctx context.Context) error {
			if err := s.guard(ctx, newUserID); err != nil {
				return err
			}
			open, err := s.chainRepo.FindOpen(ctx, s.opts.TotalRequired, 1)
			if err != nil {
				return err
			}
			if len(open) == 0 {
				result, err = s.openChain(ctx, newUserID)
				return err
			}
			result, err = s.placeInChain(ctx, newUserID, open[0].ID)
			return err
		})
		if errors.Is(err, errChainFilled) {
			zap.L().Debug("open chain filled concurrently, retrying", zap.Int("user_id", newUserID), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, fmt.Errorf("%w: no chain accepted user %d after %d attempts", ErrChainCapacityExhausted, newUserID, s.opts.MaxAttempts)
}

// placeInChain hangs the user under the first member, in position order, that
// still has room for a child.
func (s *Service) placeInChain(ctx context.Context, newUserID, chainID int) (*domain.PlacementResult, error) {
	if err := s.chainRepo.Lock(ctx, chainID); err != nil {
		return nil, err
	}
	chain, err := s.chainRepo.FindByID(ctx, chainID)
	if err != nil {
		return nil, err
	}
	if chain == nil || !chain.HasCapacity(s.opts.TotalRequired) {
		return nil, errChainFilled
	}

	edges, err := s.referralRepo.ListByChain(ctx, chainID)
	if err != nil {
		return nil, err
	}
	counts, err := s.referralRepo.ChildCounts(ctx, chainID)
	if err != nil {
		return nil, err
	}

	members := make([]int, 0, len(edges)+1)
	members = append(members, chain.OriginUserID)
	for _, e := range edges {
		members = append(members, e.ChildID)
	}
	for _, member := range members {
		if counts[member] < s.opts.FanOut {
			return s.attach(ctx, newUserID, member, chainID, domain.PlacementSystem)
		}
	}
	return nil, errChainFilled
}

func (s *Service) openChain(ctx context.Context, newUserID int) (*domain.PlacementResult, error) {
	if err := s.chainRepo.LockCounter(ctx); err != nil {
		return nil, err
	}
	open, err := s.chainRepo.FindOpen(ctx, s.opts.TotalRequired, 1)
	if err != nil {
		return nil, err
	}
	if len(open) > 0 {
		return nil, errChainFilled
	}

	chain, err := s.chainRepo.Create(ctx, newUserID)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return nil, ErrDuplicatePlacement
		}
		return nil, fmt.Errorf("%w: %w", ErrChainCapacityExhausted, err)
	}
	zap.L().Info("opened new chain", zap.Int("chain_id", chain.ID), zap.Int("origin_user_id", newUserID))
	return &domain.PlacementResult{
		UserID:          newUserID,
		ChainID:         chain.ID,
		PositionInChain: 1,
		PlacementType:   domain.PlacementSystem,
	}, nil
}

func (s *Service) attach(ctx context.Context, childID, parentID, chainID int, placement domain.PlacementType) (*domain.PlacementResult, error) {
	position, err := s.chainRepo.IncrementMembers(ctx, chainID)
	if err != nil {
		return nil, err
	}
	edge, err := s.referralRepo.Create(ctx, &domain.Referral{
		ParentID:        parentID,
		ChildID:         childID,
		Level:           1,
		PlacementType:   placement,
		ChainID:         chainID,
		PositionInChain: position,
	})
	if err != nil {
		return nil, err
	}
	return &domain.PlacementResult{
		UserID:          childID,
		ParentID:        parentID,
		ChainID:         chainID,
		PositionInChain: position,
		PlacementType:   placement,
		Edge:            edge,
	}, nil
}

func (s *Service) guard(ctx context.Context, userID int) error {
	if err := s.chainRepo.LockPlacement(ctx, userID); err != nil {
		return err
	}
	placed, err := s.isPlaced(ctx, userID)
	if err != nil {
		return err
	}
	if placed {
		return ErrDuplicatePlacement
	}
	return nil
}

func (s *Service) isPlaced(ctx context.Context, userID int) (bool, error) {
	chainID, err := s.currentChain(ctx, userID)
	return chainID != 0, err
}

// currentChain returns the chain a user occupies, 0 when the user is not placed.
func (s *Service) currentChain(ctx context.Context, userID int) (int, error) {
	edge, err := s.referralRepo.FindByChild(ctx, userID)
	if err != nil {
		return 0, err
	}
	if edge != nil {
		return edge.ChainID, nil
	}
	chain, err := s.chainRepo.FindByOrigin(ctx, userID)
	if err != nil {
		return 0, err
	}
	if chain != nil {
		return chain.ID, nil
	}
	return 0, nil
}

func (s *Service) fail(userID int, err error) error {
	if pg.IsUniqueViolation(err) {
		err = ErrDuplicatePlacement
	}
	reason := "internal"
	switch {
	case errors.Is(err, ErrInvalidReferralCode):
		reason = "invalid_code"
	case errors.Is(err, ErrDuplicatePlacement):
		reason = "duplicate"
	case errors.Is(err, ErrChainCapacityExhausted):
		reason = "capacity"
	}
	metrics.PlacementFailuresTotal.WithLabelValues(reason).Inc()
	zap.L().Warn("placement failed", zap.Int("user_id", userID), zap.String("reason", reason), zap.Error(err))
	return err
}

func (s *Service) observe(result *domain.PlacementResult) {
	metrics.PlacementsTotal.WithLabelValues(string(result.PlacementType)).Inc()
	zap.L().Info("user placed",
		zap.Int("user_id", result.UserID),
		zap.Int("parent_id", result.ParentID),
		zap.Int("chain_id", result.ChainID),
		zap.Int("position", result.PositionInChain),
		zap.String("type", string(result.PlacementType)),
	)
}
