package graphservice

import (
	"context"
	"errors"
	"math"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"go.uber.org/zap"
)

//go:generate mockgen -source=graphservice.go -destination=mock_graphservice.go -package=graphservice

type ReferralRepo interface {
	FindByChild(ctx context.Context, childID int) (*domain.Referral, error)
	CountDirectChildren(ctx context.Context, parentID int) (int, error)
	ListByChain(ctx context.Context, chainID int) ([]domain.Referral, error)
	ListByParent(ctx context.Context, parentID int) ([]domain.Referral, error)
}

type ChainRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Chain, error)
	FindByOrigin(ctx context.Context, userID int) (*domain.Chain, error)
}

var (
	ErrChainNotFound = errors.New("chain not found")
	ErrNotPlaced     = errors.New("user is not placed in any chain")
)

const MaxTreeDepth = 5

type Service struct {
	referralRepo  ReferralRepo
	chainRepo     ChainRepo
	totalRequired int
}

func New(referralRepo ReferralRepo, chainRepo ChainRepo, totalRequired int) *Service {
	return &Service{
		referralRepo:  referralRepo,
		chainRepo:     chainRepo,
		totalRequired: totalRequired,
	}
}

// GetAncestors walks parent edges upwards, closest ancestor first, stopping
// at a root or after maxLevels steps.
func (s *Service) GetAncestors(ctx context.Context, userID, maxLevels int) ([]domain.Ancestor, error) {
	ancestors := make([]domain.Ancestor, 0, maxLevels)
	current := userID
	for level := 1; level <= maxLevels; level++ {
		edge, err := s.referralRepo.FindByChild(ctx, current)
		if err != nil {
			zap.L().Error("failed to walk ancestors", zap.Int("user_id", userID), zap.Int("level", level), zap.Error(err))
			return nil, err
		}
		if edge == nil {
			break
		}
		ancestors = append(ancestors, domain.Ancestor{
			UserID:     edge.ParentID,
			Level:      level,
			EdgeID:     edge.ID,
			EdgeActive: edge.IsActive,
		})
		current = edge.ParentID
	}
	return ancestors, nil
}

func (s *Service) GetDirectChildrenCount(ctx context.Context, userID int) (int, error) {
	return s.referralRepo.CountDirectChildren(ctx, userID)
}

// GetChainMembers lists a chain in position order, the origin user first.
func (s *Service) GetChainMembers(ctx context.Context, chainID int) ([]domain.ChainMember, error) {
	chain, err := s.chainRepo.FindByID(ctx, chainID)
	if err != nil {
		return nil, err
	}
	if chain == nil {
		return nil, ErrChainNotFound
	}
	edges, err := s.referralRepo.ListByChain(ctx, chainID)
	if err != nil {
		return nil, err
	}

	members := make([]domain.ChainMember, 0, len(edges)+1)
	members = append(members, domain.ChainMember{
		UserID:          chain.OriginUserID,
		PositionInChain: 1,
		PlacementType:   domain.PlacementSystem,
	})
	for _, e := range edges {
		members = append(members, domain.ChainMember{
			UserID:          e.ChildID,
			ParentID:        e.ParentID,
			PositionInChain: e.PositionInChain,
			PlacementType:   e.PlacementType,
		})
	}
	return members, nil
}

// ListReferrals splits the user's direct children by how they were placed.
func (s *Service) ListReferrals(ctx context.Context, userID int) (direct, system []domain.Referral, err error) {
	edges, err := s.referralRepo.ListByParent(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	direct = make([]domain.Referral, 0, len(edges))
	system = make([]domain.Referral, 0, len(edges))
	for _, e := range edges {
		if e.PlacementType == domain.PlacementDirect {
			direct = append(direct, e)
		} else {
			system = append(system, e)
		}
	}
	return direct, system, nil
}

// Tree builds the downline of a user breadth first, up to depth levels.
func (s *Service) Tree(ctx context.Context, userID, depth int) (*domain.TreeNode, error) {
	if depth <= 0 || depth > MaxTreeDepth {
		depth = MaxTreeDepth
	}
	root := &domain.TreeNode{UserID: userID}
	if edge, err := s.referralRepo.FindByChild(ctx, userID); err != nil {
		return nil, err
	} else if edge != nil {
		root.PlacementType = edge.PlacementType
	} else {
		root.PlacementType = domain.PlacementSystem
	}

	frontier := []*domain.TreeNode{root}
	for d := 1; d <= depth && len(frontier) > 0; d++ {
		var next []*domain.TreeNode
		for _, node := range frontier {
			edges, err := s.referralRepo.ListByParent(ctx, node.UserID)
			if err != nil {
				return nil, err
			}
			for _, e := range edges {
				child := &domain.TreeNode{UserID: e.ChildID, PlacementType: e.PlacementType, Depth: d}
				node.Children = append(node.Children, child)
				next = append(next, child)
			}
		}
		frontier = next
	}
	return root, nil
}

func (s *Service) ChainProgress(ctx context.Context, userID int) (*domain.ChainProgress, error) {
	chainID := 0
	edge, err := s.referralRepo.FindByChild(ctx, userID)
	if err != nil {
		return nil, err
	}
	if edge != nil {
		chainID = edge.ChainID
	}

	var chain *domain.Chain
	if chainID != 0 {
		chain, err = s.chainRepo.FindByID(ctx, chainID)
	} else {
		chain, err = s.chainRepo.FindByOrigin(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	if chain == nil {
		return nil, ErrNotPlaced
	}

	completed := chain.MemberCount
	if completed > s.totalRequired {
		completed = s.totalRequired
	}
	percentage := math.Round(float64(completed)/float64(s.totalRequired)*10000) / 100
	return &domain.ChainProgress{
		ChainID:    chain.ID,
		Completed:  completed,
		Total:      s.totalRequired,
		Percentage: percentage,
		IsComplete: chain.IsComplete(),
	}, nil
}
