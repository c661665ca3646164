package referralservice

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

//go:generate mockgen -source=referralservice.go -destination=mock_referralservice.go -package=referralservice

type Placer interface {
	Place(ctx context.Context, newUserID int, inviterCode string) (*domain.PlacementResult, error)
}

type CommissionEngine interface {
	OnPlacement(ctx context.Context, edge *domain.Referral) ([]domain.Transaction, error)
}

type CompletionMonitor interface {
	OnPlacement(ctx context.Context, edge *domain.Referral) (bool, error)
}

type Graph interface {
	GetChainMembers(ctx context.Context, chainID int) ([]domain.ChainMember, error)
	ListReferrals(ctx context.Context, userID int) (direct, system []domain.Referral, err error)
	Tree(ctx context.Context, userID, depth int) (*domain.TreeNode, error)
	ChainProgress(ctx context.Context, userID int) (*domain.ChainProgress, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type Notifier interface {
	Notify(ctx context.Context, userID int, kind domain.NotificationType, title, message string) error
}

var ErrUserNotFound = errors.New("user not found")

const qrSize = 256

type Service struct {
	placer     Placer
	commission CommissionEngine
	completion CompletionMonitor
	graph      Graph
	userRepo   UserRepo
	notifier   Notifier
	publicURL  string
}

func New(
	placer Placer,
	commission CommissionEngine,
	completion CompletionMonitor,
	graph Graph,
	userRepo UserRepo,
	notifier Notifier,
	publicURL string,
) *Service {
	return &Service{
		placer:     placer,
		commission: commission,
		completion: completion,
		graph:      graph,
		userRepo:   userRepo,
		notifier:   notifier,
		publicURL:  strings.TrimRight(publicURL, "/"),
	}
}

// Join places the user and runs the post-placement work for the new edge.
// Commission and completion failures are logged; the edge stays unsettled and
// the reconciler applies it later.
func (s *Service) Join(ctx context.Context, userID int, inviterCode string) (*domain.PlacementResult, error) {
	result, err := s.placer.Place(ctx, userID, inviterCode)
	if err != nil {
		return nil, err
	}
	if result.Edge == nil {
		return result, nil
	}

	if err := s.Reapply(ctx, result.Edge); err != nil {
		zap.L().Warn("post-placement work deferred", zap.Int("edge_id", result.Edge.ID), zap.Error(err))
	}

	kind := "a referral you invited"
	if result.PlacementType == domain.PlacementSystem {
		kind = "a member placed by the system"
	}
	s.notify(ctx, result.ParentID, domain.NotificationReferral, "New referral",
		fmt.Sprintf("Your network grew: %s joined at position %d of your chain.", kind, result.PositionInChain))
	return result, nil
}

// Reapply credits commission for an edge and checks its chain for
// completion. Both steps are no-ops for work already done.
func (s *Service) Reapply(ctx context.Context, edge *domain.Referral) error {
	if _, err := s.commission.OnPlacement(ctx, edge); err != nil {
		return err
	}
	if _, err := s.completion.OnPlacement(ctx, edge); err != nil {
		return err
	}
	return nil
}

func (s *Service) ListReferrals(ctx context.Context, userID int) (direct, system []domain.Referral, err error) {
	return s.graph.ListReferrals(ctx, userID)
}

func (s *Service) Tree(ctx context.Context, userID, depth int) (*domain.TreeNode, error) {
	return s.graph.Tree(ctx, userID, depth)
}

// Chain returns the progress of the user's chain and its members in position order.
func (s *Service) Chain(ctx context.Context, userID int) (*domain.ChainProgress, []domain.ChainMember, error) {
	progress, err := s.graph.ChainProgress(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.graph.GetChainMembers(ctx, progress.ChainID)
	if err != nil {
		return nil, nil, err
	}
	return progress, members, nil
}

// ReferralLink builds the user's invitation link and a PNG QR code for it.
func (s *Service) ReferralLink(ctx context.Context, userID int) (*domain.ReferralLink, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	link := s.publicURL + "/signup?ref=" + url.QueryEscape(user.ReferralCode)
	png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
	if err != nil {
		zap.L().Error("failed to render referral qr code", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &domain.ReferralLink{
		Code:   user.ReferralCode,
		URL:    link,
		QRCode: png,
	}, nil
}

func (s *Service) notify(ctx context.Context, userID int, kind domain.NotificationType, title, message string) {
	if s.notifier == nil || userID == 0 {
		return
	}
	if err := s.notifier.Notify(ctx, userID, kind, title, message); err != nil {
		zap.L().Warn("failed to send referral notification", zap.Int("user_id", userID), zap.Error(err))
	}
}
