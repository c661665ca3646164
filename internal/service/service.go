package service

import (
	"fmt"

	"github.com/GlebRadaev/elevatex/internal/config"
	"github.com/GlebRadaev/elevatex/internal/handlers/auth"
	"github.com/GlebRadaev/elevatex/internal/handlers/leaderboard"
	"github.com/GlebRadaev/elevatex/internal/handlers/notifications"
	"github.com/GlebRadaev/elevatex/internal/handlers/referrals"
	"github.com/GlebRadaev/elevatex/internal/handlers/wallet"
	"github.com/GlebRadaev/elevatex/internal/handlers/webhooks"
	"github.com/GlebRadaev/elevatex/internal/queue"
	"github.com/GlebRadaev/elevatex/internal/reconcile"

	pkgauth "github.com/GlebRadaev/elevatex/pkg/auth"

	"github.com/GlebRadaev/elevatex/internal/repo"
	authservice "github.com/GlebRadaev/elevatex/internal/service/authservice"
	commissionservice "github.com/GlebRadaev/elevatex/internal/service/commissionservice"
	completionservice "github.com/GlebRadaev/elevatex/internal/service/completionservice"
	graphservice "github.com/GlebRadaev/elevatex/internal/service/graphservice"
	leaderboardservice "github.com/GlebRadaev/elevatex/internal/service/leaderboardservice"
	notificationservice "github.com/GlebRadaev/elevatex/internal/service/notificationservice"
	placementservice "github.com/GlebRadaev/elevatex/internal/service/placementservice"
	referralservice "github.com/GlebRadaev/elevatex/internal/service/referralservice"
	walletservice "github.com/GlebRadaev/elevatex/internal/service/walletservice"
)

// WalletService backs both the wallet endpoints and the payment webhook.
type WalletService interface {
	wallet.Service
	webhooks.Service
}

type Services struct {
	AuthService         auth.Service
	ReferralService     referrals.Service
	WalletService       WalletService
	NotificationService notifications.Service
	LeaderboardService  leaderboard.Service

	// Used by the background workers.
	Referrals  reconcile.Referrals
	Recomputer queue.Recomputer
}

// Deps are the outbound integrations the services talk to.
type Deps struct {
	OTPStore authservice.OTPStore
	SMS      authservice.SMSSender
	Revoker  authservice.Revoker
	Enqueuer completionservice.Enqueuer
}

func New(repo *repo.Repositories, cfg *config.Config, deps Deps) (*Services, error) {
	payouts, err := cfg.Payouts()
	if err != nil {
		return nil, fmt.Errorf("level payouts: %w", err)
	}
	activationFee, err := cfg.ActivationAmount()
	if err != nil {
		return nil, fmt.Errorf("activation fee: %w", err)
	}
	minWithdrawal, err := cfg.MinWithdrawalAmount()
	if err != nil {
		return nil, fmt.Errorf("minimum withdrawal: %w", err)
	}

	notificationService := notificationservice.New(repo.NotificationRepo)
	graphService := graphservice.New(repo.ReferralRepo, repo.ChainRepo, cfg.MaxChainSize)
	placementService := placementservice.New(repo.UserRepo, repo.ChainRepo, repo.ReferralRepo, repo.TxManager, placementservice.Options{
		FanOut:        cfg.ChainFanOut,
		TotalRequired: cfg.MaxChainSize,
	})
	commissionService := commissionservice.New(
		graphService,
		repo.UserRepo,
		repo.ChainRepo,
		repo.ReferralRepo,
		repo.TransactionRepo,
		notificationService,
		repo.TxManager,
		payouts,
	)
	completionService := completionservice.New(repo.ChainRepo, repo.UserRepo, deps.Enqueuer, notificationService, repo.TxManager, cfg.MaxChainSize)
	referralService := referralservice.New(
		placementService,
		commissionService,
		completionService,
		graphService,
		repo.UserRepo,
		notificationService,
		cfg.PublicURL,
	)
	walletService := walletservice.New(repo.UserRepo, repo.TransactionRepo, notificationService, repo.TxManager, walletservice.Options{
		ActivationFee: activationFee,
		MinWithdrawal: minWithdrawal,
	})
	authService := authservice.New(
		repo.UserRepo,
		deps.OTPStore,
		deps.SMS,
		referralService,
		deps.Revoker,
		&pkgauth.HashService{},
		&pkgauth.JWTService{},
		cfg.OTPTTL,
	)
	leaderboardService := leaderboardservice.New(repo.LeaderboardRepo, repo.UserRepo, repo.TxManager)

	return &Services{
		AuthService:         authService,
		ReferralService:     referralService,
		WalletService:       walletService,
		NotificationService: notificationService,
		LeaderboardService:  leaderboardService,
		Referrals:           referralService,
		Recomputer:          leaderboardService,
	}, nil
}
