package repo

import (
	"github.com/GlebRadaev/elevatex/internal/pg"
	chainrepo "github.com/GlebRadaev/elevatex/internal/repo/chain-repo"
	leaderboardrepo "github.com/GlebRadaev/elevatex/internal/repo/leaderboard-repo"
	notificationrepo "github.com/GlebRadaev/elevatex/internal/repo/notification-repo"
	referralrepo "github.com/GlebRadaev/elevatex/internal/repo/referral-repo"
	transactionrepo "github.com/GlebRadaev/elevatex/internal/repo/transaction-repo"
	userrepo "github.com/GlebRadaev/elevatex/internal/repo/user-repo"
)

type Repositories struct {
	UserRepo         *userrepo.Repository
	ChainRepo        *chainrepo.Repository
	ReferralRepo     *referralrepo.Repository
	TransactionRepo  *transactionrepo.Repository
	NotificationRepo *notificationrepo.Repository
	LeaderboardRepo  *leaderboardrepo.Repository
	TxManager        pg.TXManager
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:         userrepo.New(conn),
		ChainRepo:        chainrepo.New(conn),
		ReferralRepo:     referralrepo.New(conn),
		TransactionRepo:  transactionrepo.New(conn),
		NotificationRepo: notificationrepo.New(conn),
		LeaderboardRepo:  leaderboardrepo.New(conn),
		TxManager:        txManager,
	}
}
