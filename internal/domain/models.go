package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PlacementType string

const (
	PlacementDirect PlacementType = "direct"
	PlacementSystem PlacementType = "system"
)

type TransactionType string

const (
	TransactionFund       TransactionType = "fund"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionActivation TransactionType = "activation"
	TransactionEarning    TransactionType = "earning"
	TransactionCommission TransactionType = "commission"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
)

// CanTransition reports whether a transaction may move from one status to
// another. Only pending transactions ever change status.
func CanTransition(from, to TransactionStatus) bool {
	if from != StatusPending {
		return false
	}
	switch to {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

type NotificationType string

const (
	NotificationReferral    NotificationType = "referral"
	NotificationEarning     NotificationType = "earning"
	NotificationSystem      NotificationType = "system"
	NotificationAchievement NotificationType = "achievement"
	NotificationWithdrawal  NotificationType = "withdrawal"
	NotificationActivation  NotificationType = "activation"
)

const BadgeChainMaster = "Chain Master"

var levelNames = []string{"Starter", "Basic", "Growth", "Expansion", "Elite"}

func LevelName(level int) string {
	if level < 0 || level >= len(levelNames) {
		return levelNames[0]
	}
	return levelNames[level]
}

type User struct {
	ID                 int             `db:"id"`
	Name               string          `db:"name"`
	Phone              string          `db:"phone"`
	Email              string          `db:"email"`
	NIN                string          `db:"nin"`
	PasswordHash       string          `db:"password_hash"`
	CurrentLevel       int             `db:"current_level"`
	Badges             []string        `db:"badges"`
	IsActivated        bool            `db:"is_activated"`
	ActivationDate     *time.Time      `db:"activation_date"`
	AvailableBalance   decimal.Decimal `db:"available_balance"`
	PendingWithdrawals decimal.Decimal `db:"pending_withdrawals"`
	TotalEarned        decimal.Decimal `db:"total_earned"`
	ReferralCode       string          `db:"referral_code"`
	PhoneVerified      bool            `db:"phone_verified"`
	LastLogin          *time.Time      `db:"last_login"`
	CreatedAt          time.Time       `db:"created_at"`
	// InvitedBy is the inviter named at signup. It is written once and only
	// read back by the reconciler.
	InvitedBy *int `db:"invited_by"`
}

// UnplacedUser is a user with no parent edge, together with the referral code
// of the inviter they signed up with, if any.
type UnplacedUser struct {
	UserID      int
	InviterCode string
}

func (u *User) HasBadge(badge string) bool {
	for _, b := range u.Badges {
		if b == badge {
			return true
		}
	}
	return false
}

// Chain is a cohort filled in position order. Position 1 is the origin user,
// so MemberCount starts at 1 when the chain is opened.
type Chain struct {
	ID           int        `db:"id"`
	OriginUserID int        `db:"origin_user_id"`
	MemberCount  int        `db:"member_count"`
	CompletedAt  *time.Time `db:"completed_at"`
	CreatedAt    time.Time  `db:"created_at"`
}

func (c *Chain) IsComplete() bool {
	return c.CompletedAt != nil
}

func (c *Chain) HasCapacity(totalRequired int) bool {
	return c.MemberCount < totalRequired
}

// Referral is the direct-parent edge of a placed user.
type Referral struct {
	ID                  int             `db:"id"`
	ParentID            int             `db:"parent_id"`
	ChildID             int             `db:"child_id"`
	Level               int             `db:"level"`
	PlacementType       PlacementType   `db:"placement_type"`
	ChainID             int             `db:"chain_id"`
	PositionInChain     int             `db:"position_in_chain"`
	IsActive            bool            `db:"is_active"`
	EarningsPaid        decimal.Decimal `db:"earnings_paid"`
	CommissionSettledAt *time.Time      `db:"commission_settled_at"`
	CreatedAt           time.Time       `db:"created_at"`
}

func (r *Referral) CommissionSettled() bool {
	return r.CommissionSettledAt != nil
}

// Ancestor is one step of an upward walk. EdgeID is the edge whose parent is
// the ancestor on the path towards the walked user.
type Ancestor struct {
	UserID     int
	Level      int
	EdgeID     int
	EdgeActive bool
}

type ChainMember struct {
	UserID          int
	ParentID        int
	PositionInChain int
	PlacementType   PlacementType
}

type TreeNode struct {
	UserID        int
	PlacementType PlacementType
	Depth         int
	Children      []*TreeNode
}

type PlacementResult struct {
	UserID          int
	ParentID        int
	ChainID         int
	PositionInChain int
	PlacementType   PlacementType
	Edge            *Referral
}

type ChainProgress struct {
	ChainID    int
	Completed  int
	Total      int
	Percentage float64
	IsComplete bool
}

type Transaction struct {
	ID          int               `db:"id"`
	UserID      int               `db:"user_id"`
	Type        TransactionType   `db:"type"`
	Amount      decimal.Decimal   `db:"amount"`
	Status      TransactionStatus `db:"status"`
	Reference   string            `db:"reference"`
	Description string            `db:"description"`
	CreatedAt   time.Time         `db:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at"`
}

type Notification struct {
	ID         int              `db:"id"`
	UserID     int              `db:"user_id"`
	Type       NotificationType `db:"type"`
	Title      string           `db:"title"`
	Message    string           `db:"message"`
	ReadStatus bool             `db:"read_status"`
	CreatedAt  time.Time        `db:"created_at"`
}

type LeaderboardEntry struct {
	ID             int             `db:"id"`
	UserID         int             `db:"user_id"`
	UserName       string          `db:"name"`
	Month          int             `db:"month"`
	Year           int             `db:"year"`
	TotalEarned    decimal.Decimal `db:"total_earned"`
	ReferralsCount int             `db:"referrals_count"`
	Rank           int             `db:"rank"`
}

// Achievements is a user's badge shelf together with this month's standing.
type Achievements struct {
	UserID    int
	Badges    []string
	Level     int
	LevelName string
	Rank      int
}

type Wallet struct {
	UserID             int
	AvailableBalance   decimal.Decimal
	PendingWithdrawals decimal.Decimal
	TotalEarned        decimal.Decimal
	IsActivated        bool
	ActivationDate     *time.Time
}

type Registration struct {
	Name         string
	Phone        string
	Email        string
	NIN          string
	Password     string
	ReferralCode string
}

// ProfileUpdate carries the profile fields a user may change. Nil fields stay as they are.
type ProfileUpdate struct {
	Name  *string
	Email *string
}

type ReferralLink struct {
	Code   string
	URL    string
	QRCode []byte
}
