package userrepo

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/ledger"
	"github.com/GlebRadaev/elevatex/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const userColumns = `id, name, phone, email, nin, password_hash, current_level, badges, is_activated,
	activation_date, available_balance, pending_withdrawals, total_earned, referral_code,
	phone_verified, last_login, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Phone, &user.Email, &user.NIN, &user.PasswordHash,
		&user.CurrentLevel, &user.Badges, &user.IsActivated, &user.ActivationDate,
		&user.AvailableBalance, &user.PendingWithdrawals, &user.TotalEarned, &user.ReferralCode,
		&user.PhoneVerified, &user.LastLogin, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) findOne(ctx context.Context, what, query string, args ...any) (*domain.User, error) {
	user, err := scanUser(repo.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.String("by", what), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return repo.findOne(ctx, "id", "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (repo *Repository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return repo.findOne(ctx, "phone", "SELECT "+userColumns+" FROM users WHERE phone = $1", phone)
}

func (repo *Repository) FindByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	return repo.findOne(ctx, "referral_code", "SELECT "+userColumns+" FROM users WHERE referral_code = $1", code)
}

// FindConflict returns any user already holding the phone, email or NIN.
func (repo *Repository) FindConflict(ctx context.Context, phone, email, nin string) (*domain.User, error) {
	return repo.findOne(ctx, "conflict",
		"SELECT "+userColumns+" FROM users WHERE phone = $1 OR email = $2 OR nin = $3 ORDER BY id LIMIT 1",
		phone, email, nin)
}

// LockByID loads the user row under FOR UPDATE. Must run inside a transaction.
func (repo *Repository) LockByID(ctx context.Context, id int) (*domain.User, error) {
	return repo.findOne(ctx, "lock", "SELECT "+userColumns+" FROM users WHERE id = $1 FOR UPDATE", id)
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (name, phone, email, nin, password_hash, referral_code, invited_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := repo.db.QueryRow(ctx, query,
		user.Name, user.Phone, user.Email, user.NIN, user.PasswordHash, user.ReferralCode, user.InvitedBy,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) UpdateBalances(ctx context.Context, userID int, b ledger.Balances) error {
	query := `
		UPDATE users
		SET available_balance = $1, pending_withdrawals = $2, total_earned = $3
		WHERE id = $4
	`
	_, err := repo.db.Exec(ctx, query, b.Available, b.Pending, b.TotalEarned, userID)
	if err != nil {
		zap.L().Error("failed to update user balances", zap.Int("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

// Activate flips is_activated once. It reports false when the user was already active.
func (repo *Repository) Activate(ctx context.Context, userID int, at time.Time) (bool, error) {
	query := `
		UPDATE users
		SET is_activated = TRUE, activation_date = $1
		WHERE id = $2 AND is_activated = FALSE
	`
	tag, err := repo.db.Exec(ctx, query, at, userID)
	if err != nil {
		zap.L().Error("failed to activate user", zap.Int("user_id", userID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (repo *Repository) VerifyPhone(ctx context.Context, userID int) error {
	_, err := repo.db.Exec(ctx, "UPDATE users SET phone_verified = TRUE WHERE id = $1", userID)
	if err != nil {
		zap.L().Error("failed to verify phone", zap.Int("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) UpdateLastLogin(ctx context.Context, userID int, at time.Time) error {
	_, err := repo.db.Exec(ctx, "UPDATE users SET last_login = $1 WHERE id = $2", at, userID)
	if err != nil {
		zap.L().Error("failed to update last login", zap.Int("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) UpdatePassword(ctx context.Context, userID int, passwordHash string) error {
	_, err := repo.db.Exec(ctx, "UPDATE users SET password_hash = $1 WHERE id = $2", passwordHash, userID)
	if err != nil {
		zap.L().Error("failed to update password", zap.Int("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

// UpdateProfile changes the provided profile fields and returns the stored user,
// or nil when the user does not exist.
func (repo *Repository) UpdateProfile(ctx context.Context, userID int, upd domain.ProfileUpdate) (*domain.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($1, name), email = COALESCE($2, email)
		WHERE id = $3
		RETURNING ` + userColumns
	user, err := scanUser(repo.db.QueryRow(ctx, query, upd.Name, upd.Email, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to update profile", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// AddBadge appends the badge unless the user already holds it.
func (repo *Repository) AddBadge(ctx context.Context, userID int, badge string) (bool, error) {
	query := `
		UPDATE users
		SET badges = array_append(badges, $1)
		WHERE id = $2 AND NOT ($1 = ANY(badges))
	`
	tag, err := repo.db.Exec(ctx, query, badge, userID)
	if err != nil {
		zap.L().Error("failed to add badge", zap.Int("user_id", userID), zap.String("badge", badge), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// FindUnplaced lists users created before olderThan that neither hang under a
// parent edge nor originate a chain, with the code of the inviter they named.
func (repo *Repository) FindUnplaced(ctx context.Context, olderThan time.Time, limit int) ([]domain.UnplacedUser, error) {
	query := `
		SELECT u.id, COALESCE(i.referral_code, '')
		FROM users u
		LEFT JOIN users i ON i.id = u.invited_by
		WHERE NOT EXISTS (SELECT 1 FROM referrals r WHERE r.child_id = u.id)
		  AND NOT EXISTS (SELECT 1 FROM chains c WHERE c.origin_user_id = u.id)
		  AND u.created_at < $1
		ORDER BY u.id
		LIMIT $2
	`
	rows, err := repo.db.Query(ctx, query, olderThan, limit)
	if err != nil {
		zap.L().Error("can't get unplaced users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.UnplacedUser
	for rows.Next() {
		var u domain.UnplacedUser
		if err := rows.Scan(&u.UserID, &u.InviterCode); err != nil {
			zap.L().Error("can't scan unplaced user", zap.Error(err))
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
