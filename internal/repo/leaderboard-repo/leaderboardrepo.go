package leaderboardrepo

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Aggregate sums completed commissions and counts edges created under each
// user inside [from, to). Users with neither are left out.
func (r *Repository) Aggregate(ctx context.Context, from, to time.Time) ([]domain.LeaderboardEntry, error) {
	query := `
		WITH earned AS (
			SELECT user_id, SUM(amount) AS total
			FROM transactions
			WHERE type = 'commission' AND status = 'completed'
			  AND created_at >= $1 AND created_at < $2
			GROUP BY user_id
		), invited AS (
			SELECT parent_id AS user_id, COUNT(*) AS total
			FROM referrals
			WHERE created_at >= $1 AND created_at < $2
			GROUP BY parent_id
		)
		SELECT u.id, u.name, COALESCE(e.total, 0), COALESCE(i.total, 0)::INT
		FROM users u
		LEFT JOIN earned e ON e.user_id = u.id
		LEFT JOIN invited i ON i.user_id = u.id
		WHERE e.user_id IS NOT NULL OR i.user_id IS NOT NULL
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		zap.L().Error("can't aggregate leaderboard", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.UserName, &e.TotalEarned, &e.ReferralsCount); err != nil {
			zap.L().Error("can't scan leaderboard aggregate", zap.Error(err))
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *Repository) Upsert(ctx context.Context, e *domain.LeaderboardEntry) error {
	query := `
		INSERT INTO leaderboards (user_id, month, year, total_earned, referrals_count, rank)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, month, year) DO UPDATE
		SET total_earned = EXCLUDED.total_earned,
		    referrals_count = EXCLUDED.referrals_count,
		    rank = EXCLUDED.rank,
		    updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, e.UserID, e.Month, e.Year, e.TotalEarned, e.ReferralsCount, e.Rank)
	if err != nil {
		zap.L().Error("can't upsert leaderboard entry", zap.Int("user_id", e.UserID), zap.Error(err))
		return err
	}
	return nil
}

// ClearRanks zeroes the ranks of a period before they are rewritten.
func (r *Repository) ClearRanks(ctx context.Context, month, year int) error {
	_, err := r.db.Exec(ctx, "UPDATE leaderboards SET rank = 0 WHERE month = $1 AND year = $2", month, year)
	if err != nil {
		zap.L().Error("can't clear leaderboard ranks", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListTop(ctx context.Context, month, year, limit int) ([]domain.LeaderboardEntry, error) {
	query := `
		SELECT l.id, l.user_id, u.name, l.month, l.year, l.total_earned, l.referrals_count, l.rank
		FROM leaderboards l
		JOIN users u ON u.id = l.user_id
		WHERE l.month = $1 AND l.year = $2 AND l.rank > 0
		ORDER BY l.rank ASC
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, month, year, limit)
	if err != nil {
		zap.L().Error("can't get leaderboard", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.UserName, &e.Month, &e.Year, &e.TotalEarned, &e.ReferralsCount, &e.Rank); err != nil {
			zap.L().Error("can't scan leaderboard row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *Repository) FindByUser(ctx context.Context, userID, month, year int) (*domain.LeaderboardEntry, error) {
	query := `
		SELECT l.id, l.user_id, u.name, l.month, l.year, l.total_earned, l.referrals_count, l.rank
		FROM leaderboards l
		JOIN users u ON u.id = l.user_id
		WHERE l.user_id = $1 AND l.month = $2 AND l.year = $3
	`
	var e domain.LeaderboardEntry
	err := r.db.QueryRow(ctx, query, userID, month, year).
		Scan(&e.ID, &e.UserID, &e.UserName, &e.Month, &e.Year, &e.TotalEarned, &e.ReferralsCount, &e.Rank)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find leaderboard entry", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &e, nil
}
