package referralrepo

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/pg"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const referralColumns = `id, parent_id, child_id, level, placement_type, chain_id, position_in_chain,
	is_active, earnings_paid, commission_settled_at, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanReferral(row pgx.Row) (*domain.Referral, error) {
	var ref domain.Referral
	err := row.Scan(
		&ref.ID, &ref.ParentID, &ref.ChildID, &ref.Level, &ref.PlacementType, &ref.ChainID,
		&ref.PositionInChain, &ref.IsActive, &ref.EarningsPaid, &ref.CommissionSettledAt, &ref.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *Repository) findOne(ctx context.Context, what, query string, args ...any) (*domain.Referral, error) {
	ref, err := scanReferral(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find referral", zap.String("by", what), zap.Error(err))
		return nil, err
	}
	return ref, nil
}

func (r *Repository) findMany(ctx context.Context, what, query string, args ...any) ([]domain.Referral, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get referrals", zap.String("by", what), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var refs []domain.Referral
	for rows.Next() {
		ref, err := scanReferral(rows)
		if err != nil {
			zap.L().Error("can't scan referral row", zap.String("by", what), zap.Error(err))
			return nil, err
		}
		refs = append(refs, *ref)
	}
	return refs, rows.Err()
}

func (r *Repository) Create(ctx context.Context, ref *domain.Referral) (*domain.Referral, error) {
	query := `
		INSERT INTO referrals (parent_id, child_id, level, placement_type, chain_id, position_in_chain)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, earnings_paid, created_at
	`
	err := r.db.QueryRow(ctx, query,
		ref.ParentID, ref.ChildID, ref.Level, ref.PlacementType, ref.ChainID, ref.PositionInChain,
	).Scan(&ref.ID, &ref.IsActive, &ref.EarningsPaid, &ref.CreatedAt)
	if err != nil {
		zap.L().Error("can't save referral", zap.Int("child_id", ref.ChildID), zap.Error(err))
		return nil, err
	}
	return ref, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Referral, error) {
	return r.findOne(ctx, "id", "SELECT "+referralColumns+" FROM referrals WHERE id = $1", id)
}

// FindByChild returns the parent edge of a user, nil when the user hangs under nobody.
func (r *Repository) FindByChild(ctx context.Context, childID int) (*domain.Referral, error) {
	return r.findOne(ctx, "child", "SELECT "+referralColumns+" FROM referrals WHERE child_id = $1", childID)
}

func (r *Repository) LockByID(ctx context.Context, id int) (*domain.Referral, error) {
	return r.findOne(ctx, "lock", "SELECT "+referralColumns+" FROM referrals WHERE id = $1 FOR UPDATE", id)
}

func (r *Repository) CountDirectChildren(ctx context.Context, parentID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM referrals WHERE parent_id = $1", parentID).Scan(&count)
	if err != nil {
		zap.L().Error("can't count direct children", zap.Int("parent_id", parentID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// ChildCounts returns the number of children per parent inside one chain.
func (r *Repository) ChildCounts(ctx context.Context, chainID int) (map[int]int, error) {
	rows, err := r.db.Query(ctx,
		"SELECT parent_id, COUNT(*) FROM referrals WHERE chain_id = $1 GROUP BY parent_id",
		chainID,
	)
	if err != nil {
		zap.L().Error("can't count children in chain", zap.Int("chain_id", chainID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var parentID, count int
		if err := rows.Scan(&parentID, &count); err != nil {
			zap.L().Error("can't scan child count", zap.Error(err))
			return nil, err
		}
		counts[parentID] = count
	}
	return counts, rows.Err()
}

func (r *Repository) ListByChain(ctx context.Context, chainID int) ([]domain.Referral, error) {
	return r.findMany(ctx, "chain",
		"SELECT "+referralColumns+" FROM referrals WHERE chain_id = $1 ORDER BY position_in_chain ASC",
		chainID)
}

func (r *Repository) ListByParent(ctx context.Context, parentID int) ([]domain.Referral, error) {
	return r.findMany(ctx, "parent",
		"SELECT "+referralColumns+" FROM referrals WHERE parent_id = $1 ORDER BY position_in_chain ASC",
		parentID)
}

// FindUnsettled lists edges whose commission was never applied and that are
// older than the given instant.
func (r *Repository) FindUnsettled(ctx context.Context, olderThan time.Time, limit int) ([]domain.Referral, error) {
	return r.findMany(ctx, "unsettled", `
		SELECT `+referralColumns+`
		FROM referrals
		WHERE commission_settled_at IS NULL AND created_at < $1
		ORDER BY created_at ASC
		LIMIT $2`,
		olderThan, limit)
}

func (r *Repository) AddEarnings(ctx context.Context, edgeID int, amount decimal.Decimal) error {
	_, err := r.db.Exec(ctx, "UPDATE referrals SET earnings_paid = earnings_paid + $1 WHERE id = $2", amount, edgeID)
	if err != nil {
		zap.L().Error("can't add edge earnings", zap.Int("edge_id", edgeID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) MarkCommissionSettled(ctx context.Context, edgeID int, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"UPDATE referrals SET commission_settled_at = $1 WHERE id = $2 AND commission_settled_at IS NULL",
		at, edgeID,
	)
	if err != nil {
		zap.L().Error("can't mark commission settled", zap.Int("edge_id", edgeID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
