package chainrepo

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Advisory lock namespaces. The counter lock uses key 0 of its own namespace.
const (
	chainLockNamespace     = 7301
	counterLockNamespace   = 7302
	placementLockNamespace = 7303
)

const chainColumns = "id, origin_user_id, member_count, completed_at, created_at"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanChain(row pgx.Row) (*domain.Chain, error) {
	var chain domain.Chain
	if err := row.Scan(&chain.ID, &chain.OriginUserID, &chain.MemberCount, &chain.CompletedAt, &chain.CreatedAt); err != nil {
		return nil, err
	}
	return &chain, nil
}

// Lock takes the transaction-scoped advisory lock of a chain.
func (r *Repository) Lock(ctx context.Context, chainID int) error {
	_, err := r.db.Exec(ctx, "SELECT pg_advisory_xact_lock($1, $2)", chainLockNamespace, chainID)
	if err != nil {
		zap.L().Error("can't lock chain", zap.Int("chain_id", chainID), zap.Error(err))
		return err
	}
	return nil
}

// LockCounter serializes the creation of new chains.
func (r *Repository) LockCounter(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "SELECT pg_advisory_xact_lock($1, $2)", counterLockNamespace, 0)
	if err != nil {
		zap.L().Error("can't lock chain counter", zap.Error(err))
		return err
	}
	return nil
}

// LockPlacement serializes placement attempts for one user.
func (r *Repository) LockPlacement(ctx context.Context, userID int) error {
	_, err := r.db.Exec(ctx, "SELECT pg_advisory_xact_lock($1, $2)", placementLockNamespace, userID)
	if err != nil {
		zap.L().Error("can't lock user placement", zap.Int("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Chain, error) {
	chain, err := scanChain(r.db.QueryRow(ctx, "SELECT "+chainColumns+" FROM chains WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find chain", zap.Int("chain_id", id), zap.Error(err))
		return nil, err
	}
	return chain, nil
}

func (r *Repository) FindByOrigin(ctx context.Context, userID int) (*domain.Chain, error) {
	chain, err := scanChain(r.db.QueryRow(ctx, "SELECT "+chainColumns+" FROM chains WHERE origin_user_id = $1", userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find chain by origin", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return chain, nil
}

// FindOpen lists chains below capacity, fewest members first, oldest first on ties.
func (r *Repository) FindOpen(ctx context.Context, capacity, limit int) ([]domain.Chain, error) {
	query := `
		SELECT ` + chainColumns + `
		FROM chains
		WHERE member_count < $1
		ORDER BY member_count ASC, id ASC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, capacity, limit)
	if err != nil {
		zap.L().Error("can't get open chains", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var chains []domain.Chain
	for rows.Next() {
		chain, err := scanChain(rows)
		if err != nil {
			zap.L().Error("can't scan chain row", zap.Error(err))
			return nil, err
		}
		chains = append(chains, *chain)
	}
	return chains, rows.Err()
}

// Create opens a chain with its origin user at position 1.
func (r *Repository) Create(ctx context.Context, originUserID int) (*domain.Chain, error) {
	query := `
		INSERT INTO chains (origin_user_id, member_count)
		VALUES ($1, 1)
		RETURNING ` + chainColumns
	chain, err := scanChain(r.db.QueryRow(ctx, query, originUserID))
	if err != nil {
		zap.L().Error("can't create chain", zap.Int("origin_user_id", originUserID), zap.Error(err))
		return nil, err
	}
	return chain, nil
}

// IncrementMembers bumps the member count and returns the new count, which is
// the position assigned to the member just added.
func (r *Repository) IncrementMembers(ctx context.Context, chainID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"UPDATE chains SET member_count = member_count + 1 WHERE id = $1 RETURNING member_count",
		chainID,
	).Scan(&count)
	if err != nil {
		zap.L().Error("can't increment chain members", zap.Int("chain_id", chainID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// MarkComplete stamps completed_at once and reports whether this call did it.
func (r *Repository) MarkComplete(ctx context.Context, chainID int, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"UPDATE chains SET completed_at = $1 WHERE id = $2 AND completed_at IS NULL",
		at, chainID,
	)
	if err != nil {
		zap.L().Error("can't mark chain complete", zap.Int("chain_id", chainID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
