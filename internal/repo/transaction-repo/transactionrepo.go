package transactionrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const transactionColumns = "id, user_id, type, amount, status, reference, description, created_at, updated_at"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := row.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Status, &tx.Reference,
		&tx.Description, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *Repository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, type, amount, status, reference, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, tx.UserID, tx.Type, tx.Amount, tx.Status, tx.Reference, tx.Description).
		Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save transaction", zap.String("reference", tx.Reference), zap.Error(err))
		return nil, err
	}
	return tx, nil
}

func (r *Repository) ExistsByReference(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM transactions WHERE reference = $1)", reference).Scan(&exists)
	if err != nil {
		zap.L().Error("can't check transaction reference", zap.String("reference", reference), zap.Error(err))
		return false, err
	}
	return exists, nil
}

// LockByReference loads a transaction under FOR UPDATE, nil when it does not exist.
func (r *Repository) LockByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	tx, err := scanTransaction(r.db.QueryRow(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE reference = $1 FOR UPDATE", reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't lock transaction", zap.String("reference", reference), zap.Error(err))
		return nil, err
	}
	return tx, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, status domain.TransactionStatus) error {
	_, err := r.db.Exec(ctx,
		"UPDATE transactions SET status = $1, updated_at = NOW() WHERE id = $2",
		status, id,
	)
	if err != nil {
		zap.L().Error("failed to update transaction status", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListByUser(ctx context.Context, userID, limit, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, "user", query, userID, limit, offset)
}

func (r *Repository) ListPending(ctx context.Context, txType domain.TransactionType, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE status = 'pending' AND type = $1
		ORDER BY created_at ASC
		LIMIT $2
	`
	return r.list(ctx, "pending", query, txType, limit)
}

func (r *Repository) list(ctx context.Context, what, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch transactions", zap.String("by", what), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			zap.L().Error("failed to scan transaction row", zap.Error(err))
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}
