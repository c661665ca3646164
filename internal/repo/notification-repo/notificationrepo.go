package notificationrepo

import (
	"context"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/pg"
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

func (r *Repository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	query := `
		INSERT INTO notifications (user_id, type, title, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, read_status, created_at
	`
	err := r.db.QueryRow(ctx, query, n.UserID, n.Type, n.Title, n.Message).Scan(&n.ID, &n.ReadStatus, &n.CreatedAt)
	if err != nil {
		zap.L().Error("can't save notification", zap.Int("user_id", n.UserID), zap.Error(err))
		return nil, err
	}
	return n, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID, limit, offset int) ([]domain.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, read_status, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		zap.L().Error("can't get notifications", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.ReadStatus, &n.CreatedAt); err != nil {
			zap.L().Error("can't scan notification row", zap.Error(err))
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead reports false when the notification does not belong to the user.
func (r *Repository) MarkRead(ctx context.Context, userID, id int) (bool, error) {
	tag, err := r.db.Exec(ctx, "UPDATE notifications SET read_status = TRUE WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		zap.L().Error("can't mark notification read", zap.Int("id", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) CountUnread(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read_status = FALSE", userID,
	).Scan(&count)
	if err != nil {
		zap.L().Error("can't count unread notifications", zap.Int("user_id", userID), zap.Error(err))
		return 0, err
	}
	return count, nil
}
