package notificationservice

import (
	"context"
	"errors"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"go.uber.org/zap"
)

//go:generate mockgen -source=notificationservice.go -destination=mock_notificationservice.go -package=notificationservice

type Repo interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID, limit, offset int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id int) (bool, error)
	CountUnread(ctx context.Context, userID int) (int, error)
}

var ErrNotificationNotFound = errors.New("notification not found")

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) Notify(ctx context.Context, userID int, kind domain.NotificationType, title, message string) error {
	_, err := s.repo.Create(ctx, &domain.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
	})
	if err != nil {
		zap.L().Error("failed to create notification", zap.Int("user_id", userID), zap.String("type", string(kind)), zap.Error(err))
		return err
	}
	return nil
}

// List returns a page of the user's notifications, newest first, and the
// number of unread ones.
func (s *Service) List(ctx context.Context, userID, page, size int) ([]domain.Notification, int, error) {
	limit, offset := Page(page, size)
	notifications, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

func (s *Service) MarkRead(ctx context.Context, userID, id int) error {
	ok, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}

// Page turns a 1-based page number and size into limit and offset.
func Page(page, size int) (limit, offset int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	return size, (page - 1) * size
}
