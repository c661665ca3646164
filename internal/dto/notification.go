package dto

import (
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
)

type NotificationDTO struct {
	ID        int       `json:"id" example:"5"`
	Type      string    `json:"type" example:"earning"`
	Title     string    `json:"title" example:"Commission earned"`
	Message   string    `json:"message" example:"You earned NGN 200.00 from a level 1 referral."`
	Read      bool      `json:"read" example:"false"`
	CreatedAt time.Time `json:"created_at" example:"2026-03-01T09:00:00Z"`
}

type NotificationsResponseDTO struct {
	Notifications []NotificationDTO `json:"notifications"`
	UnreadCount   int               `json:"unread_count" example:"3"`
	Page          int               `json:"page" example:"1"`
	Size          int               `json:"size" example:"20"`
}

func ToNotificationsDTO(items []domain.Notification, unread, page, size int) NotificationsResponseDTO {
	out := make([]NotificationDTO, 0, len(items))
	for _, n := range items {
		out = append(out, NotificationDTO{
			ID:        n.ID,
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			Read:      n.ReadStatus,
			CreatedAt: n.CreatedAt,
		})
	}
	return NotificationsResponseDTO{
		Notifications: out,
		UnreadCount:   unread,
		Page:          page,
		Size:          size,
	}
}
