package notifications

import (
	"context"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/dto"
	"github.com/GlebRadaev/elevatex/internal/handlers/common"
	"github.com/GlebRadaev/elevatex/internal/service/notificationservice"
	"github.com/GlebRadaev/elevatex/pkg/utils"
	"github.com/go-chi/chi/v5"
)

//go:generate mockgen -source=notifications.go -destination=mock_notifications.go -package=notifications

type Service interface {
	List(ctx context.Context, userID, page, size int) ([]domain.Notification, int, error)
	MarkRead(ctx context.Context, userID, id int) error
}

type NotificationHandler struct {
	notificationService Service
}

func New(notificationService Service) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// List godoc
//
//	@Summary	List notifications, newest first
//	@Tags		Notifications
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page	query		int	false	"1-based page"
//	@Param		size	query		int	false	"Page size, at most 100"
//	@Success	200		{object}	dto.NotificationsResponseDTO
//	@Router		/api/notifications [get]
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(w, r)
	if !ok {
		return
	}
	page := common.IntQuery(r, "page", 1)
	if page < 1 {
		page = 1
	}
	size, _ := notificationservice.Page(page, common.IntQuery(r, "size", notificationservice.DefaultPageSize))

	items, unread, err := h.notificationService.List(r.Context(), userID, page, size)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToNotificationsDTO(items, unread, page, size))
}

// MarkRead godoc
//
//	@Summary	Mark a notification as read
//	@Tags		Notifications
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Notification ID"
//	@Success	200	{object}	dto.MessageResponseDTO
//	@Failure	404	{object}	utils.Response	"Notification not found"
//	@Router		/api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(w, r)
	if !ok {
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid notification id")
		return
	}
	if err := h.notificationService.MarkRead(r.Context(), userID, id); err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.MessageResponseDTO{Message: "Notification marked as read"})
}
