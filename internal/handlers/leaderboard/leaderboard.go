package leaderboard

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/dto"
	"github.com/GlebRadaev/elevatex/internal/handlers/common"
	"github.com/GlebRadaev/elevatex/pkg/utils"
)

//go:generate mockgen -source=leaderboard.go -destination=mock_leaderboard.go -package=leaderboard

type Service interface {
	Period(month, year int) (int, int)
	GetLeaderboard(ctx context.Context, month, year, limit int) ([]domain.LeaderboardEntry, error)
	GetBadges(ctx context.Context, userID int) (*domain.Achievements, error)
}

type LeaderboardHandler struct {
	leaderboardService Service
}

func New(leaderboardService Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// Get godoc
//
//	@Summary	Monthly leaderboard
//	@Tags		Leaderboard
//	@Produce	json
//	@Security	BearerAuth
//	@Param		month	query		int	false	"Month, defaults to the current one"
//	@Param		year	query		int	false	"Year, defaults to the current one"
//	@Param		limit	query		int	false	"Number of entries, at most 100"
//	@Success	200		{object}	dto.LeaderboardResponseDTO
//	@Failure	400		{object}	utils.Response	"Invalid period"
//	@Router		/api/leaderboard [get]
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	month, year := h.leaderboardService.Period(common.IntQuery(r, "month", 0), common.IntQuery(r, "year", 0))
	entries, err := h.leaderboardService.GetLeaderboard(r.Context(), month, year, common.IntQuery(r, "limit", 0))
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToLeaderboardDTO(month, year, entries))
}

// Badges godoc
//
//	@Summary	Badges and level of the current user
//	@Tags		Leaderboard
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.BadgesResponseDTO
//	@Router		/api/leaderboard/badges [get]
func (h *LeaderboardHandler) Badges(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(w, r)
	if !ok {
		return
	}
	achievements, err := h.leaderboardService.GetBadges(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToBadgesDTO(achievements))
}
