package referrals

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/dto"
	"github.com/GlebRadaev/elevatex/internal/handlers/common"
	"github.com/GlebRadaev/elevatex/pkg/utils"
)

//go:generate mockgen -source=referrals.go -destination=mock_referrals.go -package=referrals

type Service interface {
	Join(ctx context.Context, userID int, inviterCode string) (*domain.PlacementResult, error)
	ListReferrals(ctx context.Context, userID int) ([]domain.Referral, []domain.Referral, error)
	Tree(ctx context.Context, userID, depth int) (*domain.TreeNode, error)
	Chain(ctx context.Context, userID int) (*domain.ChainProgress, []domain.ChainMember, error)
	ReferralLink(ctx context.Context, userID int) (*domain.ReferralLink, error)
}

type ReferralHandler struct {
	referralService Service
}

func New(referralService Service) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
	}
}

// List godoc
//
//	@Summary	Direct children split by placement type
//	@Tags		Referrals
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.ReferralsResponseDTO
//	@Failure	401	{object}	utils.Response	"Unauthorized"
//	@Router		/api/referrals [get]
func (h *ReferralHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(w, r)
	if !ok {
		return
	}
	direct, system, err := h.referralService.ListReferrals(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToReferralsDTO(direct, system))
}

// Tree godoc
//
//	@Summary	Downline tree
//	@Tags		Referrals
//	@Produce	json
//	@Security	BearerAuth
//	@Param		depth	query		int	false	"Depth, 1 to 5"
//	@Success	200		{object}	dto.TreeNodeDTO
//	@Router		/api/referrals/tree [get]
func (h *ReferralHandler) Tree(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(w, r)
	if !ok {
		return
	}
	tree, err := h.referralService.Tree(r.Context(), userID, common.IntQuery(r, "depth", 0))
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToTreeDTO(tree))
}

// Chain godoc
//
//	@Summary	Progress and members of the user's chain
//	@Tags		Referrals
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.ChainResponseDTO
//	@Failure	404	{object}	utils.Response	"User is not placed in any chain"
//	@Router		/api/referrals/chain [get]
func (h *ReferralHandler) Chain(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(w, r)
	if !ok {
		return
	}
	progress, members, err := h.referralService.Chain(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToChainDTO(progress, members))
}

// Generate godoc
//
//	@Summary	Referral link with QR code
//	@Tags		Referrals
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.ReferralLinkResponseDTO
//	@Router		/api/referrals/generate [post]
func (h *ReferralHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(w, r)
	if !ok {
		return
	}
	link, err := h.referralService.ReferralLink(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ReferralLinkResponseDTO{
		ReferralCode: link.Code,
		ReferralLink: link.URL,
		QRCode:       "data:image/png;base64," + base64.StdEncoding.EncodeToString(link.QRCode),
	})
}

// Join godoc
//
//	@Summary		Place the current user
//	@Description	Places a user left unplaced at signup, under the inviter when a code is given
//	@Tags			Referrals
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		dto.JoinRequestDTO	true	"Inviter code"
//	@Success		201		{object}	dto.PlacementDTO
//	@Failure		400		{object}	utils.Response	"Invalid referral code"
//	@Failure		409		{object}	utils.Response	"User is already placed"
//	@Router			/api/referrals/join [post]
func (h *ReferralHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(w, r)
	if !ok {
		return
	}
	var req dto.JoinRequestDTO
	if !common.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := h.referralService.Join(r.Context(), userID, req.ReferralCode)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.ToPlacementDTO(result))
}
