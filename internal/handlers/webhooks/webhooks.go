package webhooks

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/dto"
	"github.com/GlebRadaev/elevatex/internal/handlers/common"
	"github.com/GlebRadaev/elevatex/pkg/utils"
	"go.uber.org/zap"
)

//go:generate mockgen -source=webhooks.go -destination=mock_webhooks.go -package=webhooks

const SecretHeader = "X-Webhook-Secret"

type Service interface {
	ConfirmPayment(ctx context.Context, reference string, succeeded bool) (*domain.Transaction, error)
}

type WebhookHandler struct {
	walletService Service
	secret        []byte
}

func New(walletService Service, secret string) *WebhookHandler {
	return &WebhookHandler{
		walletService: walletService,
		secret:        []byte(secret),
	}
}

// Payments godoc
//
//	@Summary		Payment gateway callback
//	@Description	Settles a pending activation or withdrawal. Replays of a settled reference are accepted and ignored.
//	@Tags			Webhooks
//	@Accept			json
//	@Produce		json
//	@Param			X-Webhook-Secret	header		string					true	"Shared secret"
//	@Param			request				body		dto.PaymentWebhookDTO	true	"Gateway result"
//	@Success		200					{object}	dto.TransactionDTO
//	@Failure		401					{object}	utils.Response	"Bad secret"
//	@Failure		404					{object}	utils.Response	"Unknown reference"
//	@Router			/api/webhooks/payments [post]
func (h *WebhookHandler) Payments(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		zap.L().Warn("rejected payment webhook", zap.String("remote_addr", r.RemoteAddr))
		utils.RespondWithError(w, http.StatusUnauthorized, common.MsgUnauthorized)
		return
	}

	var req dto.PaymentWebhookDTO
	if !common.DecodeAndValidate(w, r, &req) {
		return
	}

	tx, err := h.walletService.ConfirmPayment(r.Context(), req.Reference, req.Status == "SUCCESS")
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToTransactionDTO(tx))
}

func (h *WebhookHandler) authorized(r *http.Request) bool {
	if len(h.secret) == 0 {
		return false
	}
	got := []byte(r.Header.Get(SecretHeader))
	return subtle.ConstantTimeCompare(got, h.secret) == 1
}
