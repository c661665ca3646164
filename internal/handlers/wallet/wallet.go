package wallet

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/GlebRadaev/elevatex/internal/dto"
	"github.com/GlebRadaev/elevatex/internal/handlers/common"
	"github.com/GlebRadaev/elevatex/pkg/utils"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=wallet.go -destination=mock_wallet.go -package=wallet

type Service interface {
	GetBalance(ctx context.Context, userID int) (*domain.Wallet, error)
	InitiateActivation(ctx context.Context, userID int) (*domain.Transaction, error)
	Fund(ctx context.Context, userID int, amount decimal.Decimal) (*domain.Transaction, error)
	Withdraw(ctx context.Context, userID int, amount decimal.Decimal) (*domain.Transaction, error)
	GetTransactions(ctx context.Context, userID, limit, offset int) ([]domain.Transaction, error)
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

type WalletHandler struct {
	walletService Service
}

func New(walletService Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// GetBalance godoc
//
//	@Summary	Get wallet balance
//	@Tags		Wallet
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.BalanceResponseDTO
//	@Failure	401	{object}	utils.Response	"Unauthorized"
//	@Router		/api/wallet/balance [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(w, r)
	if !ok {
		return
	}
	wallet, err := h.walletService.GetBalance(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToBalanceDTO(wallet))
}

// Activate godoc
//
//	@Summary		Start account activation
//	@Description	Creates a pending activation payment; the account is activated once the gateway confirms it
//	@Tags			Wallet
//	@Produce		json
//	@Security		BearerAuth
//	@Success		202	{object}	dto.TransactionDTO
//	@Failure		409	{object}	utils.Response	"Account is already activated"
//	@Router			/api/wallet/activate [post]
func (h *WalletHandler) Activate(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(w, r)
	if !ok {
		return
	}
	tx, err := h.walletService.InitiateActivation(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, dto.ToTransactionDTO(tx))
}

// Withdraw godoc
//
//	@Summary	Request a withdrawal
//	@Tags		Wallet
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.WithdrawRequestDTO	true	"Amount in NGN"
//	@Success	202		{object}	dto.TransactionDTO
//	@Failure	400		{object}	utils.Response	"Invalid amount"
//	@Failure	402		{object}	utils.Response	"Insufficient balance"
//	@Failure	403		{object}	utils.Response	"Account is not activated"
//	@Router		/api/wallet/withdraw [post]
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(w, r)
	if !ok {
		return
	}
	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, common.MsgInvalidBody)
		return
	}
	tx, err := h.walletService.Withdraw(r.Context(), userID, req.Amount)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, dto.ToTransactionDTO(tx))
}

// Fund godoc
//
//	@Summary		Fund the wallet
//	@Description	Creates a pending funding payment for the gateway to collect
//	@Tags			Wallet
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		dto.FundRequestDTO	true	"Amount in NGN, 100 to 1,000,000"
//	@Success		202		{object}	dto.TransactionDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount"
//	@Router			/api/wallet/fund [post]
func (h *WalletHandler) Fund(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(w, r)
	if !ok {
		return
	}
	var req dto.FundRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, common.MsgInvalidBody)
		return
	}
	tx, err := h.walletService.Fund(r.Context(), userID, req.Amount)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, dto.ToTransactionDTO(tx))
}

// GetTransactions godoc
//
//	@Summary	Transaction history
//	@Tags		Wallet
//	@Produce	json
//	@Security	BearerAuth
//	@Param		limit	query	int	false	"Page size, at most 100"
//	@Param		offset	query	int	false	"Offset"
//	@Success	200		{array}	dto.TransactionDTO
//	@Router		/api/wallet/transactions [get]
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(w, r)
	if !ok {
		return
	}
	limit := common.IntQuery(r, "limit", defaultLimit)
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	offset := common.IntQuery(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	txs, err := h.walletService.GetTransactions(r.Context(), userID, limit, offset)
	if err != nil {
		common.RespondWithServiceError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ToTransactionDTOs(txs))
}
