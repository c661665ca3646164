package dto

import (
	"time"

	"github.com/GlebRadaev/elevatex/internal/domain"
	"github.com/shopspring/decimal"
)

type BalanceResponseDTO struct {
	AvailableBalance   string     `json:"available_balance" example:"1350.00"`
	PendingWithdrawals string     `json:"pending_withdrawals" example:"0.00"`
	TotalEarned        string     `json:"total_earned" example:"1350.00"`
	IsActivated        bool       `json:"is_activated" example:"true"`
	ActivationDate     *time.Time `json:"activation_date,omitempty"`
}

func ToBalanceDTO(w *domain.Wallet) BalanceResponseDTO {
	return BalanceResponseDTO{
		AvailableBalance:   w.AvailableBalance.StringFixed(2),
		PendingWithdrawals: w.PendingWithdrawals.StringFixed(2),
		TotalEarned:        w.TotalEarned.StringFixed(2),
		IsActivated:        w.IsActivated,
		ActivationDate:     w.ActivationDate,
	}
}

type WithdrawRequestDTO struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"1500.00"`
}

type FundRequestDTO struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"5000.00"`
}

type TransactionDTO struct {
	ID          int       `json:"id" example:"7"`
	Type        string    `json:"type" example:"commission"`
	Amount      string    `json:"amount" example:"200.00"`
	Status      string    `json:"status" example:"completed"`
	Reference   string    `json:"reference" example:"COMM-12-L1"`
	Description string    `json:"description" example:"Level 1 commission"`
	CreatedAt   time.Time `json:"created_at" example:"2026-03-01T09:00:00Z"`
}

func ToTransactionDTO(tx *domain.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Amount:      tx.Amount.StringFixed(2),
		Status:      string(tx.Status),
		Reference:   tx.Reference,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
}

func ToTransactionDTOs(txs []domain.Transaction) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(txs))
	for i := range txs {
		out = append(out, ToTransactionDTO(&txs[i]))
	}
	return out
}

type PaymentWebhookDTO struct {
	Reference string `json:"reference" validate:"required" example:"WDR-3F2A9C0D1E4B4A7F8C6D5E4F3A2B1C0D"`
	Status    string `json:"status" validate:"required,oneof=SUCCESS FAILED" example:"SUCCESS"`
}
