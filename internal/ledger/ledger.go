// Package ledger holds the balance arithmetic applied to a user's wallet.
// Callers load the row under a lock, apply an operation and persist the result.
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientBalance      = errors.New("insufficient balance")
	ErrLedgerInvariantViolation = errors.New("ledger invariant violation")
	ErrInvalidAmount            = errors.New("amount must be positive with at most 2 fractional digits")
)

type Balances struct {
	Available   decimal.Decimal
	Pending     decimal.Decimal
	TotalEarned decimal.Decimal
}

func (b Balances) Validate() error {
	if b.Available.IsNegative() || b.Pending.IsNegative() || b.TotalEarned.IsNegative() {
		return fmt.Errorf("%w: negative balance", ErrLedgerInvariantViolation)
	}
	for _, v := range []decimal.Decimal{b.Available, b.Pending, b.TotalEarned} {
		if !v.Equal(v.Round(2)) {
			return fmt.Errorf("%w: more than 2 fractional digits", ErrLedgerInvariantViolation)
		}
	}
	return nil
}

func CheckAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, amount.String())
	}
	return nil
}

// Credit adds earned money: both the spendable balance and the lifetime total grow.
func Credit(b Balances, amount decimal.Decimal) (Balances, error) {
	if err := CheckAmount(amount); err != nil {
		return b, err
	}
	next := Balances{
		Available:   b.Available.Add(amount),
		Pending:     b.Pending,
		TotalEarned: b.TotalEarned.Add(amount),
	}
	return next, next.Validate()
}

// Reserve moves money from available to pending for an in-flight withdrawal.
func Reserve(b Balances, amount decimal.Decimal) (Balances, error) {
	if err := CheckAmount(amount); err != nil {
		return b, err
	}
	if b.Available.LessThan(amount) {
		return b, ErrInsufficientBalance
	}
	next := Balances{
		Available:   b.Available.Sub(amount),
		Pending:     b.Pending.Add(amount),
		TotalEarned: b.TotalEarned,
	}
	return next, next.Validate()
}

// Settle drops a paid-out withdrawal from pending.
func Settle(b Balances, amount decimal.Decimal) (Balances, error) {
	if err := CheckAmount(amount); err != nil {
		return b, err
	}
	if b.Pending.LessThan(amount) {
		return b, fmt.Errorf("%w: settling %s with %s pending", ErrLedgerInvariantViolation, amount, b.Pending)
	}
	next := Balances{
		Available:   b.Available,
		Pending:     b.Pending.Sub(amount),
		TotalEarned: b.TotalEarned,
	}
	return next, next.Validate()
}

// Release returns a failed withdrawal from pending to available.
func Release(b Balances, amount decimal.Decimal) (Balances, error) {
	if err := CheckAmount(amount); err != nil {
		return b, err
	}
	if b.Pending.LessThan(amount) {
		return b, fmt.Errorf("%w: releasing %s with %s pending", ErrLedgerInvariantViolation, amount, b.Pending)
	}
	next := Balances{
		Available:   b.Available.Add(amount),
		Pending:     b.Pending.Sub(amount),
		TotalEarned: b.TotalEarned,
	}
	return next, next.Validate()
}
