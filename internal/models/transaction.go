package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TxnDeposit    TransactionKind = "deposit"
	TxnWithdrawal TransactionKind = "withdrawal"
)

// Transaction is an immutable record of one balance mutation. Amount is
// always positive; the direction comes from Kind. Balance is the account
// balance snapshot after this entry was applied.
type Transaction struct {
	ID              string          `json:"id"`
	AccountUsername string          `json:"account_username"`
	Kind            TransactionKind `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Balance         decimal.Decimal `json:"balance"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Signed returns the amount with its ledger sign: deposits positive,
// withdrawals negative.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == TxnWithdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}
