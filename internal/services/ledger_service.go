package services

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/baharkarakas/termbank/internal/models"
	repo "github.com/baharkarakas/termbank/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerService validates and records balance mutations. Every successful
// deposit or withdrawal is one logical unit: adjust the stored balance,
// then append an immutable history entry carrying the resulting balance.
type LedgerService struct {
	accounts *AccountService
	trx      repo.Transactions
	mu       sync.Mutex
}

func NewLedgerService(accounts *AccountService, trx repo.Transactions) *LedgerService {
	return &LedgerService{accounts: accounts, trx: trx}
}

func (s *LedgerService) Deposit(acct *models.Account, amount decimal.Decimal) (models.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return models.Transaction{}, models.ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record(acct, models.TxnDeposit, amount, amount)
}

// Withdraw checks amount positivity before funds sufficiency, so a negative
// request always reports ErrInvalidAmount. No overdraft: amount may not
// exceed the current balance.
func (s *LedgerService) Withdraw(acct *models.Account, amount decimal.Decimal) (models.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return models.Transaction{}, models.ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if amount.GreaterThan(acct.Balance) {
		return models.Transaction{}, models.ErrInsufficientFunds
	}
	return s.record(acct, models.TxnWithdrawal, amount, amount.Neg())
}

// record applies the signed delta and appends the matching entry. If the
// append fails the balance change is compensated, so balance and history
// cannot diverge on any exit path.
func (s *LedgerService) record(acct *models.Account, kind models.TransactionKind, amount, delta decimal.Decimal) (models.Transaction, error) {
	newBalance, err := s.accounts.AdjustBalance(acct.Username, delta)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("adjust balance: %w", err)
	}
	tx := models.Transaction{
		ID:              uuid.NewString(),
		AccountUsername: acct.Username,
		Kind:            kind,
		Amount:          amount,
		Balance:         newBalance,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.trx.Append(tx); err != nil {
		if _, rbErr := s.accounts.AdjustBalance(acct.Username, delta.Neg()); rbErr != nil {
			slog.Error("rollback after failed append", "account", acct.Username, "err", rbErr)
			return models.Transaction{}, fmt.Errorf("append transaction: %w (balance compensation failed: %v)", err, rbErr)
		}
		return models.Transaction{}, fmt.Errorf("append transaction: %w", err)
	}
	acct.Balance = newBalance
	slog.Debug("transaction recorded", "account", acct.Username, "kind", kind, "amount", amount.String(), "balance", newBalance.String())
	return tx, nil
}

// History returns the account's committed entries, oldest first. Safe to
// call repeatedly; it always re-reads from storage.
func (s *LedgerService) History(acct *models.Account) ([]models.Transaction, error) {
	return s.trx.ListByAccount(acct.Username)
}
