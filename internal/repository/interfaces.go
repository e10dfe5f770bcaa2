package repository

import (
	"github.com/baharkarakas/termbank/internal/models"
	"github.com/shopspring/decimal"
)

// Accounts is the credential-store table: one record per username.
type Accounts interface {
	// Create persists a new account; returns models.ErrDuplicateAccount if
	// the username is already taken.
	Create(a models.Account) error
	// GetByUsername returns models.ErrAccountNotFound for unknown usernames.
	GetByUsername(username string) (models.Account, error)
	// UpdateBalance applies delta to the stored balance and persists
	// immediately, returning the updated record. The caller is responsible
	// for keeping the result non-negative.
	UpdateBalance(username string, delta decimal.Decimal) (models.Account, error)
	List() ([]models.Account, error)
}

// Transactions is the append-only history log.
type Transactions interface {
	Append(tx models.Transaction) error
	// ListByAccount returns committed entries in append order, oldest first.
	ListByAccount(username string) ([]models.Transaction, error)
}

// Repositories bundles one backend's implementations.
type Repositories struct {
	Accounts     Accounts
	Transactions Transactions
}
