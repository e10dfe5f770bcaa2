package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/baharkarakas/termbank/internal/models"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

type accountsRepo struct{ db *sql.DB }

func (r *accountsRepo) Create(a models.Account) error {
	_, err := r.db.Exec(
		`INSERT INTO accounts(username, password_hash, balance, created_at) VALUES(?,?,?,?)`,
		a.Username, a.PasswordHash, a.Balance.String(), a.CreatedAt,
	)
	var serr sqlite3.Error
	if errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint {
		return models.ErrDuplicateAccount
	}
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *accountsRepo) GetByUsername(username string) (models.Account, error) {
	return scanAccount(r.db.QueryRow(
		`SELECT username, password_hash, balance, created_at FROM accounts WHERE username=?`,
		username,
	))
}

// UpdateBalance does a read-modify-write inside one SQL transaction; the
// balance column holds decimal text, so the arithmetic happens in Go.
func (r *accountsRepo) UpdateBalance(username string, delta decimal.Decimal) (models.Account, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return models.Account{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	a, err := scanAccount(tx.QueryRow(
		`SELECT username, password_hash, balance, created_at FROM accounts WHERE username=?`,
		username,
	))
	if err != nil {
		return models.Account{}, err
	}
	a.Balance = a.Balance.Add(delta)
	if _, err := tx.Exec(`UPDATE accounts SET balance=? WHERE username=?`, a.Balance.String(), username); err != nil {
		return models.Account{}, fmt.Errorf("update balance: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Account{}, fmt.Errorf("commit: %w", err)
	}
	return a, nil
}

func (r *accountsRepo) List() ([]models.Account, error) {
	rows, err := r.db.Query(`SELECT username, password_hash, balance, created_at FROM accounts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var a models.Account
	var balance string
	err := row.Scan(&a.Username, &a.PasswordHash, &balance, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, models.ErrAccountNotFound
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("scan account: %w", err)
	}
	a.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return models.Account{}, fmt.Errorf("parse balance %q: %w", balance, err)
	}
	return a, nil
}
