package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/baharkarakas/termbank/internal/models"
	"github.com/shopspring/decimal"
)

type transactionsRepo struct{ db *sql.DB }

func (r *transactionsRepo) Append(tx models.Transaction) error {
	_, err := r.db.Exec(
		`INSERT INTO transactions(id, account_username, kind, amount, balance, created_at) VALUES(?,?,?,?,?,?)`,
		tx.ID, tx.AccountUsername, string(tx.Kind), tx.Amount.String(), tx.Balance.String(), tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByAccount orders by rowid, which is insertion order regardless of
// timestamp resolution.
func (r *transactionsRepo) ListByAccount(username string) ([]models.Transaction, error) {
	rows, err := r.db.Query(
		`SELECT id, account_username, kind, amount, balance, created_at
		   FROM transactions
		  WHERE account_username=?
		  ORDER BY rowid`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func scanTransaction(rows *sql.Rows) (models.Transaction, error) {
	var tx models.Transaction
	var kind, amount, balance string
	if err := rows.Scan(&tx.ID, &tx.AccountUsername, &kind, &amount, &balance, &tx.CreatedAt); err != nil {
		return models.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	tx.Kind = models.TransactionKind(kind)
	var err error
	if tx.Amount, err = decimal.NewFromString(amount); err != nil {
		return models.Transaction{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	if tx.Balance, err = decimal.NewFromString(balance); err != nil {
		return models.Transaction{}, fmt.Errorf("parse balance %q: %w", balance, err)
	}
	return tx, nil
}
