// Package sqlite is the embedded-database backend. Same contracts as the
// file backend, but durability and atomicity come from SQLite itself.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/baharkarakas/termbank/internal/repository"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    username      TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    balance       TEXT NOT NULL,
    created_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id               TEXT PRIMARY KEY,
    account_username TEXT NOT NULL REFERENCES accounts(username),
    kind             TEXT NOT NULL,
    amount           TEXT NOT NULL,
    balance          TEXT NOT NULL,
    created_at       TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_username);
`

type Store struct{ db *sql.DB }

// Open opens (or creates) the database file and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_fk=true&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func NewRepositories(s *Store) repository.Repositories {
	return repository.Repositories{
		Accounts:     &accountsRepo{db: s.db},
		Transactions: &transactionsRepo{db: s.db},
	}
}
