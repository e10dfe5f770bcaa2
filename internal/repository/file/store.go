// Package file is the default storage backend: accounts as a JSON snapshot
// rewritten atomically on every mutation, transactions as an append-only
// JSON-lines log. One process per data directory; cross-process access is
// out of scope.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/baharkarakas/termbank/internal/repository"
)

const (
	accountsFile     = "accounts.json"
	transactionsFile = "transactions.log"
)

type Store struct {
	mu           sync.Mutex
	accountsPath string
	txnsPath     string
}

// Open prepares the data directory and backing files.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{
		accountsPath: filepath.Join(dir, accountsFile),
		txnsPath:     filepath.Join(dir, transactionsFile),
	}
	for _, p := range []string{s.accountsPath, s.txnsPath} {
		f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", filepath.Base(p), err)
		}
		f.Close()
	}
	return s, nil
}

func NewRepositories(s *Store) repository.Repositories {
	return repository.Repositories{
		Accounts:     &accountsRepo{store: s},
		Transactions: &transactionsRepo{store: s},
	}
}
