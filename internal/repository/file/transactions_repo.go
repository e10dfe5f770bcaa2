package file

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/baharkarakas/termbank/internal/models"
)

type transactionsRepo struct{ store *Store }

// Append writes one entry as a JSON line and fsyncs before returning, so a
// reported success is durable.
func (r *transactionsRepo) Append(tx models.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("encode transaction: %w", err)
	}
	f, err := os.OpenFile(r.store.txnsPath, os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open transaction log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync transaction log: %w", err)
	}
	return nil
}

func (r *transactionsRepo) ListByAccount(username string) ([]models.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	f, err := os.Open(r.store.txnsPath)
	if err != nil {
		return nil, fmt.Errorf("open transaction log: %w", err)
	}
	defer f.Close()

	var out []models.Transaction
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var tx models.Transaction
		if err := json.Unmarshal(sc.Bytes(), &tx); err != nil {
			return nil, fmt.Errorf("parse transaction log line %d: %w", line, err)
		}
		if tx.AccountUsername == username {
			out = append(out, tx)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read transaction log: %w", err)
	}
	return out, nil
}
