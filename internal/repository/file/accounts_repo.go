package file

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/baharkarakas/termbank/internal/models"
	"github.com/shopspring/decimal"
)

// accountRecord is the on-disk shape of an account. models.Account hides
// PasswordHash from JSON, so persistence gets its own struct.
type accountRecord struct {
	Username     string          `json:"username"`
	PasswordHash string          `json:"password_hash"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
}

type accountsRepo struct{ store *Store }

func (r *accountsRepo) load() ([]accountRecord, error) {
	b, err := os.ReadFile(r.store.accountsPath)
	if err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}
	if len(b) == 0 {
		return nil, nil
	}
	var recs []accountRecord
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("parse accounts: %w", err)
	}
	return recs, nil
}

// save rewrites the snapshot through a temp file, syncs it, and renames it
// over the original. A crash mid-write never exposes a partial record.
func (r *accountsRepo) save(recs []accountRecord) error {
	tmp := r.store.accountsPath + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create temp accounts: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode accounts: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync accounts: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close accounts: %w", err)
	}
	if err := os.Rename(tmp, r.store.accountsPath); err != nil {
		return fmt.Errorf("replace accounts: %w", err)
	}
	return nil
}

func (r *accountsRepo) Create(a models.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	recs, err := r.load()
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if rec.Username == a.Username {
			return models.ErrDuplicateAccount
		}
	}
	recs = append(recs, accountRecord{
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		Balance:      a.Balance,
		CreatedAt:    a.CreatedAt,
	})
	return r.save(recs)
}

func (r *accountsRepo) GetByUsername(username string) (models.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	recs, err := r.load()
	if err != nil {
		return models.Account{}, err
	}
	for _, rec := range recs {
		if rec.Username == username {
			return rec.account(), nil
		}
	}
	return models.Account{}, models.ErrAccountNotFound
}

func (r *accountsRepo) UpdateBalance(username string, delta decimal.Decimal) (models.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	recs, err := r.load()
	if err != nil {
		return models.Account{}, err
	}
	for i := range recs {
		if recs[i].Username == username {
			recs[i].Balance = recs[i].Balance.Add(delta)
			if err := r.save(recs); err != nil {
				return models.Account{}, err
			}
			return recs[i].account(), nil
		}
	}
	return models.Account{}, models.ErrAccountNotFound
}

func (r *accountsRepo) List() ([]models.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	recs, err := r.load()
	if err != nil {
		return nil, err
	}
	out := make([]models.Account, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.account())
	}
	return out, nil
}

func (rec accountRecord) account() models.Account {
	return models.Account{
		Username:     rec.Username,
		PasswordHash: rec.PasswordHash,
		Balance:      rec.Balance,
		CreatedAt:    rec.CreatedAt,
	}
}
