package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/baharkarakas/termbank/internal/auth"
	"github.com/baharkarakas/termbank/internal/models"
	repo "github.com/baharkarakas/termbank/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// AccountService owns account identity: registration, authentication and
// balance mutation. Balance changes go through the ledger, which calls
// AdjustBalance after validating the request.
type AccountService struct {
	r        repo.Accounts
	validate *validator.Validate
}

func NewAccountService(r repo.Accounts) *AccountService {
	return &AccountService{r: r, validate: validator.New()}
}

func (s *AccountService) Register(username, password string) (models.Account, error) {
	in := models.RegisterInput{Username: strings.TrimSpace(username), Password: password}
	if err := s.validate.Struct(in); err != nil {
		return models.Account{}, fmt.Errorf("invalid registration: %w", err)
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash password: %w", err)
	}
	a := models.Account{
		Username:     in.Username,
		PasswordHash: hash,
		Balance:      decimal.Zero,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.r.Create(a); err != nil {
		return models.Account{}, err
	}
	return a, nil
}

// Authenticate returns the stored account on success. Unknown username and
// wrong password both come back as ErrInvalidCredentials so callers cannot
// enumerate usernames.
func (s *AccountService) Authenticate(username, password string) (models.Account, error) {
	a, err := s.r.GetByUsername(strings.TrimSpace(username))
	if errors.Is(err, models.ErrAccountNotFound) {
		return models.Account{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.Account{}, err
	}
	if err := auth.VerifyPassword(password, a.PasswordHash); err != nil {
		return models.Account{}, models.ErrInvalidCredentials
	}
	return a, nil
}

// AdjustBalance applies delta (positive or negative) and persists before
// returning. The ledger guarantees the result never goes negative.
func (s *AccountService) AdjustBalance(username string, delta decimal.Decimal) (decimal.Decimal, error) {
	a, err := s.r.UpdateBalance(username, delta)
	if err != nil {
		return decimal.Zero, err
	}
	return a.Balance, nil
}

func (s *AccountService) Get(username string) (models.Account, error) {
	return s.r.GetByUsername(username)
}
