package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is one banking identity. Username is the unique lookup key and
// never changes after registration. Balance must always equal the running
// sum of the signed amounts in the account's transaction history.
type Account struct {
	Username     string          `json:"username"`
	PasswordHash string          `json:"-"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
}

// RegisterInput carries the raw registration fields before hashing.
type RegisterInput struct {
	Username string `validate:"required,min=3,max=32,alphanum"`
	Password string `validate:"required,min=6"`
}
