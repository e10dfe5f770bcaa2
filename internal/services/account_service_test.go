package services

import (
	"testing"

	"github.com/baharkarakas/termbank/internal/models"
	"github.com/baharkarakas/termbank/internal/repository/file"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServices(t *testing.T) (*AccountService, *LedgerService) {
	t.Helper()
	st, err := file.Open(t.TempDir())
	require.NoError(t, err)
	repos := file.NewRepositories(st)
	accounts := NewAccountService(repos.Accounts)
	return accounts, NewLedgerService(accounts, repos.Transactions)
}

func TestRegister(t *testing.T) {
	accounts, _ := newTestServices(t)

	t.Run("success starts at zero", func(t *testing.T) {
		a, err := accounts.Register("alice", "pw1234")
		require.NoError(t, err)
		assert.Equal(t, "alice", a.Username)
		assert.True(t, a.Balance.IsZero())
		assert.NotEqual(t, "pw1234", a.PasswordHash)
	})

	t.Run("duplicate username rejected regardless of password", func(t *testing.T) {
		_, err := accounts.Register("alice", "other-password")
		assert.ErrorIs(t, err, models.ErrDuplicateAccount)
		_, err = accounts.Register("alice", "pw1234")
		assert.ErrorIs(t, err, models.ErrDuplicateAccount)
	})

	t.Run("invalid input rejected", func(t *testing.T) {
		_, err := accounts.Register("al", "pw1234")
		assert.Error(t, err)
		_, err = accounts.Register("bob", "short")
		assert.Error(t, err)
	})
}

func TestAuthenticate(t *testing.T) {
	accounts, _ := newTestServices(t)
	_, err := accounts.Register("alice", "pw1234")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		a, err := accounts.Authenticate("alice", "pw1234")
		require.NoError(t, err)
		assert.Equal(t, "alice", a.Username)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, errWrong := accounts.Authenticate("alice", "nope")
		_, errUnknown := accounts.Authenticate("mallory", "pw1234")
		assert.ErrorIs(t, errWrong, models.ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknown, models.ErrInvalidCredentials)
		assert.Equal(t, errWrong.Error(), errUnknown.Error())
	})
}

func TestAdjustBalancePersists(t *testing.T) {
	accounts, _ := newTestServices(t)
	_, err := accounts.Register("alice", "pw1234")
	require.NoError(t, err)

	newBal, err := accounts.AdjustBalance("alice", decimal.NewFromInt(25))
	require.NoError(t, err)
	assert.True(t, newBal.Equal(decimal.NewFromInt(25)))

	stored, err := accounts.Get("alice")
	require.NoError(t, err)
	assert.True(t, stored.Balance.Equal(decimal.NewFromInt(25)))
}
