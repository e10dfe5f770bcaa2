package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/baharkarakas/termbank/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccount(username string, balance int64) models.Account {
	return models.Account{
		Username:     username,
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
		Balance:      decimal.NewFromInt(balance),
		CreatedAt:    time.Now().UTC(),
	}
}

func testTxn(username string, kind models.TransactionKind, amount, balance int64) models.Transaction {
	return models.Transaction{
		ID:              uuid.NewString(),
		AccountUsername: username,
		Kind:            kind,
		Amount:          decimal.NewFromInt(amount),
		Balance:         decimal.NewFromInt(balance),
		CreatedAt:       time.Now().UTC(),
	}
}

func TestAccountsRoundTripAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	st, err := Open(dir)
	require.NoError(t, err)
	repos := NewRepositories(st)
	require.NoError(t, repos.Accounts.Create(testAccount("alice", 0)))
	_, err = repos.Accounts.UpdateBalance("alice", decimal.NewFromInt(70))
	require.NoError(t, err)
	require.NoError(t, repos.Transactions.Append(testTxn("alice", models.TxnDeposit, 100, 100)))
	require.NoError(t, repos.Transactions.Append(testTxn("alice", models.TxnWithdrawal, 30, 70)))

	// Fresh store over the same directory simulates a process restart.
	st2, err := Open(dir)
	require.NoError(t, err)
	repos2 := NewRepositories(st2)

	a, err := repos2.Accounts.GetByUsername("alice")
	require.NoError(t, err)
	assert.True(t, a.Balance.Equal(decimal.NewFromInt(70)))
	assert.NotEmpty(t, a.PasswordHash)

	history, err := repos2.Transactions.ListByAccount("alice")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.TxnDeposit, history[0].Kind)
	assert.Equal(t, models.TxnWithdrawal, history[1].Kind)
}

func TestAccountsDuplicateAndMissing(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)
	repos := NewRepositories(st)

	require.NoError(t, repos.Accounts.Create(testAccount("alice", 0)))
	assert.ErrorIs(t, repos.Accounts.Create(testAccount("alice", 0)), models.ErrDuplicateAccount)

	_, err = repos.Accounts.GetByUsername("bob")
	assert.ErrorIs(t, err, models.ErrAccountNotFound)
	_, err = repos.Accounts.UpdateBalance("bob", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, models.ErrAccountNotFound)
}

func TestTransactionsAppendOrder(t *testing.T) {
	st, err := Open(t.TempDir())
	require.NoError(t, err)
	repos := NewRepositories(st)

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, repos.Transactions.Append(testTxn("alice", models.TxnDeposit, i, i)))
	}
	history, err := repos.Transactions.ListByAccount("alice")
	require.NoError(t, err)
	require.Len(t, history, 5)
	for i, tx := range history {
		assert.True(t, tx.Amount.Equal(decimal.NewFromInt(int64(i+1))))
	}
}

func TestCorruptLogLineSurfacesError(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(dir)
	require.NoError(t, err)
	repos := NewRepositories(st)
	require.NoError(t, repos.Transactions.Append(testTxn("alice", models.TxnDeposit, 1, 1)))

	f, err := os.OpenFile(filepath.Join(dir, transactionsFile), os.O_WRONLY|os.O_APPEND, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("{not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = repos.Transactions.ListByAccount("alice")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestAtomicSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	st, err := Open(dir)
	require.NoError(t, err)
	repos := NewRepositories(st)
	require.NoError(t, repos.Accounts.Create(testAccount("alice", 0)))

	_, err = os.Stat(filepath.Join(dir, accountsFile+".tmp"))
	assert.True(t, os.IsNotExist(err))
}
