package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/Mensah-712/BundleHub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerCreditDebitBalance(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	user := createTestUser(t, db, models.RoleUser)

	wallet, err := ledger.GetOrCreateWallet(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Money(0), wallet.Balance)

	_, err = ledger.Credit(wallet.ID, models.Money(5000), "topup-1", models.TransactionReasonDeposit)
	require.NoError(t, err)
	_, err = ledger.Debit(wallet.ID, models.Money(1500), "purchase-1", models.TransactionReasonOrderPayment)
	require.NoError(t, err)

	balance, version, err := ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Money(3500), balance)
	assert.Equal(t, int64(3), version)
	assert.Equal(t, balance, settledSum(t, db, wallet.ID))
}

func TestLedgerInsufficientFunds(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	user := createTestUser(t, db, models.RoleUser)

	wallet, err := ledger.GetOrCreateWallet(user.ID)
	require.NoError(t, err)
	_, err = ledger.Credit(wallet.ID, models.Money(1000), "topup-1", models.TransactionReasonDeposit)
	require.NoError(t, err)

	_, err = ledger.Debit(wallet.ID, models.Money(1500), "purchase-1", models.TransactionReasonOrderPayment)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	// Rejected debits leave no entry and the balance intact.
	balance, _, err := ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Money(1000), balance)
	assert.Equal(t, int64(0), countByReference(t, db, "purchase-1"))
	assert.Equal(t, balance, settledSum(t, db, wallet.ID))
}

func TestLedgerDuplicateReferenceReturnsOriginal(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	user := createTestUser(t, db, models.RoleUser)

	wallet, err := ledger.GetOrCreateWallet(user.ID)
	require.NoError(t, err)

	first, err := ledger.Credit(wallet.ID, models.Money(2000), "topup-1", models.TransactionReasonDeposit)
	require.NoError(t, err)
	replay, err := ledger.Credit(wallet.ID, models.Money(2000), "topup-1", models.TransactionReasonDeposit)
	require.NoError(t, err)

	assert.Equal(t, first.ID, replay.ID)
	balance, _, err := ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Money(2000), balance)
	assert.Equal(t, int64(1), countByReference(t, db, "topup-1"))
}

func TestLedgerDebitReplay(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	user := createTestUser(t, db, models.RoleUser)

	wallet, err := ledger.GetOrCreateWallet(user.ID)
	require.NoError(t, err)
	_, err = ledger.Credit(wallet.ID, models.Money(1500), "topup-1", models.TransactionReasonDeposit)
	require.NoError(t, err)

	first, err := ledger.Debit(wallet.ID, models.Money(1500), "purchase-1", models.TransactionReasonOrderPayment)
	require.NoError(t, err)

	// A replayed debit must not fail with insufficient funds even
	// though the balance is now zero.
	replay, err := ledger.Debit(wallet.ID, models.Money(1500), "purchase-1", models.TransactionReasonOrderPayment)
	require.NoError(t, err)
	assert.Equal(t, first.ID, replay.ID)

	balance, _, err := ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Money(0), balance)
}

func TestLedgerRejectsInvalidAmounts(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	user := createTestUser(t, db, models.RoleUser)

	wallet, err := ledger.GetOrCreateWallet(user.ID)
	require.NoError(t, err)

	_, err = ledger.Credit(wallet.ID, models.Money(0), "topup-1", models.TransactionReasonDeposit)
	assert.True(t, IsValidationError(err))
	_, err = ledger.Debit(wallet.ID, models.Money(-100), "purchase-1", models.TransactionReasonOrderPayment)
	assert.True(t, IsValidationError(err))
	_, err = ledger.Credit(wallet.ID, models.Money(100), "", models.TransactionReasonDeposit)
	assert.True(t, IsValidationError(err))
}

func TestLedgerUnknownWallet(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)

	_, _, err := ledger.Balance(999)
	assert.ErrorIs(t, err, ErrWalletNotFound)
	_, err = ledger.Credit(999, models.Money(100), "topup-1", models.TransactionReasonDeposit)
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestLedgerConcurrentCredits(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	user := createTestUser(t, db, models.RoleUser)

	wallet, err := ledger.GetOrCreateWallet(user.ID)
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := ledger.Credit(wallet.ID, models.Money(100), fmt.Sprintf("topup-%d", n), models.TransactionReasonDeposit)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	balance, version, err := ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Money(workers*100), balance)
	assert.Equal(t, int64(workers+1), version)
	assert.Equal(t, balance, settledSum(t, db, wallet.ID))
}

func TestLedgerTransactionsPagination(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	user := createTestUser(t, db, models.RoleUser)

	wallet, err := ledger.GetOrCreateWallet(user.ID)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := ledger.Credit(wallet.ID, models.Money(100), fmt.Sprintf("topup-%d", i), models.TransactionReasonDeposit)
		require.NoError(t, err)
	}

	txns, total, err := ledger.Transactions(wallet.ID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, txns, 2)

	txns, _, err = ledger.Transactions(wallet.ID, 2, 4)
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}
