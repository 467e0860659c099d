package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoneyFromCedis(t *testing.T) {
	assert.Equal(t, Money(5000), MoneyFromCedis(50.00))
	assert.Equal(t, Money(1550), MoneyFromCedis(15.50))
	// Float representation error must not lose a pesewa.
	assert.Equal(t, Money(1234), MoneyFromCedis(12.34))
	assert.Equal(t, Money(0), MoneyFromCedis(0))
}

func TestMoneyDisplay(t *testing.T) {
	assert.Equal(t, "50.00", Money(5000).Display())
	assert.Equal(t, "0.05", Money(5).Display())
	assert.Equal(t, "0.00", Money(0).Display())
	assert.Equal(t, "GHS 15.50", Money(1550).String())
}

func TestSignedAmount(t *testing.T) {
	credit := WalletTransaction{Direction: TransactionDirectionCredit, Amount: 1000, Status: TransactionStatusSettled}
	debit := WalletTransaction{Direction: TransactionDirectionDebit, Amount: 400, Status: TransactionStatusSettled}
	pending := WalletTransaction{Direction: TransactionDirectionCredit, Amount: 9999, Status: TransactionStatusPending}

	assert.Equal(t, Money(1000), credit.SignedAmount())
	assert.Equal(t, Money(-400), debit.SignedAmount())
	// Only settled entries count toward the balance.
	assert.Equal(t, Money(0), pending.SignedAmount())
}
