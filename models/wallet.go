package models

import (
	"time"
)

// Wallet represents a user's prepaid wallet. Balance is only ever
// mutated together with a settled WalletTransaction, in the same
// database transaction; Version increments on every applied entry and
// drives optimistic locking.
type Wallet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex"`
	Balance   Money     `json:"balance" gorm:"default:0"`
	Version   int64     `json:"version" gorm:"default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WalletTransaction is an immutable ledger entry. Reference is the
// idempotency key: the ledger upserts on it, never blindly appends.
type WalletTransaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WalletID  uint      `json:"wallet_id" gorm:"index"`
	Wallet    Wallet    `json:"-" gorm:"foreignKey:WalletID"`
	Direction string    `json:"direction"`
	Amount    Money     `json:"amount"`
	Reference string    `json:"reference" gorm:"uniqueIndex;not null"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Transaction direction constants
const (
	TransactionDirectionCredit = "credit"
	TransactionDirectionDebit  = "debit"
)

// Transaction status constants
const (
	TransactionStatusPending  = "pending"
	TransactionStatusSettled  = "settled"
	TransactionStatusReversed = "reversed"
)

// Transaction reason constants
const (
	TransactionReasonOrderPayment = "order_payment"
	TransactionReasonDeposit      = "deposit"
)

// SignedAmount returns the amount signed by direction for settled
// entries, and zero otherwise. Only settled entries count toward the
// wallet balance.
func (t *WalletTransaction) SignedAmount() Money {
	if t.Status != TransactionStatusSettled {
		return 0
	}
	if t.Direction == TransactionDirectionDebit {
		return -t.Amount
	}
	return t.Amount
}
