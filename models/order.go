package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusCreated   = "Created"
	OrderStatusPaid      = "Paid"
	OrderStatusFulfilled = "Fulfilled"
	OrderStatusFailed    = "Failed"
	OrderStatusCancelled = "Cancelled"
)

// Order represents a bundle purchase. The (UserID, IdempotencyKey) pair
// is unique, so a re-submitted request always lands on the same row.
// ResolvedPrice is fixed at creation from the account's role and never
// re-read from the catalog afterwards.
type Order struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `json:"user_id" gorm:"uniqueIndex:idx_user_idem_key"`
	User           User      `json:"-" gorm:"foreignKey:UserID"`
	BundleID       uint      `json:"bundle_id"`
	Bundle         Bundle    `json:"bundle,omitempty" gorm:"foreignKey:BundleID"`
	ResolvedPrice  Money     `json:"resolved_price"`
	RecipientPhone string    `json:"recipient_phone"`
	Status         string    `json:"status"`
	IdempotencyKey string    `json:"idempotency_key" gorm:"uniqueIndex:idx_user_idem_key;not null"`
	FailureReason  string    `json:"failure_reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
