package models

import (
	"time"
)

// Deposit intent status constants
const (
	DepositStatusInitiated = "Initiated"
	DepositStatusVerified  = "Verified"
	DepositStatusFailed    = "Failed"
	DepositStatusExpired   = "Expired"
)

// DepositIntent records a funding request created before redirecting the
// user to the payment gateway. GatewayReference is assigned by the
// gateway at creation and is unique; reconciliation consumes the intent
// exactly once.
type DepositIntent struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `json:"user_id" gorm:"index"`
	User             User       `json:"-" gorm:"foreignKey:UserID"`
	RequestedAmount  Money      `json:"requested_amount"`
	SettledAmount    Money      `json:"settled_amount"`
	GatewayReference string     `json:"gateway_reference" gorm:"uniqueIndex;not null"`
	RedirectURL      string     `json:"redirect_url"`
	Status           string     `json:"status"`
	VerifiedAt       *time.Time `json:"verified_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
