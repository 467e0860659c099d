package models

import (
	"time"

	"gorm.io/gorm"
)

// Account roles. Roles are assigned by an admin action; self-registration
// always produces RoleUser. Unknown roles are tolerated everywhere and
// priced as RoleUser.
const (
	RoleUser   = "user"
	RoleAgent  = "agent"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// KnownRole reports whether the role is one of the recognised set.
func KnownRole(role string) bool {
	switch role {
	case RoleUser, RoleAgent, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// Supported mobile networks for data bundles
const (
	NetworkMTN        = "mtn"
	NetworkTelecel    = "telecel"
	NetworkAirtelTigo = "airteltigo"
)

// User represents an account in the system
type User struct {
	gorm.Model
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `json:"-"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	Role        string    `gorm:"default:'user'" json:"role"`
	IsBlocked   bool      `json:"is_blocked"`
	IsVerified  bool      `json:"is_verified" gorm:"default:false"`
	GoogleID    string    `gorm:"default:null" json:"-"`
	LastLoginAt time.Time `json:"last_login_at"`
	Wallet      Wallet    `json:"wallet,omitempty" gorm:"foreignKey:UserID"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Bundle represents a prepaid data bundle in the catalog
type Bundle struct {
	gorm.Model
	Name          string            `json:"name"`
	Network       string            `json:"network"`
	DataMB        int               `json:"data_mb"`
	ValidityDays  int               `json:"validity_days"`
	StandardPrice Money             `json:"standard_price"`
	IsActive      bool              `json:"is_active" gorm:"default:true"`
	RolePrices    []BundleRolePrice `json:"role_prices,omitempty" gorm:"foreignKey:BundleID"`
}

// BundleRolePrice overrides a bundle's price for one account role.
// Absent roles pay the standard price.
type BundleRolePrice struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BundleID uint   `gorm:"uniqueIndex:idx_bundle_role" json:"bundle_id"`
	Role     string `gorm:"uniqueIndex:idx_bundle_role" json:"role"`
	Price    Money  `json:"price"`
}
