package utils

// Application constants
const (
	// Application name
	AppName = "BundleHub"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// JWT token expiration (24 hours)
	JWTExpiration = "24h"

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 50

	// Minimum password length
	MinPasswordLength = 8

	// Maximum password length
	MaxPasswordLength = 32

	// Minimum username length
	MinNameLength = 3

	// Maximum username length
	MaxNameLength = 50
)

// Error messages
const (
	// Authentication errors
	ErrInvalidCredentials = "Invalid email or password"
	ErrUserBlocked        = "Your account has been blocked"
	ErrUnauthorized       = "Unauthorized access"
	ErrForbidden          = "Access forbidden"

	// Validation errors
	ErrInvalidEmail      = "Invalid email format"
	ErrInvalidPassword   = "Password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, and one number"
	ErrInvalidPhone      = "Invalid phone number format"
	ErrInvalidAmount     = "Amount must be greater than 0"
	ErrInvalidPagination = "Invalid pagination parameters"

	// Server errors
	ErrInternalServer     = "Internal server error"
	ErrServiceUnavailable = "Service unavailable"
)
