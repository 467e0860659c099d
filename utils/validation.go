package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	// Local format 0XXXXXXXXX or international +233XXXXXXXXX
	phoneRegex = regexp.MustCompile(`^(0\d{9}|\+233\d{9})$`)
)

// IsValidEmail checks email format
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhone checks that the number is a valid Ghanaian mobile number,
// either local (0244123456) or international (+233244123456) format.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(strings.TrimSpace(phone))
}

// IsValidPassword enforces the password policy: at least 8 characters
// with one uppercase letter, one lowercase letter and one digit.
func IsValidPassword(password string) bool {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

// IsValidUsername checks username length and characters
func IsValidUsername(username string) bool {
	if len(username) < MinNameLength || len(username) > MaxNameLength {
		return false
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' {
			return false
		}
	}
	return true
}
