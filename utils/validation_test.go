package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("0244123456"))
	assert.True(t, IsValidPhone("+233244123456"))
	assert.True(t, IsValidPhone(" 0244123456 "))

	assert.False(t, IsValidPhone("024412345"))
	assert.False(t, IsValidPhone("02441234567"))
	assert.False(t, IsValidPhone("233244123456"))
	assert.False(t, IsValidPhone(""))
	assert.False(t, IsValidPhone("abcdefghij"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("kofi@example.com"))
	assert.True(t, IsValidEmail("ama.mensah+wallet@mail.example.org"))

	assert.False(t, IsValidEmail("kofi@example"))
	assert.False(t, IsValidEmail("not-an-email"))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("Str0ngpass"))

	assert.False(t, IsValidPassword("short1A"))
	assert.False(t, IsValidPassword("alllowercase1"))
	assert.False(t, IsValidPassword("ALLUPPERCASE1"))
	assert.False(t, IsValidPassword("NoDigitsHere"))
}
