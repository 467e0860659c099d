package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepositReceiptBody(t *testing.T) {
	body := depositReceiptBody("30.00", "45.50")
	assert.Contains(t, body, "GHS 30.00")
	assert.Contains(t, body, "New balance: GHS 45.50")
}

func TestDepositReceiptBodyWithoutBalance(t *testing.T) {
	body := depositReceiptBody("30.00", "")
	assert.Contains(t, body, "GHS 30.00")
	assert.NotContains(t, body, "New balance")
	assert.NotContains(t, body, "GHS 0.00")
}
