package models

import (
	"fmt"
	"math"
)

// Money is a fixed-point GHS amount stored in pesewas.
// All wallet arithmetic happens on this type; floats only appear at the
// JSON boundary and are rounded exactly once on the way in.
type Money int64

// MoneyFromCedis converts a cedi amount (e.g. 15.50) to pesewas.
func MoneyFromCedis(cedis float64) Money {
	return Money(math.Round(cedis * 100))
}

// Cedis returns the amount in cedis as a float, for display math only.
func (m Money) Cedis() float64 {
	return float64(m) / 100
}

// Display formats the amount as "50.00".
func (m Money) Display() string {
	return fmt.Sprintf("%d.%02d", int64(m)/100, absInt64(int64(m)%100))
}

// String formats the amount with the currency prefix, e.g. "GHS 50.00".
func (m Money) String() string {
	return "GHS " + m.Display()
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
