package main

import (
	"fmt"
	"os"

	"github.com/Mensah-712/BundleHub/config"
	"github.com/Mensah-712/BundleHub/models"
)

// Recomputes every wallet balance from its settled ledger entries and
// compares against the stored balance. Exits non-zero when any wallet
// disagrees with its ledger.
//
// Usage: go run scripts/audit_ledger.go
func main() {
	if _, err := config.LoadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	config.InitDB()

	var wallets []models.Wallet
	if err := config.DB.Find(&wallets).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to load wallets: %v\n", err)
		os.Exit(1)
	}

	mismatches := 0
	for _, wallet := range wallets {
		var txns []models.WalletTransaction
		if err := config.DB.Where("wallet_id = ?", wallet.ID).Find(&txns).Error; err != nil {
			fmt.Fprintf(os.Stderr, "wallet %d: failed to load transactions: %v\n", wallet.ID, err)
			os.Exit(1)
		}

		var sum models.Money
		for i := range txns {
			sum += txns[i].SignedAmount()
		}

		if sum != wallet.Balance {
			mismatches++
			fmt.Printf("MISMATCH wallet=%d user=%d balance=%s ledger=%s entries=%d\n",
				wallet.ID, wallet.UserID, wallet.Balance.Display(), sum.Display(), len(txns))
		}
	}

	fmt.Printf("Audited %d wallets, %d mismatches\n", len(wallets), mismatches)
	if mismatches > 0 {
		os.Exit(1)
	}
}
