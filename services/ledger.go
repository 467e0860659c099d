package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Mensah-712/BundleHub/models"
	"github.com/Mensah-712/BundleHub/utils"
	"gorm.io/gorm"
)

// Ledger is the source of truth for wallet balances. Every balance
// mutation appends a settled WalletTransaction and bumps the wallet
// version in the same database transaction, so a half-applied entry is
// never observable. Debit and Credit are upserts keyed on reference:
// replaying a reference returns the original entry without touching the
// balance again.
type Ledger struct {
	db *gorm.DB
}

// NewLedger creates a ledger over the given database handle.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// maxApplyAttempts bounds the optimistic-lock retry loop. Contention on
// a single wallet is short-lived; hitting this limit means something is
// hammering one wallet and the caller should retry.
const maxApplyAttempts = 5

var errVersionConflict = errors.New("wallet version conflict")

// GetOrCreateWallet retrieves or creates the wallet for a user.
func (l *Ledger) GetOrCreateWallet(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := l.db.Where("user_id = ?", userID).First(&wallet).Error
	if err == nil {
		return &wallet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	wallet = models.Wallet{UserID: userID, Balance: 0, Version: 1}
	if createErr := l.db.Create(&wallet).Error; createErr != nil {
		// Lost a creation race; the winner's row is the wallet.
		if err := l.db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
			return nil, createErr
		}
	}
	return &wallet, nil
}

// Debit removes amount from the wallet. Fails with ErrInsufficientFunds
// when the balance does not cover it, leaving the wallet untouched. A
// repeated reference returns the originally settled entry.
func (l *Ledger) Debit(walletID uint, amount models.Money, reference, reason string) (*models.WalletTransaction, error) {
	return l.apply(walletID, amount, models.TransactionDirectionDebit, reference, reason)
}

// Credit adds amount to the wallet under the same idempotency rule as
// Debit.
func (l *Ledger) Credit(walletID uint, amount models.Money, reference, reason string) (*models.WalletTransaction, error) {
	return l.apply(walletID, amount, models.TransactionDirectionCredit, reference, reason)
}

// Balance returns a read-only snapshot of the wallet.
func (l *Ledger) Balance(walletID uint) (models.Money, int64, error) {
	var wallet models.Wallet
	if err := l.db.First(&wallet, walletID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrWalletNotFound
		}
		return 0, 0, err
	}
	return wallet.Balance, wallet.Version, nil
}

// TransactionByReference returns the ledger entry with the given
// reference, or nil when none exists.
func (l *Ledger) TransactionByReference(reference string) (*models.WalletTransaction, error) {
	var txn models.WalletTransaction
	if err := l.db.Where("reference = ?", reference).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

// Transactions returns a page of ledger entries for the wallet, newest
// first, plus the total count.
func (l *Ledger) Transactions(walletID uint, limit, offset int) ([]models.WalletTransaction, int64, error) {
	var total int64
	if err := l.db.Model(&models.WalletTransaction{}).Where("wallet_id = ?", walletID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var txns []models.WalletTransaction
	if err := l.db.Where("wallet_id = ?", walletID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&txns).Error; err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

func (l *Ledger) apply(walletID uint, amount models.Money, direction, reference, reason string) (*models.WalletTransaction, error) {
	if amount <= 0 {
		return nil, &ValidationError{Field: "amount", Message: "must be positive"}
	}
	if reference == "" {
		return nil, &ValidationError{Field: "reference", Message: "must not be empty"}
	}

	for attempt := 0; attempt < maxApplyAttempts; attempt++ {
		txn, err := l.tryApply(walletID, amount, direction, reference, reason)
		if errors.Is(err, errVersionConflict) {
			time.Sleep(time.Duration(attempt+1) * 5 * time.Millisecond)
			continue
		}
		if err != nil {
			// A create failure may be a lost race on the unique
			// reference index. The winner's entry is the result.
			if existing, lookupErr := l.TransactionByReference(reference); lookupErr == nil && existing != nil {
				return existing, nil
			}
			return nil, err
		}
		utils.LedgerEntriesTotal.WithLabelValues(direction).Inc()
		return txn, nil
	}
	return nil, fmt.Errorf("wallet %d: too many concurrent updates", walletID)
}

// tryApply runs one attempt of the upsert: replay check, balance rule,
// optimistic version bump, entry append. All inside one DB transaction.
func (l *Ledger) tryApply(walletID uint, amount models.Money, direction, reference, reason string) (*models.WalletTransaction, error) {
	var result *models.WalletTransaction
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var existing models.WalletTransaction
		err := tx.Where("reference = ?", reference).First(&existing).Error
		if err == nil {
			// Idempotent replay: the reference already settled.
			result = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var wallet models.Wallet
		if err := tx.First(&wallet, walletID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWalletNotFound
			}
			return err
		}

		newBalance := wallet.Balance
		if direction == models.TransactionDirectionDebit {
			if wallet.Balance < amount {
				return ErrInsufficientFunds
			}
			newBalance -= amount
		} else {
			newBalance += amount
		}

		res := tx.Model(&models.Wallet{}).
			Where("id = ? AND version = ?", wallet.ID, wallet.Version).
			Updates(map[string]interface{}{
				"balance": newBalance,
				"version": wallet.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Another writer got in between; retry on a fresh read.
			return errVersionConflict
		}

		entry := models.WalletTransaction{
			WalletID:  wallet.ID,
			Direction: direction,
			Amount:    amount,
			Reference: reference,
			Reason:    reason,
			Status:    models.TransactionStatusSettled,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		result = &entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
