package services

import (
	"context"
	"errors"
	"time"

	"github.com/Mensah-712/BundleHub/models"
	"github.com/Mensah-712/BundleHub/utils"
	"gorm.io/gorm"
)

// Reconciler consumes gateway verification outcomes and credits the
// ledger exactly once per confirmed deposit. Reconcile may be invoked
// redundantly from a client polling loop and a webhook at the same
// time; both converge on one settled credit because the ledger is
// idempotent per reference.
type Reconciler struct {
	db            *gorm.DB
	gateway       PaymentGateway
	ledger        *Ledger
	verifyTimeout time.Duration
}

// NewReconciler creates a reconciler. verifyTimeout bounds the gateway
// verification call; on expiry the outcome is treated as Pending.
func NewReconciler(db *gorm.DB, gateway PaymentGateway, ledger *Ledger, verifyTimeout time.Duration) *Reconciler {
	if verifyTimeout <= 0 {
		verifyTimeout = 10 * time.Second
	}
	return &Reconciler{db: db, gateway: gateway, ledger: ledger, verifyTimeout: verifyTimeout}
}

// ReconcileOutcome reports the state of an intent after a Reconcile
// call. CreditedNow distinguishes the call that applied the credit from
// idempotent replays, so receipt side effects fire once.
type ReconcileOutcome struct {
	Intent      *models.DepositIntent
	Transaction *models.WalletTransaction
	CreditedNow bool
}

// depositReference derives the ledger idempotency key for a deposit.
// Internal format, never surfaced to clients.
func depositReference(gatewayReference string) string {
	return "deposit:" + gatewayReference
}

// Reconcile drives the intent state machine for one gateway reference:
// Initiated -> Verified (credited), Initiated -> Failed, or no change on
// a Pending gateway verdict.
func (r *Reconciler) Reconcile(ctx context.Context, gatewayReference string) (*ReconcileOutcome, error) {
	var intent models.DepositIntent
	if err := r.db.Where("gateway_reference = ?", gatewayReference).First(&intent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntentNotFound
		}
		return nil, err
	}

	switch intent.Status {
	case models.DepositStatusVerified:
		// Already credited; return the settled transaction.
		txn, err := r.ledger.TransactionByReference(depositReference(gatewayReference))
		if err != nil {
			return nil, err
		}
		return &ReconcileOutcome{Intent: &intent, Transaction: txn}, nil
	case models.DepositStatusFailed:
		return &ReconcileOutcome{Intent: &intent}, ErrDepositFailed
	case models.DepositStatusExpired:
		return &ReconcileOutcome{Intent: &intent}, ErrIntentExpired
	}

	verifyCtx, cancel := context.WithTimeout(ctx, r.verifyTimeout)
	defer cancel()
	result, err := r.gateway.VerifySession(verifyCtx, gatewayReference)
	if err != nil {
		utils.ReconcilesTotal.WithLabelValues("gateway_error").Inc()
		return &ReconcileOutcome{Intent: &intent}, err
	}

	switch result.Status {
	case VerifyPending:
		utils.ReconcilesTotal.WithLabelValues("pending").Inc()
		return &ReconcileOutcome{Intent: &intent}, ErrNotYetConfirmed

	case VerifyFailed:
		if err := r.db.Model(&models.DepositIntent{}).
			Where("gateway_reference = ? AND status = ?", gatewayReference, models.DepositStatusInitiated).
			Update("status", models.DepositStatusFailed).Error; err != nil {
			return nil, err
		}
		intent.Status = models.DepositStatusFailed
		utils.ReconcilesTotal.WithLabelValues("failed").Inc()
		return &ReconcileOutcome{Intent: &intent}, ErrDepositFailed

	case VerifyConfirmed:
		amount := result.SettledAmount
		if amount <= 0 {
			// Some processors omit amount_paid on link-level fetches.
			amount = intent.RequestedAmount
		}
		wallet, err := r.ledger.GetOrCreateWallet(intent.UserID)
		if err != nil {
			return nil, err
		}
		txn, err := r.ledger.Credit(wallet.ID, amount, depositReference(gatewayReference), models.TransactionReasonDeposit)
		if err != nil {
			return &ReconcileOutcome{Intent: &intent}, err
		}

		now := time.Now()
		res := r.db.Model(&models.DepositIntent{}).
			Where("gateway_reference = ? AND status = ?", gatewayReference, models.DepositStatusInitiated).
			Updates(map[string]interface{}{
				"status":         models.DepositStatusVerified,
				"settled_amount": amount,
				"verified_at":    &now,
			})
		if res.Error != nil {
			return nil, res.Error
		}
		creditedNow := res.RowsAffected > 0
		if err := r.db.Where("gateway_reference = ?", gatewayReference).First(&intent).Error; err != nil {
			return nil, err
		}
		utils.ReconcilesTotal.WithLabelValues("verified").Inc()
		return &ReconcileOutcome{Intent: &intent, Transaction: txn, CreditedNow: creditedNow}, nil
	}

	return &ReconcileOutcome{Intent: &intent}, ErrNotYetConfirmed
}

// ExpireStale moves intents stuck in Initiated for longer than maxAge to
// Expired, and returns how many it swept. Verified and Failed intents
// are never touched.
func (r *Reconciler) ExpireStale(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	res := r.db.Model(&models.DepositIntent{}).
		Where("status = ? AND created_at < ?", models.DepositStatusInitiated, cutoff).
		Update("status", models.DepositStatusExpired)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		utils.LogInfo("Expired %d stale deposit intents", res.RowsAffected)
	}
	return res.RowsAffected, nil
}
