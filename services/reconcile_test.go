package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Mensah-712/BundleHub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// scriptedGateway returns a canned sequence of verification verdicts.
// The final verdict repeats, matching a real processor whose terminal
// states are sticky.
type scriptedGateway struct {
	mu       sync.Mutex
	verdicts []VerifyResult
	sessions int
	verifies int
}

func (g *scriptedGateway) CreateSession(ctx context.Context, amount models.Money, meta SessionMeta) (*PaymentSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessions++
	ref := fmt.Sprintf("plink_test_%d", g.sessions)
	return &PaymentSession{Reference: ref, RedirectURL: "https://pay.example.test/" + ref}, nil
}

func (g *scriptedGateway) VerifySession(ctx context.Context, reference string) (*VerifyResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verifies++
	if len(g.verdicts) == 0 {
		return &VerifyResult{Status: VerifyPending}, nil
	}
	verdict := g.verdicts[0]
	if len(g.verdicts) > 1 {
		g.verdicts = g.verdicts[1:]
	}
	return &verdict, nil
}

func (g *scriptedGateway) verifyCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.verifies
}

func newReconcileEnv(t *testing.T, gateway PaymentGateway) (*gorm.DB, *Ledger, *DepositService, *Reconciler) {
	t.Helper()
	db := newTestDB(t)
	ledger := NewLedger(db)
	deposits := NewDepositService(db, gateway, true)
	reconciler := NewReconciler(db, gateway, ledger, time.Second)
	return db, ledger, deposits, reconciler
}

func createIntent(t *testing.T, deposits *DepositService, user *models.User, amount models.Money) *models.DepositIntent {
	t.Helper()
	intent, err := deposits.CreateIntent(context.Background(), user, amount)
	require.NoError(t, err)
	require.Equal(t, models.DepositStatusInitiated, intent.Status)
	require.NotEmpty(t, intent.GatewayReference)
	return intent
}

func TestReconcileConfirmedCreditsOnce(t *testing.T) {
	gateway := &scriptedGateway{verdicts: []VerifyResult{{Status: VerifyConfirmed, SettledAmount: 3000}}}
	db, ledger, deposits, reconciler := newReconcileEnv(t, gateway)
	user := createTestUser(t, db, models.RoleUser)
	intent := createIntent(t, deposits, user, models.Money(3000))

	outcome, err := reconciler.Reconcile(context.Background(), intent.GatewayReference)
	require.NoError(t, err)
	assert.True(t, outcome.CreditedNow)
	assert.Equal(t, models.DepositStatusVerified, outcome.Intent.Status)
	assert.Equal(t, models.Money(3000), outcome.Intent.SettledAmount)
	require.NotNil(t, outcome.Intent.VerifiedAt)
	require.NotNil(t, outcome.Transaction)

	wallet, err := ledger.GetOrCreateWallet(user.ID)
	require.NoError(t, err)
	balance, _, err := ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Money(3000), balance)

	// Replaying a verified intent returns the settled credit without
	// touching the gateway or the ledger again.
	replay, err := reconciler.Reconcile(context.Background(), intent.GatewayReference)
	require.NoError(t, err)
	assert.False(t, replay.CreditedNow)
	require.NotNil(t, replay.Transaction)
	assert.Equal(t, outcome.Transaction.ID, replay.Transaction.ID)
	assert.Equal(t, 1, gateway.verifyCalls())

	balance, _, err = ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Money(3000), balance)
	assert.Equal(t, int64(1), countByReference(t, db, depositReference(intent.GatewayReference)))
}

func TestReconcilePendingThenConfirmed(t *testing.T) {
	gateway := &scriptedGateway{verdicts: []VerifyResult{
		{Status: VerifyPending},
		{Status: VerifyPending},
		{Status: VerifyPending},
		{Status: VerifyConfirmed, SettledAmount: 2500},
	}}
	db, ledger, deposits, reconciler := newReconcileEnv(t, gateway)
	user := createTestUser(t, db, models.RoleUser)
	intent := createIntent(t, deposits, user, models.Money(2500))

	for i := 0; i < 3; i++ {
		outcome, err := reconciler.Reconcile(context.Background(), intent.GatewayReference)
		require.ErrorIs(t, err, ErrNotYetConfirmed)
		assert.Equal(t, models.DepositStatusInitiated, outcome.Intent.Status)
	}
	// No credit while the gateway has not confirmed.
	assert.Equal(t, int64(0), countByReference(t, db, depositReference(intent.GatewayReference)))

	outcome, err := reconciler.Reconcile(context.Background(), intent.GatewayReference)
	require.NoError(t, err)
	assert.True(t, outcome.CreditedNow)

	wallet, err := ledger.GetOrCreateWallet(user.ID)
	require.NoError(t, err)
	balance, _, err := ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Money(2500), balance)
}

func TestReconcileFailedNeverTouchesLedger(t *testing.T) {
	gateway := &scriptedGateway{verdicts: []VerifyResult{{Status: VerifyFailed}}}
	db, ledger, deposits, reconciler := newReconcileEnv(t, gateway)
	user := createTestUser(t, db, models.RoleUser)
	intent := createIntent(t, deposits, user, models.Money(2000))

	outcome, err := reconciler.Reconcile(context.Background(), intent.GatewayReference)
	require.ErrorIs(t, err, ErrDepositFailed)
	assert.Equal(t, models.DepositStatusFailed, outcome.Intent.Status)

	// Failed is terminal: replays answer from the database alone.
	_, err = reconciler.Reconcile(context.Background(), intent.GatewayReference)
	require.ErrorIs(t, err, ErrDepositFailed)
	assert.Equal(t, 1, gateway.verifyCalls())

	wallet, err := ledger.GetOrCreateWallet(user.ID)
	require.NoError(t, err)
	balance, _, err := ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Money(0), balance)
	assert.Equal(t, int64(0), countByReference(t, db, depositReference(intent.GatewayReference)))
}

func TestReconcileConfirmedWithoutAmountFallsBack(t *testing.T) {
	// Link-level fetches sometimes omit the paid amount; the requested
	// amount is credited instead.
	gateway := &scriptedGateway{verdicts: []VerifyResult{{Status: VerifyConfirmed}}}
	db, ledger, deposits, reconciler := newReconcileEnv(t, gateway)
	user := createTestUser(t, db, models.RoleUser)
	intent := createIntent(t, deposits, user, models.Money(4200))

	outcome, err := reconciler.Reconcile(context.Background(), intent.GatewayReference)
	require.NoError(t, err)
	assert.Equal(t, models.Money(4200), outcome.Intent.SettledAmount)

	wallet, err := ledger.GetOrCreateWallet(user.ID)
	require.NoError(t, err)
	balance, _, err := ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Money(4200), balance)
}

func TestReconcileUnknownReference(t *testing.T) {
	_, _, _, reconciler := newReconcileEnv(t, &scriptedGateway{})

	_, err := reconciler.Reconcile(context.Background(), "plink_unknown")
	assert.ErrorIs(t, err, ErrIntentNotFound)
}

func TestReconcileConcurrentCreditsOnce(t *testing.T) {
	gateway := &scriptedGateway{verdicts: []VerifyResult{{Status: VerifyConfirmed, SettledAmount: 3000}}}
	db, ledger, deposits, reconciler := newReconcileEnv(t, gateway)
	user := createTestUser(t, db, models.RoleUser)
	intent := createIntent(t, deposits, user, models.Money(3000))

	// Polling client and webhook racing on the same reference.
	const callers = 6
	var wg sync.WaitGroup
	creditedNow := make(chan bool, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := reconciler.Reconcile(context.Background(), intent.GatewayReference)
			if err == nil && outcome != nil {
				creditedNow <- outcome.CreditedNow
			}
		}()
	}
	wg.Wait()
	close(creditedNow)

	var credits int
	for c := range creditedNow {
		if c {
			credits++
		}
	}
	assert.Equal(t, 1, credits)
	assert.Equal(t, int64(1), countByReference(t, db, depositReference(intent.GatewayReference)))

	wallet, err := ledger.GetOrCreateWallet(user.ID)
	require.NoError(t, err)
	balance, _, err := ledger.Balance(wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Money(3000), balance)
}

func TestExpireStale(t *testing.T) {
	gateway := &scriptedGateway{}
	db, _, deposits, reconciler := newReconcileEnv(t, gateway)
	user := createTestUser(t, db, models.RoleUser)
	stale := createIntent(t, deposits, user, models.Money(1000))
	fresh := createIntent(t, deposits, user, models.Money(1000))

	require.NoError(t, db.Model(&models.DepositIntent{}).
		Where("id = ?", stale.ID).
		Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	swept, err := reconciler.ExpireStale(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	_, err = reconciler.Reconcile(context.Background(), stale.GatewayReference)
	assert.ErrorIs(t, err, ErrIntentExpired)
	// The fresh intent is untouched and still polls the gateway.
	_, err = reconciler.Reconcile(context.Background(), fresh.GatewayReference)
	assert.ErrorIs(t, err, ErrNotYetConfirmed)

	// Expired intents are never swept into the gateway path again.
	assert.Equal(t, 1, gateway.verifyCalls())
}

func TestCreateIntentDisabledGateway(t *testing.T) {
	db := newTestDB(t)
	deposits := NewDepositService(db, &scriptedGateway{}, false)
	user := createTestUser(t, db, models.RoleUser)

	_, err := deposits.CreateIntent(context.Background(), user, models.Money(1000))
	assert.ErrorIs(t, err, ErrGatewayDisabled)
}

func TestCreateIntentValidation(t *testing.T) {
	db := newTestDB(t)
	deposits := NewDepositService(db, &scriptedGateway{}, true)
	user := createTestUser(t, db, models.RoleUser)

	_, err := deposits.CreateIntent(context.Background(), user, models.Money(0))
	assert.True(t, IsValidationError(err))
	_, err = deposits.CreateIntent(context.Background(), user, models.Money(-500))
	assert.True(t, IsValidationError(err))
}
