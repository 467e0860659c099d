package services

import (
	"context"
	"errors"

	"github.com/Mensah-712/BundleHub/models"
	"gorm.io/gorm"
)

// DepositService initiates funding requests with the external gateway
// and persists the resulting DepositIntent. It performs no ledger
// mutation; confirmed deposits are credited by the Reconciler.
type DepositService struct {
	db      *gorm.DB
	gateway PaymentGateway
	enabled bool
}

// NewDepositService creates a deposit service. enabled mirrors the
// process-wide gateway toggle; it is read at construction and never
// mutated.
func NewDepositService(db *gorm.DB, gateway PaymentGateway, enabled bool) *DepositService {
	return &DepositService{db: db, gateway: gateway, enabled: enabled}
}

// CreateIntent obtains a payment session from the gateway and records a
// DepositIntent in state Initiated. The gateway reference is assigned
// before the client is redirected, so a later verification can always
// find the intent.
func (s *DepositService) CreateIntent(ctx context.Context, user *models.User, amount models.Money) (*models.DepositIntent, error) {
	if !s.enabled {
		return nil, ErrGatewayDisabled
	}
	if amount <= 0 {
		return nil, &ValidationError{Field: "amount", Message: "must be positive"}
	}

	session, err := s.gateway.CreateSession(ctx, amount, SessionMeta{
		AccountID: user.ID,
		Name:      user.Username,
		Email:     user.Email,
	})
	if err != nil {
		return nil, err
	}

	intent := models.DepositIntent{
		UserID:           user.ID,
		RequestedAmount:  amount,
		GatewayReference: session.Reference,
		RedirectURL:      session.RedirectURL,
		Status:           models.DepositStatusInitiated,
	}
	if err := s.db.Create(&intent).Error; err != nil {
		return nil, err
	}
	return &intent, nil
}

// IntentByReference looks up a deposit intent by its gateway reference.
func (s *DepositService) IntentByReference(reference string) (*models.DepositIntent, error) {
	var intent models.DepositIntent
	if err := s.db.Where("gateway_reference = ?", reference).First(&intent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntentNotFound
		}
		return nil, err
	}
	return &intent, nil
}
