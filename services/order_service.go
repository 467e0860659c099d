package services

import (
	"errors"
	"fmt"

	"github.com/Mensah-712/BundleHub/models"
	"github.com/Mensah-712/BundleHub/utils"
	"gorm.io/gorm"
)

// OrderService validates and executes bundle purchases. PlaceOrder is
// idempotent end to end: re-invoking it with the same key after any
// failure resumes from wherever the previous attempt stopped, and the
// wallet is debited at most once per order.
type OrderService struct {
	db      *gorm.DB
	ledger  *Ledger
	pricing *PricingResolver
}

// NewOrderService creates an order service.
func NewOrderService(db *gorm.DB, ledger *Ledger, pricing *PricingResolver) *OrderService {
	return &OrderService{db: db, ledger: ledger, pricing: pricing}
}

// orderReference derives the ledger idempotency key for an order debit.
// Deterministic per order, so a retried debit after a crash replays
// instead of double-charging. Internal format, never surfaced.
func orderReference(orderID uint) string {
	return fmt.Sprintf("order:%d", orderID)
}

// PlaceOrder executes a purchase for the user: resolve price, debit the
// wallet, mark the order Paid. The (user, idempotencyKey) pair keys the
// order; a replayed request returns the existing order unchanged.
func (s *OrderService) PlaceOrder(user *models.User, bundleID uint, recipientPhone, idempotencyKey string) (*models.Order, error) {
	if idempotencyKey == "" {
		return nil, &ValidationError{Field: "idempotency_key", Message: "must not be empty"}
	}
	if !utils.IsValidPhone(recipientPhone) {
		return nil, &ValidationError{Field: "recipient_phone", Message: "must be a valid Ghanaian phone number"}
	}

	var order models.Order
	err := s.db.Where("user_id = ? AND idempotency_key = ?", user.ID, idempotencyKey).First(&order).Error
	switch {
	case err == nil:
		if order.Status != models.OrderStatusCreated {
			// Replay of a finished request: return it unchanged.
			return &order, nil
		}
		// A previous attempt crashed between creation and settlement;
		// resume with the same deterministic debit reference.
		utils.LogInfo("Resuming stranded order ID: %d for user ID: %d", order.ID, user.ID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		bundle, lookupErr := s.pricing.BundleForPurchase(bundleID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		order = models.Order{
			UserID:         user.ID,
			BundleID:       bundle.ID,
			ResolvedPrice:  s.pricing.ResolvePrice(bundle, user.Role),
			RecipientPhone: recipientPhone,
			Status:         models.OrderStatusCreated,
			IdempotencyKey: idempotencyKey,
		}
		if createErr := s.db.Create(&order).Error; createErr != nil {
			// Lost the idempotency race to a concurrent submission.
			if err := s.db.Where("user_id = ? AND idempotency_key = ?", user.ID, idempotencyKey).First(&order).Error; err != nil {
				return nil, createErr
			}
			if order.Status != models.OrderStatusCreated {
				return &order, nil
			}
		}
	default:
		return nil, err
	}

	return s.settle(&order)
}

// settle debits the wallet for a Created order and finalizes its
// status. Safe to call repeatedly for the same order. A zero resolved
// price is a valid catalog configuration (a role override can make a
// bundle free); such orders settle without a ledger entry.
func (s *OrderService) settle(order *models.Order) (*models.Order, error) {
	if order.ResolvedPrice > 0 {
		wallet, err := s.ledger.GetOrCreateWallet(order.UserID)
		if err != nil {
			return order, err
		}

		_, err = s.ledger.Debit(wallet.ID, order.ResolvedPrice, orderReference(order.ID), models.TransactionReasonOrderPayment)
		if errors.Is(err, ErrInsufficientFunds) {
			if dbErr := s.db.Model(order).Updates(map[string]interface{}{
				"status":         models.OrderStatusFailed,
				"failure_reason": "insufficient wallet balance",
			}).Error; dbErr != nil {
				return order, dbErr
			}
			order.Status = models.OrderStatusFailed
			order.FailureReason = "insufficient wallet balance"
			utils.OrdersPlacedTotal.WithLabelValues("failed").Inc()
			return order, ErrInsufficientFunds
		}
		if err != nil {
			// Order stays Created; the caller retries with the same key.
			return order, err
		}
	}

	if err := s.db.Model(order).
		Where("status = ?", models.OrderStatusCreated).
		Update("status", models.OrderStatusPaid).Error; err != nil {
		return order, err
	}
	order.Status = models.OrderStatusPaid
	utils.OrdersPlacedTotal.WithLabelValues("paid").Inc()
	return order, nil
}

// UpdateFulfillment records the external fulfillment outcome for a Paid
// order. Fulfillment itself (provisioning the bundle with the telecom)
// happens outside this system.
func (s *OrderService) UpdateFulfillment(orderID uint, fulfilled bool, note string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Field: "order_id", Message: "order not found"}
		}
		return nil, err
	}
	if order.Status != models.OrderStatusPaid {
		return nil, &ValidationError{Field: "status", Message: "only Paid orders can receive a fulfillment outcome"}
	}

	newStatus := models.OrderStatusFulfilled
	updates := map[string]interface{}{"status": newStatus}
	if !fulfilled {
		newStatus = models.OrderStatusFailed
		updates["status"] = newStatus
		updates["failure_reason"] = note
	}
	if err := s.db.Model(&order).Where("status = ?", models.OrderStatusPaid).Updates(updates).Error; err != nil {
		return nil, err
	}
	order.Status = newStatus
	if !fulfilled {
		order.FailureReason = note
	}
	return &order, nil
}
