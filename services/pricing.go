package services

import (
	"errors"

	"github.com/Mensah-712/BundleHub/models"
	"gorm.io/gorm"
)

// PricingResolver resolves the price an account pays for a bundle.
type PricingResolver struct {
	db *gorm.DB
}

// NewPricingResolver creates a resolver over the given database handle.
func NewPricingResolver(db *gorm.DB) *PricingResolver {
	return &PricingResolver{db: db}
}

// BundleForPurchase loads an active bundle with its role prices.
// Inactive or absent bundles yield ErrBundleNotFound.
func (p *PricingResolver) BundleForPurchase(bundleID uint) (*models.Bundle, error) {
	var bundle models.Bundle
	err := p.db.Preload("RolePrices").First(&bundle, bundleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBundleNotFound
		}
		return nil, err
	}
	if !bundle.IsActive {
		return nil, ErrBundleNotFound
	}
	return &bundle, nil
}

// ResolvePrice returns the price the given role pays for the bundle. A
// non-negative role override wins; anything else, including unknown
// roles, falls back to the standard price. Pure over the provided
// bundle.
func (p *PricingResolver) ResolvePrice(bundle *models.Bundle, role string) models.Money {
	for _, rp := range bundle.RolePrices {
		if rp.Role == role && rp.Price >= 0 {
			return rp.Price
		}
	}
	return bundle.StandardPrice
}
