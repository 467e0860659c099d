package controllers

import (
	"strconv"

	"github.com/Mensah-712/BundleHub/config"
	"github.com/Mensah-712/BundleHub/models"
	"github.com/Mensah-712/BundleHub/utils"
	"github.com/gin-gonic/gin"
)

// bundleResponse shapes a bundle for the caller, with the price already
// resolved for their role. The server-side resolution is authoritative;
// clients never supply a price.
func bundleResponse(bundle *models.Bundle, role string) gin.H {
	price := pricingResolver.ResolvePrice(bundle, role)
	return gin.H{
		"id":             bundle.ID,
		"name":           bundle.Name,
		"network":        bundle.Network,
		"data_mb":        bundle.DataMB,
		"validity_days":  bundle.ValidityDays,
		"price":          price.Display(),
		"standard_price": bundle.StandardPrice.Display(),
	}
}

// ListBundles returns active bundles, optionally filtered by network,
// priced for the authenticated user's role.
func ListBundles(c *gin.Context) {
	utils.LogInfo("ListBundles called")
	user, ok := getUserFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(utils.DefaultPaginationLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > utils.MaxPaginationLimit {
		limit = utils.DefaultPaginationLimit
	}

	query := config.DB.Model(&models.Bundle{}).Where("is_active = ?", true)
	if network := c.Query("network"); network != "" {
		query = query.Where("network = ?", network)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count bundles: %v", err)
		utils.InternalServerError(c, "Failed to fetch bundles", nil)
		return
	}

	var bundles []models.Bundle
	if err := query.Preload("RolePrices").
		Order("network, data_mb").
		Limit(limit).Offset((page - 1) * limit).
		Find(&bundles).Error; err != nil {
		utils.LogError("Failed to fetch bundles: %v", err)
		utils.InternalServerError(c, "Failed to fetch bundles", nil)
		return
	}

	items := make([]gin.H, len(bundles))
	for i := range bundles {
		items[i] = bundleResponse(&bundles[i], user.Role)
	}

	utils.SuccessWithPagination(c, "Bundles retrieved successfully", items, total, page, limit)
}

// GetBundle returns one active bundle priced for the caller's role.
func GetBundle(c *gin.Context) {
	utils.LogInfo("GetBundle called")
	user, ok := getUserFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	bundleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid bundle ID", nil)
		return
	}

	bundle, err := pricingResolver.BundleForPurchase(uint(bundleID))
	if err != nil {
		utils.NotFound(c, "Bundle not found")
		return
	}

	utils.Success(c, "Bundle retrieved successfully", bundleResponse(bundle, user.Role))
}
