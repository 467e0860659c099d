package controllers

import (
	"errors"
	"strconv"

	"github.com/Mensah-712/BundleHub/config"
	"github.com/Mensah-712/BundleHub/models"
	"github.com/Mensah-712/BundleHub/services"
	"github.com/Mensah-712/BundleHub/utils"
	"github.com/gin-gonic/gin"
)

func orderResponse(order *models.Order) gin.H {
	resp := gin.H{
		"id":              order.ID,
		"bundle_id":       order.BundleID,
		"resolved_price":  order.ResolvedPrice.Display(),
		"recipient_phone": order.RecipientPhone,
		"status":          order.Status,
		"created_at":      order.CreatedAt,
	}
	if order.FailureReason != "" {
		resp["failure_reason"] = order.FailureReason
	}
	return resp
}

// PlaceOrder purchases a bundle, debiting the caller's wallet. The
// idempotency key makes retries safe: a double submission lands on the
// same order and at most one debit.
func PlaceOrder(c *gin.Context) {
	utils.LogInfo("PlaceOrder called")
	user, ok := getUserFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	var req struct {
		BundleID       uint   `json:"bundle_id" binding:"required"`
		RecipientPhone string `json:"recipient_phone" binding:"required"`
		IdempotencyKey string `json:"idempotency_key"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. bundle_id and recipient_phone are required", err.Error())
		return
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.GetHeader("Idempotency-Key")
	}
	utils.LogDebug("PlaceOrder - user ID: %d, bundle ID: %d", user.ID, req.BundleID)

	order, err := orderService.PlaceOrder(&user, req.BundleID, req.RecipientPhone, req.IdempotencyKey)
	switch {
	case err == nil:
		utils.LogInfo("Order %d finalized with status %s for user ID: %d", order.ID, order.Status, user.ID)
		utils.Success(c, "Order placed successfully", gin.H{"order": orderResponse(order)})

	case services.IsValidationError(err):
		utils.ValidationFailed(c, err.Error(), nil)

	case errors.Is(err, services.ErrBundleNotFound):
		utils.NotFound(c, "Bundle not found")

	case errors.Is(err, services.ErrInsufficientFunds):
		balance, _, balErr := walletSnapshot(user.ID)
		data := gin.H{"order": orderResponse(order)}
		if balErr == nil {
			data["wallet_balance"] = balance.Display()
		}
		utils.BadRequest(c, "Insufficient wallet balance. Please top up your wallet and try again", data)

	default:
		utils.LogError("PlaceOrder failed for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to place order", nil)
	}
}

// walletSnapshot returns the caller's current balance and version.
func walletSnapshot(userID uint) (models.Money, int64, error) {
	wallet, err := ledgerService.GetOrCreateWallet(userID)
	if err != nil {
		return 0, 0, err
	}
	return ledgerService.Balance(wallet.ID)
}

// ListOrders returns the caller's orders, newest first.
func ListOrders(c *gin.Context) {
	utils.LogInfo("ListOrders called")
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

	var total int64
	if err := config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count orders", nil)
		return
	}

	var orders []models.Order
	if err := config.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	items := make([]gin.H, len(orders))
	for i := range orders {
		items[i] = orderResponse(&orders[i])
	}
	utils.SuccessWithPagination(c, "Orders retrieved successfully", items, total, page, limit)
}

// GetOrder returns one of the caller's orders with its bundle details.
func GetOrder(c *gin.Context) {
	utils.LogInfo("GetOrder called")
	user, ok := getUserFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("Bundle").Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	resp := orderResponse(&order)
	resp["bundle"] = gin.H{
		"name":          order.Bundle.Name,
		"network":       order.Bundle.Network,
		"data_mb":       order.Bundle.DataMB,
		"validity_days": order.Bundle.ValidityDays,
	}
	utils.Success(c, "Order retrieved successfully", resp)
}

// UpdateOrderFulfillment records the external fulfillment outcome for a
// Paid order. Admin only; the provisioning itself happens outside this
// system, this endpoint just closes the loop.
func UpdateOrderFulfillment(c *gin.Context) {
	utils.LogInfo("UpdateOrderFulfillment called")

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Fulfilled bool   `json:"fulfilled"`
		Note      string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	order, err := orderService.UpdateFulfillment(uint(orderID), req.Fulfilled, req.Note)
	if err != nil {
		if services.IsValidationError(err) {
			utils.BadRequest(c, err.Error(), nil)
			return
		}
		utils.LogError("Failed to update fulfillment for order ID: %d: %v", orderID, err)
		utils.InternalServerError(c, "Failed to update order", nil)
		return
	}

	utils.Success(c, "Order updated successfully", gin.H{"order": orderResponse(order)})
}
