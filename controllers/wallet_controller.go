package controllers

import (
	"strconv"

	"github.com/Mensah-712/BundleHub/utils"
	"github.com/gin-gonic/gin"
)

// GetWalletBalance returns the caller's balance snapshot.
func GetWalletBalance(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	balance, version, err := walletSnapshot(user.ID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get wallet", nil)
		return
	}

	utils.Success(c, "Wallet retrieved successfully", gin.H{
		"balance": balance.Display(),
		"version": version,
	})
}

// GetWalletTransactions returns the caller's ledger history, newest
// first.
func GetWalletTransactions(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	wallet, err := ledgerService.GetOrCreateWallet(user.ID)
	if err != nil {
		utils.LogError("Failed to get wallet for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get wallet", nil)
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

	txns, total, err := ledgerService.Transactions(wallet.ID, limit, (page-1)*limit)
	if err != nil {
		utils.LogError("Failed to get transactions for wallet ID: %d: %v", wallet.ID, err)
		utils.InternalServerError(c, "Failed to get transactions", nil)
		return
	}

	items := make([]gin.H, len(txns))
	for i, txn := range txns {
		items[i] = gin.H{
			"id":         txn.ID,
			"direction":  txn.Direction,
			"amount":     txn.Amount.Display(),
			"reason":     txn.Reason,
			"status":     txn.Status,
			"created_at": txn.CreatedAt,
		}
	}

	utils.SuccessWithPagination(c, "Transactions retrieved successfully", items, total, page, limit)
}
