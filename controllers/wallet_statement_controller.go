package controllers

import (
	"fmt"
	"time"

	"github.com/Mensah-712/BundleHub/config"
	"github.com/Mensah-712/BundleHub/models"
	"github.com/Mensah-712/BundleHub/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// ExportWalletStatement downloads the caller's ledger history for a
// period as an Excel statement.
func ExportWalletStatement(c *gin.Context) {
	utils.LogInfo("ExportWalletStatement called")
	user, ok := getUserFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	period := c.DefaultQuery("period", "month")
	now := time.Now()
	var startDate time.Time
	switch period {
	case "day":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "week":
		startDate = now.AddDate(0, 0, -7)
	case "month":
		startDate = now.AddDate(0, -1, 0)
	default:
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	wallet, err := ledgerService.GetOrCreateWallet(user.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to get wallet", nil)
		return
	}

	var txns []models.WalletTransaction
	if err := config.DB.Where("wallet_id = ? AND created_at >= ?", wallet.ID, startDate).
		Order("created_at DESC").
		Find(&txns).Error; err != nil {
		utils.LogError("Failed to fetch transactions for wallet ID: %d: %v", wallet.ID, err)
		utils.InternalServerError(c, "Failed to fetch transactions", nil)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Wallet Statement")
	if err != nil {
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("BUNDLEHUB - Wallet Statement")
	infoRow := sheet.AddRow()
	infoRow.AddCell().SetString("Account: " + user.Username)
	periodRow := sheet.AddRow()
	periodRow.AddCell().SetString("Period: " + startDate.Format("2006-01-02") + " to " + now.Format("2006-01-02"))
	balanceRow := sheet.AddRow()
	balanceRow.AddCell().SetString("Current balance: GHS " + wallet.Balance.Display())
	sheet.AddRow() // spacing

	headers := []string{"Date", "Direction", "Amount (GHS)", "Reason", "Status"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	var credits, debits models.Money
	for _, txn := range txns {
		row := sheet.AddRow()
		row.AddCell().SetString(txn.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(txn.Direction)
		row.AddCell().SetString(txn.Amount.Display())
		row.AddCell().SetString(txn.Reason)
		row.AddCell().SetString(txn.Status)
		if txn.Status == models.TransactionStatusSettled {
			if txn.Direction == models.TransactionDirectionCredit {
				credits += txn.Amount
			} else {
				debits += txn.Amount
			}
		}
	}

	sheet.AddRow() // spacing
	summaryData := [][]string{
		{"Total credits", credits.Display()},
		{"Total debits", debits.Display()},
		{"Entries", fmt.Sprintf("%d", len(txns))},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=wallet_statement_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Generated wallet statement for user ID: %d", user.ID)
}
