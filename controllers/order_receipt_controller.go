package controllers

import (
	"fmt"
	"strconv"

	"github.com/Mensah-712/BundleHub/config"
	"github.com/Mensah-712/BundleHub/models"
	"github.com/Mensah-712/BundleHub/utils"
	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
)

// DownloadOrderReceipt generates a PDF receipt for a paid order.
func DownloadOrderReceipt(c *gin.Context) {
	utils.LogInfo("DownloadOrderReceipt called")
	user, ok := getUserFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("Bundle").Preload("User").
		Where("id = ? AND user_id = ?", orderID, user.ID).
		First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if order.Status != models.OrderStatusPaid && order.Status != models.OrderStatusFulfilled {
		utils.BadRequest(c, "Receipts are only available for paid orders", nil)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "BundleHub")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Prepaid data bundles for every network")
	pdf.Ln(8)
	pdf.Cell(100, 8, "Email: support@bundlehub.store")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "RECEIPT")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, "Order ID: "+strconv.Itoa(int(order.ID)))
	pdf.Cell(80, 8, "Date: "+order.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(8)
	pdf.Cell(60, 8, "Status: "+order.Status)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Billed To:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, order.User.Username)
	pdf.Ln(6)
	pdf.Cell(100, 8, order.User.Email)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(100, 8, "Bundle:")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(100, 8, fmt.Sprintf("%s (%s)", order.Bundle.Name, order.Bundle.Network))
	pdf.Ln(6)
	pdf.Cell(100, 8, fmt.Sprintf("%d MB, valid %d days", order.Bundle.DataMB, order.Bundle.ValidityDays))
	pdf.Ln(6)
	pdf.Cell(100, 8, "Delivered to: "+order.RecipientPhone)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(60, 8, "Amount paid:")
	pdf.Cell(60, 8, "GHS "+order.ResolvedPrice.Display())
	pdf.Ln(10)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt_%d.pdf", order.ID))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to generate receipt", nil)
		return
	}
	utils.LogInfo("Generated receipt for order ID: %d", order.ID)
}
