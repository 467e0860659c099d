package controllers

import (
	"errors"

	"github.com/Mensah-712/BundleHub/models"
	"github.com/Mensah-712/BundleHub/services"
	"github.com/Mensah-712/BundleHub/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionKeyDepositReference = "pending_deposit_reference"

// InitiateDeposit creates a funding request with the payment gateway and
// returns the redirect URL. The gateway reference is also parked in the
// session so a returning client can verify without carrying it.
func InitiateDeposit(c *gin.Context) {
	utils.LogInfo("InitiateDeposit called")
	user, ok := getUserFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	var req struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. Amount is required and must be positive", err.Error())
		return
	}
	amount := models.MoneyFromCedis(req.Amount)
	utils.LogDebug("Deposit request - user ID: %d, amount: %s", user.ID, amount)

	intent, err := depositService.CreateIntent(c.Request.Context(), &user, amount)
	switch {
	case err == nil:
		// fall through
	case services.IsValidationError(err):
		utils.ValidationFailed(c, err.Error(), nil)
		return
	case errors.Is(err, services.ErrGatewayDisabled):
		utils.ServiceUnavailable(c, "Deposits are temporarily disabled")
		return
	case errors.Is(err, services.ErrGatewayUnavailable):
		utils.LogError("Gateway unavailable for user ID: %d: %v", user.ID, err)
		utils.ServiceUnavailable(c, "Payment gateway is unavailable, please try again")
		return
	default:
		utils.LogError("Failed to create deposit intent for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create deposit", nil)
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyDepositReference, intent.GatewayReference)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save session for user ID: %d: %v", user.ID, err)
	}

	utils.LogInfo("Created deposit intent %s for user ID: %d", intent.GatewayReference, user.ID)
	utils.Created(c, "Deposit initiated successfully", gin.H{
		"reference":    intent.GatewayReference,
		"amount":       intent.RequestedAmount.Display(),
		"redirect_url": intent.RedirectURL,
		"status":       intent.Status,
	})
}

// VerifyDeposit reconciles a deposit from the client's polling loop. It
// may race the gateway webhook for the same reference; both paths
// converge on a single credit.
func VerifyDeposit(c *gin.Context) {
	utils.LogInfo("VerifyDeposit called")
	user, ok := getUserFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not found")
		return
	}

	reference := c.Query("reference")
	session := sessions.Default(c)
	if reference == "" {
		if v, ok := session.Get(sessionKeyDepositReference).(string); ok {
			reference = v
		}
	}
	if reference == "" {
		utils.BadRequest(c, "Deposit reference is required", nil)
		return
	}

	outcome, err := reconcileService.Reconcile(c.Request.Context(), reference)
	if outcome != nil && outcome.Intent != nil && outcome.Intent.UserID != user.ID {
		utils.NotFound(c, "Deposit not found")
		return
	}

	switch {
	case err == nil:
		balance, _, balErr := walletSnapshot(user.ID)
		data := gin.H{"status": "verified", "amount": outcome.Intent.SettledAmount.Display()}
		if balErr == nil {
			data["new_balance"] = balance.Display()
		}
		if outcome.CreditedNow {
			session.Delete(sessionKeyDepositReference)
			_ = session.Save()
			// Unknown balance stays out of the receipt rather than
			// mailing a zero value.
			newBalance := ""
			if balErr == nil {
				newBalance = balance.Display()
			}
			go func(email, amount, bal string) {
				if err := utils.SendDepositReceipt(email, amount, bal); err != nil {
					utils.LogError("Failed to send deposit receipt: %v", err)
				}
			}(user.Email, outcome.Intent.SettledAmount.Display(), newBalance)
		}
		utils.LogInfo("Deposit %s verified for user ID: %d", reference, user.ID)
		utils.Success(c, "Deposit verified and wallet credited", data)

	case errors.Is(err, services.ErrNotYetConfirmed):
		utils.Success(c, "Payment not yet confirmed, please try again shortly", gin.H{
			"status": "pending",
		})

	case errors.Is(err, services.ErrDepositFailed):
		utils.BadRequest(c, "Payment failed at the gateway", gin.H{"status": "failed"})

	case errors.Is(err, services.ErrIntentExpired):
		utils.BadRequest(c, "This deposit has expired. Please start a new one", gin.H{"status": "expired"})

	case errors.Is(err, services.ErrIntentNotFound):
		utils.NotFound(c, "Deposit not found")

	case errors.Is(err, services.ErrGatewayUnavailable):
		utils.LogError("Gateway unavailable verifying %s: %v", reference, err)
		utils.ServiceUnavailable(c, "Payment gateway is unavailable, please try again")

	default:
		utils.LogError("Failed to verify deposit %s: %v", reference, err)
		utils.InternalServerError(c, "Failed to verify deposit", nil)
	}
}
