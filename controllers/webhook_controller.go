package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"

	"github.com/Mensah-712/BundleHub/config"
	"github.com/Mensah-712/BundleHub/services"
	"github.com/Mensah-712/BundleHub/utils"
	"github.com/gin-gonic/gin"
)

// GatewayWebhook handles asynchronous payment notifications from the
// gateway. It feeds the same idempotent reconcile path as the client
// polling loop, so a webhook racing a poll still credits exactly once.
// The signature check rejects anything not signed with the webhook
// secret.
func GatewayWebhook(c *gin.Context) {
	utils.LogInfo("GatewayWebhook called")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.BadRequest(c, "Failed to read request body", nil)
		return
	}

	secret := config.App.GatewayWebhookSecret
	if secret == "" {
		utils.LogError("Webhook received but no webhook secret configured")
		utils.ServiceUnavailable(c, "Webhooks not configured")
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		utils.LogError("Webhook signature verification failed")
		utils.BadRequest(c, "Invalid signature", nil)
		return
	}

	var event struct {
		Event   string `json:"event"`
		Payload struct {
			PaymentLink struct {
				Entity struct {
					ID string `json:"id"`
				} `json:"entity"`
			} `json:"payment_link"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		utils.BadRequest(c, "Invalid payload", nil)
		return
	}

	reference := event.Payload.PaymentLink.Entity.ID
	if reference == "" {
		utils.LogDebug("Webhook event %s carries no payment link, ignoring", event.Event)
		utils.Success(c, "Ignored", nil)
		return
	}
	utils.LogInfo("Webhook event %s for reference %s", event.Event, reference)

	outcome, err := reconcileService.Reconcile(c.Request.Context(), reference)
	switch {
	case err == nil:
		if outcome.CreditedNow {
			utils.LogInfo("Webhook credited deposit %s", reference)
		}
		utils.Success(c, "Processed", gin.H{"status": outcome.Intent.Status})

	case errors.Is(err, services.ErrNotYetConfirmed),
		errors.Is(err, services.ErrDepositFailed),
		errors.Is(err, services.ErrIntentExpired):
		// Terminal or transient per the gateway; nothing to retry here.
		utils.Success(c, "Processed", gin.H{"status": outcome.Intent.Status})

	case errors.Is(err, services.ErrIntentNotFound):
		utils.LogError("Webhook for unknown reference %s", reference)
		utils.NotFound(c, "Unknown reference")

	default:
		// Non-2xx makes the gateway redeliver; reconcile is idempotent
		// so redelivery is safe.
		utils.LogError("Webhook reconcile failed for %s: %v", reference, err)
		utils.InternalServerError(c, "Reconcile failed", nil)
	}
}
