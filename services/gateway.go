package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Mensah-712/BundleHub/models"
	"github.com/Mensah-712/BundleHub/utils"
	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
)

// VerifyStatus is the normalized outcome of a gateway verification call.
type VerifyStatus string

const (
	VerifyPending   VerifyStatus = "pending"
	VerifyConfirmed VerifyStatus = "confirmed"
	VerifyFailed    VerifyStatus = "failed"
)

// VerifyResult carries the gateway's verdict. SettledAmount is only
// meaningful for VerifyConfirmed.
type VerifyResult struct {
	Status        VerifyStatus
	SettledAmount models.Money
}

// PaymentSession is the gateway's handle for a funding request: the
// unique reference plus the URL the client is redirected to.
type PaymentSession struct {
	Reference   string
	RedirectURL string
}

// SessionMeta identifies the paying account to the gateway.
type SessionMeta struct {
	AccountID uint
	Name      string
	Email     string
}

// PaymentGateway abstracts the external payment processor. CreateSession
// and VerifySession are the only calls allowed to block on external I/O;
// both honour the passed context. Implementations never mutate the
// ledger.
type PaymentGateway interface {
	CreateSession(ctx context.Context, amount models.Money, meta SessionMeta) (*PaymentSession, error)
	VerifySession(ctx context.Context, reference string) (*VerifyResult, error)
}

// RazorpayGateway drives Razorpay payment links.
type RazorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway creates a gateway client with the given API
// credentials.
func NewRazorpayGateway(key, secret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(key, secret)}
}

// CreateSession creates a payment link for the amount and returns its id
// as the gateway reference together with the hosted checkout URL.
func (g *RazorpayGateway) CreateSession(ctx context.Context, amount models.Money, meta SessionMeta) (*PaymentSession, error) {
	linkData := map[string]interface{}{
		"amount":       int64(amount),
		"currency":     "GHS",
		"reference_id": uuid.New().String(),
		"description":  "Wallet deposit",
		"customer": map[string]interface{}{
			"name":  meta.Name,
			"email": meta.Email,
		},
		"notes": map[string]interface{}{
			"account_id": fmt.Sprintf("%d", meta.AccountID),
		},
	}

	type createResult struct {
		link map[string]interface{}
		err  error
	}
	done := make(chan createResult, 1)
	go func() {
		link, err := g.client.PaymentLink.Create(linkData, nil)
		done <- createResult{link: link, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, res.err)
		}
		session := &PaymentSession{
			Reference:   fmt.Sprintf("%v", res.link["id"]),
			RedirectURL: fmt.Sprintf("%v", res.link["short_url"]),
		}
		if session.Reference == "" || session.Reference == "<nil>" {
			return nil, fmt.Errorf("%w: gateway returned no reference", ErrGatewayUnavailable)
		}
		return session, nil
	}
}

// VerifySession fetches the payment link and maps its state to the
// normalized outcome. A context deadline is treated as Pending, never
// Failed: the gateway stays the sole authority on final outcomes.
func (g *RazorpayGateway) VerifySession(ctx context.Context, reference string) (*VerifyResult, error) {
	start := time.Now()
	defer func() {
		utils.GatewayVerifyDuration.Observe(time.Since(start).Seconds())
	}()

	type fetchResult struct {
		link map[string]interface{}
		err  error
	}
	done := make(chan fetchResult, 1)
	go func() {
		link, err := g.client.PaymentLink.Fetch(reference, nil, nil)
		done <- fetchResult{link: link, err: err}
	}()

	select {
	case <-ctx.Done():
		return &VerifyResult{Status: VerifyPending}, nil
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, res.err)
		}
		switch fmt.Sprintf("%v", res.link["status"]) {
		case "paid":
			return &VerifyResult{
				Status:        VerifyConfirmed,
				SettledAmount: jsonAmount(res.link["amount_paid"]),
			}, nil
		case "cancelled", "expired":
			return &VerifyResult{Status: VerifyFailed}, nil
		default:
			return &VerifyResult{Status: VerifyPending}, nil
		}
	}
}

// jsonAmount converts a decoded JSON number (minor units) to Money.
func jsonAmount(v interface{}) models.Money {
	switch n := v.(type) {
	case float64:
		return models.Money(int64(n))
	case int64:
		return models.Money(n)
	case int:
		return models.Money(n)
	default:
		return 0
	}
}
