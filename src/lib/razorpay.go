package lib

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"tickertizer/src/config"

	razorpay "github.com/razorpay/razorpay-go"
)

// ErrGateway wraps every failure talking to the payment provider: network
// errors, invalid amounts, provider-side rejections. Callers decide whether
// to retry; nothing here does.
var ErrGateway = errors.New("payment gateway error")

// Gateway is the order-creation side of the payment provider. Tests swap in
// a fake via NewGateway.
type Gateway interface {
	CreateRemoteOrder(amount int64, currency string, receipt string) (string, error)
}

type razorpayGateway struct {
	client *razorpay.Client
}

var gateway Gateway

func GetGateway() Gateway {
	if gateway != nil {
		return gateway
	}
	client := razorpay.NewClient(config.RazorpayKeyID(), config.RazorpayKeySecret())
	gateway = &razorpayGateway{client: client}
	return gateway
}

// NewGateway replaces the gateway instance with a custom implementation.
func NewGateway(g Gateway) Gateway {
	gateway = g
	return gateway
}

// CreateRemoteOrder creates an order with the provider. amount is in the
// currency's smallest unit (paise for INR).
func (g *razorpayGateway) CreateRemoteOrder(amount int64, currency string, receipt string) (string, error) {
	body, err := g.client.Order.Create(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		log.Printf("[razorpay] Error creating order: %s\n", err.Error())
		return "", fmt.Errorf("%w: %s", ErrGateway, err.Error())
	}
	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("%w: order response missing id", ErrGateway)
	}
	return orderID, nil
}

// VerifyCallbackSignature recomputes HMAC-SHA256 over "{order_id}|{payment_id}"
// keyed by secret and compares it to the supplied hex signature in constant
// time. Any mismatch returns false.
func VerifyCallbackSignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
