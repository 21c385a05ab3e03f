// Package verify checks that a payment confirmation was produced by the gateway.
package verify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HMACVerifier validates hex encoded HMAC-SHA256 signatures keyed with a
// gateway secret: payment signatures over "gateway_order_id|gateway_payment_id"
// and webhook signatures over the raw request body.
type HMACVerifier struct {
	secret []byte
}

func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

func (v *HMACVerifier) Verify(gatewayOrderID, gatewayPaymentID, signature string) bool {
	if len(v.secret) == 0 || gatewayOrderID == "" || gatewayPaymentID == "" || signature == "" {
		return false
	}

	return v.equal(signature, v.mac([]byte(gatewayOrderID+"|"+gatewayPaymentID)))
}

// VerifyPayload checks a webhook delivery signature over the exact body bytes.
func (v *HMACVerifier) VerifyPayload(payload []byte, signature string) bool {
	if len(v.secret) == 0 || len(payload) == 0 || signature == "" {
		return false
	}
	return v.equal(signature, v.mac(payload))
}

// SignPayload returns the signature the gateway sends with a webhook body.
func (v *HMACVerifier) SignPayload(payload []byte) string {
	return hex.EncodeToString(v.mac(payload))
}

func (v *HMACVerifier) equal(signature string, expected []byte) bool {
	got, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	return hmac.Equal(got, expected)
}

// Sign returns the signature the gateway attaches to a successful payment.
func (v *HMACVerifier) Sign(gatewayOrderID, gatewayPaymentID string) string {
	return hex.EncodeToString(v.mac([]byte(gatewayOrderID + "|" + gatewayPaymentID)))
}

func (v *HMACVerifier) mac(message []byte) []byte {
	m := hmac.New(sha256.New, v.secret)
	m.Write(message)
	return m.Sum(nil)
}
