package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WebhookVerifier checks provider signatures on inbound webhook payloads.
// The Stripe-Signature header carries a timestamp and one or more v1
// signatures: "t=<unix>,v1=<hex>". The signed payload is "<t>.<body>"
// with HMAC-SHA256 over the shared webhook secret.
type WebhookVerifier struct {
	secret    string
	tolerance time.Duration
}

const defaultTolerance = 5 * time.Minute

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{
		secret:    secret,
		tolerance: defaultTolerance,
	}
}

// VerifySignature verifies the signature header against the raw body.
// Expired timestamps are rejected to limit replay.
func (v *WebhookVerifier) VerifySignature(payload []byte, header string) bool {
	return v.verifyAt(payload, header, time.Now())
}

func (v *WebhookVerifier) verifyAt(payload []byte, header string, now time.Time) bool {
	var timestamp string
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp = value
		case "v1":
			signatures = append(signatures, value)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return false
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	age := now.Sub(time.Unix(ts, 0))
	if age > v.tolerance || age < -v.tolerance {
		return false
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	fmt.Fprintf(mac, "%s.", timestamp)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return true
		}
	}
	return false
}

// SignPayload produces a valid signature header for the given body.
// Used by tests and local tooling to simulate provider deliveries.
func SignPayload(secret string, payload []byte, at time.Time) string {
	timestamp := strconv.FormatInt(at.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s.", timestamp)
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}
