package stripe

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testWebhookSecret = "whsec_test_secret"

func TestVerifySignature_Valid(t *testing.T) {
	v := NewWebhookVerifier(testWebhookSecret)
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)

	header := SignPayload(testWebhookSecret, payload, time.Now())

	assert.True(t, v.VerifySignature(payload, header))
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	v := NewWebhookVerifier(testWebhookSecret)
	payload := []byte(`{"id":"evt_1"}`)

	header := SignPayload("whsec_other_secret", payload, time.Now())

	assert.False(t, v.VerifySignature(payload, header))
}

func TestVerifySignature_TamperedPayload(t *testing.T) {
	v := NewWebhookVerifier(testWebhookSecret)
	payload := []byte(`{"id":"evt_1"}`)

	header := SignPayload(testWebhookSecret, payload, time.Now())

	assert.False(t, v.VerifySignature([]byte(`{"id":"evt_2"}`), header))
}

func TestVerifySignature_MalformedHeader(t *testing.T) {
	v := NewWebhookVerifier(testWebhookSecret)
	payload := []byte(`{}`)

	assert.False(t, v.VerifySignature(payload, ""))
	assert.False(t, v.VerifySignature(payload, "not-a-signature"))
	assert.False(t, v.VerifySignature(payload, "t=abc,v1=def"))
	assert.False(t, v.VerifySignature(payload, "v1=deadbeef"))
	assert.False(t, v.VerifySignature(payload, fmt.Sprintf("t=%d", time.Now().Unix())))
}

func TestVerifySignature_StaleTimestamp(t *testing.T) {
	v := NewWebhookVerifier(testWebhookSecret)
	payload := []byte(`{"id":"evt_1"}`)

	stale := SignPayload(testWebhookSecret, payload, time.Now().Add(-time.Hour))
	assert.False(t, v.VerifySignature(payload, stale), "old timestamps are replay attempts")

	future := SignPayload(testWebhookSecret, payload, time.Now().Add(time.Hour))
	assert.False(t, v.VerifySignature(payload, future))
}

func TestVerifySignature_MultipleSignatures(t *testing.T) {
	v := NewWebhookVerifier(testWebhookSecret)
	payload := []byte(`{"id":"evt_1"}`)

	valid := SignPayload(testWebhookSecret, payload, time.Now())
	withExtra := valid + ",v1=0000000000000000000000000000000000000000000000000000000000000000"

	assert.True(t, v.VerifySignature(payload, withExtra), "any matching v1 signature passes")
}
