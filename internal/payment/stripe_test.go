package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test_secret"

func sign(payload []byte, secret string, at time.Time) string {
	ts := strconv.FormatInt(at.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestStripeGateway_ParseEvent(t *testing.T) {
	g := NewStripeGateway("sk_test_unused", testWebhookSecret)

	succeeded := []byte(`{
		"id": "evt_1",
		"object": "event",
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_1", "object": "payment_intent", "amount": 6075}}
	}`)

	t.Run("valid signature", func(t *testing.T) {
		event, err := g.ParseEvent(succeeded, sign(succeeded, testWebhookSecret, time.Now()))
		require.NoError(t, err)
		assert.Equal(t, entities.PaymentEvent{
			ID:              "evt_1",
			Type:            entities.PaymentEventSucceeded,
			PaymentIntentID: "pi_1",
		}, event)
	})

	t.Run("other event type", func(t *testing.T) {
		payload := []byte(`{"id": "evt_2", "object": "event", "type": "customer.created",
			"data": {"object": {"id": "cus_1", "object": "customer"}}}`)

		event, err := g.ParseEvent(payload, sign(payload, testWebhookSecret, time.Now()))
		require.NoError(t, err)
		assert.Equal(t, "customer.created", event.Type)
		assert.Empty(t, event.PaymentIntentID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := g.ParseEvent(succeeded, sign(succeeded, "whsec_other", time.Now()))
		assert.Error(t, err)
	})

	t.Run("tampered payload", func(t *testing.T) {
		header := sign(succeeded, testWebhookSecret, time.Now())
		tampered := append([]byte{}, succeeded...)
		tampered[len(tampered)-2] = ' '
		_, err := g.ParseEvent(tampered, header)
		assert.Error(t, err)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		_, err := g.ParseEvent(succeeded, sign(succeeded, testWebhookSecret, time.Now().Add(-time.Hour)))
		assert.Error(t, err)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := g.ParseEvent(succeeded, "")
		assert.Error(t, err)
	})
}

func TestStripeGateway_Provider(t *testing.T) {
	assert.Equal(t, "stripe", NewStripeGateway("sk_test_unused", testWebhookSecret).Provider())
}
