package config

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("POSTGRES_USER", "shop")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_123")
}

func TestNew_Defaults(t *testing.T) {
	setRequired(t)

	conf := New()
	require.NoError(t, conf.Validate())

	assert.Equal(t, "development", conf.Env)
	assert.True(t, conf.Debug())
	assert.Equal(t, "flat", conf.Pricing.ShippingPolicy)
	assert.Equal(t, []string{"localhost:9092"}, conf.Kafka.Brokers)
	assert.Equal(t, time.Second, conf.Outbox.PollInterval)
	assert.Equal(t, "usd", conf.Stripe.Currency)
}

func TestNew_FromEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("ENV", "production")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("CACHE_CAPACITY", "not-a-number")
	t.Setenv("PRICING_SHIPPING_POLICY", "threshold")

	conf := New()
	require.NoError(t, conf.Validate())

	assert.False(t, conf.Debug())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, conf.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, conf.Cache.TTL)
	assert.Equal(t, 1000, conf.Cache.Capacity)
	assert.Equal(t, "threshold", conf.Pricing.ShippingPolicy)
}

func TestValidate_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		env   map[string]string
		field string
	}{
		{name: "unknown env", env: map[string]string{"ENV": "dev"}, field: "Env"},
		{name: "short jwt secret", env: map[string]string{"JWT_SECRET": "short"}, field: "JWTSecret"},
		{name: "unknown shipping policy", env: map[string]string{"PRICING_SHIPPING_POLICY": "free"}, field: "ShippingPolicy"},
		{name: "bad sender", env: map[string]string{"SMTP_FROM": "nobody"}, field: "From"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			err := New().Validate()
			require.Error(t, err)

			var ve validator.ValidationErrors
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve[0].Field())
		})
	}
}
