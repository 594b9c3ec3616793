// Package payment adapts payment providers to the order service.
package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

type stripeGateway struct {
	api           *client.API
	webhookSecret string
}

func NewStripeGateway(secretKey, webhookSecret string) *stripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &stripeGateway{
		api:           api,
		webhookSecret: webhookSecret,
	}
}

func (g *stripeGateway) Provider() string {
	return "stripe"
}

// CreateIntent opens a payment intent for amount given in minor units.
func (g *stripeGateway) CreateIntent(
	ctx context.Context,
	amount int64,
	currency string,
	metadata map[string]string,
) (entities.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return entities.PaymentIntent{}, fmt.Errorf("stripe: %w", err)
	}

	return entities.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Currency:     string(pi.Currency),
	}, nil
}

// ParseEvent checks the Stripe-Signature header and decodes the event.
func (g *stripeGateway) ParseEvent(payload []byte, signature string) (entities.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return entities.PaymentEvent{}, err
	}

	result := entities.PaymentEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}
	if event.Data == nil {
		return result, nil
	}

	switch result.Type {
	case entities.PaymentEventSucceeded, entities.PaymentEventFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return entities.PaymentEvent{}, fmt.Errorf("failed to decode payment intent: %w", err)
		}
		result.PaymentIntentID = pi.ID
	}
	return result, nil
}
