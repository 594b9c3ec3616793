package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/SergeyBogomolovv/storefront-service/internal/config"
	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

func confirmation() entities.OrderConfirmation {
	return entities.OrderConfirmation{
		EventID:      "e1",
		OrderID:      "o1",
		Email:        "ann@example.com",
		Name:         "Ann <Lee>",
		Subtotal:     "50.00",
		Tax:          "5.75",
		ShippingCost: "5.00",
		Total:        "60.75",
		Items: []entities.ConfirmationLine{
			{Name: "Mug", Quantity: 2, UnitPrice: "25.00", LineTotal: "50.00"},
		},
		Shipping: entities.ConfirmationShipAddress{
			FullName: "Ann Lee", Line1: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US",
		},
	}
}

func TestNotifier_SendOrderConfirmation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("renders and sends", func(t *testing.T) {
		mailer := &fakeMailer{}
		err := NewNotifier(logger, mailer).SendOrderConfirmation(context.Background(), confirmation())
		require.NoError(t, err)

		require.Len(t, mailer.sent, 1)
		got := mailer.sent[0]
		assert.Equal(t, "ann@example.com", got.to)
		assert.Equal(t, "Order o1 confirmed", got.subject)
		assert.Contains(t, got.body, "Total: 60.75")
		assert.Contains(t, got.body, "Mug")
		assert.Contains(t, got.body, "Springfield")
		assert.Contains(t, got.body, "Ann &lt;Lee&gt;")
	})

	t.Run("no email", func(t *testing.T) {
		mailer := &fakeMailer{}
		event := confirmation()
		event.Email = " "

		require.NoError(t, NewNotifier(logger, mailer).SendOrderConfirmation(context.Background(), event))
		assert.Empty(t, mailer.sent)
	})

	t.Run("mailer error", func(t *testing.T) {
		mailer := &fakeMailer{err: errors.New("421 service not available")}
		err := NewNotifier(logger, mailer).SendOrderConfirmation(context.Background(), confirmation())
		assert.ErrorContains(t, err, "421")
	})
}

func TestNewSMTPMailer(t *testing.T) {
	m, err := NewSMTPMailer(config.SMTP{Host: "localhost", Port: 2525, From: "orders@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "orders@example.com", m.from)
}
