package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/internal/pricing"
	"github.com/SergeyBogomolovv/storefront-service/internal/service"
	mocks "github.com/SergeyBogomolovv/storefront-service/internal/service/mocks"
	txMocks "github.com/SergeyBogomolovv/storefront-service/pkg/trm/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type paymentDeps struct {
	products *mocks.MockProductRepo
	orders   *mocks.MockOrderRepo
	payments *mocks.MockPaymentRepo
	gateway  *mocks.MockPaymentGateway
	cache    *mocks.MockCache
	tx       *txMocks.MockManager
}

func newPaymentDeps(t *testing.T) paymentDeps {
	return paymentDeps{
		products: mocks.NewMockProductRepo(t),
		orders:   mocks.NewMockOrderRepo(t),
		payments: mocks.NewMockPaymentRepo(t),
		gateway:  mocks.NewMockPaymentGateway(t),
		cache:    mocks.NewMockCache(t),
		tx:       txMocks.NewMockManager(t),
	}
}

type paymentHandler interface {
	CreateIntent(ctx context.Context, items []entities.CheckoutItem, method entities.ShippingMethod) (entities.PaymentIntent, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

func (d paymentDeps) service() paymentHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repos := service.Repositories{Products: d.products, Orders: d.orders, Payments: d.payments}
	return service.NewPaymentService(logger, d.tx, repos, d.cache, d.gateway,
		pricing.NewCalculator(pricing.DefaultFlatRate()), "usd")
}

func (d paymentDeps) passThroughTx() {
	d.tx.EXPECT().
		Do(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, cb func(ctx context.Context) error) error {
			return cb(ctx)
		})
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	type MockBehavior func(d paymentDeps)

	succeeded := entities.PaymentEvent{ID: "evt_1", Type: entities.PaymentEventSucceeded, PaymentIntentID: "pi_1"}
	failed := entities.PaymentEvent{ID: "evt_2", Type: entities.PaymentEventFailed, PaymentIntentID: "pi_1"}
	awaiting := entities.Payment{ID: "pay_1", OrderID: "o1", ExternalRef: "pi_1", Status: entities.PaymentAwaiting}
	paid := entities.Payment{ID: "pay_1", OrderID: "o1", ExternalRef: "pi_1", Status: entities.PaymentPaid}

	testCases := []struct {
		name         string
		mockBehavior MockBehavior
		wantErr      error
	}{
		{
			name: "succeeded marks payment and order paid",
			mockBehavior: func(d paymentDeps) {
				d.gateway.EXPECT().ParseEvent([]byte("body"), "sig").Return(succeeded, nil).Once()
				d.passThroughTx()
				d.payments.EXPECT().MarkEventProcessed(mock.Anything, "evt_1", entities.PaymentEventSucceeded).Return(true, nil).Once()
				d.payments.EXPECT().FindByExternalRefForUpdate(mock.Anything, "pi_1").Return(awaiting, nil).Once()
				d.payments.EXPECT().UpdatePaymentStatus(mock.Anything, "pay_1", entities.PaymentPaid).Return(nil).Once()
				d.orders.EXPECT().UpdatePaymentStatus(mock.Anything, "o1", entities.PaymentPaid).Return(nil).Once()
				paidOrder := entities.Order{ID: "o1", PaymentStatus: entities.PaymentPaid}
				d.orders.EXPECT().GetOrder(mock.Anything, "o1").Return(paidOrder, nil).Once()
				d.cache.EXPECT().Set("o1", paidOrder).Return().Once()
			},
		},
		{
			name: "bad signature",
			mockBehavior: func(d paymentDeps) {
				d.gateway.EXPECT().ParseEvent([]byte("body"), "sig").
					Return(entities.PaymentEvent{}, errors.New("no signatures found matching the expected signature")).Once()
			},
			wantErr: entities.ErrInvalidSignature,
		},
		{
			name: "other event types are ignored",
			mockBehavior: func(d paymentDeps) {
				d.gateway.EXPECT().ParseEvent([]byte("body"), "sig").
					Return(entities.PaymentEvent{ID: "evt_3", Type: "charge.refunded"}, nil).Once()
			},
		},
		{
			name: "duplicate delivery is a no-op",
			mockBehavior: func(d paymentDeps) {
				d.gateway.EXPECT().ParseEvent([]byte("body"), "sig").Return(succeeded, nil).Once()
				d.passThroughTx()
				d.payments.EXPECT().MarkEventProcessed(mock.Anything, "evt_1", entities.PaymentEventSucceeded).Return(false, nil).Once()
			},
		},
		{
			name: "unknown payment is acknowledged",
			mockBehavior: func(d paymentDeps) {
				d.gateway.EXPECT().ParseEvent([]byte("body"), "sig").Return(succeeded, nil).Once()
				d.passThroughTx()
				d.payments.EXPECT().MarkEventProcessed(mock.Anything, "evt_1", entities.PaymentEventSucceeded).Return(true, nil).Once()
				d.payments.EXPECT().FindByExternalRefForUpdate(mock.Anything, "pi_1").
					Return(entities.Payment{}, entities.ErrPaymentNotFound).Once()
			},
		},
		{
			name: "failure after paid is skipped",
			mockBehavior: func(d paymentDeps) {
				d.gateway.EXPECT().ParseEvent([]byte("body"), "sig").Return(failed, nil).Once()
				d.passThroughTx()
				d.payments.EXPECT().MarkEventProcessed(mock.Anything, "evt_2", entities.PaymentEventFailed).Return(true, nil).Once()
				d.payments.EXPECT().FindByExternalRefForUpdate(mock.Anything, "pi_1").Return(paid, nil).Once()
			},
		},
		{
			name: "storage error is returned",
			mockBehavior: func(d paymentDeps) {
				d.gateway.EXPECT().ParseEvent([]byte("body"), "sig").Return(succeeded, nil).Once()
				d.passThroughTx()
				d.payments.EXPECT().MarkEventProcessed(mock.Anything, "evt_1", entities.PaymentEventSucceeded).Return(true, nil).Once()
				d.payments.EXPECT().FindByExternalRefForUpdate(mock.Anything, "pi_1").Return(awaiting, nil).Once()
				d.payments.EXPECT().UpdatePaymentStatus(mock.Anything, "pay_1", entities.PaymentPaid).Return(context.DeadlineExceeded).Once()
			},
			wantErr: context.DeadlineExceeded,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newPaymentDeps(t)
			tc.mockBehavior(d)

			err := d.service().HandleWebhook(context.Background(), []byte("body"), "sig")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPaymentService_CreateIntent(t *testing.T) {
	mug := entities.Product{ID: "mug", Name: "Mug", Price: decimal.RequireFromString("25.00"), Stock: 10}

	t.Run("amount in minor units", func(t *testing.T) {
		d := newPaymentDeps(t)
		d.products.EXPECT().ProductsByIDs(mock.Anything, []string{"mug"}).
			Return(map[string]entities.Product{"mug": mug}, nil).Once()
		d.gateway.EXPECT().
			CreateIntent(mock.Anything, int64(6075), "usd", mock.AnythingOfType("map[string]string")).
			Return(entities.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret"}, nil).Once()

		got, err := d.service().CreateIntent(context.Background(),
			[]entities.CheckoutItem{{ProductID: "mug", Quantity: 2}}, entities.ShippingStandard)
		require.NoError(t, err)
		assert.Equal(t, "pi_1", got.ID)
		assert.Equal(t, "pi_1_secret", got.ClientSecret)
		assert.Equal(t, "60.75", got.Amount.StringFixed(2))
		assert.Equal(t, "usd", got.Currency)
	})

	t.Run("not enough stock", func(t *testing.T) {
		d := newPaymentDeps(t)
		d.products.EXPECT().ProductsByIDs(mock.Anything, []string{"mug"}).
			Return(map[string]entities.Product{"mug": mug}, nil).Once()

		_, err := d.service().CreateIntent(context.Background(),
			[]entities.CheckoutItem{{ProductID: "mug", Quantity: 11}}, entities.ShippingStandard)
		assert.ErrorIs(t, err, entities.ErrInsufficientStock)
	})

	t.Run("gateway error", func(t *testing.T) {
		d := newPaymentDeps(t)
		d.products.EXPECT().ProductsByIDs(mock.Anything, []string{"mug"}).
			Return(map[string]entities.Product{"mug": mug}, nil).Once()
		d.gateway.EXPECT().CreateIntent(mock.Anything, int64(3288), "usd", mock.Anything).
			Return(entities.PaymentIntent{}, errors.New("card_declined")).Once()

		_, err := d.service().CreateIntent(context.Background(),
			[]entities.CheckoutItem{{ProductID: "mug", Quantity: 1}}, entities.ShippingStandard)
		assert.Error(t, err)
	})
}
