package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const (
	signatureHeader = "Stripe-Signature"
	// Stripe ограничивает размер события 512 КБ
	maxWebhookBytes = 512 << 10
)

type PaymentService interface {
	CreateIntent(ctx context.Context, items []entities.CheckoutItem, method entities.ShippingMethod) (entities.PaymentIntent, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type PaymentHandler struct {
	responder
	validate *validator.Validate
	svc      PaymentService
}

func NewPaymentHandler(logger *slog.Logger, svc PaymentService, debug bool) *PaymentHandler {
	return &PaymentHandler{
		responder: responder{logger: logger.With(slog.String("handler", "payments")), debug: debug},
		validate:  newValidator(),
		svc:       svc,
	}
}

func (h *PaymentHandler) Init(r chi.Router) {
	r.Post("/payment/create-intent", h.CreateIntent)
	r.Post("/payment/webhook", h.Webhook)
}

// CreateIntent создаёт платёж у провайдера.
// @Summary      Создать платёж
// @Description  Считает сумму корзины так же, как при оформлении заказа, и создаёт payment intent
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      CreateIntentRequest  true  "Корзина"
// @Success      200  {object}  CreateIntentResponse
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации или нехватка товара"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /payment/create-intent [post]
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var body CreateIntentRequest
	if err := utils.DecodeBody(w, r, &body); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	intent, err := h.svc.CreateIntent(r.Context(), CartItemsToEntity(body.Items), entities.ShippingMethod(body.ShippingMethod))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.WriteJSON(w, CreateIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          intent.Amount.StringFixed(2),
		Currency:        intent.Currency,
	}, http.StatusOK)
}

// Webhook принимает события платёжного провайдера.
// @Summary      Webhook платёжного провайдера
// @Description  Проверяет подпись и обновляет статус оплаты заказа. Повторные события игнорируются.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header    string  true  "Подпись события"
// @Success      200  {object}  WebhookResponse
// @Failure      400  {object}  utils.ErrorResponse "Неверная подпись"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /payment/webhook [post]
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		webhooksTotal.WithLabelValues("rejected").Inc()
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.svc.HandleWebhook(r.Context(), payload, r.Header.Get(signatureHeader)); err != nil {
		if errors.Is(err, entities.ErrInvalidSignature) {
			webhooksTotal.WithLabelValues("rejected").Inc()
			h.logger.WarnContext(r.Context(), "webhook rejected", slog.Any("error", err))
		} else {
			webhooksTotal.WithLabelValues("failed").Inc()
		}
		h.fail(w, r, err)
		return
	}

	webhooksTotal.WithLabelValues("accepted").Inc()
	utils.WriteJSON(w, WebhookResponse{Received: true}, http.StatusOK)
}
