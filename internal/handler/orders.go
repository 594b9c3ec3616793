package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/internal/middleware"
	"github.com/SergeyBogomolovv/storefront-service/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const idempotencyHeader = "Idempotency-Key"

type OrderService interface {
	Checkout(ctx context.Context, req entities.CheckoutRequest) (entities.CheckoutResult, error)
	GetOrder(ctx context.Context, id string, who entities.Identity) (entities.Order, error)
	ListOrders(ctx context.Context, who entities.Identity, filter entities.OrderFilter) ([]entities.Order, error)
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error)
	UpdateShipping(ctx context.Context, id string, upd entities.ShippingUpdate) (entities.Order, error)
}

type OrderHandler struct {
	responder
	validate *validator.Validate
	svc      OrderService
}

func NewOrderHandler(logger *slog.Logger, svc OrderService, debug bool) *OrderHandler {
	return &OrderHandler{
		responder: responder{logger: logger.With(slog.String("handler", "orders")), debug: debug},
		validate:  newValidator(),
		svc:       svc,
	}
}

func (h *OrderHandler) Init(r chi.Router) {
	r.Post("/orders/create-order", h.CreateOrder)
	r.With(middleware.RequireUser).Get("/orders", h.ListOrders)
	r.Get("/orders/{id}", h.GetOrder)

	r.Route("/admin/orders", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/", h.ListOrders)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Patch("/{id}/shipping", h.UpdateShipping)
	})
}

// CreateOrder оформляет заказ.
// @Summary      Оформить заказ
// @Description  Проверяет корзину и остатки, считает сумму и атомарно сохраняет заказ. Без токена оформляется гостевой заказ.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string              false  "Ключ идемпотентности"
// @Param        request          body      CreateOrderRequest  true   "Заказ"
// @Success      201  {object}  CreateOrderResponse
// @Success      200  {object}  CreateOrderResponse "Повтор запроса с тем же ключом"
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации или нехватка товара"
// @Failure      401  {object}  utils.ErrorResponse "Невалидный токен"
// @Failure      409  {object}  utils.ErrorResponse "Ключ идемпотентности занят другим покупателем"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Security     BearerAuth
// @Router       /orders/create-order [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		checkoutDuration.Observe(time.Since(start).Seconds())
	}()

	var body CreateOrderRequest
	if err := utils.DecodeBody(w, r, &body); err != nil {
		checkoutsTotal.WithLabelValues("rejected").Inc()
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		checkoutsTotal.WithLabelValues("rejected").Inc()
		utils.WriteValidationError(w, err)
		return
	}

	who := middleware.IdentityFromContext(r.Context())
	res, err := h.svc.Checkout(r.Context(), body.ToEntity(who, r.Header.Get(idempotencyHeader)))
	if err != nil {
		if isClientError(err) {
			checkoutsTotal.WithLabelValues("rejected").Inc()
		} else {
			checkoutsTotal.WithLabelValues("failed").Inc()
		}
		h.fail(w, r, err)
		return
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
		checkoutsTotal.WithLabelValues("replayed").Inc()
	} else {
		checkoutsTotal.WithLabelValues("created").Inc()
	}

	utils.WriteJSON(w, CreateOrderResponse{
		Success:  true,
		OrderID:  res.Order.ID,
		Replayed: res.Replayed,
		Order:    OrderEntityToJSON(res.Order),
	}, status)
}

// GetOrder возвращает заказ по ID.
// @Summary      Получить заказ
// @Description  Гостевые заказы доступны по ID, заказы пользователя только владельцу или администратору
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "ID заказа"
// @Success      200  {object}  Order
// @Failure      403  {object}  utils.ErrorResponse "Нет доступа"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, h.validate, entities.ErrOrderNotFound)
	if !ok {
		return
	}

	order, err := h.svc.GetOrder(r.Context(), id, middleware.IdentityFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// ListOrders возвращает заказы.
// @Summary      Список заказов
// @Description  Пользователь видит свои заказы, администратор все (/admin/orders)
// @Tags         orders
// @Produce      json
// @Param        status  query     string  false  "Фильтр по статусу (только для администратора)"
// @Param        limit   query     int     false  "Размер страницы, по умолчанию 20, максимум 100"
// @Param        offset  query     int     false  "Смещение"
// @Success      200  {object}  OrderListResponse
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      401  {object}  utils.ErrorResponse "Требуется авторизация"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Security     BearerAuth
// @Router       /orders [get]
// @Router       /admin/orders [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseOrderFilter(w, r)
	if !ok {
		return
	}

	orders, err := h.svc.ListOrders(r.Context(), middleware.IdentityFromContext(r.Context()), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.WriteJSON(w, OrderListResponse{
		Orders: OrdersEntityToJSON(orders),
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, http.StatusOK)
}

func parseOrderFilter(w http.ResponseWriter, r *http.Request) (entities.OrderFilter, bool) {
	q := r.URL.Query()
	filter := entities.OrderFilter{Status: entities.OrderStatus(q.Get("status"))}

	for name, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.WriteFieldError(w, name, "must be a non-negative integer")
			return entities.OrderFilter{}, false
		}
		*dst = n
	}
	return filter, true
}

// UpdateStatus меняет статус заказа.
// @Summary      Сменить статус заказа
// @Description  Отмена возвращает товары на склад
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "ID заказа"
// @Param        request  body      UpdateStatusRequest  true  "Новый статус"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      403  {object}  utils.ErrorResponse "Нужна роль администратора"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      409  {object}  utils.ErrorResponse "Недопустимый переход"
// @Security     BearerAuth
// @Router       /admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, h.validate, entities.ErrOrderNotFound)
	if !ok {
		return
	}

	var body UpdateStatusRequest
	if err := utils.DecodeBody(w, r, &body); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.UpdateStatus(r.Context(), id, entities.OrderStatus(body.Status))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// UpdateShipping сохраняет трек-номер и переводит заказ в shipped.
// @Summary      Отправить заказ
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "ID заказа"
// @Param        request  body      UpdateShippingRequest  true  "Данные отправки"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      403  {object}  utils.ErrorResponse "Нужна роль администратора"
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      409  {object}  utils.ErrorResponse "Недопустимый переход"
// @Security     BearerAuth
// @Router       /admin/orders/{id}/shipping [patch]
func (h *OrderHandler) UpdateShipping(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, h.validate, entities.ErrOrderNotFound)
	if !ok {
		return
	}

	var body UpdateShippingRequest
	if err := utils.DecodeBody(w, r, &body); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.UpdateShipping(r.Context(), id, entities.ShippingUpdate{
		Carrier:        body.Carrier,
		TrackingNumber: body.TrackingNumber,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}
