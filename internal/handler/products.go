package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/internal/middleware"
	"github.com/SergeyBogomolovv/storefront-service/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type ProductService interface {
	GetProduct(ctx context.Context, id string) (entities.Product, error)
	SetStock(ctx context.Context, id, size string, stock int) (entities.Product, error)
}

type ProductHandler struct {
	responder
	validate *validator.Validate
	svc      ProductService
}

func NewProductHandler(logger *slog.Logger, svc ProductService, debug bool) *ProductHandler {
	return &ProductHandler{
		responder: responder{logger: logger.With(slog.String("handler", "products")), debug: debug},
		validate:  newValidator(),
		svc:       svc,
	}
}

func (h *ProductHandler) Init(r chi.Router) {
	r.Get("/products/{id}", h.GetProduct)
	r.With(middleware.RequireAdmin).Put("/admin/products/{id}/stock", h.SetStock)
}

// GetProduct возвращает товар с остатками.
// @Summary      Получить товар
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "ID товара"
// @Success      200  {object}  Product
// @Failure      404  {object}  utils.ErrorResponse "Товар не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, h.validate, entities.ErrProductNotFound)
	if !ok {
		return
	}

	product, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.WriteJSON(w, ProductEntityToJSON(product), http.StatusOK)
}

// SetStock задаёт остаток товара или размера.
// @Summary      Задать остаток
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      string           true  "ID товара"
// @Param        request  body      SetStockRequest  true  "Остаток"
// @Success      200  {object}  Product
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      403  {object}  utils.ErrorResponse "Нужна роль администратора"
// @Failure      404  {object}  utils.ErrorResponse "Товар не найден"
// @Security     BearerAuth
// @Router       /admin/products/{id}/stock [put]
func (h *ProductHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, h.validate, entities.ErrProductNotFound)
	if !ok {
		return
	}

	var body SetStockRequest
	if err := utils.DecodeBody(w, r, &body); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(body); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	product, err := h.svc.SetStock(r.Context(), id, body.Size, *body.Stock)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.WriteJSON(w, ProductEntityToJSON(product), http.StatusOK)
}
