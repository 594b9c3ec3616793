package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// pathID reads a UUID path parameter. A malformed id cannot exist, so it is
// reported as notFound.
func (h responder) pathID(w http.ResponseWriter, r *http.Request, validate *validator.Validate, notFound error) (string, bool) {
	id := chi.URLParam(r, "id")
	if err := validate.Var(id, "required,uuid"); err != nil {
		h.fail(w, r, notFound)
		return "", false
	}
	return id, true
}

type responder struct {
	logger *slog.Logger
	// debug добавляет текст внутренней ошибки в ответ
	debug bool
}

// fail maps domain errors to HTTP responses. Anything unrecognised is a 500.
func (h responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr  *entities.ValidationError
		stock *entities.InsufficientStockError
	)

	switch {
	case errors.As(err, &verr):
		utils.WriteFieldError(w, verr.Field, verr.Reason)
	case errors.As(err, &stock):
		res := StockErrorResponse{
			Message:   "insufficient stock",
			ProductID: stock.ProductID,
			Size:      stock.Size,
			Requested: stock.Requested,
		}
		if stock.Available >= 0 {
			res.Available = &stock.Available
		}
		utils.WriteJSON(w, res, http.StatusBadRequest)
	case errors.Is(err, entities.ErrInvalidSignature):
		utils.WriteError(w, "invalid signature", http.StatusBadRequest)
	case errors.Is(err, entities.ErrInvalidRequest):
		utils.WriteError(w, "invalid request", http.StatusBadRequest)
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "order not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrProductNotFound):
		utils.WriteError(w, "product not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrUnauthorized):
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, entities.ErrForbidden):
		utils.WriteError(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, entities.ErrInvalidTransition):
		utils.WriteError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, entities.ErrIdempotencyKeyUsed):
		utils.WriteError(w, "idempotency key already used", http.StatusConflict)
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.Any("error", err),
			slog.String("path", r.URL.Path),
		)
		if h.debug {
			utils.WriteErrorDetails(w, "internal server error", err, http.StatusInternalServerError)
			return
		}
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}

// isClientError reports whether err is the caller's fault.
func isClientError(err error) bool {
	return errors.Is(err, entities.ErrInvalidRequest) || errors.Is(err, entities.ErrInsufficientStock)
}
