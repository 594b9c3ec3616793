package handler_test

import (
	"net/http"
	"testing"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/internal/handler"
	mocks "github.com/SergeyBogomolovv/storefront-service/internal/handler/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductHandler_GetProduct(t *testing.T) {
	tee := entities.Product{
		ID:       teeID,
		Name:     "Tee",
		Price:    decimal.RequireFromString("19.9"),
		HasSizes: true,
		Stock:    4,
		Sizes:    []entities.ProductSize{{Size: "M", Stock: 3}, {Size: "L", Stock: 1}},
	}

	t.Run("success", func(t *testing.T) {
		svc := mocks.NewMockProductService(t)
		svc.EXPECT().GetProduct(mock.Anything, teeID).Return(tee, nil).Once()

		rr := serve(handler.NewProductHandler(discardLogger(), svc, false), http.MethodGet, "/products/"+teeID, "", anonymous)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"price":"19.90"`)
		assert.Contains(t, rr.Body.String(), `"stock":4`)
		assert.Contains(t, rr.Body.String(), `{"size":"L","stock":1}`)
	})

	t.Run("not found", func(t *testing.T) {
		svc := mocks.NewMockProductService(t)
		svc.EXPECT().GetProduct(mock.Anything, mugID).Return(entities.Product{}, entities.ErrProductNotFound).Once()

		rr := serve(handler.NewProductHandler(discardLogger(), svc, false), http.MethodGet, "/products/"+mugID, "", anonymous)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), `"product not found"`)
	})
}

func TestProductHandler_SetStock(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		who          entities.Identity
		mockBehavior func(svc *mocks.MockProductService)
		wantStatus   int
		wantBody     string
	}{
		{
			name: "size stock",
			body: `{"size": "M", "stock": 0}`,
			who:  admin,
			mockBehavior: func(svc *mocks.MockProductService) {
				svc.EXPECT().SetStock(mock.Anything, teeID, "M", 0).
					Return(entities.Product{ID: teeID, HasSizes: true, Stock: 1}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"stock":1`,
		},
		{
			name:         "stock missing",
			body:         `{"size": "M"}`,
			who:          admin,
			mockBehavior: func(svc *mocks.MockProductService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"stock":"required"`,
		},
		{
			name:         "negative stock",
			body:         `{"stock": -3}`,
			who:          admin,
			mockBehavior: func(svc *mocks.MockProductService) {},
			wantStatus:   http.StatusBadRequest,
			wantBody:     `"stock":"gte"`,
		},
		{
			name: "unknown size",
			body: `{"size": "XXL", "stock": 2}`,
			who:  admin,
			mockBehavior: func(svc *mocks.MockProductService) {
				svc.EXPECT().SetStock(mock.Anything, teeID, "XXL", 2).
					Return(entities.Product{}, entities.NewValidationError("size", "unknown size")).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"size":"unknown size"`,
		},
		{
			name:         "anonymous",
			body:         `{"stock": 2}`,
			who:          anonymous,
			mockBehavior: func(svc *mocks.MockProductService) {},
			wantStatus:   http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := mocks.NewMockProductService(t)
			tc.mockBehavior(svc)

			rr := serve(handler.NewProductHandler(discardLogger(), svc, false), http.MethodPut, "/admin/products/"+teeID+"/stock", tc.body, tc.who)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
		})
	}
}

func TestProductHandler_MalformedID(t *testing.T) {
	svc := mocks.NewMockProductService(t)
	h := handler.NewProductHandler(discardLogger(), svc, false)

	rr := serve(h, http.MethodGet, "/products/P1", "", anonymous)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `"product not found"`)

	rr = serve(h, http.MethodPut, "/admin/products/P1/stock", `{"stock": 2}`, admin)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
