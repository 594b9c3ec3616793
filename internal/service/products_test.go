package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/internal/service"
	mocks "github.com/SergeyBogomolovv/storefront-service/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_SetStock(t *testing.T) {
	type MockBehavior func(repo *mocks.MockProductRepo)

	tee := entities.Product{
		ID:       "tee",
		HasSizes: true,
		Stock:    7,
		Sizes:    []entities.ProductSize{{Size: "M", Stock: 7}, {Size: "L", Stock: 0}},
	}

	testCases := []struct {
		name         string
		size         string
		stock        int
		mockBehavior MockBehavior
		wantStock    int
		wantErr      error
	}{
		{
			name:  "size stock",
			size:  "M",
			stock: 7,
			mockBehavior: func(repo *mocks.MockProductRepo) {
				repo.EXPECT().SetStock(mock.Anything, "tee", "M", 7).Return(nil).Once()
				repo.EXPECT().GetProduct(mock.Anything, "tee").Return(tee, nil).Once()
			},
			wantStock: 7,
		},
		{
			name:         "negative",
			size:         "M",
			stock:        -1,
			mockBehavior: func(repo *mocks.MockProductRepo) {},
			wantErr:      entities.ErrInvalidRequest,
		},
		{
			name:  "unknown product",
			size:  "M",
			stock: 1,
			mockBehavior: func(repo *mocks.MockProductRepo) {
				repo.EXPECT().SetStock(mock.Anything, "tee", "M", 1).Return(entities.ErrProductNotFound).Once()
			},
			wantErr: entities.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := mocks.NewMockProductRepo(t)
			tc.mockBehavior(repo)
			svc := service.NewProductService(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)

			got, err := svc.SetStock(context.Background(), "tee", tc.size, tc.stock)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantStock, got.Stock)
		})
	}
}
