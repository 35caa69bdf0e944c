package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vaidashi/dessert-order-tracker/internal/models"
)

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, orderNo string) (*models.Order, error) {
	args := m.Called(ctx, orderNo)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

func (m *mockOrderRepository) GetAll(ctx context.Context) ([]*models.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*models.Order)
	return orders, args.Error(1)
}

func (m *mockOrderRepository) Update(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepository) Delete(ctx context.Context, orderNo string) error {
	return m.Called(ctx, orderNo).Error(0)
}

type mockPriceRepository struct {
	mock.Mock
}

func (m *mockPriceRepository) Get(ctx context.Context) (*models.PriceList, error) {
	args := m.Called(ctx)
	prices, _ := args.Get(0).(*models.PriceList)
	return prices, args.Error(1)
}

func (m *mockPriceRepository) Save(ctx context.Context, prices *models.PriceList) error {
	return m.Called(ctx, prices).Error(0)
}
