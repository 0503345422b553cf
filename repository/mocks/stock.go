package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stockfolio/models"
	"stockfolio/repository"
)

type StockRepository struct {
	mock.Mock
}

var _ repository.StockRepository = (*StockRepository)(nil)

func (m *StockRepository) List(ctx context.Context, q repository.StockQuery) ([]models.Stock, error) {
	args := m.Called(ctx, q)
	stocks, _ := args.Get(0).([]models.Stock)
	return stocks, args.Error(1)
}

func (m *StockRepository) GetByID(ctx context.Context, id uint) (*models.Stock, error) {
	args := m.Called(ctx, id)
	stock, _ := args.Get(0).(*models.Stock)
	return stock, args.Error(1)
}

func (m *StockRepository) GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	args := m.Called(ctx, symbol)
	stock, _ := args.Get(0).(*models.Stock)
	return stock, args.Error(1)
}

func (m *StockRepository) Create(ctx context.Context, stock *models.Stock) error {
	return m.Called(ctx, stock).Error(0)
}

func (m *StockRepository) Update(ctx context.Context, id uint, u repository.StockUpdate) (*models.Stock, error) {
	args := m.Called(ctx, id, u)
	stock, _ := args.Get(0).(*models.Stock)
	return stock, args.Error(1)
}

func (m *StockRepository) Delete(ctx context.Context, id uint) (*models.Stock, error) {
	args := m.Called(ctx, id)
	stock, _ := args.Get(0).(*models.Stock)
	return stock, args.Error(1)
}

func (m *StockRepository) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
