package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stockfolio/models"
	"stockfolio/repository"
)

type PortfolioRepository struct {
	mock.Mock
}

var _ repository.PortfolioRepository = (*PortfolioRepository)(nil)

func (m *PortfolioRepository) Add(ctx context.Context, userID, stockID uint) error {
	return m.Called(ctx, userID, stockID).Error(0)
}

func (m *PortfolioRepository) Remove(ctx context.Context, userID uint, symbol string) error {
	return m.Called(ctx, userID, symbol).Error(0)
}

func (m *PortfolioRepository) ListForUser(ctx context.Context, userID uint) ([]models.Stock, error) {
	args := m.Called(ctx, userID)
	stocks, _ := args.Get(0).([]models.Stock)
	return stocks, args.Error(1)
}

type CommentRepository struct {
	mock.Mock
}

var _ repository.CommentRepository = (*CommentRepository)(nil)

func (m *CommentRepository) List(ctx context.Context) ([]models.Comment, error) {
	args := m.Called(ctx)
	comments, _ := args.Get(0).([]models.Comment)
	return comments, args.Error(1)
}

func (m *CommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *CommentRepository) Update(ctx context.Context, id uint, title, content string) (*models.Comment, error) {
	args := m.Called(ctx, id, title, content)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *CommentRepository) Delete(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}
