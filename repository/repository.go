// Package repository holds the data-access layer: one repository per entity,
// each a thin wrapper around parameterized GORM queries.
package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"stockfolio/models"
)

// StockQuery filters, sorts and pages a stock listing. Empty filters do not
// restrict the result.
type StockQuery struct {
	CompanyName  string
	Symbol       string
	SortBy       string
	IsDescending bool
	PageNumber   int
	PageSize     int
}

// StockUpdate carries every mutable stock attribute; an update overwrites all
// of them.
type StockUpdate struct {
	Symbol      string
	CompanyName string
	Purchase    decimal.Decimal
	LastDiv     decimal.Decimal
	Industry    string
	MarketCap   int64
}

type StockRepository interface {
	List(ctx context.Context, q StockQuery) ([]models.Stock, error)
	GetByID(ctx context.Context, id uint) (*models.Stock, error)
	GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error)
	Create(ctx context.Context, stock *models.Stock) error
	Update(ctx context.Context, id uint, u StockUpdate) (*models.Stock, error)
	Delete(ctx context.Context, id uint) (*models.Stock, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type CommentRepository interface {
	List(ctx context.Context) ([]models.Comment, error)
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, id uint, title, content string) (*models.Comment, error)
	Delete(ctx context.Context, id uint) (*models.Comment, error)
}

type PortfolioRepository interface {
	// Add returns ErrDuplicateEntry when the user already holds a stock with
	// the same symbol, ignoring case, and ErrNotFound for an unknown stock.
	Add(ctx context.Context, userID, stockID uint) error
	// Remove returns ErrNotFound when no portfolio stock matches symbol.
	Remove(ctx context.Context, userID uint, symbol string) error
	ListForUser(ctx context.Context, userID uint) ([]models.Stock, error)
}

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	// CreateWithRole stores the user and its role membership atomically.
	CreateWithRole(ctx context.Context, user *models.User, roleName string) error
}

type RefreshTokenRepository interface {
	Save(ctx context.Context, token string, userID uint, ttl time.Duration) error
	// Consume returns the owner of token and invalidates it.
	Consume(ctx context.Context, token string) (uint, error)
}
