package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"stockfolio/models"
)

// GormPortfolioRepository implements PortfolioRepository on GORM.
type GormPortfolioRepository struct {
	db *gorm.DB
}

func NewGormPortfolioRepository(db *gorm.DB) *GormPortfolioRepository {
	if db == nil {
		panic("database connection cannot be nil for GormPortfolioRepository")
	}
	return &GormPortfolioRepository{db: db}
}

// addEntry inserts the pair unless the user already holds a stock whose
// symbol equals the new stock's, ignoring case. The primary key rejects an
// identical pair even when two adds race.
const addEntry = `INSERT INTO portfolios (user_id, stock_id, created_at)
SELECT ?, s.id, ? FROM stocks s
WHERE s.id = ? AND NOT EXISTS (
	SELECT 1 FROM portfolios p JOIN stocks held ON held.id = p.stock_id
	WHERE p.user_id = ? AND LOWER(held.symbol) = LOWER(s.symbol)
)
ON CONFLICT (user_id, stock_id) DO NOTHING`

// Add inserts the (user, stock) pair unless the user already holds that
// stock or another stock with the same symbol in a different case.
func (r *GormPortfolioRepository) Add(ctx context.Context, userID, stockID uint) error {
	res := r.db.WithContext(ctx).Exec(addEntry, userID, time.Now(), stockID, userID)
	if res.Error != nil {
		if isDuplicateEntryError(res.Error) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: add stock %d to portfolio of user %d: %w", stockID, userID, res.Error)
	}
	if res.RowsAffected == 0 {
		var stocks int64
		err := r.db.WithContext(ctx).Model(&models.Stock{}).Where("id = ?", stockID).Count(&stocks).Error
		if err != nil {
			return fmt.Errorf("gorm: check stock %d: %w", stockID, err)
		}
		if stocks == 0 {
			return ErrNotFound
		}
		return ErrDuplicateEntry
	}
	return nil
}

// Remove deletes the user's portfolio entries whose stock symbol equals
// symbol, ignoring case.
func (r *GormPortfolioRepository) Remove(ctx context.Context, userID uint, symbol string) error {
	tx := r.db.WithContext(ctx)
	stockIDs := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.Stock{}).Select("id").Where("LOWER(symbol) = ?", strings.ToLower(symbol))
	res := tx.
		Where("user_id = ? AND stock_id IN (?)", userID, stockIDs).
		Delete(&models.Portfolio{})
	if res.Error != nil {
		return fmt.Errorf("gorm: remove '%s' from portfolio of user %d: %w", symbol, userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListForUser returns the stocks in the user's portfolio without comments.
func (r *GormPortfolioRepository) ListForUser(ctx context.Context, userID uint) ([]models.Stock, error) {
	stocks := []models.Stock{}
	err := r.db.WithContext(ctx).
		Joins("JOIN portfolios ON portfolios.stock_id = stocks.id").
		Where("portfolios.user_id = ?", userID).
		Order("stocks.id").
		Find(&stocks).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list portfolio of user %d: %w", userID, err)
	}
	return stocks, nil
}
