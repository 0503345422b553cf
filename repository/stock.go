package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stockfolio/models"
)

// SortSymbol is the only sort field the stock listing understands.
const SortSymbol = "symbol"

// GormStockRepository implements StockRepository on GORM.
type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	if db == nil {
		panic("database connection cannot be nil for GormStockRepository")
	}
	return &GormStockRepository{db: db}
}

// List returns one page of stocks matching q, comments and their authors
// preloaded. Unknown sort fields are ignored. No bounds checks are made on
// the page: a non-positive page number yields a negative skip, which the
// query builder drops. A page whose offset overflows int is empty.
func (r *GormStockRepository) List(ctx context.Context, q StockQuery) ([]models.Stock, error) {
	tx := r.withComments(r.db.WithContext(ctx))

	if strings.TrimSpace(q.CompanyName) != "" {
		tx = tx.Where("LOWER(company_name) LIKE ? ESCAPE '\\'", containsPattern(q.CompanyName))
	}
	if strings.TrimSpace(q.Symbol) != "" {
		tx = tx.Where("LOWER(symbol) LIKE ? ESCAPE '\\'", containsPattern(q.Symbol))
	}
	if strings.EqualFold(strings.TrimSpace(q.SortBy), SortSymbol) {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "symbol"}, Desc: q.IsDescending})
	}
	tx = tx.Order("id")

	skip, ok := pageOffset(q.PageNumber, q.PageSize)
	if !ok {
		return []models.Stock{}, nil
	}
	var stocks []models.Stock
	if err := tx.Offset(skip).Limit(q.PageSize).Find(&stocks).Error; err != nil {
		return nil, fmt.Errorf("gorm: list stocks: %w", err)
	}
	return stocks, nil
}

func (r *GormStockRepository) GetByID(ctx context.Context, id uint) (*models.Stock, error) {
	var stock models.Stock
	err := r.withComments(r.db.WithContext(ctx)).First(&stock, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find stock by id %d: %w", id, err)
	}
	return &stock, nil
}

// GetBySymbol matches the symbol exactly, case included.
func (r *GormStockRepository) GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	var stock models.Stock
	err := r.db.WithContext(ctx).Where("symbol = ?", symbol).Order("id").First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find stock by symbol '%s': %w", symbol, err)
	}
	return &stock, nil
}

func (r *GormStockRepository) Create(ctx context.Context, stock *models.Stock) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(stock).Error; err != nil {
		return fmt.Errorf("gorm: create stock '%s': %w", stock.Symbol, err)
	}
	return nil
}

func (r *GormStockRepository) Update(ctx context.Context, id uint, u StockUpdate) (*models.Stock, error) {
	var existing models.Stock
	if err := r.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find stock %d for update: %w", id, err)
	}

	existing.Symbol = u.Symbol
	existing.CompanyName = u.CompanyName
	existing.Purchase = u.Purchase
	existing.LastDiv = u.LastDiv
	existing.Industry = u.Industry
	existing.MarketCap = u.MarketCap

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(&existing).Error; err != nil {
		return nil, fmt.Errorf("gorm: update stock %d: %w", id, err)
	}
	return r.GetByID(ctx, id)
}

func (r *GormStockRepository) Delete(ctx context.Context, id uint) (*models.Stock, error) {
	var stock models.Stock
	if err := r.db.WithContext(ctx).First(&stock, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find stock %d for delete: %w", id, err)
	}
	if err := r.db.WithContext(ctx).Delete(&stock).Error; err != nil {
		return nil, fmt.Errorf("gorm: delete stock %d: %w", id, err)
	}
	return &stock, nil
}

func (r *GormStockRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Stock{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("gorm: count stocks by id %d: %w", id, err)
	}
	return count > 0, nil
}

func (r *GormStockRepository) withComments(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.id") }).
		Preload("Comments.User")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into a lower-case LIKE pattern matching any value
// that contains s literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// pageOffset returns the row offset of page. ok is false when the offset
// does not fit in an int, which can only be past the last row.
func pageOffset(page, size int) (offset int, ok bool) {
	if page <= 1 || size <= 0 {
		return (page - 1) * size, true
	}
	if page-1 > math.MaxInt/size {
		return 0, false
	}
	return (page - 1) * size, true
}
