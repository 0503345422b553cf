package repository_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stockfolio/models"
	"stockfolio/repository"
)

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{UserName: name, Email: name + "@example.com", PasswordHash: "hash"}
	require.NoError(t, repository.NewGormUserRepository(db).CreateWithRole(context.Background(), user, models.RoleUser))
	return user
}

func createStock(t *testing.T, db *gorm.DB, symbol, company string) *models.Stock {
	t.Helper()
	stock := &models.Stock{
		Symbol:      symbol,
		CompanyName: company,
		Purchase:    decimal.RequireFromString("100.50"),
		LastDiv:     decimal.RequireFromString("1.25"),
		Industry:    "Tech",
		MarketCap:   1_000_000,
	}
	require.NoError(t, repository.NewGormStockRepository(db).Create(context.Background(), stock))
	return stock
}

func symbols(stocks []models.Stock) []string {
	out := make([]string, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, s.Symbol)
	}
	return out
}
