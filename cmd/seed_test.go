package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockfolio/models"
	"stockfolio/testutil"
)

const seedJSON = `[
  {"symbol": "AAPL", "companyName": "Apple Inc", "purchase": 189.5, "lastDiv": 0.96, "industry": "Tech", "marketCap": 2900000000000},
  {"symbol": "KO", "companyName": "Coca-Cola", "purchase": "59.10", "lastDiv": 1.84, "industry": "Beverages", "marketCap": 255000000000},
  {"symbol": "XOM", "companyName": "Exxon Mobil", "purchase": 104, "lastDiv": 3.8, "industry": "Energy", "marketCap": 420000000000}
]`

func TestDecodeSeedStocks(t *testing.T) {
	stocks, err := decodeSeedStocks(strings.NewReader(seedJSON))
	require.NoError(t, err)
	require.Len(t, stocks, 3)
	assert.Equal(t, "KO", stocks[1].Symbol)
	assert.Equal(t, "59.1", stocks[1].Purchase.String())
	assert.Equal(t, int64(420000000000), stocks[2].MarketCap)
}

func TestDecodeSeedStocks_Rejects(t *testing.T) {
	tests := map[string]string{
		"not an array":      `{"symbol": "AAPL"}`,
		"missing symbol":    `[{"companyName": "Apple Inc", "purchase": 1}]`,
		"zero purchase":     `[{"symbol": "AAPL", "companyName": "Apple Inc", "purchase": 0}]`,
		"unknown field":     `[{"symbol": "AAPL", "companyName": "Apple Inc", "purchase": 1, "price": 3}]`,
		"truncated payload": `[{"symbol": "AAPL"`,
	}
	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := decodeSeedStocks(strings.NewReader(payload))
			assert.Error(t, err)
		})
	}
}

func TestSeedStocks(t *testing.T) {
	db := testutil.NewDB(t)
	stocks, err := decodeSeedStocks(strings.NewReader(seedJSON))
	require.NoError(t, err)

	require.NoError(t, seedStocks(db, stocks, 2))

	var count int64
	require.NoError(t, db.Model(&models.Stock{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	require.NoError(t, seedStocks(db, nil, 2))
}
