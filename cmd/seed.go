package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stockfolio/database"
	"stockfolio/models"
)

type seedCmd struct {
	file      string
	batchSize int
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "bulk insert stocks from a JSON file" }
func (*seedCmd) Usage() string {
	return `stockfolio seed -file <stocks.json> [-batch <n>]

  Reads a JSON array of stocks ({"symbol", "companyName", "purchase",
  "lastDiv", "industry", "marketCap"}) and inserts them in batches inside a
  single transaction. Nothing is written if any row fails.
`
}

func (c *seedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Path to the JSON file of stocks.")
	f.IntVar(&c.batchSize, "batch", 100, "Rows per INSERT statement.")
}

func (c *seedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "seed: -file is required")
		f.Usage()
		return subcommands.ExitUsageError
	}

	in, err := os.Open(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening seed file %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	stocks, err := decodeSeedStocks(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading seed file %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	_, log, db, status := bootstrap()
	if status != subcommands.ExitSuccess {
		return status
	}
	defer closeDB(log, db)

	if err := seedStocks(db, stocks, c.batchSize); err != nil {
		log.WithError(err).Error("Failed to seed stocks")
		return subcommands.ExitFailure
	}
	log.Infof("Seeded %d stocks from %s", len(stocks), c.file)
	return subcommands.ExitSuccess
}

type seedStock struct {
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	Purchase    decimal.Decimal `json:"purchase"`
	LastDiv     decimal.Decimal `json:"lastDiv"`
	Industry    string          `json:"industry"`
	MarketCap   int64           `json:"marketCap"`
}

// decodeSeedStocks reads and checks a JSON array of stocks.
func decodeSeedStocks(r io.Reader) ([]models.Stock, error) {
	var rows []seedStock
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode stocks: %w", err)
	}

	stocks := make([]models.Stock, 0, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(row.Symbol) == "" || strings.TrimSpace(row.CompanyName) == "" {
			return nil, fmt.Errorf("stock #%d: symbol and companyName are required", i)
		}
		if !row.Purchase.IsPositive() {
			return nil, fmt.Errorf("stock #%d (%s): purchase must be positive", i, row.Symbol)
		}
		stocks = append(stocks, models.Stock{
			Symbol:      row.Symbol,
			CompanyName: row.CompanyName,
			Purchase:    row.Purchase,
			LastDiv:     row.LastDiv,
			Industry:    row.Industry,
			MarketCap:   row.MarketCap,
		})
	}
	return stocks, nil
}

func seedStocks(db *gorm.DB, stocks []models.Stock, batchSize int) error {
	if len(stocks) == 0 {
		return nil
	}
	return database.CreateInBatches(db, stocks, batchSize)
}
