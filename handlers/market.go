package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"stockfolio/market"
	"stockfolio/repository"
)

// QuoteService returns live prices.
type QuoteService interface {
	Price(ctx context.Context, symbol string) (*market.Quote, error)
}

type QuoteHandler struct {
	stocks repository.StockRepository
	quotes QuoteService
	log    logrus.FieldLogger
}

func NewQuoteHandler(stocks repository.StockRepository, quotes QuoteService, log logrus.FieldLogger) *QuoteHandler {
	return &QuoteHandler{stocks: stocks, quotes: quotes, log: log}
}

type QuoteDto struct {
	StockID  uint            `json:"stockId"`
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Purchase decimal.Decimal `json:"purchase"`
	Change   decimal.Decimal `json:"change"`
	Cached   bool            `json:"cached"`
}

// Get looks up the live price of a stored stock and its change against the
// purchase price.
func (h *QuoteHandler) Get(c *gin.Context) {
	var p idParam
	if err := c.ShouldBindUri(&p); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	stock, err := h.stocks.GetByID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, msgNotFound, nil)
			return
		}
		internalError(c, h.log, "GetQuote", err)
		return
	}

	quote, err := h.quotes.Price(ctx, stock.Symbol)
	if err != nil {
		switch {
		case errors.Is(err, market.ErrQuoteNotFound):
			ErrorResponse(c, http.StatusNotFound, "Quote not found", nil)
		case errors.Is(err, market.ErrUpstream):
			h.log.WithError(err).WithField("symbol", stock.Symbol).Warn("Quote provider failed")
			ErrorResponse(c, http.StatusServiceUnavailable, "Failed to fetch stock data", nil)
		default:
			internalError(c, h.log, "GetQuote", err)
		}
		return
	}

	SuccessResponse(c, http.StatusOK, msgLoaded, QuoteDto{
		StockID:  stock.ID,
		Symbol:   quote.Symbol,
		Price:    quote.Price,
		Purchase: stock.Purchase,
		Change:   quote.Price.Sub(stock.Purchase),
		Cached:   quote.Cached,
	})
}
