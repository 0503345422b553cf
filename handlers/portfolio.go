package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"stockfolio/metrics"
	"stockfolio/repository"
)

type PortfolioHandler struct {
	portfolios repository.PortfolioRepository
	stocks     repository.StockRepository
	users      UserResolver
	metrics    *metrics.Metrics
	log        logrus.FieldLogger
}

func NewPortfolioHandler(portfolios repository.PortfolioRepository, stocks repository.StockRepository,
	users UserResolver, m *metrics.Metrics, log logrus.FieldLogger) *PortfolioHandler {
	return &PortfolioHandler{portfolios: portfolios, stocks: stocks, users: users, metrics: m, log: log}
}

func (h *PortfolioHandler) List(c *gin.Context) {
	user, ok := currentUser(c, h.users, h.log)
	if !ok {
		return
	}

	stocks, err := h.portfolios.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		internalError(c, h.log, "ListPortfolio", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Portfolio", toStockDtos(stocks))
}

// Add puts the stock with the given symbol in the caller's portfolio. The
// symbol lookup is exact.
func (h *PortfolioHandler) Add(c *gin.Context) {
	var q symbolParam
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	user, ok := currentUser(c, h.users, h.log)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	stock, err := h.stocks.GetBySymbol(ctx, q.Symbol)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusBadRequest, "Stock not found", nil)
			return
		}
		internalError(c, h.log, "AddPortfolio", err)
		return
	}

	if err := h.portfolios.Add(ctx, user.ID, stock.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusBadRequest, "Stock not found", nil)
			return
		}
		if errors.Is(err, repository.ErrDuplicateEntry) {
			ErrorResponse(c, http.StatusBadRequest, "Cannot add same stock to portfolio", nil)
			return
		}
		internalError(c, h.log, "AddPortfolio", err)
		return
	}

	h.metrics.IncrementPortfolioAdded()
	h.log.WithFields(logrus.Fields{"user_id": user.ID, "symbol": stock.Symbol}).Info("Stock added to portfolio")
	SuccessResponse(c, http.StatusOK, "Portfolio created", toStockDto(stock))
}

// Remove drops the stock from the caller's portfolio, matching the symbol
// without regard to case.
func (h *PortfolioHandler) Remove(c *gin.Context) {
	var q symbolParam
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	user, ok := currentUser(c, h.users, h.log)
	if !ok {
		return
	}

	if err := h.portfolios.Remove(c.Request.Context(), user.ID, q.Symbol); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusBadRequest, "Stock not in your portfolio", nil)
			return
		}
		internalError(c, h.log, "RemovePortfolio", err)
		return
	}

	h.metrics.IncrementPortfolioRemoved()
	SuccessResponse(c, http.StatusOK, "Portfolio deleted", nil)
}
