package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"stockfolio/repository"
)

const (
	msgLoaded   = "Data loaded successfully"
	msgNotFound = "Data not found"
	msgAdded    = "Data added successfully"
	msgUpdated  = "Data updated successfully"
	msgDeleted  = "Data deleted successfully"
)

type StockHandler struct {
	stocks repository.StockRepository
	log    logrus.FieldLogger
}

func NewStockHandler(stocks repository.StockRepository, log logrus.FieldLogger) *StockHandler {
	return &StockHandler{stocks: stocks, log: log}
}

// List answers 404 when the page is empty.
func (h *StockHandler) List(c *gin.Context) {
	var params StockQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}

	stocks, err := h.stocks.List(c.Request.Context(), params.toQuery())
	if err != nil {
		internalError(c, h.log, "ListStocks", err)
		return
	}
	if len(stocks) == 0 {
		ErrorResponse(c, http.StatusNotFound, msgNotFound, nil)
		return
	}
	SuccessResponse(c, http.StatusOK, msgLoaded, toStockDtos(stocks))
}

func (h *StockHandler) Get(c *gin.Context) {
	var p idParam
	if err := c.ShouldBindUri(&p); err != nil {
		badRequest(c, err)
		return
	}

	stock, err := h.stocks.GetByID(c.Request.Context(), p.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, msgNotFound, nil)
			return
		}
		internalError(c, h.log, "GetStock", err)
		return
	}
	SuccessResponse(c, http.StatusOK, msgLoaded, toStockDto(stock))
}

func (h *StockHandler) Create(c *gin.Context) {
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	stock := req.toModel()
	if err := h.stocks.Create(c.Request.Context(), stock); err != nil {
		internalError(c, h.log, "CreateStock", err)
		return
	}
	SuccessResponse(c, http.StatusOK, msgAdded, toStockDto(stock))
}

func (h *StockHandler) Update(c *gin.Context) {
	var p idParam
	if err := c.ShouldBindUri(&p); err != nil {
		badRequest(c, err)
		return
	}
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	stock, err := h.stocks.Update(c.Request.Context(), p.ID, req.toUpdate())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, msgNotFound, nil)
			return
		}
		internalError(c, h.log, "UpdateStock", err)
		return
	}
	SuccessResponse(c, http.StatusOK, msgUpdated, toStockDto(stock))
}

// Delete answers 204 with no body on success.
func (h *StockHandler) Delete(c *gin.Context) {
	var p idParam
	if err := c.ShouldBindUri(&p); err != nil {
		badRequest(c, err)
		return
	}

	if _, err := h.stocks.Delete(c.Request.Context(), p.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ErrorResponse(c, http.StatusNotFound, msgNotFound, nil)
			return
		}
		internalError(c, h.log, "DeleteStock", err)
		return
	}
	c.Status(http.StatusNoContent)
}
