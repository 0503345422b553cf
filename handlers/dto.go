package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"stockfolio/models"
	"stockfolio/repository"
)

type StockDto struct {
	ID          uint            `json:"id"`
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	Purchase    decimal.Decimal `json:"purchase"`
	LastDiv     decimal.Decimal `json:"lastDiv"`
	Industry    string          `json:"industry"`
	MarketCap   int64           `json:"marketCap"`
	Comments    []CommentDto    `json:"comments"`
}

type CommentDto struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedOn time.Time `json:"createdOn"`
	CreatedBy string    `json:"createdBy"`
	StockID   uint      `json:"stockId"`
}

// StockRequest is the body of both create and update. Update overwrites every
// field.
type StockRequest struct {
	Symbol      string          `json:"symbol" binding:"required,max=10"`
	CompanyName string          `json:"companyName" binding:"required,max=100"`
	Purchase    decimal.Decimal `json:"purchase" binding:"required,gt=0"`
	LastDiv     decimal.Decimal `json:"lastDiv" binding:"gte=0,lte=100"`
	Industry    string          `json:"industry" binding:"max=50"`
	MarketCap   int64           `json:"marketCap" binding:"gte=0"`
}

type CommentRequest struct {
	Title   string `json:"title" binding:"required,min=5,max=280"`
	Content string `json:"content" binding:"required,min=5,max=280"`
}

type StockQueryParams struct {
	CompanyName  string `form:"CompanyName"`
	Symbol       string `form:"Symbol"`
	SortBy       string `form:"SortBy"`
	IsDescending bool   `form:"IsDescending"`
	PageNumber   int    `form:"PageNumber,default=1"`
	PageSize     int    `form:"PageSize,default=20"`
}

type idParam struct {
	ID uint `uri:"id" binding:"required"`
}

type stockIDParam struct {
	StockID uint `uri:"stockId" binding:"required"`
}

type symbolParam struct {
	Symbol string `form:"symbol" binding:"required"`
}

func toStockDto(s *models.Stock) StockDto {
	comments := make([]CommentDto, 0, len(s.Comments))
	for i := range s.Comments {
		comments = append(comments, toCommentDto(&s.Comments[i]))
	}
	return StockDto{
		ID:          s.ID,
		Symbol:      s.Symbol,
		CompanyName: s.CompanyName,
		Purchase:    s.Purchase,
		LastDiv:     s.LastDiv,
		Industry:    s.Industry,
		MarketCap:   s.MarketCap,
		Comments:    comments,
	}
}

func toStockDtos(stocks []models.Stock) []StockDto {
	out := make([]StockDto, 0, len(stocks))
	for i := range stocks {
		out = append(out, toStockDto(&stocks[i]))
	}
	return out
}

func toCommentDto(c *models.Comment) CommentDto {
	return CommentDto{
		ID:        c.ID,
		Title:     c.Title,
		Content:   c.Content,
		CreatedOn: c.CreatedOn,
		CreatedBy: c.User.UserName,
		StockID:   c.StockID,
	}
}

func toCommentDtos(comments []models.Comment) []CommentDto {
	out := make([]CommentDto, 0, len(comments))
	for i := range comments {
		out = append(out, toCommentDto(&comments[i]))
	}
	return out
}

func (r StockRequest) toModel() *models.Stock {
	return &models.Stock{
		Symbol:      r.Symbol,
		CompanyName: r.CompanyName,
		Purchase:    r.Purchase,
		LastDiv:     r.LastDiv,
		Industry:    r.Industry,
		MarketCap:   r.MarketCap,
	}
}

func (r StockRequest) toUpdate() repository.StockUpdate {
	return repository.StockUpdate{
		Symbol:      r.Symbol,
		CompanyName: r.CompanyName,
		Purchase:    r.Purchase,
		LastDiv:     r.LastDiv,
		Industry:    r.Industry,
		MarketCap:   r.MarketCap,
	}
}

func (p StockQueryParams) toQuery() repository.StockQuery {
	return repository.StockQuery{
		CompanyName:  p.CompanyName,
		Symbol:       p.Symbol,
		SortBy:       p.SortBy,
		IsDescending: p.IsDescending,
		PageNumber:   p.PageNumber,
		PageSize:     p.PageSize,
	}
}
