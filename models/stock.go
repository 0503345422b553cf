package models

import "github.com/shopspring/decimal"

type Stock struct {
	ID          uint            `gorm:"primaryKey"`
	Symbol      string          `gorm:"type:varchar(10);not null;index"`
	CompanyName string          `gorm:"type:varchar(100);not null"`
	Purchase    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LastDiv     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Industry    string          `gorm:"type:varchar(50)"`
	MarketCap   int64
	Comments    []Comment `gorm:"constraint:OnDelete:CASCADE"`
}
