package models

import "time"

// Portfolio links a user to a stock they track. The composite primary key
// keeps a (user, stock) pair unique.
type Portfolio struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false"`
	StockID   uint      `gorm:"primaryKey;autoIncrement:false;index"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	Stock     Stock     `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
