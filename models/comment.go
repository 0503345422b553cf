package models

import "time"

// Comment is a note left by a user on a stock. It cannot outlive either its
// stock or its author.
type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"type:varchar(280);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedOn time.Time `gorm:"autoCreateTime"`
	StockID   uint      `gorm:"not null;index"`
	UserID    uint      `gorm:"not null;index"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
}
