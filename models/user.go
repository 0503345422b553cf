package models

import (
	"strings"
	"time"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type User struct {
	ID                 uint   `gorm:"primaryKey"`
	UserName           string `gorm:"type:varchar(256);not null"`
	NormalizedUserName string `gorm:"type:varchar(256);uniqueIndex;not null"`
	Email              string `gorm:"type:varchar(256)"`
	NormalizedEmail    string `gorm:"type:varchar(256);index"`
	PasswordHash       string `gorm:"type:text;not null"`
	Roles              []Role `gorm:"many2many:user_roles;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Role struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"type:varchar(256);not null"`
	NormalizedName string `gorm:"type:varchar(256);uniqueIndex;not null"`
}

// Normalize lower-cases a user name, email or role name for lookups.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RoleNames returns the names of the roles attached to u.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
