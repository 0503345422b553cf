package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"stockfolio/models"
)

// GormUserRepository implements UserRepository on GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	if db == nil {
		panic("database connection cannot be nil for GormUserRepository")
	}
	return &GormUserRepository{db: db}
}

// FindByUsername looks the user up by normalized name, roles included.
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Roles").
		Where("normalized_user_name = ?", models.Normalize(username)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find user by username '%s': %w", username, err)
	}
	return &user, nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Roles").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find user by id %d: %w", id, err)
	}
	return &user, nil
}

// CreateWithRole inserts user and its membership of roleName in one
// transaction. The normalized name and email are filled in here.
func (r *GormUserRepository) CreateWithRole(ctx context.Context, user *models.User, roleName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role models.Role
		err := tx.Where("normalized_name = ?", models.Normalize(roleName)).First(&role).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoleNotFound
			}
			return fmt.Errorf("gorm: find role '%s': %w", roleName, err)
		}

		user.NormalizedUserName = models.Normalize(user.UserName)
		user.NormalizedEmail = models.Normalize(user.Email)
		user.Roles = []models.Role{role}

		// Roles already exist; only the join row is written.
		if err := tx.Omit("Roles.*").Create(user).Error; err != nil {
			if isDuplicateEntryError(err) {
				return ErrDuplicateEntry
			}
			return fmt.Errorf("gorm: create user '%s': %w", user.UserName, err)
		}
		return nil
	})
}
