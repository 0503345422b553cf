package database

import (
	"errors"
	"fmt"
	"reflect"

	"gorm.io/gorm"

	"stockfolio/models"
)

var (
	ErrInvalidBatchSize = errors.New("invalid batch size")
	ErrInvalidData      = errors.New("invalid data, expected slice")
)

// Migrate creates or updates the schema and seeds the default roles.
func Migrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Stock{},
		&models.Comment{},
		&models.Portfolio{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate tables: %w", err)
	}

	return seedRoles(db)
}

func seedRoles(db *gorm.DB) error {
	for _, name := range []string{models.RoleAdmin, models.RoleUser} {
		role := models.Role{Name: name, NormalizedName: models.Normalize(name)}
		err := db.Where(models.Role{NormalizedName: role.NormalizedName}).FirstOrCreate(&role).Error
		if err != nil {
			return fmt.Errorf("seed role %q: %w", name, err)
		}
	}
	return nil
}

// CreateInBatches inserts the slice in data in chunks of batchSize inside a
// single transaction. Either every row is written or none is.
func CreateInBatches(db *gorm.DB, data interface{}, batchSize int) error {
	if batchSize <= 0 {
		return ErrInvalidBatchSize
	}

	slice := reflect.ValueOf(data)
	if slice.Kind() != reflect.Slice {
		return ErrInvalidData
	}

	return db.Transaction(func(tx *gorm.DB) error {
		total := slice.Len()
		for i := 0; i < total; i += batchSize {
			end := i + batchSize
			if end > total {
				end = total
			}

			chunk := slice.Slice(i, end).Interface()
			if err := tx.Create(chunk).Error; err != nil {
				return fmt.Errorf("batch insert failed at rows %d-%d: %w", i, end-1, err)
			}
		}
		return nil
	})
}
