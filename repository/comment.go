package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stockfolio/models"
)

// GormCommentRepository implements CommentRepository on GORM. Every comment
// it returns has its author loaded.
type GormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	if db == nil {
		panic("database connection cannot be nil for GormCommentRepository")
	}
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) List(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).Preload("User").Order("id").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("gorm: list comments: %w", err)
	}
	return comments, nil
}

func (r *GormCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find comment by id %d: %w", id, err)
	}
	return &comment, nil
}

func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return fmt.Errorf("gorm: create comment on stock %d: %w", comment.StockID, err)
	}
	if err := r.db.WithContext(ctx).Preload("User").First(comment, comment.ID).Error; err != nil {
		return fmt.Errorf("gorm: load author of comment %d: %w", comment.ID, err)
	}
	return nil
}

// Update changes title and content only.
func (r *GormCommentRepository) Update(ctx context.Context, id uint, title, content string) (*models.Comment, error) {
	comment, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Model(&models.Comment{ID: id}).
		Updates(map[string]interface{}{"title": title, "content": content}).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: update comment %d: %w", id, err)
	}
	comment.Title = title
	comment.Content = content
	return comment, nil
}

func (r *GormCommentRepository) Delete(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return nil, fmt.Errorf("gorm: delete comment %d: %w", id, err)
	}
	return comment, nil
}
