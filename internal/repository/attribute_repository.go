package repository

import (
	"context"

	"gorm.io/gorm"

	"recipeapi/internal/model"
)

// AttributeRepository persists tags or ingredients.
type AttributeRepository[T model.Attribute] interface {
	Create(ctx context.Context, item *T) error
	ListByOwner(ctx context.Context, ownerID uint) ([]T, error)
	// FindByIDs loads the rows with the given ids regardless of owner.
	FindByIDs(ctx context.Context, ids []uint) ([]T, error)
}

type attributeRepository[T model.Attribute] struct {
	db *gorm.DB
}

// NewTagRepository creates a tag repository.
func NewTagRepository(db *gorm.DB) AttributeRepository[model.Tag] {
	return &attributeRepository[model.Tag]{db: db}
}

// NewIngredientRepository creates an ingredient repository.
func NewIngredientRepository(db *gorm.DB) AttributeRepository[model.Ingredient] {
	return &attributeRepository[model.Ingredient]{db: db}
}

func (r *attributeRepository[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// ListByOwner returns the owner's rows ordered by name descending.
func (r *attributeRepository[T]) ListByOwner(ctx context.Context, ownerID uint) ([]T, error) {
	items := make([]T, 0)
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("name DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *attributeRepository[T]) FindByIDs(ctx context.Context, ids []uint) ([]T, error) {
	items := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
