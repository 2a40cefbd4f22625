package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipeapi/internal/model"
)

// recipeWritableColumns are the columns a recipe update may write. The image column is owned
// by UpdateImage so a concurrent upload is never overwritten.
var recipeWritableColumns = []string{"title", "time_minutes", "price", "link", "updated_at"}

// AssociationMask selects which many-to-many sets a write replaces.
type AssociationMask struct {
	Tags        bool
	Ingredients bool
}

// RecipeRepository defines recipe persistence operations. Every read is scoped to an owner.
type RecipeRepository interface {
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Recipe, error)
	FindByIDForOwner(ctx context.Context, ownerID, id uint) (*model.Recipe, error)
	// Create inserts the recipe together with its tag and ingredient links.
	Create(ctx context.Context, recipe *model.Recipe) error
	// Update saves the writable scalar fields and replaces the association sets selected by mask.
	Update(ctx context.Context, recipe *model.Recipe, mask AssociationMask) error
	UpdateImage(ctx context.Context, id uint, image string) error
	Delete(ctx context.Context, recipe *model.Recipe) error
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RecipeRepository) error) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) withAttributes(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("ingredients.id") })
}

// ListByOwner returns the owner's recipes in creation order.
func (r *recipeRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Recipe, error) {
	recipes := make([]model.Recipe, 0)
	if err := r.withAttributes(ctx).
		Where("user_id = ?", ownerID).
		Order("id").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// FindByIDForOwner returns gorm.ErrRecordNotFound both for unknown ids and for other owners' recipes.
func (r *recipeRepository) FindByIDForOwner(ctx context.Context, ownerID, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.withAttributes(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.WithTransaction(ctx, func(ctx context.Context, repo RecipeRepository) error {
		tx := repo.(*recipeRepository).db
		if err := tx.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return replaceAssociations(ctx, tx, recipe, AssociationMask{Tags: true, Ingredients: true})
	})
}

func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe, mask AssociationMask) error {
	return r.WithTransaction(ctx, func(ctx context.Context, repo RecipeRepository) error {
		tx := repo.(*recipeRepository).db
		if err := tx.WithContext(ctx).Model(recipe).
			Select(recipeWritableColumns).
			Updates(recipe).Error; err != nil {
			return err
		}
		return replaceAssociations(ctx, tx, recipe, mask)
	})
}

// UpdateImage sets only the image column.
func (r *recipeRepository) UpdateImage(ctx context.Context, id uint, image string) error {
	return r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("id = ?", id).
		Update("image", image).Error
}

// Delete removes the recipe and its join rows; the tags and ingredients themselves stay.
func (r *recipeRepository) Delete(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(recipe).Error
}

// WithTransaction executes a function within a database transaction.
func (r *recipeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RecipeRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &recipeRepository{db: tx}
		return fn(ctx, txRepo)
	})
}

func replaceAssociations(ctx context.Context, tx *gorm.DB, recipe *model.Recipe, mask AssociationMask) error {
	if mask.Tags {
		tags := recipe.Tags
		assoc := tx.WithContext(ctx).Model(recipe).Association("Tags")
		var err error
		if len(tags) == 0 {
			err = assoc.Clear()
		} else {
			err = assoc.Replace(tags)
		}
		if err != nil {
			return err
		}
		recipe.Tags = tags
	}
	if mask.Ingredients {
		ingredients := recipe.Ingredients
		assoc := tx.WithContext(ctx).Model(recipe).Association("Ingredients")
		var err error
		if len(ingredients) == 0 {
			err = assoc.Clear()
		} else {
			err = assoc.Replace(ingredients)
		}
		if err != nil {
			return err
		}
		recipe.Ingredients = ingredients
	}
	return nil
}
