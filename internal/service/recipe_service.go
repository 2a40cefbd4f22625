package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "recipeapi/internal/errors"
	"recipeapi/internal/model"
	"recipeapi/internal/repository"
	"recipeapi/internal/storage"
)

var maxPrice = decimal.NewFromInt(1000) // decimal(5,2)

// RecipeInput carries the writable recipe fields; nil means "not sent".
type RecipeInput struct {
	Title       *string
	TimeMinutes *int
	Price       *decimal.Decimal
	Link        *string
	Tags        *[]uint
	Ingredients *[]uint
}

// RecipeService manages the caller's recipes.
type RecipeService interface {
	List(ctx context.Context, ownerID uint) ([]model.Recipe, error)
	Get(ctx context.Context, ownerID, id uint) (*model.Recipe, error)
	Create(ctx context.Context, ownerID uint, in RecipeInput) (*model.Recipe, error)
	// Update replaces every writable field when partial is false, and only the sent ones otherwise.
	Update(ctx context.Context, ownerID, id uint, in RecipeInput, partial bool) (*model.Recipe, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

type recipeService struct {
	recipes     repository.RecipeRepository
	tags        repository.AttributeRepository[model.Tag]
	ingredients repository.AttributeRepository[model.Ingredient]
	images      storage.ImageStore
	log         *zap.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(
	recipes repository.RecipeRepository,
	tags repository.AttributeRepository[model.Tag],
	ingredients repository.AttributeRepository[model.Ingredient],
	images storage.ImageStore,
	log *zap.Logger,
) RecipeService {
	return &recipeService{
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
		images:      images,
		log:         log,
	}
}

func (s *recipeService) List(ctx context.Context, ownerID uint) ([]model.Recipe, error) {
	recipes, err := s.recipes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

func (s *recipeService) Get(ctx context.Context, ownerID, id uint) (*model.Recipe, error) {
	recipe, err := s.recipes.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return recipe, nil
}

func (s *recipeService) Create(ctx context.Context, ownerID uint, in RecipeInput) (*model.Recipe, error) {
	recipe := &model.Recipe{UserID: ownerID}
	if _, err := s.apply(ctx, recipe, in, false); err != nil {
		return nil, err
	}

	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return s.Get(ctx, ownerID, recipe.ID)
}

func (s *recipeService) Update(ctx context.Context, ownerID, id uint, in RecipeInput, partial bool) (*model.Recipe, error) {
	recipe, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	mask, err := s.apply(ctx, recipe, in, partial)
	if err != nil {
		return nil, err
	}

	if err := s.recipes.Update(ctx, recipe, mask); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return s.Get(ctx, ownerID, id)
}

func (s *recipeService) Delete(ctx context.Context, ownerID, id uint) error {
	recipe, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.recipes.Delete(ctx, recipe); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}

	if recipe.Image != "" {
		if err := s.images.Delete(ctx, recipe.Image); err != nil {
			s.log.Warn("delete recipe image failed", zap.Uint("recipe_id", id), zap.String("key", recipe.Image), zap.Error(err))
		}
	}
	return nil
}

// apply validates in and copies it onto recipe. With partial false, missing required
// fields are errors and missing optional fields are reset.
func (s *recipeService) apply(ctx context.Context, recipe *model.Recipe, in RecipeInput, partial bool) (repository.AssociationMask, error) {
	verr := &apperrors.ValidationError{}
	required := func(field string) { verr.Add(field, "This field is required.") }

	switch {
	case in.Title != nil:
		title := strings.TrimSpace(*in.Title)
		if err := validateName("title", title); err != nil {
			verr.Add("title", err.Fields["title"][0])
		} else {
			recipe.Title = title
		}
	case !partial:
		required("title")
	}

	switch {
	case in.TimeMinutes != nil:
		if *in.TimeMinutes < 0 {
			verr.Add("time_minutes", "Ensure this value is greater than or equal to 0.")
		} else {
			recipe.TimeMinutes = *in.TimeMinutes
		}
	case !partial:
		required("time_minutes")
	}

	switch {
	case in.Price != nil:
		if msg := validatePrice(*in.Price); msg != "" {
			verr.Add("price", msg)
		} else {
			recipe.Price = *in.Price
		}
	case !partial:
		required("price")
	}

	switch {
	case in.Link != nil:
		link := strings.TrimSpace(*in.Link)
		if utf8.RuneCountInString(link) > maxNameLength {
			verr.Add("link", fmt.Sprintf("Ensure this field has no more than %d characters.", maxNameLength))
		} else {
			recipe.Link = link
		}
	case !partial:
		recipe.Link = ""
	}

	mask := repository.AssociationMask{
		Tags:        !partial || in.Tags != nil,
		Ingredients: !partial || in.Ingredients != nil,
	}

	if mask.Tags {
		tags, err := resolveAttributes(ctx, s.tags, "tags", in.Tags, verr, func(t model.Tag) uint { return t.ID })
		if err != nil {
			return mask, err
		}
		recipe.Tags = tags
	}
	if mask.Ingredients {
		ingredients, err := resolveAttributes(ctx, s.ingredients, "ingredients", in.Ingredients, verr, func(i model.Ingredient) uint { return i.ID })
		if err != nil {
			return mask, err
		}
		recipe.Ingredients = ingredients
	}

	if !verr.Empty() {
		return mask, verr
	}
	return mask, nil
}

// resolveAttributes loads the rows for ids. Ownership is not checked: any existing id may be attached.
func resolveAttributes[T model.Attribute](
	ctx context.Context,
	repo repository.AttributeRepository[T],
	field string,
	ids *[]uint,
	verr *apperrors.ValidationError,
	idOf func(T) uint,
) ([]T, error) {
	if ids == nil || len(*ids) == 0 {
		return []T{}, nil
	}

	unique := dedupe(*ids)
	items, err := repo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", field, err)
	}

	found := make(map[uint]bool, len(items))
	for _, item := range items {
		found[idOf(item)] = true
	}
	for _, id := range unique {
		if !found[id] {
			verr.Add(field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
		}
	}
	return items, nil
}

func validatePrice(price decimal.Decimal) string {
	if price.IsNegative() {
		return "Ensure this value is greater than or equal to 0."
	}
	if !price.Equal(price.Round(2)) {
		return "Ensure that there are no more than 2 decimal places."
	}
	if price.GreaterThanOrEqual(maxPrice) {
		return "Ensure that there are no more than 5 digits in total."
	}
	return ""
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
