package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "recipeapi/internal/errors"
	"recipeapi/internal/model"
	"recipeapi/internal/repository"
)

const maxNameLength = 255

// AttributeService lists and creates the caller's tags or ingredients.
type AttributeService[T model.Attribute] interface {
	List(ctx context.Context, ownerID uint) ([]T, error)
	Create(ctx context.Context, ownerID uint, name string) (*T, error)
}

type attributeService[T model.Attribute] struct {
	repo  repository.AttributeRepository[T]
	build func(ownerID uint, name string) T
}

// NewTagService creates the tag service.
func NewTagService(repo repository.AttributeRepository[model.Tag]) AttributeService[model.Tag] {
	return &attributeService[model.Tag]{repo: repo, build: model.NewTag}
}

// NewIngredientService creates the ingredient service.
func NewIngredientService(repo repository.AttributeRepository[model.Ingredient]) AttributeService[model.Ingredient] {
	return &attributeService[model.Ingredient]{repo: repo, build: model.NewIngredient}
}

func (s *attributeService[T]) List(ctx context.Context, ownerID uint) ([]T, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return items, nil
}

func (s *attributeService[T]) Create(ctx context.Context, ownerID uint, name string) (*T, error) {
	name = strings.TrimSpace(name)
	if err := validateName("name", name); err != nil {
		return nil, err
	}

	item := s.build(ownerID, name)
	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	return &item, nil
}

func validateName(field, name string) *apperrors.ValidationError {
	if name == "" {
		return apperrors.NewValidationError(field, "This field may not be blank.")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return apperrors.NewValidationError(field, fmt.Sprintf("Ensure this field has no more than %d characters.", maxNameLength))
	}
	return nil
}
