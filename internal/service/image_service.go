package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	apperrors "recipeapi/internal/errors"
	"recipeapi/internal/model"
	"recipeapi/internal/repository"
	"recipeapi/internal/storage"
)

const invalidImageMessage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."

// ImageService attaches uploaded images to recipes.
type ImageService interface {
	UploadRecipeImage(ctx context.Context, ownerID, recipeID uint, file io.Reader) (*model.Recipe, error)
	URL(key string) string
}

type imageService struct {
	recipes  RecipeService
	repo     repository.RecipeRepository
	store    storage.ImageStore
	maxBytes int64
	log      *zap.Logger
}

// NewImageService creates a new image service.
func NewImageService(
	recipes RecipeService,
	repo repository.RecipeRepository,
	store storage.ImageStore,
	maxBytes int64,
	log *zap.Logger,
) ImageService {
	return &imageService{
		recipes:  recipes,
		repo:     repo,
		store:    store,
		maxBytes: maxBytes,
		log:      log,
	}
}

// UploadRecipeImage validates file as a raster image, stores it under the recipe's prefix
// and points the recipe at it. Nothing changes when validation fails.
func (s *imageService) UploadRecipeImage(ctx context.Context, ownerID, recipeID uint, file io.Reader) (*model.Recipe, error) {
	recipe, err := s.recipes.Get(ctx, ownerID, recipeID)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(file, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, apperrors.NewValidationError("image", fmt.Sprintf("Ensure the file is no larger than %d bytes.", s.maxBytes))
	}

	contentType, ext, verr := inspectImage(data)
	if verr != nil {
		return nil, verr
	}

	key := ImageKey(recipe.ID, ext)
	if err := s.store.Save(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	if err := s.repo.UpdateImage(ctx, recipe.ID, key); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.Error("remove orphaned image failed", zap.String("key", key), zap.Error(delErr))
		}
		return nil, fmt.Errorf("update recipe image: %w", err)
	}

	previous := recipe.Image
	recipe.Image = key
	if previous != "" && previous != key {
		if err := s.store.Delete(ctx, previous); err != nil {
			s.log.Warn("delete replaced image failed", zap.Uint("recipe_id", recipe.ID), zap.String("key", previous), zap.Error(err))
		}
	}

	s.log.Info("recipe image uploaded", zap.Uint("recipe_id", recipe.ID), zap.String("key", key), zap.Int("bytes", len(data)))
	return recipe, nil
}

func (s *imageService) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.store.URL(key)
}

// ImageKey builds a collision free storage key inside the recipe's own prefix.
func ImageKey(recipeID uint, ext string) string {
	return fmt.Sprintf("recipe/%d/%s%s", recipeID, uuid.NewString(), ext)
}

// inspectImage decodes data fully and reports its content type and file extension.
func inspectImage(data []byte) (contentType, ext string, verr *apperrors.ValidationError) {
	if len(data) == 0 {
		return "", "", apperrors.NewValidationError("image", "The submitted file is empty.")
	}
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return "", "", apperrors.NewValidationError("image", invalidImageMessage)
	}

	mt := mimetype.Detect(data)
	ext = mt.Extension()
	if ext == "" {
		ext = ".img"
	}
	return mt.String(), ext, nil
}
