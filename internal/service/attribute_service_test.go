package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "recipeapi/internal/errors"
	"recipeapi/internal/model"
)

func TestAttributeService_Create(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantName  string
		wantField string
	}{
		{name: "trims the name", input: "  Vegan ", wantName: "Vegan"},
		{name: "blank name", input: "   ", wantField: "This field may not be blank."},
		{name: "too long", input: strings.Repeat("a", 256), wantField: "Ensure this field has no more than 255 characters."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockAttributeRepository[model.Tag])
			if tt.wantField == "" {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Tag")).Return(nil)
			}
			svc := NewTagService(repo)

			tag, err := svc.Create(context.Background(), 4, tt.input)

			if tt.wantField != "" {
				var verr *apperrors.ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, []string{tt.wantField}, verr.Fields["name"])
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, tag.Name)
			assert.Equal(t, uint(4), tag.UserID)
			repo.AssertExpectations(t)
		})
	}
}

func TestAttributeService_IngredientCreateSetsOwner(t *testing.T) {
	repo := new(MockAttributeRepository[model.Ingredient])
	repo.On("Create", mock.Anything, mock.MatchedBy(func(i *model.Ingredient) bool {
		return i.UserID == 9 && i.Name == "Salt"
	})).Return(nil)
	svc := NewIngredientService(repo)

	item, err := svc.Create(context.Background(), 9, "Salt")
	require.NoError(t, err)
	assert.Equal(t, "Salt", item.Name)
	repo.AssertExpectations(t)
}

func TestAttributeService_List(t *testing.T) {
	repo := new(MockAttributeRepository[model.Ingredient])
	repo.On("ListByOwner", mock.Anything, uint(2)).Return([]model.Ingredient{
		{ID: 2, Name: "Salt", UserID: 2},
		{ID: 1, Name: "Kale", UserID: 2},
	}, nil)
	svc := NewIngredientService(repo)

	items, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Salt", items[0].Name)
}

func TestAttributeService_ListStoreError(t *testing.T) {
	repo := new(MockAttributeRepository[model.Tag])
	repo.On("ListByOwner", mock.Anything, uint(2)).Return(nil, errors.New("boom"))
	svc := NewTagService(repo)

	_, err := svc.List(context.Background(), 2)
	assert.Error(t, err)
}
