package model

// Ingredient is a user-owned recipe ingredient.
type Ingredient struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"size:255;not null"`
	UserID uint   `json:"-" gorm:"not null;index"`
	User   *User  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// NewIngredient builds an unsaved ingredient for the given owner.
func NewIngredient(ownerID uint, name string) Ingredient {
	return Ingredient{Name: name, UserID: ownerID}
}

// Attribute is the set of owned, named records that can be attached to a recipe.
type Attribute interface {
	Tag | Ingredient
}
