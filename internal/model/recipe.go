package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is owned by exactly one user. Tags and ingredients are linked through join tables.
type Recipe struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"-" gorm:"not null;index"`
	User        *User           `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	TimeMinutes int             `json:"time_minutes" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(5,2);not null"`
	Link        string          `json:"link" gorm:"size:255;not null;default:''"`
	Image       string          `json:"-" gorm:"size:255"` // storage key, empty until uploaded
	Tags        []Tag           `json:"tags" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE;"`
	Ingredients []Ingredient    `json:"ingredients" gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE;"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TagIDs returns the ids of the attached tags in their loaded order.
func (r *Recipe) TagIDs() []uint {
	ids := make([]uint, 0, len(r.Tags))
	for _, t := range r.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// IngredientIDs returns the ids of the attached ingredients in their loaded order.
func (r *Recipe) IngredientIDs() []uint {
	ids := make([]uint, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ids = append(ids, i.ID)
	}
	return ids
}

// All lists every model that has a table, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Token{},
		&Tag{},
		&Ingredient{},
		&Recipe{},
	}
}
