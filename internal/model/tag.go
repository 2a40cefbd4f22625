package model

// Tag labels recipes of a single owner.
type Tag struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"size:255;not null"`
	UserID uint   `json:"-" gorm:"not null;index"`
	User   *User  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// NewTag builds an unsaved tag for the given owner.
func NewTag(ownerID uint, name string) Tag {
	return Tag{Name: name, UserID: ownerID}
}
