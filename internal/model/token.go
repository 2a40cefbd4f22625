package model

import "time"

// Token is the opaque credential issued to a user on login. A user has at most one.
type Token struct {
	Key       string    `json:"token" gorm:"primaryKey;size:40"`
	UserID    uint      `json:"-" gorm:"uniqueIndex;not null"`
	User      *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the token table apart from any future API key tables.
func (Token) TableName() string {
	return "auth_tokens"
}
