package models

import (
	"strings"

	"gorm.io/gorm"
)

// User is an authenticated principal. All transactions and categories
// are scoped to exactly one user.
type User struct {
	DefaultModel
	Email        string `gorm:"uniqueIndex"` // The email address used for login
	PasswordHash []byte `json:"-"`           // bcrypt hash of the password
}

// BeforeSave normalizes the email address.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}
