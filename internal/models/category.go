package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups the transactions of a single user. The (user, name)
// pair is the natural key: categories are created implicitly the first
// time a transaction references the name and are never renamed or
// deleted afterwards.
type Category struct {
	DefaultModel
	Name   string    `json:"name" gorm:"uniqueIndex:category_user_name,priority:2" example:"Groceries"`                              // Name of the category
	UserID uuid.UUID `json:"userId" gorm:"uniqueIndex:category_user_name,priority:1" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the user the category belongs to
	User   User      `json:"-"`
}

// BeforeSave trims whitespace from the name.
func (category *Category) BeforeSave(_ *gorm.DB) error {
	category.Name = strings.TrimSpace(category.Name)
	return nil
}

// ResolveCategory returns the category with this name for the user,
// creating it on first use.
//
// Concurrent resolutions of an unseen name race on the insert. The
// unique index on (user_id, name) guarantees only one of them creates a
// row; the loser sees ErrCategoryNameNotUnique and reads the winner's
// row instead. The caller never observes the conflict.
func ResolveCategory(db *gorm.DB, userID uuid.UUID, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrCategoryNameEmpty
	}

	var category Category
	err := db.Where(&Category{UserID: userID, Name: name}).First(&category).Error
	if err == nil {
		return category, nil
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return Category{}, err
	}

	category = Category{UserID: userID, Name: name}
	err = db.Create(&category).Error
	if err == nil {
		return category, nil
	}

	if !errors.Is(err, ErrCategoryNameNotUnique) {
		return Category{}, err
	}

	// Another request created the category first, return their row
	err = db.Where(&Category{UserID: userID, Name: name}).First(&category).Error
	return category, err
}
