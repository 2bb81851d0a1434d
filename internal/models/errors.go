package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Validation errors for transaction writes
var (
	ErrAmountNotPositive      = errors.New("the transaction amount must be positive")
	ErrTransactionTypeInvalid = errors.New("the transaction type must be INCOME or EXPENSE")
	ErrCategoryNameEmpty      = errors.New("the category name must not be empty")
)

// Uniqueness violations surfaced by the database
var (
	ErrCategoryNameNotUnique = errors.New("the category name is already in use for this user")
	ErrEmailNotUnique        = errors.New("a user with this email address already exists")
)
