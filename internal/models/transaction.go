package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// TransactionType is the direction of a transaction from the
// perspective of the user's balance.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// TransactionTypes are all valid transaction types.
var TransactionTypes = []TransactionType{TypeIncome, TypeExpense}

// Transaction represents a single income or expense record of a user.
type Transaction struct {
	DefaultModel
	Date time.Time `json:"date" example:"2024-01-05T00:00:00Z"` // Date of the transaction. Only the day is significant

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.03" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount for the transaction

	Type        TransactionType `json:"type" example:"EXPENSE"`                                  // INCOME or EXPENSE
	Description string          `json:"description" example:"Lunch" default:""`                  // Optional free text
	CategoryID  uuid.UUID       `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the category
	Category    Category        `json:"category"`                                                // The category, preloaded for display
	UserID      uuid.UUID       `json:"userId" gorm:"index" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"` // ID of the owning user
	User        User            `json:"-"`
}

// AfterFind updates the date to use UTC as timezone, not +0000.
// See DefaultModel.AfterFind.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	err := t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave validates the transaction and sets the timezone for the
// date to UTC. A missing date defaults to the current day.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if !slices.Contains(TransactionTypes, t.Type) {
		return ErrTransactionTypeInvalid
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Description = strings.TrimSpace(t.Description)

	return nil
}

// TransactionFilter selects the candidate transactions of one user.
//
// UserID is mandatory, everything else is optional. The date bounds are
// inclusive on both sides and open when zero.
type TransactionFilter struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Type       TransactionType
	From       time.Time
	Until      time.Time
}

// Transactions returns all transactions matching the filter with their
// category preloaded, ordered by date descending.
//
// Every predicate includes the user ID, so a user can never see rows
// belonging to someone else.
func Transactions(db *gorm.DB, filter TransactionFilter) ([]Transaction, error) {
	q := db.
		Preload("Category").
		Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC").
		Where(&Transaction{
			UserID:     filter.UserID,
			CategoryID: filter.CategoryID,
			Type:       filter.Type,
		})

	if !filter.From.IsZero() {
		q = q.Where("transactions.date >= date(?)", time.Date(filter.From.Year(), filter.From.Month(), filter.From.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.Until.IsZero() {
		q = q.Where("transactions.date < date(?)", time.Date(filter.Until.Year(), filter.Until.Month(), filter.Until.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	var transactions []Transaction
	err := q.Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// TransactionByID returns the transaction scoped by (id, user).
//
// A transaction owned by someone else is reported as not found, the
// response never reveals whether the ID exists at all.
func TransactionByID(db *gorm.DB, id, userID uuid.UUID) (Transaction, error) {
	var transaction Transaction
	err := db.Preload("Category").First(&transaction, "id = ? AND user_id = ?", id, userID).Error
	return transaction, err
}

// DeleteTransaction deletes at most one transaction matching (id, user)
// and reports whether a row was removed.
//
// The ownership check is part of the delete predicate itself, not a
// separate lookup, so there is no window between check and delete.
func DeleteTransaction(db *gorm.DB, id, userID uuid.UUID) (bool, error) {
	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&Transaction{})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}
