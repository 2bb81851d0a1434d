package v1

import (
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"14.03" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount for the transaction

	Type         models.TransactionType `json:"type" example:"EXPENSE"`                 // INCOME or EXPENSE
	CategoryName string                 `json:"categoryName" example:"Groceries"`       // Name of the category, created on first use
	Description  string                 `json:"description" example:"Lunch" default:""` // A note about the transaction
	Date         types.Date             `json:"date" example:"2024-01-05"`              // Date of the transaction. Defaults to today
}

// model returns the database resource for the API representation of the
// editable fields. The category reference is resolved separately.
func (editable TransactionEditable) model(userID, categoryID uuid.UUID) models.Transaction {
	return models.Transaction{
		Amount:      editable.Amount,
		Type:        editable.Type,
		Description: editable.Description,
		Date:        editable.Date.Time(),
		CategoryID:  categoryID,
		UserID:      userID,
	}
}

// Category is the representation of a Category in API v1.
type Category struct {
	ID   uuid.UUID `json:"id" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the category
	Name string    `json:"name" example:"Groceries"`                          // Name of the category
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	CategoryID uuid.UUID `json:"categoryId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the category
	Category   Category  `json:"category"`                                                  // The category for display
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(model models.Transaction) Transaction {
	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Amount:       model.Amount,
			Type:         model.Type,
			CategoryName: model.Category.Name,
			Description:  model.Description,
			Date:         types.Date(model.Date),
		},
		CategoryID: model.CategoryID,
		Category: Category{
			ID:   model.CategoryID,
			Name: model.Category.Name,
		},
	}
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  *Transaction `json:"data"`                                                          // The Transaction data
}

type TransactionListResponse struct {
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []Transaction `json:"data"`                                                          // List of transactions
}
