package assistant

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/shopspring/decimal"
)

// filterArgs are the optional filters shared by all read tools.
type filterArgs struct {
	CategoryID string `json:"categoryId"`
	Type       string `json:"type"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

// writeArgs are the fields for creating and updating transactions. All
// fields are pointers so that an omitted field can be told apart from
// an explicit zero value.
type writeArgs struct {
	ID           string   `json:"id"`
	Amount       *float64 `json:"amount"`
	Type         *string  `json:"type"`
	CategoryName *string  `json:"categoryName"`
	Description  *string  `json:"description"`
	Date         *string  `json:"date"`
}

var filterProperties = map[string]jsonschema.Definition{
	"categoryId": {
		Type:        jsonschema.String,
		Description: "Filter by category ID",
	},
	"type": {
		Type:        jsonschema.String,
		Enum:        []string{"INCOME", "EXPENSE"},
		Description: "Filter by transaction type",
	},
	"startDate": {
		Type:        jsonschema.String,
		Description: "Filter transactions from this date (ISO format: YYYY-MM-DD)",
	},
	"endDate": {
		Type:        jsonschema.String,
		Description: "Filter transactions until this date (ISO format: YYYY-MM-DD)",
	},
}

// rankingProperties leaves out the type filter, the category ranking is
// always about expenses.
var rankingProperties = map[string]jsonschema.Definition{
	"categoryId": filterProperties["categoryId"],
	"startDate":  filterProperties["startDate"],
	"endDate":    filterProperties["endDate"],
}

// tools returns the function declarations advertised to the model. The
// schemas mirror the request types of API v1.
func tools() []openai.Tool {
	declarations := []openai.FunctionDefinition{
		{
			Name:        "createTransaction",
			Description: "Create a new income or expense transaction. Use this when the user wants to add a new transaction.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"amount": {
						Type:        jsonschema.Number,
						Description: "The transaction amount (must be positive)",
					},
					"type": {
						Type:        jsonschema.String,
						Enum:        []string{"INCOME", "EXPENSE"},
						Description: "The type of transaction - INCOME for money received, EXPENSE for money spent",
					},
					"categoryName": {
						Type:        jsonschema.String,
						Description: "The name of the category for this transaction (e.g. 'Food', 'Salary', 'Rent')",
					},
					"description": {
						Type:        jsonschema.String,
						Description: "Optional description or note for the transaction",
					},
					"date": {
						Type:        jsonschema.String,
						Description: "Optional date in ISO format (YYYY-MM-DD). If not provided, uses today's date",
					},
				},
				Required: []string{"amount", "type", "categoryName"},
			},
		},
		{
			Name:        "updateTransaction",
			Description: "Update an existing transaction. Use this when the user wants to modify a transaction.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"id": {
						Type:        jsonschema.String,
						Description: "The unique ID of the transaction to update",
					},
					"amount": {
						Type:        jsonschema.Number,
						Description: "The new transaction amount",
					},
					"type": {
						Type:        jsonschema.String,
						Enum:        []string{"INCOME", "EXPENSE"},
						Description: "The new transaction type",
					},
					"categoryName": {
						Type:        jsonschema.String,
						Description: "The new category name",
					},
					"description": {
						Type:        jsonschema.String,
						Description: "The new description",
					},
					"date": {
						Type:        jsonschema.String,
						Description: "The new date in ISO format (YYYY-MM-DD)",
					},
				},
				Required: []string{"id"},
			},
		},
		{
			Name:        "deleteTransaction",
			Description: "Delete a transaction. Use this when the user wants to remove a transaction.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"id": {
						Type:        jsonschema.String,
						Description: "The unique ID of the transaction to delete",
					},
				},
				Required: []string{"id"},
			},
		},
		{
			Name:        "getTransactions",
			Description: "Get a list of transactions with optional filters. Use this when the user wants to view or search for transactions.",
			Parameters: jsonschema.Definition{
				Type:       jsonschema.Object,
				Properties: filterProperties,
			},
		},
		{
			Name:        "getTransactionOverview",
			Description: "Get financial overview including total income, expenses, and balance. Use this when the user asks about their financial summary or balance.",
			Parameters: jsonschema.Definition{
				Type:       jsonschema.Object,
				Properties: filterProperties,
			},
		},
		{
			Name:        "getMonthlyFinancials",
			Description: "Get monthly breakdown of income and expenses. Use this when the user asks about monthly trends or wants to see data by month.",
			Parameters: jsonschema.Definition{
				Type:       jsonschema.Object,
				Properties: filterProperties,
			},
		},
		{
			Name:        "getCategoryExpenses",
			Description: "Get expenses broken down by category. Use this when the user wants to see spending by category or category analysis.",
			Parameters: jsonschema.Definition{
				Type:       jsonschema.Object,
				Properties: rankingProperties,
			},
		},
		{
			Name:        "getCategories",
			Description: "Get list of available transaction categories. Use this when the user wants to see what categories exist or needs to know category names.",
			Parameters: jsonschema.Definition{
				Type:       jsonschema.Object,
				Properties: filterProperties,
			},
		},
	}

	list := make([]openai.Tool, 0, len(declarations))
	for i := range declarations {
		list = append(list, openai.Tool{
			Type:     openai.ToolTypeFunction,
			Function: &declarations[i],
		})
	}

	return list
}

// dispatch executes a tool call for the user and encodes the result as
// JSON. Errors are reported back to the model as a payload instead of
// failing the conversation, the model can rephrase or retry.
func (a *Assistant) dispatch(name string, userID uuid.UUID, args []byte) string {
	result, err := a.execute(name, userID, args)
	if err != nil {
		return encode(map[string]string{"error": err.Error()})
	}

	return encode(result)
}

func (a *Assistant) execute(name string, userID uuid.UUID, args []byte) (any, error) {
	switch name {
	case "createTransaction":
		return a.createTransaction(userID, args)

	case "updateTransaction":
		return a.updateTransaction(userID, args)

	case "deleteTransaction":
		return a.deleteTransaction(userID, args)

	case "getTransactions":
		return a.candidates(userID, args)

	case "getTransactionOverview":
		transactions, err := a.candidates(userID, args)
		if err != nil {
			return nil, err
		}
		return ledger.ComputeOverview(transactions), nil

	case "getMonthlyFinancials":
		transactions, err := a.candidates(userID, args)
		if err != nil {
			return nil, err
		}
		return ledger.ComputeMonthlySeries(transactions), nil

	case "getCategoryExpenses":
		filter, err := parseFilter(args)
		if err != nil {
			return nil, err
		}

		// The ranking is always about spending, a type argument
		// from the model has no effect here
		filter.Type = string(models.TypeExpense)

		transactions, err := a.load(userID, filter)
		if err != nil {
			return nil, err
		}
		return ledger.ComputeCategoryRanking(transactions), nil

	case "getCategories":
		transactions, err := a.candidates(userID, args)
		if err != nil {
			return nil, err
		}
		return ledger.DistinctCategories(transactions), nil
	}

	return nil, fmt.Errorf("unknown tool: %s", name)
}

func parseFilter(args []byte) (filterArgs, error) {
	var filter filterArgs
	err := json.Unmarshal(args, &filter)
	return filter, err
}

// candidates loads the transactions of the user matching the filter the
// model supplied.
func (a *Assistant) candidates(userID uuid.UUID, args []byte) ([]models.Transaction, error) {
	filter, err := parseFilter(args)
	if err != nil {
		return nil, err
	}

	return a.load(userID, filter)
}

func (a *Assistant) load(userID uuid.UUID, filter filterArgs) ([]models.Transaction, error) {
	modelFilter := models.TransactionFilter{
		UserID: userID,
		Type:   models.TransactionType(filter.Type),
	}

	if filter.CategoryID != "" {
		id, err := uuid.Parse(filter.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("categoryId is not a valid UUID: %s", filter.CategoryID)
		}
		modelFilter.CategoryID = id
	}

	if filter.StartDate != "" {
		date, err := types.ParseDate(filter.StartDate)
		if err != nil {
			return nil, err
		}
		modelFilter.From = date.Time()
	}

	if filter.EndDate != "" {
		date, err := types.ParseDate(filter.EndDate)
		if err != nil {
			return nil, err
		}
		modelFilter.Until = date.Time()
	}

	return models.Transactions(a.db, modelFilter)
}

func (a *Assistant) createTransaction(userID uuid.UUID, args []byte) (any, error) {
	var write writeArgs
	if err := json.Unmarshal(args, &write); err != nil {
		return nil, err
	}

	if write.Amount == nil || write.Type == nil || write.CategoryName == nil {
		return nil, fmt.Errorf("amount, type and categoryName are required")
	}

	category, err := models.ResolveCategory(a.db, userID, *write.CategoryName)
	if err != nil {
		return nil, err
	}

	transaction := models.Transaction{
		Amount:     decimal.NewFromFloat(*write.Amount),
		Type:       models.TransactionType(*write.Type),
		CategoryID: category.ID,
		UserID:     userID,
	}

	if write.Description != nil {
		transaction.Description = *write.Description
	}

	if write.Date != nil {
		date, err := types.ParseDate(*write.Date)
		if err != nil {
			return nil, err
		}
		transaction.Date = date.Time()
	}

	err = a.db.Create(&transaction).Error
	if err != nil {
		return nil, err
	}

	transaction.Category = category
	return transaction, nil
}

func (a *Assistant) updateTransaction(userID uuid.UUID, args []byte) (any, error) {
	var write writeArgs
	if err := json.Unmarshal(args, &write); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(write.ID)
	if err != nil {
		return nil, fmt.Errorf("id is not a valid UUID: %s", write.ID)
	}

	transaction, err := models.TransactionByID(a.db, id, userID)
	if err != nil {
		return nil, err
	}

	if write.Amount != nil {
		transaction.Amount = decimal.NewFromFloat(*write.Amount)
	}

	if write.Type != nil {
		transaction.Type = models.TransactionType(*write.Type)
	}

	if write.Description != nil {
		transaction.Description = *write.Description
	}

	if write.Date != nil {
		date, err := types.ParseDate(*write.Date)
		if err != nil {
			return nil, err
		}
		transaction.Date = date.Time()
	}

	if write.CategoryName != nil {
		category, err := models.ResolveCategory(a.db, userID, *write.CategoryName)
		if err != nil {
			return nil, err
		}
		transaction.CategoryID = category.ID
		transaction.Category = category
	}

	// Omit the associations, only the transaction row changes
	err = a.db.Omit("Category", "User").Save(&transaction).Error
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

func (a *Assistant) deleteTransaction(userID uuid.UUID, args []byte) (any, error) {
	var write writeArgs
	if err := json.Unmarshal(args, &write); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(write.ID)
	if err != nil {
		return nil, fmt.Errorf("id is not a valid UUID: %s", write.ID)
	}

	deleted, err := models.DeleteTransaction(a.db, id, userID)
	if err != nil {
		return nil, err
	}

	if !deleted {
		return nil, fmt.Errorf("%w transaction matching your query", models.ErrResourceNotFound)
	}

	return map[string]bool{"deleted": true}, nil
}

func encode(value any) string {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}

	return string(encoded)
}
