package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCreateTransaction() {
	session := suite.signup("jane@example.com")

	transaction := suite.createTestTransaction(session.Token, v1.TransactionEditable{
		Amount:       decimal.NewFromFloat(14.03),
		Type:         models.TypeExpense,
		CategoryName: "Groceries",
		Description:  "Lunch",
	})

	assert.True(suite.T(), transaction.Amount.Equal(decimal.NewFromFloat(14.03)))
	assert.Equal(suite.T(), models.TypeExpense, transaction.Type)
	assert.Equal(suite.T(), "Groceries", transaction.Category.Name)
	assert.Equal(suite.T(), transaction.Category.ID, transaction.CategoryID)
	assert.Equal(suite.T(), "Lunch", transaction.Description)
}

func (suite *TestSuiteStandard) TestCreateTransactionReusesCategory() {
	session := suite.signup("jane@example.com")

	first := suite.createTestTransaction(session.Token, v1.TransactionEditable{
		Amount:       decimal.NewFromFloat(10),
		Type:         models.TypeExpense,
		CategoryName: "Food",
	})

	second := suite.createTestTransaction(session.Token, v1.TransactionEditable{
		Amount:       decimal.NewFromFloat(20),
		Type:         models.TypeExpense,
		CategoryName: "Food",
	})

	assert.Equal(suite.T(), first.CategoryID, second.CategoryID, "The category must be reused, not duplicated")
}

func (suite *TestSuiteStandard) TestCreateTransactionInvalid() {
	session := suite.signup("jane@example.com")

	tests := []struct {
		name string
		body any
	}{
		{"empty body", ""},
		{"zero amount", map[string]any{"amount": 0, "type": "EXPENSE", "categoryName": "Food"}},
		{"negative amount", map[string]any{"amount": -10, "type": "EXPENSE", "categoryName": "Food"}},
		{"invalid type", map[string]any{"amount": 10, "type": "TRANSFER", "categoryName": "Food"}},
		{"empty category name", map[string]any{"amount": 10, "type": "EXPENSE", "categoryName": "  "}},
		{"invalid date", map[string]any{"amount": 10, "type": "EXPENSE", "categoryName": "Food", "date": "yesterday"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "/v1/transactions", tt.body, test.BearerToken(session.Token))
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}

	// Nothing must be persisted for rejected requests
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions", nil, test.BearerToken(session.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 0)
}

func (suite *TestSuiteStandard) TestGetTransactions() {
	session := suite.signup("jane@example.com")

	_ = suite.createTestTransaction(session.Token, v1.TransactionEditable{
		Amount:       decimal.NewFromFloat(100),
		Type:         models.TypeIncome,
		CategoryName: "Salary",
		Date:         testDate("2024-01-05"),
	})
	_ = suite.createTestTransaction(session.Token, v1.TransactionEditable{
		Amount:       decimal.NewFromFloat(40),
		Type:         models.TypeExpense,
		CategoryName: "Food",
		Date:         testDate("2024-01-10"),
	})

	tests := []struct {
		name string
		url  string
		want int
	}{
		{"all", "/v1/transactions", 2},
		{"by type", "/v1/transactions?type=EXPENSE", 1},
		{"by date range", "/v1/transactions?startDate=2024-01-06&endDate=2024-01-31", 1},
		{"by timestamp range", "/v1/transactions?startDate=2024-01-06T00:00:00Z&endDate=2024-01-31T00:00:00Z", 1},
		{"empty range", "/v1/transactions?startDate=2024-02-01", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, tt.url, nil, test.BearerToken(session.Token))
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.want)
		})
	}
}

func (suite *TestSuiteStandard) TestGetTransactionsInvalidFilter() {
	session := suite.signup("jane@example.com")

	tests := []string{
		"/v1/transactions?type=TRANSFER",
		"/v1/transactions?startDate=yesterday",
		"/v1/transactions?categoryId=not-a-uuid",
	}

	for _, url := range tests {
		suite.T().Run(url, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, url, nil, test.BearerToken(session.Token))
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestGetTransaction() {
	session := suite.signup("jane@example.com")

	transaction := suite.createTestTransaction(session.Token, v1.TransactionEditable{
		Amount:       decimal.NewFromFloat(14.03),
		Type:         models.TypeExpense,
		CategoryName: "Groceries",
	})

	recorder := test.Request(suite.T(), http.MethodGet, transactionURL(transaction.ID), nil, test.BearerToken(session.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), transaction.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestGetTransactionNotFound() {
	session := suite.signup("jane@example.com")

	recorder := test.Request(suite.T(), http.MethodGet, transactionURL("4e743e94-6a4b-44d6-aba5-d77c87103ff7"), nil, test.BearerToken(session.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = test.Request(suite.T(), http.MethodGet, transactionURL("not-a-uuid"), nil, test.BearerToken(session.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionOwnershipEnforced() {
	jane := suite.signup("jane@example.com")
	joe := suite.signup("joe@example.com")

	transaction := suite.createTestTransaction(jane.Token, v1.TransactionEditable{
		Amount:       decimal.NewFromFloat(14.03),
		Type:         models.TypeExpense,
		CategoryName: "Groceries",
	})

	// Another user's transaction is indistinguishable from a missing one
	tests := []struct {
		method string
		body   any
	}{
		{http.MethodGet, nil},
		{http.MethodPatch, map[string]any{"amount": 10}},
		{http.MethodDelete, nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.method, func(t *testing.T) {
			recorder := test.Request(t, tt.method, transactionURL(transaction.ID), tt.body, test.BearerToken(joe.Token))
			test.AssertHTTPStatus(t, &recorder, http.StatusNotFound)
		})
	}

	// The transaction is untouched
	recorder := test.Request(suite.T(), http.MethodGet, transactionURL(transaction.ID), nil, test.BearerToken(jane.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}

func (suite *TestSuiteStandard) TestUpdateTransaction() {
	session := suite.signup("jane@example.com")

	transaction := suite.createTestTransaction(session.Token, v1.TransactionEditable{
		Amount:       decimal.NewFromFloat(14.03),
		Type:         models.TypeExpense,
		CategoryName: "Groceries",
		Description:  "Lunch",
	})

	recorder := test.Request(suite.T(), http.MethodPatch, transactionURL(transaction.ID), map[string]any{
		"amount": 20,
	}, test.BearerToken(session.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)

	// Only the amount changed
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromFloat(20)))
	assert.Equal(suite.T(), models.TypeExpense, response.Data.Type)
	assert.Equal(suite.T(), "Groceries", response.Data.Category.Name)
	assert.Equal(suite.T(), "Lunch", response.Data.Description)
}

func (suite *TestSuiteStandard) TestUpdateTransactionCategory() {
	session := suite.signup("jane@example.com")

	transaction := suite.createTestTransaction(session.Token, v1.TransactionEditable{
		Amount:       decimal.NewFromFloat(14.03),
		Type:         models.TypeExpense,
		CategoryName: "Groceries",
	})

	recorder := test.Request(suite.T(), http.MethodPatch, transactionURL(transaction.ID), map[string]any{
		"categoryName": "Restaurants",
	}, test.BearerToken(session.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)

	assert.Equal(suite.T(), "Restaurants", response.Data.Category.Name)
	assert.NotEqual(suite.T(), transaction.CategoryID, response.Data.CategoryID, "A new category name must resolve to a new category")
}

func (suite *TestSuiteStandard) TestUpdateTransactionClearDescription() {
	session := suite.signup("jane@example.com")

	transaction := suite.createTestTransaction(session.Token, v1.TransactionEditable{
		Amount:       decimal.NewFromFloat(14.03),
		Type:         models.TypeExpense,
		CategoryName: "Groceries",
		Description:  "Lunch",
	})

	// An explicit empty string clears the description
	recorder := test.Request(suite.T(), http.MethodPatch, transactionURL(transaction.ID), map[string]any{
		"description": "",
	}, test.BearerToken(session.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), "", response.Data.Description)
}

func (suite *TestSuiteStandard) TestUpdateTransactionInvalid() {
	session := suite.signup("jane@example.com")

	transaction := suite.createTestTransaction(session.Token, v1.TransactionEditable{
		Amount:       decimal.NewFromFloat(14.03),
		Type:         models.TypeExpense,
		CategoryName: "Groceries",
	})

	tests := []struct {
		name string
		body any
	}{
		{"empty body", ""},
		{"zero amount", map[string]any{"amount": 0}},
		{"negative amount", map[string]any{"amount": -1}},
		{"invalid type", map[string]any{"type": "TRANSFER"}},
		{"empty category name", map[string]any{"categoryName": ""}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPatch, transactionURL(transaction.ID), tt.body, test.BearerToken(session.Token))
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}

	// The transaction is unchanged
	recorder := test.Request(suite.T(), http.MethodGet, transactionURL(transaction.ID), nil, test.BearerToken(session.Token))
	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromFloat(14.03)))
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	session := suite.signup("jane@example.com")

	transaction := suite.createTestTransaction(session.Token, v1.TransactionEditable{
		Amount:       decimal.NewFromFloat(14.03),
		Type:         models.TypeExpense,
		CategoryName: "Groceries",
	})

	recorder := test.Request(suite.T(), http.MethodDelete, transactionURL(transaction.ID), nil, test.BearerToken(session.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Deleting a deleted transaction is a 404
	recorder = test.Request(suite.T(), http.MethodDelete, transactionURL(transaction.ID), nil, test.BearerToken(session.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	// The category row is kept, a new transaction resolves to the same ID
	repeat := suite.createTestTransaction(session.Token, v1.TransactionEditable{
		Amount:       decimal.NewFromFloat(1),
		Type:         models.TypeExpense,
		CategoryName: "Groceries",
	})
	assert.Equal(suite.T(), transaction.CategoryID, repeat.CategoryID)
}
