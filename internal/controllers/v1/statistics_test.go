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

// seedLedger creates a small, fully known data set:
//
//	2024-01-05  INCOME   100  Salary
//	2024-01-10  EXPENSE   40  Food
//	2024-02-01  EXPENSE   60  Food
//	2024-02-15  EXPENSE   10  Transport
func (suite *TestSuiteStandard) seedLedger(token string) {
	fixtures := []v1.TransactionEditable{
		{Amount: decimal.NewFromFloat(100), Type: models.TypeIncome, CategoryName: "Salary", Date: testDate("2024-01-05")},
		{Amount: decimal.NewFromFloat(40), Type: models.TypeExpense, CategoryName: "Food", Date: testDate("2024-01-10")},
		{Amount: decimal.NewFromFloat(60), Type: models.TypeExpense, CategoryName: "Food", Date: testDate("2024-02-01")},
		{Amount: decimal.NewFromFloat(10), Type: models.TypeExpense, CategoryName: "Transport", Date: testDate("2024-02-15")},
	}

	for _, fixture := range fixtures {
		_ = suite.createTestTransaction(token, fixture)
	}
}

func (suite *TestSuiteStandard) TestGetOverview() {
	session := suite.signup("jane@example.com")
	suite.seedLedger(session.Token)

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/statistics/overview", nil, test.BearerToken(session.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.OverviewResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)

	assert.True(suite.T(), response.Data.Income.Equal(decimal.NewFromFloat(100)), "Income is %s", response.Data.Income)
	assert.True(suite.T(), response.Data.Expense.Equal(decimal.NewFromFloat(110)), "Expense is %s", response.Data.Expense)
	assert.True(suite.T(), response.Data.Balance.Equal(decimal.NewFromFloat(-10)), "Balance is %s", response.Data.Balance)
}

func (suite *TestSuiteStandard) TestGetOverviewEmpty() {
	session := suite.signup("jane@example.com")

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/statistics/overview", nil, test.BearerToken(session.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.OverviewResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)

	assert.True(suite.T(), response.Data.Income.IsZero())
	assert.True(suite.T(), response.Data.Expense.IsZero())
	assert.True(suite.T(), response.Data.Balance.IsZero())
}

func (suite *TestSuiteStandard) TestGetOverviewFiltered() {
	session := suite.signup("jane@example.com")
	suite.seedLedger(session.Token)

	tests := []struct {
		name    string
		url     string
		income  float64
		expense float64
	}{
		{"income only", "/v1/statistics/overview?type=INCOME", 100, 0},
		{"expenses only", "/v1/statistics/overview?type=EXPENSE", 0, 110},
		{"january", "/v1/statistics/overview?startDate=2024-01-01&endDate=2024-01-31", 100, 40},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, tt.url, nil, test.BearerToken(session.Token))
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.OverviewResponse
			test.DecodeResponse(t, &recorder, &response)
			require.NotNil(t, response.Data)

			assert.True(t, response.Data.Income.Equal(decimal.NewFromFloat(tt.income)), "Income is %s", response.Data.Income)
			assert.True(t, response.Data.Expense.Equal(decimal.NewFromFloat(tt.expense)), "Expense is %s", response.Data.Expense)
		})
	}
}

func (suite *TestSuiteStandard) TestGetOverviewScopedToUser() {
	jane := suite.signup("jane@example.com")
	joe := suite.signup("joe@example.com")
	suite.seedLedger(jane.Token)

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/statistics/overview", nil, test.BearerToken(joe.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.OverviewResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)
	assert.True(suite.T(), response.Data.Income.IsZero(), "Another user's transactions leak into the overview")
}

func (suite *TestSuiteStandard) TestGetMonthlySeries() {
	session := suite.signup("jane@example.com")
	suite.seedLedger(session.Token)

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/statistics/monthly", nil, test.BearerToken(session.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MonthlySeriesResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 2)

	january := response.Data[0]
	assert.Equal(suite.T(), "Jan", january.Label)
	assert.True(suite.T(), january.Income.Equal(decimal.NewFromFloat(100)))
	assert.True(suite.T(), january.Expense.Equal(decimal.NewFromFloat(40)))

	february := response.Data[1]
	assert.Equal(suite.T(), "Feb", february.Label)
	assert.True(suite.T(), february.Income.IsZero())
	assert.True(suite.T(), february.Expense.Equal(decimal.NewFromFloat(70)))
}

func (suite *TestSuiteStandard) TestGetMonthlySeriesCapped() {
	session := suite.signup("jane@example.com")

	// Eight months with one expense each, only the six most recent are
	// returned
	days := []string{
		"2023-06-15", "2023-07-15", "2023-08-15", "2023-09-15",
		"2023-10-15", "2023-11-15", "2023-12-15", "2024-01-15",
	}
	for _, day := range days {
		_ = suite.createTestTransaction(session.Token, v1.TransactionEditable{
			Amount:       decimal.NewFromFloat(10),
			Type:         models.TypeExpense,
			CategoryName: "Food",
			Date:         testDate(day),
		})
	}

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/statistics/monthly", nil, test.BearerToken(session.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MonthlySeriesResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 6)

	assert.Equal(suite.T(), "Aug", response.Data[0].Label)
	assert.Equal(suite.T(), "Jan", response.Data[5].Label)
}

func (suite *TestSuiteStandard) TestGetCategoryRanking() {
	session := suite.signup("jane@example.com")
	suite.seedLedger(session.Token)

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/statistics/category-expenses", nil, test.BearerToken(session.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryRankingResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 2, "Income categories must not appear in the expense ranking")

	assert.Equal(suite.T(), "Food", response.Data[0].Name)
	assert.True(suite.T(), response.Data[0].Value.Equal(decimal.NewFromFloat(100)))

	assert.Equal(suite.T(), "Transport", response.Data[1].Name)
	assert.True(suite.T(), response.Data[1].Value.Equal(decimal.NewFromFloat(10)))
}

func (suite *TestSuiteStandard) TestGetCategoryRankingCapped() {
	session := suite.signup("jane@example.com")

	names := []string{"Food", "Transport", "Rent", "Utilities", "Leisure", "Clothing", "Travel"}
	for i, name := range names {
		_ = suite.createTestTransaction(session.Token, v1.TransactionEditable{
			Amount:       decimal.NewFromFloat(float64(100 - i)),
			Type:         models.TypeExpense,
			CategoryName: name,
		})
	}

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/statistics/category-expenses", nil, test.BearerToken(session.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryRankingResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 5)

	// Descending by summed value
	assert.Equal(suite.T(), "Food", response.Data[0].Name)
	assert.Equal(suite.T(), "Leisure", response.Data[4].Name)
}

func (suite *TestSuiteStandard) TestGetCategories() {
	session := suite.signup("jane@example.com")
	suite.seedLedger(session.Token)

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/categories", nil, test.BearerToken(session.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 3)

	// Sorted by name, no duplicates
	assert.Equal(suite.T(), "Food", response.Data[0].Name)
	assert.Equal(suite.T(), "Salary", response.Data[1].Name)
	assert.Equal(suite.T(), "Transport", response.Data[2].Name)
}

func (suite *TestSuiteStandard) TestGetCategoriesEmpty() {
	session := suite.signup("jane@example.com")

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/categories", nil, test.BearerToken(session.Token))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 0)
}
