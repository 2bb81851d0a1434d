package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/pocketledger/backend/internal/models"
)

// RegisterStatisticsRoutes registers the routes for the aggregated
// views with the RouterGroup that is passed.
func RegisterStatisticsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/overview", httputil.OptionsGet)
	r.GET("/overview", GetOverview)

	r.OPTIONS("/monthly", httputil.OptionsGet)
	r.GET("/monthly", GetMonthlySeries)

	r.OPTIONS("/category-expenses", httputil.OptionsGet)
	r.GET("/category-expenses", GetCategoryRanking)
}

// RegisterCategoryRoutes registers the routes for categories with the
// RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetCategories)
}

type OverviewResponse struct {
	Error *string          `json:"error" example:"your query string contains invalid or un-parseable data. Please check and try again"` // The error, if any occurred
	Data  *ledger.Overview `json:"data"`                                                                                                // The overview totals
}

type MonthlySeriesResponse struct {
	Error *string                `json:"error" example:"your query string contains invalid or un-parseable data. Please check and try again"` // The error, if any occurred
	Data  []ledger.MonthlyVolume `json:"data"`                                                                                               // Income and expense per month, ascending
}

type CategoryRankingResponse struct {
	Error *string                `json:"error" example:"your query string contains invalid or un-parseable data. Please check and try again"` // The error, if any occurred
	Data  []ledger.CategoryValue `json:"data"`                                                                                               // Top categories by summed expense, descending
}

type CategoryListResponse struct {
	Error *string              `json:"error" example:"your query string contains invalid or un-parseable data. Please check and try again"` // The error, if any occurred
	Data  []ledger.CategoryRef `json:"data"`                                                                                               // Categories referenced by the matching transactions
}

// @Summary		Get overview
// @Description	Returns the income, expense and balance totals for the matching transactions
// @Tags			Statistics
// @Produce		json
// @Success		200	{object}	OverviewResponse
// @Failure		400	{object}	OverviewResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	OverviewResponse
// @Param			categoryId	query	string	false	"Filter by category ID"
// @Param			type		query	string	false	"Filter by type, INCOME or EXPENSE"
// @Param			startDate	query	string	false	"Transactions at and after this date, YYYY-MM-DD"
// @Param			endDate		query	string	false	"Transactions before and at this date, YYYY-MM-DD"
// @Router			/v1/statistics/overview [get]
// @Security		BearerAuth
func GetOverview(c *gin.Context) {
	transactions, err := candidates(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OverviewResponse{
			Error: &e,
		})
		return
	}

	overview := ledger.ComputeOverview(transactions)
	c.JSON(http.StatusOK, OverviewResponse{Data: &overview})
}

// @Summary		Get monthly series
// @Description	Returns income and expense per calendar month for the matching transactions, capped to the most recent six months
// @Tags			Statistics
// @Produce		json
// @Success		200	{object}	MonthlySeriesResponse
// @Failure		400	{object}	MonthlySeriesResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	MonthlySeriesResponse
// @Param			categoryId	query	string	false	"Filter by category ID"
// @Param			type		query	string	false	"Filter by type, INCOME or EXPENSE"
// @Param			startDate	query	string	false	"Transactions at and after this date, YYYY-MM-DD"
// @Param			endDate		query	string	false	"Transactions before and at this date, YYYY-MM-DD"
// @Router			/v1/statistics/monthly [get]
// @Security		BearerAuth
func GetMonthlySeries(c *gin.Context) {
	transactions, err := candidates(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthlySeriesResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, MonthlySeriesResponse{Data: ledger.ComputeMonthlySeries(transactions)})
}

// @Summary		Get category expenses
// @Description	Returns the top five categories by summed expense amount. Income transactions are never part of the ranking, a type filter in the query is ignored for this endpoint.
// @Tags			Statistics
// @Produce		json
// @Success		200	{object}	CategoryRankingResponse
// @Failure		400	{object}	CategoryRankingResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	CategoryRankingResponse
// @Param			categoryId	query	string	false	"Filter by category ID"
// @Param			startDate	query	string	false	"Transactions at and after this date, YYYY-MM-DD"
// @Param			endDate		query	string	false	"Transactions before and at this date, YYYY-MM-DD"
// @Router			/v1/statistics/category-expenses [get]
// @Security		BearerAuth
func GetCategoryRanking(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryRankingResponse{
			Error: &e,
		})
		return
	}

	// The ranking is always about spending, a type filter in the query
	// has no effect here
	filter.Type = models.TypeExpense

	transactions, err := models.Transactions(models.DB, filter)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryRankingResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, CategoryRankingResponse{Data: ledger.ComputeCategoryRanking(transactions)})
}

// @Summary		Get categories
// @Description	Returns the categories referenced by at least one matching transaction, sorted by name
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Failure		400	{object}	CategoryListResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	CategoryListResponse
// @Param			categoryId	query	string	false	"Filter by category ID"
// @Param			type		query	string	false	"Filter by type, INCOME or EXPENSE"
// @Param			startDate	query	string	false	"Transactions at and after this date, YYYY-MM-DD"
// @Param			endDate		query	string	false	"Transactions before and at this date, YYYY-MM-DD"
// @Router			/v1/categories [get]
// @Security		BearerAuth
func GetCategories(c *gin.Context) {
	transactions, err := candidates(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryListResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: ledger.DistinctCategories(transactions)})
}
