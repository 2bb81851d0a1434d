package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/auth"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"golang.org/x/exp/slices"
)

var errTransactionNotFound = fmt.Errorf("%w transaction matching your query", models.ErrResourceNotFound)

// fieldSet reports whether the request body contained the field.
func fieldSet(fields []any, name string) bool {
	for _, field := range fields {
		if field == name {
			return true
		}
	}

	return false
}

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// bindFilter binds the query string and scopes the resulting filter to
// the authenticated user.
func bindFilter(c *gin.Context) (models.TransactionFilter, error) {
	var query TransactionQueryFilter
	if err := c.ShouldBind(&query); err != nil {
		return models.TransactionFilter{}, httputil.ErrInvalidQuery
	}

	if query.Type != "" && !slices.Contains(models.TransactionTypes, models.TransactionType(query.Type)) {
		return models.TransactionFilter{}, models.ErrTransactionTypeInvalid
	}

	return models.TransactionFilter{
		UserID:     auth.UserID(c),
		CategoryID: query.CategoryID.UUID,
		Type:       models.TransactionType(query.Type),
		From:       query.StartDate.Time(),
		Until:      query.EndDate.Time(),
	}, nil
}

// candidates returns the transactions matching the request's filter for
// the authenticated user.
func candidates(c *gin.Context) ([]models.Transaction, error) {
	filter, err := bindFilter(c)
	if err != nil {
		return nil, err
	}

	return models.Transactions(models.DB, filter)
}

// @Summary		Get transactions
// @Description	Returns the transactions of the authenticated user, most recent first
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	TransactionListResponse
// @Param			categoryId	query	string	false	"Filter by category ID"
// @Param			type		query	string	false	"Filter by type, INCOME or EXPENSE"
// @Param			startDate	query	string	false	"Transactions at and after this date, YYYY-MM-DD"
// @Param			endDate		query	string	false	"Transactions before and at this date, YYYY-MM-DD"
// @Router			/v1/transactions [get]
// @Security		BearerAuth
func GetTransactions(c *gin.Context) {
	transactions, err := candidates(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: data})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction of the authenticated user
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		401	{object}	httpError
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		string	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [get]
// @Security		BearerAuth
func GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	transaction, err := models.TransactionByID(models.DB, uri.ID.UUID, auth.UserID(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Create transaction
// @Description	Creates a new transaction. The category is created on first use.
// @Tags			Transactions
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		401			{object}	httpError
// @Failure		500			{object}	TransactionResponse
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
// @Security		BearerAuth
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	userID := auth.UserID(c)

	// Resolving the category before the insert also validates the name
	category, err := models.ResolveCategory(models.DB, userID, editable.CategoryName)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	transaction := editable.model(userID, category.ID)
	err = models.DB.Create(&transaction).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	transaction.Category = category
	data := newTransaction(transaction)
	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		401			{object}	httpError
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		string				true	"ID of the transaction"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
// @Security		BearerAuth
func UpdateTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	userID := auth.UserID(c)

	// Ownership is part of the lookup. A transaction of another user is
	// indistinguishable from one that does not exist.
	transaction, err := models.TransactionByID(models.DB, uri.ID.UUID, userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	// Bind the update for the patch
	var update TransactionEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	// An explicitly sent amount has to be valid, an omitted one keeps
	// the stored value
	if fieldSet(updateFields, "Amount") {
		if !update.Amount.IsPositive() {
			e := models.ErrAmountNotPositive.Error()
			c.JSON(http.StatusBadRequest, TransactionResponse{
				Error: &e,
			})
			return
		}
	} else {
		update.Amount = transaction.Amount
	}

	if fieldSet(updateFields, "Type") {
		if !slices.Contains(models.TransactionTypes, update.Type) {
			e := models.ErrTransactionTypeInvalid.Error()
			c.JSON(http.StatusBadRequest, TransactionResponse{
				Error: &e,
			})
			return
		}
	} else {
		update.Type = transaction.Type
	}

	if update.Date.IsZero() {
		update.Date = types.DateOf(transaction.Date)
	}

	// A new category name rebinds the category reference, resolving it
	// on first use just like create does
	categoryID := transaction.CategoryID
	if fieldSet(updateFields, "CategoryName") {
		category, err := models.ResolveCategory(models.DB, userID, update.CategoryName)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), TransactionResponse{
				Error: &e,
			})
			return
		}

		categoryID = category.ID
		updateFields = append(updateFields, "CategoryID")
	}

	err = models.DB.Model(&transaction).Select("", updateFields...).Updates(update.model(userID, categoryID)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	// Re-read the row so that the response contains the updated category
	transaction, err = models.TransactionByID(models.DB, transaction.ID, userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [delete]
// @Security		BearerAuth
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// The (id, user) pair is the delete predicate itself. Deleting a
	// transaction of another user removes nothing and reports 404.
	deleted, err := models.DeleteTransaction(models.DB, uri.ID.UUID, auth.UserID(c))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if !deleted {
		c.JSON(http.StatusNotFound, httpError{
			Error: errTransactionNotFound.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
