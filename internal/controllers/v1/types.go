package v1

import (
	"github.com/pocketledger/backend/internal/types"
	pl_uuid "github.com/pocketledger/backend/internal/uuid"
)

type URIID struct {
	ID pl_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// TransactionQueryFilter are the query string parameters shared by the
// list and statistics endpoints. The user is never part of the query,
// it always comes from the authenticated request.
type TransactionQueryFilter struct {
	CategoryID pl_uuid.UUID `form:"categoryId"`                         // Restrict to one category
	Type       string       `form:"type" example:"EXPENSE"`             // Restrict to INCOME or EXPENSE
	StartDate  types.Date   `form:"startDate" example:"2024-01-01"`     // Transactions at and after this date
	EndDate    types.Date   `form:"endDate" example:"2024-03-31"`       // Transactions before and at this date
}
