// Package ledger computes the read-side views over a set of
// transactions: overview totals, the monthly income/expense series, the
// top spending categories and the distinct category list.
//
// All functions are pure reductions over the candidate set returned by
// models.Transactions. Amounts are accumulated with decimal arithmetic,
// so the results are exact regardless of how many rows are summed.
package ledger

import (
	"sort"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

// SeriesMonths is the number of most recent months kept in the monthly
// series. Older buckets are dropped after aggregation.
const SeriesMonths = 6

// RankingSize is the maximum number of categories in the spending ranking.
const RankingSize = 5

// Overview is the balance summary over a candidate set.
type Overview struct {
	Income  decimal.Decimal `json:"income" example:"2317.34"` // Sum of all income transactions
	Expense decimal.Decimal `json:"expense" example:"133.70"` // Sum of all expense transactions
	Balance decimal.Decimal `json:"balance" example:"2183.64"` // Income minus expense
}

// ComputeOverview sums income and expense over the transactions.
func ComputeOverview(transactions []models.Transaction) Overview {
	income := decimal.Zero
	expense := decimal.Zero

	for _, t := range transactions {
		if t.Type == models.TypeIncome {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}

	return Overview{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

// MonthlyVolume is the income and expense total for one calendar month.
type MonthlyVolume struct {
	Month   types.Month     `json:"month" example:"2024-01"`  // The year and month of the bucket
	Label   string          `json:"label" example:"Jan"`      // Short month name for display
	Income  decimal.Decimal `json:"income" example:"2317.34"` // Income total for the month
	Expense decimal.Decimal `json:"expense" example:"133.70"` // Expense total for the month
}

// ComputeMonthlySeries buckets the transactions by calendar month and
// sums income and expense per bucket.
//
// The series is ordered ascending by month and truncated to the most
// recent SeriesMonths buckets. Truncation happens after aggregation and
// sorting: it caps what is displayed, it does not filter the input.
func ComputeMonthlySeries(transactions []models.Transaction) []MonthlyVolume {
	buckets := make(map[types.Month]*MonthlyVolume)

	for _, t := range transactions {
		month := types.MonthOf(t.Date)

		volume, ok := buckets[month]
		if !ok {
			volume = &MonthlyVolume{
				Month:   month,
				Label:   month.ShortName(),
				Income:  decimal.Zero,
				Expense: decimal.Zero,
			}
			buckets[month] = volume
		}

		if t.Type == models.TypeIncome {
			volume.Income = volume.Income.Add(t.Amount)
		} else {
			volume.Expense = volume.Expense.Add(t.Amount)
		}
	}

	series := make([]MonthlyVolume, 0, len(buckets))
	for _, volume := range buckets {
		series = append(series, *volume)
	}

	// Sort by the year-month key. Labels like "Jan" are not sortable
	// across years.
	sort.Slice(series, func(i, j int) bool {
		return series[i].Month.Before(series[j].Month)
	})

	if len(series) > SeriesMonths {
		series = series[len(series)-SeriesMonths:]
	}

	return series
}

// CategoryValue is the summed expense amount for one category.
type CategoryValue struct {
	Name  string          `json:"name" example:"Groceries"` // Name of the category
	Value decimal.Decimal `json:"value" example:"133.70"`   // Summed expense amount
}

// ComputeCategoryRanking returns the top RankingSize categories by
// summed expense amount, descending.
//
// Only expense transactions are considered, income never enters the
// ranking even when the caller filtered for it. Ties keep the order in
// which the categories were first seen, so the result is deterministic.
func ComputeCategoryRanking(transactions []models.Transaction) []CategoryValue {
	sums := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	for _, t := range transactions {
		if t.Type != models.TypeExpense {
			continue
		}

		name := t.Category.Name
		if _, ok := sums[name]; !ok {
			order = append(order, name)
		}
		sums[name] = sums[name].Add(t.Amount)
	}

	ranking := make([]CategoryValue, 0, len(order))
	for _, name := range order {
		ranking = append(ranking, CategoryValue{Name: name, Value: sums[name]})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Value.GreaterThan(ranking[j].Value)
	})

	if len(ranking) > RankingSize {
		ranking = ranking[:RankingSize]
	}

	return ranking
}

// CategoryRef identifies a category by id and name.
type CategoryRef struct {
	ID   uuid.UUID `json:"id" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the category
	Name string    `json:"name" example:"Groceries"`                          // Name of the category
}

// DistinctCategories lists every category referenced by at least one of
// the transactions, sorted by name ascending.
//
// The unique index on (user_id, name) means a name can only map to one
// ID. Should the data ever disagree, the first ID encountered wins.
func DistinctCategories(transactions []models.Transaction) []CategoryRef {
	seen := make(map[string]uuid.UUID)

	for _, t := range transactions {
		if _, ok := seen[t.Category.Name]; !ok {
			seen[t.Category.Name] = t.CategoryID
		}
	}

	categories := make([]CategoryRef, 0, len(seen))
	for name, id := range seen {
		categories = append(categories, CategoryRef{ID: id, Name: name})
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return categories
}
