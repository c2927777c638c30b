package domain

import "github.com/shopspring/decimal"

// CategoryTotal is one breakdown entry: everything of one kind summed
// for a single category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// Statistics is the summary over a date range. All totals default to
// zero and both breakdowns to empty slices when no rows match.
type Statistics struct {
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	Balance            decimal.Decimal `json:"balance"`
	ExpensesByCategory []CategoryTotal `json:"expensesByCategory"`
	IncomeByCategory   []CategoryTotal `json:"incomeByCategory"`
}

// MonthlyTotal is one row of the yearly rollup: the sum for one kind
// in one calendar month. Months without transactions are absent, not
// zero-filled; callers needing a dense series fill the gaps.
type MonthlyTotal struct {
	Month int             `json:"month"`
	Kind  Kind            `json:"kind"`
	Total decimal.Decimal `json:"total"`
}
