// Package metrics derives totals, cash flow, savings gaps and yearly
// aggregates from the stored financial state. All functions are pure and
// operate on snapshots; none of them touch the store.
package metrics

import (
	"fmt"

	"budgetbuddy/models"
)

// YearSummary aggregates savings performance across the tracked year.
type YearSummary struct {
	TotalTarget      float64 `json:"total_target"`
	TotalActual      float64 `json:"total_actual"`
	YearlyDifference float64 `json:"yearly_difference"`
	CompletionRate   float64 `json:"completion_rate"` // Percent, completed months / 12 * 100
}

// Averages holds arithmetic means over a set of completed months.
type Averages struct {
	AvgIncome   float64 `json:"avg_income"`
	AvgExpenses float64 `json:"avg_expenses"`
	AvgSavings  float64 `json:"avg_savings"`
}

// RecomputeMonth enforces the derived-figure invariants on a month record:
// both totals are the sum of their components, savings.actual is the cash
// flow, and savings.difference is actual minus target. The target is stamped
// from the caller (the profile's monthly savings target at write time).
// Stored totals are never trusted.
func RecomputeMonth(rec models.MonthRecord, target float64) models.MonthRecord {
	rec.Income.Total = rec.Income.Salary + rec.Income.Investment + rec.Income.OtherIncome
	rec.Expenses.Total = rec.Expenses.Rent + rec.Expenses.Groceries + rec.Expenses.Transportation +
		rec.Expenses.Utilities + rec.Expenses.Entertainment + rec.Expenses.OtherExpenses
	rec.Savings.Target = target
	rec.Savings.Actual = rec.Income.Total - rec.Expenses.Total
	rec.Savings.Difference = rec.Savings.Actual - rec.Savings.Target
	rec.CashFlow = rec.Savings.Actual
	return rec
}

// NormalizeMonth is RecomputeMonth keeping the record's own stored target.
// Used when re-deriving loaded data, where each month captured the target in
// effect when it was saved.
func NormalizeMonth(rec models.MonthRecord) models.MonthRecord {
	return RecomputeMonth(rec, rec.Savings.Target)
}

// MonthTotals sums a month's components and returns the income total, expense
// total, cash flow and savings difference.
func MonthTotals(rec models.MonthRecord) (incomeTotal, expenseTotal, cashFlow, savingsDifference float64) {
	rec = NormalizeMonth(rec)
	return rec.Income.Total, rec.Expenses.Total, rec.CashFlow, rec.Savings.Difference
}

// YearlySummary sums savings targets and actuals across all twelve months
// (missing records count as zero) and computes the completion rate.
func YearlySummary(months map[string]models.MonthRecord) YearSummary {
	keys := models.MonthKeys()
	summary := YearSummary{}
	completed := 0
	for _, key := range keys {
		rec, ok := months[key]
		if !ok {
			continue
		}
		summary.TotalTarget += rec.Savings.Target
		summary.TotalActual += rec.Savings.Actual
		if rec.Completed {
			completed++
		}
	}
	summary.YearlyDifference = summary.TotalActual - summary.TotalTarget
	summary.CompletionRate = float64(completed) / float64(len(keys)) * 100
	return summary
}

// CompletedMonths returns the records marked completed, in calendar order.
func CompletedMonths(months map[string]models.MonthRecord) []models.MonthRecord {
	var out []models.MonthRecord
	for _, key := range models.MonthKeys() {
		if rec, ok := months[key]; ok && rec.Completed {
			out = append(out, rec)
		}
	}
	return out
}

// MonthlyAverages computes arithmetic means over completed months. Returns
// all zeros for an empty input rather than dividing by zero.
func MonthlyAverages(completed []models.MonthRecord) Averages {
	if len(completed) == 0 {
		return Averages{}
	}
	var avg Averages
	for _, rec := range completed {
		avg.AvgIncome += rec.Income.Total
		avg.AvgExpenses += rec.Expenses.Total
		avg.AvgSavings += rec.Savings.Actual
	}
	n := float64(len(completed))
	avg.AvgIncome /= n
	avg.AvgExpenses /= n
	avg.AvgSavings /= n
	return avg
}

// PercentChange formats the relative change from current to proposed as a
// signed percentage string. A zero base yields the "+0%" sentinel instead of
// a division error.
func PercentChange(current, proposed float64) string {
	if current == 0 {
		return "+0%"
	}
	return fmt.Sprintf("%+.1f%%", (proposed-current)/current*100)
}

// RecommendedMonthly is the flat 20%-of-income rule of thumb shown before the
// user sets their own target. It is independent of any model-derived
// recommendation.
func RecommendedMonthly(profile models.Profile) float64 {
	return profile.CurrentIncome * 0.20
}
