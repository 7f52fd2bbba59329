package metrics

import (
	"testing"

	"budgetbuddy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthWith(income, expenses, target float64, completed bool) models.MonthRecord {
	rec := models.MonthRecord{
		Income:    models.IncomeBreakdown{Salary: income},
		Expenses:  models.ExpenseBreakdown{Rent: expenses},
		Completed: completed,
	}
	return RecomputeMonth(rec, target)
}

func TestRecomputeMonth_DerivesAllFigures(t *testing.T) {
	rec := models.MonthRecord{
		Income: models.IncomeBreakdown{Salary: 5000, Investment: 300, OtherIncome: 200, Total: -1},
		Expenses: models.ExpenseBreakdown{
			Rent: 1500, Groceries: 600, Transportation: 250,
			Utilities: 180, Entertainment: 120, OtherExpenses: 90,
			Total: -1,
		},
		Savings:  models.SavingsSummary{Target: -1, Actual: -1, Difference: -1},
		CashFlow: -1,
	}

	derived := RecomputeMonth(rec, 1200)

	assert.Equal(t, 5500.0, derived.Income.Total)
	assert.Equal(t, 2740.0, derived.Expenses.Total)
	assert.Equal(t, 1200.0, derived.Savings.Target)
	assert.Equal(t, 2760.0, derived.Savings.Actual)
	assert.Equal(t, 1560.0, derived.Savings.Difference)
	assert.Equal(t, derived.Savings.Actual, derived.CashFlow)
}

func TestRecomputeMonth_NegativeCashFlowAllowed(t *testing.T) {
	derived := monthWith(1000, 1500, 200, true)

	assert.Equal(t, -500.0, derived.Savings.Actual)
	assert.Equal(t, -700.0, derived.Savings.Difference)
	assert.Equal(t, -500.0, derived.CashFlow)
}

func TestNormalizeMonth_KeepsStoredTarget(t *testing.T) {
	rec := models.MonthRecord{
		Income:   models.IncomeBreakdown{Salary: 3000},
		Expenses: models.ExpenseBreakdown{Rent: 1000},
		Savings:  models.SavingsSummary{Target: 750},
	}

	derived := NormalizeMonth(rec)
	assert.Equal(t, 750.0, derived.Savings.Target)
	assert.Equal(t, 1250.0, derived.Savings.Difference)
}

func TestMonthTotals(t *testing.T) {
	rec := models.MonthRecord{
		Income:   models.IncomeBreakdown{Salary: 4000, Investment: 100},
		Expenses: models.ExpenseBreakdown{Rent: 1200, Groceries: 300},
		Savings:  models.SavingsSummary{Target: 1000},
	}

	incomeTotal, expenseTotal, cashFlow, diff := MonthTotals(rec)
	assert.Equal(t, 4100.0, incomeTotal)
	assert.Equal(t, 1500.0, expenseTotal)
	assert.Equal(t, 2600.0, cashFlow)
	assert.Equal(t, 1600.0, diff)
}

func TestYearlySummary(t *testing.T) {
	months := map[string]models.MonthRecord{
		"january_2024":  monthWith(5000, 3000, 1000, true), // actual 2000
		"february_2024": monthWith(4000, 3500, 1000, true), // actual 500
		"march_2024":    monthWith(0, 0, 0, false),
	}

	summary := YearlySummary(months)

	assert.Equal(t, 2000.0, summary.TotalTarget)
	assert.Equal(t, 2500.0, summary.TotalActual)
	assert.Equal(t, 500.0, summary.YearlyDifference)
	assert.InDelta(t, 2.0/12.0*100, summary.CompletionRate, 0.001)
}

func TestYearlySummary_Empty(t *testing.T) {
	summary := YearlySummary(map[string]models.MonthRecord{})

	assert.Zero(t, summary.TotalTarget)
	assert.Zero(t, summary.TotalActual)
	assert.Zero(t, summary.YearlyDifference)
	assert.Zero(t, summary.CompletionRate)
}

func TestCompletedMonths_CalendarOrder(t *testing.T) {
	months := map[string]models.MonthRecord{
		"december_2024": monthWith(1, 0, 0, true),
		"january_2024":  monthWith(2, 0, 0, true),
		"july_2024":     monthWith(3, 0, 0, false),
	}

	completed := CompletedMonths(months)
	require.Len(t, completed, 2)
	assert.Equal(t, 2.0, completed[0].Income.Total, "january first")
	assert.Equal(t, 1.0, completed[1].Income.Total, "december last")
}

func TestMonthlyAverages(t *testing.T) {
	completed := []models.MonthRecord{
		monthWith(6000, 2000, 1000, true),
		monthWith(4000, 3000, 1000, true),
	}

	avg := MonthlyAverages(completed)
	assert.Equal(t, 5000.0, avg.AvgIncome)
	assert.Equal(t, 2500.0, avg.AvgExpenses)
	assert.Equal(t, 2500.0, avg.AvgSavings)
}

func TestMonthlyAverages_EmptyInput(t *testing.T) {
	avg := MonthlyAverages(nil)
	assert.Zero(t, avg.AvgIncome)
	assert.Zero(t, avg.AvgExpenses)
	assert.Zero(t, avg.AvgSavings)
}

func TestPercentChange(t *testing.T) {
	assert.Equal(t, "+25.0%", PercentChange(1000, 1250))
	assert.Equal(t, "-50.0%", PercentChange(1000, 500))
	assert.Equal(t, "+0.0%", PercentChange(1000, 1000))
	assert.Equal(t, "+0%", PercentChange(0, 500), "zero base uses the sentinel, never divides")
}

func TestRecommendedMonthly(t *testing.T) {
	profile := models.DefaultProfile()
	assert.Equal(t, 1000.0, RecommendedMonthly(profile))

	profile.CurrentIncome = 0
	assert.Zero(t, RecommendedMonthly(profile))
}
