package advisor

import (
	"testing"

	"budgetbuddy/metrics"
	"budgetbuddy/models"

	"github.com/stretchr/testify/assert"
)

func contextMonths(completed int) map[string]models.MonthRecord {
	months := map[string]models.MonthRecord{}
	keys := models.MonthKeys()
	for i := 0; i < completed; i++ {
		rec := models.MonthRecord{
			Income:    models.IncomeBreakdown{Salary: 5000},
			Expenses:  models.ExpenseBreakdown{Rent: 3000},
			Completed: true,
		}
		months[keys[i]] = metrics.RecomputeMonth(rec, 1000)
	}
	return months
}

func TestBuildFinancialContext_ProfileLines(t *testing.T) {
	profile := models.DefaultProfile()
	ctx := BuildFinancialContext(profile, nil)

	assert.Contains(t, ctx, "USER'S FINANCIAL CONTEXT:")
	assert.Contains(t, ctx, "- Age: 25")
	assert.Contains(t, ctx, "- Retirement Goal: 65")
	assert.Contains(t, ctx, "- Monthly Income: $5,000.00")
	assert.Contains(t, ctx, "- Risk Tolerance: Moderate")
	assert.Contains(t, ctx, "- Monthly Savings Target: $1,000.00")
}

func TestBuildFinancialContext_NoCompletedMonths(t *testing.T) {
	ctx := BuildFinancialContext(models.DefaultProfile(), contextMonths(0))

	assert.Contains(t, ctx, "No completed monthly tracking data yet.")
	assert.NotContains(t, ctx, "Tracked Months")
}

func TestBuildFinancialContext_AggregateBlock(t *testing.T) {
	ctx := BuildFinancialContext(models.DefaultProfile(), contextMonths(3))

	assert.Contains(t, ctx, "- Tracked Months: 3")
	assert.Contains(t, ctx, "- Total Savings: $6,000.00 of $3,000.00 target")
	assert.Contains(t, ctx, "- Avg Monthly Income: $5,000.00")
	assert.Contains(t, ctx, "- Avg Monthly Expenses: $3,000.00")
	assert.Contains(t, ctx, "- Avg Monthly Savings: $2,000.00")
}

func TestBuildAnalysisPrompt_IncludesContextTypeAndMarkerContract(t *testing.T) {
	ctx := BuildFinancialContext(models.DefaultProfile(), nil)

	for _, analysisType := range AnalysisTypes {
		prompt := BuildAnalysisPrompt(ctx, analysisType)

		assert.Contains(t, prompt, ctx)
		assert.Contains(t, prompt, "ANALYSIS REQUEST: "+analysisType)
		assert.Contains(t, prompt, "SPECIFIC SAVINGS TARGET RECOMMENDATION")
		assert.Contains(t, prompt, "NEW SAVINGS TARGET: $<amount>")
		assert.Contains(t, prompt, "Keep within 200 words")
	}
}

func TestBuildAnalysisPrompt_UnknownTypeFallsBack(t *testing.T) {
	prompt := BuildAnalysisPrompt("CONTEXT", "Astrology Review")

	assert.Contains(t, prompt, "Provide comprehensive financial advice.")
	assert.Contains(t, prompt, "ANALYSIS REQUEST: Astrology Review")
	// The closing extraction contract applies regardless of type.
	assert.Contains(t, prompt, "NEW SAVINGS TARGET: $<amount>")
}
