package advisor

import (
	"fmt"
	"strings"

	"budgetbuddy/metrics"
	"budgetbuddy/models"
)

// Analysis types selectable by the caller. Unknown values fall back to a
// generic comprehensive-advice instruction.
const (
	AnalysisComprehensive = "Comprehensive Review"
	AnalysisSavings       = "Savings Strategy"
	AnalysisExpenses      = "Expense Optimization"
	AnalysisRetirement    = "Retirement Planning"
)

// AnalysisTypes lists the supported analysis types in display order.
var AnalysisTypes = []string{
	AnalysisComprehensive,
	AnalysisSavings,
	AnalysisExpenses,
	AnalysisRetirement,
}

// SystemPrompt defines the advisor's persona and goals.
const SystemPrompt = `You are BudgetBuddy Pro, a comprehensive financial advisor. Provide detailed, personalized financial advice including:

1. Savings optimization strategies
2. Expense reduction techniques
3. Investment recommendations based on risk profile
4. Retirement planning insights
5. Risk assessment and warnings
6. Actionable steps for improvement

Be specific, practical, and supportive. Use financial data to provide quantitative recommendations.`

// analysisTemplates holds the task-specific request block per analysis type.
var analysisTemplates = map[string]string{
	AnalysisComprehensive: `Provide a complete financial health assessment. Include:
- Overall financial health score (1-10)
- 3 strengths and 3 areas for improvement
- Specific action items for the next 30 days
- Long-term strategy recommendations
- SPECIFIC SAVINGS TARGET RECOMMENDATION: Provide an exact dollar amount for a new monthly savings target`,

	AnalysisSavings: `Focus on savings optimization. Include:
- Analysis of current savings rate vs recommended
- 5 specific ways to increase savings
- Ideal savings allocation based on risk profile
- Emergency fund recommendations
- SPECIFIC SAVINGS TARGET RECOMMENDATION: Provide an exact dollar amount for a new monthly savings target`,

	AnalysisExpenses: `Focus on expense reduction. Include:
- Top 3 expense categories to target
- Practical cost-cutting strategies for each
- Subscription audit recommendations
- Lifestyle inflation warnings
- SPECIFIC SAVINGS TARGET RECOMMENDATION: Provide an exact dollar amount that could be saved monthly`,

	AnalysisRetirement: `Focus on retirement preparation. Include:
- Projected retirement savings at current rate
- Gap analysis vs retirement needs
- Investment strategy adjustments
- Retirement account optimization
- SPECIFIC SAVINGS TARGET RECOMMENDATION: Provide an exact dollar amount needed for retirement goals`,
}

// promptClosing reiterates the extraction contract: the exact marker format,
// the word cap and formatting preferences.
const promptClosing = `CRITICAL: When suggesting savings target changes, ALWAYS provide:
- Exact dollar amount (e.g., $1,250 instead of "increase by 25%")
- Clear rationale for the change
- Specific implementation steps
- Follow a strict format for easy extraction: NEW SAVINGS TARGET: $<amount>

Please provide:
- Specific, actionable recommendations with examples
- Quantitative estimates where possible ($ amounts, percentages)
- Risk assessments and warnings
- Clear formatting with bullet points and sections
- Keep within 200 words`

// BuildFinancialContext renders the profile and, when any month is completed,
// an aggregate block into a fixed human-readable text block. Without any data
// it notes the absence so the model does not invent figures.
func BuildFinancialContext(profile models.Profile, months map[string]models.MonthRecord) string {
	var b strings.Builder
	b.WriteString("USER'S FINANCIAL CONTEXT:\n\n")

	b.WriteString("PROFILE:\n")
	fmt.Fprintf(&b, "- Age: %d\n", profile.CurrentAge)
	fmt.Fprintf(&b, "- Retirement Goal: %d\n", profile.RetirementAge)
	fmt.Fprintf(&b, "- Monthly Income: %s\n", FormatDollars(profile.CurrentIncome))
	fmt.Fprintf(&b, "- Risk Tolerance: %s\n", profile.RiskTolerance)
	fmt.Fprintf(&b, "- Monthly Savings Target: %s\n\n", FormatDollars(profile.MonthlySavingsTarget))

	completed := metrics.CompletedMonths(months)
	if len(completed) == 0 {
		b.WriteString("MONTHLY SUMMARY:\n- No completed monthly tracking data yet.\n")
		return b.String()
	}

	var totalActual, totalTarget float64
	for _, rec := range completed {
		totalActual += rec.Savings.Actual
		totalTarget += rec.Savings.Target
	}
	avg := metrics.MonthlyAverages(completed)

	b.WriteString("MONTHLY SUMMARY:\n")
	fmt.Fprintf(&b, "- Tracked Months: %d\n", len(completed))
	fmt.Fprintf(&b, "- Total Savings: %s of %s target\n", FormatDollars(totalActual), FormatDollars(totalTarget))
	fmt.Fprintf(&b, "- Avg Monthly Income: %s\n", FormatDollars(avg.AvgIncome))
	fmt.Fprintf(&b, "- Avg Monthly Expenses: %s\n", FormatDollars(avg.AvgExpenses))
	fmt.Fprintf(&b, "- Avg Monthly Savings: %s\n", FormatDollars(avg.AvgSavings))

	return b.String()
}

// BuildAnalysisPrompt assembles context, analysis-type label, the matching
// task template and the fixed closing instruction block into the user prompt.
func BuildAnalysisPrompt(context, analysisType string) string {
	template, ok := analysisTemplates[analysisType]
	if !ok {
		template = "Provide comprehensive financial advice."
	}

	return fmt.Sprintf("%s\nANALYSIS REQUEST: %s\n\n%s\n\n%s\n", context, analysisType, template, promptClosing)
}
