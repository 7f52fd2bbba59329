package models

import (
	"sync"
)

// Risk tolerance values accepted in a Profile.
const (
	RiskConservative = "Conservative"
	RiskModerate     = "Moderate"
	RiskAggressive   = "Aggressive"
)

// TrackedYear is the fixed calendar year the ledger covers. Month records are
// keyed "<monthname>_<year>", e.g. "march_2024".
const TrackedYear = "2024"

// monthNames in calendar order, lowercase, used to build month keys.
var monthNames = [12]string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// Profile holds the user's static financial-planning parameters.
type Profile struct {
	Name                 string  `json:"name"`
	CurrentAge           int     `json:"current_age"`
	RetirementAge        int     `json:"retirement_age"`
	CurrentIncome        float64 `json:"current_income"`  // Monthly
	CurrentSavings       float64 `json:"current_savings"` // Cumulative
	RiskTolerance        string  `json:"risk_tolerance"`
	InflationRate        float64 `json:"inflation_rate"` // Percentage
	MonthlySavingsTarget float64 `json:"monthly_savings_target"`
}

// IncomeBreakdown holds one month's income line items. Total is always
// recomputed from the three components, never trusted from input.
type IncomeBreakdown struct {
	Salary      float64 `json:"salary"`
	Investment  float64 `json:"investment"`
	OtherIncome float64 `json:"other_income"`
	Total       float64 `json:"total"`
}

// ExpenseBreakdown holds one month's expense line items, same total-consistency
// rule as IncomeBreakdown.
type ExpenseBreakdown struct {
	Rent           float64 `json:"rent"`
	Groceries      float64 `json:"groceries"`
	Transportation float64 `json:"transportation"`
	Utilities      float64 `json:"utilities"`
	Entertainment  float64 `json:"entertainment"`
	OtherExpenses  float64 `json:"other_expenses"`
	Total          float64 `json:"total"`
}

// SavingsSummary holds the derived savings figures for one month:
// Actual = income total - expense total, Difference = Actual - Target.
type SavingsSummary struct {
	Target     float64 `json:"target"`
	Actual     float64 `json:"actual"`
	Difference float64 `json:"difference"`
}

// MonthRecord is one calendar month of the ledger. CashFlow duplicates
// Savings.Actual and is kept for display convenience.
type MonthRecord struct {
	Income    IncomeBreakdown  `json:"income"`
	Expenses  ExpenseBreakdown `json:"expenses"`
	Savings   SavingsSummary   `json:"savings"`
	CashFlow  float64          `json:"cash_flow"`
	Completed bool             `json:"completed"`
}

// UserState is the complete persisted document: one profile plus the twelve
// month records of the tracked year. Exactly one UserState exists system-wide.
type UserState struct {
	Profile Profile                `json:"profile"`
	Months  map[string]MonthRecord `json:"months"`

	// Mutex for thread-safe access to the state within a process.
	Mu sync.RWMutex `json:"-"`
}

// MonthKeys returns the twelve month keys of the tracked year in calendar
// order.
func MonthKeys() []string {
	keys := make([]string, 0, len(monthNames))
	for _, name := range monthNames {
		keys = append(keys, name+"_"+TrackedYear)
	}
	return keys
}

// DefaultProfile returns the profile a fresh user starts with.
func DefaultProfile() Profile {
	return Profile{
		Name:                 "Test User",
		CurrentAge:           25,
		RetirementAge:        65,
		CurrentIncome:        5000,
		CurrentSavings:       10000,
		RiskTolerance:        RiskModerate,
		InflationRate:        2.5,
		MonthlySavingsTarget: 1000,
	}
}

// NewDefaultUserState builds a freshly initialized state: default profile and
// all twelve months zeroed with Completed=false.
func NewDefaultUserState() *UserState {
	months := make(map[string]MonthRecord, len(monthNames))
	for _, key := range MonthKeys() {
		months[key] = MonthRecord{}
	}
	return &UserState{
		Profile: DefaultProfile(),
		Months:  months,
	}
}

// ValidRiskTolerance reports whether v is one of the accepted enum values.
func ValidRiskTolerance(v string) bool {
	switch v {
	case RiskConservative, RiskModerate, RiskAggressive:
		return true
	}
	return false
}
