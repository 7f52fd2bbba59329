package api

import (
	"fmt"
	"net/http"

	"budgetbuddy/config"
	"budgetbuddy/db"
	"budgetbuddy/models"
	"budgetbuddy/utils"

	"github.com/gin-gonic/gin"
)

// MonthUpdateRequest carries one month's income and expense line items plus
// the completion flag. Totals and savings figures are derived server-side and
// cannot be submitted.
type MonthUpdateRequest struct {
	Income struct {
		Salary      float64 `json:"salary"`
		Investment  float64 `json:"investment"`
		OtherIncome float64 `json:"other_income"`
	} `json:"income"`
	Expenses struct {
		Rent           float64 `json:"rent"`
		Groceries      float64 `json:"groceries"`
		Transportation float64 `json:"transportation"`
		Utilities      float64 `json:"utilities"`
		Entertainment  float64 `json:"entertainment"`
		OtherExpenses  float64 `json:"other_expenses"`
	} `json:"expenses"`
	Completed bool `json:"completed"`
}

// MonthResponse wraps a month mutation result.
type MonthResponse struct {
	Key       string             `json:"key"`
	Record    models.MonthRecord `json:"record"`
	Persisted bool               `json:"persisted"`
	Notice    string             `json:"notice,omitempty"`
}

// isValidMonthKey reports whether key is one of the twelve tracked months.
func isValidMonthKey(key string) bool {
	for _, k := range models.MonthKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// ListMonthsHandler returns the twelve month records in calendar order,
// optionally filtered by repeated "filter" query parameters.
// @Summary      List Months
// @Description  Returns month records in calendar order. Repeated filter parameters form "path operator value" conditions joined by "and"/"or" parts, e.g. ?filter=completed equals true&filter=and&filter=income.total greaterthan 3000. Operators: equals, notequals, greaterthan, lessthan, greaterthanorequals, lessthanorequals, contains.
// @Tags         Months
// @Produce      json
// @Param        filter query []string false "Filter conditions and logical operators, alternating." collectionFormat(multi)
// @Success      200 {object} map[string]interface{} "Matching months and total count."
// @Failure      400 {object} utils.APIError "Malformed filter."
// @Router       /months [get]
func ListMonthsHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	entries, err := database.QueryMonths(c.QueryArray("filter"))
	if err != nil {
		utils.GinBadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"months": entries,
		"count":  len(entries),
	})
}

// GetMonthHandler returns a single month record.
// @Summary      Get Month
// @Description  Retrieves one month record by key (e.g. "march_2024"). Months never written yet come back zeroed with completed=false.
// @Tags         Months
// @Produce      json
// @Param        key path string true "Month key, lowercase month name plus year."
// @Success      200 {object} MonthResponse "The month record."
// @Failure      404 {object} utils.APIError "Key is not one of the tracked months."
// @Router       /months/{key} [get]
func GetMonthHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	key := c.Param("key")
	if !isValidMonthKey(key) {
		utils.GinNotFound(c, fmt.Sprintf("Unknown month key '%s'.", key))
		return
	}

	rec, _ := database.GetMonth(key) // Zero record when never written
	c.JSON(http.StatusOK, MonthResponse{Key: key, Record: rec, Persisted: true})
}

// UpdateMonthHandler replaces one month record wholesale and saves.
// @Summary      Update Month
// @Description  Replaces a month's income and expense line items. All amounts must be non-negative. Totals, cash flow and savings figures are recomputed server-side; the savings target is stamped from the current profile.
// @Tags         Months
// @Accept       json
// @Produce      json
// @Param        key path string true "Month key, lowercase month name plus year."
// @Param        month body MonthUpdateRequest true "Income and expense components plus the completion flag."
// @Success      200 {object} MonthResponse "The derived record and persistence status."
// @Failure      400 {object} utils.APIError "Invalid body or negative amounts."
// @Failure      404 {object} utils.APIError "Key is not one of the tracked months."
// @Router       /months/{key} [put]
func UpdateMonthHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	key := c.Param("key")
	if !isValidMonthKey(key) {
		utils.GinNotFound(c, fmt.Sprintf("Unknown month key '%s'.", key))
		return
	}

	var req MonthUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	rec := models.MonthRecord{
		Income: models.IncomeBreakdown{
			Salary:      req.Income.Salary,
			Investment:  req.Income.Investment,
			OtherIncome: req.Income.OtherIncome,
		},
		Expenses: models.ExpenseBreakdown{
			Rent:           req.Expenses.Rent,
			Groceries:      req.Expenses.Groceries,
			Transportation: req.Expenses.Transportation,
			Utilities:      req.Expenses.Utilities,
			Entertainment:  req.Expenses.Entertainment,
			OtherExpenses:  req.Expenses.OtherExpenses,
		},
		Completed: req.Completed,
	}

	derived, persisted, err := database.SetMonth(key, rec)
	if err != nil {
		utils.GinBadRequest(c, err.Error())
		return
	}

	resp := MonthResponse{Key: key, Record: derived, Persisted: persisted}
	if !persisted {
		resp.Notice = persistenceNotice
	}
	c.JSON(http.StatusOK, resp)
}
