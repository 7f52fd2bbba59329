package api

import (
	"net/http"

	"budgetbuddy/config"
	"budgetbuddy/db"
	"budgetbuddy/metrics"

	"github.com/gin-gonic/gin"
)

// SummaryResponse aggregates the dashboard figures: yearly savings
// performance, averages over completed months and the rule-of-thumb
// recommendation.
type SummaryResponse struct {
	Yearly             metrics.YearSummary `json:"yearly"`
	Averages           metrics.Averages    `json:"averages"`
	CompletedMonths    int                 `json:"completed_months"`
	RecommendedMonthly float64             `json:"recommended_monthly"`
}

// GetSummaryHandler computes the dashboard summary from a state snapshot.
// @Summary      Get Summary
// @Description  Returns yearly target/actual totals, the completion rate, monthly averages over completed months (zeros when none are completed) and the 20%-of-income recommended monthly savings.
// @Tags         Summary
// @Produce      json
// @Success      200 {object} SummaryResponse "The computed dashboard summary."
// @Router       /summary [get]
func GetSummaryHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	profile, months := database.Snapshot()

	completed := metrics.CompletedMonths(months)
	c.JSON(http.StatusOK, SummaryResponse{
		Yearly:             metrics.YearlySummary(months),
		Averages:           metrics.MonthlyAverages(completed),
		CompletedMonths:    len(completed),
		RecommendedMonthly: metrics.RecommendedMonthly(profile),
	})
}
