package api

import (
	"fmt"
	"net/http"

	"budgetbuddy/config"
	"budgetbuddy/db"
	"budgetbuddy/metrics"
	"budgetbuddy/models"
	"budgetbuddy/utils"

	"github.com/gin-gonic/gin"
)

// persistenceNotice is attached to mutation responses when the disk write
// failed; the in-memory state keeps the new value so the session can retry on
// the next mutation.
const persistenceNotice = "changes kept in memory but could not be saved to disk"

// ProfileUpdateRequest carries the full replacement profile. Saves are
// wholesale, never merged.
type ProfileUpdateRequest struct {
	Name                 string  `json:"name"`
	CurrentAge           int     `json:"current_age"`
	RetirementAge        int     `json:"retirement_age"`
	CurrentIncome        float64 `json:"current_income"`
	CurrentSavings       float64 `json:"current_savings"`
	RiskTolerance        string  `json:"risk_tolerance"`
	InflationRate        float64 `json:"inflation_rate"`
	MonthlySavingsTarget float64 `json:"monthly_savings_target"`
}

// ProfileResponse wraps a profile mutation result.
type ProfileResponse struct {
	Profile   models.Profile `json:"profile"`
	Persisted bool           `json:"persisted"`
	Notice    string         `json:"notice,omitempty"`
}

// GetProfileHandler returns the stored profile together with the
// rule-of-thumb recommended monthly savings (20% of income).
// @Summary      Get Profile
// @Description  Retrieves the user's financial planning profile plus the simplified recommended monthly savings amount.
// @Tags         Profile
// @Produce      json
// @Success      200 {object} map[string]interface{} "Profile and recommended monthly savings."
// @Router       /profile [get]
func GetProfileHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	profile := database.GetProfile()
	c.JSON(http.StatusOK, gin.H{
		"profile":             profile,
		"recommended_monthly": metrics.RecommendedMonthly(profile),
	})
}

// UpdateProfileHandler replaces the profile wholesale and saves.
// @Summary      Update Profile
// @Description  Replaces the whole profile. Amounts must be non-negative; risk tolerance is one of Conservative, Moderate, Aggressive. A failed disk write is reported via "persisted": false while the new values stay active for the session.
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        profile body ProfileUpdateRequest true "The full replacement profile."
// @Success      200 {object} ProfileResponse "The stored profile and persistence status."
// @Failure      400 {object} utils.APIError "Invalid body or negative amounts."
// @Router       /profile [put]
func UpdateProfileHandler(c *gin.Context, database *db.Database, cfg *config.Config) {
	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	profile := models.Profile{
		Name:                 req.Name,
		CurrentAge:           req.CurrentAge,
		RetirementAge:        req.RetirementAge,
		CurrentIncome:        req.CurrentIncome,
		CurrentSavings:       req.CurrentSavings,
		RiskTolerance:        req.RiskTolerance,
		InflationRate:        req.InflationRate,
		MonthlySavingsTarget: req.MonthlySavingsTarget,
	}
	if profile.RiskTolerance == "" {
		profile.RiskTolerance = models.RiskModerate
	}

	persisted, err := database.SetProfile(profile)
	if err != nil {
		utils.GinBadRequest(c, err.Error())
		return
	}

	resp := ProfileResponse{Profile: database.GetProfile(), Persisted: persisted}
	if !persisted {
		resp.Notice = persistenceNotice
	}
	c.JSON(http.StatusOK, resp)
}
