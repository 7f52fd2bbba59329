package api

import (
	"errors"
	"fmt"
	"net/http"

	"budgetbuddy/advisor"
	"budgetbuddy/config"
	"budgetbuddy/db"
	"budgetbuddy/metrics"
	"budgetbuddy/models"
	"budgetbuddy/utils"

	"github.com/gin-gonic/gin"
)

// GenerateAnalysisRequest selects the analysis focus. An empty or unknown
// type falls back to the comprehensive review.
type GenerateAnalysisRequest struct {
	AnalysisType string `json:"analysis_type"`
}

// ApplyTargetRequest carries the user-chosen new monthly savings target.
type ApplyTargetRequest struct {
	NewTarget *float64 `json:"new_target" binding:"required"`
}

// ApplyTargetResponse reports the applied target.
type ApplyTargetResponse struct {
	Profile      models.Profile `json:"profile"`
	TargetChange string         `json:"target_change"`
	Persisted    bool           `json:"persisted"`
	Notice       string         `json:"notice,omitempty"`
}

// GenerateAnalysisHandler runs one blocking AI analysis request.
// @Summary      Generate Analysis
// @Description  Builds a financial context from the stored state, asks the language model for the selected analysis and extracts a recommended savings target when the response carries the recommendation marker. Only one request may be outstanding at a time. Model failures come back as a normal result whose text explains the failure.
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Param        request body GenerateAnalysisRequest true "Analysis focus: Comprehensive Review, Savings Strategy, Expense Optimization or Retirement Planning."
// @Success      200 {object} advisor.Result "The completed analysis."
// @Failure      400 {object} utils.APIError "Invalid request body."
// @Failure      409 {object} utils.APIError "An analysis request is already in progress."
// @Router       /analysis [post]
func GenerateAnalysisHandler(c *gin.Context, session *advisor.Session, cfg *config.Config) {
	var req GenerateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if req.AnalysisType == "" {
		req.AnalysisType = advisor.AnalysisComprehensive
	}

	result, err := session.Generate(c.Request.Context(), req.AnalysisType)
	if err != nil {
		if errors.Is(err, advisor.ErrAnalysisInProgress) {
			utils.GinConflict(c, err.Error())
			return
		}
		utils.GinInternalServerError(c, fmt.Sprintf("Analysis failed: %v", err))
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAnalysisHandler returns the session state and the last analysis result.
// @Summary      Get Analysis State
// @Description  Returns the analysis session state (idle, generating, displayed, applied), the last result if one exists and the list of supported analysis types.
// @Tags         Analysis
// @Produce      json
// @Success      200 {object} map[string]interface{} "Session state and last result."
// @Router       /analysis [get]
func GetAnalysisHandler(c *gin.Context, session *advisor.Session, cfg *config.Config) {
	state, result := session.Current()
	c.JSON(http.StatusOK, gin.H{
		"state":          state,
		"result":         result,
		"analysis_types": advisor.AnalysisTypes,
	})
}

// ApplyRecommendationHandler writes a user-chosen savings target back into
// the profile.
// @Summary      Apply Recommended Target
// @Description  Applies a new monthly savings target after an analysis produced a recommendation. The target must lie within [0, max(1.5 x recommended, 2 x current, 5000)]. The response reports the percent change against the previous target ("+0%" when the previous target was zero).
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Param        request body ApplyTargetRequest true "The new monthly savings target."
// @Success      200 {object} ApplyTargetResponse "The updated profile and persistence status."
// @Failure      400 {object} utils.APIError "Invalid body or target out of range."
// @Failure      409 {object} utils.APIError "No recommendation is on offer."
// @Router       /analysis/apply [post]
func ApplyRecommendationHandler(c *gin.Context, session *advisor.Session, database *db.Database, cfg *config.Config) {
	var req ApplyTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	previousTarget := database.GetProfile().MonthlySavingsTarget

	profile, persisted, err := session.Apply(*req.NewTarget)
	if err != nil {
		switch {
		case errors.Is(err, advisor.ErrNoRecommendation):
			utils.GinConflict(c, err.Error())
		case errors.Is(err, advisor.ErrTargetOutOfRange):
			utils.GinBadRequest(c, err.Error())
		default:
			utils.GinBadRequest(c, err.Error())
		}
		return
	}

	resp := ApplyTargetResponse{
		Profile:      profile,
		TargetChange: metrics.PercentChange(previousTarget, profile.MonthlySavingsTarget),
		Persisted:    persisted,
	}
	if !persisted {
		resp.Notice = persistenceNotice
	}
	c.JSON(http.StatusOK, resp)
}
