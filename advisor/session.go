package advisor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"budgetbuddy/db"
	"budgetbuddy/models"
	"budgetbuddy/utils"
)

// State of the analysis flow. Session-scoped, never persisted.
type State string

const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateDisplayed  State = "displayed"
	StateApplied    State = "applied"
)

var (
	// ErrAnalysisInProgress is returned while a generation request is
	// outstanding; the flow is non-reentrant.
	ErrAnalysisInProgress = errors.New("an analysis request is already in progress")
	// ErrNoRecommendation is returned by Apply when the last analysis did not
	// yield an extractable savings target.
	ErrNoRecommendation = errors.New("no savings target recommendation available to apply")
	// ErrTargetOutOfRange is returned by Apply for targets outside the
	// adjustment bounds.
	ErrTargetOutOfRange = errors.New("new target is outside the allowed adjustment range")
)

// Result holds one completed analysis: the model response, display variant
// and, when extraction succeeded, the candidate new target with its
// adjustment bounds.
type Result struct {
	ID                string    `json:"id"`
	AnalysisType      string    `json:"analysis_type"`
	Response          string    `json:"response"`
	Highlighted       string    `json:"highlighted_response"`
	HasRecommendation bool      `json:"has_recommendation"`
	RecommendedAmount float64   `json:"recommended_amount"`
	CurrentTarget     float64   `json:"current_target"`
	MaxAdjustment     float64   `json:"max_adjustment"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// Session drives the analysis state machine:
//
//	Idle -> Generating -> Displayed -> (Applied -> Displayed) ...
//
// A single request may be outstanding at a time. Generation failures land in
// Displayed with an error-text payload and no recommendation; nothing in this
// flow is fatal to the session.
type Session struct {
	mu     sync.Mutex
	state  State
	result *Result
	client Client
	store  *db.Database
}

// NewSession creates an idle analysis session. A nil client is allowed: the
// model is then reported as unavailable in the analysis text instead of
// failing the session.
func NewSession(client Client, store *db.Database) *Session {
	return &Session{
		state:  StateIdle,
		client: client,
		store:  store,
	}
}

// Current returns the session state and a copy of the last result, if any.
func (s *Session) Current() (State, *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return s.state, nil
	}
	result := *s.result
	return s.state, &result
}

// Generate runs one blocking analysis request: build context and prompt from
// a state snapshot, call the model, extract the recommendation. Returns
// ErrAnalysisInProgress if a request is already outstanding; any model
// failure is folded into the returned result instead of an error.
func (s *Session) Generate(ctx context.Context, analysisType string) (*Result, error) {
	s.mu.Lock()
	if s.state == StateGenerating {
		s.mu.Unlock()
		return nil, ErrAnalysisInProgress
	}
	s.state = StateGenerating
	s.mu.Unlock()

	profile, months := s.store.Snapshot()
	result := s.runAnalysis(ctx, analysisType, profile, months)

	s.mu.Lock()
	s.result = result
	s.state = StateDisplayed
	s.mu.Unlock()

	copied := *result
	return &copied, nil
}

func (s *Session) runAnalysis(ctx context.Context, analysisType string, profile models.Profile, months map[string]models.MonthRecord) *Result {
	result := &Result{
		ID:            utils.GenerateDashlessUUID(),
		AnalysisType:  analysisType,
		CurrentTarget: profile.MonthlySavingsTarget,
		GeneratedAt:   time.Now().UTC(),
	}

	if s.client == nil {
		result.Response = "AI advisor not available. Please check your Gemini configuration."
		result.Highlighted = result.Response
		return result
	}

	financialContext := BuildFinancialContext(profile, months)
	prompt := BuildAnalysisPrompt(financialContext, analysisType)

	response, err := s.client.Complete(ctx, SystemPrompt, prompt)
	if err != nil {
		log.Printf("WARN: Analysis generation failed: %v", err)
		result.Response = fmt.Sprintf("Error generating analysis: %v", err)
		result.Highlighted = result.Response
		return result
	}

	result.Response = response
	result.Highlighted = HighlightAmounts(response)

	if amount, ok := ExtractSavingsTarget(response); ok {
		result.HasRecommendation = true
		result.RecommendedAmount = amount
		result.MaxAdjustment = adjustmentCeiling(amount, profile.MonthlySavingsTarget)
	}

	return result
}

// Apply writes a user-chosen savings target back into the profile. Only
// valid after an analysis produced a recommendation; the target must lie in
// [0, MaxAdjustment]. Returns the updated profile and whether the change
// reached disk (false means retained in memory only).
func (s *Session) Apply(newTarget float64) (models.Profile, bool, error) {
	s.mu.Lock()
	if s.result == nil || !s.result.HasRecommendation {
		s.mu.Unlock()
		return models.Profile{}, false, ErrNoRecommendation
	}
	ceiling := s.result.MaxAdjustment
	s.mu.Unlock()

	if newTarget < 0 || newTarget > ceiling {
		return models.Profile{}, false, ErrTargetOutOfRange
	}

	profile, persisted, err := s.store.UpdateSavingsTarget(newTarget)
	if err != nil {
		return models.Profile{}, false, err
	}

	s.mu.Lock()
	s.state = StateApplied
	s.result.CurrentTarget = newTarget
	s.mu.Unlock()

	return profile, persisted, nil
}

// adjustmentCeiling bounds the user-adjustable target slider:
// max(1.5 x recommended, 2 x current, 5000).
func adjustmentCeiling(recommended, current float64) float64 {
	ceiling := recommended * 1.5
	if c := current * 2; c > ceiling {
		ceiling = c
	}
	if ceiling < 5000 {
		ceiling = 5000
	}
	return ceiling
}
