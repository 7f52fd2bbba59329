package advisor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"budgetbuddy/config"
	"budgetbuddy/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient returns a canned response or error. When block is non-nil the
// call signals started and waits for release, to exercise the in-progress
// guard.
type stubClient struct {
	response string
	err      error
	started  chan struct{}
	release  chan struct{}
}

func (s *stubClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if s.started != nil {
		close(s.started)
		<-s.release
	}
	return s.response, s.err
}

func newSessionStore(t *testing.T) *db.Database {
	t.Helper()
	tempDir := t.TempDir()
	cfg := &config.Config{
		DataDir:      tempDir,
		UserID:       "test_user",
		DataFilePath: filepath.Join(tempDir, "test_user.json"),
		SaveInterval: 0,
		EnableBackup: false,
	}
	store, err := db.NewDatabase(cfg)
	require.NoError(t, err)
	return store
}

func TestSession_InitialState(t *testing.T) {
	session := NewSession(&stubClient{}, newSessionStore(t))

	state, result := session.Current()
	assert.Equal(t, StateIdle, state)
	assert.Nil(t, result)
}

func TestGenerate_SuccessWithRecommendation(t *testing.T) {
	client := &stubClient{
		response: "Tighten spending.\nNEW SAVINGS TARGET: $1,500.00\nGood luck.",
	}
	session := NewSession(client, newSessionStore(t))

	result, err := session.Generate(context.Background(), AnalysisSavings)
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, AnalysisSavings, result.AnalysisType)
	assert.True(t, result.HasRecommendation)
	assert.Equal(t, 1500.0, result.RecommendedAmount)
	assert.Equal(t, 1000.0, result.CurrentTarget)
	assert.Equal(t, 5000.0, result.MaxAdjustment, "floor of 5000 dominates 1.5x1500 and 2x1000")
	assert.Contains(t, result.Highlighted, "**$1,500.00**")
	assert.WithinDuration(t, time.Now().UTC(), result.GeneratedAt, 5*time.Second)

	state, _ := session.Current()
	assert.Equal(t, StateDisplayed, state)
}

func TestGenerate_NoMarkerInResponse(t *testing.T) {
	client := &stubClient{response: "You are doing fine. Keep saving around $1,000 a month."}
	session := NewSession(client, newSessionStore(t))

	result, err := session.Generate(context.Background(), AnalysisComprehensive)
	require.NoError(t, err)

	assert.False(t, result.HasRecommendation)
	assert.Zero(t, result.RecommendedAmount)
	assert.Contains(t, result.Highlighted, "**$1,000**")
}

func TestGenerate_ClientError_FoldedIntoResult(t *testing.T) {
	client := &stubClient{err: errors.New("model timed out")}
	session := NewSession(client, newSessionStore(t))

	result, err := session.Generate(context.Background(), AnalysisExpenses)
	require.NoError(t, err, "model failures are reported in the result, not raised")

	assert.Contains(t, result.Response, "model timed out")
	assert.False(t, result.HasRecommendation)

	state, _ := session.Current()
	assert.Equal(t, StateDisplayed, state, "a failed generation still lands in displayed")
}

func TestGenerate_NilClient(t *testing.T) {
	session := NewSession(nil, newSessionStore(t))

	result, err := session.Generate(context.Background(), AnalysisComprehensive)
	require.NoError(t, err)

	assert.Contains(t, result.Response, "AI advisor not available")
	assert.False(t, result.HasRecommendation)
}

func TestGenerate_RejectsConcurrentRequest(t *testing.T) {
	client := &stubClient{
		response: "NEW SAVINGS TARGET: $1,200",
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	session := NewSession(client, newSessionStore(t))

	done := make(chan error, 1)
	go func() {
		_, err := session.Generate(context.Background(), AnalysisComprehensive)
		done <- err
	}()

	select {
	case <-client.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first generation never reached the model client")
	}

	state, _ := session.Current()
	assert.Equal(t, StateGenerating, state)

	_, err := session.Generate(context.Background(), AnalysisSavings)
	assert.ErrorIs(t, err, ErrAnalysisInProgress)

	close(client.release)
	require.NoError(t, <-done)

	state, _ = session.Current()
	assert.Equal(t, StateDisplayed, state)
}

func TestApply_Success(t *testing.T) {
	store := newSessionStore(t)
	client := &stubClient{response: "NEW SAVINGS TARGET: $1,500.00"}
	session := NewSession(client, store)

	_, err := session.Generate(context.Background(), AnalysisSavings)
	require.NoError(t, err)

	profile, persisted, err := session.Apply(1400)
	require.NoError(t, err)
	assert.True(t, persisted)
	assert.Equal(t, 1400.0, profile.MonthlySavingsTarget)
	assert.Equal(t, 1400.0, store.GetProfile().MonthlySavingsTarget)

	state, result := session.Current()
	assert.Equal(t, StateApplied, state)
	assert.Equal(t, 1400.0, result.CurrentTarget)
}

func TestApply_WithoutRecommendation(t *testing.T) {
	session := NewSession(&stubClient{response: "no marker here"}, newSessionStore(t))

	_, _, err := session.Apply(1000)
	assert.ErrorIs(t, err, ErrNoRecommendation)

	_, genErr := session.Generate(context.Background(), AnalysisComprehensive)
	require.NoError(t, genErr)
	_, _, err = session.Apply(1000)
	assert.ErrorIs(t, err, ErrNoRecommendation, "analysis without a marker offers nothing to apply")
}

func TestApply_OutOfRange(t *testing.T) {
	client := &stubClient{response: "NEW SAVINGS TARGET: $1,500"}
	session := NewSession(client, newSessionStore(t))

	_, err := session.Generate(context.Background(), AnalysisSavings)
	require.NoError(t, err)

	_, _, err = session.Apply(-1)
	assert.ErrorIs(t, err, ErrTargetOutOfRange)

	_, _, err = session.Apply(5001)
	assert.ErrorIs(t, err, ErrTargetOutOfRange, "ceiling is max(1.5x1500, 2x1000, 5000) = 5000")

	_, _, err = session.Apply(5000)
	assert.NoError(t, err, "the ceiling itself is allowed")
}

func TestAdjustmentCeiling(t *testing.T) {
	assert.Equal(t, 5000.0, adjustmentCeiling(1000, 1000), "floor dominates small values")
	assert.Equal(t, 9000.0, adjustmentCeiling(6000, 1000), "1.5x recommended dominates")
	assert.Equal(t, 8000.0, adjustmentCeiling(1000, 4000), "2x current dominates")
}
