package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/impact"
)

func TestHandleCarbonScore(t *testing.T) {
	calc := impact.NewCalculator()
	req := ScoreRequest{
		ActivityType: domain.ActivityTreePlanting,
		Scale:        3,
		Evidence:     domain.ActivityEvidence{BeforeAfterPhotos: true, MeasurableOutcomes: true},
		HasPhoto:     true,
	}

	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/score/carbon", encodeBody(t, req))
	w := httptest.NewRecorder()

	HandleCarbonScore(calc).ServeHTTP(w, httpReq)

	require.Equal(t, http.StatusOK, w.Code)
	var got domain.CarbonEstimate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	want := calc.EstimateCarbon(req.activity())
	assert.InDelta(t, want.CarbonImpact, got.CarbonImpact, 1e-9)
	assert.Equal(t, want.ImpactCategory, got.ImpactCategory)
	assert.Greater(t, got.CarbonImpact, 0.0)
}

func TestHandleSustainabilityScore(t *testing.T) {
	calc := impact.NewCalculator()

	t.Run("scores the activity", func(t *testing.T) {
		req := ScoreRequest{ActivityType: domain.ActivityComposting}

		httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/score/sustainability", encodeBody(t, req))
		w := httptest.NewRecorder()

		HandleSustainabilityScore(calc).ServeHTTP(w, httpReq)

		require.Equal(t, http.StatusOK, w.Code)
		var got domain.SustainabilityScore
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, calc.ScoreSustainability(req.activity()).Score, got.Score)
	})

	t.Run("unknown activity type", func(t *testing.T) {
		httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/score/sustainability",
			bytes.NewBufferString(`{"activityType":"bird-watching"}`))
		w := httptest.NewRecorder()

		HandleSustainabilityScore(calc).ServeHTTP(w, httpReq)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Unknown activity type")
	})
}

func TestScoreRequestDefaultsScale(t *testing.T) {
	a := ScoreRequest{ActivityType: domain.ActivityRecycling}.activity()
	assert.Equal(t, domain.DefaultScale, a.Scale)
	assert.False(t, a.HasPhoto)
}
