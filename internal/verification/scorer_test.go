package verification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/EcoHunt_Go/internal/domain"
)

func testPhoto() Photo {
	return Photo{Data: []byte("jpeg"), ActivityType: domain.ActivityTreePlanting}
}

func TestWeights_SumToOne(t *testing.T) {
	var sum float64
	for _, w := range Weights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Len(t, Weights, 5)
}

func TestParseFailurePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    FailurePolicy
		wantErr bool
	}{
		{"", DegradeToZero, false},
		{"degrade", DegradeToZero, false},
		{"ABORT", AbortOnFailure, false},
		{"explode", DegradeToZero, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFailurePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEligibilityForScore_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  domain.EligibilityTier
	}{
		{100, domain.EligibilityPremium},
		{90, domain.EligibilityPremium},
		{89, domain.EligibilityStandard},
		{80, domain.EligibilityStandard},
		{79, domain.EligibilityBasic},
		{70, domain.EligibilityBasic},
		{69, domain.EligibilityNotEligible},
		{0, domain.EligibilityNotEligible},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EligibilityForScore(tt.score), "score %d", tt.score)
	}
}

func TestEligibilityForScore_Monotonic(t *testing.T) {
	rank := map[domain.EligibilityTier]int{
		domain.EligibilityNotEligible: 0,
		domain.EligibilityBasic:       1,
		domain.EligibilityStandard:    2,
		domain.EligibilityPremium:     3,
	}
	prev := rank[EligibilityForScore(0)]
	for score := 1; score <= 100; score++ {
		cur := rank[EligibilityForScore(score)]
		assert.GreaterOrEqual(t, cur, prev, "score %d", score)
		prev = cur
	}
}

func TestExtractScore(t *testing.T) {
	tests := []struct {
		name   string
		result any
		want   float64
	}{
		{"detected", &domain.ActivityDetection{Detected: true, Confidence: 0.8}, 0.8},
		{"not detected", &domain.ActivityDetection{Detected: false, Confidence: 0.8}, 0},
		{"authentic", &domain.AuthenticityCheck{IsAuthentic: true, AuthenticityScore: 0.9}, 0.9},
		{"not authentic", &domain.AuthenticityCheck{AuthenticityScore: 0.9}, 0},
		{"relevant", &domain.RelevanceAssessment{IsRelevant: true, RelevanceScore: 0.75}, 0.75},
		{"not relevant", &domain.RelevanceAssessment{RelevanceScore: 0.75}, 0},
		{"fraud", &domain.FraudAssessment{FraudRisk: 0.3}, 0.7},
		{"quality", &domain.QualityAssessment{OverallScore: 0.6}, 0.6},
		{"unknown", struct{}{}, NeutralScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ExtractScore(tt.result), 1e-9)
		})
	}
}

func TestExtractConfidence(t *testing.T) {
	assert.InDelta(t, 0.8, ExtractConfidence(&domain.ActivityDetection{Confidence: 0.8}), 1e-9)
	assert.InDelta(t, 0.9, ExtractConfidence(&domain.AuthenticityCheck{AuthenticityScore: 0.9}), 1e-9)
	assert.InDelta(t, 0.7, ExtractConfidence(&domain.RelevanceAssessment{RelevanceScore: 0.7}), 1e-9)
	assert.InDelta(t, NeutralConfidence, ExtractConfidence(&domain.FraudAssessment{FraudRisk: 0.2}), 1e-9)
	assert.InDelta(t, NeutralConfidence, ExtractConfidence(&domain.ActivityDetection{}), 1e-9)
}

func TestVerify_AllPass(t *testing.T) {
	detector := perfectDetector()
	scorer := NewScorer(detector, DegradeToZero)

	result := scorer.Verify(context.Background(), testPhoto())

	assert.True(t, result.IsVerified)
	assert.Equal(t, 100, result.VerificationScore)
	assert.Equal(t, 90, result.Confidence)
	assert.Equal(t, domain.EligibilityPremium, result.TokenEligibility)
	assert.Empty(t, result.SubcheckErrors)
	assert.Empty(t, result.Error)
	assert.NotNil(t, result.DetailedAnalysis.ActivityDetection)
	assert.NotNil(t, result.DetailedAnalysis.QualityAssessment)
	detector.AssertExpectations(t)
}

func TestVerify_DegradeToZero(t *testing.T) {
	detector := perfectDetector("DetectActivity")
	detector.On("DetectActivity", mock.Anything, mock.Anything).Return(nil, errors.New("model offline"))
	scorer := NewScorer(detector, DegradeToZero)

	result := scorer.Verify(context.Background(), testPhoto())

	assert.Equal(t, 65, result.VerificationScore)
	assert.False(t, result.IsVerified)
	assert.Equal(t, domain.EligibilityNotEligible, result.TokenEligibility)
	assert.Contains(t, result.SubcheckErrors[SubcheckActivityDetection], "model offline")
	assert.Nil(t, result.DetailedAnalysis.ActivityDetection)
	assert.Empty(t, result.Error)
}

func TestVerify_AbortOnFailure(t *testing.T) {
	detector := perfectDetector("AssessRelevance")
	detector.On("AssessRelevance", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	scorer := NewScorer(detector, AbortOnFailure)

	result := scorer.Verify(context.Background(), testPhoto())

	assert.False(t, result.IsVerified)
	assert.Zero(t, result.VerificationScore)
	assert.Zero(t, result.Confidence)
	assert.Equal(t, domain.EligibilityNotEligible, result.TokenEligibility)
	assert.Contains(t, result.Error, SubcheckRelevance)
}

func TestVerify_TypedNilResultCountsAsFailure(t *testing.T) {
	detector := perfectDetector("AssessFraud")
	detector.On("AssessFraud", mock.Anything, mock.Anything).Return(nil, nil)
	scorer := NewScorer(detector, DegradeToZero)

	result := scorer.Verify(context.Background(), testPhoto())

	assert.Equal(t, 85, result.VerificationScore)
	assert.Equal(t, domain.EligibilityStandard, result.TokenEligibility)
	assert.Equal(t, ErrMsgEmptyResult, result.SubcheckErrors[SubcheckFraud])
}

func TestVerify_RecoversDetectorPanic(t *testing.T) {
	detector := panickingDetector{perfectDetector("AssessQuality")}
	scorer := NewScorer(detector, DegradeToZero)

	result := scorer.Verify(context.Background(), testPhoto())

	assert.Equal(t, 95, result.VerificationScore)
	assert.Equal(t, domain.EligibilityPremium, result.TokenEligibility)
	assert.Contains(t, result.SubcheckErrors[SubcheckQuality], ErrMsgDetectorPanic)
}

func TestVerify_CancelledContextAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scorer := NewScorer(perfectDetector(), DegradeToZero)
	result := scorer.Verify(ctx, testPhoto())

	assert.False(t, result.IsVerified)
	assert.Zero(t, result.VerificationScore)
	assert.Contains(t, result.Error, context.Canceled.Error())
}

func TestVerify_ClampsOutOfRangeScores(t *testing.T) {
	detector := perfectDetector("AssessQuality")
	detector.On("AssessQuality", mock.Anything, mock.Anything).
		Return(&domain.QualityAssessment{OverallScore: 7}, nil)
	scorer := NewScorer(detector, DegradeToZero)

	result := scorer.Verify(context.Background(), testPhoto())

	assert.Equal(t, 100, result.VerificationScore)
}
