package verification

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/EcoHunt_Go/internal/domain"
)

// MockDetector implements Detector for testing
type MockDetector struct {
	mock.Mock
}

func (m *MockDetector) DetectActivity(ctx context.Context, photo Photo) (*domain.ActivityDetection, error) {
	args := m.Called(ctx, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityDetection), args.Error(1)
}

func (m *MockDetector) CheckAuthenticity(ctx context.Context, photo Photo) (*domain.AuthenticityCheck, error) {
	args := m.Called(ctx, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthenticityCheck), args.Error(1)
}

func (m *MockDetector) AssessRelevance(ctx context.Context, photo Photo) (*domain.RelevanceAssessment, error) {
	args := m.Called(ctx, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RelevanceAssessment), args.Error(1)
}

func (m *MockDetector) AssessFraud(ctx context.Context, photo Photo) (*domain.FraudAssessment, error) {
	args := m.Called(ctx, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FraudAssessment), args.Error(1)
}

func (m *MockDetector) AssessQuality(ctx context.Context, photo Photo) (*domain.QualityAssessment, error) {
	args := m.Called(ctx, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QualityAssessment), args.Error(1)
}

// perfectDetector returns a mock where every sub-check passes with full marks.
// Methods named in skip are left unconfigured so the test can set them.
func perfectDetector(skip ...string) *MockDetector {
	m := new(MockDetector)
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	if !skipped["DetectActivity"] {
		m.On("DetectActivity", mock.Anything, mock.Anything).
			Return(&domain.ActivityDetection{Detected: true, Confidence: 1}, nil)
	}
	if !skipped["CheckAuthenticity"] {
		m.On("CheckAuthenticity", mock.Anything, mock.Anything).
			Return(&domain.AuthenticityCheck{IsAuthentic: true, AuthenticityScore: 1}, nil)
	}
	if !skipped["AssessRelevance"] {
		m.On("AssessRelevance", mock.Anything, mock.Anything).
			Return(&domain.RelevanceAssessment{IsRelevant: true, RelevanceScore: 1}, nil)
	}
	if !skipped["AssessFraud"] {
		m.On("AssessFraud", mock.Anything, mock.Anything).
			Return(&domain.FraudAssessment{FraudRisk: 0}, nil)
	}
	if !skipped["AssessQuality"] {
		m.On("AssessQuality", mock.Anything, mock.Anything).
			Return(&domain.QualityAssessment{OverallScore: 1}, nil)
	}
	return m
}

// panickingDetector panics in AssessQuality and passes everything else
type panickingDetector struct {
	*MockDetector
}

func (p panickingDetector) AssessQuality(context.Context, Photo) (*domain.QualityAssessment, error) {
	panic("model crashed")
}
