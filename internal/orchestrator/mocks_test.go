package orchestrator

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/gamification"
	"github.com/osse101/EcoHunt_Go/internal/impact"
	"github.com/osse101/EcoHunt_Go/internal/verification"
)

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, photo verification.Photo) domain.VerificationResult {
	args := m.Called(ctx, photo)
	return args.Get(0).(domain.VerificationResult)
}

type MockImpact struct {
	mock.Mock
}

func (m *MockImpact) EstimateCarbon(a impact.Activity) domain.CarbonEstimate {
	args := m.Called(a)
	return args.Get(0).(domain.CarbonEstimate)
}

func (m *MockImpact) ScoreSustainability(a impact.Activity) domain.SustainabilityScore {
	args := m.Called(a)
	return args.Get(0).(domain.SustainabilityScore)
}

func (m *MockImpact) AssessImpact(a impact.Activity) domain.ImpactAssessment {
	args := m.Called(a)
	return args.Get(0).(domain.ImpactAssessment)
}

func (m *MockImpact) Validate(a impact.Activity, verdict domain.VerificationResult) domain.ActivityValidation {
	args := m.Called(a, verdict)
	return args.Get(0).(domain.ActivityValidation)
}

type MockBehavior struct {
	mock.Mock
}

func (m *MockBehavior) Analyze(ctx context.Context, profile domain.UserProfile, history []domain.HistoryEntry) domain.BehaviorProfile {
	args := m.Called(ctx, profile, history)
	return args.Get(0).(domain.BehaviorProfile)
}

func (m *MockBehavior) Commit(userID string, sample domain.BehaviorMetrics) {
	m.Called(userID, sample)
}

type MockRewards struct {
	mock.Mock
}

func (m *MockRewards) Calculate(ctx context.Context, in domain.RewardInput) domain.RewardResult {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.RewardResult)
}

type MockStrategy struct {
	mock.Mock
}

func (m *MockStrategy) Build(ctx context.Context, in gamification.Input) domain.GamificationStrategy {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.GamificationStrategy)
}

type MockIssuer struct {
	mock.Mock
}

func (m *MockIssuer) Issue(ctx context.Context, req domain.IssueRequest) (domain.IssuanceReceipt, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.IssuanceReceipt), args.Error(1)
}

type MockPhotoStore struct {
	mock.Mock
}

func (m *MockPhotoStore) Fetch(ctx context.Context, ref string) ([]byte, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockPhotoStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

type MockPhotoRegistry struct {
	mock.Mock
}

func (m *MockPhotoRegistry) Reserve(data []byte) bool {
	args := m.Called(data)
	return args.Bool(0)
}

func (m *MockPhotoRegistry) Commit(data []byte) {
	m.Called(data)
}

func (m *MockPhotoRegistry) Release(data []byte) {
	m.Called(data)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) ObserveResult(result domain.ProcessResult) {
	m.Called(result)
}
