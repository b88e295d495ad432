package submission

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/event"
	"github.com/osse101/EcoHunt_Go/internal/gamification"
	"github.com/osse101/EcoHunt_Go/internal/impact"
	"github.com/osse101/EcoHunt_Go/internal/verification"
)

type MockProfiles struct {
	mock.Mock
}

func (m *MockProfiles) Get(ctx context.Context, userID string) (domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.UserProfile), args.Error(1)
}

func (m *MockProfiles) History(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}

func (m *MockProfiles) RecordOutcome(ctx context.Context, userID string, entry domain.HistoryEntry) (domain.UserProfile, error) {
	args := m.Called(ctx, userID, entry)
	return args.Get(0).(domain.UserProfile), args.Error(1)
}

func (m *MockProfiles) Invalidate(userID string) {
	m.Called(userID)
}

type MockIssuer struct {
	mock.Mock
}

func (m *MockIssuer) Issue(ctx context.Context, req domain.IssueRequest) (domain.IssuanceReceipt, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.IssuanceReceipt), args.Error(1)
}

type MockIssuances struct {
	mock.Mock
}

func (m *MockIssuances) SaveIssuance(ctx context.Context, rec domain.IssuanceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockIssuances) GetIssuance(ctx context.Context, processID string) (*domain.IssuanceRecord, error) {
	args := m.Called(ctx, processID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IssuanceRecord), args.Error(1)
}

// memIssuances is an in-memory issuance store
type memIssuances struct {
	mu      sync.Mutex
	records map[string]domain.IssuanceRecord
}

func newMemIssuances(recs ...domain.IssuanceRecord) *memIssuances {
	m := &memIssuances{records: make(map[string]domain.IssuanceRecord)}
	for _, r := range recs {
		m.records[r.ProcessID] = r
	}
	return m
}

func (m *memIssuances) SaveIssuance(_ context.Context, rec domain.IssuanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ProcessID] = rec
	return nil
}

func (m *memIssuances) GetIssuance(_ context.Context, processID string) (*domain.IssuanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[processID]
	if !ok {
		return nil, domain.ErrRewardNotFound
	}
	return &rec, nil
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(_ context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// Pipeline stubs with fixed outputs

type stubVerifier struct{}

func (stubVerifier) Verify(context.Context, verification.Photo) domain.VerificationResult {
	return domain.VerificationResult{IsVerified: true, VerificationScore: 88, Confidence: 90}
}

type stubImpact struct{ valid bool }

func (stubImpact) EstimateCarbon(impact.Activity) domain.CarbonEstimate {
	return domain.CarbonEstimate{CarbonImpact: 10}
}

func (stubImpact) ScoreSustainability(impact.Activity) domain.SustainabilityScore {
	return domain.SustainabilityScore{Score: 70}
}

func (stubImpact) AssessImpact(impact.Activity) domain.ImpactAssessment {
	return domain.ImpactAssessment{}
}

func (s stubImpact) Validate(impact.Activity, domain.VerificationResult) domain.ActivityValidation {
	return domain.ActivityValidation{IsValid: s.valid}
}

type stubBehavior struct{}

func (stubBehavior) Analyze(context.Context, domain.UserProfile, []domain.HistoryEntry) domain.BehaviorProfile {
	return domain.BehaviorProfile{BehaviorScore: 50}
}

func (stubBehavior) Commit(string, domain.BehaviorMetrics) {}

// stubRewards pays streak+1 tokens and remembers what it saw
type stubRewards struct {
	mu   sync.Mutex
	seen []domain.RewardInput
}

func (s *stubRewards) Calculate(_ context.Context, in domain.RewardInput) domain.RewardResult {
	s.mu.Lock()
	s.seen = append(s.seen, in)
	s.mu.Unlock()
	return domain.RewardResult{RewardAmount: float64(in.Profile.Streak.Current + 1), TokenTier: domain.TokenTierStandard}
}

func (s *stubRewards) last() domain.RewardInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[len(s.seen)-1]
}

type stubStrategy struct{}

func (stubStrategy) Build(context.Context, gamification.Input) domain.GamificationStrategy {
	return domain.GamificationStrategy{}
}
