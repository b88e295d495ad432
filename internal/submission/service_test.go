package submission

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/EcoHunt_Go/internal/concurrency"
	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/event"
	"github.com/osse101/EcoHunt_Go/internal/orchestrator"
	"github.com/osse101/EcoHunt_Go/internal/profile"
)

const wallet = "0x00000000000000000000000000000000000000bb"

type harness struct {
	profiles  *MockProfiles
	issuances *MockIssuances
	issuer    *MockIssuer
	publisher *recordingPublisher
	rewards   *stubRewards
	orch      *orchestrator.Orchestrator
	svc       Service
}

func newHarness(valid bool) *harness {
	h := &harness{
		profiles:  new(MockProfiles),
		issuances: new(MockIssuances),
		issuer:    new(MockIssuer),
		publisher: &recordingPublisher{},
		rewards:   &stubRewards{},
	}
	orch := orchestrator.New(orchestrator.Dependencies{
		Verifier:     stubVerifier{},
		Impact:       stubImpact{valid: valid},
		Behavior:     stubBehavior{},
		Rewards:      h.rewards,
		Gamification: stubStrategy{},
		Issuer:       h.issuer,
	})
	h.orch = orch
	h.svc = NewService(orch, h.profiles, h.issuances, h.issuer, h.publisher, concurrency.NewLockManager())
	return h
}

func submission(userID string) domain.ActivitySubmission {
	return domain.ActivitySubmission{
		ActivityType: domain.ActivityTreePlanting,
		Location:     "urban",
		Photo:        domain.PhotoData{Data: []byte("photo")},
		UserWallet:   wallet,
		UserProfile:  domain.UserProfile{UserID: userID, Streak: domain.StreakData{Current: 99}},
		UserHistory:  []domain.HistoryEntry{{ActivityType: domain.ActivityRecycling}},
	}
}

func TestSubmit_UsesStoredProfileAndRecordsOutcome(t *testing.T) {
	h := newHarness(true)
	stored := domain.UserProfile{UserID: "u1", Streak: domain.StreakData{Current: 3, Longest: 5}}
	history := []domain.HistoryEntry{
		{ActivityType: domain.ActivityComposting, Timestamp: time.Now().Add(-24 * time.Hour)},
	}
	h.profiles.On("Get", mock.Anything, "u1").Return(stored, nil)
	h.profiles.On("History", mock.Anything, "u1", profile.DefaultHistoryLimit).Return(history, nil)
	h.profiles.On("RecordOutcome", mock.Anything, "u1", mock.MatchedBy(func(e domain.HistoryEntry) bool {
		return e.RewardAmount == 4 && e.QualityScore == 88 && e.ActivityType == domain.ActivityTreePlanting && e.Location == "urban"
	})).Return(domain.UserProfile{}, nil)
	h.issuer.On("Issue", mock.Anything, mock.Anything).
		Return(domain.IssuanceReceipt{Status: domain.IssuanceConfirmed, Confirmed: true}, nil)
	h.issuances.On("SaveIssuance", mock.Anything, mock.MatchedBy(func(rec domain.IssuanceRecord) bool {
		return rec.UserID == "u1" && rec.Recipient == wallet && rec.Amount == 4 &&
			rec.Tier == domain.TokenTierStandard && rec.Status == domain.IssuanceConfirmed && rec.Attempts == 1
	})).Return(nil).Once()

	result, err := h.svc.Submit(context.Background(), submission("u1"))
	require.NoError(t, err)
	h.issuances.AssertExpectations(t)

	assert.True(t, result.Success)
	assert.Equal(t, 4.0, result.RewardAmount())
	assert.Equal(t, 3, h.rewards.last().Profile.Streak.Current, "client supplied streak must be ignored")
	h.profiles.AssertExpectations(t)
	assert.Equal(t, []event.Type{event.ActivityProcessed, event.RewardIssued}, h.publisher.types())
}

func TestSubmit_FailedResultIsNotRecorded(t *testing.T) {
	h := newHarness(true)
	h.profiles.On("Get", mock.Anything, "u1").Return(domain.UserProfile{UserID: "u1"}, nil)
	h.profiles.On("History", mock.Anything, "u1", mock.Anything).Return([]domain.HistoryEntry{}, nil)

	sub := submission("u1")
	sub.ActivityType = "bogus"
	result, err := h.svc.Submit(context.Background(), sub)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.NotNil(t, result.Fallback)
	h.profiles.AssertNotCalled(t, "RecordOutcome", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []event.Type{event.ActivityFailed}, h.publisher.types())
}

func TestSubmit_ProfileLoadError(t *testing.T) {
	h := newHarness(true)
	h.profiles.On("Get", mock.Anything, "u1").Return(domain.UserProfile{}, errors.New("db down"))

	_, err := h.svc.Submit(context.Background(), submission("u1"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgLoadProfile)
	assert.Empty(t, h.publisher.types())
	assert.Equal(t, int64(0), h.svc.Stats().TotalProcessed)
}

func TestSubmit_AnonymousUsesSubmittedProfile(t *testing.T) {
	h := newHarness(false)

	result, err := h.svc.Submit(context.Background(), submission(""))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 99, h.rewards.last().Profile.Streak.Current)
	assert.Nil(t, result.Issuance)
	h.profiles.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	h.issuer.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}

func TestSubmitBatch(t *testing.T) {
	h := newHarness(false)
	h.profiles.On("Get", mock.Anything, "u1").Return(domain.UserProfile{UserID: "u1"}, nil)
	h.profiles.On("History", mock.Anything, "u1", mock.Anything).Return([]domain.HistoryEntry{}, nil)
	h.profiles.On("RecordOutcome", mock.Anything, "u1", mock.Anything).Return(domain.UserProfile{}, nil)
	h.profiles.On("Get", mock.Anything, "broken").Return(domain.UserProfile{}, errors.New("db down"))

	batch := h.svc.SubmitBatch(context.Background(), []domain.ActivitySubmission{
		submission("u1"),
		submission("broken"),
		submission("u1"),
	})

	require.Len(t, batch.Results, 3)
	assert.True(t, batch.Results[0].Success)
	assert.False(t, batch.Results[1].Success)
	assert.Contains(t, batch.Results[1].Error, ErrMsgLoadProfile)
	assert.NotNil(t, batch.Results[1].Fallback)
	assert.True(t, batch.Results[2].Success)
	assert.Equal(t, 2, batch.Summary.Successful)
	h.profiles.AssertNumberOfCalls(t, "RecordOutcome", 2)
}

func TestStream(t *testing.T) {
	h := newHarness(false)
	in := make(chan domain.ActivitySubmission, 2)
	in <- submission("")
	in <- submission("")
	close(in)

	var got []domain.ProcessResult
	for r := range h.svc.Stream(context.Background(), in) {
		got = append(got, r)
	}

	require.Len(t, got, 2)
	assert.Equal(t, []event.Type{event.ActivityProcessed, event.ActivityProcessed}, h.publisher.types())
}

func storedReward(status domain.IssuanceStatus) domain.IssuanceRecord {
	return domain.IssuanceRecord{
		ProcessID:    "eco_1_deadbeef",
		UserID:       "u1",
		ActivityType: domain.ActivityRecycling,
		Recipient:    wallet,
		Amount:       7,
		Tier:         domain.TokenTierBasic,
		Status:       status,
		Attempts:     1,
	}
}

func storedIssueRequest(req domain.IssueRequest) bool {
	return req.Recipient == wallet && req.Amount == 7 && req.Tier == domain.TokenTierBasic &&
		req.ProcessID == "eco_1_deadbeef" && req.Metadata[orchestrator.IssueMetaUserID] == "u1"
}

func TestRetryIssuance(t *testing.T) {
	req := domain.RetryIssuanceRequest{ProcessID: "eco_1_deadbeef"}

	t.Run("invalid request", func(t *testing.T) {
		h := newHarness(true)
		_, err := h.svc.RetryIssuance(context.Background(), domain.RetryIssuanceRequest{})
		assert.ErrorIs(t, err, domain.ErrValidation)
		h.issuer.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})

	t.Run("unknown process", func(t *testing.T) {
		h := newHarness(true)
		h.issuances.On("GetIssuance", mock.Anything, req.ProcessID).Return(nil, domain.ErrRewardNotFound)

		_, err := h.svc.RetryIssuance(context.Background(), req)

		assert.ErrorIs(t, err, domain.ErrRewardNotFound)
		h.issuer.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})

	t.Run("issuer failure", func(t *testing.T) {
		h := newHarness(true)
		rec := storedReward(domain.IssuanceFailed)
		h.issuances.On("GetIssuance", mock.Anything, req.ProcessID).Return(&rec, nil)
		h.issuances.On("SaveIssuance", mock.Anything, mock.MatchedBy(func(r domain.IssuanceRecord) bool {
			return r.Status == domain.IssuanceFailed && r.Attempts == 2 && r.Error != ""
		})).Return(nil).Once()
		h.issuer.On("Issue", mock.Anything, mock.MatchedBy(storedIssueRequest)).
			Return(domain.IssuanceReceipt{}, domain.ErrIssuanceNetwork)

		receipt, err := h.svc.RetryIssuance(context.Background(), req)

		assert.ErrorIs(t, err, domain.ErrIssuanceFailure)
		assert.ErrorIs(t, err, domain.ErrIssuanceNetwork)
		assert.Equal(t, domain.IssuanceFailed, receipt.Status)
		assert.Equal(t, []event.Type{event.IssuanceFailed}, h.publisher.types())
		h.issuances.AssertExpectations(t)
	})

	t.Run("success uses the stored decision", func(t *testing.T) {
		h := newHarness(true)
		rec := storedReward(domain.IssuanceFailed)
		h.issuances.On("GetIssuance", mock.Anything, req.ProcessID).Return(&rec, nil)
		h.issuances.On("SaveIssuance", mock.Anything, mock.MatchedBy(func(r domain.IssuanceRecord) bool {
			return r.Status == domain.IssuanceConfirmed && r.TransactionRef == "0xabc" && r.Amount == 7
		})).Return(nil).Once()
		h.issuer.On("Issue", mock.Anything, mock.MatchedBy(storedIssueRequest)).
			Return(domain.IssuanceReceipt{Status: domain.IssuanceConfirmed, TransactionRef: "0xabc"}, nil)

		receipt, err := h.svc.RetryIssuance(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "0xabc", receipt.TransactionRef)
		assert.Equal(t, []event.Type{event.RewardIssued}, h.publisher.types())
		h.issuances.AssertExpectations(t)
	})

	for _, status := range []domain.IssuanceStatus{domain.IssuanceConfirmed, domain.IssuanceSubmitted} {
		t.Run("refuses "+string(status)+" reward", func(t *testing.T) {
			h := newHarness(true)
			rec := storedReward(status)
			rec.TransactionRef = "0xpaid"
			h.issuances.On("GetIssuance", mock.Anything, req.ProcessID).Return(&rec, nil)

			receipt, err := h.svc.RetryIssuance(context.Background(), req)

			assert.ErrorIs(t, err, domain.ErrAlreadyIssued)
			assert.Equal(t, "0xpaid", receipt.TransactionRef)
			h.issuer.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
			h.issuances.AssertNotCalled(t, "SaveIssuance", mock.Anything, mock.Anything)
			assert.Empty(t, h.publisher.types())
		})
	}

	t.Run("no issuer", func(t *testing.T) {
		h := newHarness(true)
		svc := NewService(orchestrator.New(orchestrator.Dependencies{}), nil, h.issuances, nil, nil, nil)
		_, err := svc.RetryIssuance(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrIssuanceUnavailable)
		assert.Empty(t, h.publisher.types())
	})

	t.Run("no issuance store", func(t *testing.T) {
		h := newHarness(true)
		svc := NewService(h.orch, nil, nil, h.issuer, nil, nil)
		_, err := svc.RetryIssuance(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrRewardNotFound)
		h.issuer.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})
}

func TestRetryIssuance_SecondRetryOfConfirmedIsRejected(t *testing.T) {
	h := newHarness(true)
	store := newMemIssuances(storedReward(domain.IssuanceFailed))
	svc := NewService(h.orch, nil, store, h.issuer, h.publisher, nil)
	h.issuer.On("Issue", mock.Anything, mock.MatchedBy(storedIssueRequest)).
		Return(domain.IssuanceReceipt{Status: domain.IssuanceConfirmed, TransactionRef: "0xabc", Confirmed: true}, nil).
		Once()
	req := domain.RetryIssuanceRequest{ProcessID: "eco_1_deadbeef"}

	first, err := svc.RetryIssuance(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.IssuanceConfirmed, first.Status)

	second, err := svc.RetryIssuance(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrAlreadyIssued)
	assert.Equal(t, "0xabc", second.TransactionRef)

	h.issuer.AssertNumberOfCalls(t, "Issue", 1)
	stored, err := store.GetIssuance(context.Background(), req.ProcessID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Attempts)
	assert.Equal(t, []event.Type{event.RewardIssued}, h.publisher.types())
}

func TestRetryIssuance_ConcurrentRetriesIssueOnce(t *testing.T) {
	h := newHarness(true)
	store := newMemIssuances(storedReward(domain.IssuanceFailed))
	svc := NewService(h.orch, nil, store, h.issuer, nil, nil)
	h.issuer.On("Issue", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { time.Sleep(10 * time.Millisecond) }).
		Return(domain.IssuanceReceipt{Status: domain.IssuanceConfirmed, Confirmed: true}, nil)

	const n = 5
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RetryIssuance(context.Background(), domain.RetryIssuanceRequest{ProcessID: "eco_1_deadbeef"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, refused int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrAlreadyIssued):
			refused++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, refused)
	h.issuer.AssertNumberOfCalls(t, "Issue", 1)
}
