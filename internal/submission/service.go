package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/EcoHunt_Go/internal/concurrency"
	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/event"
	"github.com/osse101/EcoHunt_Go/internal/issuance"
	"github.com/osse101/EcoHunt_Go/internal/logger"
	"github.com/osse101/EcoHunt_Go/internal/orchestrator"
	"github.com/osse101/EcoHunt_Go/internal/profile"
	"github.com/osse101/EcoHunt_Go/internal/repository"
	"github.com/osse101/EcoHunt_Go/internal/validation"
)

// Service is the entry point for activity submissions. It loads the stored
// profile and history, runs the orchestrator, records the outcome and
// publishes events.
type Service interface {
	Submit(ctx context.Context, sub domain.ActivitySubmission) (domain.ProcessResult, error)
	SubmitBatch(ctx context.Context, subs []domain.ActivitySubmission) domain.BatchResult
	Stream(ctx context.Context, in <-chan domain.ActivitySubmission) <-chan domain.ProcessResult
	RetryIssuance(ctx context.Context, req domain.RetryIssuanceRequest) (domain.IssuanceReceipt, error)
	Stats() domain.OrchestratorStats
}

type service struct {
	orchestrator *orchestrator.Orchestrator
	profiles     profile.Service
	issuances    repository.Issuance
	issuer       issuance.Issuer
	publisher    event.Publisher
	lockManager  *concurrency.LockManager
	now          func() time.Time
}

// NewService creates a submission service. profiles, issuances, issuer and
// publisher may be nil; without issuances rewards cannot be retried.
func NewService(
	orch *orchestrator.Orchestrator,
	profiles profile.Service,
	issuances repository.Issuance,
	issuer issuance.Issuer,
	publisher event.Publisher,
	lockManager *concurrency.LockManager,
) Service {
	if lockManager == nil {
		lockManager = concurrency.NewLockManager()
	}
	return &service{
		orchestrator: orch,
		profiles:     profiles,
		issuances:    issuances,
		issuer:       issuer,
		publisher:    publisher,
		lockManager:  lockManager,
		now:          time.Now,
	}
}

// Submit processes one submission. Submissions of the same user are
// serialized so streak and daily allowance see every earlier outcome.
// An error is returned only when the stored profile cannot be read.
func (s *service) Submit(ctx context.Context, sub domain.ActivitySubmission) (domain.ProcessResult, error) {
	userID := sub.UserProfile.UserID
	if userID != "" && s.profiles != nil {
		unlock := s.lockManager.Lock(userID)
		defer unlock()

		if err := s.hydrate(ctx, &sub); err != nil {
			return domain.ProcessResult{}, err
		}
	}

	result := s.orchestrator.Process(ctx, sub)

	if result.Success && userID != "" && s.profiles != nil {
		s.recordOutcome(ctx, userID, sub, result)
	}
	if result.Issuance != nil {
		s.saveIssuance(ctx, userID, result)
	}
	s.publish(ctx, userID, result)
	return result, nil
}

// hydrate replaces the client supplied profile and history with stored ones
func (s *service) hydrate(ctx context.Context, sub *domain.ActivitySubmission) error {
	userID := sub.UserProfile.UserID
	stored, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgLoadProfile, err)
	}
	history, err := s.profiles.History(ctx, userID, profile.DefaultHistoryLimit)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgLoadHistory, err)
	}

	sub.UserProfile = stored
	sub.UserProfile.UserID = userID
	sub.UserHistory = history

	logger.FromContext(ctx).Debug(LogMsgProfileHydrated,
		"user_id", userID,
		"streak", stored.Streak.Current,
		"history", len(history))
	return nil
}

func (s *service) recordOutcome(ctx context.Context, userID string, sub domain.ActivitySubmission, result domain.ProcessResult) {
	entry := domain.HistoryEntry{
		ActivityType: sub.ActivityType,
		Timestamp:    result.ProcessedAt,
		RewardAmount: result.RewardAmount(),
		Location:     sub.Location,
	}
	if result.Verification != nil {
		entry.QualityScore = float64(result.Verification.VerificationScore)
	}
	if _, err := s.profiles.RecordOutcome(ctx, userID, entry); err != nil {
		logger.FromContext(ctx).Error(LogMsgRecordOutcomeFailed,
			"user_id", userID,
			"process_id", result.ProcessID,
			"error", err)
	}
}

// saveIssuance stores the reward decision so it can be retried by process ID
func (s *service) saveIssuance(ctx context.Context, userID string, result domain.ProcessResult) {
	if s.issuances == nil {
		return
	}
	rec := domain.IssuanceRecord{
		ProcessID:      result.ProcessID,
		UserID:         userID,
		ActivityType:   result.ActivityType,
		Recipient:      result.UserWallet,
		Amount:         result.RewardAmount(),
		Status:         result.Issuance.Status,
		TransactionRef: result.Issuance.TransactionRef,
		Error:          result.Issuance.Error,
		Attempts:       1,
		UpdatedAt:      result.ProcessedAt,
	}
	if result.Reward != nil {
		rec.Tier = result.Reward.TokenTier
	}
	if err := s.issuances.SaveIssuance(ctx, rec); err != nil {
		logger.FromContext(ctx).Error(LogMsgSaveIssuanceFailed,
			"process_id", result.ProcessID,
			"error", err)
	}
}

func (s *service) publish(ctx context.Context, userID string, result domain.ProcessResult) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishWithRetry(ctx, event.NewActivityEvent(userID, result))
	if result.Issuance != nil {
		s.publisher.PublishWithRetry(ctx, event.NewIssuanceEvent(
			userID, result.ProcessID, result.UserWallet, result.RewardAmount(), *result.Issuance))
	}
}

// SubmitBatch runs Submit for every item over the orchestrator's worker pool
func (s *service) SubmitBatch(ctx context.Context, subs []domain.ActivitySubmission) domain.BatchResult {
	return s.orchestrator.ProcessBatchWith(ctx, subs, s.submitOrFail)
}

// Stream runs Submit for items as they arrive
func (s *service) Stream(ctx context.Context, in <-chan domain.ActivitySubmission) <-chan domain.ProcessResult {
	return s.orchestrator.MonitorWith(ctx, in, s.submitOrFail)
}

// submitOrFail folds a profile load error into a failed result
func (s *service) submitOrFail(ctx context.Context, sub domain.ActivitySubmission) domain.ProcessResult {
	result, err := s.Submit(ctx, sub)
	if err != nil {
		return domain.ProcessResult{
			UserWallet:   sub.UserWallet,
			ActivityType: sub.ActivityType,
			Fallback:     domain.NewFallbackReward(),
			Error:        err.Error(),
			ErrorKind:    domain.ClassifyError(err),
		}
	}
	return result
}

// RetryIssuance issues the stored reward of a processed submission again,
// e.g. after a network failure. Recipient, amount and tier come from the
// stored decision. Rewards that already reached the network are refused.
func (s *service) RetryIssuance(ctx context.Context, req domain.RetryIssuanceRequest) (domain.IssuanceReceipt, error) {
	if err := validation.Struct(req); err != nil {
		return domain.IssuanceReceipt{}, err
	}
	if s.issuer == nil {
		return domain.IssuanceReceipt{Status: domain.IssuanceSkipped},
			fmt.Errorf("%w: %s", domain.ErrIssuanceUnavailable, ErrMsgNoIssuer)
	}
	if s.issuances == nil {
		return domain.IssuanceReceipt{}, fmt.Errorf("%w: %s", domain.ErrRewardNotFound, ErrMsgNoIssuanceStore)
	}

	unlock := s.lockManager.Lock(IssuanceLockPrefix + req.ProcessID)
	defer unlock()

	ctx = logger.WithProcessID(ctx, req.ProcessID)
	log := logger.FromContext(ctx)

	rec, err := s.issuances.GetIssuance(ctx, req.ProcessID)
	if err != nil {
		return domain.IssuanceReceipt{}, err
	}
	if rec.Settled() {
		log.Warn(LogMsgIssuanceRetryRefused, "status", rec.Status, "tx", rec.TransactionRef)
		return rec.Receipt(), fmt.Errorf("%w: %s is %s", domain.ErrAlreadyIssued, req.ProcessID, rec.Status)
	}

	receipt, err := s.issuer.Issue(ctx, domain.IssueRequest{
		Recipient: rec.Recipient,
		Amount:    rec.Amount,
		Tier:      rec.Tier,
		ProcessID: rec.ProcessID,
		Metadata: map[string]string{
			orchestrator.IssueMetaActivityType: string(rec.ActivityType),
			orchestrator.IssueMetaUserID:       rec.UserID,
		},
	})
	if err != nil {
		if receipt.Status == "" {
			receipt.Status = domain.IssuanceFailed
		}
		receipt.Error = err.Error()
		log.Warn(LogMsgIssuanceRetryFailed, "recipient", rec.Recipient, "error", err)
	} else {
		log.Info(LogMsgIssuanceRetried, "recipient", rec.Recipient, "tx", receipt.TransactionRef)
	}

	rec.Status = receipt.Status
	rec.TransactionRef = receipt.TransactionRef
	rec.Error = receipt.Error
	rec.Attempts++
	rec.UpdatedAt = s.now()
	if saveErr := s.issuances.SaveIssuance(ctx, *rec); saveErr != nil {
		log.Error(LogMsgSaveIssuanceFailed, "error", saveErr)
	}

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewIssuanceEvent(rec.UserID, rec.ProcessID, rec.Recipient, rec.Amount, receipt))
	}
	if err != nil {
		return receipt, fmt.Errorf("%w: %w", domain.ErrIssuanceFailure, err)
	}
	return receipt, nil
}

func (s *service) Stats() domain.OrchestratorStats {
	return s.orchestrator.Stats()
}
