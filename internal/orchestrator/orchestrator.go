package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/gamification"
	"github.com/osse101/EcoHunt_Go/internal/impact"
	"github.com/osse101/EcoHunt_Go/internal/issuance"
	"github.com/osse101/EcoHunt_Go/internal/logger"
	"github.com/osse101/EcoHunt_Go/internal/photostore"
	"github.com/osse101/EcoHunt_Go/internal/validation"
	"github.com/osse101/EcoHunt_Go/internal/verification"
	"github.com/osse101/EcoHunt_Go/internal/worker"
)

// Verifier scores a photo. Sub-check faults are reported inside the result.
type Verifier interface {
	Verify(ctx context.Context, photo verification.Photo) domain.VerificationResult
}

// ImpactAssessor covers carbon, sustainability, impact and activity validation
type ImpactAssessor interface {
	EstimateCarbon(a impact.Activity) domain.CarbonEstimate
	ScoreSustainability(a impact.Activity) domain.SustainabilityScore
	AssessImpact(a impact.Activity) domain.ImpactAssessment
	Validate(a impact.Activity, verdict domain.VerificationResult) domain.ActivityValidation
}

// BehaviorAnalyzer profiles a user's habits. Analyze must not change any
// state; Commit folds the analyzed sample into the user's running metrics.
type BehaviorAnalyzer interface {
	Analyze(ctx context.Context, profile domain.UserProfile, history []domain.HistoryEntry) domain.BehaviorProfile
	Commit(userID string, sample domain.BehaviorMetrics)
}

// PhotoRegistry tracks which photos were already accepted. Each Reserve is
// followed by exactly one Commit or Release.
type PhotoRegistry interface {
	Reserve(data []byte) (duplicate bool)
	Commit(data []byte)
	Release(data []byte)
}

// RewardCalculator decides the token reward
type RewardCalculator interface {
	Calculate(ctx context.Context, in domain.RewardInput) domain.RewardResult
}

// StrategyBuilder produces the gamification strategy
type StrategyBuilder interface {
	Build(ctx context.Context, in gamification.Input) domain.GamificationStrategy
}

// Recorder observes every finished result, e.g. for metrics
type Recorder interface {
	ObserveResult(result domain.ProcessResult)
}

// Dependencies are the collaborators of an Orchestrator. Photos, SeenPhotos,
// Issuer and Pool are optional.
type Dependencies struct {
	Verifier     Verifier
	Impact       ImpactAssessor
	Behavior     BehaviorAnalyzer
	Rewards      RewardCalculator
	Gamification StrategyBuilder
	Photos       photostore.Store
	SeenPhotos   PhotoRegistry
	Issuer       issuance.Issuer
	Pool         *worker.Pool
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithTimeout sets the per-submission timeout
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithIDGenerator overrides process ID generation
func WithIDGenerator(gen func(time.Time) string) Option {
	return func(o *Orchestrator) { o.newID = gen }
}

// WithRecorder registers an observer for finished results
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorders = append(o.recorders, r) }
}

// Orchestrator runs the full scoring pipeline for submissions. It is safe for
// concurrent use.
type Orchestrator struct {
	deps      Dependencies
	timeout   time.Duration
	now       func() time.Time
	newID     func(time.Time) string
	recorders []Recorder

	mu    sync.Mutex
	stats domain.OrchestratorStats
}

// New creates an Orchestrator
func New(deps Dependencies, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		deps:    deps,
		timeout: DefaultSubmissionTimeout,
		now:     time.Now,
		newID:   NewProcessID,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewProcessID returns eco_<unix millis>_<8 hex>
func NewProcessID(at time.Time) string {
	return ProcessIDPrefix + strconv.FormatInt(at.UnixMilli(), 10) + "_" + shortHex()
}

// NewBatchID returns batch_<unix millis>_<8 hex>
func NewBatchID(at time.Time) string {
	return BatchIDPrefix + strconv.FormatInt(at.UnixMilli(), 10) + "_" + shortHex()
}

func shortHex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

type outcome struct {
	result domain.ProcessResult
	err    error
}

// Process runs one submission through the pipeline. It never panics and
// never returns a partial result: any failure yields success=false with the
// fallback reward. Photo and behavior state is only updated for submissions
// that succeed.
func (o *Orchestrator) Process(ctx context.Context, sub domain.ActivitySubmission) domain.ProcessResult {
	start := o.now()
	processID := o.newID(start)
	ctx = logger.WithProcessID(ctx, processID)
	log := logger.FromContext(ctx)
	log.Info(LogMsgProcessingStarted,
		"activity_type", sub.ActivityType,
		"user_id", sub.UserProfile.UserID)

	runCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	fx := &effects{}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error(LogMsgPipelinePanic, "panic", fmt.Sprint(r))
				done <- outcome{err: fmt.Errorf("%w: %s: %v", domain.ErrPipelineFailure, ErrMsgPanic, r)}
			}
		}()
		res, err := o.run(runCtx, fx, processID, sub)
		done <- outcome{result: res, err: err}
	}()

	var out outcome
	select {
	case out = <-done:
	case <-runCtx.Done():
		out.err = o.contextError(ctx)
	}

	var result domain.ProcessResult
	if out.err != nil {
		if errors.Is(out.err, context.DeadlineExceeded) && ctx.Err() == nil {
			out.err = o.contextError(ctx)
		}
		result = o.failure(processID, sub, out.err)
		log.Warn(LogMsgProcessingFailed, "error", out.err, "error_kind", result.ErrorKind)
	} else {
		result = out.result
		result.Success = true
	}
	fx.settle(ctx, result.Success)
	if result.Success {
		result.PhotoRef = o.archivePhoto(ctx, processID, sub.Photo)
	}

	result.ProcessedAt = o.now()
	result.ProcessingTime = result.ProcessedAt.Sub(start)
	o.record(result)

	log.Info(LogMsgProcessingCompleted,
		"success", result.Success,
		"reward", result.RewardAmount(),
		"duration_ms", result.ProcessingTime.Milliseconds())
	return result
}

// contextError explains why the run context ended
func (o *Orchestrator) contextError(parent context.Context) error {
	if err := parent.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%w: after %s", domain.ErrSubmissionTimeout, o.timeout)
}

func (o *Orchestrator) failure(processID string, sub domain.ActivitySubmission, err error) domain.ProcessResult {
	return domain.ProcessResult{
		ProcessID:    processID,
		Success:      false,
		UserWallet:   sub.UserWallet,
		ActivityType: sub.ActivityType,
		Fallback:     domain.NewFallbackReward(),
		Error:        err.Error(),
		ErrorKind:    domain.ClassifyError(err),
	}
}

// run executes the pipeline steps in order. State changes go through fx.
func (o *Orchestrator) run(ctx context.Context, fx *effects, processID string, sub domain.ActivitySubmission) (domain.ProcessResult, error) {
	if err := validation.Struct(sub); err != nil {
		return domain.ProcessResult{}, err
	}
	if sub.Photo.IsEmpty() {
		return domain.ProcessResult{}, fmt.Errorf("%w: %s", domain.ErrValidation, domain.ErrMsgMissingPhoto)
	}

	photo, err := o.resolvePhoto(ctx, sub.Photo)
	if err != nil {
		return domain.ProcessResult{}, err
	}

	seenBefore, err := o.reservePhoto(fx, photo)
	if err != nil {
		return domain.ProcessResult{}, err
	}

	if err := checkpoint(ctx, StepVerification); err != nil {
		return domain.ProcessResult{}, err
	}
	verdict := o.deps.Verifier.Verify(ctx, verification.Photo{
		Data:         photo,
		ActivityType: sub.ActivityType,
		Metadata:     sub.Metadata,
		SeenBefore:   seenBefore,
	})

	if err := checkpoint(ctx, StepImpact); err != nil {
		return domain.ProcessResult{}, err
	}
	activity := impact.ActivityFromSubmission(sub)
	carbon := o.deps.Impact.EstimateCarbon(activity)
	sustainability := o.deps.Impact.ScoreSustainability(activity)
	assessment := o.deps.Impact.AssessImpact(activity)

	if err := checkpoint(ctx, StepValidation); err != nil {
		return domain.ProcessResult{}, err
	}
	activityValidation := o.deps.Impact.Validate(activity, verdict)

	if err := checkpoint(ctx, StepBehavior); err != nil {
		return domain.ProcessResult{}, err
	}
	behaviorProfile := o.deps.Behavior.Analyze(ctx, sub.UserProfile, sub.UserHistory)
	userID, sample := sub.UserProfile.UserID, behaviorProfile.Sample
	if err := fx.stage(nil, func() { o.deps.Behavior.Commit(userID, sample) }, nil); err != nil {
		return domain.ProcessResult{}, err
	}

	if err := checkpoint(ctx, StepReward); err != nil {
		return domain.ProcessResult{}, err
	}
	reward := o.deps.Rewards.Calculate(ctx, domain.RewardInput{
		ActivityType:             sub.ActivityType,
		Location:                 sub.Location,
		EnvironmentalImpactScore: float64(sustainability.Score),
		CarbonImpact:             carbon.CarbonImpact,
		Verification:             verdict,
		BehaviorScore:            behaviorProfile.BehaviorScore,
		Profile:                  sub.UserProfile,
	})

	if err := checkpoint(ctx, StepGamification); err != nil {
		return domain.ProcessResult{}, err
	}
	strategy := o.deps.Gamification.Build(ctx, gamification.Input{
		ActivityType: sub.ActivityType,
		Behavior:     behaviorProfile,
		Profile:      sub.UserProfile,
		History:      sub.UserHistory,
	})

	result := domain.ProcessResult{
		ProcessID:      processID,
		UserWallet:     sub.UserWallet,
		ActivityType:   sub.ActivityType,
		Verification:   &verdict,
		Sustainability: &sustainability,
		Carbon:         &carbon,
		Impact:         &assessment,
		Validation:     &activityValidation,
		Behavior:       &behaviorProfile,
		Reward:         &reward,
		Gamification:   &strategy,
	}

	if reward.RewardAmount > 0 && activityValidation.IsValid {
		if err := checkpoint(ctx, StepIssuance); err != nil {
			return domain.ProcessResult{}, err
		}
		receipt := o.issue(ctx, processID, sub, reward)
		result.Issuance = &receipt
	}
	return result, nil
}

// checkpoint stops the pipeline between steps once ctx is done
func checkpoint(ctx context.Context, step string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgStepCancelled, step, err)
	}
	return nil
}

func (o *Orchestrator) resolvePhoto(ctx context.Context, p domain.PhotoData) ([]byte, error) {
	if len(p.Data) > 0 {
		return p.Data, nil
	}
	if o.deps.Photos == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPipelineFailure, ErrMsgPhotoStoreUnset)
	}
	data, err := o.deps.Photos.Fetch(ctx, p.Ref)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", ErrMsgFetchPhoto, p.Ref, err)
	}
	return data, nil
}

// reservePhoto claims the photo in the registry until the submission settles
func (o *Orchestrator) reservePhoto(fx *effects, data []byte) (bool, error) {
	reg := o.deps.SeenPhotos
	if reg == nil || len(data) == 0 {
		return false, nil
	}
	var duplicate bool
	err := fx.stage(
		func() { duplicate = reg.Reserve(data) },
		func() { reg.Commit(data) },
		func() { reg.Release(data) },
	)
	return duplicate, err
}

// archivePhoto returns where the submission photo is kept, storing inline
// photos when a store is configured. Archive failures only cost the reference.
func (o *Orchestrator) archivePhoto(ctx context.Context, processID string, p domain.PhotoData) string {
	if p.Ref != "" {
		return p.Ref
	}
	if o.deps.Photos == nil || len(p.Data) == 0 {
		return ""
	}
	key := PhotoArchivePrefix + processID
	ref, err := o.deps.Photos.Put(ctx, key, p.Data, http.DetectContentType(p.Data))
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPhotoArchiveFailed, "key", key, "error", err)
		return ""
	}
	return ref
}

// issue transfers the reward. Failures are reported on the receipt only.
func (o *Orchestrator) issue(ctx context.Context, processID string, sub domain.ActivitySubmission, reward domain.RewardResult) domain.IssuanceReceipt {
	log := logger.FromContext(ctx)
	if o.deps.Issuer == nil {
		log.Debug(LogMsgIssuanceSkipped)
		return domain.IssuanceReceipt{Status: domain.IssuanceSkipped, Error: domain.ErrMsgIssuanceUnavailable}
	}

	req := domain.IssueRequest{
		Recipient: sub.UserWallet,
		Amount:    reward.RewardAmount,
		Tier:      reward.TokenTier,
		ProcessID: processID,
		Metadata: map[string]string{
			IssueMetaActivityType: string(sub.ActivityType),
			IssueMetaUserID:       sub.UserProfile.UserID,
		},
	}
	receipt, err := o.deps.Issuer.Issue(ctx, req)
	if err != nil {
		if receipt.Status == "" {
			receipt.Status = domain.IssuanceFailed
		}
		receipt.Error = err.Error()
		log.Warn(LogMsgIssuanceFailed, "status", receipt.Status, "error", err)
	}
	return receipt
}

// record folds a finished result into the running stats
func (o *Orchestrator) record(result domain.ProcessResult) {
	o.mu.Lock()
	s := &o.stats
	s.TotalProcessed++
	if result.Success {
		s.Successful++
	} else {
		s.Failed++
	}
	n := s.TotalProcessed
	s.AverageProcessingTime = (s.AverageProcessingTime*time.Duration(n-1) + result.ProcessingTime) / time.Duration(n)
	s.SuccessRate = float64(s.Successful) / float64(n) * 100
	o.mu.Unlock()

	for _, r := range o.recorders {
		r.ObserveResult(result)
	}
}

// Stats returns a snapshot of the running metrics
func (o *Orchestrator) Stats() domain.OrchestratorStats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stats
}
