package verification

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/logger"
	"github.com/osse101/EcoHunt_Go/internal/utils"
)

// FailurePolicy decides what a failed sub-check does to the verdict
type FailurePolicy int

const (
	// DegradeToZero scores a failed sub-check as zero and keeps the others
	DegradeToZero FailurePolicy = iota
	// AbortOnFailure rejects the whole verification when any sub-check fails
	AbortOnFailure
)

// ParseFailurePolicy maps a config value onto a FailurePolicy
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(s) {
	case "", "degrade":
		return DegradeToZero, nil
	case "abort":
		return AbortOnFailure, nil
	default:
		return DegradeToZero, fmt.Errorf("%s: %q", ErrMsgUnknownPolicy, s)
	}
}

// Scorer combines the five detector sub-checks into one verdict
type Scorer struct {
	detector Detector
	policy   FailurePolicy
}

// NewScorer creates a Scorer over detector
func NewScorer(detector Detector, policy FailurePolicy) *Scorer {
	return &Scorer{detector: detector, policy: policy}
}

type subcheckOutcome struct {
	name   string
	result any
	err    error
}

// Verify runs all sub-checks concurrently and combines them. Sub-check faults
// are contained here and reported inside the result, never returned.
func (s *Scorer) Verify(ctx context.Context, photo Photo) domain.VerificationResult {
	log := logger.FromContext(ctx)

	checks := []struct {
		name string
		run  func(context.Context, Photo) (any, error)
	}{
		{SubcheckActivityDetection, func(ctx context.Context, p Photo) (any, error) {
			r, err := s.detector.DetectActivity(ctx, p)
			return nonNil(r, r == nil, err)
		}},
		{SubcheckAuthenticity, func(ctx context.Context, p Photo) (any, error) {
			r, err := s.detector.CheckAuthenticity(ctx, p)
			return nonNil(r, r == nil, err)
		}},
		{SubcheckRelevance, func(ctx context.Context, p Photo) (any, error) {
			r, err := s.detector.AssessRelevance(ctx, p)
			return nonNil(r, r == nil, err)
		}},
		{SubcheckFraud, func(ctx context.Context, p Photo) (any, error) {
			r, err := s.detector.AssessFraud(ctx, p)
			return nonNil(r, r == nil, err)
		}},
		{SubcheckQuality, func(ctx context.Context, p Photo) (any, error) {
			r, err := s.detector.AssessQuality(ctx, p)
			return nonNil(r, r == nil, err)
		}},
	}

	outcomes := make([]subcheckOutcome, len(checks))
	var wg sync.WaitGroup
	for i, check := range checks {
		wg.Add(1)
		go func(i int, name string, run func(context.Context, Photo) (any, error)) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Error(LogMsgSubcheckPanicked, "subcheck", name, "panic", r)
					outcomes[i] = subcheckOutcome{name: name, err: fmt.Errorf("%s: %v", ErrMsgDetectorPanic, r)}
				}
			}()
			result, err := run(ctx, photo)
			outcomes[i] = subcheckOutcome{name: name, result: result, err: err}
		}(i, check.name, check.run)
	}
	wg.Wait()

	result := domain.VerificationResult{}
	var failures []error
	var scoreSum, confidenceSum float64

	for _, o := range outcomes {
		if o.err != nil {
			log.Warn(LogMsgSubcheckFailed, "subcheck", o.name, "error", o.err)
			if result.SubcheckErrors == nil {
				result.SubcheckErrors = make(map[string]string)
			}
			result.SubcheckErrors[o.name] = o.err.Error()
			failures = append(failures, fmt.Errorf("%w: %s: %v", domain.ErrSubcheckFailure, o.name, o.err))
			continue
		}
		attachAnalysis(&result.DetailedAnalysis, o.result)
		weight := Weights[o.name]
		scoreSum += weight * utils.Clamp(ExtractScore(o.result), 0, 1)
		confidenceSum += weight * utils.Clamp(ExtractConfidence(o.result), 0, 1)
	}

	if err := ctx.Err(); err != nil {
		failures = append(failures, err)
	}

	if len(failures) > 0 && (s.policy == AbortOnFailure || ctx.Err() != nil) {
		err := errors.Join(failures...)
		log.Warn(LogMsgVerificationAborted, "error", err)
		result.IsVerified = false
		result.VerificationScore = 0
		result.Confidence = 0
		result.TokenEligibility = domain.EligibilityNotEligible
		result.Error = err.Error()
		return result
	}

	result.VerificationScore = int(math.Round(100 * scoreSum))
	result.Confidence = int(math.Round(100 * confidenceSum))
	result.IsVerified = result.VerificationScore >= VerifiedThreshold
	result.TokenEligibility = EligibilityForScore(result.VerificationScore)

	log.Debug(LogMsgVerificationDone,
		"score", result.VerificationScore,
		"confidence", result.Confidence,
		"eligibility", result.TokenEligibility,
		"failed_subchecks", sortedKeys(result.SubcheckErrors))

	return result
}

// EligibilityForScore maps an overall score onto an eligibility tier
func EligibilityForScore(score int) domain.EligibilityTier {
	switch {
	case score >= PremiumThreshold:
		return domain.EligibilityPremium
	case score >= StandardThreshold:
		return domain.EligibilityStandard
	case score >= BasicThreshold:
		return domain.EligibilityBasic
	default:
		return domain.EligibilityNotEligible
	}
}

// ExtractScore reduces any sub-check result to a 0-1 score. Unrecognised
// shapes score neutral.
func ExtractScore(result any) float64 {
	switch r := result.(type) {
	case *domain.ActivityDetection:
		if r.Detected {
			return r.Confidence
		}
		return 0
	case *domain.AuthenticityCheck:
		if r.IsAuthentic {
			return r.AuthenticityScore
		}
		return 0
	case *domain.RelevanceAssessment:
		if r.IsRelevant {
			return r.RelevanceScore
		}
		return 0
	case *domain.FraudAssessment:
		return 1 - r.FraudRisk
	case *domain.QualityAssessment:
		return r.OverallScore
	default:
		return NeutralScore
	}
}

// ExtractConfidence returns the first non-zero of confidence, authenticity
// score and relevance score, or the neutral confidence.
func ExtractConfidence(result any) float64 {
	var c float64
	switch r := result.(type) {
	case *domain.ActivityDetection:
		c = r.Confidence
	case *domain.AuthenticityCheck:
		c = r.AuthenticityScore
	case *domain.RelevanceAssessment:
		c = r.RelevanceScore
	}
	if c == 0 {
		return NeutralConfidence
	}
	return c
}

func attachAnalysis(a *domain.VerificationAnalysis, result any) {
	switch r := result.(type) {
	case *domain.ActivityDetection:
		a.ActivityDetection = r
	case *domain.AuthenticityCheck:
		a.AuthenticityCheck = r
	case *domain.RelevanceAssessment:
		a.EnvironmentalRelevance = r
	case *domain.FraudAssessment:
		a.FraudAssessment = r
	case *domain.QualityAssessment:
		a.QualityAssessment = r
	}
}

// nonNil turns a typed-nil result without error into an error
func nonNil(result any, isNil bool, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	if isNil {
		return nil, errors.New(ErrMsgEmptyResult)
	}
	return result, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
