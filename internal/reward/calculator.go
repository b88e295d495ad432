package reward

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/logger"
	"github.com/osse101/EcoHunt_Go/internal/utils"
)

var activityRarity = map[domain.ActivityType]float64{
	domain.ActivityWildlifeConservation: 1.3,
	domain.ActivityTreePlanting:         1.1,
	domain.ActivityWaterConservation:    1.2,
}

var locationRarity = map[string]float64{
	domain.LocationUrban:               1.0,
	domain.LocationSuburban:            1.1,
	domain.LocationRural:               1.2,
	domain.LocationProtectedArea:       1.4,
	domain.LocationEndangeredEcosystem: 1.5,
}

// Calculator turns scoring outputs into a capped token reward
type Calculator struct {
	tokenomics Tokenomics
	now        func() time.Time
}

// Option configures a Calculator
type Option func(*Calculator)

// WithClock overrides the time source used for the seasonal factor
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		c.now = now
	}
}

// NewCalculator creates a Calculator over the given economy
func NewCalculator(t Tokenomics, opts ...Option) *Calculator {
	c := &Calculator{tokenomics: t, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tokenomics returns the calculator's economy
func (c *Calculator) Tokenomics() Tokenomics {
	return c.tokenomics
}

// Calculate computes the reward for one activity. It never fails: a
// non-finite factor or a panic yields the base reward, still capped by the
// remaining daily allowance, with Error set.
func (c *Calculator) Calculate(ctx context.Context, in domain.RewardInput) (result domain.RewardResult) {
	log := logger.FromContext(ctx)
	tier := TierForScore(in.Verification.VerificationScore)

	defer func() {
		if r := recover(); r != nil {
			result = c.fallback(in, tier, fmt.Errorf("%w: "+ErrMsgCalculationPanic, domain.ErrRewardCalculation, r))
			log.Error(LogMsgRewardFallback, "error", result.Error)
		}
	}()

	b := c.Breakdown(in)
	if name, ok := firstNonFinite(b); !ok {
		result = c.fallback(in, tier, fmt.Errorf("%w: "+ErrMsgNonFiniteFactor, domain.ErrRewardCalculation, name))
		log.Warn(LogMsgRewardFallback, "error", result.Error)
		return result
	}

	total := b.Total()
	if c.tokenomics.Seasonal.Mode == SeasonalMultiplicative {
		total = b.Subtotal() * b.SeasonalMultiplier
	}
	amount := c.applyDailyLimit(total, in.Profile.DailyEarned)

	result = domain.RewardResult{
		RewardAmount: amount,
		TokenTier:    tier,
		Breakdown:    b,
		BonusDetails: c.bonusDetails(b, in),
	}
	result.NextLevelIncentive = c.nextLevelIncentive(in, tier, amount)
	result.Recommendations = c.recommendations(b, in, amount, total)

	log.Debug(LogMsgRewardCalculated,
		"activity_type", in.ActivityType,
		"total", utils.RoundTo(total, 2),
		"reward", utils.RoundTo(amount, 2),
		"tier", tier)
	return result
}

// Breakdown computes the eight uncapped reward factors
func (c *Calculator) Breakdown(in domain.RewardInput) domain.RewardBreakdown {
	base := c.tokenomics.BaseReward
	return domain.RewardBreakdown{
		BaseReward:         base * c.activityMultiplier(in.ActivityType),
		QualityBonus:       base * (c.qualityMultiplier(in.Verification.TokenEligibility) - 1),
		BehaviorBonus:      base * in.BehaviorScore / 100,
		StreakBonus:        StreakBonus(base, in.Profile.Streak.Current),
		ImpactMultiplier:   ImpactFactor(base, in.EnvironmentalImpactScore),
		CommunityBonus:     CommunityBonus(base, in.Profile.Community),
		SeasonalMultiplier: c.SeasonalFactor(c.now()),
		RarityBonus:        base * (RarityFactor(in.ActivityType, in.Location) - 1),
	}
}

// SeasonalFactor is the spring factor for March to May, the autumn factor
// for September to November and 1 otherwise
func (c *Calculator) SeasonalFactor(at time.Time) float64 {
	switch at.Month() {
	case time.March, time.April, time.May:
		return c.tokenomics.Seasonal.Spring
	case time.September, time.October, time.November:
		return c.tokenomics.Seasonal.Autumn
	default:
		return NeutralFactor
	}
}

// TierForScore maps a verification score onto a token tier
func TierForScore(score int) domain.TokenTier {
	switch {
	case score >= PremiumScore:
		return domain.TokenTierPremium
	case score >= StandardScore:
		return domain.TokenTierStandard
	default:
		return domain.TokenTierBasic
	}
}

// StreakBonus pays 10% of base per streak day from day three, up to 100%
func StreakBonus(base float64, streak int) float64 {
	if streak < MinStreakForBonus {
		return 0
	}
	return base * math.Min(float64(streak)*StreakStep, MaxStreakFactor)
}

// ImpactFactor scales half the base by the impact score; 0 counts as 50
func ImpactFactor(base, impactScore float64) float64 {
	if impactScore == 0 {
		impactScore = DefaultImpactScore
	}
	return impactScore / 100 * base * ImpactShare
}

// CommunityBonus weighs referrals, shares and mentorship, capped at half the base
func CommunityBonus(base float64, m domain.CommunityMetrics) float64 {
	points := float64(m.Referrals*ReferralPoints + m.SocialShares*SharePoints + m.MentorshipPoints*MentorshipPoints)
	return math.Min(points, base*CommunityCapShare)
}

// RarityFactor is the product of activity and location rarity
func RarityFactor(activity domain.ActivityType, location string) float64 {
	a, ok := activityRarity[activity]
	if !ok {
		a = NeutralFactor
	}
	l, ok := locationRarity[location]
	if !ok {
		l = NeutralFactor
	}
	return a * l
}

func (c *Calculator) activityMultiplier(activity domain.ActivityType) float64 {
	if m, ok := c.tokenomics.ActivityMultipliers[activity]; ok {
		return m
	}
	return NeutralFactor
}

func (c *Calculator) qualityMultiplier(eligibility domain.EligibilityTier) float64 {
	tier := strings.TrimSuffix(string(eligibility), TierSuffix)
	if tier == "" {
		tier = DefaultQualityTierID
	}
	if m, ok := c.tokenomics.QualityMultiplier[tier]; ok {
		return m
	}
	return NeutralFactor
}

// applyDailyLimit caps total at the remaining daily allowance and the daily
// maximum, never below zero
func (c *Calculator) applyDailyLimit(total, dailyEarned float64) float64 {
	limit := c.tokenomics.MaxDailyReward
	remaining := limit - dailyEarned
	return math.Max(0, math.Min(total, math.Min(remaining, limit)))
}

func (c *Calculator) fallback(in domain.RewardInput, tier domain.TokenTier, err error) domain.RewardResult {
	amount := c.applyDailyLimit(c.tokenomics.BaseReward, in.Profile.DailyEarned)
	return domain.RewardResult{
		RewardAmount: amount,
		TokenTier:    tier,
		NextLevelIncentive: domain.NextLevelIncentive{
			RemainingDailyAllowance: math.Max(0, c.tokenomics.MaxDailyReward-in.Profile.DailyEarned-amount),
		},
		Error: err.Error(),
	}
}

func (c *Calculator) nextLevelIncentive(in domain.RewardInput, tier domain.TokenTier, amount float64) domain.NextLevelIncentive {
	incentive := domain.NextLevelIncentive{
		RemainingDailyAllowance: math.Max(0, c.tokenomics.MaxDailyReward-in.Profile.DailyEarned-amount),
	}

	score := in.Verification.VerificationScore
	switch tier {
	case domain.TokenTierBasic:
		incentive.NextTier = domain.TokenTierStandard
		incentive.ScoreNeeded = StandardScore - score
	case domain.TokenTierStandard:
		incentive.NextTier = domain.TokenTierPremium
		incentive.ScoreNeeded = PremiumScore - score
	}

	streak := in.Profile.Streak.Current
	maxStreak := int(math.Round(MaxStreakFactor / StreakStep))
	switch {
	case streak < MinStreakForBonus:
		incentive.StreakDaysToBonus = MinStreakForBonus - streak
	case streak < maxStreak:
		incentive.StreakDaysToBonus = maxStreak - streak
	}

	switch {
	case incentive.NextTier != "":
		incentive.Message = fmt.Sprintf("Raise your verification score by %d to reach the %s tier", incentive.ScoreNeeded, incentive.NextTier)
	case incentive.StreakDaysToBonus > 0:
		incentive.Message = fmt.Sprintf("Keep your streak for %d more days to grow your streak bonus", incentive.StreakDaysToBonus)
	default:
		incentive.Message = "You are earning the maximum tier and streak bonus"
	}
	return incentive
}

func (c *Calculator) bonusDetails(b domain.RewardBreakdown, in domain.RewardInput) []string {
	var details []string
	details = append(details, fmt.Sprintf("Base reward %.2f for %s", b.BaseReward, in.ActivityType))
	if b.QualityBonus > 0 {
		details = append(details, fmt.Sprintf("Quality bonus %.2f for %s verification", b.QualityBonus, in.Verification.TokenEligibility))
	}
	if b.BehaviorBonus > 0 {
		details = append(details, fmt.Sprintf("Behaviour bonus %.2f for a behaviour score of %.0f", b.BehaviorBonus, in.BehaviorScore))
	}
	if b.StreakBonus > 0 {
		details = append(details, fmt.Sprintf("Streak bonus %.2f for a %d-day streak", b.StreakBonus, in.Profile.Streak.Current))
	}
	details = append(details, fmt.Sprintf("Impact bonus %.2f", b.ImpactMultiplier))
	if b.CommunityBonus > 0 {
		details = append(details, fmt.Sprintf("Community bonus %.2f", b.CommunityBonus))
	}
	if b.SeasonalMultiplier != NeutralFactor {
		details = append(details, fmt.Sprintf("Seasonal factor %.2f (%s)", b.SeasonalMultiplier, c.tokenomics.Seasonal.Mode))
	}
	if b.RarityBonus > 0 {
		details = append(details, fmt.Sprintf("Rarity bonus %.2f for %s", b.RarityBonus, in.Location))
	}
	return details
}

func (c *Calculator) recommendations(b domain.RewardBreakdown, in domain.RewardInput, amount, total float64) []string {
	var out []string
	if amount < total {
		out = append(out, RecommendDailyLimit)
	}
	if b.StreakBonus == 0 {
		out = append(out, RecommendStreak)
	}
	if in.Verification.VerificationScore < PremiumScore {
		out = append(out, RecommendQuality)
	}
	if b.CommunityBonus == 0 {
		out = append(out, RecommendCommunity)
	}
	if b.RarityBonus == 0 {
		out = append(out, RecommendRare)
	}
	return out
}

// firstNonFinite returns the name of the first NaN or infinite factor
func firstNonFinite(b domain.RewardBreakdown) (string, bool) {
	factors := []struct {
		name  string
		value float64
	}{
		{"baseReward", b.BaseReward},
		{"qualityBonus", b.QualityBonus},
		{"behaviorBonus", b.BehaviorBonus},
		{"streakBonus", b.StreakBonus},
		{"impactMultiplier", b.ImpactMultiplier},
		{"communityBonus", b.CommunityBonus},
		{"seasonalMultiplier", b.SeasonalMultiplier},
		{"rarityBonus", b.RarityBonus},
	}
	for _, f := range factors {
		if !utils.IsFinite(f.value) {
			return f.name, false
		}
	}
	return "", true
}
