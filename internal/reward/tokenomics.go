package reward

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/logger"
	"github.com/osse101/EcoHunt_Go/internal/validation"
)

//go:embed tokenomics.schema.json
var tokenomicsSchema []byte

// SeasonalMode decides how the seasonal factor enters the total
type SeasonalMode string

const (
	// SeasonalAdditive adds the raw seasonal factor as one more summed term
	SeasonalAdditive SeasonalMode = "additive"
	// SeasonalMultiplicative scales the sum of the other seven factors
	SeasonalMultiplicative SeasonalMode = "multiplicative"
)

// Seasonal configures the seasonal factor
type Seasonal struct {
	Mode   SeasonalMode `json:"mode"`
	Spring float64      `json:"spring"`
	Autumn float64      `json:"autumn"`
}

// Tokenomics holds the reward economy parameters
type Tokenomics struct {
	Version             string                          `json:"version,omitempty"`
	BaseReward          float64                         `json:"baseReward"`
	MaxDailyReward      float64                         `json:"maxDailyReward"`
	QualityMultiplier   map[string]float64              `json:"qualityMultiplier"`
	ActivityMultipliers map[domain.ActivityType]float64 `json:"activityMultipliers"`
	Seasonal            Seasonal                        `json:"seasonal"`
}

// DefaultTokenomics returns the built-in economy
func DefaultTokenomics() Tokenomics {
	return Tokenomics{
		BaseReward:     DefaultBaseReward,
		MaxDailyReward: DefaultMaxDailyReward,
		QualityMultiplier: map[string]float64{
			string(domain.TokenTierPremium):  2.0,
			string(domain.TokenTierStandard): 1.5,
			string(domain.TokenTierBasic):    1.0,
		},
		ActivityMultipliers: map[domain.ActivityType]float64{
			domain.ActivityTreePlanting:         2.0,
			domain.ActivityWasteCleanup:         1.5,
			domain.ActivityRecycling:            1.2,
			domain.ActivityWaterConservation:    1.8,
			domain.ActivityWildlifeConservation: 2.2,
			domain.ActivitySustainableTransport: 1.3,
			domain.ActivityComposting:           1.4,
			domain.ActivityCleanEnergyUsage:     1.9,
		},
		Seasonal: Seasonal{
			Mode:   SeasonalAdditive,
			Spring: DefaultSpringFactor,
			Autumn: DefaultAutumnFactor,
		},
	}
}

// LoadTokenomics reads a tokenomics override file. Keys present in the file
// replace the defaults; an empty path yields the defaults.
func LoadTokenomics(ctx context.Context, path string, v validation.SchemaValidator) (Tokenomics, error) {
	log := logger.FromContext(ctx)
	t := DefaultTokenomics()
	if path == "" {
		log.Info(LogMsgTokenomicsDefault)
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf(ErrMsgReadTokenomics, path, err)
	}
	return ParseTokenomics(ctx, path, data, v)
}

// ParseTokenomics validates data against the tokenomics schema and merges it
// over the defaults. name is only used in error messages.
func ParseTokenomics(ctx context.Context, name string, data []byte, v validation.SchemaValidator) (Tokenomics, error) {
	t := DefaultTokenomics()
	if err := v.ValidateWithSchema(data, TokenomicsSchemaID, tokenomicsSchema); err != nil {
		return t, fmt.Errorf(ErrMsgInvalidTokenomics, name, err)
	}

	var override Tokenomics
	if err := json.Unmarshal(data, &override); err != nil {
		return t, fmt.Errorf(ErrMsgParseTokenomics, name, err)
	}

	if override.Version != "" {
		t.Version = override.Version
	}
	if override.BaseReward > 0 {
		t.BaseReward = override.BaseReward
	}
	if override.MaxDailyReward > 0 {
		t.MaxDailyReward = override.MaxDailyReward
	}
	for tier, m := range override.QualityMultiplier {
		t.QualityMultiplier[tier] = m
	}
	for activity, m := range override.ActivityMultipliers {
		t.ActivityMultipliers[activity] = m
	}
	if override.Seasonal.Mode != "" {
		t.Seasonal.Mode = override.Seasonal.Mode
	}
	if override.Seasonal.Spring > 0 {
		t.Seasonal.Spring = override.Seasonal.Spring
	}
	if override.Seasonal.Autumn > 0 {
		t.Seasonal.Autumn = override.Seasonal.Autumn
	}

	logger.FromContext(ctx).Info(LogMsgTokenomicsLoaded,
		"source", name,
		"version", t.Version,
		"base_reward", t.BaseReward,
		"max_daily", t.MaxDailyReward,
		"seasonal_mode", t.Seasonal.Mode)
	return t, nil
}
