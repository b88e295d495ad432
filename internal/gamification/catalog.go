package gamification

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/logger"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// ErrInvalidCatalog is returned when a catalog fails validation
var ErrInvalidCatalog = errors.New("invalid gamification catalog")

// ChallengeDef is a challenge template with the condition that offers it
type ChallengeDef struct {
	domain.Challenge `yaml:",inline"`
	Trigger          string  `yaml:"trigger"`
	Threshold        float64 `yaml:"threshold"`
}

// AchievementDef is an achievement template measured against one metric
type AchievementDef struct {
	domain.Achievement `yaml:",inline"`
	Metric             string  `yaml:"metric"`
	Target             float64 `yaml:"target"`
}

// SocialFeatureDef is a social feature suggested when its trigger fires
type SocialFeatureDef struct {
	Trigger   string  `yaml:"trigger"`
	Threshold float64 `yaml:"threshold"`
	Feature   string  `yaml:"feature"`
}

// Catalog lists every challenge, achievement and social feature on offer
type Catalog struct {
	Challenges     []ChallengeDef     `yaml:"challenges"`
	Achievements   []AchievementDef   `yaml:"achievements"`
	SocialFeatures []SocialFeatureDef `yaml:"social_features"`
}

// DefaultCatalog returns the catalog compiled into the binary
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(embeddedCatalog)
}

// LoadCatalog reads a catalog file, or the embedded catalog when path is empty
func LoadCatalog(ctx context.Context, path string) (*Catalog, error) {
	log := logger.FromContext(ctx)
	if path == "" {
		log.Info(LogMsgCatalogEmbedded)
		return DefaultCatalog()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadCatalog, path, err)
	}
	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, err
	}
	log.Info(LogMsgCatalogLoaded,
		"path", path,
		"challenges", len(catalog.Challenges),
		"achievements", len(catalog.Achievements))
	return catalog, nil
}

// ParseCatalog decodes and validates YAML catalog data
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf(ErrMsgParseCatalog, err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Validate checks ids, triggers, metrics and targets
func (c *Catalog) Validate() error {
	ids := make(map[string]bool)
	claim := func(id string) error {
		if ids[id] {
			return fmt.Errorf("%w: "+ErrMsgDuplicateID, ErrInvalidCatalog, id)
		}
		ids[id] = true
		return nil
	}

	for _, ch := range c.Challenges {
		if err := claim(ch.ID); err != nil {
			return err
		}
		if !knownTrigger(ch.Trigger) {
			return fmt.Errorf("%w: "+ErrMsgUnknownTrigger, ErrInvalidCatalog, ch.Trigger, ch.ID)
		}
		if ch.Reward <= 0 {
			return fmt.Errorf("%w: "+ErrMsgNonPositiveValue, ErrInvalidCatalog, ch.ID, "reward")
		}
	}
	for _, a := range c.Achievements {
		if err := claim(a.ID); err != nil {
			return err
		}
		if !knownMetric(a.Metric) {
			return fmt.Errorf("%w: "+ErrMsgUnknownMetric, ErrInvalidCatalog, a.Metric, a.ID)
		}
		if a.Target <= 0 {
			return fmt.Errorf("%w: "+ErrMsgNonPositiveValue, ErrInvalidCatalog, a.ID, "target")
		}
	}
	for _, f := range c.SocialFeatures {
		if !knownTrigger(f.Trigger) {
			return fmt.Errorf("%w: "+ErrMsgUnknownTrigger, ErrInvalidCatalog, f.Trigger, f.Feature)
		}
	}
	return nil
}

func knownTrigger(t string) bool {
	switch t {
	case TriggerConsistencyBelow, TriggerDiversityBelow, TriggerSocialBelow,
		TriggerQualityDeclining, TriggerNewUser, TriggerAlways:
		return true
	}
	return false
}

func knownMetric(m string) bool {
	switch m {
	case MetricActivities, MetricActivityTypeCount, MetricStreak, MetricDistinctTypes, MetricReferrals:
		return true
	}
	return false
}
