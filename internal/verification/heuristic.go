package verification

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"math"
	"strings"
	"time"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/utils"
)

// HeuristicDetector is a deterministic Detector driven by photo metadata,
// scene labels and the image header. It stands in for a vision model.
type HeuristicDetector struct {
	registry *PhotoRegistry
	now      func() time.Time
}

// HeuristicOption configures a HeuristicDetector
type HeuristicOption func(*HeuristicDetector)

// WithDetectorClock overrides the detector's time source
func WithDetectorClock(now func() time.Time) HeuristicOption {
	return func(d *HeuristicDetector) {
		d.now = now
	}
}

// WithDuplicateCache sizes the registry of accepted photo digests
func WithDuplicateCache(size int, ttl time.Duration) HeuristicOption {
	return func(d *HeuristicDetector) {
		d.registry = NewPhotoRegistry(size, ttl)
	}
}

// WithPhotoRegistry sets the registry consulted for previously accepted photos
func WithPhotoRegistry(r *PhotoRegistry) HeuristicOption {
	return func(d *HeuristicDetector) {
		d.registry = r
	}
}

// NewHeuristicDetector creates a HeuristicDetector
func NewHeuristicDetector(opts ...HeuristicOption) *HeuristicDetector {
	d := &HeuristicDetector{
		registry: NewPhotoRegistry(DefaultDuplicateCacheSize, DefaultDuplicateTTL),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the photo registry the detector reads
func (d *HeuristicDetector) Registry() *PhotoRegistry {
	return d.registry
}

// DetectActivity matches labels against the activity's cue groups
func (d *HeuristicDetector) DetectActivity(_ context.Context, photo Photo) (*domain.ActivityDetection, error) {
	pattern, ok := activityPatterns[photo.ActivityType]
	if !ok {
		return &domain.ActivityDetection{
			Detected:     false,
			Confidence:   0,
			ActivityType: photo.ActivityType,
			Reason:       ErrMsgUnknownType,
		}, nil
	}

	text := corpus(photo.Metadata)
	objects := matches(text, pattern.VisualCues)
	scenes := matches(text, pattern.ContextClues)
	actions := matches(text, pattern.Keywords)

	confidence := WeightObjectDetection*coverage(len(objects)) +
		WeightSceneClassification*coverage(len(scenes)) +
		WeightActivityRecognition*coverage(len(actions)) +
		WeightTemporalConsistency*d.temporalConsistency(photo.Metadata.Timestamp)
	confidence = utils.RoundTo(confidence, 4)

	return &domain.ActivityDetection{
		Detected:         confidence >= DetectionThreshold,
		Confidence:       confidence,
		ActivityType:     photo.ActivityType,
		DetectedElements: dedupe(append(append(objects, scenes...), actions...)),
	}, nil
}

// CheckAuthenticity scores metadata integrity. A photo counts as a duplicate
// when the caller flagged it or the registry has accepted it before. The
// check never changes the registry.
func (d *HeuristicDetector) CheckAuthenticity(_ context.Context, photo Photo) (*domain.AuthenticityCheck, error) {
	md := photo.Metadata

	integrity := 0.7
	if !md.Timestamp.IsZero() {
		integrity += 0.1
	}
	if md.GPS != nil {
		integrity += 0.1
	}
	if md.DeviceInfo != "" {
		integrity += 0.1
	}

	manipulation := 0.0
	if len(matches(normalize(md.Software), editingSoftware)) > 0 {
		manipulation = 0.6
	}

	duplicate := photo.SeenBefore || d.registry.Seen(photo.Data)

	location := 1.0
	switch {
	case md.GPS == nil:
		location = 0.6
	case md.GPS.Latitude == 0 && md.GPS.Longitude == 0:
		location = 0.2
	}

	device := 0.6
	if md.DeviceInfo != "" {
		device = 1.0
	}

	checks := map[string]float64{
		"metadataIntegrity":     utils.RoundTo(math.Min(integrity, 1), 4),
		"manipulationDetection": manipulation,
		"duplicateDetected":     boolScore(duplicate),
		"temporalConsistency":   d.temporalConsistency(md.Timestamp),
		"locationConsistency":   location,
		"deviceConsistency":     device,
	}

	score := utils.RoundTo(utils.Mean([]float64{
		checks["metadataIntegrity"],
		1 - manipulation,
		1 - boolScore(duplicate),
		checks["temporalConsistency"],
		location,
		device,
	}), 4)

	var risks []string
	if duplicate {
		risks = append(risks, "photo was submitted before")
	}
	if manipulation > 0 {
		risks = append(risks, "photo was processed by editing software")
	}
	for _, name := range []string{"metadataIntegrity", "temporalConsistency", "locationConsistency", "deviceConsistency"} {
		if checks[name] < 0.7 {
			risks = append(risks, "weak "+name)
		}
	}

	return &domain.AuthenticityCheck{
		IsAuthentic:       score >= AuthenticityThreshold,
		AuthenticityScore: score,
		Checks:            checks,
		RiskFactors:       risks,
	}, nil
}

// AssessRelevance blends activity context with generic environmental indicators
func (d *HeuristicDetector) AssessRelevance(_ context.Context, photo Photo) (*domain.RelevanceAssessment, error) {
	text := corpus(photo.Metadata)

	var contextHits []string
	if pattern, ok := activityPatterns[photo.ActivityType]; ok {
		contextHits = matches(text, pattern.Keywords)
	}
	natural := matches(text, naturalElements)
	impact := matches(text, impactIndicators)
	markers := matches(text, sustainabilityMarkers)

	indicator := math.Max(coverage(len(natural)), math.Max(coverage(len(impact)), coverage(len(markers))))
	score := utils.RoundTo(WeightRelevanceContext*coverage(len(contextHits))+WeightRelevanceIndicator*indicator, 4)

	return &domain.RelevanceAssessment{
		IsRelevant:      score >= RelevanceThreshold,
		RelevanceScore:  score,
		MatchedKeywords: dedupe(append(append(append(contextHits, natural...), impact...), markers...)),
	}, nil
}

// AssessFraud looks for stock, generated or edited imagery and timestamp anomalies
func (d *HeuristicDetector) AssessFraud(_ context.Context, photo Photo) (*domain.FraudAssessment, error) {
	md := photo.Metadata
	text := corpus(md) + normalize(md.Software) + " "

	var risks []string
	var risk float64

	if len(matches(text, stockPhotoMarkers)) > 0 {
		risk += WeightFraudStockPhoto
		risks = append(risks, "stock photo markers present")
	}
	if len(matches(text, aiGeneratorMarkers)) > 0 {
		risk += WeightFraudAIGenerated
		risks = append(risks, "image generator markers present")
	}
	if len(matches(text, editingSoftware)) > 0 {
		risk += WeightFraudEditing
		risks = append(risks, "edited with image software")
	}
	switch {
	case md.Timestamp.IsZero():
		risk += WeightFraudTemporal * FraudMissingTimestamp
		risks = append(risks, "missing capture timestamp")
	case md.Timestamp.After(d.now().Add(ClockSkewAllowance)):
		risk += WeightFraudTemporal
		risks = append(risks, "capture timestamp in the future")
	}

	risk = utils.RoundTo(utils.Clamp(risk, 0, 1), 4)
	return &domain.FraudAssessment{
		FraudRisk:   risk,
		IsHighRisk:  risk >= HighFraudThreshold,
		RiskFactors: risks,
	}, nil
}

// AssessQuality rates resolution, file size and metadata completeness
func (d *HeuristicDetector) AssessQuality(_ context.Context, photo Photo) (*domain.QualityAssessment, error) {
	var issues []string

	resolution := NeutralScore
	if len(photo.Data) == 0 {
		issues = append(issues, "no image bytes supplied")
	} else if cfg, _, err := image.DecodeConfig(bytes.NewReader(photo.Data)); err != nil {
		issues = append(issues, "unrecognised image format")
	} else {
		resolution = resolutionScore(cfg.Width * cfg.Height)
		if resolution < 0.6 {
			issues = append(issues, "low resolution")
		}
	}

	size := 0.5
	switch {
	case len(photo.Data) >= LargeFileBytes:
		size = 1.0
	case len(photo.Data) >= MediumFileBytes:
		size = 0.8
	}

	present := 0
	if !photo.Metadata.Timestamp.IsZero() {
		present++
	}
	if photo.Metadata.GPS != nil {
		present++
	}
	if photo.Metadata.DeviceInfo != "" {
		present++
	}
	metadata := float64(present) / 3

	overall := WeightQualityResolution*resolution + WeightQualityFileSize*size + WeightQualityMetadata*metadata

	return &domain.QualityAssessment{
		OverallScore: utils.RoundTo(overall, 4),
		Metrics: map[string]float64{
			"resolution": resolution,
			"fileSize":   size,
			"metadata":   utils.RoundTo(metadata, 4),
		},
		Issues: issues,
	}, nil
}

func (d *HeuristicDetector) temporalConsistency(taken time.Time) float64 {
	if taken.IsZero() {
		return NeutralScore
	}
	age := d.now().Sub(taken)
	switch {
	case age < -ClockSkewAllowance:
		return 0
	case age > StalePhotoAge:
		return 0.6
	default:
		return 1
	}
}

func resolutionScore(pixels int) float64 {
	switch {
	case pixels >= HighResolutionPixels:
		return 1.0
	case pixels >= MediumResolutionPixels:
		return 0.85
	case pixels >= LowResolutionPixels:
		return 0.6
	default:
		return 0.3
	}
}

// corpus flattens labels and description into a space-padded, normalized string
func corpus(md domain.PhotoMetadata) string {
	parts := make([]string, 0, len(md.Labels)+1)
	for _, l := range md.Labels {
		parts = append(parts, normalize(l))
	}
	parts = append(parts, normalize(md.Description))
	return " " + strings.Join(parts, " ") + " "
}

func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("_", " ", "-", " ", ",", " ", ".", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// matches returns the cues found as whole words in text
func matches(text string, cues []string) []string {
	if !strings.HasPrefix(text, " ") {
		text = " " + text + " "
	}
	var found []string
	for _, cue := range cues {
		if strings.Contains(text, " "+normalize(cue)+" ") {
			found = append(found, cue)
		}
	}
	return found
}

func coverage(n int) float64 {
	return math.Min(1, float64(n)/CueSaturation)
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func dedupe(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
