package verification

import (
	"context"

	"github.com/osse101/EcoHunt_Go/internal/domain"
)

// Photo is the input every detector inspects
type Photo struct {
	Data         []byte
	ActivityType domain.ActivityType
	Metadata     domain.PhotoMetadata

	// SeenBefore is set by callers that reserved the photo in a
	// PhotoRegistry and learned it was already accepted or in flight
	SeenBefore bool
}

// Detector performs the five photo sub-checks. Implementations must be safe
// for concurrent use: the scorer calls all five methods in parallel.
type Detector interface {
	DetectActivity(ctx context.Context, photo Photo) (*domain.ActivityDetection, error)
	CheckAuthenticity(ctx context.Context, photo Photo) (*domain.AuthenticityCheck, error)
	AssessRelevance(ctx context.Context, photo Photo) (*domain.RelevanceAssessment, error)
	AssessFraud(ctx context.Context, photo Photo) (*domain.FraudAssessment, error)
	AssessQuality(ctx context.Context, photo Photo) (*domain.QualityAssessment, error)
}
