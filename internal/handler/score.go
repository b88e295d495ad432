package handler

import (
	"net/http"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/impact"
)

// ImpactScorer is the part of the impact calculator the score endpoints use
type ImpactScorer interface {
	EstimateCarbon(a impact.Activity) domain.CarbonEstimate
	ScoreSustainability(a impact.Activity) domain.SustainabilityScore
}

// ScoreRequest describes an activity to score without running the pipeline
type ScoreRequest struct {
	ActivityType domain.ActivityType     `json:"activityType" validate:"required,activity_type"`
	Scale        float64                 `json:"scale" validate:"gte=0"`
	Location     string                  `json:"location" validate:"max=64"`
	Metadata     domain.PhotoMetadata    `json:"metadata"`
	Evidence     domain.ActivityEvidence `json:"evidence"`
	HasPhoto     bool                    `json:"hasPhoto"`
}

// activity converts the request into calculator input
func (req ScoreRequest) activity() impact.Activity {
	a := impact.ActivityFromSubmission(domain.ActivitySubmission{
		ActivityType: req.ActivityType,
		Scale:        req.Scale,
		Location:     req.Location,
		Metadata:     req.Metadata,
		Evidence:     req.Evidence,
	})
	a.HasPhoto = req.HasPhoto
	return a
}

// HandleCarbonScore estimates the carbon offset of an activity
// @Summary Estimate carbon offset
// @Description Estimates kg CO2 offset for an activity without verification or reward
// @Tags score
// @Accept json
// @Produce json
// @Param request body ScoreRequest true "Activity"
// @Success 200 {object} domain.CarbonEstimate
// @Failure 400 {object} ValidationErrorResponse
// @Router /score/carbon [post]
func HandleCarbonScore(scorer ImpactScorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScoreRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Carbon score"); err != nil {
			return
		}
		respondJSON(w, http.StatusOK, scorer.EstimateCarbon(req.activity()))
	}
}

// HandleSustainabilityScore rates the sustainability of an activity
// @Summary Score sustainability
// @Description Computes the 0-100 sustainability score and its breakdown
// @Tags score
// @Accept json
// @Produce json
// @Param request body ScoreRequest true "Activity"
// @Success 200 {object} domain.SustainabilityScore
// @Failure 400 {object} ValidationErrorResponse
// @Router /score/sustainability [post]
func HandleSustainabilityScore(scorer ImpactScorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScoreRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Sustainability score"); err != nil {
			return
		}
		respondJSON(w, http.StatusOK, scorer.ScoreSustainability(req.activity()))
	}
}
