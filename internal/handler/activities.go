package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/logger"
	"github.com/osse101/EcoHunt_Go/internal/orchestrator"
	"github.com/osse101/EcoHunt_Go/internal/submission"
)

// BatchRequest carries up to MaxBatchSize submissions. Each submission is
// validated by the pipeline so one bad entry does not reject the batch.
type BatchRequest struct {
	Submissions []domain.ActivitySubmission `json:"submissions" validate:"required,min=1,max=100"`
}

// StreamTrailer is the final line of an activity stream
type StreamTrailer struct {
	StreamSummary domain.StreamSummary `json:"streamSummary"`
}

// HandleSubmitActivity processes a single activity submission
// @Summary Submit activity
// @Description Runs verification, scoring, reward calculation and issuance for one activity. Failed processing still answers 200 with success=false and a fallback reward.
// @Tags activities
// @Accept json
// @Produce json
// @Param request body domain.ActivitySubmission true "Activity submission"
// @Success 200 {object} domain.ProcessResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /activities [post]
func HandleSubmitActivity(svc submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sub domain.ActivitySubmission
		if err := DecodeRequest(r, w, &sub, "Submit activity"); err != nil {
			return
		}

		log := logger.FromContext(r.Context())
		LogRequestFields(log, "activity_type", sub.ActivityType, "user_id", sub.UserProfile.UserID)

		result, err := svc.Submit(r.Context(), sub)
		if err != nil {
			respondServiceError(w, r, "Submit activity", err)
			return
		}

		log.Info(LogMsgActivityProcessed,
			"process_id", result.ProcessID,
			"success", result.Success,
			"reward", result.RewardAmount())
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleSubmitBatch processes several submissions concurrently
// @Summary Submit activity batch
// @Description Processes up to 100 submissions concurrently. Results keep input order and come with an aggregate summary.
// @Tags activities
// @Accept json
// @Produce json
// @Param request body BatchRequest true "Submissions"
// @Success 200 {object} domain.BatchResult
// @Failure 400 {object} ValidationErrorResponse
// @Router /activities/batch [post]
func HandleSubmitBatch(svc submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BatchRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Submit batch"); err != nil {
			return
		}

		result := svc.SubmitBatch(r.Context(), req.Submissions)

		logger.FromContext(r.Context()).Info(LogMsgBatchProcessed,
			"batch_id", result.BatchID,
			"total", result.Summary.Total,
			"successful", result.Summary.Successful)
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleStreamActivities processes newline-delimited submissions as they
// arrive and writes one result line per submission, then a summary line
// @Summary Stream activities
// @Description Reads NDJSON submissions from the request body and processes them one at a time in arrival order. Each result is written as an NDJSON line when it completes. The last line is a StreamTrailer summarising the stream.
// @Tags activities
// @Accept application/x-ndjson
// @Produce application/x-ndjson
// @Success 200 {object} domain.ProcessResult
// @Router /activities/stream [post]
func HandleStreamActivities(svc submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		log := logger.FromContext(ctx)

		rc := http.NewResponseController(w)
		// HTTP/1 servers refuse body reads after the first write otherwise
		_ = rc.EnableFullDuplex()

		in := make(chan domain.ActivitySubmission)
		go readSubmissions(ctx, r.Body, in)

		w.Header().Set("Content-Type", ContentTypeNDJSON)
		w.WriteHeader(http.StatusOK)

		enc := json.NewEncoder(w)
		var results []domain.ProcessResult
		broken := false
		for result := range svc.Stream(ctx, in) {
			if broken {
				continue
			}
			if err := enc.Encode(result); err != nil {
				log.Warn(LogMsgStreamWriteFailed, "error", err)
				broken = true
				cancel()
				continue
			}
			if err := rc.Flush(); err != nil {
				log.Warn(LogMsgStreamWriteFailed, "error", err)
				broken = true
				cancel()
				continue
			}
			results = append(results, result)
		}

		if !broken {
			trailer := StreamTrailer{StreamSummary: orchestrator.StreamSummary(results)}
			if err := enc.Encode(trailer); err != nil {
				log.Warn(LogMsgStreamWriteFailed, "error", err)
			}
		}
		log.Info(LogMsgStreamClosed, "processed", len(results))
	}
}

// readSubmissions decodes a stream of JSON objects into out until the body
// ends, a value fails to decode or ctx is done
func readSubmissions(ctx context.Context, body io.Reader, out chan<- domain.ActivitySubmission) {
	defer close(out)
	dec := json.NewDecoder(body)
	for {
		var sub domain.ActivitySubmission
		if err := dec.Decode(&sub); err != nil {
			if !errors.Is(err, io.EOF) {
				logger.FromContext(ctx).Warn(LogMsgStreamDecodeFailed, "error", err)
			}
			return
		}
		select {
		case out <- sub:
		case <-ctx.Done():
			return
		}
	}
}

// HandleOrchestratorStats returns the running processing statistics
// @Summary Processing statistics
// @Description Totals, success rate and average processing time since startup
// @Tags activities
// @Produce json
// @Success 200 {object} domain.OrchestratorStats
// @Router /orchestrator/stats [get]
func HandleOrchestratorStats(svc submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, svc.Stats())
	}
}
