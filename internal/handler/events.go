package handler

import (
	"net/http"

	"github.com/osse101/EcoHunt_Go/internal/eventlog"
)

// UserEventsResponse lists a user's logged engine events, newest first
type UserEventsResponse struct {
	UserID string           `json:"user_id"`
	Events []eventlog.Event `json:"events"`
}

// HandleGetUserEvents returns the event log of one user
// @Summary User event log
// @Description Lists processed activities and reward issuances of a user, newest first
// @Tags events
// @Produce json
// @Param userID path string true "User ID"
// @Param type query string false "Event type filter"
// @Param limit query int false "Maximum events (default 50, max 500)"
// @Success 200 {object} UserEventsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{userID}/events [get]
func HandleGetUserEvents(svc eventlog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetPathParam(r, w, ParamUserID)
		if !ok {
			return
		}
		limit, ok := GetLimitParam(r, w, DefaultEventsLimit, MaxEventsLimit)
		if !ok {
			return
		}
		eventType := GetOptionalQueryParam(r, ParamEventType, "")

		events, err := svc.UserEvents(r.Context(), userID, eventType, limit)
		if err != nil {
			respondServiceError(w, r, "Get user events", err)
			return
		}
		if events == nil {
			events = []eventlog.Event{}
		}

		respondJSON(w, http.StatusOK, UserEventsResponse{UserID: userID, Events: events})
	}
}
