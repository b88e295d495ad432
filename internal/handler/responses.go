package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// Headers are already sent, so encoding failures can only be logged
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		logger.Error(LogMsgEncodeResponseFailed, "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		logger.Error(LogMsgWriteResponseFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and answers with the mapped
// status and user-facing message
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceCallFailed, "operation", opName, "status", status, "error", err)
	} else {
		log.Warn(LogMsgServiceCallFailed, "operation", opName, "status", status, "error", err)
	}
	respondError(w, status, message)
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgTimeoutError        = "Processing took too long. Please try again."

	// Submission messages
	ErrMsgValidationError     = "Submission is invalid. Please check the activity details."
	ErrMsgPhotoNotFoundError  = "Photo not found"
	ErrMsgPhotoStoreError     = "Photo storage is unavailable. Please try again later."
	ErrMsgUserNotFoundError   = "User not found"
	ErrMsgPipelineErrorString = "Activity could not be processed"

	// Issuance messages
	ErrMsgInvalidRecipientError    = "Wallet address is not a valid recipient"
	ErrMsgInsufficientFundsError   = "Reward pool has insufficient funds"
	ErrMsgIssuanceNetworkError     = "Reward network is unreachable. Please try again later."
	ErrMsgIssuanceUnavailableError = "Reward issuance is disabled"
	ErrMsgIssuanceFailedError      = "Reward issuance failed"
	ErrMsgRewardNotFoundError      = "No reward found for this submission"
	ErrMsgAlreadyIssuedError       = "Reward was already issued"
)

// mapServiceErrorToUserMessage converts engine errors to HTTP status codes
// and messages that callers can act upon. Specific causes are checked before
// the generic wrappers that usually carry them.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, ErrMsgValidationError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrPhotoNotFound):
		return http.StatusNotFound, ErrMsgPhotoNotFoundError
	case errors.Is(err, domain.ErrPhotoIO):
		return http.StatusBadGateway, ErrMsgPhotoStoreError
	case errors.Is(err, domain.ErrRewardNotFound):
		return http.StatusNotFound, ErrMsgRewardNotFoundError
	case errors.Is(err, domain.ErrAlreadyIssued):
		return http.StatusConflict, ErrMsgAlreadyIssuedError
	case errors.Is(err, domain.ErrInvalidRecipient):
		return http.StatusBadRequest, ErrMsgInvalidRecipientError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired, ErrMsgInsufficientFundsError
	case errors.Is(err, domain.ErrIssuanceNetwork):
		return http.StatusBadGateway, ErrMsgIssuanceNetworkError
	case errors.Is(err, domain.ErrIssuanceUnavailable):
		return http.StatusServiceUnavailable, ErrMsgIssuanceUnavailableError
	case errors.Is(err, domain.ErrIssuanceFailure):
		return http.StatusBadGateway, ErrMsgIssuanceFailedError
	case errors.Is(err, domain.ErrSubmissionTimeout):
		return http.StatusGatewayTimeout, ErrMsgTimeoutError
	case errors.Is(err, domain.ErrPipelineFailure):
		return http.StatusInternalServerError, ErrMsgPipelineErrorString
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
