package domain

import (
	"context"
	"errors"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Submission errors
	ErrMsgValidation   = "invalid submission"
	ErrMsgMissingPhoto = "photo data or photo reference is required"

	// Pipeline errors
	ErrMsgSubcheckFailure   = "photo sub-check failed"
	ErrMsgPipelineFailure   = "processing pipeline failed"
	ErrMsgSubmissionTimeout = "submission processing timed out"
	ErrMsgRewardCalculation = "reward calculation failed"

	// Collaborator errors
	ErrMsgPhotoNotFound       = "photo not found"
	ErrMsgPhotoIO             = "photo store I/O error"
	ErrMsgIssuanceFailure     = "reward issuance failed"
	ErrMsgInvalidRecipient    = "invalid recipient"
	ErrMsgInsufficientFunds   = "insufficient funds"
	ErrMsgIssuanceNetwork     = "issuance network error"
	ErrMsgIssuanceUnavailable = "reward issuance is disabled"
	ErrMsgUserNotFound        = "user not found"
	ErrMsgRewardNotFound      = "no reward decision stored for process"
	ErrMsgAlreadyIssued       = "reward already issued"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrValidation        = errors.New(ErrMsgValidation)
	ErrSubcheckFailure   = errors.New(ErrMsgSubcheckFailure)
	ErrPipelineFailure   = errors.New(ErrMsgPipelineFailure)
	ErrSubmissionTimeout = errors.New(ErrMsgSubmissionTimeout)
	ErrRewardCalculation = errors.New(ErrMsgRewardCalculation)

	ErrPhotoNotFound       = errors.New(ErrMsgPhotoNotFound)
	ErrPhotoIO             = errors.New(ErrMsgPhotoIO)
	ErrIssuanceFailure     = errors.New(ErrMsgIssuanceFailure)
	ErrInvalidRecipient    = errors.New(ErrMsgInvalidRecipient)
	ErrInsufficientFunds   = errors.New(ErrMsgInsufficientFunds)
	ErrIssuanceNetwork     = errors.New(ErrMsgIssuanceNetwork)
	ErrIssuanceUnavailable = errors.New(ErrMsgIssuanceUnavailable)
	ErrUserNotFound        = errors.New(ErrMsgUserNotFound)
	ErrRewardNotFound      = errors.New(ErrMsgRewardNotFound)
	ErrAlreadyIssued       = errors.New(ErrMsgAlreadyIssued)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// ErrorKind classifies why a submission did not complete
type ErrorKind string

const (
	ErrorKindNone       ErrorKind = ""
	ErrorKindValidation ErrorKind = "validation"
	ErrorKindPipeline   ErrorKind = "pipeline"
	ErrorKindTimeout    ErrorKind = "timeout"
	ErrorKindCancelled  ErrorKind = "cancelled"
)

// ClassifyError maps a pipeline error onto its ErrorKind
func ClassifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindNone
	case errors.Is(err, ErrValidation):
		return ErrorKindValidation
	case errors.Is(err, ErrSubmissionTimeout), errors.Is(err, context.DeadlineExceeded):
		return ErrorKindTimeout
	case errors.Is(err, context.Canceled):
		return ErrorKindCancelled
	default:
		return ErrorKindPipeline
	}
}
