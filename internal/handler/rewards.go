package handler

import (
	"net/http"

	"github.com/osse101/EcoHunt_Go/internal/domain"
	"github.com/osse101/EcoHunt_Go/internal/logger"
	"github.com/osse101/EcoHunt_Go/internal/submission"
)

// HandleIssueReward retries issuance of an already granted reward
// @Summary Issue reward
// @Description Transfers the reward stored for a processed submission to its wallet. Used to retry issuance that failed during processing. Recipient and amount come from the stored reward decision; rewards that were already issued are refused.
// @Tags rewards
// @Accept json
// @Produce json
// @Param request body domain.RetryIssuanceRequest true "Process to retry"
// @Success 200 {object} domain.IssuanceReceipt
// @Failure 400 {object} ValidationErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /rewards/issue [post]
func HandleIssueReward(svc submission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.RetryIssuanceRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Issue reward"); err != nil {
			return
		}

		receipt, err := svc.RetryIssuance(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, "Issue reward", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgRewardIssued,
			"process_id", req.ProcessID,
			"status", receipt.Status,
			"transaction_ref", receipt.TransactionRef)
		respondJSON(w, http.StatusOK, receipt)
	}
}
