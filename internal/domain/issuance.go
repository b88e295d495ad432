package domain

import "time"

// IssuanceStatus is the outcome of a reward issuance attempt
type IssuanceStatus string

const (
	IssuanceConfirmed IssuanceStatus = "confirmed"
	IssuanceSubmitted IssuanceStatus = "submitted"
	IssuanceFailed    IssuanceStatus = "failed"
	IssuanceSkipped   IssuanceStatus = "skipped"
)

// IssueRequest asks the issuance collaborator to transfer tokens
type IssueRequest struct {
	Recipient string            `json:"recipient" validate:"required,eth_address"`
	Amount    float64           `json:"amount" validate:"gt=0"`
	Tier      TokenTier         `json:"tier" validate:"omitempty,oneof=basic standard premium"`
	ProcessID string            `json:"processId,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// RetryIssuanceRequest asks to issue the stored reward of a processed
// submission again. Recipient and amount always come from the stored record.
type RetryIssuanceRequest struct {
	ProcessID string `json:"processId" validate:"required,max=128"`
}

// IssuanceRecord is the stored reward decision of one successful submission
// together with the latest issuance outcome
type IssuanceRecord struct {
	ProcessID      string         `json:"processId"`
	UserID         string         `json:"userId,omitempty"`
	ActivityType   ActivityType   `json:"activityType"`
	Recipient      string         `json:"recipient"`
	Amount         float64        `json:"amount"`
	Tier           TokenTier      `json:"tier,omitempty"`
	Status         IssuanceStatus `json:"status"`
	TransactionRef string         `json:"transactionRef,omitempty"`
	Error          string         `json:"error,omitempty"`
	Attempts       int            `json:"attempts"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Settled reports whether tokens were already handed to the network, so a
// retry could pay the reward twice
func (r IssuanceRecord) Settled() bool {
	return r.Status == IssuanceConfirmed || r.Status == IssuanceSubmitted
}

// Receipt returns the latest outcome as a receipt
func (r IssuanceRecord) Receipt() IssuanceReceipt {
	return IssuanceReceipt{
		Status:         r.Status,
		TransactionRef: r.TransactionRef,
		Confirmed:      r.Status == IssuanceConfirmed,
		Error:          r.Error,
	}
}

// IssuanceReceipt reports what happened to an issuance. A failed receipt does
// not invalidate the reward decision it belongs to.
type IssuanceReceipt struct {
	Status         IssuanceStatus `json:"status"`
	TransactionRef string         `json:"transactionRef,omitempty"`
	EstimatedFee   string         `json:"estimatedFee,omitempty"`
	Confirmed      bool           `json:"confirmed"`
	BlockNumber    uint64         `json:"blockNumber,omitempty"`
	Error          string         `json:"error,omitempty"`
}
