package sse

// ActivityUpdatePayload is the live update for one processed submission
type ActivityUpdatePayload struct {
	ProcessID           string  `json:"process_id"`
	ActivityType        string  `json:"activity_type"`
	Success             bool    `json:"success"`
	RewardAmount        float64 `json:"reward_amount"`
	TokenTier           string  `json:"token_tier,omitempty"`
	VerificationScore   int     `json:"verification_score"`
	SustainabilityScore int     `json:"sustainability_score"`
	ErrorKind           string  `json:"error_kind,omitempty"`
	DurationMs          int64   `json:"duration_ms"`
}

// IssuanceUpdatePayload is the live update for an issuance attempt
type IssuanceUpdatePayload struct {
	ProcessID      string  `json:"process_id"`
	Amount         float64 `json:"amount"`
	Status         string  `json:"status"`
	TransactionRef string  `json:"transaction_ref,omitempty"`
	Error          string  `json:"error,omitempty"`
}
