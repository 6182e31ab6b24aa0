package dto

// FundRequest represents the API request to start a card funding flow
type FundRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// FundResponse represents the started funding flow
type FundResponse struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorizationUrl"`
}

// VerifyResponse represents the reconciled state of a funding reference
type VerifyResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Balance   string `json:"balance,omitempty"`
}

// WithdrawRequest represents the API request to withdraw wallet balance
type WithdrawRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

// WithdrawResponse represents a recorded withdrawal request
type WithdrawResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    string `json:"amount"`
}
