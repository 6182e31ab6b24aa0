package dto

// SpendRequest represents the API request for any spend product
type SpendRequest struct {
	Recipient   string `json:"recipient" binding:"required"`
	Network     string `json:"network"`
	PlanCode    string `json:"planCode"`
	Amount      string `json:"amount"`
	Message     string `json:"message"`
	Reference   string `json:"reference"`
	Description string `json:"description"`
}

// SpendResponse represents the API response for a spend request
type SpendResponse struct {
	Reference   string `json:"reference"`
	Status      string `json:"status"`
	Balance     string `json:"balance"`
	Message     string `json:"message"`
	AlreadySeen bool   `json:"alreadySeen,omitempty"`
}
