package dto

// RewardToWalletRequest converts reward balance into spendable balance
type RewardToWalletRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// WalletToWalletRequest moves spendable balance to another user
type WalletToWalletRequest struct {
	RecipientEmail string `json:"recipientEmail" binding:"required,email"`
	RecipientName  string `json:"recipientName" binding:"required"`
	Amount         string `json:"amount" binding:"required"`
}

// TransferResponse represents a completed internal transfer
type TransferResponse struct {
	Reference string `json:"reference"`
	Balance   string `json:"balance"`
	Reward    string `json:"reward,omitempty"`
}

// GiftCardRedeemRequest redeems a gift card code into the wallet
type GiftCardRedeemRequest struct {
	Code string `json:"code" binding:"required"`
}

// GiftCardRedeemResponse represents a redeemed gift card
type GiftCardRedeemResponse struct {
	Reference string `json:"reference"`
	Amount    string `json:"amount"`
	Balance   string `json:"balance"`
}
