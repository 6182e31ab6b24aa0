package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	portgateway "github.com/damilare-oj/vtu-processor/internal/domain/port/gateway"
)

// PaystackConfig holds connection settings for the Paystack card gateway.
type PaystackConfig struct {
	BaseURL     string
	SecretKey   string
	CallbackURL string
}

// PaystackClient implements card funding through Paystack. Amounts cross the
// wire in kobo, which matches the wallet's minor-unit representation
// directly.
type PaystackClient struct {
	config PaystackConfig
	client httpDoer
	logger coreport.Logger
}

// NewPaystackClient creates a Paystack API client.
func NewPaystackClient(config PaystackConfig, client httpDoer, logger coreport.Logger) *PaystackClient {
	return &PaystackClient{config: config, client: client, logger: logger}
}

func (c *PaystackClient) headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + c.config.SecretKey}
}

type paystackInitRequest struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	Reference   string `json:"reference"`
	CallbackURL string `json:"callback_url,omitempty"`
}

type paystackInitResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// InitializeCardFunding starts a hosted card payment for the given reference.
func (c *PaystackClient) InitializeCardFunding(ctx context.Context, email string, amountKobo int64, reference string) (string, error) {
	payload, err := json.Marshal(paystackInitRequest{
		Email:       email,
		Amount:      amountKobo,
		Reference:   reference,
		CallbackURL: c.config.CallbackURL,
	})
	if err != nil {
		return "", err
	}

	body, err := postJSON(ctx, c.client, c.config.BaseURL+"/transaction/initialize", payload, c.headers())
	if err != nil {
		return "", fmt.Errorf("paystack initialize: %w", err)
	}

	var resp paystackInitResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("paystack initialize: unparseable response: %w", err)
	}
	if !resp.Status || resp.Data.AuthorizationURL == "" {
		return "", fmt.Errorf("paystack initialize: %s", resp.Message)
	}
	return resp.Data.AuthorizationURL, nil
}

type paystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status string `json:"status"`
		Amount int64  `json:"amount"`
	} `json:"data"`
}

// VerifyCardFunding fetches the authoritative payment status by reference.
// The amount returned is what Paystack actually collected, in kobo.
func (c *PaystackClient) VerifyCardFunding(ctx context.Context, reference string) (portgateway.Verification, error) {
	body, err := get(ctx, c.client, c.config.BaseURL+"/transaction/verify/"+reference, c.headers())
	if err != nil {
		return portgateway.Verification{}, fmt.Errorf("paystack verify: %w", err)
	}

	var resp paystackVerifyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return portgateway.Verification{}, fmt.Errorf("paystack verify: unparseable response: %w", err)
	}
	if !resp.Status {
		// API-level refusal (bad reference, auth), not a payment verdict.
		return portgateway.Verification{}, fmt.Errorf("paystack verify: %s", resp.Message)
	}

	verification := portgateway.Verification{AmountKobo: resp.Data.Amount, Raw: string(body)}
	switch strings.ToLower(resp.Data.Status) {
	case "success":
		verification.Status = portgateway.VerifySuccess
	case "failed", "abandoned", "reversed":
		verification.Status = portgateway.VerifyFailed
	default:
		verification.Status = portgateway.VerifyPending
	}
	return verification, nil
}
