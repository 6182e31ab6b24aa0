package gateway

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	portgateway "github.com/damilare-oj/vtu-processor/internal/domain/port/gateway"
)

// EasyAccessConfig holds connection settings for the EasyAccess aggregator.
type EasyAccessConfig struct {
	BaseURL string
	APIKey  string
}

// EasyAccessClient talks to the EasyAccess VTU aggregator. The API takes
// form-encoded POSTs and answers JSON with a string "success" flag plus an
// order status for asynchronously fulfilled products.
type EasyAccessClient struct {
	config EasyAccessConfig
	client httpDoer
	logger coreport.Logger
}

// NewEasyAccessClient creates an EasyAccess API client.
func NewEasyAccessClient(config EasyAccessConfig, client httpDoer, logger coreport.Logger) *EasyAccessClient {
	return &EasyAccessClient{config: config, client: client, logger: logger}
}

// easyAccessResponse is the common shape of EasyAccess purchase responses.
type easyAccessResponse struct {
	Success     string `json:"success"`
	Message     string `json:"message"`
	Reference   string `json:"reference"`
	OrderStatus string `json:"order_status"`
}

func (c *EasyAccessClient) headers() map[string]string {
	return map[string]string{"Authorization": "Token " + c.config.APIKey}
}

// PurchaseCable pays a cable TV subscription.
func (c *EasyAccessClient) PurchaseCable(ctx context.Context, req portgateway.PurchaseRequest) portgateway.Outcome {
	values := url.Values{
		"company":          {req.Network},
		"iucno":            {req.Recipient},
		"package":          {req.PlanCode},
		"client_reference": {req.Reference},
	}
	return c.purchase(ctx, "/api/paytv/", values)
}

// PayElectricity buys an electricity token for a meter.
func (c *EasyAccessClient) PayElectricity(ctx context.Context, req portgateway.PurchaseRequest) portgateway.Outcome {
	values := url.Values{
		"company":          {req.Network},
		"meterno":          {req.Recipient},
		"amount":           {koboToNaira(req.AmountKobo)},
		"client_reference": {req.Reference},
	}
	return c.purchase(ctx, "/api/electricity/", values)
}

// FundBettingWallet tops up a betting account.
func (c *EasyAccessClient) FundBettingWallet(ctx context.Context, req portgateway.PurchaseRequest) portgateway.Outcome {
	values := url.Values{
		"company":          {req.Network},
		"customerid":       {req.Recipient},
		"amount":           {koboToNaira(req.AmountKobo)},
		"client_reference": {req.Reference},
	}
	return c.purchase(ctx, "/api/betting/", values)
}

func (c *EasyAccessClient) purchase(ctx context.Context, path string, values url.Values) portgateway.Outcome {
	body, err := postForm(ctx, c.client, c.config.BaseURL+path, values, c.headers())
	if err != nil {
		// Outcome unknown: the order may still be placed on the provider side.
		return portgateway.Outcome{Kind: portgateway.GatewayError, Reason: err.Error()}
	}

	var resp easyAccessResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn("EasyAccess returned unparseable response", map[string]any{
			"body": string(body),
		})
		return portgateway.Outcome{Kind: portgateway.GatewayError, Reason: "unparseable provider response", Raw: string(body)}
	}

	outcome := portgateway.Outcome{ProviderRef: resp.Reference, Raw: string(body)}
	switch {
	case !strings.EqualFold(resp.Success, "true"):
		outcome.Kind = portgateway.Rejected
		outcome.Reason = resp.Message

	case strings.EqualFold(resp.OrderStatus, "ORDER_COMPLETED"), resp.OrderStatus == "":
		outcome.Kind = portgateway.Accepted

	case strings.EqualFold(resp.OrderStatus, "ORDER_RECEIVED"):
		// Fulfilment continues asynchronously; the callback settles it.
		outcome.Kind = portgateway.Pending

	default:
		outcome.Kind = portgateway.Rejected
		outcome.Reason = resp.OrderStatus
	}
	return outcome
}
