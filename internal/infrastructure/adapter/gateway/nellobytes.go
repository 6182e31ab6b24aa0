package gateway

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	portgateway "github.com/damilare-oj/vtu-processor/internal/domain/port/gateway"
)

// NelloBytesConfig holds connection settings for the NelloBytes aggregator.
type NelloBytesConfig struct {
	BaseURL string
	UserID  string
	APIKey  string
}

// NelloBytesClient talks to the NelloBytes airtime and data API. Orders are
// placed with query-style form POSTs; the response carries an order status
// string (ORDER_RECEIVED, ORDER_COMPLETED, ORDER_CANCELLED, ...).
type NelloBytesClient struct {
	config NelloBytesConfig
	client httpDoer
	logger coreport.Logger
}

// NewNelloBytesClient creates a NelloBytes API client.
func NewNelloBytesClient(config NelloBytesConfig, client httpDoer, logger coreport.Logger) *NelloBytesClient {
	return &NelloBytesClient{config: config, client: client, logger: logger}
}

type nelloBytesResponse struct {
	OrderID string `json:"orderid"`
	Status  string `json:"status"`
	Remark  string `json:"remark"`
}

// PurchaseAirtime places an airtime order.
func (c *NelloBytesClient) PurchaseAirtime(ctx context.Context, req portgateway.PurchaseRequest) portgateway.Outcome {
	values := c.baseValues(req)
	values.Set("Amount", koboToNaira(req.AmountKobo))
	return c.order(ctx, "/APIAirtimeV1.asp", values)
}

// PurchaseData places a data bundle order for the given plan code.
func (c *NelloBytesClient) PurchaseData(ctx context.Context, req portgateway.PurchaseRequest) portgateway.Outcome {
	values := c.baseValues(req)
	values.Set("DataPlan", req.PlanCode)
	return c.order(ctx, "/APIDatabundleV1.asp", values)
}

func (c *NelloBytesClient) baseValues(req portgateway.PurchaseRequest) url.Values {
	return url.Values{
		"UserID":        {c.config.UserID},
		"APIKey":        {c.config.APIKey},
		"MobileNetwork": {req.Network},
		"MobileNumber":  {req.Recipient},
		"RequestID":     {req.Reference},
	}
}

func (c *NelloBytesClient) order(ctx context.Context, path string, values url.Values) portgateway.Outcome {
	body, err := postForm(ctx, c.client, c.config.BaseURL+path, values, nil)
	if err != nil {
		return portgateway.Outcome{Kind: portgateway.GatewayError, Reason: err.Error()}
	}

	var resp nelloBytesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn("NelloBytes returned unparseable response", map[string]any{
			"body": string(body),
		})
		return portgateway.Outcome{Kind: portgateway.GatewayError, Reason: "unparseable provider response", Raw: string(body)}
	}

	outcome := portgateway.Outcome{ProviderRef: resp.OrderID, Raw: string(body)}
	switch strings.ToUpper(strings.TrimSpace(resp.Status)) {
	case "ORDER_COMPLETED":
		outcome.Kind = portgateway.Accepted
	case "ORDER_RECEIVED", "ORDER_PROCESSED":
		outcome.Kind = portgateway.Pending
	default:
		outcome.Kind = portgateway.Rejected
		outcome.Reason = firstNonEmpty(resp.Remark, resp.Status)
	}
	return outcome
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
