package gateway

import (
	"context"
	"encoding/json"
	"net/url"

	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	portgateway "github.com/damilare-oj/vtu-processor/internal/domain/port/gateway"
)

// SMSCloneConfig holds connection settings for the bulk SMS provider.
type SMSCloneConfig struct {
	BaseURL  string
	Username string
	Password string
	Sender   string
}

// SMSCloneClient sends bulk SMS through the SMSClone API.
type SMSCloneClient struct {
	config SMSCloneConfig
	client httpDoer
	logger coreport.Logger
}

// NewSMSCloneClient creates an SMSClone API client.
func NewSMSCloneClient(config SMSCloneConfig, client httpDoer, logger coreport.Logger) *SMSCloneClient {
	return &SMSCloneClient{config: config, client: client, logger: logger}
}

type smsCloneResponse struct {
	Status    string `json:"status"`
	Error     string `json:"error"`
	MessageID string `json:"message_id"`
}

// SendBulkSMS submits a message to the recipient list. Recipient is a
// comma-separated list of phone numbers.
func (c *SMSCloneClient) SendBulkSMS(ctx context.Context, req portgateway.PurchaseRequest) portgateway.Outcome {
	values := url.Values{
		"username":  {c.config.Username},
		"password":  {c.config.Password},
		"sender":    {c.config.Sender},
		"recipient": {req.Recipient},
		"message":   {req.Message},
		"ref_id":    {req.Reference},
	}

	body, err := postForm(ctx, c.client, c.config.BaseURL+"/api/send", values, nil)
	if err != nil {
		return portgateway.Outcome{Kind: portgateway.GatewayError, Reason: err.Error()}
	}

	var resp smsCloneResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn("SMSClone returned unparseable response", map[string]any{
			"body": string(body),
		})
		return portgateway.Outcome{Kind: portgateway.GatewayError, Reason: "unparseable provider response", Raw: string(body)}
	}

	outcome := portgateway.Outcome{ProviderRef: resp.MessageID, Raw: string(body)}
	switch resp.Status {
	case "OK", "success":
		outcome.Kind = portgateway.Accepted
	case "QUEUED", "queued":
		outcome.Kind = portgateway.Pending
	default:
		outcome.Kind = portgateway.Rejected
		outcome.Reason = firstNonEmpty(resp.Error, resp.Status)
	}
	return outcome
}
