package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	portgateway "github.com/damilare-oj/vtu-processor/internal/domain/port/gateway"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDoer answers every request with a canned body, or fails with err.
type stubDoer struct {
	body    string
	err     error
	lastReq *http.Request
}

func (s *stubDoer) Do(req *http.Request) (*http.Response, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(s.body)),
	}, nil
}

func purchaseReq() portgateway.PurchaseRequest {
	return portgateway.PurchaseRequest{
		Reference:  "VTU-TEST1",
		AmountKobo: 50000,
		Recipient:  "08030000000",
		Network:    "mtn",
	}
}

func TestNelloBytesOutcomeMapping(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want portgateway.OutcomeKind
	}{
		{"Completed", `{"orderid":"NB-1","status":"ORDER_COMPLETED"}`, portgateway.Accepted},
		{"Received", `{"orderid":"NB-2","status":"ORDER_RECEIVED"}`, portgateway.Pending},
		{"Processed", `{"orderid":"NB-3","status":"ORDER_PROCESSED"}`, portgateway.Pending},
		{"Cancelled", `{"orderid":"NB-4","status":"ORDER_CANCELLED","remark":"INVALID_MOBILENUMBER"}`, portgateway.Rejected},
		{"Unparseable", `<html>gateway timeout</html>`, portgateway.GatewayError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doer := &stubDoer{body: tc.body}
			client := NewNelloBytesClient(NelloBytesConfig{BaseURL: "https://nb.example.com", UserID: "u", APIKey: "k"}, doer, logger.NewNoopLogger())

			outcome := client.PurchaseAirtime(context.Background(), purchaseReq())
			assert.Equal(t, tc.want, outcome.Kind)
		})
	}
}

func TestNelloBytesTransportErrorIsGatewayError(t *testing.T) {
	doer := &stubDoer{err: errors.New("dial tcp: i/o timeout")}
	client := NewNelloBytesClient(NelloBytesConfig{BaseURL: "https://nb.example.com"}, doer, logger.NewNoopLogger())

	outcome := client.PurchaseAirtime(context.Background(), purchaseReq())

	// A transport failure means the order may still have been placed. That is
	// never a rejection.
	assert.Equal(t, portgateway.GatewayError, outcome.Kind)
	assert.NotEqual(t, portgateway.Rejected, outcome.Kind)
}

func TestNelloBytesRejectionCarriesRemark(t *testing.T) {
	doer := &stubDoer{body: `{"orderid":"NB-9","status":"ORDER_CANCELLED","remark":"INSUFFICIENT_BALANCE"}`}
	client := NewNelloBytesClient(NelloBytesConfig{BaseURL: "https://nb.example.com"}, doer, logger.NewNoopLogger())

	outcome := client.PurchaseAirtime(context.Background(), purchaseReq())

	assert.Equal(t, portgateway.Rejected, outcome.Kind)
	assert.Equal(t, "INSUFFICIENT_BALANCE", outcome.Reason)
	assert.Equal(t, "NB-9", outcome.ProviderRef)
}

func TestEasyAccessOutcomeMapping(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want portgateway.OutcomeKind
	}{
		{"Success no order status", `{"success":"true","message":"ok","reference":"EA-1"}`, portgateway.Accepted},
		{"Success completed", `{"success":"true","reference":"EA-2","order_status":"ORDER_COMPLETED"}`, portgateway.Accepted},
		{"Success received", `{"success":"true","reference":"EA-3","order_status":"ORDER_RECEIVED"}`, portgateway.Pending},
		{"Explicit failure", `{"success":"false","message":"Invalid IUC number"}`, portgateway.Rejected},
		{"Unexpected order status", `{"success":"true","order_status":"ORDER_ONHOLD"}`, portgateway.Rejected},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doer := &stubDoer{body: tc.body}
			client := NewEasyAccessClient(EasyAccessConfig{BaseURL: "https://ea.example.com", APIKey: "secret"}, doer, logger.NewNoopLogger())

			outcome := client.PurchaseCable(context.Background(), portgateway.PurchaseRequest{
				Reference: "VTU-TEST2",
				Recipient: "1234567890",
				Network:   "dstv",
				PlanCode:  "dstv-compact",
			})
			assert.Equal(t, tc.want, outcome.Kind)
		})
	}
}

func TestEasyAccessSendsTokenHeader(t *testing.T) {
	doer := &stubDoer{body: `{"success":"true"}`}
	client := NewEasyAccessClient(EasyAccessConfig{BaseURL: "https://ea.example.com", APIKey: "secret"}, doer, logger.NewNoopLogger())

	client.PayElectricity(context.Background(), purchaseReq())

	require.NotNil(t, doer.lastReq)
	assert.Equal(t, "Token secret", doer.lastReq.Header.Get("Authorization"))
	assert.Equal(t, "/api/electricity/", doer.lastReq.URL.Path)
}

func TestSMSCloneOutcomeMapping(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want portgateway.OutcomeKind
	}{
		{"Sent", `{"status":"OK","message_id":"SC-1"}`, portgateway.Accepted},
		{"Queued", `{"status":"QUEUED","message_id":"SC-2"}`, portgateway.Pending},
		{"Failed", `{"status":"FAILED","error":"no credits"}`, portgateway.Rejected},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doer := &stubDoer{body: tc.body}
			client := NewSMSCloneClient(SMSCloneConfig{BaseURL: "https://sms.example.com", Username: "u", Password: "p", Sender: "VTU"}, doer, logger.NewNoopLogger())

			outcome := client.SendBulkSMS(context.Background(), portgateway.PurchaseRequest{
				Reference: "VTU-TEST3",
				Recipient: "08030000000,08040000000",
				Message:   "hello",
			})
			assert.Equal(t, tc.want, outcome.Kind)
		})
	}
}

func TestPaystackVerifyMapping(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want portgateway.VerificationStatus
	}{
		{"Success", `{"status":true,"data":{"status":"success","amount":150000}}`, portgateway.VerifySuccess},
		{"Failed", `{"status":true,"data":{"status":"failed"}}`, portgateway.VerifyFailed},
		{"Abandoned", `{"status":true,"data":{"status":"abandoned"}}`, portgateway.VerifyFailed},
		{"Ongoing", `{"status":true,"data":{"status":"ongoing"}}`, portgateway.VerifyPending},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doer := &stubDoer{body: tc.body}
			client := NewPaystackClient(PaystackConfig{BaseURL: "https://api.paystack.co", SecretKey: "sk_test"}, doer, logger.NewNoopLogger())

			verification, err := client.VerifyCardFunding(context.Background(), "VTU-F1")

			require.NoError(t, err)
			assert.Equal(t, tc.want, verification.Status)
		})
	}
}

func TestPaystackVerifyCarriesConfirmedAmount(t *testing.T) {
	doer := &stubDoer{body: `{"status":true,"data":{"status":"success","amount":150000}}`}
	client := NewPaystackClient(PaystackConfig{BaseURL: "https://api.paystack.co", SecretKey: "sk_test"}, doer, logger.NewNoopLogger())

	verification, err := client.VerifyCardFunding(context.Background(), "VTU-F1")

	require.NoError(t, err)
	assert.Equal(t, int64(150000), verification.AmountKobo)
}

func TestPaystackInitialize(t *testing.T) {
	doer := &stubDoer{body: `{"status":true,"data":{"authorization_url":"https://checkout.paystack.com/abc","reference":"VTU-F2"}}`}
	client := NewPaystackClient(PaystackConfig{BaseURL: "https://api.paystack.co", SecretKey: "sk_test"}, doer, logger.NewNoopLogger())

	authURL, err := client.InitializeCardFunding(context.Background(), "jane@example.com", 200000, "VTU-F2")

	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc", authURL)
	require.NotNil(t, doer.lastReq)
	assert.Equal(t, "Bearer sk_test", doer.lastReq.Header.Get("Authorization"))
}

func TestPaystackAPIFailure(t *testing.T) {
	doer := &stubDoer{body: `{"status":false,"message":"Invalid key"}`}
	client := NewPaystackClient(PaystackConfig{BaseURL: "https://api.paystack.co", SecretKey: "bad"}, doer, logger.NewNoopLogger())

	_, err := client.InitializeCardFunding(context.Background(), "jane@example.com", 200000, "VTU-F3")
	assert.Error(t, err)
}
