package gateway

import "context"

// OutcomeKind classifies the normalized result of a provider call.
type OutcomeKind string

// Outcome kinds. GatewayError means the outcome is unknown (network failure,
// timeout, unparseable response) and must never be treated as Rejected: the
// operation may still complete on the provider's side.
const (
	Accepted     OutcomeKind = "accepted"
	Pending      OutcomeKind = "pending"
	Rejected     OutcomeKind = "rejected"
	GatewayError OutcomeKind = "gateway_error"
)

// Outcome is the normalized result of a provider purchase call.
type Outcome struct {
	Kind             OutcomeKind
	ProviderRef      string
	BilledAmountKobo *int64 // what the provider actually billed, when reported
	Reason           string // populated for Rejected and GatewayError
	Raw              string // opaque provider payload, kept for audit
}

// PurchaseRequest is the normalized input for every spend product line. The
// Reference doubles as the provider-side idempotency key and the correlation
// key for asynchronous callbacks.
type PurchaseRequest struct {
	Reference  string
	AmountKobo int64
	Recipient  string // phone, smartcard, meter or betting account number
	Network    string
	PlanCode   string
	Message    string // bulk SMS body
}

// ProviderGateway abstracts the heterogeneous aggregator purchase APIs into
// one normalized contract per product line.
type ProviderGateway interface {
	PurchaseAirtime(ctx context.Context, req PurchaseRequest) Outcome
	PurchaseData(ctx context.Context, req PurchaseRequest) Outcome
	PurchaseCable(ctx context.Context, req PurchaseRequest) Outcome
	PayElectricity(ctx context.Context, req PurchaseRequest) Outcome
	FundBettingWallet(ctx context.Context, req PurchaseRequest) Outcome
	SendBulkSMS(ctx context.Context, req PurchaseRequest) Outcome
}

// VerificationStatus is the authoritative status a funding provider reports
// for a payment reference.
type VerificationStatus string

// Verification statuses
const (
	VerifySuccess VerificationStatus = "success"
	VerifyFailed  VerificationStatus = "failed"
	VerifyPending VerificationStatus = "pending"
)

// Verification is the result of querying a funding provider by reference.
// AmountKobo is the provider-confirmed amount in the minor unit, which is the
// amount actually credited (partial or adjusted payments included).
type Verification struct {
	Status     VerificationStatus
	AmountKobo int64
	Raw        string
}

// FundingGateway abstracts the card payment provider used for wallet top-ups.
type FundingGateway interface {
	// InitializeCardFunding starts a card payment and returns the hosted
	// authorization URL the user completes it on.
	InitializeCardFunding(ctx context.Context, email string, amountKobo int64, reference string) (authorizationURL string, err error)

	// VerifyCardFunding fetches the authoritative payment status by reference.
	// Transport failures return an error (outcome unknown), never VerifyFailed.
	VerifyCardFunding(ctx context.Context, reference string) (Verification, error)
}
