package gateway

import (
	"context"

	portgateway "github.com/damilare-oj/vtu-processor/internal/domain/port/gateway"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/metrics"
)

// VTUGateway routes each product line to the aggregator that fulfils it:
// airtime and data through NelloBytes, cable TV, electricity and betting
// through EasyAccess, bulk SMS through SMSClone. It is the single
// ProviderGateway the reconciliation engine depends on.
type VTUGateway struct {
	easyAccess *EasyAccessClient
	nelloBytes *NelloBytesClient
	smsClone   *SMSCloneClient
}

// NewVTUGateway composes the per-provider clients into one gateway.
func NewVTUGateway(easyAccess *EasyAccessClient, nelloBytes *NelloBytesClient, smsClone *SMSCloneClient) *VTUGateway {
	return &VTUGateway{easyAccess: easyAccess, nelloBytes: nelloBytes, smsClone: smsClone}
}

// PurchaseAirtime fulfils an airtime order.
func (g *VTUGateway) PurchaseAirtime(ctx context.Context, req portgateway.PurchaseRequest) portgateway.Outcome {
	return observe("nellobytes", g.nelloBytes.PurchaseAirtime(ctx, req))
}

// PurchaseData fulfils a data bundle order.
func (g *VTUGateway) PurchaseData(ctx context.Context, req portgateway.PurchaseRequest) portgateway.Outcome {
	return observe("nellobytes", g.nelloBytes.PurchaseData(ctx, req))
}

// PurchaseCable fulfils a cable TV subscription.
func (g *VTUGateway) PurchaseCable(ctx context.Context, req portgateway.PurchaseRequest) portgateway.Outcome {
	return observe("easyaccess", g.easyAccess.PurchaseCable(ctx, req))
}

// PayElectricity fulfils an electricity token purchase.
func (g *VTUGateway) PayElectricity(ctx context.Context, req portgateway.PurchaseRequest) portgateway.Outcome {
	return observe("easyaccess", g.easyAccess.PayElectricity(ctx, req))
}

// FundBettingWallet fulfils a betting wallet top-up.
func (g *VTUGateway) FundBettingWallet(ctx context.Context, req portgateway.PurchaseRequest) portgateway.Outcome {
	return observe("easyaccess", g.easyAccess.FundBettingWallet(ctx, req))
}

// SendBulkSMS fulfils a bulk SMS send.
func (g *VTUGateway) SendBulkSMS(ctx context.Context, req portgateway.PurchaseRequest) portgateway.Outcome {
	return observe("smsclone", g.smsClone.SendBulkSMS(ctx, req))
}

func observe(provider string, outcome portgateway.Outcome) portgateway.Outcome {
	metrics.GatewayCallsTotal.WithLabelValues(provider, string(outcome.Kind)).Inc()
	return outcome
}
