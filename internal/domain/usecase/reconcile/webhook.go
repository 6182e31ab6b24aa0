package reconcile

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	"github.com/damilare-oj/vtu-processor/internal/domain/port/persistence"
)

// CallbackDisposition classifies what the finalizer did with a callback.
type CallbackDisposition string

// Callback dispositions
const (
	CallbackFinalized    CallbackDisposition = "finalized"
	CallbackDuplicate    CallbackDisposition = "duplicate"   // transaction already terminal
	CallbackUnknownRef   CallbackDisposition = "unknown_ref" // no matching transaction
	CallbackUnrecognized CallbackDisposition = "unrecognized_status"
	CallbackLostRace     CallbackDisposition = "lost_race"
)

// WebhookFinalizer applies asynchronously delivered provider outcomes to
// pending transactions. Every payload is persisted for audit before any
// parsing; every ledger effect is arbitrated by the store's conditional
// pending -> terminal update, so provider retries and duplicate callbacks are
// no-ops. Ambiguous signals fail open: the transaction stays pending and is
// never auto-compensated.
type WebhookFinalizer struct {
	ledger       persistence.LedgerRepository
	transactions persistence.TransactionRepository
	callbacks    persistence.CallbackEventRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewWebhookFinalizer creates a webhook finalizer.
func NewWebhookFinalizer(
	ledger persistence.LedgerRepository,
	transactions persistence.TransactionRepository,
	callbacks persistence.CallbackEventRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *WebhookFinalizer {
	return &WebhookFinalizer{
		ledger:       ledger,
		transactions: transactions,
		callbacks:    callbacks,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// callbackPayload covers the reference/status field spellings the aggregators
// use. Whichever is present wins. Amount stays raw because providers send it
// both quoted and bare.
type callbackPayload struct {
	ClientReference string          `json:"client_reference"`
	OrderID         string          `json:"OrderID"`
	Reference       string          `json:"reference"`
	Status          string          `json:"status"`
	OrderStatus     string          `json:"order_status"`
	StatusCode      string          `json:"statuscode"`
	Amount          json.RawMessage `json:"amount"`
}

func (p *callbackPayload) reference() string {
	for _, ref := range []string{p.ClientReference, p.OrderID, p.Reference} {
		if strings.TrimSpace(ref) != "" {
			return strings.TrimSpace(ref)
		}
	}
	return ""
}

// amountKobo reports the provider-confirmed amount carried in the callback.
// Funding providers send minor units, either quoted or bare.
func (p *callbackPayload) amountKobo() (int64, bool) {
	raw := strings.Trim(strings.TrimSpace(string(p.Amount)), `"`)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func (p *callbackPayload) status() string {
	if strings.TrimSpace(p.Status) != "" {
		return p.Status
	}
	if strings.TrimSpace(p.OrderStatus) != "" {
		return p.OrderStatus
	}
	return p.StatusCode
}

// providerVocab maps each provider's status vocabulary into the canonical
// terminal statuses. Values absent from the map leave the transaction pending.
var providerVocab = map[string]map[string]entity.TransactionStatus{
	"easyaccess": {
		"order_completed": entity.StatusSuccess,
		"order_cancelled": entity.StatusFailed,
		"order_failed":    entity.StatusFailed,
		"success":         entity.StatusSuccess,
		"failed":          entity.StatusFailed,
	},
	"nellobytes": {
		"order_completed": entity.StatusSuccess,
		"order_cancelled": entity.StatusFailed,
		"order_failed":    entity.StatusFailed,
	},
	"smsclone": {
		"success":   entity.StatusSuccess,
		"delivered": entity.StatusSuccess,
		"failed":    entity.StatusFailed,
	},
	"paystack": {
		"charge.success": entity.StatusSuccess,
		"success":        entity.StatusSuccess,
		"failed":         entity.StatusFailed,
	},
}

// HandleCallback processes one raw provider callback. It always acknowledges:
// the returned disposition is diagnostic, the error is reserved for store
// failures that warrant a provider retry.
func (w *WebhookFinalizer) HandleCallback(ctx context.Context, provider string, payload []byte) (CallbackDisposition, error) {
	var parsed callbackPayload
	parseErr := json.Unmarshal(payload, &parsed)

	// Audit first, whatever the payload turns out to be.
	if err := w.callbacks.Append(ctx, provider, parsed.reference(), payload); err != nil {
		w.logger.Error("Failed to persist callback payload", map[string]any{
			"provider": provider,
			"error":    err.Error(),
		})
	}

	if parseErr != nil || parsed.reference() == "" {
		w.logger.Warn("Callback without usable reference, acknowledged without action", map[string]any{
			"provider": provider,
			"payload":  string(payload),
		})
		return CallbackUnknownRef, nil
	}

	reference := parsed.reference()
	txn, err := w.transactions.GetByReference(ctx, reference)
	if err != nil {
		// The provider should stop retrying; record the anomaly for manual review.
		w.logger.Warn("Callback for unknown transaction, acknowledged without action", map[string]any{
			"provider":  provider,
			"reference": reference,
		})
		return CallbackUnknownRef, nil
	}

	if txn.IsTerminal() {
		return CallbackDuplicate, nil
	}

	terminal, ok := mapProviderStatus(provider, parsed.status())
	if !ok {
		w.logger.Warn("Unrecognized callback status, transaction left pending", map[string]any{
			"provider":  provider,
			"reference": reference,
			"status":    parsed.status(),
		})
		return CallbackUnrecognized, nil
	}

	return w.finalize(ctx, txn, terminal, &parsed, string(payload))
}

// finalize applies a canonical terminal status to a pending transaction.
func (w *WebhookFinalizer) finalize(ctx context.Context, txn *entity.Transaction, terminal entity.TransactionStatus, parsed *callbackPayload, raw string) (CallbackDisposition, error) {
	now := w.timeProvider.Now()

	var won bool
	var err error

	switch {
	case terminal == entity.StatusSuccess && txn.Type == entity.TypeFund:
		// Async funding confirmation: additive credit, at most once. The
		// provider-confirmed amount wins over the requested one so partial or
		// adjusted payments reconcile on what was actually collected.
		creditKobo := txn.AmountKobo
		if confirmed, ok := parsed.amountKobo(); ok {
			if confirmed != txn.AmountKobo {
				w.logger.Warn("Provider confirmed a different funding amount", map[string]any{
					"reference":      txn.Reference,
					"amount_kobo":    txn.AmountKobo,
					"confirmed_kobo": confirmed,
				})
			}
			creditKobo = confirmed
		}
		won, err = w.ledger.CreditAndFinalize(ctx, txn.Reference, creditKobo, persistence.Finalization{
			Status:      entity.StatusSuccess,
			APIResponse: raw,
			ProcessedAt: now,
		})

	case terminal == entity.StatusSuccess:
		// Spend confirmed: the provisional debit stands.
		won, err = w.transactions.Finalize(ctx, txn.Reference, persistence.Finalization{
			Status:      entity.StatusSuccess,
			APIResponse: raw,
			ProcessedAt: now,
		})

	case txn.IsDebit():
		// Spend cancelled after the up-front debit: compensate exactly once.
		won, err = w.ledger.RefundAndFinalize(ctx, txn.Reference, txn.AmountKobo, persistence.Finalization{
			Status:       entity.StatusFailed,
			APIResponse:  raw,
			ErrorMessage: "cancelled by provider",
			ProcessedAt:  now,
		})

	default:
		// Fund or withdraw: no money had moved, so failed needs no compensation.
		won, err = w.transactions.Finalize(ctx, txn.Reference, persistence.Finalization{
			Status:       entity.StatusFailed,
			APIResponse:  raw,
			ErrorMessage: "failed at provider",
			ProcessedAt:  now,
		})
	}

	if err != nil {
		return "", err
	}
	if !won {
		return CallbackLostRace, nil
	}

	w.logger.Info("Callback finalized transaction", map[string]any{
		"reference": txn.Reference,
		"type":      txn.Type,
		"status":    terminal,
	})
	return CallbackFinalized, nil
}

func mapProviderStatus(provider, status string) (entity.TransactionStatus, bool) {
	vocab, ok := providerVocab[strings.ToLower(provider)]
	if !ok {
		return "", false
	}
	mapped, ok := vocab[strings.ToLower(strings.TrimSpace(status))]
	return mapped, ok
}
