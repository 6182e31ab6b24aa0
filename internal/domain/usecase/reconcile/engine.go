package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	errs "github.com/damilare-oj/vtu-processor/internal/domain/apperror"
	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	"github.com/damilare-oj/vtu-processor/internal/domain/port/gateway"
	"github.com/damilare-oj/vtu-processor/internal/domain/port/persistence"
)

// Engine orchestrates the debit-call-confirm cycle for every spend operation.
// One state machine serves all product lines:
//
//	debit + pending row  ->  provider call  ->  Accepted: success, debit stands
//	                                         -> Rejected: failed + compensate
//	                                         -> Pending/GatewayError: stays pending,
//	                                            resolved later by webhook or verify
//
// The debit is committed before the provider call so that a crash in between
// leaves a recoverable pending transaction, never a silently lost debit.
type Engine struct {
	ledger       persistence.LedgerRepository
	transactions persistence.TransactionRepository
	plans        persistence.PlanRepository
	provider     gateway.ProviderGateway
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewEngine creates a reconciliation engine.
func NewEngine(
	ledger persistence.LedgerRepository,
	transactions persistence.TransactionRepository,
	plans persistence.PlanRepository,
	provider gateway.ProviderGateway,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Engine {
	return &Engine{
		ledger:       ledger,
		transactions: transactions,
		plans:        plans,
		provider:     provider,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// SpendRequest is the normalized input for a spend operation. The user id
// always comes from the authenticated caller, never from the request body.
type SpendRequest struct {
	Product     entity.TransactionType
	Recipient   string
	Network     string
	PlanCode    string // plan-priced products: data, cabletv
	Amount      string // amount-priced products: airtime, electricity, betting, sms
	Message     string // bulk SMS body
	Reference   string // caller-supplied idempotency key, generated when empty
	Description string
}

// SpendResult reports the synchronous outcome of a spend operation.
type SpendResult struct {
	Reference    string
	Status       entity.TransactionStatus
	Balance      string // balance after this request's effect, when known
	Message      string
	AlreadySeen  bool // true when the reference had been processed before
}

// gatewayOp selects the provider operation for a product line.
type gatewayOp func(gateway.ProviderGateway, context.Context, gateway.PurchaseRequest) gateway.Outcome

var productOps = map[entity.TransactionType]gatewayOp{
	entity.TypeAirtime: func(g gateway.ProviderGateway, ctx context.Context, r gateway.PurchaseRequest) gateway.Outcome {
		return g.PurchaseAirtime(ctx, r)
	},
	entity.TypeData: func(g gateway.ProviderGateway, ctx context.Context, r gateway.PurchaseRequest) gateway.Outcome {
		return g.PurchaseData(ctx, r)
	},
	entity.TypeCableTV: func(g gateway.ProviderGateway, ctx context.Context, r gateway.PurchaseRequest) gateway.Outcome {
		return g.PurchaseCable(ctx, r)
	},
	entity.TypeElectricity: func(g gateway.ProviderGateway, ctx context.Context, r gateway.PurchaseRequest) gateway.Outcome {
		return g.PayElectricity(ctx, r)
	},
	entity.TypeBetting: func(g gateway.ProviderGateway, ctx context.Context, r gateway.PurchaseRequest) gateway.Outcome {
		return g.FundBettingWallet(ctx, r)
	},
	entity.TypeSMS: func(g gateway.ProviderGateway, ctx context.Context, r gateway.PurchaseRequest) gateway.Outcome {
		return g.SendBulkSMS(ctx, r)
	},
}

// planPriced marks product lines whose price comes from the plan catalog
// rather than a caller-supplied amount.
var planPriced = map[entity.TransactionType]bool{
	entity.TypeData:    true,
	entity.TypeCableTV: true,
}

// Spend runs the full reconciliation protocol for one spend request.
func (e *Engine) Spend(ctx context.Context, userID uint64, req SpendRequest) (*SpendResult, error) {
	op, ok := productOps[req.Product]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported product %q", errs.ErrValidation, req.Product)
	}
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if strings.TrimSpace(req.Recipient) == "" {
		return nil, fmt.Errorf("%w: recipient is required", errs.ErrValidation)
	}

	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		reference = NewReference()
	} else {
		// Caller-supplied reference: replay the recorded outcome instead of
		// charging twice. Only the owner gets the replay; anyone else holding
		// the reference sees a plain conflict, never the owner's balances.
		if existing, err := e.transactions.GetByReference(ctx, reference); err == nil {
			if existing.UserID != userID {
				return nil, errs.ErrDuplicateReference
			}
			return e.replay(existing), nil
		} else if !errs.IsNotFoundError(err) {
			return nil, err
		}
	}

	priceKobo, plan, err := e.resolvePrice(ctx, req)
	if err != nil {
		return nil, err
	}

	txn, err := entity.NewTransaction(userID, reference, req.Product, priceKobo, e.timeProvider)
	if err != nil {
		return nil, err
	}
	txn.Network = req.Network
	txn.Phone = req.Recipient
	txn.Description = req.Description
	if plan != nil {
		txn.Plan = plan.Code
		if txn.Description == "" {
			txn.Description = plan.Name
		}
	}

	// Debit and pending row land in one store transaction before the
	// provider is ever contacted.
	if err := e.ledger.SpendAndRecord(ctx, txn); err != nil {
		if errs.IsInsufficientFundsError(err) {
			e.logger.Warn("Spend refused: insufficient funds", map[string]any{
				"user_id":    userID,
				"product":    req.Product,
				"price_kobo": priceKobo,
			})
		}
		return nil, err
	}

	e.logger.Info("Provisional debit applied", map[string]any{
		"reference":      reference,
		"user_id":        userID,
		"product":        req.Product,
		"price_kobo":     priceKobo,
		"balance_before": txn.BalanceBefore,
		"balance_after":  txn.BalanceAfter,
	})

	outcome := op(e.provider, ctx, gateway.PurchaseRequest{
		Reference:  reference,
		AmountKobo: priceKobo,
		Recipient:  req.Recipient,
		Network:    req.Network,
		PlanCode:   req.PlanCode,
		Message:    req.Message,
	})

	return e.applyOutcome(ctx, txn, outcome)
}

// resolvePrice resolves the ledger-facing price before any balance check.
func (e *Engine) resolvePrice(ctx context.Context, req SpendRequest) (int64, *entity.Plan, error) {
	if planPriced[req.Product] {
		plan, err := e.plans.GetActiveByCode(ctx, req.Product, req.PlanCode)
		if err != nil {
			return 0, nil, err
		}
		return plan.PriceKobo, plan, nil
	}

	priceKobo, err := entity.ParseAmountToKobo(req.Amount)
	if err != nil {
		return 0, nil, err
	}
	if priceKobo == 0 {
		return 0, nil, fmt.Errorf("%w: amount must be greater than zero", errs.ErrInvalidAmount)
	}
	return priceKobo, nil, nil
}

// applyOutcome maps the synchronous provider outcome onto the transaction's
// state machine.
func (e *Engine) applyOutcome(ctx context.Context, txn *entity.Transaction, outcome gateway.Outcome) (*SpendResult, error) {
	now := e.timeProvider.Now()

	switch outcome.Kind {
	case gateway.Accepted:
		won, err := e.transactions.Finalize(ctx, txn.Reference, persistence.Finalization{
			Status:        entity.StatusSuccess,
			ProviderRef:   outcome.ProviderRef,
			APIAmountKobo: outcome.BilledAmountKobo,
			APIResponse:   outcome.Raw,
			ProcessedAt:   now,
		})
		if err != nil {
			return nil, err
		}
		if !won {
			// A webhook beat us to it. The terminal state stands; report it.
			e.logger.Warn("Direct response lost finalization race", map[string]any{
				"reference": txn.Reference,
			})
		}
		if outcome.BilledAmountKobo != nil && *outcome.BilledAmountKobo != txn.AmountKobo {
			// Audit only: the charged amount never moves retroactively.
			e.logger.Warn("Provider billed a different amount", map[string]any{
				"reference":       txn.Reference,
				"amount_kobo":     txn.AmountKobo,
				"api_amount_kobo": *outcome.BilledAmountKobo,
			})
		}
		return &SpendResult{
			Reference: txn.Reference,
			Status:    entity.StatusSuccess,
			Balance:   entity.KoboToString(txn.BalanceAfter),
			Message:   "transaction successful",
		}, nil

	case gateway.Rejected:
		won, err := e.ledger.RefundAndFinalize(ctx, txn.Reference, txn.AmountKobo, persistence.Finalization{
			Status:       entity.StatusFailed,
			ProviderRef:  outcome.ProviderRef,
			APIResponse:  outcome.Raw,
			ErrorMessage: outcome.Reason,
			ProcessedAt:  now,
		})
		if err != nil {
			return nil, err
		}
		if won {
			e.logger.Info("Provisional debit compensated", map[string]any{
				"reference":   txn.Reference,
				"amount_kobo": txn.AmountKobo,
				"reason":      outcome.Reason,
			})
		}
		result := &SpendResult{
			Reference: txn.Reference,
			Status:    entity.StatusFailed,
			Balance:   entity.KoboToString(txn.BalanceBefore),
			Message:   outcome.Reason,
		}
		return result, errs.NewProviderError(txn.Reference, outcome.ProviderRef, string(txn.Type), outcome.Reason, errs.ErrProviderRejected)

	case gateway.Pending, gateway.GatewayError:
		// Outcome unknown or explicitly deferred: the debit stands and the
		// webhook/verify path owns reconciliation. Never an optimistic refund.
		if uerr := e.transactions.AttachProviderInfo(ctx, txn.Reference, outcome.ProviderRef, outcome.Raw); uerr != nil {
			e.logger.Error("Failed to record provider reference on pending transaction", map[string]any{
				"reference": txn.Reference,
				"error":     uerr.Error(),
			})
		}
		if outcome.Kind == gateway.GatewayError {
			e.logger.Warn("Gateway error, transaction left pending", map[string]any{
				"reference": txn.Reference,
				"reason":    outcome.Reason,
			})
		}
		return &SpendResult{
			Reference: txn.Reference,
			Status:    entity.StatusPending,
			Balance:   entity.KoboToString(txn.BalanceAfter),
			Message:   "transaction initiated",
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown outcome kind %q", errs.ErrInternalServer, outcome.Kind)
	}
}

// replay reports the recorded state of an already-seen reference.
func (e *Engine) replay(txn *entity.Transaction) *SpendResult {
	result := &SpendResult{
		Reference:   txn.Reference,
		Status:      txn.Status,
		AlreadySeen: true,
	}
	switch txn.Status {
	case entity.StatusSuccess:
		result.Balance = entity.KoboToString(txn.BalanceAfter)
		result.Message = "transaction successful"
	case entity.StatusFailed:
		result.Balance = entity.KoboToString(txn.BalanceBefore)
		result.Message = txn.ErrorMessage
	default:
		result.Balance = entity.KoboToString(txn.BalanceAfter)
		result.Message = "transaction initiated"
	}
	return result
}

// NewReference generates a system reference for transactions whose caller did
// not supply one.
func NewReference() string {
	return "VTU-" + strings.ToUpper(uuid.NewString()[:18])
}
