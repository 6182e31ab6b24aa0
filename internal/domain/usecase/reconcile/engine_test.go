package reconcile

import (
	"context"
	"testing"
	"time"

	errs "github.com/damilare-oj/vtu-processor/internal/domain/apperror"
	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
	portgateway "github.com/damilare-oj/vtu-processor/internal/domain/port/gateway"
	"github.com/damilare-oj/vtu-processor/internal/domain/port/persistence"
	mcore "github.com/damilare-oj/vtu-processor/mocks/port/core"
	mgateway "github.com/damilare-oj/vtu-processor/mocks/port/gateway"
	mpers "github.com/damilare-oj/vtu-processor/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type engineFixture struct {
	ledger       *mpers.MockLedgerRepository
	transactions *mpers.MockTransactionRepository
	plans        *mpers.MockPlanRepository
	provider     *mgateway.MockProviderGateway
	timeProvider *mcore.MockTimeProvider
	engine       *Engine
}

func newEngineFixture(now time.Time) *engineFixture {
	f := &engineFixture{
		ledger:       new(mpers.MockLedgerRepository),
		transactions: new(mpers.MockTransactionRepository),
		plans:        new(mpers.MockPlanRepository),
		provider:     new(mgateway.MockProviderGateway),
		timeProvider: new(mcore.MockTimeProvider),
	}
	f.timeProvider.On("Now").Return(now)
	f.engine = NewEngine(f.ledger, f.transactions, f.plans, f.provider, f.timeProvider, mcore.NewRelaxedLogger())
	return f
}

// expectDebit stubs SpendAndRecord to fill the balance snapshots the way the
// store does, debiting from the given starting balance.
func (f *engineFixture) expectDebit(startBalanceKobo int64) {
	f.ledger.On("SpendAndRecord", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
		Run(func(args mock.Arguments) {
			txn := args.Get(1).(*entity.Transaction)
			txn.ID = 1
			txn.BalanceBefore = startBalanceKobo
			txn.BalanceAfter = startBalanceKobo - txn.AmountKobo
		}).Return(nil)
}

func TestSpendAcceptedOutcome(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f := newEngineFixture(now)

	f.expectDebit(100000)
	f.provider.On("PurchaseAirtime", mock.Anything, mock.AnythingOfType("gateway.PurchaseRequest")).
		Return(portgateway.Outcome{Kind: portgateway.Accepted, ProviderRef: "EA-1", Raw: `{"success":"true"}`})
	f.transactions.On("Finalize", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(fin persistence.Finalization) bool {
		return fin.Status == entity.StatusSuccess && fin.ProviderRef == "EA-1"
	})).Return(true, nil)

	result, err := f.engine.Spend(context.Background(), 42, SpendRequest{
		Product:   entity.TypeAirtime,
		Recipient: "08030000000",
		Network:   "mtn",
		Amount:    "500.00",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.StatusSuccess, result.Status)
	assert.Equal(t, "500.00", entity.KoboToString(100000-50000))
	assert.Equal(t, "500.00", result.Balance)
	assert.False(t, result.AlreadySeen)

	// The debit stands: no compensation for a successful purchase.
	f.ledger.AssertNotCalled(t, "RefundAndFinalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.transactions.AssertExpectations(t)
}

func TestSpendRejectedOutcomeRefunds(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f := newEngineFixture(now)

	f.expectDebit(100000)
	f.provider.On("PurchaseAirtime", mock.Anything, mock.Anything).
		Return(portgateway.Outcome{Kind: portgateway.Rejected, Reason: "INVALID_MOBILENUMBER"})
	f.ledger.On("RefundAndFinalize", mock.Anything, mock.AnythingOfType("string"), int64(50000), mock.MatchedBy(func(fin persistence.Finalization) bool {
		return fin.Status == entity.StatusFailed && fin.ErrorMessage == "INVALID_MOBILENUMBER"
	})).Return(true, nil)

	result, err := f.engine.Spend(context.Background(), 42, SpendRequest{
		Product:   entity.TypeAirtime,
		Recipient: "0000",
		Network:   "mtn",
		Amount:    "500.00",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrProviderRejected)
	require.NotNil(t, result)
	assert.Equal(t, entity.StatusFailed, result.Status)
	// Conservation: the reported balance is back at the pre-debit level.
	assert.Equal(t, "1000.00", result.Balance)

	f.ledger.AssertExpectations(t)
}

func TestSpendGatewayErrorLeavesPending(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f := newEngineFixture(now)

	f.expectDebit(100000)
	f.provider.On("PurchaseAirtime", mock.Anything, mock.Anything).
		Return(portgateway.Outcome{Kind: portgateway.GatewayError, Reason: "context deadline exceeded"})
	f.transactions.On("AttachProviderInfo", mock.Anything, mock.AnythingOfType("string"), "", "").Return(nil)

	result, err := f.engine.Spend(context.Background(), 42, SpendRequest{
		Product:   entity.TypeAirtime,
		Recipient: "08030000000",
		Network:   "mtn",
		Amount:    "500.00",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, result.Status)
	assert.Equal(t, "500.00", result.Balance)

	// An unknown outcome never triggers an optimistic refund.
	f.ledger.AssertNotCalled(t, "RefundAndFinalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.transactions.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything)
}

func TestSpendAsyncPendingOutcome(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f := newEngineFixture(now)

	f.expectDebit(100000)
	f.provider.On("PurchaseCable", mock.Anything, mock.Anything).
		Return(portgateway.Outcome{Kind: portgateway.Pending, ProviderRef: "EA-7", Raw: `{"order_status":"ORDER_RECEIVED"}`})
	f.transactions.On("AttachProviderInfo", mock.Anything, mock.AnythingOfType("string"), "EA-7", `{"order_status":"ORDER_RECEIVED"}`).Return(nil)
	f.plans.On("GetActiveByCode", mock.Anything, entity.TypeCableTV, "dstv-compact").
		Return(&entity.Plan{Code: "dstv-compact", Product: entity.TypeCableTV, Name: "DStv Compact", PriceKobo: 1900000, Active: true}, nil)

	result, err := f.engine.Spend(context.Background(), 42, SpendRequest{
		Product:   entity.TypeCableTV,
		Recipient: "1234567890",
		Network:   "dstv",
		PlanCode:  "dstv-compact",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, result.Status)
	f.plans.AssertExpectations(t)
	f.transactions.AssertExpectations(t)
}

func TestSpendPlanPriceOverridesAmount(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f := newEngineFixture(now)

	f.plans.On("GetActiveByCode", mock.Anything, entity.TypeData, "mtn-1gb").
		Return(&entity.Plan{Code: "mtn-1gb", Product: entity.TypeData, PriceKobo: 30000, Active: true}, nil)

	var debited int64
	f.ledger.On("SpendAndRecord", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
		Run(func(args mock.Arguments) {
			txn := args.Get(1).(*entity.Transaction)
			debited = txn.AmountKobo
			txn.BalanceBefore = 50000
			txn.BalanceAfter = 50000 - txn.AmountKobo
		}).Return(nil)
	f.provider.On("PurchaseData", mock.Anything, mock.Anything).
		Return(portgateway.Outcome{Kind: portgateway.Accepted, ProviderRef: "NB-1"})
	f.transactions.On("Finalize", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

	// The caller-supplied amount must not influence a plan-priced product.
	_, err := f.engine.Spend(context.Background(), 42, SpendRequest{
		Product:   entity.TypeData,
		Recipient: "08030000000",
		Network:   "mtn",
		PlanCode:  "mtn-1gb",
		Amount:    "1.00",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(30000), debited)
}

func TestSpendInsufficientFunds(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f := newEngineFixture(now)

	f.ledger.On("SpendAndRecord", mock.Anything, mock.Anything).
		Return(errs.NewInsufficientFundsError(42, 50000, 100))

	_, err := f.engine.Spend(context.Background(), 42, SpendRequest{
		Product:   entity.TypeAirtime,
		Recipient: "08030000000",
		Network:   "mtn",
		Amount:    "500.00",
	})

	require.Error(t, err)
	assert.True(t, errs.IsInsufficientFundsError(err))

	// The provider is never contacted when the balance check fails.
	f.provider.AssertNotCalled(t, "PurchaseAirtime", mock.Anything, mock.Anything)
}

func TestSpendReplaysSeenReference(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f := newEngineFixture(now)

	processed := now.Add(-time.Hour)
	f.transactions.On("GetByReference", mock.Anything, "VTU-SEEN").Return(&entity.Transaction{
		Reference:     "VTU-SEEN",
		UserID:        42,
		Type:          entity.TypeAirtime,
		Status:        entity.StatusSuccess,
		AmountKobo:    50000,
		BalanceBefore: 100000,
		BalanceAfter:  50000,
		ProcessedAt:   &processed,
	}, nil)

	result, err := f.engine.Spend(context.Background(), 42, SpendRequest{
		Product:   entity.TypeAirtime,
		Recipient: "08030000000",
		Network:   "mtn",
		Amount:    "500.00",
		Reference: "VTU-SEEN",
	})

	require.NoError(t, err)
	assert.True(t, result.AlreadySeen)
	assert.Equal(t, entity.StatusSuccess, result.Status)
	assert.Equal(t, "500.00", result.Balance)

	// No second debit, no second provider call.
	f.ledger.AssertNotCalled(t, "SpendAndRecord", mock.Anything, mock.Anything)
	f.provider.AssertNotCalled(t, "PurchaseAirtime", mock.Anything, mock.Anything)
}

func TestSpendRejectsForeignReference(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f := newEngineFixture(now)

	f.transactions.On("GetByReference", mock.Anything, "VTU-OTHER").Return(&entity.Transaction{
		Reference:     "VTU-OTHER",
		UserID:        42,
		Type:          entity.TypeAirtime,
		Status:        entity.StatusSuccess,
		AmountKobo:    50000,
		BalanceBefore: 100000,
		BalanceAfter:  50000,
	}, nil)

	// User 7 presents user 42's reference: a conflict, never a replay of the
	// owner's status or balance snapshots.
	result, err := f.engine.Spend(context.Background(), 7, SpendRequest{
		Product:   entity.TypeAirtime,
		Recipient: "08030000000",
		Network:   "mtn",
		Amount:    "500.00",
		Reference: "VTU-OTHER",
	})

	assert.ErrorIs(t, err, errs.ErrDuplicateReference)
	assert.Nil(t, result)
	f.ledger.AssertNotCalled(t, "SpendAndRecord", mock.Anything, mock.Anything)
	f.provider.AssertNotCalled(t, "PurchaseAirtime", mock.Anything, mock.Anything)
}

func TestSpendValidation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f := newEngineFixture(now)

	testCases := []struct {
		name      string
		userID    uint64
		req       SpendRequest
		errorType error
	}{
		{"Unsupported product", 42, SpendRequest{Product: entity.TransactionType("lottery"), Recipient: "x"}, errs.ErrValidation},
		{"Zero user id", 0, SpendRequest{Product: entity.TypeAirtime, Recipient: "x"}, errs.ErrInvalidUserID},
		{"Missing recipient", 42, SpendRequest{Product: entity.TypeAirtime}, errs.ErrValidation},
		{"Zero amount", 42, SpendRequest{Product: entity.TypeAirtime, Recipient: "x", Amount: "0"}, errs.ErrInvalidAmount},
		{"Malformed amount", 42, SpendRequest{Product: entity.TypeAirtime, Recipient: "x", Amount: "abc"}, errs.ErrInvalidAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.engine.Spend(context.Background(), tc.userID, tc.req)
			assert.ErrorIs(t, err, tc.errorType)
		})
	}
}

func TestNewReferenceFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := NewReference()
		assert.True(t, len(ref) > 4)
		assert.Equal(t, "VTU-", ref[:4])
		assert.False(t, seen[ref], "references must not repeat")
		seen[ref] = true
	}
}
