package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	errs "github.com/damilare-oj/vtu-processor/internal/domain/apperror"
	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
	"github.com/damilare-oj/vtu-processor/internal/domain/port/persistence"
	mcore "github.com/damilare-oj/vtu-processor/mocks/port/core"
	mpers "github.com/damilare-oj/vtu-processor/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type webhookFixture struct {
	ledger       *mpers.MockLedgerRepository
	transactions *mpers.MockTransactionRepository
	callbacks    *mpers.MockCallbackEventRepository
	finalizer    *WebhookFinalizer
}

func newWebhookFixture(now time.Time) *webhookFixture {
	f := &webhookFixture{
		ledger:       new(mpers.MockLedgerRepository),
		transactions: new(mpers.MockTransactionRepository),
		callbacks:    new(mpers.MockCallbackEventRepository),
	}
	tp := new(mcore.MockTimeProvider)
	tp.On("Now").Return(now)
	f.finalizer = NewWebhookFinalizer(f.ledger, f.transactions, f.callbacks, tp, mcore.NewRelaxedLogger())
	return f
}

func pendingTxn(reference string, txnType entity.TransactionType, amountKobo int64) *entity.Transaction {
	return &entity.Transaction{
		ID:         7,
		UserID:     42,
		Reference:  reference,
		Type:       txnType,
		Status:     entity.StatusPending,
		AmountKobo: amountKobo,
	}
}

func TestHandleCallbackUnparseablePayload(t *testing.T) {
	f := newWebhookFixture(time.Now())

	payload := []byte("not json at all")
	f.callbacks.On("Append", mock.Anything, "easyaccess", "", payload).Return(nil)

	disposition, err := f.finalizer.HandleCallback(context.Background(), "easyaccess", payload)

	require.NoError(t, err)
	assert.Equal(t, CallbackUnknownRef, disposition)
	// The raw payload is persisted even when nothing can be parsed out of it.
	f.callbacks.AssertExpectations(t)
	f.transactions.AssertNotCalled(t, "GetByReference", mock.Anything, mock.Anything)
}

func TestHandleCallbackUnknownReference(t *testing.T) {
	f := newWebhookFixture(time.Now())

	payload := []byte(`{"client_reference":"VTU-GHOST","status":"ORDER_COMPLETED"}`)
	f.callbacks.On("Append", mock.Anything, "easyaccess", "VTU-GHOST", payload).Return(nil)
	f.transactions.On("GetByReference", mock.Anything, "VTU-GHOST").Return(nil, errs.ErrTransactionNotFound)

	disposition, err := f.finalizer.HandleCallback(context.Background(), "easyaccess", payload)

	require.NoError(t, err)
	assert.Equal(t, CallbackUnknownRef, disposition)
}

func TestHandleCallbackDuplicateForTerminalTransaction(t *testing.T) {
	f := newWebhookFixture(time.Now())

	payload := []byte(`{"client_reference":"VTU-DONE","status":"ORDER_COMPLETED"}`)
	txn := pendingTxn("VTU-DONE", entity.TypeAirtime, 50000)
	txn.Status = entity.StatusSuccess

	f.callbacks.On("Append", mock.Anything, "easyaccess", "VTU-DONE", payload).Return(nil)
	f.transactions.On("GetByReference", mock.Anything, "VTU-DONE").Return(txn, nil)

	disposition, err := f.finalizer.HandleCallback(context.Background(), "easyaccess", payload)

	require.NoError(t, err)
	assert.Equal(t, CallbackDuplicate, disposition)
	// A retried callback must never touch the ledger again.
	f.ledger.AssertNotCalled(t, "RefundAndFinalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.ledger.AssertNotCalled(t, "CreditAndFinalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCallbackUnrecognizedStatusLeavesPending(t *testing.T) {
	f := newWebhookFixture(time.Now())

	payload := []byte(`{"client_reference":"VTU-1","status":"ORDER_RECEIVED"}`)
	f.callbacks.On("Append", mock.Anything, "nellobytes", "VTU-1", payload).Return(nil)
	f.transactions.On("GetByReference", mock.Anything, "VTU-1").
		Return(pendingTxn("VTU-1", entity.TypeData, 30000), nil)

	disposition, err := f.finalizer.HandleCallback(context.Background(), "nellobytes", payload)

	require.NoError(t, err)
	assert.Equal(t, CallbackUnrecognized, disposition)
	f.transactions.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything)
	f.ledger.AssertNotCalled(t, "RefundAndFinalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCallbackSpendSuccess(t *testing.T) {
	f := newWebhookFixture(time.Now())

	payload := []byte(`{"OrderID":"VTU-2","order_status":"ORDER_COMPLETED"}`)
	f.callbacks.On("Append", mock.Anything, "easyaccess", "VTU-2", payload).Return(nil)
	f.transactions.On("GetByReference", mock.Anything, "VTU-2").
		Return(pendingTxn("VTU-2", entity.TypeCableTV, 1900000), nil)
	f.transactions.On("Finalize", mock.Anything, "VTU-2", mock.MatchedBy(func(fin persistence.Finalization) bool {
		return fin.Status == entity.StatusSuccess
	})).Return(true, nil)

	disposition, err := f.finalizer.HandleCallback(context.Background(), "easyaccess", payload)

	require.NoError(t, err)
	assert.Equal(t, CallbackFinalized, disposition)
	// Success confirms the debit; no ledger movement.
	f.ledger.AssertNotCalled(t, "CreditAndFinalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCallbackSpendFailureRefunds(t *testing.T) {
	f := newWebhookFixture(time.Now())

	payload := []byte(`{"client_reference":"VTU-3","status":"ORDER_CANCELLED"}`)
	f.callbacks.On("Append", mock.Anything, "easyaccess", "VTU-3", payload).Return(nil)
	f.transactions.On("GetByReference", mock.Anything, "VTU-3").
		Return(pendingTxn("VTU-3", entity.TypeElectricity, 500000), nil)
	f.ledger.On("RefundAndFinalize", mock.Anything, "VTU-3", int64(500000), mock.MatchedBy(func(fin persistence.Finalization) bool {
		return fin.Status == entity.StatusFailed && fin.ErrorMessage == "cancelled by provider"
	})).Return(true, nil)

	disposition, err := f.finalizer.HandleCallback(context.Background(), "easyaccess", payload)

	require.NoError(t, err)
	assert.Equal(t, CallbackFinalized, disposition)
	f.ledger.AssertExpectations(t)
}

func TestHandleCallbackFundSuccessCredits(t *testing.T) {
	f := newWebhookFixture(time.Now())

	payload := []byte(`{"reference":"VTU-4","status":"charge.success"}`)
	f.callbacks.On("Append", mock.Anything, "paystack", "VTU-4", payload).Return(nil)
	f.transactions.On("GetByReference", mock.Anything, "VTU-4").
		Return(pendingTxn("VTU-4", entity.TypeFund, 200000), nil)
	f.ledger.On("CreditAndFinalize", mock.Anything, "VTU-4", int64(200000), mock.MatchedBy(func(fin persistence.Finalization) bool {
		return fin.Status == entity.StatusSuccess
	})).Return(true, nil)

	disposition, err := f.finalizer.HandleCallback(context.Background(), "paystack", payload)

	require.NoError(t, err)
	assert.Equal(t, CallbackFinalized, disposition)
	f.ledger.AssertExpectations(t)
}

func TestHandleCallbackFundSuccessCreditsConfirmedAmount(t *testing.T) {
	// The provider collected less than was requested; the credit must follow
	// the confirmed amount, whether it arrives quoted or bare.
	testCases := []struct {
		name    string
		payload string
	}{
		{"Quoted amount", `{"reference":"VTU-4A","status":"charge.success","amount":"150000"}`},
		{"Bare amount", `{"reference":"VTU-4A","status":"charge.success","amount":150000}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newWebhookFixture(time.Now())

			payload := []byte(tc.payload)
			f.callbacks.On("Append", mock.Anything, "paystack", "VTU-4A", payload).Return(nil)
			f.transactions.On("GetByReference", mock.Anything, "VTU-4A").
				Return(pendingTxn("VTU-4A", entity.TypeFund, 200000), nil)
			f.ledger.On("CreditAndFinalize", mock.Anything, "VTU-4A", int64(150000), mock.Anything).
				Return(true, nil)

			disposition, err := f.finalizer.HandleCallback(context.Background(), "paystack", payload)

			require.NoError(t, err)
			assert.Equal(t, CallbackFinalized, disposition)
			f.ledger.AssertExpectations(t)
		})
	}
}

func TestCallbackAmountParsing(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want int64
		ok   bool
	}{
		{"Quoted kobo", `"150000"`, 150000, true},
		{"Bare kobo", `150000`, 150000, true},
		{"Absent", ``, 0, false},
		{"Zero", `0`, 0, false},
		{"Negative", `-100`, 0, false},
		{"Not a number", `"1,500.00"`, 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := callbackPayload{Amount: []byte(tc.raw)}
			got, ok := p.amountKobo()
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHandleCallbackFundFailureNoCompensation(t *testing.T) {
	f := newWebhookFixture(time.Now())

	payload := []byte(`{"reference":"VTU-5","status":"failed"}`)
	f.callbacks.On("Append", mock.Anything, "paystack", "VTU-5", payload).Return(nil)
	f.transactions.On("GetByReference", mock.Anything, "VTU-5").
		Return(pendingTxn("VTU-5", entity.TypeFund, 200000), nil)
	f.transactions.On("Finalize", mock.Anything, "VTU-5", mock.MatchedBy(func(fin persistence.Finalization) bool {
		return fin.Status == entity.StatusFailed
	})).Return(true, nil)

	disposition, err := f.finalizer.HandleCallback(context.Background(), "paystack", payload)

	require.NoError(t, err)
	assert.Equal(t, CallbackFinalized, disposition)
	// No money had moved for a pending fund, so nothing to refund.
	f.ledger.AssertNotCalled(t, "RefundAndFinalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleCallbackLostRace(t *testing.T) {
	f := newWebhookFixture(time.Now())

	payload := []byte(`{"client_reference":"VTU-6","status":"ORDER_COMPLETED"}`)
	f.callbacks.On("Append", mock.Anything, "easyaccess", "VTU-6", payload).Return(nil)
	f.transactions.On("GetByReference", mock.Anything, "VTU-6").
		Return(pendingTxn("VTU-6", entity.TypeAirtime, 50000), nil)
	f.transactions.On("Finalize", mock.Anything, "VTU-6", mock.Anything).Return(false, nil)

	disposition, err := f.finalizer.HandleCallback(context.Background(), "easyaccess", payload)

	require.NoError(t, err)
	assert.Equal(t, CallbackLostRace, disposition)
}

func TestHandleCallbackStoreFailurePropagates(t *testing.T) {
	f := newWebhookFixture(time.Now())

	payload := []byte(`{"client_reference":"VTU-7","status":"ORDER_COMPLETED"}`)
	f.callbacks.On("Append", mock.Anything, "easyaccess", "VTU-7", payload).Return(nil)
	f.transactions.On("GetByReference", mock.Anything, "VTU-7").
		Return(pendingTxn("VTU-7", entity.TypeAirtime, 50000), nil)
	f.transactions.On("Finalize", mock.Anything, "VTU-7", mock.Anything).
		Return(false, errors.New("connection reset"))

	// A store failure surfaces so the handler can ask the provider to retry.
	_, err := f.finalizer.HandleCallback(context.Background(), "easyaccess", payload)
	require.Error(t, err)
}

func TestMapProviderStatus(t *testing.T) {
	testCases := []struct {
		provider string
		status   string
		want     entity.TransactionStatus
		ok       bool
	}{
		{"easyaccess", "ORDER_COMPLETED", entity.StatusSuccess, true},
		{"EasyAccess", "order_cancelled", entity.StatusFailed, true},
		{"nellobytes", "ORDER_RECEIVED", "", false},
		{"smsclone", "delivered", entity.StatusSuccess, true},
		{"paystack", "charge.success", entity.StatusSuccess, true},
		{"unknownprovider", "success", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.provider+"/"+tc.status, func(t *testing.T) {
			got, ok := mapProviderStatus(tc.provider, tc.status)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
