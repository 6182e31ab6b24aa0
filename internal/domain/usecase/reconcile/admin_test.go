package reconcile

import (
	"context"
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

type adminFixture struct {
	ledger       *mpers.MockLedgerRepository
	transactions *mpers.MockTransactionRepository
	finalizer    *AdminFinalizer
}

func newAdminFixture(now time.Time) *adminFixture {
	f := &adminFixture{
		ledger:       new(mpers.MockLedgerRepository),
		transactions: new(mpers.MockTransactionRepository),
	}
	tp := new(mcore.MockTimeProvider)
	tp.On("Now").Return(now)
	f.finalizer = NewAdminFinalizer(f.ledger, f.transactions, tp, mcore.NewRelaxedLogger())
	return f
}

func TestPatchStatusRejectsNonTerminalTarget(t *testing.T) {
	f := newAdminFixture(time.Now())

	err := f.finalizer.PatchStatus(context.Background(), "VTU-A1", entity.StatusPending, "")
	assert.ErrorIs(t, err, errs.ErrValidation)
	f.transactions.AssertNotCalled(t, "GetByReference", mock.Anything, mock.Anything)
}

func TestPatchStatusAlreadyTerminal(t *testing.T) {
	f := newAdminFixture(time.Now())

	txn := pendingTxn("VTU-A2", entity.TypeAirtime, 50000)
	txn.Status = entity.StatusFailed
	f.transactions.On("GetByReference", mock.Anything, "VTU-A2").Return(txn, nil)

	err := f.finalizer.PatchStatus(context.Background(), "VTU-A2", entity.StatusSuccess, "")
	assert.ErrorIs(t, err, errs.ErrTerminalTransaction)
}

func TestPatchStatusLedgerEffects(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		txnType    entity.TransactionType
		target     entity.TransactionStatus
		setupMocks func(f *adminFixture)
	}{
		{
			name:    "Fund to success credits",
			txnType: entity.TypeFund,
			target:  entity.StatusSuccess,
			setupMocks: func(f *adminFixture) {
				f.ledger.On("CreditAndFinalize", mock.Anything, "VTU-A3", int64(50000), mock.Anything).Return(true, nil)
			},
		},
		{
			name:    "Withdraw to success applies deferred debit",
			txnType: entity.TypeWithdraw,
			target:  entity.StatusSuccess,
			setupMocks: func(f *adminFixture) {
				f.ledger.On("DebitAndFinalize", mock.Anything, "VTU-A3", int64(50000), mock.Anything).Return(true, nil)
			},
		},
		{
			name:    "Spend to failed compensates",
			txnType: entity.TypeAirtime,
			target:  entity.StatusFailed,
			setupMocks: func(f *adminFixture) {
				f.ledger.On("RefundAndFinalize", mock.Anything, "VTU-A3", int64(50000), mock.MatchedBy(func(fin persistence.Finalization) bool {
					return fin.Status == entity.StatusFailed && fin.ErrorMessage == "manual review"
				})).Return(true, nil)
			},
		},
		{
			name:    "Spend to success leaves the debit standing",
			txnType: entity.TypeAirtime,
			target:  entity.StatusSuccess,
			setupMocks: func(f *adminFixture) {
				f.transactions.On("Finalize", mock.Anything, "VTU-A3", mock.Anything).Return(true, nil)
			},
		},
		{
			name:    "Fund to failed moves no money",
			txnType: entity.TypeFund,
			target:  entity.StatusFailed,
			setupMocks: func(f *adminFixture) {
				f.transactions.On("Finalize", mock.Anything, "VTU-A3", mock.Anything).Return(true, nil)
			},
		},
		{
			name:    "Withdraw to failed moves no money",
			txnType: entity.TypeWithdraw,
			target:  entity.StatusFailed,
			setupMocks: func(f *adminFixture) {
				f.transactions.On("Finalize", mock.Anything, "VTU-A3", mock.Anything).Return(true, nil)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAdminFixture(now)
			f.transactions.On("GetByReference", mock.Anything, "VTU-A3").
				Return(pendingTxn("VTU-A3", tc.txnType, 50000), nil)
			tc.setupMocks(f)

			err := f.finalizer.PatchStatus(context.Background(), "VTU-A3", tc.target, "manual review")

			require.NoError(t, err)
			f.ledger.AssertExpectations(t)
			f.transactions.AssertExpectations(t)
		})
	}
}

func TestPatchStatusLostRace(t *testing.T) {
	f := newAdminFixture(time.Now())

	f.transactions.On("GetByReference", mock.Anything, "VTU-A4").
		Return(pendingTxn("VTU-A4", entity.TypeAirtime, 50000), nil)
	// A webhook finalized between the read and the patch.
	f.transactions.On("Finalize", mock.Anything, "VTU-A4", mock.Anything).Return(false, nil)

	err := f.finalizer.PatchStatus(context.Background(), "VTU-A4", entity.StatusSuccess, "")
	assert.ErrorIs(t, err, errs.ErrTerminalTransaction)
}
