package transfer

import (
	"context"
	"testing"
	"time"

	errs "github.com/damilare-oj/vtu-processor/internal/domain/apperror"
	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
	mcore "github.com/damilare-oj/vtu-processor/mocks/port/core"
	mpers "github.com/damilare-oj/vtu-processor/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTransferEngine(t *testing.T, now time.Time) (*Engine, *mpers.MockLedgerRepository) {
	t.Helper()
	ledger := new(mpers.MockLedgerRepository)
	tp := new(mcore.MockTimeProvider)
	tp.On("Now").Return(now)
	return NewEngine(ledger, tp, mcore.NewRelaxedLogger()), ledger
}

func TestRewardToWallet(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	engine, ledger := newTransferEngine(t, now)

	var converted *entity.Transaction
	ledger.On("ConvertReward", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
		Run(func(args mock.Arguments) { converted = args.Get(1).(*entity.Transaction) }).
		Return(nil)
	ledger.On("GetByID", mock.Anything, uint64(42)).
		Return(&entity.User{ID: 42, BalanceKobo: 60000, RewardKobo: 0}, nil)

	result, err := engine.RewardToWallet(context.Background(), 42, "500.00")

	require.NoError(t, err)
	assert.Equal(t, "600.00", result.Balance)
	assert.Equal(t, "0.00", result.Reward)
	require.NotNil(t, converted)
	assert.Equal(t, entity.TypeRewardToWallet, converted.Type)
	assert.Equal(t, int64(50000), converted.AmountKobo)
	require.NotNil(t, converted.CounterpartyID)
	assert.Equal(t, uint64(42), *converted.CounterpartyID)
}

func TestRewardToWalletInsufficientReward(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	engine, ledger := newTransferEngine(t, now)

	ledger.On("ConvertReward", mock.Anything, mock.Anything).Return(errs.ErrInsufficientReward)

	_, err := engine.RewardToWallet(context.Background(), 42, "500.00")
	assert.ErrorIs(t, err, errs.ErrInsufficientReward)
}

func TestWalletToWallet(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	recipient := &entity.User{ID: 7, Email: "ada@example.com", Name: "Ada Obi", BalanceKobo: 10000}

	t.Run("Happy path", func(t *testing.T) {
		engine, ledger := newTransferEngine(t, now)
		ledger.On("GetByEmail", mock.Anything, "ada@example.com").Return(recipient, nil)

		var moved *entity.Transaction
		ledger.On("TransferWallet", mock.Anything, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) { moved = args.Get(1).(*entity.Transaction) }).
			Return(nil)
		ledger.On("GetByID", mock.Anything, uint64(42)).
			Return(&entity.User{ID: 42, BalanceKobo: 50000}, nil)

		// The lookup email is normalized before it reaches the store.
		result, err := engine.WalletToWallet(context.Background(), 42, "  Ada@Example.COM ", "ada obi", "100.00")

		require.NoError(t, err)
		assert.Equal(t, "500.00", result.Balance)
		require.NotNil(t, moved)
		assert.Equal(t, entity.TypeWalletTransfer, moved.Type)
		require.NotNil(t, moved.CounterpartyID)
		assert.Equal(t, uint64(7), *moved.CounterpartyID)
	})

	t.Run("Name mismatch blocks the transfer", func(t *testing.T) {
		engine, ledger := newTransferEngine(t, now)
		ledger.On("GetByEmail", mock.Anything, "ada@example.com").Return(recipient, nil)

		_, err := engine.WalletToWallet(context.Background(), 42, "ada@example.com", "Bola Obi", "100.00")

		assert.ErrorIs(t, err, errs.ErrRecipientMismatch)
		ledger.AssertNotCalled(t, "TransferWallet", mock.Anything, mock.Anything)
	})

	t.Run("Self transfer rejected", func(t *testing.T) {
		engine, ledger := newTransferEngine(t, now)
		ledger.On("GetByEmail", mock.Anything, "ada@example.com").Return(recipient, nil)

		_, err := engine.WalletToWallet(context.Background(), 7, "ada@example.com", "Ada Obi", "100.00")

		assert.ErrorIs(t, err, errs.ErrValidation)
		ledger.AssertNotCalled(t, "TransferWallet", mock.Anything, mock.Anything)
	})

	t.Run("Insufficient funds propagates", func(t *testing.T) {
		engine, ledger := newTransferEngine(t, now)
		ledger.On("GetByEmail", mock.Anything, "ada@example.com").Return(recipient, nil)
		ledger.On("TransferWallet", mock.Anything, mock.Anything).
			Return(errs.NewInsufficientFundsError(42, 10000, 100))

		_, err := engine.WalletToWallet(context.Background(), 42, "ada@example.com", "Ada Obi", "100.00")
		assert.True(t, errs.IsInsufficientFundsError(err))
	})

	t.Run("Unknown recipient", func(t *testing.T) {
		engine, ledger := newTransferEngine(t, now)
		ledger.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, errs.ErrUserNotFound)

		_, err := engine.WalletToWallet(context.Background(), 42, "ghost@example.com", "Ghost", "100.00")
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}
