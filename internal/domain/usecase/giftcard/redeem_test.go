package giftcard

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

func newRedeemer(t *testing.T, now time.Time) (*Redeemer, *mpers.MockGiftCardRepository, *mpers.MockLedgerRepository) {
	t.Helper()
	cards := new(mpers.MockGiftCardRepository)
	ledger := new(mpers.MockLedgerRepository)
	tp := new(mcore.MockTimeProvider)
	tp.On("Now").Return(now)
	return NewRedeemer(cards, ledger, tp, mcore.NewRelaxedLogger()), cards, ledger
}

func TestRedeem(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Happy path", func(t *testing.T) {
		redeemer, cards, ledger := newRedeemer(t, now)

		cards.On("GetByCode", mock.Anything, "GC-ABC123").Return(&entity.GiftCard{
			ID:         1,
			Code:       "GC-ABC123",
			AmountKobo: 100000,
			ExpiresAt:  now.Add(24 * time.Hour),
		}, nil)

		var credited *entity.Transaction
		cards.On("RedeemAndCredit", mock.Anything, "GC-ABC123", now, mock.AnythingOfType("*entity.Transaction")).
			Run(func(args mock.Arguments) { credited = args.Get(3).(*entity.Transaction) }).
			Return(nil)
		ledger.On("GetByID", mock.Anything, uint64(42)).
			Return(&entity.User{ID: 42, BalanceKobo: 150000}, nil)

		result, err := redeemer.Redeem(context.Background(), 42, " GC-ABC123 ")

		require.NoError(t, err)
		assert.Equal(t, "1000.00", result.Amount)
		assert.Equal(t, "1500.00", result.Balance)
		require.NotNil(t, credited)
		assert.Equal(t, entity.TypeGiftCard, credited.Type)
		assert.Equal(t, int64(100000), credited.AmountKobo)
	})

	t.Run("Already redeemed", func(t *testing.T) {
		redeemer, cards, _ := newRedeemer(t, now)

		cards.On("GetByCode", mock.Anything, "GC-USED").Return(&entity.GiftCard{
			Code:       "GC-USED",
			AmountKobo: 100000,
			ExpiresAt:  now.Add(24 * time.Hour),
			IsRedeemed: true,
		}, nil)

		_, err := redeemer.Redeem(context.Background(), 42, "GC-USED")

		assert.ErrorIs(t, err, errs.ErrGiftCardRedeemed)
		cards.AssertNotCalled(t, "RedeemAndCredit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Expired", func(t *testing.T) {
		redeemer, cards, _ := newRedeemer(t, now)

		cards.On("GetByCode", mock.Anything, "GC-OLD").Return(&entity.GiftCard{
			Code:       "GC-OLD",
			AmountKobo: 100000,
			ExpiresAt:  now.Add(-time.Minute),
		}, nil)

		_, err := redeemer.Redeem(context.Background(), 42, "GC-OLD")
		assert.ErrorIs(t, err, errs.ErrGiftCardExpired)
	})

	t.Run("Expires exactly now", func(t *testing.T) {
		redeemer, cards, _ := newRedeemer(t, now)

		cards.On("GetByCode", mock.Anything, "GC-EDGE").Return(&entity.GiftCard{
			Code:       "GC-EDGE",
			AmountKobo: 100000,
			ExpiresAt:  now,
		}, nil)

		_, err := redeemer.Redeem(context.Background(), 42, "GC-EDGE")
		assert.ErrorIs(t, err, errs.ErrGiftCardExpired)
	})

	t.Run("Lost redemption race", func(t *testing.T) {
		redeemer, cards, _ := newRedeemer(t, now)

		cards.On("GetByCode", mock.Anything, "GC-RACE").Return(&entity.GiftCard{
			Code:       "GC-RACE",
			AmountKobo: 100000,
			ExpiresAt:  now.Add(24 * time.Hour),
		}, nil)
		// Another request flipped the code between the read and the redeem.
		cards.On("RedeemAndCredit", mock.Anything, "GC-RACE", now, mock.Anything).
			Return(errs.ErrGiftCardRedeemed)

		_, err := redeemer.Redeem(context.Background(), 42, "GC-RACE")
		assert.ErrorIs(t, err, errs.ErrGiftCardRedeemed)
	})

	t.Run("Unknown code", func(t *testing.T) {
		redeemer, cards, _ := newRedeemer(t, now)
		cards.On("GetByCode", mock.Anything, "GC-NOPE").Return(nil, errs.ErrGiftCardNotFound)

		_, err := redeemer.Redeem(context.Background(), 42, "GC-NOPE")
		assert.ErrorIs(t, err, errs.ErrGiftCardNotFound)
	})

	t.Run("Blank code", func(t *testing.T) {
		redeemer, cards, _ := newRedeemer(t, now)

		_, err := redeemer.Redeem(context.Background(), 42, "   ")

		assert.ErrorIs(t, err, errs.ErrValidation)
		cards.AssertNotCalled(t, "GetByCode", mock.Anything, mock.Anything)
	})
}
