package bid_test

import (
	"testing"
	"time"

	"loadboard/internal/core/domain/model/bid"
	"loadboard/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBid(t *testing.T) *bid.Bid {
	t.Helper()

	price, err := kernel.NewPrice(1500)
	require.NoError(t, err)

	b, err := bid.NewBid(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), price, time.Now().UTC())
	require.NoError(t, err)
	return b
}

func TestNewBid(t *testing.T) {
	bidID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	price, _ := kernel.NewPrice(1500)
	createdAt := time.Now().UTC()

	t.Run("should create pending bid with all valid parameters", func(t *testing.T) {
		b, err := bid.NewBid(bidID, orderID, driverID, price, createdAt)

		require.NoError(t, err)
		assert.NotNil(t, b)
		require.NoError(t, b.Validate())
		assert.True(t, b.ID().IsEqual(bidID))
		assert.True(t, b.Order().IsEqual(orderID))
		assert.True(t, b.Driver().IsEqual(driverID))
		assert.Equal(t, int64(1500), b.Price().Amount())
		assert.Equal(t, bid.Pending, b.Status())
		assert.True(t, b.IsPending())
		assert.Equal(t, createdAt, b.CreatedAt())
	})

	t.Run("should fail with invalid bid id", func(t *testing.T) {
		var invalidID kernel.UUID

		b, err := bid.NewBid(invalidID, orderID, driverID, price, createdAt)

		require.Error(t, err)
		assert.Nil(t, b)
		assert.Contains(t, err.Error(), "bidId")
	})

	t.Run("should fail with unconstructed price", func(t *testing.T) {
		var invalidPrice kernel.Price

		b, err := bid.NewBid(bidID, orderID, driverID, invalidPrice, createdAt)

		require.Error(t, err)
		assert.Nil(t, b)
	})

	t.Run("should fail with zero createdAt", func(t *testing.T) {
		b, err := bid.NewBid(bidID, orderID, driverID, price, time.Time{})

		require.Error(t, err)
		assert.Nil(t, b)
		assert.Contains(t, err.Error(), "createdAt")
	})

	t.Run("should join multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		b, err := bid.NewBid(invalidID, invalidID, driverID, price, createdAt)

		require.Error(t, err)
		assert.Nil(t, b)
		assert.Contains(t, err.Error(), "bidId")
		assert.Contains(t, err.Error(), "orderId")
	})
}

func TestRestoreBid(t *testing.T) {
	price, _ := kernel.NewPrice(1500)

	t.Run("should restore bid in any valid status", func(t *testing.T) {
		for _, status := range []bid.Status{bid.Pending, bid.Accepted, bid.Rejected, bid.Withdrawn} {
			b, err := bid.RestoreBid(
				kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
				price, status, time.Now().UTC(),
			)

			require.NoError(t, err)
			assert.Equal(t, status, b.Status())
		}
	})

	t.Run("should reject invalid status value", func(t *testing.T) {
		b, err := bid.RestoreBid(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			price, bid.Unknown, time.Now().UTC(),
		)

		require.Error(t, err)
		assert.Nil(t, b)
		assert.Contains(t, err.Error(), "status is invalid")
	})
}

func TestBid_Validate(t *testing.T) {
	t.Run("should fail validation for nil bid", func(t *testing.T) {
		var b *bid.Bid

		err := b.Validate()

		require.Error(t, err)
		assert.Equal(t, bid.ErrBidIsNotConstructed, err)
	})

	t.Run("should fail validation for zero value bid", func(t *testing.T) {
		var b bid.Bid

		err := b.Validate()

		require.Error(t, err)
		assert.Equal(t, bid.ErrBidIsNotConstructed, err)
	})
}

func TestBid_Transitions(t *testing.T) {
	t.Run("should accept pending bid", func(t *testing.T) {
		b := newTestBid(t)

		require.NoError(t, b.Accept())
		assert.Equal(t, bid.Accepted, b.Status())
		assert.False(t, b.IsPending())
	})

	t.Run("should reject pending bid", func(t *testing.T) {
		b := newTestBid(t)

		require.NoError(t, b.Reject())
		assert.Equal(t, bid.Rejected, b.Status())
	})

	t.Run("should withdraw pending bid", func(t *testing.T) {
		b := newTestBid(t)

		require.NoError(t, b.Withdraw())
		assert.Equal(t, bid.Withdrawn, b.Status())
	})

	t.Run("terminal bid rejects every further transition", func(t *testing.T) {
		transitions := map[string]func(*bid.Bid) error{
			"accept":   (*bid.Bid).Accept,
			"reject":   (*bid.Bid).Reject,
			"withdraw": (*bid.Bid).Withdraw,
		}

		for name, first := range transitions {
			t.Run(name, func(t *testing.T) {
				b := newTestBid(t)
				require.NoError(t, first(b))
				status := b.Status()

				assert.Error(t, b.Accept())
				assert.Error(t, b.Reject())
				assert.Error(t, b.Withdraw())
				assert.Equal(t, status, b.Status())
			})
		}
	})
}

func TestBid_IsEqual(t *testing.T) {
	price, _ := kernel.NewPrice(1500)
	id := kernel.NewUUID()

	a, err := bid.NewBid(id, kernel.NewUUID(), kernel.NewUUID(), price, time.Now().UTC())
	require.NoError(t, err)
	b, err := bid.NewBid(id, kernel.NewUUID(), kernel.NewUUID(), price, time.Now().UTC())
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(newTestBid(t)))
	assert.False(t, a.IsEqual(nil))
}
