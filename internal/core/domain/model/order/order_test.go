package order_test

import (
	"testing"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}

func mustPrice(t *testing.T, amount int64) kernel.Price {
	t.Helper()

	p, err := kernel.NewPrice(amount)
	require.NoError(t, err)
	return p
}

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	merchantID := kernel.NewUUID()
	commodityID := kernel.NewUUID()
	recipientID := kernel.NewUUID()
	addressID := kernel.NewUUID()
	createdAt := time.Now().UTC()

	t.Run("should create valid order with all valid parameters", func(t *testing.T) {
		o, err := order.NewOrder(validID, merchantID, commodityID, recipientID, addressID, createdAt)

		require.NoError(t, err)
		assert.NotNil(t, o)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.True(t, o.Merchant().IsEqual(merchantID))
		assert.True(t, o.Commodity().IsEqual(commodityID))
		assert.True(t, o.Recipient().IsEqual(recipientID))
		assert.True(t, o.Address().IsEqual(addressID))
		assert.Equal(t, order.PendingDispatch, o.Status())
		assert.Nil(t, o.Driver())
		assert.Zero(t, o.Price())
		assert.Nil(t, o.DispatchTime())
		assert.Nil(t, o.ArrivalTime())
	})

	t.Run("should fail with invalid order id", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, merchantID, commodityID, recipientID, addressID, createdAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "orderId")
	})

	t.Run("should fail with invalid merchant id", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(validID, invalidID, commodityID, recipientID, addressID, createdAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "merchantId")
	})

	t.Run("should fail with zero createdAt", func(t *testing.T) {
		o, err := order.NewOrder(validID, merchantID, commodityID, recipientID, addressID, time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "createdAt")
	})

	t.Run("should join multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID

		o, err := order.NewOrder(invalidID, invalidID, commodityID, recipientID, invalidID, createdAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "orderId")
		assert.Contains(t, err.Error(), "merchantId")
		assert.Contains(t, err.Error(), "addressId")
	})
}

func TestRestoreOrder(t *testing.T) {
	orderID := kernel.NewUUID()
	merchantID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	commodityID := kernel.NewUUID()
	recipientID := kernel.NewUUID()
	addressID := kernel.NewUUID()
	createdAt := time.Now().UTC()
	dispatchedAt := createdAt.Add(time.Hour)

	t.Run("should restore pending order without driver", func(t *testing.T) {
		o, err := order.RestoreOrder(
			orderID, merchantID, nil, commodityID, recipientID, addressID,
			0, order.PendingDispatch, createdAt, nil, nil,
		)

		require.NoError(t, err)
		assert.Equal(t, order.PendingDispatch, o.Status())
		assert.Nil(t, o.Driver())
	})

	t.Run("should restore on-transit order with driver and price", func(t *testing.T) {
		o, err := order.RestoreOrder(
			orderID, merchantID, &driverID, commodityID, recipientID, addressID,
			2500, order.OnTransit, createdAt, &dispatchedAt, nil,
		)

		require.NoError(t, err)
		assert.Equal(t, order.OnTransit, o.Status())
		require.NotNil(t, o.Driver())
		assert.True(t, o.Driver().IsEqual(driverID))
		assert.Equal(t, int64(2500), o.Price())
		assert.Equal(t, dispatchedAt, *o.DispatchTime())
	})

	t.Run("should reject invalid status value", func(t *testing.T) {
		o, err := order.RestoreOrder(
			orderID, merchantID, nil, commodityID, recipientID, addressID,
			0, order.Unknown, createdAt, nil, nil,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "status is invalid")
	})

	t.Run("should reject driver on pending order", func(t *testing.T) {
		o, err := order.RestoreOrder(
			orderID, merchantID, &driverID, commodityID, recipientID, addressID,
			0, order.PendingDispatch, createdAt, nil, nil,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "not a valid status to have a driver")
	})

	t.Run("should reject missing driver on on-transit order", func(t *testing.T) {
		o, err := order.RestoreOrder(
			orderID, merchantID, nil, commodityID, recipientID, addressID,
			2500, order.OnTransit, createdAt, &dispatchedAt, nil,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "not a valid status to have no driver")
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should pass validation for properly constructed order", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
	})

	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestOrder_Award(t *testing.T) {
	t.Run("should assign driver, price and dispatch time", func(t *testing.T) {
		o := newTestOrder(t)
		driverID := kernel.NewUUID()
		now := time.Now().UTC()

		err := o.Award(driverID, mustPrice(t, 1800), now)

		require.NoError(t, err)
		assert.Equal(t, order.OnTransit, o.Status())
		require.NotNil(t, o.Driver())
		assert.True(t, o.Driver().IsEqual(driverID))
		assert.Equal(t, int64(1800), o.Price())
		require.NotNil(t, o.DispatchTime())
		assert.Equal(t, now, *o.DispatchTime())
	})

	t.Run("should fail with invalid driver id", func(t *testing.T) {
		o := newTestOrder(t)
		var invalidID kernel.UUID

		err := o.Award(invalidID, mustPrice(t, 1800), time.Now().UTC())

		require.Error(t, err)
		assert.Equal(t, order.PendingDispatch, o.Status())
		assert.Nil(t, o.Driver())
	})

	t.Run("should fail when already awarded", func(t *testing.T) {
		o := newTestOrder(t)
		firstDriver := kernel.NewUUID()
		require.NoError(t, o.Award(firstDriver, mustPrice(t, 1800), time.Now().UTC()))

		err := o.Award(kernel.NewUUID(), mustPrice(t, 900), time.Now().UTC())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "order cannot go from OnTransit to OnTransit")
		assert.True(t, o.Driver().IsEqual(firstDriver), "first winner must keep the order")
		assert.Equal(t, int64(1800), o.Price())
	})
}

func TestOrder_Complete(t *testing.T) {
	t.Run("should set arrival time on on-transit order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Award(kernel.NewUUID(), mustPrice(t, 1800), time.Now().UTC()))
		now := time.Now().UTC()

		err := o.Complete(now)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.ArrivalTime())
		assert.Equal(t, now, *o.ArrivalTime())
	})

	t.Run("should fail on pending order", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Complete(time.Now().UTC())

		require.Error(t, err)
		assert.Equal(t, order.PendingDispatch, o.Status())
		assert.Nil(t, o.ArrivalTime())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should cancel pending order", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Cancel(false)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should not cancel on-transit order without override", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Award(kernel.NewUUID(), mustPrice(t, 1800), time.Now().UTC()))

		err := o.Cancel(false)

		require.Error(t, err)
		assert.Equal(t, order.OnTransit, o.Status())
	})

	t.Run("should cancel on-transit order with admin override", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Award(kernel.NewUUID(), mustPrice(t, 1800), time.Now().UTC()))

		err := o.Cancel(true)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
	})
}

func TestOrder_TerminalStatesAreFrozen(t *testing.T) {
	t.Run("delivered order rejects every mutation", func(t *testing.T) {
		o := newTestOrder(t)
		driverID := kernel.NewUUID()
		require.NoError(t, o.Award(driverID, mustPrice(t, 1800), time.Now().UTC()))
		require.NoError(t, o.Complete(time.Now().UTC()))

		assert.Error(t, o.Award(kernel.NewUUID(), mustPrice(t, 100), time.Now().UTC()))
		assert.Error(t, o.Complete(time.Now().UTC()))
		assert.Error(t, o.Cancel(true))

		assert.Equal(t, order.Delivered, o.Status())
		assert.True(t, o.Driver().IsEqual(driverID))
		assert.Equal(t, int64(1800), o.Price())
	})

	t.Run("cancelled order rejects every mutation", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel(false))

		assert.Error(t, o.Award(kernel.NewUUID(), mustPrice(t, 100), time.Now().UTC()))
		assert.Error(t, o.Complete(time.Now().UTC()))
		assert.Error(t, o.Cancel(true))

		assert.Equal(t, order.Cancelled, o.Status())
		assert.Nil(t, o.Driver())
	})
}

func TestOrder_IsEqual(t *testing.T) {
	t.Run("should compare by identifier", func(t *testing.T) {
		id := kernel.NewUUID()
		a, err := order.NewOrder(id, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())
		require.NoError(t, err)
		b, err := order.NewOrder(id, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())
		require.NoError(t, err)

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(newTestOrder(t)))
		assert.False(t, a.IsEqual(nil))
	})
}
