package order_test

import (
	"fmt"
	"testing"

	"loadboard/internal/core/domain/model/order"
	"loadboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.PendingDispatch))
		assert.Equal(t, 2, int(order.OnTransit))
		assert.Equal(t, 3, int(order.Delivered))
		assert.Equal(t, 4, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.PendingDispatch,
			order.OnTransit,
			order.Delivered,
			order.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "status is invalid")
		assert.Contains(t, err.Error(), "0 is not a valid status")
	})

	t.Run("should reject out of range status values", func(t *testing.T) {
		for _, status := range []order.Status{order.Status(-1), order.Status(5), order.Status(100)} {
			err := status.Validate()

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return correct string representations", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.Unknown.String())
		assert.Equal(t, "PendingDispatch", order.PendingDispatch.String())
		assert.Equal(t, "OnTransit", order.OnTransit.String())
		assert.Equal(t, "Delivered", order.Delivered.String())
		assert.Equal(t, "Cancelled", order.Cancelled.String())
	})

	t.Run("should return Unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.Status(42).String())
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.PendingDispatch.IsTerminal())
	assert.False(t, order.OnTransit.IsTerminal())
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
}

func TestStatus_ValidateCanHaveDriver(t *testing.T) {
	t.Run("should allow driver only for OnTransit and Delivered", func(t *testing.T) {
		require.NoError(t, order.OnTransit.ValidateCanHaveDriver(true))
		require.NoError(t, order.Delivered.ValidateCanHaveDriver(true))
		require.NoError(t, order.PendingDispatch.ValidateCanHaveDriver(false))
		require.NoError(t, order.Cancelled.ValidateCanHaveDriver(false))
	})

	t.Run("should reject driver on PendingDispatch order", func(t *testing.T) {
		err := order.PendingDispatch.ValidateCanHaveDriver(true)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "PendingDispatch is not a valid status to have a driver")
	})

	t.Run("should require driver on OnTransit order", func(t *testing.T) {
		err := order.OnTransit.ValidateCanHaveDriver(false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "OnTransit is not a valid status to have no driver")
	})

	t.Run("should require driver on Delivered order", func(t *testing.T) {
		err := order.Delivered.ValidateCanHaveDriver(false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Delivered is not a valid status to have no driver")
	})
}

func TestStatus_Award(t *testing.T) {
	t.Run("should award from PendingDispatch", func(t *testing.T) {
		newStatus, err := order.PendingDispatch.Award()

		require.NoError(t, err)
		assert.Equal(t, order.OnTransit, newStatus)
	})

	t.Run("should fail from any other status", func(t *testing.T) {
		for _, status := range []order.Status{order.OnTransit, order.Delivered, order.Cancelled} {
			t.Run(fmt.Sprintf("should fail from %s", status.String()), func(t *testing.T) {
				_, err := status.Award()

				require.Error(t, err)
				assert.IsType(t, &errs.InvalidTransitionError{}, err)
				assert.Contains(t, err.Error(), fmt.Sprintf("order cannot go from %s to OnTransit", status.String()))
			})
		}
	})
}

func TestStatus_Complete(t *testing.T) {
	t.Run("should complete from OnTransit", func(t *testing.T) {
		newStatus, err := order.OnTransit.Complete()

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, newStatus)
	})

	t.Run("should fail from any other status", func(t *testing.T) {
		for _, status := range []order.Status{order.PendingDispatch, order.Delivered, order.Cancelled} {
			t.Run(fmt.Sprintf("should fail from %s", status.String()), func(t *testing.T) {
				_, err := status.Complete()

				require.Error(t, err)
				assert.IsType(t, &errs.InvalidTransitionError{}, err)
			})
		}
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("should cancel from PendingDispatch without override", func(t *testing.T) {
		newStatus, err := order.PendingDispatch.Cancel(false)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, newStatus)
	})

	t.Run("should reject cancelling OnTransit without override", func(t *testing.T) {
		_, err := order.OnTransit.Cancel(false)

		require.Error(t, err)
		assert.IsType(t, &errs.InvalidTransitionError{}, err)
		assert.Contains(t, err.Error(), "order cannot go from OnTransit to Cancelled")
	})

	t.Run("should cancel OnTransit with admin override", func(t *testing.T) {
		newStatus, err := order.OnTransit.Cancel(true)

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, newStatus)
	})

	t.Run("should reject cancelling terminal statuses even with override", func(t *testing.T) {
		for _, status := range []order.Status{order.Delivered, order.Cancelled} {
			t.Run(fmt.Sprintf("should fail from %s", status.String()), func(t *testing.T) {
				_, err := status.Cancel(true)

				require.Error(t, err)
				assert.IsType(t, &errs.InvalidTransitionError{}, err)
			})
		}
	})
}
