package queries

import (
	"context"
	"time"

	"loadboard/internal/core/domain/model/bid"
	"loadboard/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderBidsQueryHandler retrieves the bid history of an order from the
// database.
type GetOrderBidsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderBidsQueryHandler creates a handler for bid listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrderBidsQueryHandler(db *gorm.DB) GetOrderBidsQueryHandler {
	return GetOrderBidsQueryHandler{db: db}
}

// Handle executes the query to retrieve every bid on the order, oldest first.
func (h GetOrderBidsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderBidsQuery,
) ([]GetOrderBidsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	bids := make([]GetOrderBidsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			driver_id,
			price,
			status,
			created_at
		FROM bids
		WHERE order_id = ?
		ORDER BY created_at
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, driverID uuid.UUID
		var price int64
		var status bid.Status
		var createdAt time.Time

		if err = rows.Scan(&id, &driverID, &price, &status, &createdAt); err != nil {
			return nil, err
		}

		bidID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		driver, idErr := kernel.UUIDFromBytes(driverID[:])
		if idErr != nil {
			return nil, idErr
		}

		bids = append(bids, GetOrderBidsQueryResponse{
			ID:        bidID,
			DriverID:  driver,
			Price:     price,
			Status:    status.String(),
			CreatedAt: createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bids, nil
}
