package queries

import (
	"context"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler retrieves orders open for bidding from the database.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler for open order queries.
// Requires a GORM database connection for query execution.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all PendingDispatch orders.
// Results are sorted newest first so fresh work tops the board.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			merchant_id,
			commodity_id,
			address_id,
			created_at
		FROM orders
		WHERE status = ?
		ORDER BY created_at DESC
	`, order.PendingDispatch).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, merchantID, commodityID, addressID uuid.UUID
		var createdAt time.Time

		if err = rows.Scan(&id, &merchantID, &commodityID, &addressID, &createdAt); err != nil {
			return nil, err
		}

		resp, respErr := openOrderResponse(id, merchantID, commodityID, addressID, createdAt)
		if respErr != nil {
			return nil, respErr
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func openOrderResponse(id, merchantID, commodityID, addressID uuid.UUID, createdAt time.Time) (GetOpenOrdersQueryResponse, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOpenOrdersQueryResponse{}, err
	}

	merchant, err := kernel.UUIDFromBytes(merchantID[:])
	if err != nil {
		return GetOpenOrdersQueryResponse{}, err
	}

	commodity, err := kernel.UUIDFromBytes(commodityID[:])
	if err != nil {
		return GetOpenOrdersQueryResponse{}, err
	}

	address, err := kernel.UUIDFromBytes(addressID[:])
	if err != nil {
		return GetOpenOrdersQueryResponse{}, err
	}

	return GetOpenOrdersQueryResponse{
		ID:          orderID,
		MerchantID:  merchant,
		CommodityID: commodity,
		AddressID:   address,
		CreatedAt:   createdAt,
	}, nil
}
