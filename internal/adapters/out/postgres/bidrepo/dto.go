// Package bidrepo provides data transfer objects and mapping functions for bid persistence.
// This package implements the repository pattern for the bid domain aggregate.
package bidrepo

import (
	"time"

	"loadboard/internal/core/domain/model/bid"
	"loadboard/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// pendingBidIndex is the partial unique index enforcing at most one pending
// bid per (order, driver) pair at the store level. Pending is status 1; the
// predicate must stay in sync with bid.Pending.
const pendingBidIndex = "idx_bids_pending_per_driver"

// BidDTO represents the database structure for persisting bid aggregates.
// The composite index on (order_id, driver_id, status) backs the pending-bid
// lookups that run on every placement and award; the partial unique index
// is the backstop for concurrent first-time placements by one driver.
type BidDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index:idx_bids_order_driver_status;uniqueIndex:idx_bids_pending_per_driver,where:status = 1"`
	DriverID  uuid.UUID `gorm:"type:uuid;index:idx_bids_order_driver_status;uniqueIndex:idx_bids_pending_per_driver,where:status = 1"`
	Price     int64
	Status    int `gorm:"index:idx_bids_order_driver_status"`
	CreatedAt time.Time
}

// TableName specifies the database table name for bid entities.
func (BidDTO) TableName() string {
	return "bids"
}

// fromDomain converts a bid domain aggregate to its database representation.
func fromDomain(aggregate *bid.Bid) BidDTO {
	return BidDTO{
		ID:        aggregate.ID().Bytes(),
		OrderID:   aggregate.Order().Bytes(),
		DriverID:  aggregate.Driver().Bytes(),
		Price:     aggregate.Price().Amount(),
		Status:    int(aggregate.Status()),
		CreatedAt: aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a bid domain aggregate using RestoreBid.
func toDomain(dto BidDTO) (*bid.Bid, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewPrice(dto.Price)
	if err != nil {
		return nil, err
	}

	return bid.RestoreBid(id, orderID, driverID, price, bid.Status(dto.Status), dto.CreatedAt)
}
