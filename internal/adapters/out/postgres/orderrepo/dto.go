// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and driver assignment.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MerchantID   uuid.UUID  `gorm:"type:uuid;index"`
	DriverID     *uuid.UUID `gorm:"type:uuid;index"`
	CommodityID  uuid.UUID  `gorm:"type:uuid"`
	RecipientID  uuid.UUID  `gorm:"type:uuid"`
	AddressID    uuid.UUID  `gorm:"type:uuid"`
	Price        int64
	Status       int `gorm:"index"`
	CreatedAt    time.Time
	DispatchTime *time.Time
	ArrivalTime  *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including optional driver assignment.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		MerchantID:   aggregate.Merchant().Bytes(),
		DriverID:     driverID,
		CommodityID:  aggregate.Commodity().Bytes(),
		RecipientID:  aggregate.Recipient().Bytes(),
		AddressID:    aggregate.Address().Bytes(),
		Price:        aggregate.Price(),
		Status:       int(aggregate.Status()),
		CreatedAt:    aggregate.CreatedAt(),
		DispatchTime: aggregate.DispatchTime(),
		ArrivalTime:  aggregate.ArrivalTime(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status and driver assignment using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	merchantID, err := kernel.UUIDFromBytes(dto.MerchantID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}

		driverID = &dID
	}

	commodityID, err := kernel.UUIDFromBytes(dto.CommodityID[:])
	if err != nil {
		return nil, err
	}

	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		merchantID,
		driverID,
		commodityID,
		recipientID,
		addressID,
		dto.Price,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.DispatchTime,
		dto.ArrivalTime,
	)
}
