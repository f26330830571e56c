package bidrepo

import (
	"context"
	"errors"

	"loadboard/internal/core/domain/model/bid"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormBidRepository implements BidRepository using GORM.
type GormBidRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBidRepository creates a new GORM bid repository.
func NewGormBidRepository(db *gorm.DB, tracker aggregateTracker) *GormBidRepository {
	return &GormBidRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new bid to the database. A collision on the pending-bid
// uniqueness constraint surfaces as ObjectAlreadyExistsError: the driver
// already holds a live bid on the order, so a concurrent first-time
// placement lost the race. Any other unique violation (a reused bid id)
// surfaces as ValueIsInvalidError so retried placements fail loudly instead
// of leaking a driver error.
func (r *GormBidRepository) Add(ctx context.Context, aggregate *bid.Bid) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isPendingBidViolation(err) {
			return errs.NewObjectAlreadyExistsErrorWithCause("bid", aggregate.Driver().String(), err)
		}
		if isUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("bidId", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing bid to the database.
func (r *GormBidRepository) Update(ctx context.Context, aggregate *bid.Bid) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&BidDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateIfStatus saves the bid only if the stored row still has the expected
// status. The conditional WHERE clause makes the write a compare-and-set, so
// a withdraw or supersede racing an award can never overwrite the committed
// Accepted status.
func (r *GormBidRepository) UpdateIfStatus(
	ctx context.Context,
	aggregate *bid.Bid,
	expected bid.Status,
) (bool, error) {
	if err := aggregate.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&BidDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Updates(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return true, nil
}

// Get retrieves a bid by ID.
func (r *GormBidRepository) Get(ctx context.Context, id kernel.UUID) (*bid.Bid, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BidDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bid", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPendingByOrder retrieves all pending bids on the given order.
func (r *GormBidRepository) GetPendingByOrder(ctx context.Context, orderID kernel.UUID) ([]*bid.Bid, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BidDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "order_id = ? AND status = ?", orderID.Bytes(), bid.Pending).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetPendingByOrderAndDriver retrieves the driver's live bid on the order.
func (r *GormBidRepository) GetPendingByOrderAndDriver(
	ctx context.Context,
	orderID kernel.UUID,
	driverID kernel.UUID,
) (*bid.Bid, error) {
	if err := errors.Join(orderID.Validate(), driverID.Validate()); err != nil {
		return nil, err
	}

	var dto BidDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND driver_id = ? AND status = ?",
			orderID.Bytes(), driverID.Bytes(), bid.Pending).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bid", driverID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func toDomainAll(dtos []BidDTO) ([]*bid.Bid, error) {
	bids := make([]*bid.Bid, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}

	return bids, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// isPendingBidViolation reports whether err is a violation of the partial
// unique index guaranteeing at most one pending bid per (order, driver).
func isPendingBidViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505" &&
		pqErr.Constraint == pendingBidIndex
}
