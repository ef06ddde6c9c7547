// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"fmt"
	"time"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The pickup code carries a partial unique index over orders that are not
// completed, so two live orders never share a code while collected orders
// release theirs. Listings are served by the created_at and buffet_id indexes.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Items        []string  `gorm:"serializer:json;type:jsonb;not null"`
	Status       string    `gorm:"type:varchar(16);not null;index"`
	ContactEmail *string   `gorm:"type:text"`
	PickupCode   string    `gorm:"type:varchar(12);not null;uniqueIndex:idx_orders_live_pickup_code,where:status <> 'completed'"`
	PickupTime   time.Time `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false;not null;index"`
	BuffetID     string    `gorm:"type:varchar(64);not null;index"`
	Version      int       `gorm:"not null;default:1"`
}

// legacyPickupCodeIndex is the global unique index older schemas carried.
const legacyPickupCodeIndex = "idx_orders_pickup_code"

// Migrate brings the orders table up to date and drops the legacy global
// pickup code index, which would keep completed orders holding their codes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&OrderDTO{}); err != nil {
		return fmt.Errorf("migrate orders: %w", err)
	}

	migrator := db.Migrator()
	if migrator.HasIndex(&OrderDTO{}, legacyPickupCodeIndex) {
		if err := migrator.DropIndex(&OrderDTO{}, legacyPickupCodeIndex); err != nil {
			return fmt.Errorf("drop %s: %w", legacyPickupCodeIndex, err)
		}
	}
	return nil
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
// Version is the pending one, so an insert stores the initial version and an
// update stores the bumped one.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		Items:        aggregate.Items(),
		Status:       aggregate.Status().String(),
		ContactEmail: aggregate.ContactEmail(),
		PickupCode:   aggregate.PickupCode().String(),
		PickupTime:   aggregate.PickupTime().UTC(),
		CreatedAt:    aggregate.CreatedAt().UTC(),
		BuffetID:     aggregate.BuffetID(),
		Version:      aggregate.Version(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	code, err := kernel.NewPickupCode(dto.PickupCode)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Items,
		status,
		dto.ContactEmail,
		code,
		dto.PickupTime,
		dto.CreatedAt,
		dto.BuffetID,
		dto.Version,
	)
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
