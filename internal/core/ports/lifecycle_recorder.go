package ports

import "buffet/internal/core/domain/model/order"

// LifecycleRecorder observes successful lifecycle operations.
type LifecycleRecorder interface {
	OrderCreated()
	StatusChanged(from, to order.Status)
}
