package http

import (
	"time"

	"buffet/internal/core/application/usecases/queries"
	"buffet/internal/core/domain/model/order"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the checkout body. PickupCode and Email are optional.
type CreateOrderRequest struct {
	Items      []string  `json:"items"`
	PickupCode string    `json:"pickupCode"`
	PickupTime time.Time `json:"pickupTime"`
	Email      string    `json:"email"`
	BuffetID   string    `json:"buffetId"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse is the JSON shape of an order.
type OrderResponse struct {
	ID             string    `json:"id"`
	Items          []string  `json:"items"`
	Total          int       `json:"total"`
	Status         string    `json:"status"`
	ContactEmail   *string   `json:"contactEmail"`
	PickupCode     string    `json:"pickupCode"`
	PickupTime     time.Time `json:"pickupTime"`
	CreatedAt      time.Time `json:"createdAt"`
	BuffetID       string    `json:"buffetId"`
	DecryptedEmail *string   `json:"decryptedEmail,omitempty"`
}

type CreateOrderResponse struct {
	Message string        `json:"message"`
	Order   OrderResponse `json:"order"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func fromAggregate(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:           o.ID().String(),
		Items:        o.Items(),
		Total:        o.Total(),
		Status:       o.Status().String(),
		ContactEmail: o.ContactEmail(),
		PickupCode:   o.PickupCode().String(),
		PickupTime:   o.PickupTime(),
		CreatedAt:    o.CreatedAt(),
		BuffetID:     o.BuffetID(),
	}
}

func fromView(v queries.OrderView) OrderResponse {
	return OrderResponse{
		ID:             v.ID.String(),
		Items:          v.Items,
		Total:          v.Total,
		Status:         v.Status.String(),
		ContactEmail:   v.ContactEmail,
		PickupCode:     v.PickupCode,
		PickupTime:     v.PickupTime,
		CreatedAt:      v.CreatedAt,
		BuffetID:       v.BuffetID,
		DecryptedEmail: v.DecryptedEmail,
	}
}

func fromViews(views []queries.OrderView) []OrderResponse {
	out := make([]OrderResponse, 0, len(views))
	for _, v := range views {
		out = append(out, fromView(v))
	}
	return out
}
