package queries

import (
	"context"
	"errors"

	"buffet/internal/core/ports"
	"buffet/internal/pkg/errs"
)

// GetOrderByPickupCodeQueryHandler finds an order by its pickup code.
// The envelope is returned as stored; the plaintext is never revealed here.
type GetOrderByPickupCodeQueryHandler struct {
	reader ports.OrderReader
}

func NewGetOrderByPickupCodeQueryHandler(reader ports.OrderReader) GetOrderByPickupCodeQueryHandler {
	return GetOrderByPickupCodeQueryHandler{reader: reader}
}

// Handle returns the order or an ObjectNotFoundError.
func (h GetOrderByPickupCodeQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByPickupCodeQuery,
) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.reader.GetByPickupCode(ctx, query.PickupCode())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return OrderView{}, err
		}
		return OrderView{}, errs.NewStorageError("get order by pickup code", err)
	}

	return newOrderView(o, nil), nil
}
