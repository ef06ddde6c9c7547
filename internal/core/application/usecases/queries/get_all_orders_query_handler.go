package queries

import (
	"context"

	"buffet/internal/core/ports"
	"buffet/internal/pkg/errs"
)

type GetAllOrdersQueryHandler struct {
	reader ports.OrderReader
}

func NewGetAllOrdersQueryHandler(reader ports.OrderReader) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{reader: reader}
}

func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.ListAll(ctx)
	if err != nil {
		return nil, errs.NewStorageError("list orders", err)
	}

	return newOrderViews(orders), nil
}
