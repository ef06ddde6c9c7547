package queries

import (
	"context"

	"buffet/internal/core/domain/model/order"
	"buffet/internal/core/ports"
	"buffet/internal/pkg/errs"
)

type GetStatusSummaryQueryHandler struct {
	reader ports.OrderReader
}

func NewGetStatusSummaryQueryHandler(reader ports.OrderReader) GetStatusSummaryQueryHandler {
	return GetStatusSummaryQueryHandler{reader: reader}
}

func (h GetStatusSummaryQueryHandler) Handle(ctx context.Context, query GetStatusSummaryQuery) (StatusSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	counts, err := h.reader.CountByStatus(ctx)
	if err != nil {
		return nil, errs.NewStorageError("count orders by status", err)
	}

	summary := make(StatusSummary, len(order.AllStatuses()))
	for _, status := range order.AllStatuses() {
		summary[status] = counts[status]
	}
	return summary, nil
}
