package queries

import (
	"context"

	"buffet/internal/core/ports"
	"buffet/internal/pkg/errs"
)

// GetBuffetOrdersQueryHandler lists a buffet's orders newest first with the
// contact address opened where possible.
type GetBuffetOrdersQueryHandler struct {
	reader ports.OrderReader
	cipher ports.EmailCipher
}

func NewGetBuffetOrdersQueryHandler(reader ports.OrderReader, cipher ports.EmailCipher) GetBuffetOrdersQueryHandler {
	return GetBuffetOrdersQueryHandler{reader: reader, cipher: cipher}
}

// Handle never fails because of a broken envelope: the order is listed with
// a nil DecryptedEmail instead.
func (h GetBuffetOrdersQueryHandler) Handle(ctx context.Context, query GetBuffetOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.ListByBuffet(ctx, query.BuffetID())
	if err != nil {
		return nil, errs.NewStorageError("list buffet orders", err)
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		decrypted, _ := tryDecrypt(h.cipher, o.ContactEmail())
		views = append(views, newOrderView(o, decrypted))
	}

	return views, nil
}
