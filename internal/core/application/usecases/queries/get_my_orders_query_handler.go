package queries

import (
	"context"
	"log/slog"

	"buffet/internal/core/ports"
	"buffet/internal/pkg/errs"
)

// GetMyOrdersQueryHandler matches stored envelopes against the requester's
// address. Envelopes are randomized, so every candidate has to be opened;
// records that cannot be decrypted are skipped, never fatal.
type GetMyOrdersQueryHandler struct {
	reader ports.OrderReader
	cipher ports.EmailCipher
	logger *slog.Logger
}

func NewGetMyOrdersQueryHandler(
	reader ports.OrderReader,
	cipher ports.EmailCipher,
	logger *slog.Logger,
) GetMyOrdersQueryHandler {
	return GetMyOrdersQueryHandler{
		reader: reader,
		cipher: cipher,
		logger: logger.With("component", "GetMyOrdersQueryHandler"),
	}
}

// Handle returns the requester's orders newest first, each carrying its
// decrypted address. Matching is case-insensitive.
func (h GetMyOrdersQueryHandler) Handle(ctx context.Context, query GetMyOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	candidates, err := h.reader.ListWithContactEmail(ctx)
	if err != nil {
		return nil, errs.NewStorageError("list orders with contact email", err)
	}

	views := make([]OrderView, 0)
	skipped := 0
	for _, o := range candidates {
		decrypted, ok := tryDecrypt(h.cipher, o.ContactEmail())
		if !ok {
			skipped++
			continue
		}
		if !query.Email().Matches(*decrypted) {
			continue
		}
		views = append(views, newOrderView(o, decrypted))
	}

	if skipped > 0 {
		h.logger.WarnContext(ctx, "skipped orders with undecryptable contact email", "count", skipped)
	}

	return views, nil
}

// tryDecrypt opens an envelope, reporting false for a missing or broken one.
func tryDecrypt(cipher ports.EmailCipher, envelope *string) (*string, bool) {
	if envelope == nil {
		return nil, false
	}
	plaintext, err := cipher.Decrypt(*envelope)
	if err != nil {
		return nil, false
	}
	return &plaintext, true
}
