package queries_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/pkg/envelope"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) GetByPickupCode(ctx context.Context, code kernel.PickupCode) (*order.Order, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) ListAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	return ordersArg(args, 0), args.Error(1)
}

func (m *MockOrderReader) ListByBuffet(ctx context.Context, buffetID string) ([]*order.Order, error) {
	args := m.Called(ctx, buffetID)
	return ordersArg(args, 0), args.Error(1)
}

func (m *MockOrderReader) ListWithContactEmail(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	return ordersArg(args, 0), args.Error(1)
}

func (m *MockOrderReader) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[order.Status]int), args.Error(1)
}

func ordersArg(args mock.Arguments, i int) []*order.Order {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).([]*order.Order)
}

var baseTime = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func newCodec(t *testing.T, b byte) *envelope.Codec {
	t.Helper()
	c, err := envelope.NewCodec(bytes.Repeat([]byte{b}, envelope.KeySize))
	require.NoError(t, err)
	return c
}

func seal(t *testing.T, c *envelope.Codec, email string) *string {
	t.Helper()
	sealed, err := c.Encrypt(email)
	require.NoError(t, err)
	return &sealed
}

func storedOrder(t *testing.T, code string, buffetID string, contact *string, createdAt time.Time) *order.Order {
	t.Helper()
	pickupCode, err := kernel.NewPickupCode(code)
	require.NoError(t, err)
	o, err := order.RestoreOrder(kernel.NewUUID(), []string{"Sonkás szendvics (890 Ft)"}, order.Pending, contact,
		pickupCode, createdAt.Add(20*time.Minute), createdAt, buffetID, 1)
	require.NoError(t, err)
	return o
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
