package commands_test

import (
	"context"
	"time"

	"buffet/internal/core/application/usecases/commands"
	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockIdentityDirectory struct{ mock.Mock }

func (m *MockIdentityDirectory) IsRegistered(ctx context.Context, email kernel.Email) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockEmailCipher struct{ mock.Mock }

func (m *MockEmailCipher) Encrypt(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockEmailCipher) Decrypt(envelope string) (string, error) {
	args := m.Called(envelope)
	return args.String(0), args.Error(1)
}

type MockOrderNotifier struct{ mock.Mock }

func (m *MockOrderNotifier) OrderConfirmed(ctx context.Context, o *order.Order, email string) {
	m.Called(ctx, o, email)
}

func (m *MockOrderNotifier) OrderReady(ctx context.Context, o *order.Order, email string) {
	m.Called(ctx, o, email)
}

type MockLifecycleRecorder struct{ mock.Mock }

func (m *MockLifecycleRecorder) OrderCreated() {
	m.Called()
}

func (m *MockLifecycleRecorder) StatusChanged(from, to order.Status) {
	m.Called(from, to)
}

var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func clock() time.Time {
	return fixedNow
}
