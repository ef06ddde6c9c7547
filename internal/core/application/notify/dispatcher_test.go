package notify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"buffet/internal/core/application/notify"
	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/core/domain/services"
	"buffet/internal/core/ports"
	"buffet/internal/pkg/errs"
	"buffet/internal/pkg/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMailer struct{ mock.Mock }

func (m *MockMailer) Send(ctx context.Context, mail ports.Mail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}

type MockGuard struct{ mock.Mock }

func (m *MockGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuard) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockRecorder struct{ mock.Mock }

func (m *MockRecorder) NotificationSent(kind, result string) {
	m.Called(kind, result)
}

// memoryGuard mimics SETNX semantics.
type memoryGuard struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func (g *memoryGuard) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.keys == nil {
		g.keys = map[string]struct{}{}
	}
	if _, taken := g.keys[key]; taken {
		return false, nil
	}
	g.keys[key] = struct{}{}
	return true, nil
}

func (g *memoryGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.keys, key)
	return nil
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	code, err := kernel.NewPickupCode("AB3")
	require.NoError(t, err)
	createdAt := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	envelope := "iv:ct"
	o, err := order.RestoreOrder(kernel.NewUUID(), []string{"Sonkás szendvics (890 Ft)"}, order.Ready, &envelope,
		code, createdAt.Add(20*time.Minute), createdAt, "buf1", 3)
	require.NoError(t, err)
	return o
}

func newDispatcher(t *testing.T, mailer ports.Mailer, guard ports.NotificationGuard, recorder notify.Recorder) *notify.Dispatcher {
	t.Helper()
	composer, err := services.NewReceiptComposer("hu", time.UTC)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return notify.NewDispatcher(composer, mailer, guard, recorder, logger, time.Second)
}

func TestDispatcher_SendConfirmed(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)

	mailer := new(MockMailer)
	recorder := new(MockRecorder)
	mailer.On("Send", ctx, mock.MatchedBy(func(m ports.Mail) bool {
		return m.To == "x@y.com" &&
			m.Subject == "Rendelésed visszaigazolása" &&
			strings.Contains(m.Body, "Végösszeg: 890 Ft") &&
			strings.Contains(m.Body, "AB3")
	})).Return(nil).Once()
	recorder.On("NotificationSent", notify.KindConfirmed, telemetry.ResultSent).Return().Once()

	err := newDispatcher(t, mailer, notify.NopGuard{}, recorder).SendConfirmed(ctx, o, "x@y.com")

	require.NoError(t, err)
	mailer.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestDispatcher_SendConfirmed_TransportFailure(t *testing.T) {
	ctx := t.Context()

	mailer := new(MockMailer)
	recorder := new(MockRecorder)
	mailer.On("Send", ctx, mock.Anything).Return(errors.New("dial tcp: refused")).Once()
	recorder.On("NotificationSent", notify.KindConfirmed, telemetry.ResultFailed).Return().Once()

	err := newDispatcher(t, mailer, notify.NopGuard{}, recorder).SendConfirmed(ctx, testOrder(t), "x@y.com")

	var notificationErr *errs.NotificationError
	require.ErrorAs(t, err, &notificationErr)
	assert.Equal(t, notify.KindConfirmed, notificationErr.Kind)
	recorder.AssertExpectations(t)
}

func TestDispatcher_SendReady_OnlyOncePerOrder(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)

	mailer := new(MockMailer)
	recorder := new(MockRecorder)
	mailer.On("Send", ctx, mock.MatchedBy(func(m ports.Mail) bool {
		return m.Subject == "Rendelésed átvehető"
	})).Return(nil).Once()
	recorder.On("NotificationSent", notify.KindReady, telemetry.ResultSent).Return().Once()
	recorder.On("NotificationSent", notify.KindReady, telemetry.ResultSkipped).Return().Once()

	d := newDispatcher(t, mailer, &memoryGuard{}, recorder)

	require.NoError(t, d.SendReady(ctx, o, "x@y.com"))
	require.NoError(t, d.SendReady(ctx, o, "x@y.com"))

	mailer.AssertNumberOfCalls(t, "Send", 1)
	recorder.AssertExpectations(t)
}

func TestDispatcher_SendReady_GuardFailureSendsAnyway(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)

	guard := new(MockGuard)
	mailer := new(MockMailer)
	recorder := new(MockRecorder)
	guard.On("Acquire", ctx, notify.ReadyGuardKey(o), notify.ReadyGuardTTL).Return(false, errors.New("redis down")).Once()
	mailer.On("Send", ctx, mock.Anything).Return(nil).Once()
	recorder.On("NotificationSent", notify.KindReady, telemetry.ResultSent).Return().Once()

	err := newDispatcher(t, mailer, guard, recorder).SendReady(ctx, o, "x@y.com")

	require.NoError(t, err)
	guard.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestDispatcher_SendReady_FailedSendCanBeRetried(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)

	mailer := new(MockMailer)
	recorder := new(MockRecorder)
	mailer.On("Send", ctx, mock.Anything).Return(errors.New("dial tcp: refused")).Once()
	mailer.On("Send", ctx, mock.Anything).Return(nil).Once()
	recorder.On("NotificationSent", notify.KindReady, telemetry.ResultFailed).Return().Once()
	recorder.On("NotificationSent", notify.KindReady, telemetry.ResultSent).Return().Once()

	d := newDispatcher(t, mailer, &memoryGuard{}, recorder)

	require.ErrorIs(t, d.SendReady(ctx, o, "x@y.com"), errs.ErrNotification)
	require.NoError(t, d.SendReady(ctx, o, "x@y.com"))

	mailer.AssertNumberOfCalls(t, "Send", 2)
	recorder.AssertExpectations(t)
}

func TestDispatcher_SendReady_ReleaseFailureIsLogged(t *testing.T) {
	ctx := t.Context()
	o := testOrder(t)

	guard := new(MockGuard)
	mailer := new(MockMailer)
	recorder := new(MockRecorder)
	guard.On("Acquire", ctx, notify.ReadyGuardKey(o), notify.ReadyGuardTTL).Return(true, nil).Once()
	guard.On("Release", mock.Anything, notify.ReadyGuardKey(o)).Return(errors.New("redis down")).Once()
	mailer.On("Send", ctx, mock.Anything).Return(errors.New("535 auth failed")).Once()
	recorder.On("NotificationSent", notify.KindReady, telemetry.ResultFailed).Return().Once()

	err := newDispatcher(t, mailer, guard, recorder).SendReady(ctx, o, "x@y.com")

	require.ErrorIs(t, err, errs.ErrNotification)
	guard.AssertExpectations(t)
}

func TestDispatcher_OrderReady_RunsDetachedFromRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	o := testOrder(t)

	sent := make(chan context.Context, 1)
	mailer := new(MockMailer)
	recorder := new(MockRecorder)
	mailer.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent <- args.Get(0).(context.Context)
	}).Return(nil).Once()
	recorder.On("NotificationSent", notify.KindReady, telemetry.ResultSent).Return().Once()

	d := newDispatcher(t, mailer, notify.NopGuard{}, recorder)
	d.OrderReady(ctx, o, "x@y.com")
	cancel()
	d.Wait()

	sendCtx := <-sent
	_, hasDeadline := sendCtx.Deadline()
	assert.True(t, hasDeadline)
	mailer.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestDispatcher_OrderConfirmed_FailureIsSwallowed(t *testing.T) {
	o := testOrder(t)

	mailer := new(MockMailer)
	recorder := new(MockRecorder)
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("535 auth failed")).Once()
	recorder.On("NotificationSent", notify.KindConfirmed, telemetry.ResultFailed).Return().Once()

	d := newDispatcher(t, mailer, notify.NopGuard{}, recorder)
	d.OrderConfirmed(t.Context(), o, "x@y.com")
	d.Wait()

	mailer.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestDispatcher_SendReady_RejectsUnconstructedOrder(t *testing.T) {
	recorder := new(MockRecorder)
	recorder.On("NotificationSent", notify.KindReady, telemetry.ResultFailed).Return().Once()

	err := newDispatcher(t, new(MockMailer), notify.NopGuard{}, recorder).SendReady(t.Context(), &order.Order{}, "x@y.com")

	require.ErrorIs(t, err, errs.ErrNotification)
}
