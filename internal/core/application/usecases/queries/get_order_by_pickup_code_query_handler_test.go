package queries_test

import (
	"errors"
	"testing"

	"buffet/internal/core/application/usecases/queries"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderByPickupCodeQuery(t *testing.T) {
	t.Run("empty code", func(t *testing.T) {
		_, err := queries.NewGetOrderByPickupCodeQuery("  ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("lower case is normalized", func(t *testing.T) {
		q, err := queries.NewGetOrderByPickupCodeQuery("ab3")
		require.NoError(t, err)
		assert.Equal(t, "AB3", q.PickupCode().String())
	})
}

func TestGetOrderByPickupCodeQueryHandler_Handle(t *testing.T) {
	codec := newCodec(t, 1)
	stored := storedOrder(t, "AB3", "buf1", seal(t, codec, "x@y.com"), baseTime)

	t.Run("found", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockOrderReader)
		reader.On("GetByPickupCode", ctx, stored.PickupCode()).Return(stored, nil).Once()

		q, err := queries.NewGetOrderByPickupCodeQuery("ab3")
		require.NoError(t, err)

		view, err := queries.NewGetOrderByPickupCodeQueryHandler(reader).Handle(ctx, q)

		require.NoError(t, err)
		assert.Equal(t, stored.ID(), view.ID)
		assert.Equal(t, order.Pending, view.Status)
		assert.Equal(t, "AB3", view.PickupCode)
		assert.Equal(t, 890, view.Total)
		assert.Equal(t, stored.ContactEmail(), view.ContactEmail)
		assert.Nil(t, view.DecryptedEmail)
		reader.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockOrderReader)
		reader.On("GetByPickupCode", ctx, mock.Anything).Return(nil, errs.NewObjectNotFoundError("pickupCode", "ZZ9")).Once()

		q, err := queries.NewGetOrderByPickupCodeQuery("ZZ9")
		require.NoError(t, err)

		_, err = queries.NewGetOrderByPickupCodeQueryHandler(reader).Handle(ctx, q)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockOrderReader)
		reader.On("GetByPickupCode", ctx, mock.Anything).Return(nil, errors.New("timeout")).Once()

		q, err := queries.NewGetOrderByPickupCodeQuery("AB3")
		require.NoError(t, err)

		_, err = queries.NewGetOrderByPickupCodeQueryHandler(reader).Handle(ctx, q)

		require.ErrorIs(t, err, errs.ErrStorage)
	})

	t.Run("not constructed", func(t *testing.T) {
		_, err := queries.NewGetOrderByPickupCodeQueryHandler(new(MockOrderReader)).
			Handle(t.Context(), queries.GetOrderByPickupCodeQuery{})

		require.ErrorIs(t, err, queries.ErrGetOrderByPickupCodeQueryIsNotConstructed)
	})
}
