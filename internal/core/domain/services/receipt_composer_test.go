package services_test

import (
	"strings"
	"testing"
	"time"

	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/domain/model/order"
	"buffet/internal/core/domain/services"
	"buffet/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var cet = time.FixedZone("CET", 60*60)

func newOrder(t *testing.T, items ...string) *order.Order {
	t.Helper()
	code, err := kernel.NewPickupCode("AB3")
	require.NoError(t, err)

	createdAt := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	envelope := "aa:bb"
	o, err := order.NewOrder(kernel.NewUUID(), items, code, createdAt.Add(20*time.Minute), createdAt, "buf1", &envelope)
	require.NoError(t, err)
	return o
}

func TestNewReceiptComposer(t *testing.T) {
	t.Run("defaults to hungarian", func(t *testing.T) {
		c, err := services.NewReceiptComposer("", nil)
		require.NoError(t, err)
		assert.Equal(t, language.Hungarian, c.Language())
	})

	t.Run("matches regional english", func(t *testing.T) {
		c, err := services.NewReceiptComposer("en-GB", nil)
		require.NoError(t, err)
		assert.Equal(t, language.English, c.Language())
	})

	t.Run("rejects malformed tag", func(t *testing.T) {
		_, err := services.NewReceiptComposer("not a language!", nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestReceiptComposer_ConfirmedHungarian(t *testing.T) {
	c, err := services.NewReceiptComposer("hu", cet)
	require.NoError(t, err)

	receipt, err := c.Confirmed(newOrder(t, "Sonkás szendvics (890 Ft)"))

	require.NoError(t, err)
	assert.Equal(t, "Rendelésed visszaigazolása", receipt.Subject)
	assert.NotContains(t, receipt.Subject, "AB3")
	assert.Contains(t, receipt.Body, " - Sonkás szendvics (890 Ft)\n")
	assert.Contains(t, receipt.Body, "Végösszeg: 890 Ft")
	assert.Contains(t, receipt.Body, "Átvétel ideje: 2025. 03. 10. 10:50")
	assert.Contains(t, receipt.Body, "Átvételi kód: AB3")
	assert.Equal(t, 2, strings.Count(receipt.Body, "Az átvételi kódot senkinek ne mondd el"))
}

func TestReceiptComposer_ReadyEnglish(t *testing.T) {
	c, err := services.NewReceiptComposer("en", time.UTC)
	require.NoError(t, err)

	receipt, err := c.Ready(newOrder(t, "Tea (150 Ft)", "Kakaós csiga (350 Ft)", "Szalvéta"))

	require.NoError(t, err)
	assert.Equal(t, "Your order is ready for pickup", receipt.Subject)
	assert.Contains(t, receipt.Body, "Total: 500 Ft")
	assert.Contains(t, receipt.Body, " - Szalvéta\n")
	assert.Contains(t, receipt.Body, "Pickup time: Mar 10, 2025 09:50")
	assert.Equal(t, 2, strings.Count(receipt.Body, "Do not tell your pickup code"))
}

func TestReceiptComposer_ItemLinesAreNotFormatVerbs(t *testing.T) {
	c, err := services.NewReceiptComposer("en", time.UTC)
	require.NoError(t, err)

	receipt, err := c.Confirmed(newOrder(t, "100% narancslé (400 Ft)"))

	require.NoError(t, err)
	assert.Contains(t, receipt.Body, " - 100% narancslé (400 Ft)\n")
	assert.Contains(t, receipt.Body, "Total: 400 Ft")
}

func TestReceiptComposer_RejectsUnconstructedOrder(t *testing.T) {
	c, err := services.NewReceiptComposer("hu", nil)
	require.NoError(t, err)

	_, err = c.Ready(&order.Order{})

	require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
}
