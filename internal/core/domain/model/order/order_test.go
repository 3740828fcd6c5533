package order_test

import (
	"testing"
	"time"

	"orderregistry/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProducts(t *testing.T) []*order.Product {
	t.Helper()
	widget, err := order.NewProduct("Widget", mustMoney(t, 10.00), 2)
	require.NoError(t, err)
	gadget, err := order.NewProduct("Gadget", mustMoney(t, 5.50), 1)
	require.NoError(t, err)
	return []*order.Product{widget, gadget}
}

func TestNewOrder(t *testing.T) {
	t.Run("should create valid order", func(t *testing.T) {
		o, err := order.NewOrder("EXT-1", validProducts(t))

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		require.NoError(t, o.ID().Validate())
		assert.Equal(t, "EXT-1", o.ExternalID())
		assert.Equal(t, order.Received, o.Status())
		assert.Equal(t, "25.50", o.TotalAmount().String())
		assert.Len(t, o.Products(), 2)
		assert.NotEmpty(t, o.Fingerprint().String())
		assert.Nil(t, o.ProcessedAt())
		assert.Empty(t, o.ErrorMessage())
		assert.WithinDuration(t, time.Now().UTC(), o.CreatedAt(), time.Minute)
	})

	t.Run("should assign distinct ids to distinct orders", func(t *testing.T) {
		a, err := order.NewOrder("EXT-1", validProducts(t))
		require.NoError(t, err)
		b, err := order.NewOrder("EXT-2", validProducts(t))
		require.NoError(t, err)

		assert.False(t, a.IsEqual(b))
	})

	t.Run("should fail with empty external id", func(t *testing.T) {
		o, err := order.NewOrder("", validProducts(t))

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "externalId")
	})

	t.Run("should fail with no products", func(t *testing.T) {
		o, err := order.NewOrder("EXT-1", nil)

		require.ErrorIs(t, err, order.ErrOrderHasNoProducts)
		assert.Nil(t, o)
	})

	t.Run("should fail with invalid product", func(t *testing.T) {
		o, err := order.NewOrder("EXT-1", []*order.Product{nil})

		require.ErrorIs(t, err, order.ErrProductIsNotConstructed)
		assert.Nil(t, o)
	})

	t.Run("identical content yields identical fingerprints", func(t *testing.T) {
		a, err := order.NewOrder("EXT-1", validProducts(t))
		require.NoError(t, err)
		b, err := order.NewOrder("EXT-1", validProducts(t))
		require.NoError(t, err)

		assert.True(t, a.Fingerprint().IsEqual(b.Fingerprint()))
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("nil order fails", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("zero value fails", func(t *testing.T) {
		o := &order.Order{}
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_AddProduct(t *testing.T) {
	t.Run("recomputes total but not fingerprint", func(t *testing.T) {
		o, err := order.NewOrder("EXT-1", validProducts(t))
		require.NoError(t, err)
		originalFingerprint := o.Fingerprint()

		extra, err := order.NewProduct("Sprocket", mustMoney(t, 4.50), 2)
		require.NoError(t, err)
		require.NoError(t, o.AddProduct(extra))

		assert.Equal(t, "34.50", o.TotalAmount().String())
		assert.Len(t, o.Products(), 3)
		assert.True(t, o.Fingerprint().IsEqual(originalFingerprint))
	})

	t.Run("rejects nil product", func(t *testing.T) {
		o, err := order.NewOrder("EXT-1", validProducts(t))
		require.NoError(t, err)

		require.ErrorIs(t, o.AddProduct(nil), order.ErrProductIsNotConstructed)
		assert.Equal(t, "25.50", o.TotalAmount().String())
	})
}

func TestOrder_MarkProcessed(t *testing.T) {
	t.Run("transitions received order", func(t *testing.T) {
		o, err := order.NewOrder("EXT-1", validProducts(t))
		require.NoError(t, err)

		require.NoError(t, o.MarkProcessed())

		assert.Equal(t, order.Processed, o.Status())
		require.NotNil(t, o.ProcessedAt())
		assert.WithinDuration(t, time.Now().UTC(), *o.ProcessedAt(), time.Minute)
	})

	t.Run("rejects duplicate order", func(t *testing.T) {
		o, err := order.NewOrder("EXT-1", validProducts(t))
		require.NoError(t, err)
		o.MarkDuplicate()

		err = o.MarkProcessed()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Duplicate is not a valid status to process")
		assert.Equal(t, order.Duplicate, o.Status())
		assert.Nil(t, o.ProcessedAt())
	})

	t.Run("rejects errored order and surfaces its message", func(t *testing.T) {
		o, err := order.NewOrder("EXT-1", validProducts(t))
		require.NoError(t, err)
		o.MarkError("storage unavailable")

		err = o.MarkProcessed()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Error is not a valid status to process")
		assert.Contains(t, err.Error(), "storage unavailable")
	})

	t.Run("rejects already processed order", func(t *testing.T) {
		o, err := order.NewOrder("EXT-1", validProducts(t))
		require.NoError(t, err)
		require.NoError(t, o.MarkProcessed())
		firstProcessedAt := *o.ProcessedAt()

		require.Error(t, o.MarkProcessed())
		assert.Equal(t, firstProcessedAt, *o.ProcessedAt())
	})
}

func TestOrder_MarkDuplicate(t *testing.T) {
	o, err := order.NewOrder("EXT-1", validProducts(t))
	require.NoError(t, err)

	o.MarkDuplicate()

	assert.Equal(t, order.Duplicate, o.Status())
	assert.Equal(t, "duplicate order detected", o.ErrorMessage())
	assert.Nil(t, o.ProcessedAt())
}

func TestOrder_MarkError(t *testing.T) {
	t.Run("stores the message", func(t *testing.T) {
		o, err := order.NewOrder("EXT-1", validProducts(t))
		require.NoError(t, err)

		o.MarkError("insert failed")

		assert.Equal(t, order.Error, o.Status())
		assert.Equal(t, "insert failed", o.ErrorMessage())
	})

	t.Run("defaults empty message", func(t *testing.T) {
		o, err := order.NewOrder("EXT-1", validProducts(t))
		require.NoError(t, err)

		o.MarkError("")

		assert.Equal(t, "unknown error", o.ErrorMessage())
	})
}

func TestRestoreOrder(t *testing.T) {
	newStored := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder("EXT-1", validProducts(t))
		require.NoError(t, err)
		return o
	}

	t.Run("round trips a constructed order", func(t *testing.T) {
		original := newStored(t)

		restored, err := order.RestoreOrder(
			original.ID(),
			original.ExternalID(),
			original.Status(),
			original.CreatedAt(),
			original.ProcessedAt(),
			original.TotalAmount(),
			original.ErrorMessage(),
			original.Fingerprint(),
			original.Products(),
		)

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(original))
		assert.Equal(t, original.ExternalID(), restored.ExternalID())
		assert.Equal(t, original.Status(), restored.Status())
		assert.True(t, restored.TotalAmount().IsEqual(original.TotalAmount()))
		assert.True(t, restored.Fingerprint().IsEqual(original.Fingerprint()))
	})

	t.Run("rejects mismatched total", func(t *testing.T) {
		original := newStored(t)
		wrongTotal := mustMoney(t, 999.99)

		_, err := order.RestoreOrder(
			original.ID(),
			original.ExternalID(),
			original.Status(),
			original.CreatedAt(),
			nil,
			wrongTotal,
			"",
			original.Fingerprint(),
			original.Products(),
		)

		require.ErrorIs(t, err, order.ErrTotalAmountMismatch)
	})

	t.Run("rejects empty fingerprint", func(t *testing.T) {
		original := newStored(t)

		_, err := order.RestoreOrder(
			original.ID(),
			original.ExternalID(),
			original.Status(),
			original.CreatedAt(),
			nil,
			original.TotalAmount(),
			"",
			"",
			original.Products(),
		)

		require.ErrorIs(t, err, order.ErrFingerprintIsRequired)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		original := newStored(t)

		_, err := order.RestoreOrder(
			original.ID(),
			original.ExternalID(),
			order.Unknown,
			original.CreatedAt(),
			nil,
			original.TotalAmount(),
			"",
			original.Fingerprint(),
			original.Products(),
		)

		require.Error(t, err)
	})

	t.Run("rejects missing products", func(t *testing.T) {
		original := newStored(t)

		_, err := order.RestoreOrder(
			original.ID(),
			original.ExternalID(),
			original.Status(),
			original.CreatedAt(),
			nil,
			original.TotalAmount(),
			"",
			original.Fingerprint(),
			nil,
		)

		require.ErrorIs(t, err, order.ErrOrderHasNoProducts)
	})
}

func TestNewOrderProcessedEvent(t *testing.T) {
	o, err := order.NewOrder("EXT-1", validProducts(t))
	require.NoError(t, err)
	require.NoError(t, o.MarkProcessed())

	event := order.NewOrderProcessedEvent(o)

	assert.Equal(t, order.OrderProcessedEventName, event.EventName)
	assert.Equal(t, o.ID().String(), event.OrderID)
	assert.True(t, event.TotalAmount.Equal(o.TotalAmount().Amount()))
	assert.Equal(t, "Processed", event.Status)
	require.Len(t, event.Products, 2)
	assert.Equal(t, "Widget", event.Products[0].Name)
	assert.Equal(t, 2, event.Products[0].Quantity)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, time.Minute)
}
