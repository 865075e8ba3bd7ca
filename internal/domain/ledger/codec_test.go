//go:build unit

package ledger_test

import (
	"testing"

	"github.com/stewwratt/unbooked-demo/internal/domain/ledger"
	"github.com/stewwratt/unbooked-demo/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("round-trips an encoded ledger unchanged", func(t *testing.T) {
		offer := builder.NewOfferBuilder().BuildDomain()
		booking := builder.NewBookingBuilder().WithOffer(offer).BuildDomain()
		original := builder.NewSlotBuilder().Booked(booking).BuildDomain()

		raw, err := ledger.Encode(original)
		require.NoError(t, err)

		decoded := ledger.Decode(raw)
		if diff := cmp.Diff(original, decoded); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("survives rich-text decoration around the JSON", func(t *testing.T) {
		booking := builder.NewBookingBuilder().BuildDomain()
		original := builder.NewSlotBuilder().Booked(booking).BuildDomain()

		raw, err := ledger.Encode(original)
		require.NoError(t, err)

		decorated := "<p>" + raw + "</p>"
		decorated = "<span>" + decorated + "</span>​"

		decoded := ledger.Decode(decorated)
		if diff := cmp.Diff(original, decoded); diff != "" {
			t.Errorf("decorated round trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("entity-encoded quotes and nbsp are normalized before parsing", func(t *testing.T) {
		raw := `{&quot;status&quot;:&quot;available&quot;,&quot;originalPrice&quot;:8500,&quot;bookings&quot;:[]}`
		raw = " " + raw + "\n"

		decoded := ledger.Decode(raw)
		assert.Equal(t, ledger.StatusAvailable, decoded.Status)
		assert.Equal(t, int64(8500), decoded.OriginalPrice)
	})

	t.Run("non-JSON content degrades to the default ledger", func(t *testing.T) {
		for _, raw := range []string{
			"",
			"Haircut with Steven",
			"<b>free text</b> description",
			`{"status": truncated`,
		} {
			decoded := ledger.Decode(raw)
			assert.Equal(t, ledger.Default(), decoded, "input %q", raw)
		}
	})

	t.Run("legacy price marker seeds the original price", func(t *testing.T) {
		decoded := ledger.Decode("Haircut. Price: 7500")
		assert.Equal(t, ledger.StatusAvailable, decoded.Status)
		assert.Equal(t, int64(7500), decoded.OriginalPrice)
		assert.Empty(t, decoded.Bookings)
	})

	t.Run("invalid status and non-positive price fall back to defaults", func(t *testing.T) {
		decoded := ledger.Decode(`{"status":"cancelled","originalPrice":-5,"bookings":[]}`)
		assert.Equal(t, ledger.StatusAvailable, decoded.Status)
		assert.Equal(t, ledger.DefaultOriginalPrice, decoded.OriginalPrice)
	})

	t.Run("missing bookings array decodes as empty, not nil", func(t *testing.T) {
		decoded := ledger.Decode(`{"status":"available","originalPrice":9000}`)
		require.NotNil(t, decoded.Bookings)
		assert.Empty(t, decoded.Bookings)
	})
}

func TestEncode(t *testing.T) {
	t.Run("refuses a ledger that violates invariants", func(t *testing.T) {
		bad := builder.NewSlotBuilder().BuildDomain()
		bad.Status = ledger.StatusBooked // booked with no bookings

		_, err := ledger.Encode(bad)
		assert.ErrorIs(t, err, ledger.ErrBookedWithoutBook)
	})

	t.Run("refuses a split that does not sum to the offer amount", func(t *testing.T) {
		offer := builder.NewOfferBuilder().With(func(b *builder.OfferBuilder) {
			b.PartialAmount = 1
		}).BuildDomain()
		booking := builder.NewBookingBuilder().WithOffer(offer).BuildDomain()
		bad := builder.NewSlotBuilder().Booked(booking).BuildDomain()

		_, err := ledger.Encode(bad)
		assert.ErrorIs(t, err, ledger.ErrSplitMismatch)
	})
}
