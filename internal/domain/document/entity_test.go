//go:build unit

package document_test

import (
	"testing"
	"time"

	"gst-lifecycle/internal/domain/document"
	"gst-lifecycle/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.DocumentBuilder)
	errIs  error
}

func TestReconstructDocument(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewDocumentBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, "EWB001", actual.Number())
		assert.Equal(t, document.KindEWayBill, actual.Kind())
		assert.Equal(t, document.StatusReceived, actual.Status())
		assert.Equal(t, b.StatusSince, actual.StatusSince())
		assert.Equal(t, int64(1), actual.Version())
		assert.False(t, actual.IsTerminal())
	})

	runCases(t, []testCase{
		{
			name:   "unknown kind",
			mutate: func(b *builder.DocumentBuilder) { b.Kind = "CREDIT_NOTE" },
			errIs:  document.ErrInvalidKind,
		},
		{
			name:   "e-invoice cannot be received",
			mutate: func(b *builder.DocumentBuilder) { b.Kind = document.KindEInvoice },
			errIs:  document.ErrInvalidStatus,
		},
		{
			name:   "e-way bill cannot be generated status",
			mutate: func(b *builder.DocumentBuilder) { b.Status = document.StatusGenerated },
			errIs:  document.ErrInvalidStatus,
		},
		{
			name:   "cancelled e-invoice",
			mutate: func(b *builder.DocumentBuilder) { b.AsEInvoice().WithStatus(document.StatusCancelled) },
		},
	})
}

func TestNewDocuments(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	validUntil := now.Add(24 * time.Hour)

	t.Run("generated e-way bill is active", func(t *testing.T) {
		doc, err := document.NewGeneratedDocument(" EWB100 ", document.KindEWayBill, builder.DefaultPayload(), &validUntil, now)
		require.NoError(t, err)
		assert.Equal(t, "EWB100", doc.Number())
		assert.Equal(t, document.StatusActive, doc.Status())
		assert.Equal(t, now, doc.CreatedAt())
		assert.Equal(t, now, doc.StatusSince())
		assert.Equal(t, int64(1), doc.Version())
	})

	t.Run("generated e-invoice", func(t *testing.T) {
		doc, err := document.NewGeneratedDocument("IRN100", document.KindEInvoice, builder.DefaultPayload(), nil, now)
		require.NoError(t, err)
		assert.Equal(t, document.StatusGenerated, doc.Status())
		assert.Nil(t, doc.ValidUntil())
	})

	t.Run("received e-way bill anchors the window at now", func(t *testing.T) {
		doc, err := document.NewReceivedDocument("EWB200", builder.DefaultPayload(), &validUntil, now)
		require.NoError(t, err)
		assert.Equal(t, document.StatusReceived, doc.Status())
		assert.Equal(t, now, doc.StatusSince())
	})

	t.Run("empty number", func(t *testing.T) {
		_, err := document.NewGeneratedDocument("  ", document.KindEWayBill, builder.DefaultPayload(), nil, now)
		assert.ErrorIs(t, err, document.ErrEmptyNumber)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := document.NewGeneratedDocument("X1", "NOTE", builder.DefaultPayload(), nil, now)
		assert.ErrorIs(t, err, document.ErrInvalidKind)
	})
}

func TestDocumentTransitions(t *testing.T) {
	b := builder.NewDocumentBuilder()
	later := b.Now

	t.Run("accept derives a new snapshot", func(t *testing.T) {
		orig := b.MustBuildDomain()
		next := orig.Accepted(later)

		assert.Equal(t, document.StatusAccepted, next.Status())
		assert.Equal(t, later, next.StatusSince())
		assert.Equal(t, later, next.UpdatedAt())
		assert.Equal(t, orig.Version(), next.Version())
		assert.True(t, next.IsTerminal())

		assert.Equal(t, document.StatusReceived, orig.Status())
		assert.Equal(t, b.StatusSince, orig.StatusSince())
	})

	t.Run("reject stores the trimmed reason", func(t *testing.T) {
		next := b.MustBuildDomain().Rejected("  goods damaged in transit ", later)
		assert.Equal(t, document.StatusRejected, next.Status())
		assert.Equal(t, "goods damaged in transit", next.Payload().RejectReason)
	})

	t.Run("vehicle updates append history without changing status", func(t *testing.T) {
		orig := builder.NewDocumentBuilder().AsActive().MustBuildDomain()

		first := orig.VehicleUpdated(document.VehicleUpdate{
			VehicleNumber: "KA01AB9999",
			TransportMode: document.TransportRoad,
			DistanceKm:    0,
			ReasonCode:    "1",
		}, later)
		second := first.VehicleUpdated(document.VehicleUpdate{
			VehicleNumber: "KA02CD1111",
			TransportMode: document.TransportRoad,
			DistanceKm:    45,
		}, later.Add(time.Hour))

		assert.Equal(t, document.StatusActive, second.Status())
		assert.Equal(t, orig.StatusSince(), second.StatusSince())

		history := second.Payload().VehicleHistory
		require.Len(t, history, 2)
		assert.Equal(t, "KA01AB9999", history[0].VehicleNumber)
		assert.Equal(t, later, history[0].UpdatedAt)
		assert.Equal(t, "KA02CD1111", history[1].VehicleNumber)
		assert.Equal(t, later.Add(time.Hour), history[1].UpdatedAt)
		assert.Equal(t, "KA02CD1111", second.Payload().Transport.VehicleNumber)
		assert.Equal(t, 45, second.Payload().Transport.DistanceKm)

		assert.Len(t, first.Payload().VehicleHistory, 1)
		assert.Empty(t, orig.Payload().VehicleHistory)
		assert.Equal(t, "KA01AB1234", orig.Payload().Transport.VehicleNumber)
	})

	t.Run("cancel records the cancellation", func(t *testing.T) {
		next := builder.NewDocumentBuilder().AsActive().MustBuildDomain().Cancelled("2", " duplicate ", later)
		assert.Equal(t, document.StatusCancelled, next.Status())
		require.NotNil(t, next.Payload().Cancellation)
		assert.Equal(t, document.Cancellation{ReasonCode: "2", Remarks: "duplicate", CancelledAt: later}, *next.Payload().Cancellation)
	})

	t.Run("expire", func(t *testing.T) {
		next := builder.NewDocumentBuilder().AsActive().MustBuildDomain().Expired(later)
		assert.Equal(t, document.StatusExpired, next.Status())
	})

	t.Run("WithVersion keeps content", func(t *testing.T) {
		orig := b.MustBuildDomain()
		bumped := orig.WithVersion(7)
		assert.Equal(t, int64(7), bumped.Version())
		diff := cmp.Diff(orig.Payload(), bumped.Payload(), cmpopts.EquateEmpty())
		assert.Empty(t, diff)
	})
}

func TestPayloadClone(t *testing.T) {
	orig := builder.DefaultPayload()
	clone := orig.Clone()

	clone.Items[0].ProductName = "changed"
	clone.Transport.VehicleNumber = "changed"

	assert.Equal(t, "Steel Rods", orig.Items[0].ProductName)
	assert.Equal(t, "KA01AB1234", orig.Transport.VehicleNumber)
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewDocumentBuilder().With(c.mutate).BuildDomain()
			if c.errIs != nil {
				assert.ErrorIs(t, err, c.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, actual)
		})
	}
}
