//go:build unit || e2e

package builder

import (
	"time"

	"gst-lifecycle/internal/domain/document"
	"gst-lifecycle/internal/domain/rules"
)

type DocumentBuilder struct {
	Number      string
	Kind        document.Kind
	Status      document.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
	StatusSince time.Time
	ValidUntil  *time.Time
	Version     int64
	Payload     document.Payload
	Now         time.Time
}

// FixtureNow is the wall clock every fixture is built against.
var FixtureNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// NewDocumentBuilder defaults to the EWB001 fixture: a received E-Way Bill, 10 hours old.
func NewDocumentBuilder() *DocumentBuilder {
	now := FixtureNow
	received := now.Add(-10 * time.Hour)
	validUntil := received.Add(24 * time.Hour)
	return &DocumentBuilder{
		Number:      "EWB001",
		Kind:        document.KindEWayBill,
		Status:      document.StatusReceived,
		CreatedAt:   received,
		UpdatedAt:   received,
		StatusSince: received,
		ValidUntil:  &validUntil,
		Version:     1,
		Payload:     DefaultPayload(),
		Now:         now,
	}
}

func DefaultPayload() document.Payload {
	item := document.LineItem{
		ProductName:  "Steel Rods",
		HSNCode:      "7214",
		Quantity:     "10",
		Unit:         "NOS",
		TaxableValue: "1000.00",
		CGSTRate:     "9",
		SGSTRate:     "9",
	}.Priced()
	return document.Payload{
		SourceRef:    "INV-2025-0001",
		DocumentDate: "14/03/2025",
		Seller: document.Party{
			GSTIN:     "29AAACB1234F1Z5",
			Name:      "Bharat Metals",
			StateCode: "29",
			Pincode:   "560001",
		},
		Buyer: document.Party{
			GSTIN:     "29AABCU9603R1ZM",
			Name:      "Urban Builders",
			StateCode: "29",
			Pincode:   "560034",
		},
		Items: []document.LineItem{item},
		Transport: &document.Transport{
			Mode:          document.TransportRoad,
			VehicleNumber: "KA01AB1234",
			DistanceKm:    120,
		},
	}
}

func (b *DocumentBuilder) With(mutate func(*DocumentBuilder)) *DocumentBuilder {
	mutate(b)
	return b
}

func (b *DocumentBuilder) BuildDomain() (*document.Document, error) {
	return document.ReconstructDocument(
		b.Number, b.Kind, b.Status,
		b.CreatedAt, b.UpdatedAt, b.StatusSince,
		b.ValidUntil, b.Version, b.Payload,
	)
}

// MustBuildDomain panics on invalid builder state; test fixtures are expected to be valid.
func (b *DocumentBuilder) MustBuildDomain() *document.Document {
	doc, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return doc
}

func (b *DocumentBuilder) BuildFacts() rules.Facts {
	return rules.Facts{
		Kind:        b.Kind,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		StatusSince: b.StatusSince,
		ValidUntil:  b.ValidUntil,
		Now:         b.Now,
	}
}

func (b *DocumentBuilder) WithNumber(number string) *DocumentBuilder {
	b.Number = number
	return b
}

func (b *DocumentBuilder) WithStatus(status document.Status) *DocumentBuilder {
	b.Status = status
	return b
}

func (b *DocumentBuilder) WithVersion(version int64) *DocumentBuilder {
	b.Version = version
	return b
}

// WithStatusAge moves the status anchor so that age has elapsed at b.Now.
func (b *DocumentBuilder) WithStatusAge(age time.Duration) *DocumentBuilder {
	b.StatusSince = b.Now.Add(-age)
	return b
}

// WithAge moves the creation time so that age has elapsed at b.Now.
func (b *DocumentBuilder) WithAge(age time.Duration) *DocumentBuilder {
	b.CreatedAt = b.Now.Add(-age)
	b.UpdatedAt = b.CreatedAt
	b.StatusSince = b.CreatedAt
	return b
}

func (b *DocumentBuilder) WithValidUntil(t *time.Time) *DocumentBuilder {
	b.ValidUntil = t
	return b
}

func (b *DocumentBuilder) AsActive() *DocumentBuilder {
	b.Kind = document.KindEWayBill
	b.Status = document.StatusActive
	return b
}

func (b *DocumentBuilder) AsEInvoice() *DocumentBuilder {
	b.Number = "IRN0001"
	b.Kind = document.KindEInvoice
	b.Status = document.StatusGenerated
	b.ValidUntil = nil
	b.Payload.Transport = nil
	return b
}
