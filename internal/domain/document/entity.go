package document

import (
	"strings"
	"time"

	"gst-lifecycle/internal/pkg/errs"
)

var (
	ErrEmptyNumber   = errs.New("document number is required")
	ErrInvalidKind   = errs.New("invalid document kind")
	ErrInvalidStatus = errs.New("status not valid for document kind")
)

// Document is one stored snapshot of a compliance document. Snapshots are never mutated;
// every transition derives a new snapshot that the store swaps in under version control.
type Document struct {
	number      string
	kind        Kind
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
	statusSince time.Time
	validUntil  *time.Time
	version     int64
	payload     Payload
}

// NewGeneratedDocument builds the first snapshot after the gateway has issued a number.
func NewGeneratedDocument(number string, kind Kind, payload Payload, validUntil *time.Time, now time.Time) (*Document, error) {
	var status Status
	switch kind {
	case KindEWayBill:
		status = StatusActive
	case KindEInvoice:
		status = StatusGenerated
	default:
		return nil, ErrInvalidKind
	}
	return newDocument(number, kind, status, payload, validUntil, now)
}

// NewReceivedDocument builds the snapshot of an E-Way Bill raised by a counterparty against us.
// now becomes the anchor of the acceptance window.
func NewReceivedDocument(number string, payload Payload, validUntil *time.Time, now time.Time) (*Document, error) {
	return newDocument(number, KindEWayBill, StatusReceived, payload, validUntil, now)
}

func newDocument(number string, kind Kind, status Status, payload Payload, validUntil *time.Time, now time.Time) (*Document, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, ErrEmptyNumber
	}
	return &Document{
		number:      number,
		kind:        kind,
		status:      status,
		createdAt:   now,
		updatedAt:   now,
		statusSince: now,
		validUntil:  copyTime(validUntil),
		version:     1,
		payload:     payload.Clone(),
	}, nil
}

func ReconstructDocument(
	number string,
	kind Kind,
	status Status,
	createdAt, updatedAt, statusSince time.Time,
	validUntil *time.Time,
	version int64,
	payload Payload,
) (*Document, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if !status.IsValidFor(kind) {
		return nil, errs.Wrapf(ErrInvalidStatus, "status %s for kind %s", status, kind)
	}
	return &Document{
		number:      number,
		kind:        kind,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		statusSince: statusSince,
		validUntil:  copyTime(validUntil),
		version:     version,
		payload:     payload.Clone(),
	}, nil
}

func (d *Document) Number() string         { return d.number }
func (d *Document) Kind() Kind             { return d.kind }
func (d *Document) Status() Status         { return d.status }
func (d *Document) CreatedAt() time.Time   { return d.createdAt }
func (d *Document) UpdatedAt() time.Time   { return d.updatedAt }
func (d *Document) StatusSince() time.Time { return d.statusSince }
func (d *Document) ValidUntil() *time.Time { return copyTime(d.validUntil) }
func (d *Document) Version() int64         { return d.version }
func (d *Document) Payload() Payload       { return d.payload.Clone() }

func (d *Document) IsTerminal() bool {
	return d.status.IsTerminal()
}

// derive copies d; the version is left as is so the store can compare against it.
func (d *Document) derive(now time.Time) *Document {
	next := *d
	next.payload = d.payload.Clone()
	next.validUntil = copyTime(d.validUntil)
	next.updatedAt = now
	return &next
}

func (d *Document) withStatus(status Status, now time.Time) *Document {
	next := d.derive(now)
	next.status = status
	next.statusSince = now
	return next
}

func (d *Document) Accepted(now time.Time) *Document {
	return d.withStatus(StatusAccepted, now)
}

func (d *Document) Rejected(reason string, now time.Time) *Document {
	next := d.withStatus(StatusRejected, now)
	next.payload.RejectReason = strings.TrimSpace(reason)
	return next
}

// VehicleUpdated appends upd to the Part-B history and makes it the current transport.
// The status is unchanged.
func (d *Document) VehicleUpdated(upd VehicleUpdate, now time.Time) *Document {
	next := d.derive(now)
	upd.UpdatedAt = now
	next.payload.VehicleHistory = append(next.payload.VehicleHistory, upd)
	next.payload.Transport = &Transport{
		Mode:          upd.TransportMode,
		VehicleNumber: upd.VehicleNumber,
		TransporterID: upd.TransporterID,
		DistanceKm:    upd.DistanceKm,
	}
	return next
}

func (d *Document) Cancelled(reasonCode, remarks string, now time.Time) *Document {
	next := d.withStatus(StatusCancelled, now)
	next.payload.Cancellation = &Cancellation{
		ReasonCode:  reasonCode,
		Remarks:     strings.TrimSpace(remarks),
		CancelledAt: now,
	}
	return next
}

func (d *Document) Expired(now time.Time) *Document {
	return d.withStatus(StatusExpired, now)
}

// WithVersion is used by stores after a successful write.
func (d *Document) WithVersion(version int64) *Document {
	next := *d
	next.payload = d.payload.Clone()
	next.version = version
	return &next
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
