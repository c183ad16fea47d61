// Package rules holds the pure predicates that decide whether a lifecycle transition is legal.
// Predicates never touch I/O and never read the wall clock; callers pass Facts taken from the
// stored snapshot together with the engine's own notion of now.
package rules

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gst-lifecycle/internal/domain/document"
	"gst-lifecycle/internal/domain/tax"
)

const (
	AcceptRejectWindow    = 72 * time.Hour
	CancelWindow          = 24 * time.Hour
	MinRejectReasonLength = 10
	MaxCancelRemarks      = 100
)

type Code string

const (
	CodeInvalidStatus    Code = "invalid-status"
	CodeWindowExpired    Code = "window-expired"
	CodeReasonTooShort   Code = "reason-too-short"
	CodeMissingFields    Code = "missing-fields"
	CodeUnsupportedKind  Code = "unsupported-kind"
	CodeRemarksTooLong   Code = "remarks-too-long"
	CodeNotExpired       Code = "not-expired"
	CodeMixedTaxRegime   Code = "mixed-tax-regime"
	CodeInvalidTransport Code = "invalid-transport"
)

type Decision struct {
	Allowed bool
	Code    Code
	Message string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(code Code, format string, args ...any) Decision {
	return Decision{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Facts are the stored attributes a predicate may consult. Timestamps come from the store,
// never from the request.
type Facts struct {
	Kind        document.Kind
	Status      document.Status
	CreatedAt   time.Time
	StatusSince time.Time
	ValidUntil  *time.Time
	Now         time.Time
}

func FactsOf(doc *document.Document, now time.Time) Facts {
	return Facts{
		Kind:        doc.Kind(),
		Status:      doc.Status(),
		CreatedAt:   doc.CreatedAt(),
		StatusSince: doc.StatusSince(),
		ValidUntil:  doc.ValidUntil(),
		Now:         now,
	}
}

// withinWindow allows an elapsed time of exactly window and denies anything beyond it.
func withinWindow(now, anchor time.Time, window time.Duration) bool {
	return !(now.Sub(anchor) > window)
}

func requireReceivedEWayBill(f Facts) (Decision, bool) {
	if f.Kind != document.KindEWayBill {
		return Deny(CodeUnsupportedKind, "%s documents cannot be accepted or rejected", f.Kind), false
	}
	if f.Status != document.StatusReceived {
		return Deny(CodeInvalidStatus, "document must be %s (current status: %s)", document.StatusReceived, f.Status), false
	}
	if !withinWindow(f.Now, f.StatusSince, AcceptRejectWindow) {
		return Deny(CodeWindowExpired, "the %s window since receipt has passed", AcceptRejectWindow), false
	}
	return Decision{}, true
}

func CanAccept(f Facts) Decision {
	if d, ok := requireReceivedEWayBill(f); !ok {
		return d
	}
	return Allow()
}

func CanReject(f Facts, reason string) Decision {
	if d, ok := requireReceivedEWayBill(f); !ok {
		return d
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(reason)); n < MinRejectReasonLength {
		return Deny(CodeReasonTooShort, "reject reason must be at least %d characters (got %d)", MinRejectReasonLength, n)
	}
	return Allow()
}

// VehicleInput is the Part-B update as submitted. A nil DistanceKm means the field was
// not supplied; zero is a legitimate distance.
type VehicleInput struct {
	VehicleNumber string
	TransportMode string
	DistanceKm    *int
}

func CanUpdateVehicle(f Facts, v VehicleInput) Decision {
	if f.Kind != document.KindEWayBill {
		return Deny(CodeUnsupportedKind, "%s documents carry no vehicle details", f.Kind)
	}
	if f.Status != document.StatusActive {
		return Deny(CodeInvalidStatus, "document must be %s (current status: %s)", document.StatusActive, f.Status)
	}

	var missing []string
	if strings.TrimSpace(v.VehicleNumber) == "" {
		missing = append(missing, "vehicle_number")
	}
	if strings.TrimSpace(v.TransportMode) == "" {
		missing = append(missing, "transport_mode")
	}
	if v.DistanceKm == nil {
		missing = append(missing, "distance")
	}
	if len(missing) > 0 {
		return Deny(CodeMissingFields, "missing required fields: %s", strings.Join(missing, ", "))
	}
	if !document.ParseTransportMode(v.TransportMode).IsValid() {
		return Deny(CodeInvalidTransport, "unknown transport mode %q", v.TransportMode)
	}
	if *v.DistanceKm < 0 {
		return Deny(CodeInvalidTransport, "distance cannot be negative")
	}
	return Allow()
}

type CancelInput struct {
	ReasonCode string
	Remarks    string
}

func CanCancel(f Facts, c CancelInput) Decision {
	var cancellable document.Status
	switch f.Kind {
	case document.KindEWayBill:
		cancellable = document.StatusActive
	case document.KindEInvoice:
		cancellable = document.StatusGenerated
	default:
		return Deny(CodeUnsupportedKind, "unknown document kind %s", f.Kind)
	}
	if f.Status != cancellable {
		return Deny(CodeInvalidStatus, "document must be %s (current status: %s)", cancellable, f.Status)
	}
	if !withinWindow(f.Now, f.CreatedAt, CancelWindow) {
		return Deny(CodeWindowExpired, "the %s cancellation window since generation has passed", CancelWindow)
	}
	if strings.TrimSpace(c.ReasonCode) == "" {
		return Deny(CodeMissingFields, "missing required fields: reason_code")
	}
	if utf8.RuneCountInString(strings.TrimSpace(c.Remarks)) > MaxCancelRemarks {
		return Deny(CodeRemarksTooLong, "remarks must be at most %d characters", MaxCancelRemarks)
	}
	return Allow()
}

func CanExpire(f Facts) Decision {
	if f.Kind != document.KindEWayBill {
		return Deny(CodeUnsupportedKind, "%s documents do not expire", f.Kind)
	}
	if f.Status != document.StatusActive {
		return Deny(CodeInvalidStatus, "document must be %s (current status: %s)", document.StatusActive, f.Status)
	}
	if f.ValidUntil == nil || !f.Now.After(*f.ValidUntil) {
		return Deny(CodeNotExpired, "document is still within its validity period")
	}
	return Allow()
}

func CanReceive(kind document.Kind) Decision {
	if kind != document.KindEWayBill {
		return Deny(CodeUnsupportedKind, "only %s documents can be received", document.KindEWayBill)
	}
	return Allow()
}

type GenerateInput struct {
	Kind      document.Kind
	SourceRef string
	Seller    document.Party
	Buyer     document.Party
	Items     []tax.ItemInput
	Transport *VehicleInput
}

// CanGenerate checks the payload-level rules the tax calculator deliberately leaves out,
// including that a line is taxed either as interstate (IGST) or intrastate (CGST+SGST).
func CanGenerate(g GenerateInput) Decision {
	if !g.Kind.IsValid() {
		return Deny(CodeUnsupportedKind, "unknown document kind %q", g.Kind)
	}

	var missing []string
	if strings.TrimSpace(g.SourceRef) == "" {
		missing = append(missing, "source_ref")
	}
	if strings.TrimSpace(g.Seller.GSTIN) == "" {
		missing = append(missing, "seller.gstin")
	}
	if strings.TrimSpace(g.Buyer.GSTIN) == "" {
		missing = append(missing, "buyer.gstin")
	}
	if len(g.Items) == 0 {
		missing = append(missing, "items")
	}
	if g.Kind == document.KindEWayBill {
		if g.Transport == nil || strings.TrimSpace(g.Transport.TransportMode) == "" {
			missing = append(missing, "transport.mode")
		}
		if g.Transport == nil || g.Transport.DistanceKm == nil {
			missing = append(missing, "transport.distance")
		}
	}
	if len(missing) > 0 {
		return Deny(CodeMissingFields, "missing required fields: %s", strings.Join(missing, ", "))
	}

	if g.Transport != nil {
		if strings.TrimSpace(g.Transport.TransportMode) != "" && !document.ParseTransportMode(g.Transport.TransportMode).IsValid() {
			return Deny(CodeInvalidTransport, "unknown transport mode %q", g.Transport.TransportMode)
		}
		if g.Transport.DistanceKm != nil && *g.Transport.DistanceKm < 0 {
			return Deny(CodeInvalidTransport, "distance cannot be negative")
		}
	}

	for i, it := range g.Items {
		interstate := tax.ParseAmount(it.IGSTRate).IsPositive()
		intrastate := tax.ParseAmount(it.CGSTRate).IsPositive() || tax.ParseAmount(it.SGSTRate).IsPositive()
		if interstate && intrastate {
			return Deny(CodeMixedTaxRegime, "items[%d] mixes IGST with CGST/SGST", i)
		}
	}
	return Allow()
}
