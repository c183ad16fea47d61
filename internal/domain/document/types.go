package document

import "strings"

type Kind string

const (
	KindEWayBill Kind = "EWAY_BILL"
	KindEInvoice Kind = "E_INVOICE"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindEWayBill, KindEInvoice:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusReceived  Status = "RECEIVED"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
	StatusExpired   Status = "EXPIRED"
	StatusGenerated Status = "GENERATED"
)

func (s Status) String() string {
	return string(s)
}

// IsValidFor reports whether s belongs to the status set of kind k.
func (s Status) IsValidFor(k Kind) bool {
	switch k {
	case KindEWayBill:
		switch s {
		case StatusActive, StatusReceived, StatusAccepted, StatusRejected, StatusCancelled, StatusExpired:
			return true
		}
	case KindEInvoice:
		switch s {
		case StatusGenerated, StatusCancelled:
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

type Transition string

const (
	TransitionGenerate      Transition = "generate"
	TransitionReceive       Transition = "receive"
	TransitionAccept        Transition = "accept"
	TransitionReject        Transition = "reject"
	TransitionUpdateVehicle Transition = "update-vehicle"
	TransitionCancel        Transition = "cancel"
	TransitionExpire        Transition = "expire"
)

func (t Transition) String() string {
	return string(t)
}

func (t Transition) IsValid() bool {
	switch t {
	case TransitionGenerate, TransitionReceive, TransitionAccept, TransitionReject,
		TransitionUpdateVehicle, TransitionCancel, TransitionExpire:
		return true
	default:
		return false
	}
}

// TransportMode follows the gateway's Part-B mode codes.
type TransportMode string

const (
	TransportRoad TransportMode = "ROAD"
	TransportRail TransportMode = "RAIL"
	TransportAir  TransportMode = "AIR"
	TransportShip TransportMode = "SHIP"
)

// ParseTransportMode trims and upper-cases a submitted mode; the result may still be invalid.
func ParseTransportMode(s string) TransportMode {
	return TransportMode(strings.ToUpper(strings.TrimSpace(s)))
}

func (m TransportMode) IsValid() bool {
	switch m {
	case TransportRoad, TransportRail, TransportAir, TransportShip:
		return true
	default:
		return false
	}
}
