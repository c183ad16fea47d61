package shared

import (
	"context"
	"time"

	"gst-lifecycle/internal/domain/audit"
	"gst-lifecycle/internal/domain/document"
	"gst-lifecycle/internal/pkg/errs"

	"github.com/google/uuid"
)

// DocumentStore keeps one current snapshot per document number. Implementations report
// failures as infra.RepositoryError with kinds NOT_FOUND, VERSION_CONFLICT, DUPLICATE_KEY
// or DB_FAILURE.
type DocumentStore interface {
	Get(ctx context.Context, number string) (*document.Document, error)
	Insert(ctx context.Context, doc *document.Document) (*document.Document, error)
	// ConditionalReplace swaps in doc only when the stored version equals expectedVersion,
	// and returns the stored snapshot with its new version.
	ConditionalReplace(ctx context.Context, number string, expectedVersion int64, doc *document.Document) (*document.Document, error)
}

// AuditPage selects records strictly after (AfterTime, AfterID) in occurrence order.
// A zero AfterTime starts from the oldest record; a zero Limit returns everything.
type AuditPage struct {
	AfterTime time.Time
	AfterID   uuid.UUID
	Limit     int
}

// AuditLog is append-only.
type AuditLog interface {
	Append(ctx context.Context, rec *audit.Record) error
	ListByDocument(ctx context.Context, number string, page AuditPage) ([]*audit.Record, error)
}

var ErrAuthFailed = errs.New("gateway authentication failed")

type Credentials struct {
	Username     string
	Password     string
	ClientID     string
	ClientSecret string
	GSTIN        string
}

type CredentialsProvider interface {
	Credentials(ctx context.Context) (Credentials, error)
}

// Token is opaque to everything except the gateway that issued it.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

type GatewayResponse struct {
	StatusCode     string
	Description    string
	CorrelationID  string
	DocumentNumber string
	AckNumber      string
	ValidUntil     *time.Time
}

type VehiclePayload struct {
	VehicleNumber string
	TransportMode document.TransportMode
	DistanceKm    int
	TransporterID string
	FromPlace     string
	FromState     string
	ReasonCode    string
	Remarks       string
}

type CancelPayload struct {
	ReasonCode string
	Remarks    string
}

type GeneratePayload struct {
	Kind    document.Kind
	Payload document.Payload
}

// FetchedDocument is a document another party raised against our GSTIN.
type FetchedDocument struct {
	Response   GatewayResponse
	Kind       document.Kind
	Payload    document.Payload
	ValidUntil *time.Time
}

// ComplianceGateway is the government-facing authority. Status codes are gateway-defined;
// callers decide which of them mean success.
type ComplianceGateway interface {
	// Authenticate marks credential rejections with ErrAuthFailed.
	Authenticate(ctx context.Context, creds Credentials) (Token, error)
	AcceptDocument(ctx context.Context, number string, token Token) (GatewayResponse, error)
	RejectDocument(ctx context.Context, number, reason string, token Token) (GatewayResponse, error)
	UpdateVehicle(ctx context.Context, number string, v VehiclePayload, token Token) (GatewayResponse, error)
	CancelDocument(ctx context.Context, kind document.Kind, number string, c CancelPayload, token Token) (GatewayResponse, error)
	GenerateDocument(ctx context.Context, p GeneratePayload, token Token) (GatewayResponse, error)
	FetchDocument(ctx context.Context, number string, token Token) (*FetchedDocument, error)
}
