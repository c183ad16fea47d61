package response

import (
	"time"

	"gst-lifecycle/internal/domain/audit"
	"gst-lifecycle/internal/domain/document"
	"gst-lifecycle/internal/usecase/commands"
	"gst-lifecycle/internal/usecase/queries"
)

type DocumentResponse struct {
	Number      string           `json:"number"`
	Kind        string           `json:"kind"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	StatusSince time.Time        `json:"status_since"`
	ValidUntil  *time.Time       `json:"valid_until,omitempty"`
	Version     int64            `json:"version"`
	Payload     document.Payload `json:"payload"`
}

func FromDocument(d *document.Document) *DocumentResponse {
	if d == nil {
		return nil
	}
	return &DocumentResponse{
		Number:      d.Number(),
		Kind:        d.Kind().String(),
		Status:      d.Status().String(),
		CreatedAt:   d.CreatedAt(),
		UpdatedAt:   d.UpdatedAt(),
		StatusSince: d.StatusSince(),
		ValidUntil:  d.ValidUntil(),
		Version:     d.Version(),
		Payload:     d.Payload(),
	}
}

type AuditRecordResponse struct {
	ID                   string    `json:"id"`
	DocumentNumber       string    `json:"document_number"`
	Transition           string    `json:"transition"`
	Outcome              string    `json:"outcome"`
	Rule                 string    `json:"rule,omitempty"`
	Message              string    `json:"message,omitempty"`
	GatewayCorrelationID string    `json:"gateway_correlation_id,omitempty"`
	GatewayStatusCode    string    `json:"gateway_status_code,omitempty"`
	Actor                string    `json:"actor,omitempty"`
	OccurredAt           time.Time `json:"occurred_at"`
}

func FromAuditRecord(r *audit.Record) *AuditRecordResponse {
	if r == nil {
		return nil
	}
	return &AuditRecordResponse{
		ID:                   r.ID.String(),
		DocumentNumber:       r.DocumentNumber,
		Transition:           r.Transition.String(),
		Outcome:              r.Outcome.String(),
		Rule:                 r.Rule,
		Message:              r.Message,
		GatewayCorrelationID: r.GatewayCorrelationID,
		GatewayStatusCode:    r.GatewayStatusCode,
		Actor:                r.Actor,
		OccurredAt:           r.OccurredAt,
	}
}

type AuditTrailResponse struct {
	Records    []*AuditRecordResponse `json:"records"`
	NextCursor string                 `json:"next_cursor,omitempty"`
}

func FromAuditTrailPage(p *queries.AuditTrailPage) *AuditTrailResponse {
	out := &AuditTrailResponse{Records: make([]*AuditRecordResponse, len(p.Records))}
	for i, r := range p.Records {
		out.Records[i] = FromAuditRecord(r)
	}
	if p.Next != nil {
		out.NextCursor = p.Next.After
	}
	return out
}

// TransitionResponse is returned both when a transition applies and when a rule or the gateway
// declines it.
type TransitionResponse struct {
	Applied  bool                 `json:"applied"`
	Reason   string               `json:"reason,omitempty"`
	Message  string               `json:"message,omitempty"`
	Document *DocumentResponse    `json:"document,omitempty"`
	Audit    *AuditRecordResponse `json:"audit,omitempty"`
}

func FromResult(r *commands.Result) *TransitionResponse {
	return &TransitionResponse{
		Applied:  r.Applied,
		Reason:   r.Reason,
		Message:  r.Message,
		Document: FromDocument(r.Document),
		Audit:    FromAuditRecord(r.Audit),
	}
}
