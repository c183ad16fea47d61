package audit

import (
	"time"

	"gst-lifecycle/internal/domain/document"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeApplied           Outcome = "APPLIED"
	OutcomeRejectedByRule    Outcome = "REJECTED_BY_RULE"
	OutcomeRejectedByGateway Outcome = "REJECTED_BY_GATEWAY"
	OutcomeFailed            Outcome = "FAILED"
)

func (o Outcome) String() string {
	return string(o)
}

func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeApplied, OutcomeRejectedByRule, OutcomeRejectedByGateway, OutcomeFailed:
		return true
	default:
		return false
	}
}

// Failure reasons recorded in Record.Rule when Outcome is FAILED.
const (
	FailureAuth     = "auth"
	FailureTimeout  = "timeout"
	FailureGateway  = "gateway"
	FailureNotFound = "not-found"
	FailureConflict = "conflict"
	FailureStore    = "store"
)

// Record is the immutable trace of one transition attempt.
type Record struct {
	ID                   uuid.UUID           `json:"id"`
	DocumentNumber       string              `json:"document_number"`
	Transition           document.Transition `json:"transition"`
	Outcome              Outcome             `json:"outcome"`
	Rule                 string              `json:"rule,omitempty"`
	Message              string              `json:"message,omitempty"`
	GatewayCorrelationID string              `json:"gateway_correlation_id,omitempty"`
	GatewayStatusCode    string              `json:"gateway_status_code,omitempty"`
	Actor                string              `json:"actor,omitempty"`
	OccurredAt           time.Time           `json:"occurred_at"`
}

// NewRecord stamps the record at microsecond precision so that every store orders and pages
// it identically.
func NewRecord(number string, transition document.Transition, outcome Outcome, actor string, now time.Time) *Record {
	return &Record{
		ID:             uuid.New(),
		DocumentNumber: number,
		Transition:     transition,
		Outcome:        outcome,
		Actor:          actor,
		OccurredAt:     now.Truncate(time.Microsecond),
	}
}
