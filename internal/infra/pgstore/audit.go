package pgstore

import (
	"context"
	"log/slog"
	"time"

	"gst-lifecycle/internal/domain/audit"
	"gst-lifecycle/internal/domain/document"
	"gst-lifecycle/internal/infra"
	"gst-lifecycle/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	insertAuditSQL = `
INSERT INTO audit_records (id, document_number, transition, outcome, rule, message,
	gateway_correlation_id, gateway_status_code, actor, occurred_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	selectAuditSQL = `
SELECT id, document_number, transition, outcome, rule, message,
	gateway_correlation_id, gateway_status_code, actor, occurred_at
FROM audit_records
WHERE document_number = $1 AND (occurred_at, id) > ($2, $3)
ORDER BY occurred_at, id`
)

// Earlier than any timestamp the engine records.
var auditEpoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

type AuditRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewAuditRepository(db DBTX, logger *slog.Logger) *AuditRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditRepository{db: db, logger: logger}
}

func (r *AuditRepository) Append(ctx context.Context, rec *audit.Record) error {
	_, err := r.db.Exec(ctx, insertAuditSQL,
		rec.ID,
		rec.DocumentNumber,
		rec.Transition.String(),
		rec.Outcome.String(),
		rec.Rule,
		rec.Message,
		rec.GatewayCorrelationID,
		rec.GatewayStatusCode,
		rec.Actor,
		rec.OccurredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "audit record already exists", err)
		}
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to append audit record", err)
	}
	return nil
}

func (r *AuditRepository) ListByDocument(ctx context.Context, number string, page shared.AuditPage) ([]*audit.Record, error) {
	after := page.AfterTime
	if after.IsZero() {
		after = auditEpoch
	}

	query := selectAuditSQL
	args := []any{number, after, page.AfterID}
	if page.Limit > 0 {
		query += ` LIMIT $4`
		args = append(args, page.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list audit records", err)
	}
	defer rows.Close()

	var records []*audit.Record
	for rows.Next() {
		var (
			rec                 audit.Record
			id                  uuid.UUID
			transition, outcome string
		)
		if err := rows.Scan(&id, &rec.DocumentNumber, &transition, &outcome, &rec.Rule, &rec.Message,
			&rec.GatewayCorrelationID, &rec.GatewayStatusCode, &rec.Actor, &rec.OccurredAt); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan audit record", err)
		}
		rec.ID = id
		rec.Transition = document.Transition(transition)
		rec.Outcome = audit.Outcome(outcome)
		rec.OccurredAt = rec.OccurredAt.UTC()
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate audit records", err)
	}
	return records, nil
}
