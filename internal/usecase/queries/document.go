package queries

import (
	"context"
	"fmt"
	"io"

	"gst-lifecycle/internal/domain/audit"
	"gst-lifecycle/internal/domain/document"
	"gst-lifecycle/internal/infra"
	"gst-lifecycle/internal/pkg/errs"
	"gst-lifecycle/internal/usecase/shared"
)

var ErrDocumentNotFound = errs.New("queried document not found")

// AuditExporter renders an audit trail into a downloadable workbook. doc may be nil when the
// trail belongs to an attempt that never produced a document.
type AuditExporter interface {
	WriteAuditTrail(w io.Writer, number string, doc *document.Document, records []*audit.Record) error
	ContentType() string
	FileExtension() string
}

type AuditTrailPage struct {
	Records []*audit.Record
	Next    *Cursor
}

type DocumentQueries interface {
	GetDocument(ctx context.Context, number string) (*document.Document, error)
	ListAudit(ctx context.Context, number string, cursor *Cursor, limit int) (*AuditTrailPage, error)
	ExportAudit(ctx context.Context, number string, w io.Writer) error
	ExportFileName(number string) string
	ExportContentType() string
}

type documentQueriesImpl struct {
	store    shared.DocumentStore
	audits   shared.AuditLog
	exporter AuditExporter
}

func NewDocumentQueries(store shared.DocumentStore, audits shared.AuditLog, exporter AuditExporter) DocumentQueries {
	return &documentQueriesImpl{store: store, audits: audits, exporter: exporter}
}

func (q *documentQueriesImpl) GetDocument(ctx context.Context, number string) (*document.Document, error) {
	doc, err := q.store.Get(ctx, number)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

// ListAudit pages through the trail oldest first. Records exist for numbers that were never
// stored (failed lookups, denied generations), so an unknown number yields an empty page.
func (q *documentQueriesImpl) ListAudit(ctx context.Context, number string, cursor *Cursor, limit int) (*AuditTrailPage, error) {
	limit = ValidateLimit(limit)
	page := shared.AuditPage{Limit: limit + 1}
	if cursor != nil && cursor.After != "" {
		after, id, err := DecodeAfterCursor(cursor.After)
		if err != nil {
			return nil, err
		}
		page.AfterTime, page.AfterID = after, id
	}

	rows, err := q.audits.ListByDocument(ctx, number, page)
	if err != nil {
		return nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.OccurredAt, last.ID)}
		rows = rows[:limit]
	}
	return &AuditTrailPage{Records: rows, Next: next}, nil
}

func (q *documentQueriesImpl) ExportAudit(ctx context.Context, number string, w io.Writer) error {
	doc, err := q.store.Get(ctx, number)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return err
	}

	records, err := q.audits.ListByDocument(ctx, number, shared.AuditPage{})
	if err != nil {
		return err
	}
	if doc == nil && len(records) == 0 {
		return ErrDocumentNotFound
	}

	return q.exporter.WriteAuditTrail(w, number, doc, records)
}

func (q *documentQueriesImpl) ExportFileName(number string) string {
	return fmt.Sprintf("audit-%s%s", number, q.exporter.FileExtension())
}

func (q *documentQueriesImpl) ExportContentType() string {
	return q.exporter.ContentType()
}
