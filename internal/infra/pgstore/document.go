package pgstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"gst-lifecycle/internal/domain/document"
	"gst-lifecycle/internal/infra"
	"gst-lifecycle/internal/pkg/errs"
	"gst-lifecycle/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const documentColumns = `number, kind, status, created_at, updated_at, status_since, valid_until, version, payload`

const (
	selectDocumentSQL = `SELECT ` + documentColumns + ` FROM documents WHERE number = $1`

	insertDocumentSQL = `
INSERT INTO documents (number, kind, status, created_at, updated_at, status_since, valid_until, version, payload)
VALUES ($1, $2, $3, $4, $5, $6, $7, 1, $8)
RETURNING ` + documentColumns

	// kind and created_at never change after insert.
	replaceDocumentSQL = `
UPDATE documents
SET status = $3, updated_at = $4, status_since = $5, valid_until = $6, payload = $7, version = version + 1
WHERE number = $1 AND version = $2
RETURNING ` + documentColumns

	documentExistsSQL = `SELECT EXISTS (SELECT 1 FROM documents WHERE number = $1)`
)

type DocumentRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewDocumentRepository(db DBTX, logger *slog.Logger) *DocumentRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentRepository{db: db, logger: logger}
}

func (r *DocumentRepository) Get(ctx context.Context, number string) (*document.Document, error) {
	doc, err := scanDocument(r.db.QueryRow(ctx, selectDocumentSQL, number))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "document not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to load document", err)
	}
	return doc, nil
}

func (r *DocumentRepository) Insert(ctx context.Context, doc *document.Document) (*document.Document, error) {
	payload, err := json.Marshal(doc.Payload())
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode payload", err)
	}

	row := r.db.QueryRow(ctx, insertDocumentSQL,
		doc.Number(),
		doc.Kind().String(),
		doc.Status().String(),
		doc.CreatedAt(),
		doc.UpdatedAt(),
		doc.StatusSince(),
		pgconv.TimePtrToPgtype(doc.ValidUntil()),
		payload,
	)
	stored, err := scanDocument(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "document already exists", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to insert document", err)
	}
	return stored, nil
}

// ConditionalReplace runs a single compare-and-set UPDATE. When no row matches it probes for
// the number to tell a stale version apart from a missing document.
func (r *DocumentRepository) ConditionalReplace(ctx context.Context, number string, expectedVersion int64, doc *document.Document) (*document.Document, error) {
	payload, err := json.Marshal(doc.Payload())
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode payload", err)
	}

	row := r.db.QueryRow(ctx, replaceDocumentSQL,
		number,
		expectedVersion,
		doc.Status().String(),
		doc.UpdatedAt(),
		doc.StatusSince(),
		pgconv.TimePtrToPgtype(doc.ValidUntil()),
		payload,
	)
	stored, err := scanDocument(row)
	if err == nil {
		return stored, nil
	}
	if !pgconv.IsNoRows(err) {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to replace document", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, documentExistsSQL, number).Scan(&exists); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to probe document", err)
	}
	if !exists {
		return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "document not found", nil)
	}
	return nil, infra.WrapRepoErr(r.logger, infra.KindVersionConflict,
		"document changed since version "+strconv.FormatInt(expectedVersion, 10), nil)
}

func scanDocument(row pgx.Row) (*document.Document, error) {
	var (
		number, kind, status              string
		createdAt, updatedAt, statusSince time.Time
		validUntil                        pgtype.Timestamptz
		version                           int64
		raw                               []byte
	)
	if err := row.Scan(&number, &kind, &status, &createdAt, &updatedAt, &statusSince, &validUntil, &version, &raw); err != nil {
		return nil, err
	}

	var payload document.Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, errs.Wrapf(err, "decode payload of %s", number)
	}

	doc, err := document.ReconstructDocument(
		number,
		document.Kind(kind),
		document.Status(status),
		createdAt.UTC(),
		updatedAt.UTC(),
		statusSince.UTC(),
		pgconv.TimePtrFromPgtype(validUntil),
		version,
		payload,
	)
	if err != nil {
		return nil, errs.Wrapf(err, "reconstruct %s", number)
	}
	return doc, nil
}
