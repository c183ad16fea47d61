// Package memstore keeps documents and their audit trail in process memory. It honours the same
// conditional-replace contract as the PostgreSQL store and is meant for local runs and tests.
package memstore

import (
	"bytes"
	"context"
	"log/slog"
	"sort"
	"sync"

	"gst-lifecycle/internal/domain/audit"
	"gst-lifecycle/internal/domain/document"
	"gst-lifecycle/internal/infra"
	"gst-lifecycle/internal/usecase/shared"
)

type DocumentStore struct {
	mu     sync.RWMutex
	docs   map[string]*document.Document
	logger *slog.Logger
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs:   make(map[string]*document.Document),
		logger: slog.Default(),
	}
}

// Snapshots are immutable, so the stored pointers can be handed out as is.
func (s *DocumentStore) Get(_ context.Context, number string) (*document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[number]
	if !ok {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "document not found", nil)
	}
	return doc, nil
}

func (s *DocumentStore) Insert(_ context.Context, doc *document.Document) (*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[doc.Number()]; exists {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "document already exists", nil)
	}
	stored := doc.WithVersion(1)
	s.docs[doc.Number()] = stored
	return stored, nil
}

func (s *DocumentStore) ConditionalReplace(_ context.Context, number string, expectedVersion int64, doc *document.Document) (*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.docs[number]
	if !ok {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "document not found", nil)
	}
	if current.Version() != expectedVersion {
		return nil, infra.WrapRepoErr(s.logger, infra.KindVersionConflict, "document version changed", nil)
	}

	stored := doc.WithVersion(expectedVersion + 1)
	s.docs[number] = stored
	return stored, nil
}

type AuditLog struct {
	mu      sync.RWMutex
	records map[string][]*audit.Record
}

func NewAuditLog() *AuditLog {
	return &AuditLog{records: make(map[string][]*audit.Record)}
}

func (l *AuditLog) Append(_ context.Context, rec *audit.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	c := *rec
	l.records[rec.DocumentNumber] = append(l.records[rec.DocumentNumber], &c)
	return nil
}

// ListByDocument orders by (OccurredAt, ID) to page the same way the SQL store does.
func (l *AuditLog) ListByDocument(_ context.Context, number string, page shared.AuditPage) ([]*audit.Record, error) {
	l.mu.RLock()
	all := append([]*audit.Record(nil), l.records[number]...)
	l.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool { return before(all[i], all[j]) })

	out := make([]*audit.Record, 0, len(all))
	for _, rec := range all {
		if !page.AfterTime.IsZero() && !afterPosition(rec, page) {
			continue
		}
		c := *rec
		out = append(out, &c)
		if page.Limit > 0 && len(out) == page.Limit {
			break
		}
	}
	return out, nil
}

func before(a, b *audit.Record) bool {
	if !a.OccurredAt.Equal(b.OccurredAt) {
		return a.OccurredAt.Before(b.OccurredAt)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}

func afterPosition(rec *audit.Record, page shared.AuditPage) bool {
	if !rec.OccurredAt.Equal(page.AfterTime) {
		return rec.OccurredAt.After(page.AfterTime)
	}
	return bytes.Compare(rec.ID[:], page.AfterID[:]) > 0
}
