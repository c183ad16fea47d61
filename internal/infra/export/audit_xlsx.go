// Package export renders audit trails for download.
package export

import (
	"io"
	"strconv"
	"time"

	"gst-lifecycle/internal/domain/audit"
	"gst-lifecycle/internal/domain/document"
	"gst-lifecycle/internal/pkg/errs"

	"github.com/xuri/excelize/v2"
)

const (
	SheetDocument = "Document"
	SheetTrail    = "Audit Trail"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	timeLayout      = "2006-01-02 15:04:05.000000 MST"
)

var trailHeader = []any{
	"Occurred At", "Transition", "Outcome", "Rule", "Message",
	"Gateway Status", "Gateway Correlation ID", "Actor", "Record ID",
}

type AuditXLSXExporter struct {
	loc *time.Location
}

// NewAuditXLSXExporter renders timestamps in loc, or UTC when loc is nil.
func NewAuditXLSXExporter(loc *time.Location) *AuditXLSXExporter {
	if loc == nil {
		loc = time.UTC
	}
	return &AuditXLSXExporter{loc: loc}
}

func (e *AuditXLSXExporter) ContentType() string   { return xlsxContentType }
func (e *AuditXLSXExporter) FileExtension() string { return ".xlsx" }

func (e *AuditXLSXExporter) WriteAuditTrail(w io.Writer, number string, doc *document.Document, records []*audit.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetDocument); err != nil {
		return errs.Wrap(err, "rename summary sheet")
	}
	if err := e.writeSummary(f, number, doc); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetTrail); err != nil {
		return errs.Wrap(err, "create trail sheet")
	}
	if err := e.writeTrail(f, records); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return errs.Wrapf(err, "write audit workbook for %s", number)
	}
	return nil
}

func (e *AuditXLSXExporter) writeSummary(f *excelize.File, number string, doc *document.Document) error {
	rows := [][]any{{"Document Number", number}}
	if doc == nil {
		rows = append(rows, []any{"Status", "not stored"})
	} else {
		p := doc.Payload()
		rows = append(rows,
			[]any{"Kind", doc.Kind().String()},
			[]any{"Status", doc.Status().String()},
			[]any{"Version", doc.Version()},
			[]any{"Created At", e.format(doc.CreatedAt())},
			[]any{"Status Since", e.format(doc.StatusSince())},
			[]any{"Valid Until", e.formatPtr(doc.ValidUntil())},
			[]any{"Source Ref", p.SourceRef},
			[]any{"Seller GSTIN", p.Seller.GSTIN},
			[]any{"Buyer GSTIN", p.Buyer.GSTIN},
			[]any{"Total Assessable", p.Totals.TotalAssessable},
			[]any{"Total Invoice Value", p.Totals.TotalInvoiceValue},
			[]any{"Final Invoice Value", p.Totals.FinalInvoiceValue},
		)
	}

	for i, row := range rows {
		if err := f.SetSheetRow(SheetDocument, cell(1, i+1), &row); err != nil {
			return errs.Wrap(err, "write summary row")
		}
	}
	return f.SetColWidth(SheetDocument, "A", "B", 24)
}

func (e *AuditXLSXExporter) writeTrail(f *excelize.File, records []*audit.Record) error {
	header := trailHeader
	if err := f.SetSheetRow(SheetTrail, "A1", &header); err != nil {
		return errs.Wrap(err, "write trail header")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errs.Wrap(err, "create header style")
	}
	if err := f.SetRowStyle(SheetTrail, 1, 1, bold); err != nil {
		return errs.Wrap(err, "style trail header")
	}

	for i, rec := range records {
		row := []any{
			e.format(rec.OccurredAt),
			rec.Transition.String(),
			rec.Outcome.String(),
			rec.Rule,
			rec.Message,
			rec.GatewayStatusCode,
			rec.GatewayCorrelationID,
			rec.Actor,
			rec.ID.String(),
		}
		if err := f.SetSheetRow(SheetTrail, cell(1, i+2), &row); err != nil {
			return errs.Wrapf(err, "write trail row %d", i+1)
		}
	}

	if err := f.SetPanes(SheetTrail, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return errs.Wrap(err, "freeze trail header")
	}
	return f.SetColWidth(SheetTrail, "A", "I", 22)
}

func (e *AuditXLSXExporter) format(t time.Time) string {
	return t.In(e.loc).Format(timeLayout)
}

func (e *AuditXLSXExporter) formatPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return e.format(*t)
}

func cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "A" + strconv.Itoa(row)
	}
	return name
}
