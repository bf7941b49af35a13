// Package export writes extracted call-for-papers documents to spreadsheets.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/alnah/go-cfp"
	"github.com/alnah/go-cfp/internal/pipeline"
)

// Sheet names, in workbook order.
const (
	SheetOverview = "Overview"
	SheetTopics   = "Topics"
	SheetFacts    = "Facts"
)

// ErrNoDocuments is returned when there is nothing to export.
var ErrNoDocuments = errors.New("no documents to export")

// maxCellLength is the Excel limit for one cell.
const maxCellLength = 32767

var (
	overviewHeaders = []string{"Language", "Source", "Quote", "Introduction", "Topics", "Facts"}
	topicHeaders    = []string{"Language", "Number", "Title", "Body"}
	factHeaders     = []string{"Language", "Label", "Value"}
)

// XLSXExporter produces one workbook with an overview, topics and facts sheet.
type XLSXExporter struct {
	logger *slog.Logger
}

// NewXLSXExporter creates an exporter. A nil logger discards events.
func NewXLSXExporter(logger *slog.Logger) *XLSXExporter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &XLSXExporter{logger: logger}
}

// Export returns the XLSX workbook for docs as bytes.
// HTML fragments are reduced to their text content.
func (x *XLSXExporter) Export(ctx context.Context, docs []*cfp.Document) ([]byte, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	start := time.Now()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// NewFile starts with "Sheet1"
	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	for _, sheet := range []string{SheetTopics, SheetFacts} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("xlsx sheet: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx style: %w", err)
	}
	for sheet, headers := range map[string][]string{
		SheetOverview: overviewHeaders,
		SheetTopics:   topicHeaders,
		SheetFacts:    factHeaders,
	} {
		if err := writeRow(f, sheet, 1, headers); err != nil {
			return nil, err
		}
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	overviewRow, topicRow, factRow := 2, 2, 2
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		lang := doc.Lang.String()

		intro, err := pipeline.TextContent(doc.Sections.IntroHTML)
		if err != nil {
			return nil, fmt.Errorf("intro text: %w", err)
		}
		if err := writeRow(f, SheetOverview, overviewRow, []any{
			lang, doc.Source, doc.Sections.Quote, intro, len(doc.Sections.Topics), len(doc.Facts),
		}); err != nil {
			return nil, err
		}
		overviewRow++

		for _, topic := range doc.Sections.Topics {
			body, err := pipeline.TextContent(topic.BodyHTML)
			if err != nil {
				return nil, fmt.Errorf("topic %s text: %w", topic.Number, err)
			}
			if err := writeRow(f, SheetTopics, topicRow, []any{lang, topic.Number, topic.Title, body}); err != nil {
				return nil, err
			}
			topicRow++
		}

		for _, fact := range doc.Facts {
			if err := writeRow(f, SheetFacts, factRow, []any{lang, fact.Label, fact.Value}); err != nil {
				return nil, err
			}
			factRow++
		}
	}

	_ = f.SetColWidth(SheetOverview, "A", "A", 10) // language
	_ = f.SetColWidth(SheetOverview, "B", "B", 40) // source
	_ = f.SetColWidth(SheetOverview, "C", "D", 60) // quote, intro
	_ = f.SetColWidth(SheetTopics, "A", "B", 10)
	_ = f.SetColWidth(SheetTopics, "C", "C", 36)
	_ = f.SetColWidth(SheetTopics, "D", "D", 80)
	_ = f.SetColWidth(SheetFacts, "A", "A", 10)
	_ = f.SetColWidth(SheetFacts, "B", "B", 18)
	_ = f.SetColWidth(SheetFacts, "C", "C", 48)

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	x.logger.Info("export.xlsx.ok",
		"documents", len(docs),
		"topics", topicRow-2,
		"facts", factRow-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// writeRow writes values into consecutive cells of row, starting at column A.
func writeRow[T any](f *excelize.File, sheet string, row int, values []T) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("xlsx cell: %w", err)
		}
		var value any = v
		if s, ok := value.(string); ok {
			value = truncate(s, maxCellLength)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("xlsx %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
