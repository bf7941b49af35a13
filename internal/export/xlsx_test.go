package export

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/alnah/go-cfp"
)

func sampleDocuments() []*cfp.Document {
	return []*cfp.Document{
		{
			Lang:   cfp.LangDE,
			Source: "cfp.de.md",
			Sections: cfp.SectionSet{
				IntroHTML: "<p>Das Verlagswesen<br />verändert sich.</p>",
				Quote:     "Wem gehört der Text?",
				Topics: []cfp.Topic{
					{Number: "01", Title: "Lektorat heute", BodyHTML: "<p>Wie arbeiten <strong>Lektorate</strong>?</p>"},
					{Number: "02", Title: "Plattformen", BodyHTML: "<p>Wer kontrolliert den Vertrieb?</p>"},
				},
			},
			Facts: []cfp.FactEntry{
				{Label: "Teilnehmer", Value: "max. 25 Personen"},
				{Label: "Gebühr", Value: "keine"},
			},
		},
		{
			Lang:   cfp.LangEN,
			Source: "cfp.en.md",
			Sections: cfp.SectionSet{
				Topics: []cfp.Topic{{Number: "01", Title: "Editorial practice", BodyHTML: "<p>Today.</p>"}},
			},
			Facts: []cfp.FactEntry{{Label: "Fee", Value: "none"}},
		},
	}
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestXLSXExporter_Export(t *testing.T) {
	t.Parallel()

	data, err := NewXLSXExporter(nil).Export(context.Background(), sampleDocuments())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	f := openWorkbook(t, data)

	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{SheetOverview, SheetTopics, SheetFacts}) {
		t.Errorf("GetSheetList() = %v", got)
	}

	topics, err := f.GetRows(SheetTopics)
	if err != nil {
		t.Fatalf("GetRows(Topics) error = %v", err)
	}
	wantTopics := [][]string{
		{"Language", "Number", "Title", "Body"},
		{"de", "01", "Lektorat heute", "Wie arbeiten Lektorate?"},
		{"de", "02", "Plattformen", "Wer kontrolliert den Vertrieb?"},
		{"en", "01", "Editorial practice", "Today."},
	}
	if !reflect.DeepEqual(topics, wantTopics) {
		t.Errorf("Topics rows =\n%v\nwant\n%v", topics, wantTopics)
	}

	facts, err := f.GetRows(SheetFacts)
	if err != nil {
		t.Fatalf("GetRows(Facts) error = %v", err)
	}
	wantFacts := [][]string{
		{"Language", "Label", "Value"},
		{"de", "Teilnehmer", "max. 25 Personen"},
		{"de", "Gebühr", "keine"},
		{"en", "Fee", "none"},
	}
	if !reflect.DeepEqual(facts, wantFacts) {
		t.Errorf("Facts rows =\n%v\nwant\n%v", facts, wantFacts)
	}

	intro, err := f.GetCellValue(SheetOverview, "D2")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if intro != "Das Verlagswesen\nverändert sich." {
		t.Errorf("intro cell = %q", intro)
	}
	quote, _ := f.GetCellValue(SheetOverview, "C2")
	if quote != "Wem gehört der Text?" {
		t.Errorf("quote cell = %q", quote)
	}
	count, _ := f.GetCellValue(SheetOverview, "E2")
	if count != "2" {
		t.Errorf("topic count cell = %q, want 2", count)
	}
}

func TestXLSXExporter_Export_Errors(t *testing.T) {
	t.Parallel()

	t.Run("no documents", func(t *testing.T) {
		t.Parallel()

		if _, err := NewXLSXExporter(nil).Export(context.Background(), nil); !errors.Is(err, ErrNoDocuments) {
			t.Errorf("Export(nil) error = %v, want ErrNoDocuments", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := NewXLSXExporter(nil).Export(ctx, sampleDocuments()); !errors.Is(err, context.Canceled) {
			t.Errorf("Export() error = %v, want context.Canceled", err)
		}
	})
}

func TestXLSXExporter_Export_SkipsNilDocuments(t *testing.T) {
	t.Parallel()

	docs := append([]*cfp.Document{nil}, sampleDocuments()[1])
	data, err := NewXLSXExporter(nil).Export(context.Background(), docs)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	rows, _ := openWorkbook(t, data).GetRows(SheetOverview)
	if len(rows) != 2 {
		t.Errorf("overview rows = %d, want header + 1", len(rows))
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"Übernachtung", 5, "Über…"},
		{"ab", 1, "a"},
		{"keep", 0, "keep"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}

	long := strings.Repeat("x", maxCellLength+10)
	if got := []rune(truncate(long, maxCellLength)); len(got) != maxCellLength {
		t.Errorf("truncate to cell limit = %d runes, want %d", len(got), maxCellLength)
	}
}
