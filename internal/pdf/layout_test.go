package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// Long tables must carry the column-caption band on every page they
// spill onto, not just the first. Compression is disabled so the caption
// text is visible in the raw page streams.
func TestTableBandRepaintedOnEveryPage(t *testing.T) {
	l := New()
	l.doc.SetCompression(false)
	l.SetY(40)

	rows := make([][]Cell, 120)
	for i := range rows {
		rows[i] = []Cell{
			{Text: fmt.Sprintf("Item %d", i+1)},
			{Text: "1"},
		}
	}
	l.RenderTable(Table{
		Columns: []Column{
			{Title: "DESCRICAO", X: 1},
			{Title: "VALOR TOTAL", X: ContentWidth - 1, Align: Right},
		},
		BreakY:     270,
		Separators: true,
		Outline:    true,
	}, rows)

	if l.PageCount() < 2 {
		t.Fatalf("120 rows must overflow, pages = %d", l.PageCount())
	}

	var buf bytes.Buffer
	if err := l.Output(&buf); err != nil {
		t.Fatalf("Output: %v", err)
	}

	got := strings.Count(buf.String(), "(VALOR TOTAL)")
	if got != l.PageCount() {
		t.Errorf("caption painted %d times across %d pages, want one per page", got, l.PageCount())
	}
}

// Sector tables repeat their section title above the repainted band
// after a break.
func TestTableSectionTitleRepaintedOnBreak(t *testing.T) {
	l := New()
	l.doc.SetCompression(false)
	l.SetY(40)

	rows := make([][]Cell, 80)
	for i := range rows {
		rows[i] = []Cell{{Text: fmt.Sprintf("Item %d", i+1)}}
	}
	l.RenderTable(Table{
		Columns:      []Column{{Title: "PRODUTO", X: 2}},
		BreakY:       270,
		SectionTitle: "MERCEARIA",
	}, rows)

	if l.PageCount() < 2 {
		t.Fatalf("80 rows must overflow, pages = %d", l.PageCount())
	}

	var buf bytes.Buffer
	if err := l.Output(&buf); err != nil {
		t.Fatalf("Output: %v", err)
	}

	// The engine only paints the title on continuation pages; page 1's
	// title belongs to the caller.
	if got := strings.Count(buf.String(), "(MERCEARIA)"); got != l.PageCount()-1 {
		t.Errorf("section title painted %d times across %d pages, want one per continuation page",
			got, l.PageCount())
	}
}
