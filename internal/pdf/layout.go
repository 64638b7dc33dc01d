// Package pdf renders stored documents into paginated A4 files. The
// engine is a sequential cursor: every drawing step happens at the
// running vertical offset, and tables overflow to a fresh page (with the
// column-header band repainted) when the cursor crosses the page-break
// threshold.
package pdf

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Page geometry shared by every document type, in millimeters.
const (
	MarginX      = 15.0
	ContentWidth = 180.0
	LineHeight   = 6.0
	TopMargin    = 15.0

	bandHeight    = 7.0
	DefaultBreakY = 260.0
)

type Align int

const (
	Left Align = iota
	Right
	Center
)

// Column places one table caption/cell at a horizontal offset relative to
// the left margin.
type Column struct {
	Title string
	X     float64
	Align Align
}

// Cell is one rendered table value, optionally colored (credit/debit
// rows).
type Cell struct {
	Text  string
	Color *[3]int
}

// Table describes one banded tabular section.
type Table struct {
	Columns    []Column
	BreakY     float64 // page-break threshold, DefaultBreakY when zero
	BandHeight float64 // header band height, 7 when zero
	Fill       [3]int  // band fill, light blue when zero
	Separators bool    // thin gray line after each row
	Outline    bool    // bounding rectangle + thick band underline
	EmptyText  string  // placeholder row when there are no items

	// Repainted above the band after a page break (sector tables).
	SectionTitle string
}

// Layout wraps the underlying page with the running cursor.
type Layout struct {
	doc *gofpdf.Fpdf
	tr  func(string) string
	y   float64
}

func New() *Layout {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()
	return &Layout{doc: doc, tr: tr, y: TopMargin}
}

func (l *Layout) Y() float64      { return l.y }
func (l *Layout) SetY(y float64)  { l.y = y }
func (l *Layout) Advance(n float64) { l.y += LineHeight * n }

func (l *Layout) PageCount() int { return l.doc.PageCount() }

func (l *Layout) NewPage() {
	l.doc.AddPage()
	l.y = TopMargin
}

func (l *Layout) SetFont(style string, size float64) {
	l.doc.SetFont("Helvetica", style, size)
}

func (l *Layout) SetTextColor(r, g, b int) { l.doc.SetTextColor(r, g, b) }

func (l *Layout) TextAt(x, y float64, s string) {
	l.doc.Text(x, y, l.tr(s))
}

func (l *Layout) TextRightAt(x, y float64, s string) {
	t := l.tr(s)
	l.doc.Text(x-l.doc.GetStringWidth(t), y, t)
}

func (l *Layout) TextCenterAt(x, y float64, s string) {
	t := l.tr(s)
	l.doc.Text(x-l.doc.GetStringWidth(t)/2, y, t)
}

// Rule draws a full-width line at the cursor.
func (l *Layout) Rule() {
	l.doc.SetDrawColor(0, 0, 0)
	l.doc.SetLineWidth(0.2)
	l.doc.Line(MarginX, l.y, MarginX+ContentWidth, l.y)
}

func (l *Layout) LineAt(x1, y1, x2, y2, width float64) {
	l.doc.SetDrawColor(0, 0, 0)
	l.doc.SetLineWidth(width)
	l.doc.Line(x1, y1, x2, y2)
}

// DashedLineAt draws the cut line used by the delivery slip.
func (l *Layout) DashedLineAt(x1, y1, x2, y2 float64) {
	l.doc.SetDrawColor(0, 0, 0)
	l.doc.SetLineWidth(0.2)
	l.doc.SetDashPattern([]float64{2, 2}, 0)
	l.doc.Line(x1, y1, x2, y2)
	l.doc.SetDashPattern([]float64{}, 0)
}

// FilledBox paints a gray caption band with a bold label (party boxes).
func (l *Layout) FilledBox(x, y, w, h float64, fill [3]int) {
	l.doc.SetFillColor(fill[0], fill[1], fill[2])
	l.doc.Rect(x, y, w, h, "F")
}

func (l *Layout) Box(x, y, w, h float64) {
	l.doc.SetDrawColor(0, 0, 0)
	l.doc.SetLineWidth(0.2)
	l.doc.Rect(x, y, w, h, "D")
}

// RenderTable paints the section at the cursor. On entry the cursor sits
// at the band's text baseline, matching the way every document type
// positions its tables; on exit it sits just below the last row.
func (l *Layout) RenderTable(t Table, rows [][]Cell) {
	if t.BreakY == 0 {
		t.BreakY = DefaultBreakY
	}
	if t.BandHeight == 0 {
		t.BandHeight = bandHeight
	}
	if t.Fill == [3]int{} {
		t.Fill = [3]int{200, 220, 240}
	}

	startY := l.y
	l.paintBand(t, l.y)
	l.y += LineHeight

	l.SetFont("", 9)
	if len(rows) == 0 {
		if t.EmptyText != "" {
			l.TextAt(MarginX+1, l.y, t.EmptyText)
		}
		l.y += LineHeight * 2
	}

	for _, row := range rows {
		if l.y > t.BreakY {
			l.doc.AddPage()
			l.y = TopMargin + t.BandHeight
			startY = l.y
			if t.SectionTitle != "" {
				l.SetFont("B", 14)
				l.TextAt(MarginX, l.y-LineHeight*2, t.SectionTitle)
			}
			l.paintBand(t, l.y)
			l.SetFont("", 9)
		}

		for i, col := range t.Columns {
			if i >= len(row) {
				break
			}
			cell := row[i]
			if cell.Color != nil {
				l.doc.SetTextColor(cell.Color[0], cell.Color[1], cell.Color[2])
			}
			l.placeText(col, MarginX+col.X, l.y, cell.Text)
			if cell.Color != nil {
				l.doc.SetTextColor(0, 0, 0)
			}
		}

		if t.Separators {
			l.doc.SetLineWidth(0.1)
			l.doc.SetDrawColor(150, 150, 150)
			l.doc.Line(MarginX, l.y+LineHeight*0.5, MarginX+ContentWidth, l.y+LineHeight*0.5)
		}
		l.y += LineHeight
	}

	if t.Outline {
		top := startY - t.BandHeight
		l.doc.SetDrawColor(0, 0, 0)
		l.doc.SetLineWidth(0.2)
		l.doc.Rect(MarginX, top, ContentWidth, l.y-top, "D")
		l.doc.SetLineWidth(0.4)
		l.doc.Line(MarginX, startY, MarginX+ContentWidth, startY)
	}
}

func (l *Layout) paintBand(t Table, baseline float64) {
	l.SetFont("B", 10)
	l.doc.SetFillColor(t.Fill[0], t.Fill[1], t.Fill[2])
	l.doc.Rect(MarginX, baseline-t.BandHeight, ContentWidth, t.BandHeight, "F")

	captionY := baseline - 2
	if t.BandHeight < bandHeight {
		captionY = baseline - 1
	}
	for _, col := range t.Columns {
		l.placeText(col, MarginX+col.X, captionY, col.Title)
	}
}

func (l *Layout) placeText(col Column, x, y float64, s string) {
	switch col.Align {
	case Right:
		l.TextRightAt(x, y, s)
	case Center:
		l.TextCenterAt(x, y, s)
	default:
		l.TextAt(x, y, s)
	}
}

// Logo draws a Base64 data-URI image aspect-fit inside the given box and
// returns the drawn height. Callers treat an error as "render without the
// image".
func (l *Layout) Logo(dataURI string, x, y, maxW, maxH float64) (float64, error) {
	imgType, data, err := decodeDataURI(dataURI)
	if err != nil {
		return 0, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("decode logo image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, errors.New("logo image has no dimensions")
	}

	w := maxW
	h := maxW * float64(cfg.Height) / float64(cfg.Width)
	if h > maxH {
		h = maxH
		w = maxH * float64(cfg.Width) / float64(cfg.Height)
	}

	name := fmt.Sprintf("logo-%x", len(data))
	opts := gofpdf.ImageOptions{ImageType: imgType}
	l.doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if l.doc.Err() {
		err := l.doc.Error()
		l.doc.ClearError()
		return 0, fmt.Errorf("register logo image: %w", err)
	}
	l.doc.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return h, nil
}

func (l *Layout) Output(w io.Writer) error {
	return l.doc.Output(w)
}

func decodeDataURI(uri string) (imgType string, data []byte, err error) {
	if !strings.HasPrefix(uri, "data:image/") {
		return "", nil, errors.New("not an image data URI")
	}
	meta, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return "", nil, errors.New("malformed data URI")
	}
	subtype := strings.TrimPrefix(meta, "data:image/")
	subtype = strings.SplitN(subtype, ";", 2)[0]
	switch strings.ToLower(subtype) {
	case "png":
		imgType = "PNG"
	case "jpeg", "jpg":
		imgType = "JPG"
	case "gif":
		imgType = "GIF"
	default:
		return "", nil, fmt.Errorf("unsupported logo image type %q", subtype)
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode logo payload: %w", err)
	}
	return imgType, data, nil
}
