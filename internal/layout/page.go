package layout

import (
	"github.com/Veraticus/paddy-ledger/internal/render"
)

// A4 in points.
var A4 = Size{W: 595, H: 842}

// DefaultFontSize is the base ledger font size in points.
const DefaultFontSize = 12.0

// Metrics measures a document set in a monospace font.
type Metrics struct {
	FontSize float64
}

// PointSize is the base font size, defaulting to DefaultFontSize.
func (m Metrics) PointSize() float64 { return m.fontSize() }

// CharWidth is the advance of one monospace glyph.
func (m Metrics) CharWidth() float64 { return 0.6 * m.fontSize() }

// LineHeight is the distance between baselines.
func (m Metrics) LineHeight() float64 { return 1.2 * m.fontSize() }

// Measure returns the natural size of doc at scale 1.
func (m Metrics) Measure(doc render.Document) Size {
	return Size{
		W: float64(render.NaturalColumns(doc)) * m.CharWidth(),
		H: float64(len(doc.Lines)) * m.LineHeight(),
	}
}

func (m Metrics) fontSize() float64 {
	if m.FontSize <= 0 {
		return DefaultFontSize
	}
	return m.FontSize
}

// Rect is a region of the page, origin at the top-left corner.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Slot is one region of a composed page.
type Slot struct {
	Quadrant Quadrant
	Region   Rect
	Document *render.Document
	Scale    Scale
}

// Filled reports whether a ledger is placed in the slot.
func (s Slot) Filled() bool {
	return s.Document != nil
}

// Page is a composed print page. A full page has a single slot covering
// the sheet; otherwise there are exactly four slots in quadrant order.
type Page struct {
	Size     Size
	Metrics  Metrics
	Full     bool
	Slots    []Slot
	Position Position
}

// Compose lays out docs on a page. Scales are computed on every call from
// the current page size; nothing is cached.
func Compose(docs []render.Document, pos Position, page Size, metrics Metrics) Page {
	a := Assign(len(docs), pos)
	out := Page{Size: page, Metrics: metrics, Full: a.Full, Position: pos}

	if a.Full {
		doc := docs[0]
		out.Slots = []Slot{{
			Quadrant: QuadTopLeft,
			Region:   Rect{W: page.W, H: page.H},
			Document: &doc,
			Scale:    ScaleFor(metrics.Measure(doc), Available(page, true)),
		}}
		return out
	}

	halfW, halfH := page.W/2, page.H/2
	avail := Available(page, false)
	out.Slots = make([]Slot, 0, len(Quadrants))
	for _, q := range Quadrants {
		slot := Slot{
			Quadrant: q,
			Region:   Rect{X: float64(q.Column()) * halfW, Y: float64(q.Row()) * halfH, W: halfW, H: halfH},
		}
		if idx := a.Slots[q]; idx != Empty {
			doc := docs[idx]
			slot.Document = &doc
			slot.Scale = ScaleFor(metrics.Measure(doc), avail)
		}
		out.Slots = append(out.Slots, slot)
	}
	return out
}

// Filled returns the occupied slots in order.
func (p Page) Filled() []Slot {
	var out []Slot
	for _, s := range p.Slots {
		if s.Filled() {
			out = append(out, s)
		}
	}
	return out
}
