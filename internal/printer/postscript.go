package printer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/paddy-ledger/internal/layout"
)

// PostScriptEncoder writes a single-page PostScript document. Each filled
// slot is drawn in Courier inside its region, inset by half the region
// inset on every side, with the slot's font and geometric scale applied.
type PostScriptEncoder struct{}

// Ext implements Encoder.
func (PostScriptEncoder) Ext() string { return ".ps" }

// Encode implements Encoder.
func (PostScriptEncoder) Encode(page layout.Page) ([]byte, error) {
	if page.Size.W <= 0 || page.Size.H <= 0 {
		return nil, fmt.Errorf("invalid page size %vx%v", page.Size.W, page.Size.H)
	}

	var b bytes.Buffer
	w, h := num(page.Size.W), num(page.Size.H)

	fmt.Fprintf(&b, "%%!PS-Adobe-3.0\n")
	fmt.Fprintf(&b, "%%%%BoundingBox: 0 0 %s %s\n", w, h)
	fmt.Fprintf(&b, "%%%%Pages: 1\n")
	fmt.Fprintf(&b, "%%%%EndComments\n")
	fmt.Fprintf(&b, "<< /PageSize [%s %s] >> setpagedevice\n", w, h)
	fmt.Fprintf(&b, "%%%%Page: 1 1\n")

	inset := layout.RegionInset / 2
	for _, slot := range page.Filled() {
		fontSize := page.Metrics.PointSize() * slot.Scale.Font
		leading := 1.2 * fontSize
		originX := slot.Region.X + inset
		originY := page.Size.H - (slot.Region.Y + inset)

		fmt.Fprintf(&b, "%% slot %s\n", slot.Quadrant)
		fmt.Fprintf(&b, "gsave\n")
		fmt.Fprintf(&b, "%s %s translate\n", num(originX), num(originY))
		fmt.Fprintf(&b, "%s dup scale\n", num(slot.Scale.Geometric))
		fmt.Fprintf(&b, "/Courier findfont %s scalefont setfont\n", num(fontSize))
		for i, line := range slotLines(*slot.Document) {
			baseline := -(float64(i)*leading + fontSize)
			fmt.Fprintf(&b, "0 %s moveto (%s) show\n", num(baseline), escape(line))
		}
		fmt.Fprintf(&b, "grestore\n")
	}

	fmt.Fprintf(&b, "showpage\n")
	fmt.Fprintf(&b, "%%%%EOF\n")
	return b.Bytes(), nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// escape makes s safe inside a PostScript string literal. Courier's
// standard encoding has no multiplication sign, so it prints as x; any
// other non-ASCII rune becomes '?'.
func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '(' || r == ')' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '×':
			b.WriteByte('x')
		case r < 0x20 || r > 0x7e:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
