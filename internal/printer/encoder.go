// Package printer turns composed pages into print jobs and hands them to a
// print backend.
package printer

import (
	"fmt"

	"github.com/Veraticus/paddy-ledger/internal/layout"
	"github.com/Veraticus/paddy-ledger/internal/render"
)

// Encoder serializes a composed page into a printable file.
type Encoder interface {
	Encode(page layout.Page) ([]byte, error)
	// Ext is the file extension for encoded pages, including the dot.
	Ext() string
}

// NewEncoder returns the encoder for a configured format.
func NewEncoder(format string, columns, rows int) (Encoder, error) {
	switch format {
	case "ps":
		return PostScriptEncoder{}, nil
	case "text":
		return TextEncoder{Columns: columns, Rows: rows}, nil
	}
	return nil, fmt.Errorf("unknown print format %q", format)
}

// slotLines renders a slot's document as plain lines at its natural width.
func slotLines(doc render.Document) []string {
	p := render.PlainPresenter{Width: render.NaturalColumns(doc)}
	out := make([]string, len(doc.Lines))
	for i, l := range doc.Lines {
		out[i] = p.Line(l)
	}
	return out
}
