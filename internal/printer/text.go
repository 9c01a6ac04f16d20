package printer

import (
	"strings"

	"github.com/Veraticus/paddy-ledger/internal/layout"
	"github.com/charmbracelet/lipgloss"
)

// TextEncoder lays a page out on a fixed character grid. Quadrants get half
// the columns and half the rows each; a full page gets the whole grid.
// Text cannot scale, so ledgers that do not fit are clipped.
type TextEncoder struct {
	Columns int
	Rows    int
}

// Ext implements Encoder.
func (TextEncoder) Ext() string { return ".txt" }

// Encode implements Encoder.
func (e TextEncoder) Encode(page layout.Page) ([]byte, error) {
	return []byte(e.Render(page) + "\n"), nil
}

// Render returns the page as text without a trailing newline.
func (e TextEncoder) Render(page layout.Page) string {
	cols, rows := e.grid()

	if page.Full {
		return cell(page.Slots[0], cols, rows)
	}

	cw, ch := cols/2, rows/2
	cells := make([]string, len(page.Slots))
	for i, slot := range page.Slots {
		cells[i] = cell(slot, cw, ch)
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, cells[layout.QuadTopLeft], cells[layout.QuadTopRight])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, cells[layout.QuadBottomLeft], cells[layout.QuadBottomRight])
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func (e TextEncoder) grid() (int, int) {
	cols, rows := e.Columns, e.Rows
	if cols < 2 {
		cols = 96
	}
	if rows < 2 {
		rows = 64
	}
	return cols, rows
}

// cell renders one slot into a w x h block with a one-character margin.
func cell(slot layout.Slot, w, h int) string {
	if !slot.Filled() {
		return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, "")
	}

	lines := slotLines(*slot.Document)
	if limit := h - 2; len(lines) > limit && limit > 0 {
		lines = lines[:limit]
	}
	body := lipgloss.NewStyle().
		Margin(1, 1).
		MaxWidth(w).
		MaxHeight(h).
		Render(strings.Join(lines, "\n"))
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, body)
}
