package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultWidth is the column width of a plain ledger.
const DefaultWidth = 40

// Presenter turns a Document into output for one sink. Presenters style
// lines; they never add, drop or reorder them.
type Presenter interface {
	Present(doc Document) string
}

// PlainPresenter renders fixed-width text, used for printing and the CLI.
type PlainPresenter struct {
	Width int
}

// Ensure PlainPresenter implements Presenter.
var _ Presenter = PlainPresenter{}

// Present implements Presenter.
func (p PlainPresenter) Present(doc Document) string {
	lines := make([]string, len(doc.Lines))
	for i, l := range doc.Lines {
		lines[i] = p.Line(l)
	}
	return strings.Join(lines, "\n")
}

// Line renders a single ledger line at the presenter width.
func (p PlainPresenter) Line(l Line) string {
	width := p.width()
	if l.Role == RoleSeparator {
		return strings.Repeat("-", width)
	}
	return Justify(l.Left, l.Right, width)
}

func (p PlainPresenter) width() int {
	if p.Width <= 0 {
		return DefaultWidth
	}
	return p.Width
}

// Justify places left and right at the edges of width columns, keeping at
// least one space between them when they do not fit.
func Justify(left, right string, width int) string {
	if right == "" {
		return left
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// NaturalColumns is the widest line of the document in columns.
func NaturalColumns(doc Document) int {
	widest := 0
	for _, l := range doc.Lines {
		w := lipgloss.Width(l.Left)
		if l.Right != "" {
			w += 1 + lipgloss.Width(l.Right)
		}
		if w > widest {
			widest = w
		}
	}
	return widest
}
