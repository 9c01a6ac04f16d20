package tui

import (
	"strings"

	"github.com/Veraticus/paddy-ledger/internal/render"
	"github.com/Veraticus/paddy-ledger/internal/tui/themes"
)

// StyledPresenter styles ledger lines for the terminal preview.
type StyledPresenter struct {
	Theme themes.Theme
	Width int
}

var _ render.Presenter = StyledPresenter{}

// Present implements render.Presenter.
func (p StyledPresenter) Present(doc render.Document) string {
	plain := render.PlainPresenter{Width: p.Width}
	lines := make([]string, len(doc.Lines))
	for i, l := range doc.Lines {
		text := plain.Line(l)
		switch l.Role {
		case render.RoleHeader:
			lines[i] = p.Theme.LedgerHeader.Render(text)
		case render.RoleSeparator, render.RoleTerminator:
			lines[i] = p.Theme.LedgerRule.Render(text)
		case render.RoleFinal:
			lines[i] = p.Theme.LedgerTotal.Render(text)
		default:
			lines[i] = p.Theme.Normal.Render(text)
		}
	}
	return strings.Join(lines, "\n")
}
