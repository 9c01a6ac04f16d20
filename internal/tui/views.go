package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/paddy-ledger/internal/model"
	"github.com/Veraticus/paddy-ledger/internal/queue"
	"github.com/Veraticus/paddy-ledger/internal/render"
	"github.com/Veraticus/paddy-ledger/internal/settlement"
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderForm(),
		m.renderPreview(),
		lipgloss.JoinVertical(lipgloss.Left, m.renderQueue(), m.renderSummary()),
	)

	sections := []string{m.renderHeader(), body, m.renderStatus(), m.help.View(m.keymap)}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("Paddy Ledger")
	pos := m.theme.Subtitle.Render("position: " + string(m.ctrl.Position()))
	parts := []string{title, pos}
	if id, editing := m.ctrl.Editing(); editing {
		parts = append(parts, m.theme.Highlighted.Render(fmt.Sprintf("editing #%d", id)))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderForm() string {
	var b strings.Builder
	in := m.ctrl.Input()

	for i, s := range m.slots {
		if s.kind != slotField {
			break
		}
		b.WriteString(m.formRow(i, fieldLabels[s.field]))
		b.WriteString("\n")
	}

	if len(in.Batches) > 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.Subtitle.Render("Batches"))
		b.WriteString("\n")
		for i, batch := range in.Batches {
			fmt.Fprintf(&b, "%d. %s kg  %s bags\n", i+1, orDash(batch.Weight), orDash(batch.Bags))
		}
	}

	if len(in.Adjustments) > 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.Subtitle.Render("Adjustments"))
		b.WriteString("\n")
		for i, s := range m.slots {
			switch s.kind {
			case slotAdjAmount:
				b.WriteString(m.formRow(i, signLabel(in.Adjustments, s.adjID)+" amount"))
			case slotAdjLabel:
				b.WriteString(m.formRow(i, "  label"))
			case slotAdjNote:
				b.WriteString(m.formRow(i, "  note"))
			default:
				continue
			}
			b.WriteString("\n")
		}
	}

	return m.theme.FocusedBox.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) formRow(i int, label string) string {
	l := m.theme.Label.Render(label)
	if i == m.focus {
		l = m.theme.Highlighted.Width(14).Render(label)
	}
	return l + " " + m.inputs[i].View()
}

func (m Model) renderPreview() string {
	p := StyledPresenter{Theme: m.theme, Width: m.config.PreviewWidth}
	return m.theme.RoundedBox.Render(p.Present(m.ctrl.Document()))
}

func (m Model) renderQueue() string {
	snaps := m.ctrl.Snapshots()
	var b strings.Builder
	b.WriteString(m.theme.Subtitle.Render(fmt.Sprintf("Queue %d/%d", len(snaps), queue.Capacity)))
	if len(snaps) == 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.StatusPending.Render("empty, printing the live ledger"))
	}
	editID, editing := m.ctrl.Editing()
	for i, s := range snaps {
		line := fmt.Sprintf("#%d %s %s", s.ID, snapshotName(s), render.Money(s.Result.Final))
		if editing && s.ID == editID {
			line += " *"
		}
		if i == m.cursor {
			line = m.theme.Selected.Render(line)
		}
		b.WriteString("\n")
		b.WriteString(line)
	}
	return m.theme.RoundedBox.Width(36).Render(b.String())
}

func (m Model) renderSummary() string {
	in := m.ctrl.Input()
	r := m.ctrl.Result()
	rows := [][2]string{
		{"Net weight", render.Number(r.NetWeight) + " kg"},
		{"Amount", render.Money(r.Amount)},
		{"Labour", render.Money(r.LabourCharge)},
	}
	for _, a := range in.Adjustments {
		rows = append(rows, [2]string{labelOr(a.Label), render.SignedMoney(string(a.Sign), settlement.Normalize(a.Amount))})
	}
	rows = append(rows, [2]string{"Total", render.Money(r.Final)})

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = render.Justify(row[0], row[1], 26)
	}
	lines[len(lines)-1] = m.theme.LedgerTotal.Render(lines[len(lines)-1])
	return m.theme.RoundedBox.Width(36).Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus() string {
	if m.notice == "" {
		if m.printing > 0 {
			return m.theme.StatusPending.Render("Printing…")
		}
		return ""
	}
	switch m.noticeLevel {
	case noticeSuccess:
		return m.theme.StatusSuccess.Render(m.notice)
	case noticeWarning:
		return m.theme.StatusWarning.Render(m.notice)
	case noticeError:
		return m.theme.StatusError.Render(m.notice)
	default:
		return m.theme.StatusInfo.Render(m.notice)
	}
}

func signLabel(adjs []model.AdjustmentEntry, id string) string {
	for _, a := range adjs {
		if a.ID == id {
			return string(a.Sign)
		}
	}
	return "-"
}

func snapshotName(s model.Snapshot) string {
	if strings.TrimSpace(s.Input.CustomerName) == "" {
		return render.PlaceholderName
	}
	return s.Input.CustomerName
}

func labelOr(label string) string {
	if strings.TrimSpace(label) == "" {
		return "Adjustment"
	}
	return label
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
