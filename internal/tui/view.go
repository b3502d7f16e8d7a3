package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmynk/brunchsplit/internal/calculator"
	"github.com/mmynk/brunchsplit/internal/models"
	"github.com/mmynk/brunchsplit/internal/present"
)

const (
	priceWidth = 11
	cardWidth  = 24 // cardStyle width plus border
)

func padRight(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func padLeft(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

func (m Model) itemWidth() int {
	w := len("Item")
	for _, item := range m.state.Items {
		w = max(w, lipgloss.Width(item.Name))
	}
	return w + 2
}

func (m Model) guestWidth(g int) int {
	return max(3, lipgloss.Width(m.state.Guests[g].DisplayName())) + 2
}

func (m Model) cardsPerRow() int {
	return max(1, m.width/cardWidth)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == modeAlert {
		box := alertStyle.Render(m.alert + "\n\n" + dimStyle.Render("press any key"))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}

	var b strings.Builder

	title := titleStyle.Render(m.state.Title)
	totals := dimStyle.Render(fmt.Sprintf("  subtotal %s  tax %s  tip %s",
		present.Money(m.state.Totals.Subtotal),
		present.Money(m.state.Totals.Tax),
		present.Money(m.state.Totals.Tip)))
	b.WriteString(title + totals + "\n")

	b.WriteString(m.renderParticipants() + "\n")
	b.WriteString(m.renderHeader() + "\n")

	visible := m.gridRows()
	end := min(m.offset+visible, len(m.state.Items))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i) + "\n")
	}

	if m.state.Results != nil {
		b.WriteString("\n" + m.renderCards() + "\n")
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderParticipants() string {
	parts := make([]string, len(m.state.Guests))
	for i, g := range m.state.Guests {
		if i == m.state.EditableGuest {
			field := m.nameInput.View()
			if m.mode != modeEditName {
				field = m.nameInput.Value()
				if field == "" {
					field = dimStyle.Render(m.nameInput.Placeholder)
				}
			}
			parts[i] = g.First + " " + inputStyle.Render(field)
			continue
		}
		parts[i] = g.DisplayName()
	}
	return " " + strings.Join(parts, dimStyle.Render(" · "))
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(padRight(" Item", m.itemWidth()+1))
	b.WriteString(padLeft("Price ($)", priceWidth-2) + "  ")
	for g, guest := range m.state.Guests {
		b.WriteString(padRight(" "+guest.DisplayName(), m.guestWidth(g)))
	}
	b.WriteString(" Share")
	return headerStyle.Render(b.String())
}

func (m Model) renderRow(i int) string {
	item := m.state.Items[i]
	count := m.state.AssignedCount(i)

	name := padRight(" "+item.Name, m.itemWidth()+1)
	if m.flagged && count == 0 {
		name = unassignedStyle.Render(name)
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString(padLeft(present.Amount(item.Price), priceWidth-2) + "  ")

	for g := range m.state.Guests {
		box := "[ ]"
		if m.state.Checked[i][g] {
			box = checkedStyle.Render("[x]")
		}
		cell := padRight(" "+box, m.guestWidth(g))
		if i == m.item && g == m.guest {
			cell = cursorStyle.Render(cell)
		}
		b.WriteString(cell)
	}

	if count > 0 {
		share := calculator.ItemShare(item.Price, count)
		b.WriteString(dimStyle.Render(fmt.Sprintf(" ÷%d = %s", count, present.Money(share))))
	}

	row := b.String()
	if i == m.item {
		return rowStyle.Render(row)
	}
	return row
}

func (m Model) renderCard(r models.GuestResult) string {
	f := present.Format(r)
	lines := []string{
		cardTitleStyle.Render(f.Name),
		"Pre-tax: " + f.PreTax,
		"Tax: " + f.TaxShare,
		"Tip: " + f.TipShare,
		cardTotalStyle.Render("Total: " + f.Total),
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderCards() string {
	per := m.cardsPerRow()
	var rows []string
	for start := 0; start < len(m.state.Results); start += per {
		end := min(start+per, len(m.state.Results))
		cards := make([]string, 0, end-start)
		for _, r := range m.state.Results[start:end] {
			cards = append(cards, m.renderCard(r))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderHelp() string {
	if m.mode == modeEditName {
		return helpStyle.Render(" type a last name • enter/esc done")
	}
	help := " ↑↓←→ move • space toggle • a whole row • c calculate • q quit"
	if m.state.EditableGuest >= 0 {
		help = " ↑↓←→ move • space toggle • a whole row • e edit name • c calculate • q quit"
	}
	return helpStyle.Render(help)
}
