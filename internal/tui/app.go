// Package tui is the interactive terminal front end: a checkbox grid of
// items by guests, the editable guest name, a Calculate action and the
// resulting cards.
package tui

import (
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmynk/brunchsplit/internal/calculator"
	"github.com/mmynk/brunchsplit/internal/present"
	"github.com/mmynk/brunchsplit/internal/session"
)

type mode int

const (
	modeGrid mode = iota
	modeEditName
	modeAlert
)

type Model struct {
	sess      *session.Session
	state     session.State
	item      int // cursor row
	guest     int // cursor column
	offset    int // scroll offset
	width     int
	height    int
	mode      mode
	nameInput textinput.Model
	alert     string
	flagged   bool // highlight unassigned rows after a blocked calculation
	quitting  bool
}

func NewModel(sess *session.Session) Model {
	ni := textinput.New()
	ni.Placeholder = "Last name"
	ni.CharLimit = 40
	ni.SetValue(sess.EditableName())

	return Model{
		sess:      sess,
		state:     sess.Snapshot(),
		nameInput: ni,
		width:     120,
		height:    40,
	}
}

func (m *Model) refresh() {
	m.state = m.sess.Snapshot()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeGrid:
			return m.updateGrid(msg)
		case modeEditName:
			return m.updateEditName(msg)
		case modeAlert:
			// blocking: any key dismisses, nothing else happens
			m.alert = ""
			m.mode = modeGrid
			return m, nil
		}
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.item > 0 {
			m.item--
			m.clampOffset()
		}

	case "down", "j":
		if m.item < len(m.state.Items)-1 {
			m.item++
			m.clampOffset()
		}

	case "left", "h":
		if m.guest > 0 {
			m.guest--
		}

	case "right", "l":
		if m.guest < len(m.state.Guests)-1 {
			m.guest++
		}

	case "home", "g":
		m.item = 0
		m.clampOffset()

	case "end", "G":
		m.item = max(0, len(m.state.Items)-1)
		m.clampOffset()

	case " ", "space", "x":
		if _, err := m.sess.Toggle(m.item, m.guest); err != nil {
			slog.Error("Toggle failed", "item", m.item, "guest", m.guest, "error", err)
		}
		m.refresh()

	case "a":
		// whole row: check everyone unless everyone is already checked
		all := m.state.AssignedCount(m.item) < len(m.state.Guests)
		for g := range m.state.Guests {
			if err := m.sess.SetAssigned(m.item, g, all); err != nil {
				slog.Error("SetAssigned failed", "item", m.item, "guest", g, "error", err)
			}
		}
		m.refresh()

	case "e":
		if m.state.EditableGuest >= 0 {
			m.nameInput.Focus()
			m.nameInput.CursorEnd()
			m.mode = modeEditName
		}

	case "c", "enter":
		return m.calculate()
	}

	return m, nil
}

func (m Model) updateEditName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "tab":
		m.nameInput.Blur()
		m.mode = modeGrid
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	// every keystroke renames, so headers and visible cards follow along
	if err := m.sess.SetEditableName(m.nameInput.Value()); err != nil {
		slog.Error("SetEditableName failed", "error", err)
	}
	m.refresh()
	return m, cmd
}

func (m Model) calculate() (tea.Model, tea.Cmd) {
	_, err := m.sess.Calculate()
	if err != nil {
		if errors.Is(err, calculator.ErrIncompleteAssignment) {
			m.alert = present.IncompleteMessage
			m.flagged = true
		} else {
			slog.Error("Calculate failed", "error", err)
			m.alert = err.Error()
		}
		m.mode = modeAlert
		return m, nil
	}
	m.flagged = false
	m.refresh()
	m.clampOffset()
	return m, nil
}

// gridRows is how many item rows fit, leaving room for the title,
// participants, header, cards and help lines.
func (m Model) gridRows() int {
	reserved := 6
	if m.state.Results != nil {
		reserved += 7 * ((len(m.state.Results) + m.cardsPerRow() - 1) / m.cardsPerRow())
	}
	return max(3, m.height-reserved)
}

func (m *Model) clampOffset() {
	visible := m.gridRows()
	if m.item < m.offset {
		m.offset = m.item
	}
	if m.item >= m.offset+visible {
		m.offset = m.item - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}
