package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/filmfusion/internal/catalog"
	"github.com/mmcdole/filmfusion/internal/tui/styles"
)

// SortModal is a small popup for choosing sort order
type SortModal struct {
	visible bool
	options []catalog.SortMode
	cursor  int
	active  catalog.SortMode
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{options: catalog.SortModes()}
}

// Show displays the modal with the cursor on the active mode
func (m *SortModal) Show(active catalog.SortMode) {
	m.visible = true
	m.active = active
	m.cursor = 0
	for i, opt := range m.options {
		if opt == active {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice.
func (m *SortModal) HandleKey(msg tea.KeyMsg) (handled bool, selection *catalog.SortMode) {
	if !m.visible {
		return false, nil
	}

	switch {
	case key.Matches(msg, sortKeys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(msg, sortKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, sortKeys.Select):
		chosen := m.options[m.cursor]
		m.visible = false
		return true, &chosen
	case key.Matches(msg, sortKeys.Close):
		m.visible = false
	}

	return true, nil // consume all keys when visible
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	const width = 24

	var lines []string
	for i, opt := range m.options {
		prefix := "  "
		if opt == m.active {
			prefix = "✓ "
		}
		text := []rune(prefix + opt.String())
		for len(text) < width {
			text = append(text, ' ')
		}

		style := styles.NormalItemStyle
		switch {
		case i == m.cursor:
			style = styles.SelectedItemStyle
		case opt == m.active:
			style = styles.NormalItemStyle.Foreground(styles.FusionRed)
		}
		lines = append(lines, style.Render(string(text)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.FusionRed).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Sort by") + "\n" + strings.Join(lines, "\n"))
}
