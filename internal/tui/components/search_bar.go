package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/filmfusion/internal/tui/styles"
)

// SearchBar is the title search input above the movie grid
type SearchBar struct {
	input textinput.Model
	width int
}

// NewSearchBar creates an unfocused search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search movies by title..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.SearchPromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.CharLimit = 100
	return SearchBar{input: ti, width: 40}
}

// Focus gives the search bar keyboard input
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes keyboard input
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the search bar takes keyboard input
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the current term
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the current term
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
}

// SetWidth sets the rendered width
func (s *SearchBar) SetWidth(width int) {
	s.width = max(20, width)
	s.input.Width = s.width - 6
}

// Update forwards a message to the input. changed reports whether the term
// differs afterwards.
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, s.input.Value() != before
}

// View renders the search bar
func (s SearchBar) View() string {
	style := styles.SearchStyle
	if s.input.Focused() {
		style = styles.SearchFocusedStyle
	}
	return style.Width(s.width - 2).Render(s.input.View())
}
