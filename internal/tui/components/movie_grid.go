package components

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/filmfusion/internal/domain"
	"github.com/mmcdole/filmfusion/internal/search"
	"github.com/mmcdole/filmfusion/internal/tui/styles"
)

// cardHeight is the rendered height of one card: two text lines plus border
const cardHeight = 4

// MovieGrid displays movie cards in rows and tracks the focused card
type MovieGrid struct {
	movies    []domain.Movie
	cursor    int
	offset    int // first visible row
	width     int
	height    int
	highlight string
	favorites map[string]bool
}

// NewMovieGrid creates an empty grid
func NewMovieGrid() MovieGrid {
	return MovieGrid{width: styles.CardWidth + 2, height: cardHeight}
}

// SetMovies replaces the cards, keeping the cursor in range
func (g *MovieGrid) SetMovies(movies []domain.Movie) {
	g.movies = movies
	if g.cursor >= len(movies) {
		g.cursor = max(0, len(movies)-1)
	}
	g.ensureVisible()
}

// Movies returns the displayed cards
func (g MovieGrid) Movies() []domain.Movie {
	return g.movies
}

// SetHighlight sets the search term highlighted in titles
func (g *MovieGrid) SetHighlight(term string) {
	g.highlight = term
}

// SetFavorites marks movie ids that get a heart on their card
func (g *MovieGrid) SetFavorites(ids map[string]bool) {
	g.favorites = ids
}

// SetSize sets the available area
func (g *MovieGrid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.ensureVisible()
}

// Reset moves the cursor to the first card
func (g *MovieGrid) Reset() {
	g.cursor = 0
	g.offset = 0
}

// Cursor returns the focused card index
func (g MovieGrid) Cursor() int {
	return g.cursor
}

// SetCursor focuses card i when it exists
func (g *MovieGrid) SetCursor(i int) {
	if i >= 0 && i < len(g.movies) {
		g.cursor = i
		g.ensureVisible()
	}
}

// Selected returns the focused movie
func (g MovieGrid) Selected() (domain.Movie, bool) {
	if g.cursor < 0 || g.cursor >= len(g.movies) {
		return domain.Movie{}, false
	}
	return g.movies[g.cursor], true
}

// Columns returns how many cards fit side by side
func (g MovieGrid) Columns() int {
	return max(1, g.width/(styles.CardWidth+2))
}

func (g MovieGrid) visibleRows() int {
	return max(1, g.height/cardHeight)
}

// HandleKey moves the cursor. It reports false when the key is not a grid
// movement or the move would leave the grid vertically, so the caller can
// move focus elsewhere.
func (g *MovieGrid) HandleKey(msg tea.KeyMsg) bool {
	if len(g.movies) == 0 {
		return false
	}
	cols := g.Columns()

	switch {
	case key.Matches(msg, gridKeys.Left):
		if g.cursor%cols > 0 {
			g.cursor--
		}
	case key.Matches(msg, gridKeys.Right):
		if g.cursor%cols < cols-1 && g.cursor+1 < len(g.movies) {
			g.cursor++
		}
	case key.Matches(msg, gridKeys.Up):
		if g.cursor-cols < 0 {
			return false
		}
		g.cursor -= cols
	case key.Matches(msg, gridKeys.Down):
		if g.cursor+cols >= len(g.movies) {
			// Last partial row: land on its last card
			lastRow := (len(g.movies) - 1) / cols
			if g.cursor/cols == lastRow {
				return false
			}
			g.cursor = len(g.movies) - 1
		} else {
			g.cursor += cols
		}
	case key.Matches(msg, gridKeys.Home):
		g.cursor = 0
	case key.Matches(msg, gridKeys.End):
		g.cursor = len(g.movies) - 1
	default:
		return false
	}

	g.ensureVisible()
	return true
}

// ensureVisible scrolls so the cursor row is on screen
func (g *MovieGrid) ensureVisible() {
	row := g.cursor / g.Columns()
	rows := g.visibleRows()
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+rows {
		g.offset = row - rows + 1
	}
}

// View renders the visible rows. focused controls whether the cursor is drawn.
func (g MovieGrid) View(focused bool) string {
	if len(g.movies) == 0 {
		return ""
	}

	cols := g.Columns()
	totalRows := (len(g.movies) + cols - 1) / cols
	endRow := min(totalRows, g.offset+g.visibleRows())

	var rows []string
	for r := g.offset; r < endRow; r++ {
		var cards []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(g.movies) {
				break
			}
			cards = append(cards, g.renderCard(g.movies[i], focused && i == g.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (g MovieGrid) renderCard(m domain.Movie, selected bool) string {
	inner := styles.CardWidth - 2

	title := styles.Truncate(m.DisplayTitle(), inner)
	titleStyle := lipgloss.NewStyle().Foreground(styles.LightGray)
	if selected {
		titleStyle = lipgloss.NewStyle().Foreground(styles.White).Bold(true)
	}
	titleLine := styles.Highlight(title, search.Highlight(g.highlight, title), titleStyle)

	meta := styles.RatingStyle.Render("★ "+m.DisplayRating()) + styles.DimStyle.Render("  "+m.DisplayYear())
	if g.favorites[m.ID] {
		meta += "  " + styles.HeartFullStyle.Render(styles.HeartFull)
	}

	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	return style.Render(titleLine + "\n" + meta)
}
