package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/filmfusion/internal/domain"
	"github.com/mmcdole/filmfusion/internal/tui/styles"
)

const detailsWidth = 56

// favoriteState is what the modal knows about the shown movie's heart
type favoriteState int

const (
	favoriteUnknown favoriteState = iota
	favoriteChecking
	favoriteOn
	favoriteOff
)

// DetailsModal shows one movie with its favorite toggle
type DetailsModal struct {
	visible  bool
	movie    domain.Movie
	state    favoriteState
	busy     bool // a toggle is in flight
	loggedIn bool
	width    int
	height   int
}

// NewDetailsModal creates a hidden details modal
func NewDetailsModal() DetailsModal {
	return DetailsModal{}
}

// Show opens the modal for movie. The heart starts in the checking state.
func (m *DetailsModal) Show(movie domain.Movie, loggedIn bool) {
	m.visible = true
	m.movie = movie
	m.loggedIn = loggedIn
	m.busy = false
	m.state = favoriteOff
	if loggedIn {
		m.state = favoriteChecking
	}
}

// Hide closes the modal
func (m *DetailsModal) Hide() {
	m.visible = false
	m.busy = false
}

// IsVisible returns whether the modal is shown
func (m DetailsModal) IsVisible() bool {
	return m.visible
}

// Movie returns the movie on display
func (m DetailsModal) Movie() domain.Movie {
	return m.movie
}

// SetLoggedIn updates the session state shown in the footer.
// Logging out clears the heart.
func (m *DetailsModal) SetLoggedIn(loggedIn bool) {
	m.loggedIn = loggedIn
	if !loggedIn {
		m.state = favoriteOff
		m.busy = false
	} else {
		m.state = favoriteChecking
	}
}

// SetFavorite records a check or toggle result
func (m *DetailsModal) SetFavorite(favorited bool) {
	m.busy = false
	if favorited {
		m.state = favoriteOn
	} else {
		m.state = favoriteOff
	}
}

// SetBusy marks a toggle as in flight
func (m *DetailsModal) SetBusy(busy bool) {
	m.busy = busy
}

// Busy reports whether a toggle is in flight
func (m DetailsModal) Busy() bool {
	return m.busy
}

// Favorited returns the last known favorite state
func (m DetailsModal) Favorited() bool {
	return m.state == favoriteOn
}

// Checking reports whether the favorite state is still unknown
func (m DetailsModal) Checking() bool {
	return m.state == favoriteChecking || m.state == favoriteUnknown
}

// SetSize sets the terminal size used to center the modal
func (m *DetailsModal) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the modal centered in the terminal
func (m DetailsModal) View() string {
	if !m.visible {
		return ""
	}

	inner := detailsWidth - 4
	var b strings.Builder

	b.WriteString(styles.ModalTitleStyle.Render(styles.Truncate(m.movie.DisplayTitle(), inner)))
	b.WriteString("\n")

	b.WriteString(styles.RatingStyle.Render("★ " + m.movie.DisplayRating()))
	b.WriteString(styles.DimStyle.Render("   Year: "))
	b.WriteString(styles.SubtitleStyle.Render(m.movie.DisplayYear()))
	b.WriteString("\n\n")

	plot := styles.Wrap(m.movie.DisplayPlot(), inner)
	if len(plot) > 10 {
		plot = append(plot[:9], styles.Truncate(plot[9], inner-3)+"...")
	}
	for _, line := range plot {
		b.WriteString(styles.SubtitleStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.heartLine())
	b.WriteString("\n\n")
	b.WriteString(styles.HelpKeyStyle.Render("f"))
	b.WriteString(styles.HelpDescStyle.Render(" favorite  "))
	if m.movie.Poster != "" {
		b.WriteString(styles.HelpKeyStyle.Render("o"))
		b.WriteString(styles.HelpDescStyle.Render(" poster  "))
	}
	b.WriteString(styles.HelpKeyStyle.Render("esc"))
	b.WriteString(styles.HelpDescStyle.Render(" close"))

	modal := styles.ModalStyle.Width(detailsWidth).Render(b.String())
	if m.width == 0 || m.height == 0 {
		return modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m DetailsModal) heartLine() string {
	switch {
	case !m.loggedIn:
		return styles.HeartEmptyStyle.Render(styles.HeartEmpty) +
			styles.DimStyle.Render(" Log in to favorite")
	case m.busy:
		return styles.DimStyle.Render("Saving...")
	case m.Checking():
		return styles.DimStyle.Render("Checking favorites...")
	case m.state == favoriteOn:
		return styles.HeartFullStyle.Render(styles.HeartFull) +
			styles.SubtitleStyle.Render(" In your favorites")
	default:
		return styles.HeartEmptyStyle.Render(styles.HeartEmpty) +
			styles.SubtitleStyle.Render(" Add to favorites")
	}
}
