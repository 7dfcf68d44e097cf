package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/filmfusion/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateConfirmLogout:
		return m.renderLogoutConfirmation()
	}

	// Modals replace the screen
	switch {
	case m.Form.IsVisible():
		return m.Form.View()
	case m.Details.IsVisible():
		return m.Details.View()
	case m.SortModal.IsVisible():
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.SortModal.View())
	}

	var content string
	switch m.Screen {
	case ScreenMovies:
		content = m.renderMovies()
	case ScreenFavorites:
		content = m.renderFavorites()
	default:
		content = m.renderHome()
	}

	contentHeight := max(1, m.Height-ChromeHeight)
	content = lipgloss.NewStyle().
		Width(m.Width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Padding(0, 1).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderNavBar(),
		content,
		m.renderFooter(),
	)
}

// renderNavBar renders the brand, the screen tabs and the account badge
func (m Model) renderNavBar() string {
	left := styles.BrandStyle.Render("Film Fusion")
	for i, s := range screens {
		label := fmt.Sprintf("%d %s", i+1, s)
		if s == m.Screen {
			left += styles.NavItemActiveStyle.Render(label)
		} else {
			left += styles.NavItemStyle.Render(label)
		}
	}

	var right string
	if m.loggedIn {
		right = styles.UserBadgeStyle.Render(m.user.Name())
	} else {
		right = styles.AccentStyle.Render("L") + styles.DimStyle.Render(" log in  ") +
			styles.AccentStyle.Render("A") + styles.DimStyle.Render(" sign up")
	}

	gap := max(1, m.Width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	return styles.NavBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// renderHome renders the top rated and latest sections
func (m Model) renderHome() string {
	if len(m.Movies.browser.Source()) == 0 {
		if m.Loading {
			return m.renderSpinner(msgLoadingMovies)
		}
		return styles.DimStyle.Render(msgNoMovies)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.SectionTitleStyle.Render("Top Rated"),
		m.TopRated.View(m.homeSection == sectionTopRated),
		"",
		styles.SectionTitleStyle.Render("Latest Releases"),
		m.Latest.View(m.homeSection == sectionLatest),
	)
}

// renderMovies renders the full catalog screen
func (m Model) renderMovies() string {
	s := m.Movies
	if len(s.browser.Source()) == 0 && m.Loading {
		return m.renderSpinner(msgLoadingMovies)
	}
	return m.renderList(s, msgNoMovies)
}

// renderFavorites renders the favorites screen
func (m Model) renderFavorites() string {
	s := m.Favorites
	switch {
	case !m.loggedIn:
		return m.renderListHeader(s) + "\n" + styles.DimStyle.Render(msgFavoritesLogin)
	case len(s.browser.Source()) == 0 && m.favoritesLoading:
		return m.renderSpinner(msgLoadingFavorites)
	case len(s.browser.Source()) == 0:
		return m.renderListHeader(s) + "\n" + styles.DimStyle.Render(msgFavoritesEmpty)
	}
	return m.renderList(s, msgNoMovies)
}

func (m Model) renderListHeader(s *listScreen) string {
	return styles.SectionTitleStyle.Render(s.title)
}

// renderList renders search bar, sort line, grid and pagination
func (m Model) renderList(s *listScreen, empty string) string {
	r := s.browser.View()

	sortLine := styles.DimStyle.Render("Sort: ") + styles.SubtitleStyle.Render(s.browser.Sort().String())
	if r.TotalPages > 0 {
		sortLine += styles.DimStyle.Render(fmt.Sprintf("   %d movies · page %d of %d", len(r.Filtered), r.Page, r.TotalPages))
	}

	var body string
	if r.Empty() {
		body = styles.DimStyle.Render(empty)
		if len(s.suggestions) > 0 {
			body += "\n" + styles.SubtitleStyle.Render("Did you mean: ") +
				styles.AccentStyle.Render(strings.Join(s.suggestions, ", ")) +
				styles.SubtitleStyle.Render("?")
		}
	} else {
		body = s.grid.View(true)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderListHeader(s),
		s.search.View(),
		sortLine,
		body,
		s.pager.View(),
	)
}

// renderFooter renders status on the left and key hints on the right
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.SuccessStyle.Render(m.StatusMsg)
	case m.busy():
		left = m.renderSpinner("Syncing...")
	}

	right := m.Help.View(Keys)

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderSpinner(text string) string {
	return m.Spinner.View() + " " + styles.DimStyle.Render(text)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	h := m.Help
	h.ShowAll = true

	content := styles.ModalTitleStyle.Render("Keyboard shortcuts") + "\n" +
		h.View(Keys) + "\n\n" +
		styles.DimStyle.Render("Press ? or esc to return")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(content))
}

// renderLogoutConfirmation renders the logout confirmation modal
func (m Model) renderLogoutConfirmation() string {
	modal := `
      Log out of Film Fusion?

  Your favorites stay saved online.

        [Y] Yes      [N] No
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(modal))
}

