package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/filmfusion/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil

	case StateConfirmLogout:
		switch {
		case key.Matches(msg, Keys.Confirm):
			m.State = StateBrowsing
			m.Session.Logout()
			return m, m.setStatus("Logged out")
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
		}
		return m, nil
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// Typing into the search bar
	if s := m.activeList(); s != nil && s.search.Focused() {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			s.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		var changed bool
		s.search, cmd, changed = s.search.Update(msg)
		if changed {
			s.setSearch(s.search.Value())
		}
		return m, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Home):
		m.switchScreen(ScreenHome)
		return m, nil

	case key.Matches(msg, Keys.Movies):
		m.switchScreen(ScreenMovies)
		return m, nil

	case key.Matches(msg, Keys.Favorites):
		m.switchScreen(ScreenFavorites)
		return m, nil

	case key.Matches(msg, Keys.NextTab):
		m.switchScreen(screens[(int(m.Screen)+1)%len(screens)])
		return m, nil

	case key.Matches(msg, Keys.Login):
		if m.loggedIn {
			m.State = StateConfirmLogout
			return m, nil
		}
		m.Form.Show(components.FormLogin)
		m.Form.SetSize(m.Width, m.Height)
		return m, nil

	case key.Matches(msg, Keys.Signup):
		if m.loggedIn {
			return m, m.setError(msgLogoutForSignup)
		}
		m.Form.Show(components.FormSignup)
		m.Form.SetSize(m.Width, m.Height)
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		return m, m.refresh()

	case key.Matches(msg, Keys.Escape):
		if s := m.activeList(); s != nil && s.browser.Search() != "" {
			s.search.SetValue("")
			s.setSearch("")
		}
		return m, nil
	}

	if m.Screen == ScreenHome {
		return m.handleHomeKey(msg)
	}
	return m.handleListKey(msg, m.activeList())
}

// handleHomeKey moves between the two home sections
func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	grid := &m.TopRated
	if m.homeSection == sectionLatest {
		grid = &m.Latest
	}

	if key.Matches(msg, Keys.Open) {
		if movie, ok := grid.Selected(); ok {
			return m, m.openDetails(movie)
		}
		return m, nil
	}

	if grid.HandleKey(msg) {
		return m, nil
	}

	// Leaving a section vertically moves to the other one
	gridKeys := components.DefaultGridKeyMap()
	switch {
	case key.Matches(msg, gridKeys.Down) && m.homeSection == sectionTopRated && len(m.Latest.Movies()) > 0:
		m.homeSection = sectionLatest
	case key.Matches(msg, gridKeys.Up) && m.homeSection == sectionLatest && len(m.TopRated.Movies()) > 0:
		m.homeSection = sectionTopRated
	}
	return m, nil
}

// handleListKey handles keys on the Movies and Favorites screens
func (m Model) handleListKey(msg tea.KeyMsg, s *listScreen) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Search):
		return m, s.search.Focus()

	case key.Matches(msg, Keys.Sort):
		m.SortModal.Show(s.browser.Sort())
		return m, nil

	case key.Matches(msg, Keys.NextPage):
		s.nextPage()
		return m, nil

	case key.Matches(msg, Keys.PrevPage):
		s.prevPage()
		return m, nil

	case key.Matches(msg, Keys.Open):
		if movie, ok := s.grid.Selected(); ok {
			return m, m.openDetails(movie)
		}
		return m, nil
	}

	s.grid.HandleKey(msg)
	return m, nil
}

// routeToModal sends keys to whichever modal is open
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	// Login / signup form
	if m.Form.IsVisible() {
		var cmd tea.Cmd
		var result components.FormResult
		m.Form, cmd, result = m.Form.Update(msg)
		if result != components.FormSubmitted {
			return true, m, cmd
		}

		if m.Form.Missing() {
			m.Form.SetError("Please fill in all fields.")
			return true, m, nil
		}
		m.Form.SetBusy(true)
		values := m.Form.Values()
		if m.Form.Kind() == components.FormSignup {
			return true, m, SignupCmd(m.Session, values[0], values[1], values[2])
		}
		return true, m, LoginCmd(m.Session, values[0], values[1])
	}

	// Details modal
	if m.Details.IsVisible() {
		switch {
		case key.Matches(msg, Keys.Escape):
			m.closeDetails()
		case key.Matches(msg, Keys.Favorite):
			return true, m, m.toggleFavorite()
		case key.Matches(msg, Keys.Poster):
			if m.opts.Opener == nil {
				return true, m, nil
			}
			return true, m, OpenPosterCmd(m.opts.Opener, m.Details.Movie())
		case key.Matches(msg, Keys.Login):
			// Allow logging in straight from the details modal
			if !m.loggedIn {
				m.Form.Show(components.FormLogin)
				m.Form.SetSize(m.Width, m.Height)
			}
		case key.Matches(msg, Keys.Quit):
			return true, m, tea.Quit
		}
		return true, m, nil
	}

	// Sort modal
	if m.SortModal.IsVisible() {
		handled, selection := m.SortModal.HandleKey(msg)
		if handled {
			if selection != nil {
				if s := m.activeList(); s != nil {
					s.setSort(*selection)
				}
			}
			return true, m, nil
		}
	}

	return false, m, nil
}
