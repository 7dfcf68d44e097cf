package tui

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/filmfusion/internal/adapter/firebase"
	"github.com/mmcdole/filmfusion/internal/catalog"
	"github.com/mmcdole/filmfusion/internal/domain"
	"github.com/mmcdole/filmfusion/internal/service"
	"github.com/mmcdole/filmfusion/internal/tui/components"
	"github.com/mmcdole/filmfusion/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmLogout
)

// Screen is one of the top-level destinations
type Screen int

const (
	ScreenHome Screen = iota
	ScreenMovies
	ScreenFavorites
)

var screens = []Screen{ScreenHome, ScreenMovies, ScreenFavorites}

func (s Screen) String() string {
	switch s {
	case ScreenMovies:
		return "Movies"
	case ScreenFavorites:
		return "Favorites"
	default:
		return "Home"
	}
}

// Home sections
const (
	sectionTopRated = iota
	sectionLatest
)

// Layout
const (
	// Vertical chrome: nav bar and footer
	ChromeHeight = 2

	statusDuration = 3 * time.Second
	cachedAtLayout = "Jan 2 15:04"
)

// Status texts shown to the user
const (
	msgLoginRequired    = "You must be logged in to favorite movies!"
	msgNoMovies         = "No movies found."
	msgFavoritesLogin   = "Please log in to view your favorites."
	msgFavoritesEmpty   = "You haven't favorited any movies yet."
	msgLogoutForSignup  = "Log out before creating another account."
	msgLoadingMovies    = "Loading movies..."
	msgLoadingFavorites = "Loading favorites..."
)

// Options tunes the home screen and optional integrations
type Options struct {
	HomeTopRated int
	HomeLatest   int
	Opener       PosterOpener // nil disables the poster key
}

// PosterOpener shows a poster URL outside the terminal
type PosterOpener interface {
	Open(url string) error
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State  ApplicationState
	Screen Screen
	Ready  bool

	// Services
	MovieSvc    *service.MovieService
	FavoriteSvc *service.FavoriteService
	Session     *service.Session
	observer    *SessionObserver

	// Screens
	Movies      *listScreen
	Favorites   *listScreen
	TopRated    components.MovieGrid
	Latest      components.MovieGrid
	homeSection int

	// Modals
	SortModal components.SortModal
	Details   components.DetailsModal
	Form      components.FormModal

	Spinner spinner.Model
	Help    help.Model

	// Session as last reported by the observer
	user        domain.User
	loggedIn    bool
	favoriteIDs map[string]bool

	opts Options

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg        string
	StatusIsErr      bool
	statusGen        int
	Loading          bool // movie fetch in flight
	favoritesLoading bool
	moviesFetched    bool
	cachedAt         time.Time // when the cached list on screen was saved

	// Generations of in-flight loads; older results are dropped
	moviesGen    int
	favoritesGen int
	detailsKey   favoriteKey
}

// NewModel creates a new application model
func NewModel(
	movieSvc *service.MovieService,
	favoriteSvc *service.FavoriteService,
	session *service.Session,
	opts Options,
) Model {
	if opts.HomeTopRated <= 0 {
		opts.HomeTopRated = 5
	}
	if opts.HomeLatest <= 0 {
		opts.HomeLatest = 8
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.ShortSeparator = styles.DimStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle
	h.Styles.FullSeparator = styles.DimStyle

	m := Model{
		State:       StateBrowsing,
		Screen:      ScreenHome,
		MovieSvc:    movieSvc,
		FavoriteSvc: favoriteSvc,
		Session:     session,
		observer:    NewSessionObserver(),
		Movies:      newListScreen("All Movies"),
		Favorites:   newListScreen("My Favorites"),
		TopRated:    components.NewMovieGrid(),
		Latest:      components.NewMovieGrid(),
		SortModal:   components.NewSortModal(),
		Details:     components.NewDetailsModal(),
		Form:        components.NewFormModal(),
		Spinner:     sp,
		Help:        h,
		favoriteIDs: make(map[string]bool),
		opts:        opts,
		Loading:     true,
		moviesGen:   1,
	}
	if session != nil {
		m.user, m.loggedIn = session.Current()
	}
	return m
}

// Init subscribes to the session and starts the first fetch
func (m Model) Init() tea.Cmd {
	m.observer.Attach(m.Session)
	return tea.Batch(
		m.observer.Listen(),
		LoadCachedMoviesCmd(m.MovieSvc),
		FetchMoviesCmd(m.MovieSvc, m.moviesGen),
		m.Spinner.Tick,
	)
}

// Close releases the session subscription. Call it after the program exits.
func (m Model) Close() {
	m.observer.Close()
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case SessionChangedMsg:
		// Notifications can be dropped or arrive stale; the session is the truth
		user, loggedIn := m.Session.Current()
		if user == m.user && loggedIn == m.loggedIn {
			return m, m.observer.Listen()
		}
		cmd := m.applySession(user, loggedIn)
		return m, tea.Batch(cmd, m.observer.Listen())

	case MoviesCachedMsg:
		// A finished fetch is newer than the cache
		if m.moviesFetched {
			return m, nil
		}
		m.setMovies(msg.Movies)
		m.cachedAt = msg.FetchedAt
		return m, nil

	case MoviesFetchedMsg:
		if msg.Gen != m.moviesGen {
			return m, nil
		}
		m.Loading = false
		if msg.Err != nil {
			// Keep whatever is on screen
			text := fmt.Sprintf("Failed to load movies: %v", msg.Err)
			if !m.moviesFetched && !m.cachedAt.IsZero() {
				text += fmt.Sprintf(" (showing movies saved %s)", m.cachedAt.Format(cachedAtLayout))
			}
			return m, m.setError(text)
		}
		m.moviesFetched = true
		m.setMovies(msg.Movies)
		return m, nil

	case FavoritesLoadedMsg:
		if msg.Gen != m.favoritesGen || msg.UID != m.user.UID {
			return m, nil
		}
		m.favoritesLoading = false
		if msg.Err != nil {
			return m, m.setError(fmt.Sprintf("Failed to load favorites: %v", msg.Err))
		}
		m.setFavorites(domain.FavoriteMovies(msg.Favorites))
		return m, nil

	case FavoriteCheckedMsg:
		if !m.Details.IsVisible() || msg.Key != m.detailsKey {
			return m, nil
		}
		if msg.Err != nil {
			m.Details.SetFavorite(false)
			return m, m.setError(fmt.Sprintf("Failed to check favorite: %v", msg.Err))
		}
		m.Details.SetFavorite(msg.Favorited)
		return m, nil

	case FavoriteToggledMsg:
		return m.handleToggled(msg)

	case LoginResultMsg:
		if !m.Form.IsVisible() || m.Form.Kind() != components.FormLogin {
			return m, nil
		}
		if msg.Err != nil {
			m.Form.SetError(authMessage(msg.Err))
			return m, nil
		}
		m.Form.Hide()
		return m, m.setStatus("Welcome back, " + msg.User.Name() + "!")

	case SignupResultMsg:
		if !m.Form.IsVisible() || m.Form.Kind() != components.FormSignup {
			return m, nil
		}
		if msg.Err != nil && msg.User.UID == "" {
			m.Form.SetError(authMessage(msg.Err))
			return m, nil
		}
		m.Form.Hide()
		if msg.Err != nil {
			return m, m.setError(msg.Err.Error())
		}
		return m, m.setStatus("Account created. Welcome, " + msg.User.Name() + "!")

	case ClearStatusMsg:
		if msg.Gen == m.statusGen {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil

	case PosterOpenedMsg:
		return m, m.setStatus("Opened poster for " + msg.Title)

	case ErrMsg:
		return m, m.setError(msg.Error())
	}

	// Cursor blink and other input messages
	var cmd tea.Cmd
	if m.Form.IsVisible() {
		m.Form, cmd, _ = m.Form.Update(msg)
	} else if s := m.activeList(); s != nil && s.search.Focused() {
		s.search, cmd, _ = s.search.Update(msg)
	}
	return m, cmd
}

// handleToggled applies the outcome of a favorite toggle
func (m Model) handleToggled(msg FavoriteToggledMsg) (tea.Model, tea.Cmd) {
	current := m.Details.IsVisible() && msg.Key == m.detailsKey
	if current {
		m.Details.SetBusy(false)
	}

	switch {
	case errors.Is(msg.Err, domain.ErrNotLoggedIn):
		return m, m.setError(msgLoginRequired)
	case msg.Err != nil:
		return m, m.setError(fmt.Sprintf("Failed to update favorite: %v", msg.Err))
	}

	if msg.Key.UID == m.user.UID {
		m.updateFavorite(msg.Movie, msg.Favorited)
	}
	if current {
		m.Details.SetFavorite(msg.Favorited)
	}

	if msg.Favorited {
		return m, m.setStatus("Added " + msg.Movie.DisplayTitle() + " to favorites")
	}
	return m, m.setStatus("Removed " + msg.Movie.DisplayTitle() + " from favorites")
}

// applySession reacts to a login or logout
func (m *Model) applySession(user domain.User, loggedIn bool) tea.Cmd {
	m.user = user
	m.loggedIn = loggedIn
	m.favoritesGen++

	var cmds []tea.Cmd
	if loggedIn {
		var cached []domain.Movie
		if favs, ok := m.FavoriteSvc.Cached(user); ok {
			cached = domain.FavoriteMovies(favs)
		}
		m.setFavorites(cached)
		if !m.busy() {
			cmds = append(cmds, m.Spinner.Tick)
		}
		m.favoritesLoading = true
		cmds = append(cmds, LoadFavoritesCmd(m.FavoriteSvc, user, m.favoritesGen))
	} else {
		m.favoritesLoading = false
		m.setFavorites(nil)
	}

	if m.Details.IsVisible() {
		movie := m.Details.Movie()
		m.Details.SetLoggedIn(loggedIn)
		m.detailsKey = favoriteKey{UID: user.UID, MovieID: movie.ID}
		if loggedIn {
			cmds = append(cmds, CheckFavoriteCmd(m.FavoriteSvc, user, movie.ID))
		}
	}
	return tea.Batch(cmds...)
}

// refresh refetches the movies and, when logged in, the favorites
func (m *Model) refresh() tea.Cmd {
	var cmds []tea.Cmd
	if !m.busy() {
		cmds = append(cmds, m.Spinner.Tick)
	}

	m.moviesGen++
	m.Loading = true
	cmds = append(cmds, FetchMoviesCmd(m.MovieSvc, m.moviesGen))

	if m.loggedIn {
		m.favoritesGen++
		m.favoritesLoading = true
		cmds = append(cmds, LoadFavoritesCmd(m.FavoriteSvc, m.user, m.favoritesGen))
	}
	return tea.Batch(cmds...)
}

func (m Model) busy() bool {
	return m.Loading || m.favoritesLoading
}

// setMovies feeds a new catalog into the Movies and Home screens
func (m *Model) setMovies(movies []domain.Movie) {
	m.Movies.setSource(movies)
	m.TopRated.SetMovies(catalog.TopRated(movies, m.opts.HomeTopRated))
	m.Latest.SetMovies(catalog.Latest(movies, m.opts.HomeLatest))
}

// setFavorites replaces the favorites list and the hearts shown on cards
func (m *Model) setFavorites(movies []domain.Movie) {
	m.Favorites.setSource(movies)

	ids := make(map[string]bool, len(movies))
	for _, mv := range movies {
		ids[mv.ID] = true
	}
	m.favoriteIDs = ids
	m.TopRated.SetFavorites(ids)
	m.Latest.SetFavorites(ids)
	m.Movies.grid.SetFavorites(ids)
	m.Favorites.grid.SetFavorites(ids)
}

// updateFavorite adds or removes one movie from the local favorites list
func (m *Model) updateFavorite(movie domain.Movie, favorited bool) {
	source := m.Favorites.browser.Source()
	idx := slices.IndexFunc(source, func(mv domain.Movie) bool { return mv.ID == movie.ID })

	next := slices.Clone(source)
	switch {
	case favorited && idx < 0:
		next = append(next, movie.Snapshot().Movie())
	case !favorited && idx >= 0:
		next = slices.Delete(next, idx, idx+1)
	default:
		return
	}
	m.setFavorites(next)
}

// activeList returns the list screen on display, or nil on Home
func (m Model) activeList() *listScreen {
	switch m.Screen {
	case ScreenMovies:
		return m.Movies
	case ScreenFavorites:
		return m.Favorites
	}
	return nil
}

// switchScreen changes the destination, dropping search focus
func (m *Model) switchScreen(s Screen) {
	if cur := m.activeList(); cur != nil {
		cur.search.Blur()
	}
	m.Screen = s
}

// openDetails shows the details modal for movie and checks its heart
func (m *Model) openDetails(movie domain.Movie) tea.Cmd {
	if s := m.activeList(); s != nil {
		s.browser.Select(movie.ID)
	}
	m.Details.Show(movie, m.loggedIn)
	m.Details.SetSize(m.Width, m.Height)
	m.detailsKey = favoriteKey{UID: m.user.UID, MovieID: movie.ID}
	if !m.loggedIn {
		return nil
	}
	return CheckFavoriteCmd(m.FavoriteSvc, m.user, movie.ID)
}

// closeDetails hides the details modal and drops the selection
func (m *Model) closeDetails() {
	m.Details.Hide()
	m.Movies.browser.ClearSelection()
	m.Favorites.browser.ClearSelection()
	m.detailsKey = favoriteKey{}
}

// toggleFavorite starts a toggle of the movie in the details modal
func (m *Model) toggleFavorite() tea.Cmd {
	if m.Details.Busy() || (m.loggedIn && m.Details.Checking()) {
		return nil
	}
	movie := m.Details.Movie()
	if m.loggedIn {
		m.Details.SetBusy(true)
	}
	return ToggleFavoriteCmd(m.FavoriteSvc, m.user, movie, m.Details.Favorited())
}

// setStatus shows an informational message for a few seconds
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusGen++
	m.StatusMsg = text
	m.StatusIsErr = false
	return ClearStatusCmd(m.statusGen, statusDuration)
}

// setError shows an error message for a few seconds
func (m *Model) setError(text string) tea.Cmd {
	cmd := m.setStatus(text)
	m.StatusIsErr = true
	return cmd
}

// authMessage returns the text shown for a failed login or signup
func authMessage(err error) string {
	var authErr *firebase.AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	if errors.Is(err, domain.ErrMissingInput) {
		return "Please fill in all fields."
	}
	return err.Error()
}

// updateLayout sizes every component for the terminal
func (m *Model) updateLayout() {
	width := max(styles.CardWidth+2, m.Width-2)
	contentHeight := max(8, m.Height-ChromeHeight)

	m.Movies.setSize(width, contentHeight)
	m.Favorites.setSize(width, contentHeight)

	// Two titled sections share the home screen
	section := max(4, (contentHeight-4)/2)
	m.TopRated.SetSize(width, section)
	m.Latest.SetSize(width, section)

	m.Details.SetSize(m.Width, m.Height)
	m.Form.SetSize(m.Width, m.Height)
	m.Help.Width = m.Width
}
