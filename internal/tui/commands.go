package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/filmfusion/internal/domain"
	"github.com/mmcdole/filmfusion/internal/service"
)

// Timeouts for backend calls
const (
	fetchTimeout = 60 * time.Second
	writeTimeout = 30 * time.Second
	authTimeout  = 30 * time.Second
)

// Command factories for async operations

// LoadCachedMoviesCmd reads the movie list from the local cache
func LoadCachedMoviesCmd(svc *service.MovieService) tea.Cmd {
	return func() tea.Msg {
		movies, ok := svc.Cached()
		if !ok {
			return nil
		}
		fetchedAt, _ := svc.CachedAt()
		return MoviesCachedMsg{Movies: movies, FetchedAt: fetchedAt}
	}
}

// FetchMoviesCmd loads the movie collection from the backend
func FetchMoviesCmd(svc *service.MovieService, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		movies, err := svc.Fetch(ctx)
		return MoviesFetchedMsg{Gen: gen, Movies: movies, Err: err}
	}
}

// LoadFavoritesCmd loads the favorites of user from the backend
func LoadFavoritesCmd(svc *service.FavoriteService, user domain.User, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		favs, err := svc.List(ctx, user)
		return FavoritesLoadedMsg{Gen: gen, UID: user.UID, Favorites: favs, Err: err}
	}
}

// CheckFavoriteCmd asks whether user has favorited movieID
func CheckFavoriteCmd(svc *service.FavoriteService, user domain.User, movieID string) tea.Cmd {
	key := favoriteKey{UID: user.UID, MovieID: movieID}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		ok, err := svc.Check(ctx, user, movieID)
		return FavoriteCheckedMsg{Key: key, Favorited: ok, Err: err}
	}
}

// ToggleFavoriteCmd flips the favorite flag of movie for user
func ToggleFavoriteCmd(svc *service.FavoriteService, user domain.User, movie domain.Movie, favorited bool) tea.Cmd {
	key := favoriteKey{UID: user.UID, MovieID: movie.ID}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		state, err := svc.Toggle(ctx, user, movie, favorited)
		return FavoriteToggledMsg{Key: key, Movie: movie, Favorited: state, Err: err}
	}
}

// LoginCmd signs in with email and password
func LoginCmd(session *service.Session, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
		defer cancel()

		user, err := session.Login(ctx, email, password)
		return LoginResultMsg{User: user, Err: err}
	}
}

// SignupCmd creates an account and signs it in
func SignupCmd(session *service.Session, username, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
		defer cancel()

		user, err := session.Signup(ctx, username, email, password)
		return SignupResultMsg{User: user, Err: err}
	}
}

// OpenPosterCmd hands the movie's poster to an external viewer
func OpenPosterCmd(opener PosterOpener, movie domain.Movie) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(movie.Poster); err != nil {
			return ErrMsg{Err: err, Context: "Opening poster"}
		}
		return PosterOpenedMsg{Title: movie.DisplayTitle()}
	}
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd(gen int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{Gen: gen}
	})
}
