package tui

import (
	"time"

	"github.com/mmcdole/filmfusion/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// MoviesCachedMsg carries the movie list read from the local cache
type MoviesCachedMsg struct {
	Movies    []domain.Movie
	FetchedAt time.Time // zero when unknown
}

// MoviesFetchedMsg carries the result of a backend fetch.
// Gen is the fetch generation it was issued for.
type MoviesFetchedMsg struct {
	Gen    int
	Movies []domain.Movie
	Err    error
}

// FavoritesLoadedMsg carries a user's favorites from the backend
type FavoritesLoadedMsg struct {
	Gen       int
	UID       string
	Favorites []domain.Favorite
	Err       error
}

// favoriteKey identifies one (user, movie) pair
type favoriteKey struct {
	UID     string
	MovieID string
}

// FavoriteCheckedMsg reports whether the movie in the details modal is a favorite
type FavoriteCheckedMsg struct {
	Key       favoriteKey
	Favorited bool
	Err       error
}

// FavoriteToggledMsg reports the outcome of a favorite toggle
type FavoriteToggledMsg struct {
	Key       favoriteKey
	Movie     domain.Movie
	Favorited bool // new state, valid when Err is nil
	Err       error
}

// LoginResultMsg is the outcome of the login form
type LoginResultMsg struct {
	User domain.User
	Err  error
}

// SignupResultMsg is the outcome of the signup form
type SignupResultMsg struct {
	User domain.User
	Err  error
}

// SessionChangedMsg signals a login or logout
type SessionChangedMsg struct {
	User     domain.User
	LoggedIn bool
}

// PosterOpenedMsg is sent after a poster was handed to the viewer
type PosterOpenedMsg struct {
	Title string
}

// ClearStatusMsg clears the status line if it is still the one with Gen
type ClearStatusMsg struct {
	Gen int
}
