package domain

import (
	"context"
	"time"
)

// MovieRepository provides read access to the movie collection
type MovieRepository interface {
	// ListMovies returns the whole movies collection
	ListMovies(ctx context.Context) ([]Movie, error)
}

// FavoriteRepository provides access to a user's favorites.
// Every method is scoped to an explicit (user, movie) key path.
type FavoriteRepository interface {
	// ListFavorites returns all favorites of a user
	ListFavorites(ctx context.Context, uid string) ([]Favorite, error)

	// IsFavorite reports whether the (user, movie) record exists
	IsFavorite(ctx context.Context, uid, movieID string) (bool, error)

	// AddFavorite writes the record, overwriting any existing one
	AddFavorite(ctx context.Context, uid string, fav Favorite) error

	// RemoveFavorite deletes the record
	RemoveFavorite(ctx context.Context, uid, movieID string) error
}

// ProfileRepository stores account profiles created at signup
type ProfileRepository interface {
	CreateUserProfile(ctx context.Context, profile UserProfile) error
}

// AuthProvider is the hosted authentication service.
// Credentials are verified remotely; nothing here checks passwords.
type AuthProvider interface {
	// SignIn authenticates with email and password
	SignIn(ctx context.Context, email, password string) (*Credentials, error)

	// SignUp creates an account and signs it in
	SignUp(ctx context.Context, email, password string) (*Credentials, error)

	// UpdateDisplayName sets the display name and returns the updated credentials
	UpdateDisplayName(ctx context.Context, creds *Credentials, name string) (*Credentials, error)

	// Refresh exchanges a refresh token for a fresh ID token
	Refresh(ctx context.Context, creds *Credentials) (*Credentials, error)
}

// Credentials is the auth service's view of a signed-in user plus tokens.
type Credentials struct {
	User         User
	IDToken      string
	RefreshToken string
	Expiry       time.Time // When IDToken stops being accepted
}

// MovieCache is the local cache of backend data (BoltDB + memory).
// Reads never block on the network.
type MovieCache interface {
	GetMovies() ([]Movie, bool)
	SaveMovies(movies []Movie) error
	FetchedAt() (time.Time, bool) // When the movie list was last saved

	GetFavorites(uid string) ([]Favorite, bool)
	SaveFavorites(uid string, favs []Favorite) error
	PutFavorite(uid string, fav Favorite) error
	DeleteFavorite(uid, movieID string) error

	InvalidateAll() error
	Close() error
}
