package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mmcdole/filmfusion/internal/domain"
)

type fakeMovies struct {
	movies []domain.Movie
	err    error
}

func (f *fakeMovies) ListMovies(context.Context) ([]domain.Movie, error) {
	return f.movies, f.err
}

type fakeFavorites struct {
	mu      sync.Mutex
	records map[string]map[string]domain.Favorite
}

func newFakeFavorites() *fakeFavorites {
	return &fakeFavorites{records: map[string]map[string]domain.Favorite{}}
}

func (f *fakeFavorites) ListFavorites(_ context.Context, uid string) ([]domain.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var favs []domain.Favorite
	for _, fav := range f.records[uid] {
		favs = append(favs, fav)
	}
	return favs, nil
}

func (f *fakeFavorites) IsFavorite(_ context.Context, uid, movieID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.records[uid][movieID]
	return ok, nil
}

func (f *fakeFavorites) AddFavorite(_ context.Context, uid string, fav domain.Favorite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.records[uid] == nil {
		f.records[uid] = map[string]domain.Favorite{}
	}
	f.records[uid][fav.MovieID] = fav
	return nil
}

func (f *fakeFavorites) RemoveFavorite(_ context.Context, uid, movieID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records[uid], movieID)
	return nil
}

func (f *fakeFavorites) count(uid string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records[uid])
}

// fakeAuth accepts one password for every email
type fakeAuth struct{}

type authError string

func (e authError) Error() string { return string(e) }

func (fakeAuth) SignIn(_ context.Context, email, password string) (*domain.Credentials, error) {
	if password != "secret" {
		return nil, authError("INVALID_LOGIN_CREDENTIALS")
	}
	return credentials(email), nil
}

func (fakeAuth) SignUp(_ context.Context, email, _ string) (*domain.Credentials, error) {
	return credentials(email), nil
}

func (fakeAuth) UpdateDisplayName(_ context.Context, creds *domain.Credentials, name string) (*domain.Credentials, error) {
	next := *creds
	next.User.DisplayName = name
	return &next, nil
}

func (fakeAuth) Refresh(_ context.Context, creds *domain.Credentials) (*domain.Credentials, error) {
	return creds, nil
}

func credentials(email string) *domain.Credentials {
	return &domain.Credentials{
		User:         domain.User{UID: "uid-" + email, Email: email},
		IDToken:      "token",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour),
	}
}

// numberedMovies returns "Movie 1".."Movie n" with ids m1..mn
func numberedMovies(n int) []domain.Movie {
	movies := make([]domain.Movie, n)
	for i := range movies {
		movies[i] = domain.Movie{
			ID:     fmt.Sprintf("m%d", i+1),
			Title:  fmt.Sprintf("Movie %d", i+1),
			Year:   fmt.Sprintf("%d", 1990+i),
			Rating: fmt.Sprintf("%d.0", i%10),
		}
	}
	return movies
}

// fakeOpener records the poster URLs it was asked to open
type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) Open(url string) error {
	if o.err != nil {
		return o.err
	}
	o.opened = append(o.opened, url)
	return nil
}
