package service

import (
	"context"
	"sync"
	"time"

	"github.com/mmcdole/filmfusion/internal/domain"
)

// fakeFavorites is an in-memory favorites collection keyed by (user, movie)
type fakeFavorites struct {
	mu      sync.Mutex
	records map[string]map[string]domain.Favorite
	writes  int
	err     error
}

func newFakeFavorites() *fakeFavorites {
	return &fakeFavorites{records: map[string]map[string]domain.Favorite{}}
}

func (f *fakeFavorites) ListFavorites(_ context.Context, uid string) ([]domain.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var favs []domain.Favorite
	for _, fav := range f.records[uid] {
		favs = append(favs, fav)
	}
	return favs, nil
}

func (f *fakeFavorites) IsFavorite(_ context.Context, uid, movieID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.records[uid][movieID]
	return ok, nil
}

func (f *fakeFavorites) AddFavorite(_ context.Context, uid string, fav domain.Favorite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.writes++
	if f.records[uid] == nil {
		f.records[uid] = map[string]domain.Favorite{}
	}
	f.records[uid][fav.MovieID] = fav
	return nil
}

func (f *fakeFavorites) RemoveFavorite(_ context.Context, uid, movieID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.writes++
	delete(f.records[uid], movieID)
	return nil
}

func (f *fakeFavorites) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, recs := range f.records {
		n += len(recs)
	}
	return n
}

type fakeMovies struct {
	movies []domain.Movie
	err    error
}

func (f *fakeMovies) ListMovies(context.Context) ([]domain.Movie, error) {
	return f.movies, f.err
}

// fakeAuth accepts one password per email
type fakeAuth struct {
	accounts  map[string]string
	refreshes int
	failName  bool
}

func (a *fakeAuth) SignIn(_ context.Context, email, password string) (*domain.Credentials, error) {
	if pw, ok := a.accounts[email]; !ok || pw != password {
		return nil, &authError{"INVALID_LOGIN_CREDENTIALS"}
	}
	return &domain.Credentials{User: domain.User{UID: "uid-" + email, Email: email}, IDToken: "tok", RefreshToken: "ref"}, nil
}

func (a *fakeAuth) SignUp(_ context.Context, email, password string) (*domain.Credentials, error) {
	if _, ok := a.accounts[email]; ok {
		return nil, &authError{"EMAIL_EXISTS"}
	}
	a.accounts[email] = password
	return &domain.Credentials{User: domain.User{UID: "uid-" + email, Email: email}, IDToken: "tok", RefreshToken: "ref"}, nil
}

func (a *fakeAuth) UpdateDisplayName(_ context.Context, creds *domain.Credentials, name string) (*domain.Credentials, error) {
	if a.failName {
		return nil, &authError{"INVALID_ID_TOKEN"}
	}
	updated := *creds
	updated.User.DisplayName = name
	return &updated, nil
}

func (a *fakeAuth) Refresh(_ context.Context, creds *domain.Credentials) (*domain.Credentials, error) {
	a.refreshes++
	fresh := *creds
	fresh.IDToken = "refreshed"
	fresh.Expiry = time.Now().Add(time.Hour)
	return &fresh, nil
}

type authError struct{ msg string }

func (e *authError) Error() string { return e.msg }

type fakeProfiles struct {
	created []domain.UserProfile
	err     error
}

func (p *fakeProfiles) CreateUserProfile(_ context.Context, profile domain.UserProfile) error {
	if p.err != nil {
		return p.err
	}
	p.created = append(p.created, profile)
	return nil
}
