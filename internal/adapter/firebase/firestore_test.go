package firebase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mmcdole/filmfusion/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const docsPrefix = "/v1/projects/demo/databases/(default)/documents"

// fakeFirestore is an in-memory stand-in for the documents endpoint
type fakeFirestore struct {
	mu       sync.Mutex
	docs     map[string]Document // path below documents/ -> document
	order    []string
	pageSize int
	auth     []string
	created  []Document
}

func newFakeFirestore() *fakeFirestore {
	return &fakeFirestore{docs: map[string]Document{}, pageSize: 2}
}

func (f *fakeFirestore) put(path string, fields map[string]Value) {
	f.docs[path] = Document{Name: "projects/demo/databases/(default)/documents/" + path, Fields: fields}
	f.order = append(f.order, path)
}

func (f *fakeFirestore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.auth = append(f.auth, r.Header.Get("Authorization"))
	path := strings.TrimPrefix(r.URL.Path, docsPrefix+"/")

	switch r.Method {
	case http.MethodGet:
		if doc, ok := f.docs[path]; ok {
			json.NewEncoder(w).Encode(doc)
			return
		}
		var matched []Document
		for _, p := range f.order {
			if _, ok := f.docs[p]; ok && strings.HasPrefix(p, path+"/") && !strings.Contains(strings.TrimPrefix(p, path+"/"), "/") {
				matched = append(matched, f.docs[p])
			}
		}
		if len(matched) == 0 && strings.Count(path, "/")%2 == 1 {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"code":404,"message":"Document not found","status":"NOT_FOUND"}}`))
			return
		}
		start := 0
		if tok := r.URL.Query().Get("pageToken"); tok != "" {
			json.Unmarshal([]byte(tok), &start)
		}
		end := min(start+f.pageSize, len(matched))
		resp := ListDocumentsResponse{Documents: matched[start:end]}
		if end < len(matched) {
			next, _ := json.Marshal(end)
			resp.NextPageToken = string(next)
		}
		json.NewEncoder(w).Encode(resp)
	case http.MethodPatch:
		var doc Document
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &doc)
		if _, ok := f.docs[path]; !ok {
			f.order = append(f.order, path)
		}
		doc.Name = "projects/demo/databases/(default)/documents/" + path
		f.docs[path] = doc
		json.NewEncoder(w).Encode(doc)
	case http.MethodDelete:
		delete(f.docs, path)
		w.Write([]byte(`{}`))
	case http.MethodPost:
		var doc Document
		json.NewDecoder(r.Body).Decode(&doc)
		f.created = append(f.created, doc)
		json.NewEncoder(w).Encode(doc)
	}
}

func str(s string) Value { return Value{StringValue: &s} }
func num(s string) Value { return Value{IntegerValue: &s} }
func dbl(f float64) Value { return Value{DoubleValue: &f} }

func newTestFirestore(t *testing.T, h http.Handler, tokens oauth2.TokenSource) *Firestore {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewFirestore(Config{APIKey: "k", ProjectID: "demo", FirestoreURL: srv.URL, Timeout: time.Second}, tokens, nil)
}

func TestListMovies(t *testing.T) {
	fake := newFakeFirestore()
	fake.put("movies/m1", map[string]Value{"title": str("Alpha Movie"), "year": num("1999"), "rating": dbl(7.5)})
	fake.put("movies/m2", map[string]Value{"title": str("Beta Movie"), "year": str("2004"), "plot": str("p")})
	fake.put("movies/m3", map[string]Value{"title": str("Gamma")})

	fs := newTestFirestore(t, fake, nil)
	movies, err := fs.ListMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 3, "all pages are followed")

	assert.Equal(t, domain.Movie{ID: "m1", Title: "Alpha Movie", Year: "1999", Rating: "7.5"}, movies[0])
	assert.Equal(t, "2004", movies[1].Year)
	assert.Equal(t, "p", movies[1].Plot)
	assert.Equal(t, "", movies[2].Year, "missing field decodes to empty")
}

func TestFavorites(t *testing.T) {
	fake := newFakeFirestore()
	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "id-token"})
	fs := newTestFirestore(t, fake, tokens)
	ctx := context.Background()

	fav := domain.Favorite{MovieID: "m1", Title: "Alpha", Rating: "8.1", Year: "1999", Plot: "x", Poster: "http://p"}

	ok, err := fs.IsFavorite(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, fs.AddFavorite(ctx, "u1", fav))
	ok, err = fs.IsFavorite(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.True(t, ok)

	favs, err := fs.ListFavorites(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []domain.Favorite{fav}, favs)

	stored := fake.docs["users/u1/favorites/m1"]
	require.NotNil(t, stored.Fields["year"].IntegerValue, "numeric snapshot fields stay numeric")
	require.NotNil(t, stored.Fields["rating"].DoubleValue)

	require.NoError(t, fs.RemoveFavorite(ctx, "u1", "m1"))
	ok, err = fs.IsFavorite(ctx, "u1", "m1")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Contains(t, fake.auth, "Bearer id-token")

	t.Run("non-finite number strings", func(t *testing.T) {
		for _, rating := range []string{"NaN", "+Inf", "Inf", "N/A"} {
			odd := domain.Favorite{MovieID: "odd", Title: "Odd", Rating: rating, Year: "-Inf"}
			require.NoError(t, fs.AddFavorite(ctx, "u2", odd), rating)

			favs, err := fs.ListFavorites(ctx, "u2")
			require.NoError(t, err)
			assert.Equal(t, []domain.Favorite{odd}, favs, rating)
		}
	})

	t.Run("missing movie id", func(t *testing.T) {
		assert.ErrorIs(t, fs.AddFavorite(ctx, "u1", domain.Favorite{}), domain.ErrMissingMovieID)
		_, err := fs.IsFavorite(ctx, "u1", "")
		assert.ErrorIs(t, err, domain.ErrMissingMovieID)
	})
}

func TestCreateUserProfile(t *testing.T) {
	fake := newFakeFirestore()
	fs := newTestFirestore(t, fake, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "t"}))

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	err := fs.CreateUserProfile(context.Background(), domain.UserProfile{UID: "u1", Username: "neo", Email: "neo@example.com", CreatedAt: created})
	require.NoError(t, err)

	require.Len(t, fake.created, 1)
	fields := fake.created[0].Fields
	assert.Equal(t, "neo", *fields["username"].StringValue)
	assert.Equal(t, "u1", *fields["uid"].StringValue)
	assert.Equal(t, "2024-03-01T12:00:00Z", *fields["createdAt"].TimestampValue)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, domain.ErrUnauthorized},
		{"server error", http.StatusServiceUnavailable, domain.ErrBackendUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			fs := newTestFirestore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"error":{"code":1,"message":"nope"}}`))
			}), nil)

			_, err := fs.ListMovies(context.Background())
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 1, calls, "no retries")
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		fs := NewFirestore(Config{ProjectID: "demo", FirestoreURL: srv.URL}, nil, nil)
		_, err := fs.ListMovies(context.Background())
		assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	})

	t.Run("token source failure", func(t *testing.T) {
		fs := newTestFirestore(t, newFakeFirestore(), failingTokens{})
		_, err := fs.ListFavorites(context.Background(), "u1")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

type failingTokens struct{}

func (failingTokens) Token() (*oauth2.Token, error) { return nil, domain.ErrNotLoggedIn }
