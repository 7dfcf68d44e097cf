package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/filmfusion/internal/domain"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultPageSize = 300
)

// Config holds the Firebase project settings shared by the REST clients
type Config struct {
	APIKey       string
	ProjectID    string
	FirestoreURL string
	AuthURL      string
	TokenURL     string
	Timeout      time.Duration
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

// Firestore implements the movie, favorite and profile repositories
// over the Firestore REST API.
type Firestore struct {
	baseURL string // .../v1/projects/{p}/databases/(default)/documents
	apiKey  string
	anon    *http.Client
	authed  *http.Client
	logger  *slog.Logger
}

// NewFirestore creates a Firestore client. Requests under users/ carry a
// bearer token from tokens; a nil tokens sends every request anonymously.
func NewFirestore(cfg Config, tokens oauth2.TokenSource, logger *slog.Logger) *Firestore {
	if logger == nil {
		logger = slog.Default()
	}
	base := &http.Client{Timeout: cfg.timeout()}

	// The source is asked for a token on every request so a logout or a
	// new login takes effect immediately.
	authed := base
	if tokens != nil {
		authed = &http.Client{
			Timeout:   cfg.timeout(),
			Transport: &oauth2.Transport{Source: tokens, Base: http.DefaultTransport},
		}
	}

	return &Firestore{
		baseURL: fmt.Sprintf("%s/v1/projects/%s/databases/(default)/documents",
			strings.TrimRight(cfg.FirestoreURL, "/"), url.PathEscape(cfg.ProjectID)),
		apiKey: cfg.APIKey,
		anon:   base,
		authed: authed,
		logger: logger,
	}
}

// doRequest performs one request and decodes a JSON response into out.
// Status codes map onto domain sentinels; nothing is retried.
func (f *Firestore) doRequest(ctx context.Context, client *http.Client, method, path string, query url.Values, in, out any) error {
	if query == nil {
		query = url.Values{}
	}
	if f.apiKey != "" {
		query.Set("key", f.apiKey)
	}
	reqURL := f.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.NewString()
	f.logger.Debug("firestore request", "request_id", requestID, "method", method, "path", path)

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) || errors.Is(err, domain.ErrNotLoggedIn) || errors.Is(err, domain.ErrUnauthorized) {
			return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
		}
		f.logger.Error("firestore request failed", "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		f.logger.Warn("firestore rejected credentials", "request_id", requestID, "status", resp.StatusCode)
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, errorMessage(data, resp.Status))
	case resp.StatusCode >= 500:
		f.logger.Error("firestore server error", "request_id", requestID, "status", resp.StatusCode, "body", string(data))
		return fmt.Errorf("%w: %s", domain.ErrBackendUnavailable, errorMessage(data, resp.Status))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		f.logger.Error("firestore request error", "request_id", requestID, "status", resp.StatusCode, "body", string(data))
		return fmt.Errorf("firestore: %s", errorMessage(data, resp.Status))
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the message of a Google error envelope
func errorMessage(data []byte, fallback string) string {
	var e ErrorResponse
	if json.Unmarshal(data, &e) == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	return fallback
}

// listDocuments reads a whole collection, following page tokens
func (f *Firestore) listDocuments(ctx context.Context, client *http.Client, path string) ([]Document, error) {
	var docs []Document
	pageToken := ""
	for {
		query := url.Values{}
		query.Set("pageSize", fmt.Sprintf("%d", defaultPageSize))
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var resp ListDocumentsResponse
		if err := f.doRequest(ctx, client, http.MethodGet, path, query, nil, &resp); err != nil {
			return nil, err
		}
		docs = append(docs, resp.Documents...)

		if resp.NextPageToken == "" {
			return docs, nil
		}
		pageToken = resp.NextPageToken
	}
}

func favoritesPath(uid string) string {
	return "/users/" + url.PathEscape(uid) + "/favorites"
}

func favoritePath(uid, movieID string) string {
	return favoritesPath(uid) + "/" + url.PathEscape(movieID)
}

// ListMovies returns every document of the movies collection in backend order
func (f *Firestore) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	docs, err := f.listDocuments(ctx, f.anon, "/movies")
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.Movie{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	f.logger.Info("fetched movies", "count", len(docs))
	return MapMovies(docs), nil
}

// ListFavorites returns the favorites of uid
func (f *Firestore) ListFavorites(ctx context.Context, uid string) ([]domain.Favorite, error) {
	docs, err := f.listDocuments(ctx, f.authed, favoritesPath(uid))
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.Favorite{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return MapFavorites(docs), nil
}

// IsFavorite reports whether users/{uid}/favorites/{movieID} exists
func (f *Firestore) IsFavorite(ctx context.Context, uid, movieID string) (bool, error) {
	if movieID == "" {
		return false, domain.ErrMissingMovieID
	}
	var doc Document
	err := f.doRequest(ctx, f.authed, http.MethodGet, favoritePath(uid, movieID), nil, nil, &doc)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return true, nil
}

// AddFavorite writes the snapshot, replacing any existing record
func (f *Firestore) AddFavorite(ctx context.Context, uid string, fav domain.Favorite) error {
	if fav.MovieID == "" {
		return domain.ErrMissingMovieID
	}
	doc := FavoriteDocument(fav)
	if err := f.doRequest(ctx, f.authed, http.MethodPatch, favoritePath(uid, fav.MovieID), nil, doc, nil); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	f.logger.Info("added favorite", "movie_id", fav.MovieID)
	return nil
}

// RemoveFavorite deletes the record. Deleting a missing record succeeds.
func (f *Firestore) RemoveFavorite(ctx context.Context, uid, movieID string) error {
	if movieID == "" {
		return domain.ErrMissingMovieID
	}
	err := f.doRequest(ctx, f.authed, http.MethodDelete, favoritePath(uid, movieID), nil, nil, nil)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	f.logger.Info("removed favorite", "movie_id", movieID)
	return nil
}

// CreateUserProfile adds the signup profile to the users collection
func (f *Firestore) CreateUserProfile(ctx context.Context, profile domain.UserProfile) error {
	doc := ProfileDocument(profile)
	if err := f.doRequest(ctx, f.authed, http.MethodPost, "/users", nil, doc, nil); err != nil {
		return fmt.Errorf("failed to create user profile: %w", err)
	}
	return nil
}
