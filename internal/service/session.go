package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/filmfusion/internal/domain"
	"golang.org/x/oauth2"
)

const refreshTimeout = 30 * time.Second

// SessionListener is called after every session change.
// ok is false when the session became anonymous.
type SessionListener func(user domain.User, ok bool)

// Session holds the signed-in user, if any. It lives for the process and
// is never persisted; logging out only forgets the local credentials.
type Session struct {
	auth     domain.AuthProvider
	profiles domain.ProfileRepository
	logger   *slog.Logger

	mu        sync.Mutex
	creds     *domain.Credentials
	listeners map[int]SessionListener
	nextID    int
}

// NewSession creates an anonymous session. profiles may be nil, in which
// case no profile document is written at signup.
func NewSession(auth domain.AuthProvider, profiles domain.ProfileRepository, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		auth:      auth,
		profiles:  profiles,
		logger:    logger,
		listeners: make(map[int]SessionListener),
	}
}

// SetProfiles sets where signup writes profile documents. The profile
// repository usually authenticates through TokenSource, so it can only be
// built after the session.
func (s *Session) SetProfiles(profiles domain.ProfileRepository) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = profiles
}

// Current returns the signed-in user
func (s *Session) Current() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		return domain.User{}, false
	}
	return s.creds.User, true
}

// User returns the signed-in user, or the zero user when anonymous
func (s *Session) User() domain.User {
	u, _ := s.Current()
	return u
}

// Subscribe registers fn for session changes. The returned function
// removes it and may be called any number of times.
func (s *Session) Subscribe(fn SessionListener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// set replaces the credentials and notifies listeners outside the lock
func (s *Session) set(creds *domain.Credentials) {
	s.mu.Lock()
	s.creds = creds
	listeners := make([]SessionListener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	user, ok := domain.User{}, false
	if creds != nil {
		user, ok = creds.User, true
	}
	for _, fn := range listeners {
		fn(user, ok)
	}
}

// Login signs in with email and password. On failure the session is
// unchanged and the auth service's message is returned as is.
func (s *Session) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.User{}, domain.ErrMissingInput
	}

	creds, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		s.logger.Warn("login failed", "email", email, "error", err)
		return domain.User{}, err
	}

	s.set(creds)
	s.logger.Info("logged in", "uid", creds.User.UID)
	return creds.User, nil
}

// Signup creates an account, names it username and records its profile.
// The new account is signed in as soon as it exists; a failed rename or
// profile write leaves it signed in and is still reported.
func (s *Session) Signup(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return domain.User{}, domain.ErrMissingInput
	}

	creds, err := s.auth.SignUp(ctx, email, password)
	if err != nil {
		s.logger.Warn("signup failed", "email", email, "error", err)
		return domain.User{}, err
	}

	s.set(creds)
	s.logger.Info("signed up", "uid", creds.User.UID)

	var failures []error
	named, err := s.auth.UpdateDisplayName(ctx, creds, username)
	if err != nil {
		s.logger.Error("failed to set display name", "uid", creds.User.UID, "error", err)
		failures = append(failures, fmt.Errorf("display name was not saved: %w", err))
	} else {
		s.set(named)
		creds = named
	}

	s.mu.Lock()
	profiles := s.profiles
	s.mu.Unlock()

	if profiles != nil {
		profile := domain.UserProfile{
			UID:       creds.User.UID,
			Username:  username,
			Email:     creds.User.Email,
			CreatedAt: time.Now(),
		}
		if err := profiles.CreateUserProfile(ctx, profile); err != nil {
			s.logger.Error("failed to save user profile", "uid", creds.User.UID, "error", err)
			failures = append(failures, fmt.Errorf("profile was not saved: %w", err))
		}
	}

	if len(failures) > 0 {
		return creds.User, fmt.Errorf("account created but %w", errors.Join(failures...))
	}
	return creds.User, nil
}

// Logout forgets the local credentials
func (s *Session) Logout() {
	if _, ok := s.Current(); !ok {
		return
	}
	s.set(nil)
	s.logger.Info("logged out")
}

// TokenSource returns a source of bearer tokens for the signed-in user.
// It follows the session: after a logout it fails with
// domain.ErrNotLoggedIn, after a new login it yields the new user's token.
func (s *Session) TokenSource() oauth2.TokenSource {
	return sessionTokens{s}
}

type sessionTokens struct {
	s *Session
}

func (t sessionTokens) Token() (*oauth2.Token, error) {
	return t.s.token()
}

func bearer(creds *domain.Credentials) *oauth2.Token {
	return &oauth2.Token{
		AccessToken: creds.IDToken,
		TokenType:   "Bearer",
		Expiry:      creds.Expiry,
	}
}

// token returns the current ID token, refreshing it once expired
func (s *Session) token() (*oauth2.Token, error) {
	s.mu.Lock()
	creds := s.creds
	s.mu.Unlock()

	if creds == nil {
		return nil, domain.ErrNotLoggedIn
	}
	if tok := bearer(creds); tok.Valid() {
		return tok, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	fresh, err := s.auth.Refresh(ctx, creds)
	if err != nil {
		s.logger.Error("failed to refresh id token", "uid", creds.User.UID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	s.mu.Lock()
	if s.creds == creds {
		s.creds = fresh
	}
	s.mu.Unlock()

	return bearer(fresh), nil
}
