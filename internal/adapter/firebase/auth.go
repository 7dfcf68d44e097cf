package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/filmfusion/internal/domain"
)

// AuthError is a rejection reported by the auth service. Message is the
// service's own code, e.g. EMAIL_EXISTS or INVALID_LOGIN_CREDENTIALS.
type AuthError struct {
	Code    int
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Auth implements domain.AuthProvider over the Identity Toolkit and
// Secure Token REST APIs.
type Auth struct {
	authURL    string
	tokenURL   string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewAuth creates an auth client for the project's API key
func NewAuth(cfg Config, logger *slog.Logger) *Auth {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auth{
		authURL:    strings.TrimRight(cfg.AuthURL, "/"),
		tokenURL:   strings.TrimRight(cfg.TokenURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.timeout()},
		logger:     logger,
	}
}

// post sends body to endpoint and decodes the reply into out.
// Non-2xx replies become *AuthError.
func (a *Auth) post(ctx context.Context, endpoint, contentType string, body []byte, out any) error {
	reqURL := endpoint + "?" + url.Values{"key": {a.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	a.logger.Debug("auth request", "request_id", requestID, "endpoint", endpoint)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		a.logger.Error("auth request failed", "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e ErrorResponse
		if json.Unmarshal(data, &e) != nil || e.Error.Message == "" {
			e.Error.Code = resp.StatusCode
			e.Error.Message = resp.Status
		}
		a.logger.Warn("auth request rejected", "request_id", requestID, "status", resp.StatusCode, "message", e.Error.Message)
		return &AuthError{Code: e.Error.Code, Message: e.Error.Message}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (a *Auth) account(ctx context.Context, method string, payload any) (*domain.Credentials, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var resp AccountResponse
	if err := a.post(ctx, a.authURL+"/v1/accounts:"+method, "application/json", body, &resp); err != nil {
		return nil, err
	}
	return credentialsFromAccount(resp), nil
}

// SignIn authenticates with email and password
func (a *Auth) SignIn(ctx context.Context, email, password string) (*domain.Credentials, error) {
	return a.account(ctx, "signInWithPassword", passwordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
}

// SignUp creates an account; the returned credentials are signed in
func (a *Auth) SignUp(ctx context.Context, email, password string) (*domain.Credentials, error) {
	return a.account(ctx, "signUp", passwordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
}

// UpdateDisplayName sets the account's display name
func (a *Auth) UpdateDisplayName(ctx context.Context, creds *domain.Credentials, name string) (*domain.Credentials, error) {
	updated, err := a.account(ctx, "update", updateProfileRequest{
		IDToken:           creds.IDToken,
		DisplayName:       name,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, err
	}
	// update does not always echo the uid
	if updated.User.UID == "" {
		updated.User.UID = creds.User.UID
	}
	if updated.User.Email == "" {
		updated.User.Email = creds.User.Email
	}
	if updated.User.DisplayName == "" {
		updated.User.DisplayName = name
	}
	if updated.IDToken == "" {
		updated.IDToken = creds.IDToken
		updated.Expiry = creds.Expiry
	}
	if updated.RefreshToken == "" {
		updated.RefreshToken = creds.RefreshToken
	}
	return updated, nil
}

// Refresh exchanges the refresh token for a new ID token
func (a *Auth) Refresh(ctx context.Context, creds *domain.Credentials) (*domain.Credentials, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {creds.RefreshToken},
	}
	var resp TokenResponse
	if err := a.post(ctx, a.tokenURL+"/v1/token", "application/x-www-form-urlencoded", []byte(form.Encode()), &resp); err != nil {
		return nil, err
	}

	refreshed := &domain.Credentials{
		User:         creds.User,
		IDToken:      resp.IDToken,
		RefreshToken: resp.RefreshToken,
		Expiry:       tokenExpiry(resp.IDToken, resp.ExpiresIn),
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = creds.RefreshToken
	}
	a.logger.Debug("refreshed id token", "uid", creds.User.UID, "expiry", refreshed.Expiry)
	return refreshed, nil
}

func credentialsFromAccount(resp AccountResponse) *domain.Credentials {
	return &domain.Credentials{
		User: domain.User{
			UID:         resp.LocalID,
			Email:       resp.Email,
			DisplayName: resp.DisplayName,
		},
		IDToken:      resp.IDToken,
		RefreshToken: resp.RefreshToken,
		Expiry:       tokenExpiry(resp.IDToken, resp.ExpiresIn),
	}
}

// tokenExpiry prefers the token's exp claim and falls back to expiresIn
func tokenExpiry(idToken, expiresIn string) time.Time {
	if claims, err := ParseIDToken(idToken); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	if secs, err := strconv.Atoi(expiresIn); err == nil {
		return time.Now().Add(time.Duration(secs) * time.Second)
	}
	return time.Time{}
}
