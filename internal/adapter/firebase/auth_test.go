package firebase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mmcdole/filmfusion/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, uid string, exp time.Time) string {
	t.Helper()
	claims := IDTokenClaims{
		UserID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func newTestAuth(t *testing.T, h http.HandlerFunc) *Auth {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewAuth(Config{APIKey: "k", AuthURL: srv.URL, TokenURL: srv.URL, Timeout: time.Second}, nil)
}

func TestSignIn(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	idToken := signedToken(t, "u1", exp)

	a := newTestAuth(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:signInWithPassword", r.URL.Path)
		assert.Equal(t, "k", r.URL.Query().Get("key"))

		var req passwordRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "secret" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":400,"message":"INVALID_LOGIN_CREDENTIALS"}}`))
			return
		}
		json.NewEncoder(w).Encode(AccountResponse{
			LocalID: "u1", Email: req.Email, DisplayName: "Neo",
			IDToken: idToken, RefreshToken: "r1", ExpiresIn: "3600",
		})
	})

	t.Run("valid credentials", func(t *testing.T) {
		creds, err := a.SignIn(context.Background(), "neo@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, domain.User{UID: "u1", Email: "neo@example.com", DisplayName: "Neo"}, creds.User)
		assert.Equal(t, "r1", creds.RefreshToken)
		assert.True(t, exp.Equal(creds.Expiry), "expiry comes from the exp claim")
	})

	t.Run("rejected credentials keep the service message", func(t *testing.T) {
		_, err := a.SignIn(context.Background(), "neo@example.com", "wrong")
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, 400, authErr.Code)
		assert.Equal(t, "INVALID_LOGIN_CREDENTIALS", authErr.Error())
	})
}

func TestSignUpAndUpdate(t *testing.T) {
	a := newTestAuth(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/accounts:signUp":
			var req passwordRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Email == "taken@example.com" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":{"code":400,"message":"EMAIL_EXISTS"}}`))
				return
			}
			json.NewEncoder(w).Encode(AccountResponse{LocalID: "u2", Email: req.Email, IDToken: "opaque", RefreshToken: "r2", ExpiresIn: "3600"})
		case "/v1/accounts:update":
			var req updateProfileRequest
			json.NewDecoder(r.Body).Decode(&req)
			assert.Equal(t, "opaque", req.IDToken)
			json.NewEncoder(w).Encode(AccountResponse{Email: "new@example.com", DisplayName: req.DisplayName})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	creds, err := a.SignUp(ctx, "new@example.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "u2", creds.User.UID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), creds.Expiry, time.Minute, "opaque tokens fall back to expiresIn")

	updated, err := a.UpdateDisplayName(ctx, creds, "trinity")
	require.NoError(t, err)
	assert.Equal(t, "u2", updated.User.UID)
	assert.Equal(t, "trinity", updated.User.Name())
	assert.Equal(t, "opaque", updated.IDToken, "tokens carry over when update omits them")
	assert.Equal(t, "r2", updated.RefreshToken)

	_, err = a.SignUp(ctx, "taken@example.com", "pw123456")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "EMAIL_EXISTS", authErr.Message)
}

func TestRefresh(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	fresh := signedToken(t, "u1", exp)

	a := newTestAuth(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/token", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		if r.PostForm.Get("refresh_token") != "r1" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":400,"message":"INVALID_REFRESH_TOKEN"}}`))
			return
		}
		json.NewEncoder(w).Encode(TokenResponse{IDToken: fresh, RefreshToken: "r1b", ExpiresIn: "3600", UserID: "u1"})
	})

	user := domain.User{UID: "u1", Email: "neo@example.com"}
	creds, err := a.Refresh(context.Background(), &domain.Credentials{User: user, RefreshToken: "r1"})
	require.NoError(t, err)
	assert.Equal(t, user, creds.User)
	assert.Equal(t, fresh, creds.IDToken)
	assert.Equal(t, "r1b", creds.RefreshToken)
	assert.True(t, exp.Equal(creds.Expiry))

	_, err = a.Refresh(context.Background(), &domain.Credentials{User: user, RefreshToken: "stale"})
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "INVALID_REFRESH_TOKEN", authErr.Message)
}

func TestParseIDToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	claims, err := ParseIDToken(signedToken(t, "u9", exp))
	require.NoError(t, err)
	assert.Equal(t, "u9", claims.UserID)
	assert.True(t, exp.Equal(claims.ExpiresAt.Time))

	_, err = ParseIDToken("not-a-jwt")
	assert.Error(t, err)
}
