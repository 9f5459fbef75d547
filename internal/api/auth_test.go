package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/studyhall/studyhall/internal/types"
)

func TestIdentityFrom(t *testing.T) {
	tcases := []struct {
		name     string
		ctx      context.Context
		ident    Identity
		expected bool
	}{
		{
			name:     "no identity",
			ctx:      context.Background(),
			expected: false,
		},
		{
			name:     "identity set",
			ctx:      WithIdentity(context.Background(), Identity{UserId: 42, Username: "testuser"}),
			ident:    Identity{UserId: 42, Username: "testuser"},
			expected: true,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			ident, ok := IdentityFrom(tc.ctx)
			assert.Equal(t, tc.expected, ok, "expected IdentityFrom to return %v", tc.expected)
			assert.Equal(t, tc.ident, ident, "expected identity to match")
		})
	}
}

func Test_hashPassword_verifyPassword(t *testing.T) {
	hash, err := hashPassword("password")
	assert.NoError(t, err, "expected no error hashing password")
	assert.NotEqual(t, "password", hash, "expected hash to differ from plaintext")

	assert.True(t, verifyPassword(hash, "password"), "expected matching password to verify")
	assert.False(t, verifyPassword(hash, "wrong"), "expected wrong password to fail verification")
}

func Test_createJwtForSession(t *testing.T) {
	app := &StudyHallApp{signingKey: []byte("secret")}

	user := types.User{Id: 42, Username: "testuser"}
	token, err := app.createJwtForSession(user, defaultJwtExpiration)
	assert.NoError(t, err, "expected no error creating token")
	assert.NotEmpty(t, token, "expected a signed token")

	ident, err := app.identityFromToken(token)
	assert.NoError(t, err, "expected no error extracting identity")
	assert.Equal(t, 42, ident.UserId, "expected user id claim to round trip")
	assert.Equal(t, "testuser", ident.Username, "expected username claim to round trip")
}

func Test_identityFromToken(t *testing.T) {
	app := &StudyHallApp{signingKey: []byte("secret")}

	t.Run("garbage token", func(t *testing.T) {
		_, err := app.identityFromToken("not-a-token")
		assert.Error(t, err, "expected error for malformed token")
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := &StudyHallApp{signingKey: []byte("other")}
		token, err := other.createJwtForSession(types.User{Id: 1, Username: "testuser"}, defaultJwtExpiration)
		assert.NoError(t, err)

		_, err = app.identityFromToken(token)
		assert.Error(t, err, "expected error for token signed with a different key")
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := app.createJwtForSession(types.User{Id: 1, Username: "testuser"}, -time.Minute)
		assert.NoError(t, err)

		_, err = app.identityFromToken(token)
		assert.Error(t, err, "expected error for expired token")
	})
}

func Test_requestToken(t *testing.T) {
	tcases := []struct {
		name        string
		setup       func(r *http.Request)
		expected    string
		expectError bool
	}{
		{
			name: "token from cookie",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: tokenCookieKey, Value: "cookie-token"})
			},
			expected: "cookie-token",
		},
		{
			name: "token from authorization header",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer header-token")
			},
			expected: "header-token",
		},
		{
			name:     "token from query parameter",
			setup:    func(r *http.Request) {},
			expected: "query-token",
		},
		{
			name: "cookie takes precedence",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: tokenCookieKey, Value: "cookie-token"})
				r.Header.Set("Authorization", "Bearer header-token")
			},
			expected: "cookie-token",
		},
		{
			name:        "no token",
			setup:       func(r *http.Request) {},
			expectError: true,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			target := "/api/communities"
			if tc.expected == "query-token" {
				target += "?token=query-token"
			}

			req := httptest.NewRequest(http.MethodGet, target, nil)
			tc.setup(req)

			token, err := requestToken(req)
			if tc.expectError {
				assert.Error(t, err, "expected error when no token is provided")
				return
			}
			assert.NoError(t, err, "expected no error extracting token")
			assert.Equal(t, tc.expected, token, "expected token to match")
		})
	}
}

func Test_createJwtCookie(t *testing.T) {
	cookie := createJwtCookie("token-value", time.Hour)

	assert.Equal(t, tokenCookieKey, cookie.Name, "expected cookie name to match")
	assert.Equal(t, "token-value", cookie.Value, "expected cookie value to match")
	assert.Equal(t, "/", cookie.Path, "expected cookie path to be /")
	assert.True(t, cookie.HttpOnly, "expected cookie to be http-only")
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite, "expected strict same-site mode")
	assert.True(t, cookie.Expires.After(time.Now()), "expected cookie to expire in the future")
}
