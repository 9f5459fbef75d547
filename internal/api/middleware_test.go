package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/studyhall/studyhall/internal/testutil"
	"github.com/studyhall/studyhall/internal/types"
)

func Test_authMiddleware(t *testing.T) {
	app := &StudyHallApp{
		log:        testutil.TestLogger(t),
		signingKey: []byte("secret"),
	}

	t.Run("rejects request without token", func(t *testing.T) {
		called := false
		handler := app.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest(http.MethodGet, "/api/communities", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "expected status code to be 401")
		assert.False(t, called, "expected next handler not to be called")
	})

	t.Run("rejects request with invalid token", func(t *testing.T) {
		called := false
		handler := app.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		req := httptest.NewRequest(http.MethodGet, "/api/communities", nil)
		req.AddCookie(&http.Cookie{Name: tokenCookieKey, Value: "not-a-token"})

		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "expected status code to be 401")
		assert.False(t, called, "expected next handler not to be called")
	})

	t.Run("attaches identity for valid token", func(t *testing.T) {
		token, err := app.createJwtForSession(types.User{Id: 42, Username: "testuser"}, defaultJwtExpiration)
		assert.NoError(t, err, "expected no error creating token")

		var ident Identity
		var ok bool
		handler := app.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
			ident, ok = IdentityFrom(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/api/communities", nil)
		req.AddCookie(&http.Cookie{Name: tokenCookieKey, Value: token})

		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.True(t, ok, "expected identity on the request context")
		assert.Equal(t, 42, ident.UserId, "expected user id to match token claims")
		assert.Equal(t, "testuser", ident.Username, "expected username to match token claims")
		assert.Contains(t, rr.Header().Get("Cache-Control"), "no-store", "expected cache-control header to be set")
	})
}

func Test_errorHandler(t *testing.T) {
	app := &StudyHallApp{log: testutil.TestLogger(t)}

	t.Run("recovers from panic", func(t *testing.T) {
		handler := app.errorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/communities", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code, "expected status code to be 500")
		assert.Equal(t, "close", rr.Header().Get("Connection"), "expected connection close header")
	})

	t.Run("passes through normal requests", func(t *testing.T) {
		handler := app.errorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/communities", nil))

		assert.Equal(t, http.StatusTeapot, rr.Code, "expected handler status code to pass through")
	})
}
