package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kartikeyan-sudo/BlogXAi/pkg/tokenx"
)

func TestExtractToken(t *testing.T) {
	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc123")

		token, ok := ExtractToken(req)
		require.True(t, ok)
		require.Equal(t, "abc123", token)
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})

		token, ok := ExtractToken(req)
		require.True(t, ok)
		require.Equal(t, "cookie-token", token)
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer header-token")
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})

		token, ok := ExtractToken(req)
		require.True(t, ok)
		require.Equal(t, "header-token", token)
	})

	t.Run("empty bearer falls through to cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer ")
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})

		token, ok := ExtractToken(req)
		require.True(t, ok)
		require.Equal(t, "cookie-token", token)
	})

	t.Run("nothing present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		_, ok := ExtractToken(req)
		require.False(t, ok)
	})
}

func cookieByName(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSessionWriterAttach(t *testing.T) {
	t.Run("regular user gets session cookie only", func(t *testing.T) {
		rec := httptest.NewRecorder()
		sw := SessionWriter{Secure: true}
		sw.Attach(rec, "tok", tokenx.Principal{ID: "u1", Role: "USER"}, 24*time.Hour)

		cookies := rec.Result().Cookies()
		session := cookieByName(t, cookies, SessionCookie)
		require.NotNil(t, session)
		require.Equal(t, "tok", session.Value)
		require.True(t, session.HttpOnly)
		require.True(t, session.Secure)
		require.Equal(t, http.SameSiteLaxMode, session.SameSite)
		require.Equal(t, 86400, session.MaxAge)

		require.Nil(t, cookieByName(t, cookies, AdminHintCookie))
	})

	t.Run("admin also gets readable hint cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		sw := SessionWriter{}
		sw.Attach(rec, "tok", tokenx.Principal{ID: "a1", Role: "ADMIN"}, time.Hour)

		hint := cookieByName(t, rec.Result().Cookies(), AdminHintCookie)
		require.NotNil(t, hint)
		require.Equal(t, "true", hint.Value)
		require.False(t, hint.HttpOnly)
	})
}

func TestSessionWriterClear(t *testing.T) {
	rec := httptest.NewRecorder()
	SessionWriter{}.Clear(rec)

	cookies := rec.Result().Cookies()
	for _, name := range []string{SessionCookie, AdminHintCookie} {
		c := cookieByName(t, cookies, name)
		require.NotNil(t, c)
		require.Empty(t, c.Value)
		require.Negative(t, c.MaxAge)
	}
}
