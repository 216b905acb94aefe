package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliogen/foliogen/pkg/cookie"
)

func TestManagerSet(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		m := cookie.New()
		w := httptest.NewRecorder()
		m.Set(w, "session", "token-value")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, "session", c.Name)
		assert.Equal(t, "token-value", c.Value)
		assert.Equal(t, "/", c.Path)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.False(t, c.Secure)
	})

	t.Run("manager options become defaults", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(cookie.WithSecure(true), cookie.WithDomain("example.com"))
		w := httptest.NewRecorder()
		m.Set(w, "session", "v")

		c := w.Result().Cookies()[0]
		assert.True(t, c.Secure)
		assert.Equal(t, "example.com", c.Domain)
	})

	t.Run("per-call override does not stick", func(t *testing.T) {
		t.Parallel()

		m := cookie.New()
		w := httptest.NewRecorder()
		m.Set(w, "session", "v", cookie.WithMaxAge(3600))
		c := w.Result().Cookies()[0]
		assert.Equal(t, 3600, c.MaxAge)

		w2 := httptest.NewRecorder()
		m.Set(w2, "session", "v")
		assert.Equal(t, 0, w2.Result().Cookies()[0].MaxAge)
	})
}

func TestManagerGet(t *testing.T) {
	t.Parallel()

	m := cookie.New()

	t.Run("present", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "session", Value: "abc"})

		value, err := m.Get(r, "session")
		require.NoError(t, err)
		assert.Equal(t, "abc", value)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := m.Get(r, "session")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})
}

func TestManagerDelete(t *testing.T) {
	t.Parallel()

	m := cookie.New()
	w := httptest.NewRecorder()
	m.Delete(w, "session")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "session", c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
}
