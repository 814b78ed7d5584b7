package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_IssuesAndRecognisesIDs(t *testing.T) {
	s, err := NewSessions("secret", "", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionCookie, s.CookieName())

	w := httptest.NewRecorder()
	id, err := s.Ensure(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "session ids are UUIDs")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 60, cookies[0].MaxAge)
	assert.NotContains(t, cookies[0].Value, id, "cookie must not carry the id in clear")

	req := httptest.NewRequest(http.MethodGet, "/preview", nil)
	req.AddCookie(cookies[0])
	got, ok := s.Lookup(req)
	require.True(t, ok)
	assert.Equal(t, id, got)

	again, err := s.Ensure(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Equal(t, id, again, "existing session is kept")
}

func TestSessions_RejectsTamperedCookies(t *testing.T) {
	s, err := NewSessions("secret", "sid", time.Minute)
	require.NoError(t, err)
	other, err := NewSessions("another-secret", "sid", time.Minute)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	_, err = other.Ensure(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(w.Result().Cookies()[0])
	_, ok := s.Lookup(req)
	assert.False(t, ok)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: strings.Repeat("A", 80)})
	_, ok = s.Lookup(req)
	assert.False(t, ok)
}

func TestSessions_RequiresSecret(t *testing.T) {
	_, err := NewSessions("", "", time.Minute)
	assert.Error(t, err)
}

func TestSessionIDContext(t *testing.T) {
	_, ok := SessionID(context.Background())
	assert.False(t, ok)

	ctx := WithSessionID(context.Background(), "abc")
	id, ok := SessionID(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc", id)
}
