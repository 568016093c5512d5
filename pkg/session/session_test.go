package session_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenithfinancial/portal/pkg/cookie"
	"github.com/zenithfinancial/portal/pkg/rbac"
	"github.com/zenithfinancial/portal/pkg/session"
)

const testSecret = "test-secret-key-that-is-long-enough-for-aes"

func newCookies(t *testing.T) *cookie.Manager {
	t.Helper()
	m, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	return m
}

func setupManager(t *testing.T, opts ...session.Option) *session.Manager {
	t.Helper()
	return session.New(newCookies(t), opts...)
}

func validSession() session.Session {
	return session.Session{
		IdentityProviderUserID: "user_01H",
		Email:                  "jane@example.com",
		FullName:               "Jane Doe",
		Role:                   rbac.RoleClient,
		LocalUserID:            42,
		AccessToken:            "access",
		RefreshToken:           "refresh",
	}
}

func requestWith(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := session.NewCodec(newCookies(t), "zenith_session", time.Hour)
	in := validSession()
	in.IsLoggedIn = true

	value, err := codec.Encode(in)
	require.NoError(t, err)
	assert.NotContains(t, value, "jane@example.com")
	assert.NotContains(t, value, "access")

	out, err := codec.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCodec_Invalid(t *testing.T) {
	t.Parallel()

	cookies := newCookies(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	codec := session.NewCodec(cookies, "zenith_session", time.Hour).WithClock(func() time.Time { return now })

	logged := validSession()
	logged.IsLoggedIn = true
	good, err := codec.Encode(logged)
	require.NoError(t, err)

	notLogged, err := codec.Encode(validSession())
	require.NoError(t, err)

	partial := logged
	partial.LocalUserID = 0
	incomplete, err := codec.Encode(partial)
	require.NoError(t, err)

	otherName, err := session.NewCodec(cookies, "other", time.Hour).Encode(logged)
	require.NoError(t, err)

	notJSON, err := cookies.Seal("zenith_session", []byte("not json"))
	require.NoError(t, err)

	futureVersion, err := cookies.Seal("zenith_session", []byte(`{"v":2,"exp":9999999999,"s":{}}`))
	require.NoError(t, err)

	tests := []struct {
		name  string
		value string
		codec *session.Codec
	}{
		{name: "empty", value: "", codec: codec},
		{name: "garbage", value: "abc.def", codec: codec},
		{name: "tampered", value: good[:len(good)-4] + "AAAA", codec: codec},
		{name: "not logged in", value: notLogged, codec: codec},
		{name: "missing field", value: incomplete, codec: codec},
		{name: "wrong cookie name", value: otherName, codec: codec},
		{name: "not json", value: notJSON, codec: codec},
		{name: "unknown version", value: futureVersion, codec: codec},
		{
			name:  "expired",
			value: good,
			codec: codec.WithClock(func() time.Time { return now.Add(time.Hour) }),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.codec.Decode(tt.value)
			assert.ErrorIs(t, err, session.ErrInvalidSession)
		})
	}

	_, err = codec.WithClock(func() time.Time { return now.Add(59 * time.Minute) }).Decode(good)
	assert.NoError(t, err)
}

func TestCodec_TooLarge(t *testing.T) {
	t.Parallel()

	codec := session.NewCodec(newCookies(t), "zenith_session", time.Hour)
	s := validSession()
	s.AccessToken = strings.Repeat("x", 4000)

	_, err := codec.Encode(s)
	assert.ErrorIs(t, err, session.ErrSessionTooLarge)
}

func TestManager_CreateRead(t *testing.T) {
	t.Parallel()

	m := setupManager(t, session.WithSecure(true))

	w := httptest.NewRecorder()
	require.NoError(t, m.Create(w, validSession()))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "zenith_session", c.Name)
	assert.Equal(t, 7*24*3600, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, "/", c.Path)

	r := requestWith(cookies)
	s, ok := m.Read(r)
	require.True(t, ok)
	assert.True(t, s.IsLoggedIn)
	assert.Equal(t, int64(42), s.LocalUserID)
	assert.Equal(t, rbac.RoleClient, s.Role)

	assert.True(t, m.IsAuthenticated(r))
	assert.True(t, m.HasRole(r, rbac.RoleAdvisor, rbac.RoleClient))
	assert.False(t, m.HasRole(r, rbac.RoleAdmin))
}

func TestManager_CreateRejectsIncomplete(t *testing.T) {
	t.Parallel()

	m := setupManager(t)
	mutations := map[string]func(*session.Session){
		"provider id": func(s *session.Session) { s.IdentityProviderUserID = "" },
		"email":       func(s *session.Session) { s.Email = " " },
		"role":        func(s *session.Session) { s.Role = "superuser" },
		"local id":    func(s *session.Session) { s.LocalUserID = 0 },
		"token":       func(s *session.Session) { s.AccessToken = "" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := validSession()
			mutate(&s)

			w := httptest.NewRecorder()
			assert.ErrorIs(t, m.Create(w, s), session.ErrIncompleteSession)
			assert.Empty(t, w.Result().Cookies())
		})
	}

	t.Run("optional fields", func(t *testing.T) {
		t.Parallel()
		s := validSession()
		s.FullName = ""
		s.RefreshToken = ""
		assert.NoError(t, m.Create(httptest.NewRecorder(), s))
	})
}

func TestManager_ReadWithoutSession(t *testing.T) {
	t.Parallel()

	m := setupManager(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	s, ok := m.Read(r)
	assert.False(t, ok)
	assert.Nil(t, s)
	assert.False(t, m.IsAuthenticated(r))
	assert.False(t, m.HasRole(r, rbac.RoleAdmin, rbac.RoleAdvisor, rbac.RoleClient))

	r = requestWith([]*http.Cookie{{Name: "zenith_session", Value: "forged"}})
	_, ok = m.Read(r)
	assert.False(t, ok)
}

func TestManager_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Now()
	clock := func() time.Time { return now }
	m := setupManager(t, session.WithTTL(time.Minute), session.WithClock(clock))

	w := httptest.NewRecorder()
	require.NoError(t, m.Create(w, validSession()))

	later := setupManager(t, session.WithTTL(time.Minute), session.WithClock(func() time.Time { return now.Add(2 * time.Minute) }))
	_, ok := later.Read(requestWith(w.Result().Cookies()))
	assert.False(t, ok)
}

func TestManager_Destroy(t *testing.T) {
	t.Parallel()

	m := setupManager(t)

	for range 2 {
		w := httptest.NewRecorder()
		m.Destroy(w)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "zenith_session", cookies[0].Name)
		assert.Equal(t, "", cookies[0].Value)
		assert.Less(t, cookies[0].MaxAge, 0)
	}
}

func TestSession_ProfileHidesTokens(t *testing.T) {
	t.Parallel()

	s := validSession()
	s.IsLoggedIn = true

	data, err := json.Marshal(s.Profile())
	require.NoError(t, err)

	body := string(data)
	assert.NotContains(t, body, "access")
	assert.NotContains(t, body, "refresh")
	assert.Contains(t, body, `"identityProviderUserId":"user_01H"`)
	assert.Contains(t, body, `"localUserId":42`)
	assert.Contains(t, body, `"role":"client"`)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	m := setupManager(t)
	w := httptest.NewRecorder()
	require.NoError(t, m.Create(w, validSession()))
	cookies := w.Result().Cookies()

	req, role, ok := m.Resolve(requestWith(cookies))
	require.True(t, ok)
	assert.Equal(t, rbac.RoleClient, role)
	got, ok := session.FromContext(req.Context())
	require.True(t, ok)
	assert.Equal(t, int64(42), got.LocalUserID)
	assert.Equal(t, "jane@example.com", got.Email)

	anon := httptest.NewRequest(http.MethodGet, "/", nil)
	req, _, ok = m.Resolve(anon)
	assert.False(t, ok)
	assert.Same(t, anon, req)
	_, ok = session.FromContext(req.Context())
	assert.False(t, ok)
}
