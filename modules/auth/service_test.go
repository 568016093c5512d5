package auth_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zenithfinancial/portal/handler"
	"github.com/zenithfinancial/portal/modules/auth"
	"github.com/zenithfinancial/portal/pkg/cookie"
	"github.com/zenithfinancial/portal/pkg/environment"
	"github.com/zenithfinancial/portal/pkg/rbac"
	"github.com/zenithfinancial/portal/pkg/session"
	"github.com/zenithfinancial/portal/svc/identity"
	"github.com/zenithfinancial/portal/svc/users"
)

const testSecret = "auth-test-secret-that-is-at-least-32-bytes"

type harness struct {
	store    *MockUserStore
	idp      *MockIdentityProvider
	cookies  *cookie.Manager
	sessions *session.Manager
	router   http.Handler
}

func setup(t *testing.T, cfg auth.Config, env environment.Environment) *harness {
	t.Helper()

	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	h := &harness{
		store:    &MockUserStore{},
		idp:      &MockIdentityProvider{},
		cookies:  cookies,
		sessions: session.New(cookies),
	}
	svc := auth.NewService(cfg, h.store, h.idp, h.sessions, cookies)

	r := chi.NewRouter()
	r.Use(environment.Middleware(env))
	r.Mount("/api/auth", svc.Handle())
	h.router = r

	t.Cleanup(func() {
		h.store.AssertExpectations(t)
		h.idp.AssertExpectations(t)
	})
	return h
}

func (h *harness) do(r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, r)
	return w
}

// stateCookie issues a state cookie exactly as the login endpoint would.
func (h *harness) stateCookie(t *testing.T, state string) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, h.cookies.SetEncrypted(w, auth.StateCookieName, []byte(state)))
	return findCookie(w, auth.StateCookieName)
}

// loggedIn returns a session cookie for s.
func (h *harness) loggedIn(t *testing.T, s session.Session) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, h.sessions.Create(w, s))
	return findCookie(w, "zenith_session")
}

// sessionFrom reads the session the response would leave in the browser.
func (h *harness) sessionFrom(w *httptest.ResponseRecorder) (*session.Session, bool) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if c := findCookie(w, "zenith_session"); c != nil && c.MaxAge >= 0 {
		r.AddCookie(c)
	}
	return h.sessions.Read(r)
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body handler.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func callbackRequest(query string, cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/auth/callback?"+query, nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

var providerUser = identity.User{
	ID:            "user_01J",
	Email:         "Jane.Doe@Example.com",
	FirstName:     "Jane",
	LastName:      "Doe",
	EmailVerified: true,
}

func exchanged() identity.Result {
	return identity.Result{
		User:   providerUser,
		Tokens: identity.Tokens{AccessToken: "at-1", RefreshToken: "rt-1"},
	}
}

func localUser(id int64, role rbac.Role) users.User {
	return users.User{
		ID:       id,
		Email:    "jane.doe@example.com",
		FullName: "Jane Doe",
		Role:     role,
		Active:   true,
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("redirects to provider with state cookie", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)

		var state string
		h.idp.On("AuthorizationURL", identity.ProviderPassword, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { state = args.String(1) }).
			Return("https://idp.example.com/authorize?state=x", nil).Once()

		w := h.do(httptest.NewRequest(http.MethodGet, "/api/auth/login", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "https://idp.example.com/authorize?state=x", w.Header().Get("Location"))
		assert.GreaterOrEqual(t, len(state), 43, "32 random bytes, base64url encoded")

		c := findCookie(w, auth.StateCookieName)
		require.NotNil(t, c)
		assert.Equal(t, 600, c.MaxAge)
		assert.True(t, c.HttpOnly)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)
		stored, err := h.cookies.GetEncrypted(r, auth.StateCookieName)
		require.NoError(t, err)
		assert.Equal(t, state, string(stored))
	})

	t.Run("provider alias", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)
		h.idp.On("AuthorizationURL", identity.ProviderGoogle, mock.Anything).Return("https://idp.example.com/g", nil).Once()

		w := h.do(httptest.NewRequest(http.MethodGet, "/api/auth/login?provider=google", nil))
		assert.Equal(t, http.StatusFound, w.Code)
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)

		w := h.do(httptest.NewRequest(http.MethodGet, "/api/auth/login?provider=github", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_provider", errorCode(t, w))
		assert.Nil(t, findCookie(w, auth.StateCookieName))
	})

	t.Run("provider url failure", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)
		h.idp.On("AuthorizationURL", identity.ProviderPassword, mock.Anything).Return("", errors.New("boom")).Once()

		w := h.do(httptest.NewRequest(http.MethodGet, "/api/auth/login", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "login_failed", errorCode(t, w))
	})
}

func TestCallback(t *testing.T) {
	t.Parallel()

	t.Run("first login creates one client user", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)

		h.idp.On("Exchange", mock.Anything, "code-1").Return(exchanged(), nil).Once()
		h.store.On("GetUserByEmail", mock.Anything, "jane.doe@example.com").Return(users.User{}, users.ErrUserNotFound).Once()
		h.store.On("CreateUser", mock.Anything, users.NewUser{
			Email:         "jane.doe@example.com",
			FullName:      "Jane Doe",
			Role:          rbac.RoleClient,
			EmailVerified: true,
		}).Return(localUser(7, rbac.RoleClient), true, nil).Once()
		h.store.On("TouchLastLogin", mock.Anything, int64(7)).Return(nil).Once()

		w := h.do(callbackRequest("code=code-1&state=st", h.stateCookie(t, "st")))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/client/dashboard", w.Header().Get("Location"))

		sess, ok := h.sessionFrom(w)
		require.True(t, ok)
		assert.Equal(t, "user_01J", sess.IdentityProviderUserID)
		assert.Equal(t, int64(7), sess.LocalUserID)
		assert.Equal(t, rbac.RoleClient, sess.Role)
		assert.Equal(t, "at-1", sess.AccessToken)
		assert.Equal(t, "rt-1", sess.RefreshToken)
		assert.True(t, sess.IsLoggedIn)

		state := findCookie(w, auth.StateCookieName)
		require.NotNil(t, state)
		assert.Less(t, state.MaxAge, 0, "state cookie is single use")
	})

	t.Run("existing advisor", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)

		h.idp.On("Exchange", mock.Anything, "code-2").Return(exchanged(), nil).Once()
		h.store.On("GetUserByEmail", mock.Anything, "jane.doe@example.com").Return(localUser(3, rbac.RoleAdvisor), nil).Once()
		h.store.On("TouchLastLogin", mock.Anything, int64(3)).Return(nil).Once()

		w := h.do(callbackRequest("code=code-2&state=st", h.stateCookie(t, "st")))

		assert.Equal(t, "/advisor/dashboard", w.Header().Get("Location"))
		h.store.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("last login failure does not block", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)

		h.idp.On("Exchange", mock.Anything, "code").Return(exchanged(), nil).Once()
		h.store.On("GetUserByEmail", mock.Anything, mock.Anything).Return(localUser(9, rbac.RoleAdmin), nil).Once()
		h.store.On("TouchLastLogin", mock.Anything, int64(9)).Return(users.ErrStore).Once()

		w := h.do(callbackRequest("code=code&state=st", h.stateCookie(t, "st")))
		assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
		_, ok := h.sessionFrom(w)
		assert.True(t, ok)
	})

	failures := []struct {
		name   string
		cfg    func(*auth.Config)
		req    func(t *testing.T, h *harness) *http.Request
		mocks  func(h *harness)
		reason string
	}{
		{
			name:   "missing code",
			req:    func(t *testing.T, h *harness) *http.Request { return callbackRequest("state=st", h.stateCookie(t, "st")) },
			reason: auth.ReasonNoCode,
		},
		{
			name:   "missing state cookie",
			req:    func(t *testing.T, h *harness) *http.Request { return callbackRequest("code=c&state=st") },
			reason: auth.ReasonInvalidState,
		},
		{
			name:   "mismatched state",
			req:    func(t *testing.T, h *harness) *http.Request { return callbackRequest("code=c&state=other", h.stateCookie(t, "st")) },
			reason: auth.ReasonInvalidState,
		},
		{
			name:   "missing state parameter",
			req:    func(t *testing.T, h *harness) *http.Request { return callbackRequest("code=c", h.stateCookie(t, "st")) },
			reason: auth.ReasonInvalidState,
		},
		{
			name: "exchange rejected",
			req:  func(t *testing.T, h *harness) *http.Request { return callbackRequest("code=c&state=st", h.stateCookie(t, "st")) },
			mocks: func(h *harness) {
				h.idp.On("Exchange", mock.Anything, "c").Return(identity.Result{}, identity.ErrAuthenticationFailed).Once()
			},
			reason: auth.ReasonAuthenticationFailed,
		},
		{
			name: "store failure",
			req:  func(t *testing.T, h *harness) *http.Request { return callbackRequest("code=c&state=st", h.stateCookie(t, "st")) },
			mocks: func(h *harness) {
				h.idp.On("Exchange", mock.Anything, "c").Return(exchanged(), nil).Once()
				h.store.On("GetUserByEmail", mock.Anything, mock.Anything).Return(users.User{}, users.ErrStore).Once()
			},
			reason: auth.ReasonAuthenticationFailed,
		},
		{
			name: "create failure",
			req:  func(t *testing.T, h *harness) *http.Request { return callbackRequest("code=c&state=st", h.stateCookie(t, "st")) },
			mocks: func(h *harness) {
				h.idp.On("Exchange", mock.Anything, "c").Return(exchanged(), nil).Once()
				h.store.On("GetUserByEmail", mock.Anything, mock.Anything).Return(users.User{}, users.ErrUserNotFound).Once()
				h.store.On("CreateUser", mock.Anything, mock.Anything).Return(users.User{}, false, users.ErrStore).Once()
			},
			reason: auth.ReasonAuthenticationFailed,
		},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := auth.DefaultConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			h := setup(t, cfg, environment.Development)
			if tt.mocks != nil {
				tt.mocks(h)
			}

			w := h.do(tt.req(t, h))

			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/login?error="+tt.reason, w.Header().Get("Location"))
			_, ok := h.sessionFrom(w)
			assert.False(t, ok, "no session on failure")
			h.store.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything)
		})
	}

	t.Run("state check disabled", func(t *testing.T) {
		t.Parallel()
		cfg := auth.DefaultConfig()
		cfg.VerifyState = false
		h := setup(t, cfg, environment.Development)

		h.idp.On("Exchange", mock.Anything, "c").Return(exchanged(), nil).Once()
		h.store.On("GetUserByEmail", mock.Anything, mock.Anything).Return(localUser(1, rbac.RoleClient), nil).Once()
		h.store.On("TouchLastLogin", mock.Anything, int64(1)).Return(nil).Once()

		w := h.do(callbackRequest("code=c"))
		assert.Equal(t, "/client/dashboard", w.Header().Get("Location"))
	})

	t.Run("absolute login url", func(t *testing.T) {
		t.Parallel()
		cfg := auth.DefaultConfig()
		cfg.AppURL = "https://portal.example.com/"
		h := setup(t, cfg, environment.Development)

		w := h.do(callbackRequest(""))
		assert.Equal(t, "https://portal.example.com/login?error=no_code", w.Header().Get("Location"))
	})
}

func TestMe(t *testing.T) {
	t.Parallel()

	h := setup(t, auth.DefaultConfig(), environment.Development)

	w := h.do(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.AddCookie(h.loggedIn(t, session.Session{
		IdentityProviderUserID: "user_01J",
		Email:                  "jane@example.com",
		FullName:               "Jane Doe",
		Role:                   rbac.RoleAdvisor,
		LocalUserID:            5,
		AccessToken:            "secret-access",
		RefreshToken:           "secret-refresh",
	}))
	w = h.do(r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"authenticated": true,
		"user": {
			"identityProviderUserId": "user_01J",
			"email": "jane@example.com",
			"fullName": "Jane Doe",
			"role": "advisor",
			"localUserId": 5,
			"isLoggedIn": true
		}
	}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "secret-")
}

func TestLogout(t *testing.T) {
	t.Parallel()

	t.Run("post", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)

		for range 2 {
			w := h.do(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"success":true}`, w.Body.String())

			c := findCookie(w, "zenith_session")
			require.NotNil(t, c)
			assert.Less(t, c.MaxAge, 0)
		}
	})

	t.Run("get", func(t *testing.T) {
		t.Parallel()
		cfg := auth.DefaultConfig()
		cfg.AppURL = "https://portal.example.com"
		h := setup(t, cfg, environment.Development)

		w := h.do(httptest.NewRequest(http.MethodGet, "/api/auth/logout", nil))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "https://portal.example.com/login", w.Header().Get("Location"))
	})
}

func devLoginRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/auth/dev-login", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestDevLogin(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)
		h.store.On("GetUserByEmail", mock.Anything, "jane.doe@example.com").Return(localUser(12, rbac.RoleAdvisor), nil).Once()
		h.store.On("TouchLastLogin", mock.Anything, int64(12)).Return(nil).Once()

		w := h.do(devLoginRequest(`{"email":"jane.doe@example.com"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"success": true,
			"user": {"id": 12, "email": "jane.doe@example.com", "fullName": "Jane Doe", "role": "advisor"},
			"redirectUrl": "/advisor/dashboard"
		}`, w.Body.String())

		sess, ok := h.sessionFrom(w)
		require.True(t, ok)
		assert.Equal(t, "dev_12", sess.IdentityProviderUserID)
		assert.Equal(t, "dev_token", sess.AccessToken)
		assert.Equal(t, "dev_refresh_token", sess.RefreshToken)
	})

	t.Run("production", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Production)

		for _, body := range []string{
			`{"email":"jane.doe@example.com"}`,
			`{"email":`,
			`{"email":"a@b.c","x":1}`,
			``,
		} {
			w := h.do(devLoginRequest(body))
			assert.Equal(t, http.StatusForbidden, w.Code, body)
			assert.Equal(t, "dev_login_disabled", errorCode(t, w), body)
			assert.Nil(t, findCookie(w, "zenith_session"))
		}

		r := httptest.NewRequest(http.MethodPost, "/api/auth/dev-login", strings.NewReader("email=a%40b.c"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := h.do(r)
		assert.Equal(t, http.StatusForbidden, w.Code, "form body")
	})

	t.Run("email required", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)

		w := h.do(devLoginRequest(`{}`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "email_required", errorCode(t, w))

		w = h.do(devLoginRequest(``))
		assert.Equal(t, "email_required", errorCode(t, w))
	})

	t.Run("user not found", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)
		h.store.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(users.User{}, users.ErrUserNotFound).Once()

		w := h.do(devLoginRequest(`{"email":"ghost@example.com"}`))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "user_not_found", errorCode(t, w))
		assert.Nil(t, findCookie(w, "zenith_session"))
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)
		h.store.On("GetUserByEmail", mock.Anything, mock.Anything).Return(users.User{}, errors.Join(users.ErrStore, errors.New("conn refused"))).Once()

		w := h.do(devLoginRequest(`{"email":"jane@example.com"}`))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "conn refused")
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)

		w := h.do(devLoginRequest(`{"email":`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_request", errorCode(t, w))
	})
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	current := session.Session{
		IdentityProviderUserID: "user_01J",
		Email:                  "jane.doe@example.com",
		FullName:               "Jane Doe",
		Role:                   rbac.RoleClient,
		LocalUserID:            7,
		AccessToken:            "at-old",
		RefreshToken:           "rt-old",
	}

	refreshRequest := func(c *http.Cookie) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
		if c != nil {
			r.AddCookie(c)
		}
		return r
	}

	t.Run("no session", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)

		w := h.do(refreshRequest(nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "unauthorized", errorCode(t, w))
	})

	t.Run("renews tokens and role", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)
		h.idp.On("Refresh", mock.Anything, "rt-old").Return(identity.Tokens{AccessToken: "at-new", RefreshToken: "rt-new"}, nil).Once()
		h.idp.On("GetUser", mock.Anything, "user_01J").Return(identity.User{ID: "user_01J"}, nil).Once()
		h.store.On("GetUserByID", mock.Anything, int64(7)).Return(localUser(7, rbac.RoleAdvisor), nil).Once()

		w := h.do(refreshRequest(h.loggedIn(t, current)))

		assert.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Success bool            `json:"success"`
			User    session.Profile `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, rbac.RoleAdvisor, body.User.Role)
		assert.True(t, body.User.IsLoggedIn)

		sess, ok := h.sessionFrom(w)
		require.True(t, ok)
		assert.Equal(t, "at-new", sess.AccessToken)
		assert.Equal(t, "rt-new", sess.RefreshToken)
		assert.Equal(t, rbac.RoleAdvisor, sess.Role)
	})

	t.Run("provider rejects", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)
		h.idp.On("Refresh", mock.Anything, "rt-old").Return(identity.Tokens{}, identity.ErrRefreshFailed).Once()

		w := h.do(refreshRequest(h.loggedIn(t, current)))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "refresh_failed", errorCode(t, w))
		c := findCookie(w, "zenith_session")
		require.NotNil(t, c)
		assert.Less(t, c.MaxAge, 0)
	})

	t.Run("user removed", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)
		h.idp.On("Refresh", mock.Anything, "rt-old").Return(identity.Tokens{AccessToken: "at-new"}, nil).Once()
		h.idp.On("GetUser", mock.Anything, "user_01J").Return(identity.User{ID: "user_01J"}, nil).Once()
		h.store.On("GetUserByID", mock.Anything, int64(7)).Return(users.User{}, users.ErrUserNotFound).Once()

		w := h.do(refreshRequest(h.loggedIn(t, current)))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("user removed at provider", func(t *testing.T) {
		t.Parallel()
		h := setup(t, auth.DefaultConfig(), environment.Development)
		h.idp.On("Refresh", mock.Anything, "rt-old").Return(identity.Tokens{AccessToken: "at-new", RefreshToken: "rt-new"}, nil).Once()
		h.idp.On("GetUser", mock.Anything, "user_01J").Return(identity.User{}, identity.ErrUserLookupFailed).Once()

		w := h.do(refreshRequest(h.loggedIn(t, current)))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "refresh_failed", errorCode(t, w))
		c := findCookie(w, "zenith_session")
		require.NotNil(t, c)
		assert.Less(t, c.MaxAge, 0)
		h.store.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	})
}

func TestLoginURLEscaping(t *testing.T) {
	t.Parallel()

	cfg := auth.DefaultConfig()
	cfg.LoginPath = "/signin"
	cfg.StateTTL = time.Minute
	h := setup(t, cfg, environment.Development)

	w := h.do(callbackRequest(""))
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/signin", loc.Path)
	assert.Equal(t, auth.ReasonNoCode, loc.Query().Get("error"))
}

func TestThrottle(t *testing.T) {
	t.Parallel()

	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	var throttled []string
	deny := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			throttled = append(throttled, r.Method+" "+r.URL.Path)
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	svc := auth.NewService(auth.DefaultConfig(), &MockUserStore{}, &MockIdentityProvider{},
		session.New(cookies), cookies, auth.WithThrottle(deny))
	h := svc.Handle()

	for _, tc := range []struct {
		method, path string
		status       int
	}{
		{http.MethodGet, "/login", http.StatusTooManyRequests},
		{http.MethodGet, "/callback", http.StatusTooManyRequests},
		{http.MethodPost, "/refresh", http.StatusTooManyRequests},
		{http.MethodPost, "/dev-login", http.StatusTooManyRequests},
		{http.MethodGet, "/me", http.StatusUnauthorized},
		{http.MethodPost, "/logout", http.StatusOK},
	} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.status, w.Code, tc.method+" "+tc.path)
	}
	assert.Len(t, throttled, 4)
}
