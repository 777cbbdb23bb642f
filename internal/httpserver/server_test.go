package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogfront/internal/api"
	"blogfront/internal/config"
	"blogfront/internal/middleware"
	"blogfront/internal/models"
	"blogfront/internal/search"
	"blogfront/internal/session"
)

// backend is a scripted stand-in for the blog API. Every request is
// recorded so tests can assert which calls did (and did not) go out.
type backend struct {
	srv *httptest.Server

	mu       sync.Mutex
	requests []string

	blogs models.BlogPage

	likeStatus int
	likeBody   string

	categoryStatus int
	categoryBody   string
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{
		blogs: models.BlogPage{
			TotalPages:  1,
			CurrentPage: 1,
			TotalBlogs:  1,
			Blogs: []models.Blog{{
				ID:       1,
				Title:    "Going Places",
				Content:  "A travelogue.",
				Category: &models.Category{ID: 1, Name: "Travel"},
				Author:   models.UserProfile{ID: 2, Username: "alice"},
				Stats:    models.BlogStats{Views: 10, Likes: 3, Shares: 1},
			}},
		},
		likeStatus:     http.StatusOK,
		likeBody:       `{"likes": 4}`,
		categoryStatus: http.StatusCreated,
		categoryBody:   `{"id": 2, "name": "Food", "description": ""}`,
	}
	b.srv = httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) handle(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	line := r.Method + " " + r.URL.Path
	if r.URL.RawQuery != "" {
		line += "?" + r.URL.RawQuery
	}
	b.requests = append(b.requests, line)
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/auth/login/":
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "No active account found with the given credentials"}`))
			return
		}
		json.NewEncoder(w).Encode(api.LoginResponse{
			Access:  "access-token",
			Refresh: "refresh-token",
			User:    models.UserProfile{ID: 7, Username: creds["username"]},
		})

	case r.Method == http.MethodGet && r.URL.Path == "/blogs/":
		json.NewEncoder(w).Encode(b.blogs)

	case r.Method == http.MethodGet && r.URL.Path == "/blogs/1/":
		json.NewEncoder(w).Encode(b.blogs.Blogs[0])

	case r.Method == http.MethodGet && r.URL.Path == "/blogs/1/comments/":
		w.Write([]byte(`[]`))

	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/like/"):
		w.WriteHeader(b.likeStatus)
		w.Write([]byte(b.likeBody))

	case r.Method == http.MethodGet && r.URL.Path == "/categories/":
		json.NewEncoder(w).Encode([]models.Category{{ID: 1, Name: "Travel"}})

	case r.Method == http.MethodPost && r.URL.Path == "/categories/":
		w.WriteHeader(b.categoryStatus)
		w.Write([]byte(b.categoryBody))

	default:
		w.Write([]byte(`{}`))
	}
}

func (b *backend) count(substr string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, line := range b.requests {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

func (b *backend) total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

type testEnv struct {
	e       *echo.Echo
	backend *backend
	store   *session.Store
	cfg     *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	b := newBackend(t)
	store, err := session.Open(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)

	cfg := &config.Config{
		APIBaseURL:     b.srv.URL,
		SearchDebounce: 30 * time.Millisecond,
	}
	client := api.NewClient(b.srv.URL)
	h := &Handler{
		Cfg:      cfg,
		API:      client,
		Sessions: store,
		Debounce: search.NewDebouncer(cfg.SearchDebounce),
	}
	guard := &middleware.Guard{Store: store, API: client}

	e := echo.New()
	require.NoError(t, Register(e, &Deps{
		Handler:     h,
		Guard:       guard,
		TemplateDir: "../../web/templates",
	}))
	return &testEnv{e: e, backend: b, store: store, cfg: cfg}
}

func (env *testEnv) login(t *testing.T, sid string, admin bool) {
	t.Helper()
	claims := jwt.MapClaims{"username": "bob"}
	if admin {
		claims["is_admin"] = true
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	require.NoError(t, env.store.Set(sid, session.State{
		AccessToken: token,
		User:        models.UserProfile{ID: 7, Username: "bob", IsAdmin: admin},
	}))
}

func (env *testEnv) do(method, target, sid string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: sid})
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func flashFrom(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == flashCookie && cookie.Value != "" {
			raw, err := url.QueryUnescape(cookie.Value)
			require.NoError(t, err)
			return raw
		}
	}
	return ""
}

func TestRegisterPasswordMismatchStaysLocal(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/register", "", url.Values{
		"username":  {"bob"},
		"email":     {"bob@example.com"},
		"password":  {"one"},
		"password2": {"two"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Passwords do not match!")
	assert.Contains(t, rec.Body.String(), "bob@example.com")
	assert.Zero(t, env.backend.total())
}

func TestLoginPersistsSessionAndLandsOnFeed(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/login", "", url.Values{
		"username": {"bob"},
		"password": {"secret"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/home", rec.Header().Get("Location"))

	var sid string
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.CookieName {
			sid = cookie.Value
		}
	}
	require.NotEmpty(t, sid)

	state, err := env.store.Current(sid)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "access-token", state.AccessToken)
	assert.Equal(t, "refresh-token", state.RefreshToken)
	assert.Equal(t, "bob", state.User.Username)

	// The feed renders without re-prompting for credentials.
	home := env.do(http.MethodGet, "/home", sid, nil)
	assert.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), "Going Places")
}

func TestLoginBadCredentialsMessage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/login", "", url.Values{
		"username": {"bob"},
		"password": {"wrong"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid username or password.")
}

func TestGuardedRouteRedirectsWithoutFetch(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/my-blogs", "", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Zero(t, env.backend.total())
}

func TestHomePageBeyondLastRendersEmpty(t *testing.T) {
	env := newTestEnv(t)
	env.backend.blogs = models.BlogPage{TotalPages: 3, CurrentPage: 9, TotalBlogs: 25, Blogs: nil}

	rec := env.do(http.MethodGet, "/home?page=9", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Going Places")
	assert.NotContains(t, rec.Body.String(), "Failed to load blogs!")
}

func TestDuplicateLikeKeepsDisplayedStats(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "sid-1", false)
	env.backend.likeStatus = http.StatusForbidden
	env.backend.likeBody = `{"detail": "You have already liked this blog"}`

	rec := env.do(http.MethodPost, "/blogs/1/like", "sid-1", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/blogs/1", rec.Header().Get("Location"))
	assert.Contains(t, flashFrom(t, rec), "You cannot like this blog again.")

	// Rejection never triggers the stats refetch.
	assert.Zero(t, env.backend.count("GET /blogs/1/"))
}

func TestLikeRefetchesAuthoritativeCount(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "sid-1", false)

	req := httptest.NewRequest(http.MethodPost, "/blogs/1/like", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: "sid-1"})
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// The count comes from the refetched blog, not the like response.
	assert.JSONEq(t, `{"likes": 3}`, rec.Body.String())
	assert.Equal(t, 1, env.backend.count("GET /blogs/1/"))
}

func TestOptimisticLikeUsesResponseCount(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.OptimisticLikes = true
	env.login(t, "sid-1", false)

	req := httptest.NewRequest(http.MethodPost, "/blogs/1/like", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: "sid-1"})
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"likes": 4}`, rec.Body.String())
	assert.Zero(t, env.backend.count("GET /blogs/1/"))
}

func TestShortTitleRejectedLocally(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "sid-1", false)

	rec := env.do(http.MethodPost, "/create-blog", "sid-1", url.Values{
		"title":    {"ab"},
		"content":  {"Some content."},
		"category": {"Travel"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Title must be at least 3 characters long.")
	assert.Zero(t, env.backend.count("POST /blogs/"))
}

func TestCategoryNameConflictMessage(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "sid-1", true)
	env.backend.categoryStatus = http.StatusBadRequest
	env.backend.categoryBody = `{"name": ["category with this name already exists."]}`

	rec := env.do(http.MethodPost, "/categories", "sid-1", url.Values{
		"name": {"Travel"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, flashFrom(t, rec), "A category with this name already exists.")
}

func TestCategoriesRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "sid-1", false)

	rec := env.do(http.MethodGet, "/categories", "sid-1", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/home", rec.Header().Get("Location"))
}

func TestSearchDebouncesRapidTerms(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "sid-1", false)

	first := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		req := httptest.NewRequest(http.MethodGet, "/search?q=go", nil)
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: "sid-1"})
		env.e.ServeHTTP(first, req)
	}()

	time.Sleep(10 * time.Millisecond)
	second := env.do(http.MethodGet, "/search?q=golang", "sid-1", nil)
	<-done

	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), "Going Places")

	// Exactly one request left, carrying the newest term.
	assert.Equal(t, 1, env.backend.count("search="))
	assert.Equal(t, 1, env.backend.count("search=golang"))
}
