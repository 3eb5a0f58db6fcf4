package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/scrawl/internal/auth"
	"github.com/dmitrymomot/scrawl/internal/cookie"
	"github.com/dmitrymomot/scrawl/internal/repository"
	"github.com/dmitrymomot/scrawl/internal/response"
	"github.com/dmitrymomot/scrawl/internal/router"
	"github.com/dmitrymomot/scrawl/internal/session"
	"github.com/dmitrymomot/scrawl/internal/web"
)

// In-memory stores standing in for the postgres repositories.

type memUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]repository.User
	byName map[string]repository.User
	calls  int
}

func newMemUsers() *memUsers {
	return &memUsers{
		byID:   make(map[int64]repository.User),
		byName: make(map[string]repository.User),
	}
}

func (s *memUsers) GetByID(ctx context.Context, id int64) (*repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	u, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (s *memUsers) GetByUsername(ctx context.Context, username string) (*repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	u, ok := s.byName[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (s *memUsers) Create(ctx context.Context, username string, passwordHash []byte) (*repository.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if _, exists := s.byName[username]; exists {
		return nil, repository.ErrUsernameTaken
	}
	s.nextID++
	u := repository.User{ID: s.nextID, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.byID[u.ID] = u
	s.byName[username] = u
	return &u, nil
}

func (s *memUsers) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type memSessions struct {
	mu   sync.Mutex
	rows map[string]session.Session
}

func newMemSessions() *memSessions {
	return &memSessions{rows: make(map[string]session.Session)}
}

func (s *memSessions) Create(ctx context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rows[sess.Token]; exists {
		return session.ErrDuplicateToken
	}
	s.rows[sess.Token] = *sess
	return nil
}

func (s *memSessions) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.rows[token]
	if !ok {
		return nil, session.ErrNotFound
	}
	return &sess, nil
}

func (s *memSessions) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func (s *memSessions) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

type memPosts struct {
	mu     sync.Mutex
	nextID int64
	rows   []repository.Post
	calls  int
}

func (s *memPosts) Create(ctx context.Context, userID int64, title, content string) (*repository.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.nextID++
	p := repository.Post{ID: s.nextID, UserID: userID, Title: title, Content: content, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	s.rows = append(s.rows, p)
	return &p, nil
}

func (s *memPosts) ListByUser(ctx context.Context, userID int64) ([]repository.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	var out []repository.Post
	// Newest first, as the repository orders them.
	for i := len(s.rows) - 1; i >= 0; i-- {
		if s.rows[i].UserID == userID {
			out = append(out, s.rows[i])
		}
	}
	return out, nil
}

func (s *memPosts) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fixture struct {
	handler  http.Handler
	users    *memUsers
	sessions *memSessions
	posts    *memPosts
	manager  *session.Manager
	gate     *auth.CredentialGate
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := newMemUsers()
	sessions := newMemSessions()
	posts := &memPosts{}

	manager := session.NewManager(sessions, time.Hour)
	cookies := cookie.NewManager("id", time.Hour)
	authenticator := auth.NewAuthenticator(manager, users, "id")
	gate := auth.NewCredentialGate(users)

	app := web.NewApp(authenticator, gate, manager, cookies, posts, nil)

	r := router.New(router.WithContextFactory(web.NewContext))
	app.Routes(r)

	return &fixture{
		handler:  r,
		users:    users,
		sessions: sessions,
		posts:    posts,
		manager:  manager,
		gate:     gate,
	}
}

// login creates an account and a session directly, returning the session.
func (f *fixture) login(t *testing.T, username string) session.Session {
	t.Helper()

	user, err := f.gate.CreateUser(context.Background(), username, "sekret")
	require.NoError(t, err)

	sess, err := f.manager.Create(context.Background(), user.ID)
	require.NoError(t, err)
	return sess
}

func (f *fixture) get(t *testing.T, path, rawCookie string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, path, nil)
	if rawCookie != "" {
		r.Header.Set("Cookie", rawCookie)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, r)
	return rec
}

func (f *fixture) postForm(t *testing.T, path string, values url.Values, rawCookie string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if rawCookie != "" {
		r.Header.Set("Cookie", rawCookie)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, r)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "id" {
			return c
		}
	}
	return nil
}

func TestHome(t *testing.T) {
	t.Parallel()

	t.Run("no cookie renders login form", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		rec := f.get(t, "/", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `hx-post="/login"`)
	})

	t.Run("stale cookie renders login form", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		rec := f.get(t, "/", "id=forged")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `hx-post="/login"`)
	})

	t.Run("live session redirects to admin", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		sess := f.login(t, "alice")

		rec := f.get(t, "/", "id="+sess.Token)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin", rec.Header().Get("Location"))
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sess := f.login(t, "alice")
	before := f.sessions.count()

	rec := f.get(t, "/logout", "id="+sess.Token)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Contains(t, c.String(), "Max-Age=0")

	// Logout only clears the client cookie; the server-side row survives
	// until expiry.
	assert.Equal(t, before, f.sessions.count())
	_, err := f.manager.GetByToken(context.Background(), sess.Token)
	assert.NoError(t, err)
}

func TestAdmin(t *testing.T) {
	t.Parallel()

	t.Run("no cookie redirects home", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		rec := f.get(t, "/admin", "")

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
		assert.Nil(t, sessionCookie(rec))
	})

	t.Run("dead session redirects home and clears cookie", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		rec := f.get(t, "/admin", "id=forged")

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		c := sessionCookie(rec)
		require.NotNil(t, c)
		assert.Contains(t, c.String(), "Max-Age=0")
	})

	t.Run("live session renders posts and csrf with no-cache", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		sess := f.login(t, "alice")

		_, err := f.posts.Create(context.Background(), sess.UserID, "First", "post one")
		require.NoError(t, err)
		_, err = f.posts.Create(context.Background(), sess.UserID, "Second", "post two")
		require.NoError(t, err)

		rec := f.get(t, "/admin", "id="+sess.Token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no-cache, no-store, max-age=0", rec.Header().Get("Cache-Control"))

		body := rec.Body.String()
		assert.Contains(t, body, sess.CSRFToken)
		assert.Contains(t, body, "alice")
		assert.Contains(t, body, "First")
		assert.Contains(t, body, "Second")
		assert.Less(t, strings.Index(body, "Second"), strings.Index(body, "First"), "posts should be newest first")
	})
}

func TestCreatePost(t *testing.T) {
	t.Parallel()

	t.Run("valid session and csrf creates post and returns fragment", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		sess := f.login(t, "alice")

		rec := f.postForm(t, "/post", url.Values{
			"csrf":    {sess.CSRFToken},
			"title":   {"Hello"},
			"content": {"first post"},
		}, "id="+sess.Token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Hello")
		assert.Contains(t, rec.Body.String(), "first post")
		assert.Contains(t, rec.Body.String(), `class="post"`)
	})

	t.Run("html in post content is escaped", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		sess := f.login(t, "alice")

		rec := f.postForm(t, "/post", url.Values{
			"csrf":    {sess.CSRFToken},
			"title":   {"<script>alert(1)</script>"},
			"content": {"<b>bold</b>"},
		}, "id="+sess.Token)

		body := rec.Body.String()
		assert.NotContains(t, body, "<script>")
		assert.NotContains(t, body, "<b>")
		assert.Contains(t, body, "&lt;script&gt;")
	})

	t.Run("csrf mismatch rejected even with valid session", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		sess := f.login(t, "alice")

		rec := f.postForm(t, "/post", url.Values{
			"csrf":    {"wrong-token"},
			"title":   {"Hello"},
			"content": {"first post"},
		}, "id="+sess.Token)

		assert.Equal(t, "invalid request", rec.Body.String())
		assert.Equal(t, "form .errors", rec.Header().Get(response.HeaderHXRetarget))
		assert.Equal(t, "innerHTML", rec.Header().Get(response.HeaderHXReswap))
		assert.Zero(t, f.posts.callCount(), "no post must be stored")
	})

	t.Run("missing csrf field rejected", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		sess := f.login(t, "alice")

		rec := f.postForm(t, "/post", url.Values{
			"title":   {"Hello"},
			"content": {"first post"},
		}, "id="+sess.Token)

		assert.Equal(t, "invalid request", rec.Body.String())
	})

	t.Run("unauthenticated caller is redirected with cookie cleared", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		rec := f.postForm(t, "/post", url.Values{
			"csrf":    {"whatever"},
			"title":   {"Hello"},
			"content": {"first post"},
		}, "id=forged")

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		c := sessionCookie(rec)
		require.NotNil(t, c)
		assert.Contains(t, c.String(), "Max-Age=0")
		assert.Zero(t, f.posts.callCount())
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials set cookie and redirect to admin", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		_, err := f.gate.CreateUser(context.Background(), "alice", "sekret")
		require.NoError(t, err)

		rec := f.postForm(t, "/login", url.Values{
			"username": {"alice"},
			"password": {"sekret"},
		}, "")

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin", rec.Header().Get("Location"))

		c := sessionCookie(rec)
		require.NotNil(t, c)
		assert.NotEmpty(t, c.Value)
		assert.True(t, c.HttpOnly)
		assert.True(t, c.Secure)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

		// The cookie value resolves to a live session.
		_, err = f.manager.GetByToken(context.Background(), c.Value)
		assert.NoError(t, err)
	})

	t.Run("htmx login redirects via HX-Redirect", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		_, err := f.gate.CreateUser(context.Background(), "alice", "sekret")
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(url.Values{
			"username": {"alice"},
			"password": {"sekret"},
		}.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.Header.Set(response.HeaderHXRequest, "true")
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin", rec.Header().Get(response.HeaderHXRedirect))
		assert.Empty(t, rec.Header().Get("Location"))
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		_, err := f.gate.CreateUser(context.Background(), "alice", "sekret")
		require.NoError(t, err)

		wrongPw := f.postForm(t, "/login", url.Values{
			"username": {"alice"},
			"password": {"nope"},
		}, "")
		noUser := f.postForm(t, "/login", url.Values{
			"username": {"nobody"},
			"password": {"nope"},
		}, "")

		assert.Equal(t, wrongPw.Code, noUser.Code)
		assert.Equal(t, wrongPw.Body.String(), noUser.Body.String())
		assert.Equal(t, "authentication failed", wrongPw.Body.String())
		assert.Equal(t, "form .errors", wrongPw.Header().Get(response.HeaderHXRetarget))
		assert.Equal(t, "innerHTML", wrongPw.Header().Get(response.HeaderHXReswap))
		assert.Nil(t, sessionCookie(wrongPw))
		assert.Nil(t, sessionCookie(noUser))
	})
}

func TestSignup(t *testing.T) {
	t.Parallel()

	t.Run("page renders signup form", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		rec := f.get(t, "/signup", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `hx-post="/signup"`)
		assert.Contains(t, rec.Body.String(), `name="password1"`)
		assert.Contains(t, rec.Body.String(), `name="password2"`)
	})

	t.Run("valid signup sets cookie and redirects to admin", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		rec := f.postForm(t, "/signup", url.Values{
			"username":  {"alice"},
			"password1": {"sekret"},
			"password2": {"sekret"},
		}, "")

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin", rec.Header().Get("Location"))

		c := sessionCookie(rec)
		require.NotNil(t, c)
		assert.NotEmpty(t, c.Value)
	})

	t.Run("short password fails before any storage call", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		rec := f.postForm(t, "/signup", url.Values{
			"username":  {"alice"},
			"password1": {"ab"},
			"password2": {"ab"},
		}, "")

		assert.Equal(t, "password must be at least 3 characters long", rec.Body.String())
		assert.Equal(t, "form .errors", rec.Header().Get(response.HeaderHXRetarget))
		assert.Nil(t, sessionCookie(rec))
		assert.Zero(t, f.users.callCount())
		assert.Zero(t, f.sessions.count())
	})

	t.Run("mismatched passwords fail before any storage call", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		rec := f.postForm(t, "/signup", url.Values{
			"username":  {"alice"},
			"password1": {"sekret"},
			"password2": {"other"},
		}, "")

		assert.Equal(t, "passwords don't match", rec.Body.String())
		assert.Zero(t, f.users.callCount())
	})

	t.Run("duplicate username issues no session cookie", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		_, err := f.gate.CreateUser(context.Background(), "alice", "sekret")
		require.NoError(t, err)
		sessionsBefore := f.sessions.count()

		rec := f.postForm(t, "/signup", url.Values{
			"username":  {"alice"},
			"password1": {"sekret"},
			"password2": {"sekret"},
		}, "")

		assert.Equal(t, "username already taken", rec.Body.String())
		assert.Nil(t, sessionCookie(rec))
		assert.Equal(t, sessionsBefore, f.sessions.count())
	})

	t.Run("empty username is rejected", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		rec := f.postForm(t, "/signup", url.Values{
			"username":  {""},
			"password1": {"sekret"},
			"password2": {"sekret"},
		}, "")

		assert.Equal(t, "username is required", rec.Body.String())
		assert.Nil(t, sessionCookie(rec))
	})
}

func TestUnknownRoutes(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	t.Run("unregistered path answers 400", func(t *testing.T) {
		t.Parallel()

		rec := f.get(t, "/nope", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad request\n", rec.Body.String())
	})

	t.Run("unregistered method answers 400", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodDelete, "/post", nil)
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
