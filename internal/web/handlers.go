package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/scrawl/internal/auth"
	"github.com/dmitrymomot/scrawl/internal/cookie"
	"github.com/dmitrymomot/scrawl/internal/handler"
	"github.com/dmitrymomot/scrawl/internal/logger"
	"github.com/dmitrymomot/scrawl/internal/repository"
	"github.com/dmitrymomot/scrawl/internal/response"
	"github.com/dmitrymomot/scrawl/internal/session"
)

// PostStore is the post persistence contract the handlers need.
type PostStore interface {
	Create(ctx context.Context, userID int64, title, content string) (*repository.Post, error)
	ListByUser(ctx context.Context, userID int64) ([]repository.Post, error)
}

// App wires the authentication subsystem and storage into route handlers.
type App struct {
	auth     *auth.Authenticator
	gate     *auth.CredentialGate
	sessions *session.Manager
	cookies  *cookie.Manager
	posts    PostStore
	log      *slog.Logger
}

// NewApp creates the handler set.
func NewApp(
	authenticator *auth.Authenticator,
	gate *auth.CredentialGate,
	sessions *session.Manager,
	cookies *cookie.Manager,
	posts PostStore,
	log *slog.Logger,
) *App {
	if log == nil {
		log = slog.Default()
	}
	return &App{
		auth:     authenticator,
		gate:     gate,
		sessions: sessions,
		cookies:  cookies,
		posts:    posts,
		log:      log.With(logger.Component("web")),
	}
}

// errorFragment renders a form-failure message. The two HTMX headers steer
// the client to swap the body into the form's error region instead of
// navigating, so the page stays put on validation and credential failures.
func errorFragment(msg string) handler.Response {
	return response.WithHTMX(response.String(msg),
		response.Retarget("form .errors"),
		response.Reswap("innerHTML"),
	)
}

// failure defers a storage-layer error to the router's error handler, which
// logs it and answers with a generic 500. Internal detail never reaches the
// client.
func failure(err error) handler.Response {
	return func(http.ResponseWriter, *http.Request) error {
		return err
	}
}

// Home redirects callers with a live session to /admin and shows the login
// form to everyone else.
func (a *App) Home(ctx *Context) handler.Response {
	res, err := a.auth.Authenticate(ctx, ctx.Request().Header.Get("Cookie"))
	if err != nil {
		return failure(err)
	}
	if res.Authenticated() {
		return response.Redirect("/admin")
	}
	return response.TemplateName(templates, "login", nil)
}

// Logout clears the client's cookie and sends it home. The server-side
// session row is left alone on purpose: it ages out at its expiry.
func (a *App) Logout(ctx *Context) handler.Response {
	return response.WithCookie(response.Redirect("/"), a.cookies.Expiry())
}

// Admin renders the caller's posts and the CSRF token for the post form.
// The no-cache directives keep the page from being served after logout via
// the browser cache.
func (a *App) Admin(ctx *Context) handler.Response {
	raw := ctx.Request().Header.Get("Cookie")
	if raw == "" {
		return response.Redirect("/")
	}

	res, err := a.auth.Authenticate(ctx, raw)
	if err != nil {
		return failure(err)
	}
	if !res.Authenticated() {
		return response.WithCookie(response.Redirect("/"), a.cookies.Expiry())
	}

	posts, err := a.posts.ListByUser(ctx, res.User.ID)
	if err != nil {
		return failure(err)
	}

	return response.WithNoCache(response.TemplateName(templates, "admin", adminData{
		Username: res.User.Username,
		CSRF:     res.Session.CSRFToken,
		Posts:    posts,
	}))
}

type postForm struct {
	CSRF    string `form:"csrf"`
	Title   string `form:"title"`
	Content string `form:"content"`
}

// CreatePost stores a post for the authenticated caller and returns the
// rendered fragment. The submitted csrf field must equal the session's
// token; a mismatch is answered with a generic message whether or not the
// session itself is valid.
func (a *App) CreatePost(ctx *Context) handler.Response {
	res, err := a.auth.Authenticate(ctx, ctx.Request().Header.Get("Cookie"))
	if err != nil {
		return failure(err)
	}
	if !res.Authenticated() {
		return response.WithCookie(response.Redirect("/"), a.cookies.Expiry())
	}

	var form postForm
	if err := ctx.Bind(&form); err != nil {
		return errorFragment("invalid request")
	}

	if !res.Session.VerifyCSRF(form.CSRF) {
		return errorFragment("invalid request")
	}

	post, err := a.posts.Create(ctx, res.User.ID, form.Title, form.Content)
	if err != nil {
		return failure(err)
	}

	return response.TemplateName(templates, "post", post)
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Login verifies credentials and establishes a session. Every failure mode
// answers with the same fragment so the response never reveals whether the
// username exists.
func (a *App) Login(ctx *Context) handler.Response {
	var form loginForm
	if err := ctx.Bind(&form); err != nil {
		return errorFragment("authentication failed")
	}

	userID, err := a.gate.VerifyCredentials(ctx, form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			a.log.ErrorContext(ctx, "credential verification failed", logger.Error(err))
		}
		return errorFragment("authentication failed")
	}

	return a.establishSession(ctx, userID)
}

// SignupPage renders the signup form.
func (a *App) SignupPage(ctx *Context) handler.Response {
	return response.TemplateName(templates, "signup", nil)
}

type signupForm struct {
	Username  string `form:"username"`
	Password1 string `form:"password1"`
	Password2 string `form:"password2"`
}

// Signup validates the form, creates the account, and establishes a
// session. Validation runs before any storage call.
func (a *App) Signup(ctx *Context) handler.Response {
	var form signupForm
	if err := ctx.Bind(&form); err != nil {
		return errorFragment("authentication failed")
	}

	if len(form.Password1) < 3 {
		return errorFragment("password must be at least 3 characters long")
	}
	if form.Password1 != form.Password2 {
		return errorFragment("passwords don't match")
	}

	user, err := a.gate.CreateUser(ctx, form.Username, form.Password1)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			return errorFragment("username already taken")
		case errors.Is(err, auth.ErrEmptyUsername):
			return errorFragment("username is required")
		default:
			a.log.ErrorContext(ctx, "user creation failed", logger.Error(err))
			return errorFragment("authentication failed")
		}
	}

	return a.establishSession(ctx, user.ID)
}

// establishSession creates a session for the user, sets the cookie, and
// redirects to /admin.
func (a *App) establishSession(ctx *Context, userID int64) handler.Response {
	sess, err := a.sessions.Create(ctx, userID)
	if err != nil {
		a.log.ErrorContext(ctx, "session creation failed", logger.Error(err))
		return errorFragment("authentication failed")
	}

	return response.WithCookie(response.Redirect("/admin"), a.cookies.Session(sess.Token))
}
