package web

import (
	"html/template"

	"github.com/dmitrymomot/scrawl/internal/repository"
)

// adminData feeds the admin template: the caller's posts newest-first and
// the CSRF token embedded in the post form.
type adminData struct {
	Username string
	CSRF     string
	Posts    []repository.Post
}

// templates holds every page and fragment. The "post" fragment is shared by
// the admin page and the create-post response, so a freshly created post
// renders identically to one loaded from storage.
var templates = template.Must(template.New("scrawl").Parse(`
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>scrawl</title>
  <script src="https://unpkg.com/htmx.org@1.9.12"></script>
</head>
<body>{{end}}

{{define "foot"}}</body>
</html>{{end}}

{{define "login"}}{{template "head"}}
<main>
  <h1>Log in</h1>
  <form hx-post="/login">
    <div class="errors"></div>
    <label>Username <input type="text" name="username" required></label>
    <label>Password <input type="password" name="password" required></label>
    <button type="submit">Log in</button>
  </form>
  <p>No account? <a href="/signup">Sign up</a></p>
</main>
{{template "foot"}}{{end}}

{{define "signup"}}{{template "head"}}
<main>
  <h1>Sign up</h1>
  <form hx-post="/signup">
    <div class="errors"></div>
    <label>Username <input type="text" name="username" required></label>
    <label>Password <input type="password" name="password1" required></label>
    <label>Repeat password <input type="password" name="password2" required></label>
    <button type="submit">Sign up</button>
  </form>
  <p>Have an account? <a href="/">Log in</a></p>
</main>
{{template "foot"}}{{end}}

{{define "admin"}}{{template "head"}}
<main>
  <header>
    <h1>{{.Username}}</h1>
    <a href="/logout">Log out</a>
  </header>
  <form hx-post="/post" hx-target="#posts" hx-swap="afterbegin">
    <div class="errors"></div>
    <input type="hidden" name="csrf" value="{{.CSRF}}">
    <label>Title <input type="text" name="title" required></label>
    <label>Content <textarea name="content" required></textarea></label>
    <button type="submit">Post</button>
  </form>
  <div id="posts">
    {{range .Posts}}{{template "post" .}}{{end}}
  </div>
</main>
{{template "foot"}}{{end}}

{{define "post"}}<div class="post">
    <h3>{{.Title}}</h3>
    {{.Content}}
  </div>{{end}}
`))
