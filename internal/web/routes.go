package web

import "github.com/dmitrymomot/scrawl/internal/router"

// Routes registers the full HTTP surface. Dispatch is first-match-wins in
// registration order; anything not listed here answers 400.
func (a *App) Routes(r router.Router[*Context]) {
	r.Get("/", a.Home)
	r.Get("/logout", a.Logout)
	r.Get("/admin", a.Admin)
	r.Post("/post", a.CreatePost)
	r.Post("/login", a.Login)
	r.Get("/signup", a.SignupPage)
	r.Post("/signup", a.Signup)
}
