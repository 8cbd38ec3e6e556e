package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bcard-portal/internal/session"
	"github.com/spec-kit/bcard-portal/internal/web/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Cards   *handlers.CardsHandler
	Likes   *handlers.LikesHandler
	Auth    *handlers.AuthHandler
	Prefs   *handlers.PrefsHandler
	Session *session.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	pages := app.Group("", cfg.Session.Handle)

	pages.Get("/", cfg.Cards.Home)
	pages.Get("/about", cfg.Cards.About)
	pages.Get("/business/:id", cfg.Cards.Business)

	pages.Get("/favorites", cfg.Likes.Favorites)
	pages.Post("/cards/:id/like", cfg.Likes.Toggle)

	pages.Get("/create-card", cfg.Cards.CreatePage)
	pages.Post("/create-card", cfg.Cards.Create)
	pages.Post("/cards/:id/delete", cfg.Cards.Delete)

	pages.Get("/signin", cfg.Auth.SignInPage)
	pages.Post("/signin", cfg.Auth.SignIn)
	pages.Get("/register", cfg.Auth.RegisterPage)
	pages.Post("/register", cfg.Auth.Register)
	pages.Post("/logout", cfg.Auth.SignOut)

	pages.Post("/prefs/darkmode", cfg.Prefs.ToggleDarkMode)
}
