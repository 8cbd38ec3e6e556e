package session

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/bcard-portal/internal/persistence"
)

const (
	managerKey  = "client_state"
	sessionKey  = "client_session"
	darkModeKey = "dark_mode"
)

// Middleware assigns each browser a session cookie, namespaces the shared
// client-state store under it and derives the auth session for every
// request.
type Middleware struct {
	store      persistence.Store
	cookieName string
	ttlDays    int
	logger     *zap.Logger
}

// NewMiddleware constructs the middleware.
func NewMiddleware(store persistence.Store, cookieName string, ttlDays int, logger *zap.Logger) *Middleware {
	if cookieName == "" {
		cookieName = "bcard_session"
	}
	if ttlDays <= 0 {
		ttlDays = 180
	}
	return &Middleware{store: store, cookieName: cookieName, ttlDays: ttlDays, logger: logger}
}

// Handle derives the session for the request. A token that fails to decode
// downgrades to an anonymous identity and is logged, never fatal: decode
// failures must not block read-only browsing.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	sid := c.Cookies(m.cookieName)
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     m.cookieName,
			Value:    sid,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			MaxAge:   m.ttlDays * 24 * 60 * 60,
		})
	}

	manager := NewManager(persistence.Namespace(m.store, "sess:"+sid+":"))

	sess, err := manager.Load(c.UserContext())
	if err != nil {
		m.logger.Warn("session derivation degraded",
			zap.String("session_id", sid),
			zap.Error(err),
		)
	}

	dark, err := manager.DarkMode(c.UserContext())
	if err != nil {
		m.logger.Warn("reading display preference failed", zap.Error(err))
	}

	c.Locals(managerKey, manager)
	c.Locals(sessionKey, sess)
	c.Locals(darkModeKey, dark)
	return c.Next()
}

// FromContext retrieves the derived session for the request.
func FromContext(c *fiber.Ctx) Session {
	if sess, ok := c.Locals(sessionKey).(Session); ok {
		return sess
	}
	return Anonymous
}

// ManagerFromContext retrieves the request's client-state manager.
func ManagerFromContext(c *fiber.Ctx) (*Manager, bool) {
	manager, ok := c.Locals(managerKey).(*Manager)
	return manager, ok
}

// DarkModeFromContext retrieves the display preference.
func DarkModeFromContext(c *fiber.Ctx) bool {
	dark, _ := c.Locals(darkModeKey).(bool)
	return dark
}
