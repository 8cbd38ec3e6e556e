package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bcard-portal/internal/session"
	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

// PrefsHandler persists display preferences.
type PrefsHandler struct{}

// NewPrefsHandler constructs handler.
func NewPrefsHandler() *PrefsHandler {
	return &PrefsHandler{}
}

// ToggleDarkMode POST /prefs/darkmode. Flips the preference and returns to
// the page the visitor came from.
func (h *PrefsHandler) ToggleDarkMode(c *fiber.Ctx) error {
	manager, ok := session.ManagerFromContext(c)
	if !ok {
		return apperrors.NewInternal(errors.New("client state missing from request"))
	}

	dark := session.DarkModeFromContext(c)
	if err := manager.SetDarkMode(c.UserContext(), !dark); err != nil {
		return err
	}

	target := c.Get(fiber.HeaderReferer)
	if target == "" {
		target = "/"
	}
	return c.Redirect(target, http.StatusSeeOther)
}
