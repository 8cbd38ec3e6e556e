package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/bcard-portal/internal/bcard"
	"github.com/spec-kit/bcard-portal/internal/service"
	"github.com/spec-kit/bcard-portal/internal/session"
	"github.com/spec-kit/bcard-portal/internal/web/view"
	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

// AuthHandler serves sign-in, registration and sign-out.
type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

// NewAuthHandler constructs handler.
func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// SignInPage GET /signin.
func (h *AuthHandler) SignInPage(c *fiber.Ctx) error {
	if session.FromContext(c).IsLoggedIn {
		return c.Redirect("/", http.StatusSeeOther)
	}
	return render(c, http.StatusOK, view.SignInPage(buildPage(c, "Sign In"), "", nil))
}

// SignIn POST /signin.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	manager, ok := session.ManagerFromContext(c)
	if !ok {
		return apperrors.NewInternal(errors.New("client state missing from request"))
	}

	var creds bcard.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return apperrors.NewValidationFailed("invalid form payload", nil)
	}

	sess, err := h.auth.SignIn(c.UserContext(), manager, creds)
	if err != nil {
		page := buildPage(c, "Sign In")
		switch {
		case apperrors.HasCode(err, apperrors.CodeValidationFailed):
			return render(c, http.StatusBadRequest, view.SignInPage(page, creds.Email, formErrors(err)))
		case apperrors.HasCode(err, apperrors.CodeUnauthenticated):
			return render(c, http.StatusUnauthorized, view.SignInPage(page, creds.Email,
				view.FormErrors{"": "Wrong email or password."}))
		case apperrors.HasCode(err, apperrors.CodeNotFound):
			return render(c, http.StatusNotFound, view.SignInPage(page, creds.Email,
				view.FormErrors{"": "No such account. Register first."}))
		default:
			return err
		}
	}

	h.logger.Info("signed in", zap.String("user_id", sess.UserID))
	return c.Redirect("/", http.StatusSeeOther)
}

// RegisterPage GET /register.
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	if session.FromContext(c).IsLoggedIn {
		return c.Redirect("/", http.StatusSeeOther)
	}
	return render(c, http.StatusOK, view.RegisterPage(buildPage(c, "Register"), bcard.RegisterInput{}, nil))
}

// Register POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input bcard.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return apperrors.NewValidationFailed("invalid form payload", nil)
	}

	user, err := h.auth.Register(c.UserContext(), input)
	if err != nil {
		page := buildPage(c, "Register")
		switch {
		case apperrors.HasCode(err, apperrors.CodeValidationFailed):
			return render(c, http.StatusBadRequest, view.RegisterPage(page, input, formErrors(err)))
		case apperrors.HasCode(err, apperrors.CodeConflict):
			return render(c, http.StatusConflict, view.RegisterPage(page, input,
				view.FormErrors{"email": "An account with this email already exists."}))
		default:
			return err
		}
	}

	h.logger.Info("account registered", zap.String("email", user.Email))
	return c.Redirect("/signin", http.StatusSeeOther)
}

// SignOut POST /logout.
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	manager, ok := session.ManagerFromContext(c)
	if !ok {
		return apperrors.NewInternal(errors.New("client state missing from request"))
	}
	if err := h.auth.SignOut(c.UserContext(), manager, session.FromContext(c)); err != nil {
		return err
	}
	return c.Redirect("/", http.StatusSeeOther)
}
