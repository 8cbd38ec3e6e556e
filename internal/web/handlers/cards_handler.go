package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/bcard-portal/internal/bcard"
	"github.com/spec-kit/bcard-portal/internal/service"
	"github.com/spec-kit/bcard-portal/internal/session"
	"github.com/spec-kit/bcard-portal/internal/web/view"
	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

// CardsHandler serves the card browsing and management pages.
type CardsHandler struct {
	cards  *service.CardService
	likes  *service.LikeService
	logger *zap.Logger
}

// NewCardsHandler constructs handler.
func NewCardsHandler(cards *service.CardService, likes *service.LikeService, logger *zap.Logger) *CardsHandler {
	return &CardsHandler{cards: cards, likes: likes, logger: logger}
}

// Home GET /. Lists all cards, filtered by the ?q= query, and reconciles the
// liked-set cache against the fresh collection.
func (h *CardsHandler) Home(c *fiber.Ctx) error {
	sess := session.FromContext(c)
	query := c.Query("q")

	cards, err := h.cards.List(c.UserContext(), query)
	if err != nil {
		return err
	}

	liked := service.LikedSetOf(cards, sess)
	if sess.IsLoggedIn && query == "" {
		// Only an unfiltered listing reflects the full collection, so only
		// then is the cache rewritten.
		if manager, ok := session.ManagerFromContext(c); ok {
			liked, err = h.likes.ReconcileLikedSet(c.UserContext(), manager, sess, cards)
			if err != nil {
				return err
			}
		}
	}

	return render(c, http.StatusOK, view.HomePage(buildPage(c, "Home"), cards, liked))
}

// Business GET /business/:id. Shows one card in full.
func (h *CardsHandler) Business(c *fiber.Ctx) error {
	sess := session.FromContext(c)

	card, err := h.cards.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			return render(c, http.StatusNotFound, view.CardUnavailablePage(buildPage(c, "Card not found")))
		}
		return err
	}

	liked := card.LikedBy(sess.UserID)
	return render(c, http.StatusOK, view.BusinessPage(buildPage(c, card.Title), *card, liked))
}

// canPublish reports whether the session may create cards: admins, accounts
// whose token carries the business claim, and accounts whose cached profile
// is marked as a business.
func (h *CardsHandler) canPublish(c *fiber.Ctx, sess session.Session) bool {
	if sess.IsAdmin || sess.IsBusiness {
		return true
	}
	if manager, ok := session.ManagerFromContext(c); ok {
		if user, err := manager.User(c.UserContext()); err == nil && user != nil {
			return user.IsBusiness
		}
	}
	return false
}

// CreatePage GET /create-card.
func (h *CardsHandler) CreatePage(c *fiber.Ctx) error {
	sess := session.FromContext(c)
	if !sess.IsLoggedIn {
		return render(c, http.StatusUnauthorized,
			view.SignInRequiredPage(buildPage(c, "Create Card"), "the card editor"))
	}
	if !h.canPublish(c, sess) {
		return render(c, http.StatusForbidden, view.BusinessRequiredPage(buildPage(c, "Create Card")))
	}
	return h.renderCreatePage(c, http.StatusOK, bcard.CardInput{}, nil)
}

// Create POST /create-card.
func (h *CardsHandler) Create(c *fiber.Ctx) error {
	sess := session.FromContext(c)
	if !sess.IsLoggedIn {
		return render(c, http.StatusUnauthorized,
			view.SignInRequiredPage(buildPage(c, "Create Card"), "the card editor"))
	}
	if !h.canPublish(c, sess) {
		return render(c, http.StatusForbidden, view.BusinessRequiredPage(buildPage(c, "Create Card")))
	}

	var input bcard.CardInput
	if err := c.BodyParser(&input); err != nil {
		return apperrors.NewValidationFailed("invalid form payload", nil)
	}

	card, err := h.cards.Create(c.UserContext(), sess, input)
	if err != nil {
		switch {
		case apperrors.HasCode(err, apperrors.CodeValidationFailed):
			return h.renderCreatePage(c, http.StatusBadRequest, input, formErrors(err))
		case apperrors.HasCode(err, apperrors.CodeUnauthenticated):
			return h.renderCreatePage(c, http.StatusUnauthorized, input,
				view.FormErrors{"": "Your session expired. Please sign in again."})
		default:
			return err
		}
	}

	h.logger.Info("card created", zap.String("card_id", card.ID))
	return c.Redirect("/business/"+card.ID, http.StatusSeeOther)
}

// Delete POST /cards/:id/delete. Restricted to admins; owners manage their
// cards through the directory's own business tools.
func (h *CardsHandler) Delete(c *fiber.Ctx) error {
	sess := session.FromContext(c)
	if !sess.IsLoggedIn {
		return apperrors.NewUnauthenticated("sign in required")
	}
	if !sess.IsAdmin {
		return apperrors.NewUnauthenticated("admin access required")
	}

	if err := h.cards.Delete(c.UserContext(), sess, c.Params("id")); err != nil {
		return err
	}
	return c.Redirect("/create-card", http.StatusSeeOther)
}

// About GET /about.
func (h *CardsHandler) About(c *fiber.Ctx) error {
	return render(c, http.StatusOK, view.AboutPage(buildPage(c, "About")))
}

func (h *CardsHandler) renderCreatePage(c *fiber.Ctx, status int, input bcard.CardInput, errs view.FormErrors) error {
	page := buildPage(c, "Create Card")

	// Admins get the full collection with delete controls below the form.
	cards, err := h.cards.List(c.UserContext(), "")
	if err != nil {
		// The form is still usable without the list.
		h.logger.Warn("listing cards for editor failed", zap.Error(err))
		cards = nil
	}
	return render(c, status, view.CreateCardPage(page, input, errs, cards))
}
