package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/bcard-portal/internal/service"
	"github.com/spec-kit/bcard-portal/internal/session"
	"github.com/spec-kit/bcard-portal/internal/web/view"
	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

// LikesHandler serves the like toggle and the favorites view.
type LikesHandler struct {
	likes  *service.LikeService
	logger *zap.Logger
}

// NewLikesHandler constructs handler.
func NewLikesHandler(likes *service.LikeService, logger *zap.Logger) *LikesHandler {
	return &LikesHandler{likes: likes, logger: logger}
}

// Toggle POST /cards/:id/like. Returns the refreshed like button fragment;
// the swap replaces only the button that fired the request, so a response
// landing after navigation has nothing stale to mutate.
func (h *LikesHandler) Toggle(c *fiber.Ctx) error {
	sess := session.FromContext(c)
	manager, ok := session.ManagerFromContext(c)
	if !ok {
		return apperrors.NewInternal(errors.New("client state missing from request"))
	}

	result, err := h.likes.Toggle(c.UserContext(), manager, sess, c.Params("id"))
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeUnauthenticated) {
			return render(c, http.StatusUnauthorized, view.SignInNotice())
		}
		return err
	}

	return render(c, http.StatusOK, view.LikeButton(result.Card.ID, result.Liked))
}

// Favorites GET /favorites. An anonymous visitor gets an explicit sign-in
// prompt, never an empty list.
func (h *LikesHandler) Favorites(c *fiber.Ctx) error {
	sess := session.FromContext(c)

	cards, err := h.likes.Favorites(c.UserContext(), sess)
	if err != nil {
		if errors.Is(err, service.ErrNotLoggedIn) {
			return render(c, http.StatusUnauthorized,
				view.SignInRequiredPage(buildPage(c, "Favorites"), "favorite cards"))
		}
		return err
	}

	return render(c, http.StatusOK, view.FavoritesPage(buildPage(c, "Favorites"), cards))
}
