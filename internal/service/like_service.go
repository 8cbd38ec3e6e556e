package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/bcard-portal/internal/bcard"
	"github.com/spec-kit/bcard-portal/internal/domain"
	"github.com/spec-kit/bcard-portal/internal/events"
	"github.com/spec-kit/bcard-portal/internal/session"
	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

// ErrNotLoggedIn distinguishes "must sign in" from an empty favorites list.
var ErrNotLoggedIn = errors.New("sign in required")

// ToggleResult reports the outcome of a like toggle.
type ToggleResult struct {
	// Liked is the post-toggle membership according to the server.
	Liked bool
	// Card is the updated card snapshot returned by the server.
	Card domain.Card
}

// LikeService toggles likes against the directory and reconciles the local
// liked-set cache with the server's authoritative like lists.
type LikeService struct {
	api        *bcard.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewLikeService constructs the service.
func NewLikeService(api *bcard.Client, dispatcher events.Dispatcher, logger *zap.Logger) *LikeService {
	return &LikeService{api: api, dispatcher: dispatcher, logger: logger}
}

// Toggle flips the like relationship between the session's user and the
// card. Local state is never mutated before the server responds: the remote
// like list is authoritative, and an optimistic guess could clobber a
// concurrent toggle from another tab or device.
func (s *LikeService) Toggle(ctx context.Context, state *session.Manager, sess session.Session, cardID string) (*ToggleResult, error) {
	if !sess.IsLoggedIn || sess.Token == "" {
		// No network call without a usable token.
		return nil, apperrors.NewUnauthenticated("sign in to like cards")
	}

	card, err := s.api.ToggleLike(ctx, sess.Token, cardID)
	if err != nil {
		return nil, err
	}

	liked := card.LikedBy(sess.UserID)

	set, err := state.LikedCards(ctx)
	if err != nil {
		return nil, err
	}
	if liked {
		set.Add(card.ID)
	} else {
		set.Remove(card.ID)
	}
	if err := state.SaveLikedCards(ctx, set); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventLikeToggled,
		CardID:    card.ID,
		UserID:    sess.UserID,
		Timestamp: time.Now(),
		Payload:   events.LikeToggledPayload{Liked: liked},
	})

	return &ToggleResult{Liked: liked, Card: *card}, nil
}

// Favorites derives the user's favorites as a pure view of the full card
// collection. An anonymous session gets ErrNotLoggedIn, never an empty list.
func (s *LikeService) Favorites(ctx context.Context, sess session.Session) ([]domain.Card, error) {
	if !sess.IsLoggedIn {
		return nil, ErrNotLoggedIn
	}

	cards, err := s.api.ListCards(ctx)
	if err != nil {
		return nil, err
	}
	return FilterLiked(cards, sess), nil
}

// FilterLiked returns the cards the session's user has liked.
func FilterLiked(cards []domain.Card, sess session.Session) []domain.Card {
	liked := make([]domain.Card, 0)
	for _, card := range cards {
		if card.LikedBy(sess.UserID) {
			liked = append(liked, card)
		}
	}
	return liked
}

// LikedSetOf computes the liked-set view of a card collection without
// touching stored state.
func LikedSetOf(cards []domain.Card, sess session.Session) session.LikedSet {
	set := session.LikedSet{}
	if !sess.IsLoggedIn || sess.UserID == "" {
		return set
	}
	for _, card := range cards {
		if card.LikedBy(sess.UserID) {
			set.Add(card.ID)
		}
	}
	return set
}

// ReconcileLikedSet recomputes the liked-set from a freshly fetched card
// collection and persists it as an advisory cache. Called on page mounts so
// likes made from other devices show up. Callers must pass the FULL
// collection; persisting from a filtered subset would drop liked cards
// outside the filter.
func (s *LikeService) ReconcileLikedSet(ctx context.Context, state *session.Manager, sess session.Session, cards []domain.Card) (session.LikedSet, error) {
	set := LikedSetOf(cards, sess)
	if !sess.IsLoggedIn || sess.UserID == "" {
		return set, nil
	}
	if err := state.SaveLikedCards(ctx, set); err != nil {
		s.logger.Warn("persisting liked-set cache failed", zap.Error(err))
	}
	return set, nil
}
