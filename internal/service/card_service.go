package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/spec-kit/bcard-portal/internal/bcard"
	"github.com/spec-kit/bcard-portal/internal/domain"
	"github.com/spec-kit/bcard-portal/internal/events"
	"github.com/spec-kit/bcard-portal/internal/session"
)

// CardService fetches cards from the directory and applies the client-side
// search filter.
type CardService struct {
	api        *bcard.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewCardService constructs the service.
func NewCardService(api *bcard.Client, dispatcher events.Dispatcher, logger *zap.Logger) *CardService {
	return &CardService{api: api, dispatcher: dispatcher, logger: logger}
}

// List fetches the full collection and filters it by the free-text query.
func (s *CardService) List(ctx context.Context, query string) ([]domain.Card, error) {
	cards, err := s.api.ListCards(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(cards, query), nil
}

// Get fetches a single card by id.
func (s *CardService) Get(ctx context.Context, id string) (*domain.Card, error) {
	return s.api.GetCard(ctx, id)
}

// Create validates the input and registers the card with the directory.
func (s *CardService) Create(ctx context.Context, sess session.Session, input bcard.CardInput) (*domain.Card, error) {
	if err := bcard.Validate(input); err != nil {
		return nil, err
	}
	card, err := s.api.CreateCard(ctx, sess.Token, input)
	if err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCardCreated,
		CardID:    card.ID,
		UserID:    sess.UserID,
		Timestamp: time.Now(),
		Payload:   events.CardCreatedPayload{Title: card.Title},
	})
	return card, nil
}

// Delete removes a card from the directory.
func (s *CardService) Delete(ctx context.Context, sess session.Session, id string) error {
	if err := s.api.DeleteCard(ctx, sess.Token, id); err != nil {
		return err
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCardDeleted,
		CardID:    id,
		UserID:    sess.UserID,
		Timestamp: time.Now(),
	})
	return nil
}

// Filter applies a case-insensitive substring match over title, phone and
// the country/city/street address fields. It is pure and deterministic: an
// empty query is the identity filter, and filtering twice with the same
// query yields the same result as filtering once.
func Filter(cards []domain.Card, query string) []domain.Card {
	if query == "" {
		return cards
	}

	fold := cases.Fold()
	needle := fold.String(query)

	matched := make([]domain.Card, 0, len(cards))
	for _, card := range cards {
		haystacks := []string{
			card.Title,
			card.Phone,
			card.Address.Country,
			card.Address.City,
			card.Address.Street,
		}
		for _, field := range haystacks {
			if field != "" && strings.Contains(fold.String(field), needle) {
				matched = append(matched, card)
				break
			}
		}
	}
	return matched
}
