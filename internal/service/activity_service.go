package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/bcard-portal/internal/events"
	"github.com/spec-kit/bcard-portal/internal/observability"
)

// ActivityService subscribes to client events and turns them into structured
// log lines and counters.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewActivityService constructs the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *ActivityService {
	return &ActivityService{dispatcher: dispatcher, logger: logger, metrics: metrics}
}

// RegisterHandlers wires the subscriptions.
func (s *ActivityService) RegisterHandlers() {
	for _, eventType := range []events.EventType{
		events.EventSignedIn,
		events.EventSignedOut,
		events.EventLikeToggled,
		events.EventCardCreated,
		events.EventCardDeleted,
	} {
		s.dispatcher.Subscribe(eventType, s.record)
	}
}

func (s *ActivityService) record(_ context.Context, event events.Event) error {
	s.metrics.RecordEvent(string(event.Type))
	s.logger.Info("client activity",
		zap.String("event", string(event.Type)),
		zap.String("card_id", event.CardID),
		zap.String("user_id", event.UserID),
	)
	return nil
}
