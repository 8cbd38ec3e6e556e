package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/bcard-portal/internal/bcard"
	"github.com/spec-kit/bcard-portal/internal/domain"
	"github.com/spec-kit/bcard-portal/internal/events"
	"github.com/spec-kit/bcard-portal/internal/session"
)

// AuthService handles registration and the login/logout lifecycle of the
// client-held token.
type AuthService struct {
	api        *bcard.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(api *bcard.Client, dispatcher events.Dispatcher, logger *zap.Logger) *AuthService {
	return &AuthService{api: api, dispatcher: dispatcher, logger: logger}
}

// SignIn validates credentials, exchanges them for a token and persists the
// token plus derived flags. If stale state is found (a token without the
// logged-in flag, left behind by a partial login) it is purged first. A
// session that is already fully logged in is returned as-is without a
// network call.
func (s *AuthService) SignIn(ctx context.Context, state *session.Manager, creds bcard.Credentials) (session.Session, error) {
	if err := bcard.Validate(creds); err != nil {
		return session.Anonymous, err
	}

	// Read the raw flag before Load refreshes it: a stored token whose
	// logged-in flag never made it to the store is a partial login and must
	// not short-circuit the fresh one.
	flag, err := state.IsLoggedInFlag(ctx)
	if err != nil {
		return session.Anonymous, err
	}

	current, deriveErr := state.Load(ctx)
	if deriveErr != nil {
		s.logger.Warn("stored token failed to decode", zap.Error(deriveErr))
	}
	if current.IsLoggedIn {
		if flag == "true" {
			return current, nil
		}
		if err := state.Clear(ctx); err != nil {
			return session.Anonymous, err
		}
	}

	result, err := s.api.Login(ctx, creds)
	if err != nil {
		return session.Anonymous, err
	}

	if err := state.SaveLogin(ctx, result.Token, result.User); err != nil {
		return session.Anonymous, err
	}

	sess, deriveErr := session.Derive(result.Token)
	if deriveErr != nil {
		// Token still works for bearer auth even if its payload is opaque.
		s.logger.Warn("fresh token payload failed to decode", zap.Error(deriveErr))
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSignedIn,
		UserID:    sess.UserID,
		Timestamp: time.Now(),
	})
	return sess, nil
}

// Register validates and creates a directory account. The caller still has
// to sign in afterwards; registration does not issue a token.
func (s *AuthService) Register(ctx context.Context, input bcard.RegisterInput) (*domain.User, error) {
	if err := bcard.Validate(input); err != nil {
		return nil, err
	}
	return s.api.Register(ctx, input)
}

// SignOut clears the client state. The display preference survives.
func (s *AuthService) SignOut(ctx context.Context, state *session.Manager, sess session.Session) error {
	if err := state.Clear(ctx); err != nil {
		return err
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSignedOut,
		UserID:    sess.UserID,
		Timestamp: time.Now(),
	})
	return nil
}
