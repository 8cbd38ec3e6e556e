package session

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"

	"github.com/spec-kit/bcard-portal/internal/domain"
	"github.com/spec-kit/bcard-portal/internal/persistence"
)

// Client state keys. All are advisory caches rederivable from the token and
// server responses, except the display preference.
const (
	KeyToken      = "token"
	KeyIsLoggedIn = "isLoggedIn"
	KeyIsAdmin    = "isAdmin"
	KeyUser       = "user"
	KeyLikedCards = "likedCards"
	KeyDarkMode   = "darkMode"
)

// LikedSet is the set of card ids the current user has liked. It mirrors the
// server's like lists and is never treated as authoritative.
type LikedSet map[string]struct{}

// Contains reports membership.
func (s LikedSet) Contains(cardID string) bool {
	_, ok := s[cardID]
	return ok
}

// Add inserts a card id.
func (s LikedSet) Add(cardID string) {
	s[cardID] = struct{}{}
}

// Remove deletes a card id.
func (s LikedSet) Remove(cardID string) {
	delete(s, cardID)
}

// IDs returns the members sorted, for deterministic persistence.
func (s LikedSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Manager reads and writes one browser's client state through a Store.
type Manager struct {
	store persistence.Store
}

// NewManager wraps a (typically namespaced) store.
func NewManager(store persistence.Store) *Manager {
	return &Manager{store: store}
}

// Load derives the current session from the stored token and refreshes the
// cached flags. A decode diagnostic is returned alongside a still-usable
// session so callers can log it without blocking browsing.
func (m *Manager) Load(ctx context.Context) (Session, error) {
	token, err := m.get(ctx, KeyToken)
	if err != nil {
		return Anonymous, err
	}

	sess, deriveErr := Derive(token)

	if err := m.store.Set(ctx, KeyIsLoggedIn, strconv.FormatBool(sess.IsLoggedIn)); err != nil {
		return sess, err
	}
	if err := m.store.Set(ctx, KeyIsAdmin, strconv.FormatBool(sess.IsAdmin)); err != nil {
		return sess, err
	}

	return sess, deriveErr
}

// SaveLogin stores a fresh token and the optional user object returned by
// the directory, then re-derives the flags.
func (m *Manager) SaveLogin(ctx context.Context, token string, user *domain.User) error {
	if err := m.store.Set(ctx, KeyToken, token); err != nil {
		return err
	}
	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		if err := m.store.Set(ctx, KeyUser, string(data)); err != nil {
			return err
		}
		if err := m.store.Set(ctx, KeyIsAdmin, strconv.FormatBool(user.IsAdmin)); err != nil {
			return err
		}
	}
	return m.store.Set(ctx, KeyIsLoggedIn, "true")
}

// Clear removes everything a logout should discard. The display preference
// survives.
func (m *Manager) Clear(ctx context.Context) error {
	for _, key := range []string{KeyToken, KeyUser, KeyIsLoggedIn, KeyIsAdmin, KeyLikedCards} {
		if err := m.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// User returns the cached account object, or nil when none is stored.
func (m *Manager) User(ctx context.Context) (*domain.User, error) {
	raw, err := m.get(ctx, KeyUser)
	if err != nil || raw == "" {
		return nil, err
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		// A corrupt cache entry is discarded, not surfaced.
		_ = m.store.Delete(ctx, KeyUser)
		return nil, nil
	}
	return &user, nil
}

// LikedCards returns the cached liked-set.
func (m *Manager) LikedCards(ctx context.Context) (LikedSet, error) {
	raw, err := m.get(ctx, KeyLikedCards)
	if err != nil {
		return nil, err
	}
	set := LikedSet{}
	if raw == "" {
		return set, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		_ = m.store.Delete(ctx, KeyLikedCards)
		return set, nil
	}
	for _, id := range ids {
		set.Add(id)
	}
	return set, nil
}

// SaveLikedCards persists the liked-set cache.
func (m *Manager) SaveLikedCards(ctx context.Context, set LikedSet) error {
	data, err := json.Marshal(set.IDs())
	if err != nil {
		return err
	}
	return m.store.Set(ctx, KeyLikedCards, string(data))
}

// DarkMode reads the display preference; missing means light.
func (m *Manager) DarkMode(ctx context.Context) (bool, error) {
	raw, err := m.get(ctx, KeyDarkMode)
	if err != nil {
		return false, err
	}
	return raw == "true", nil
}

// SetDarkMode stores the display preference.
func (m *Manager) SetDarkMode(ctx context.Context, enabled bool) error {
	return m.store.Set(ctx, KeyDarkMode, strconv.FormatBool(enabled))
}

// IsLoggedInFlag reads the cached flag without deriving the session. Used to
// detect stale state left behind by a partial login.
func (m *Manager) IsLoggedInFlag(ctx context.Context) (string, error) {
	return m.get(ctx, KeyIsLoggedIn)
}

func (m *Manager) get(ctx context.Context, key string) (string, error) {
	val, err := m.store.Get(ctx, key)
	if errors.Is(err, persistence.ErrKeyNotFound) {
		return "", nil
	}
	return val, err
}
