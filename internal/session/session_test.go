package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bcard-portal/internal/domain"
	"github.com/spec-kit/bcard-portal/internal/persistence"
	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

// makeToken builds an unsigned JWT-shaped token; Derive never verifies
// signatures, so a placeholder segment is enough.
func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func TestDerive_EmptyToken(t *testing.T) {
	sess, err := Derive("")
	require.NoError(t, err)
	assert.Equal(t, Anonymous, sess)
}

func TestDerive_AdminFlag(t *testing.T) {
	token := makeToken(t, map[string]any{"_id": "u1", "isAdmin": true})

	sess, err := Derive(token)
	require.NoError(t, err)
	assert.True(t, sess.IsLoggedIn)
	assert.True(t, sess.IsAdmin)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, token, sess.Token)
}

func TestDerive_RoleClaim(t *testing.T) {
	sess, err := Derive(makeToken(t, map[string]any{"_id": "u1", "role": "admin"}))
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin)

	sess, err = Derive(makeToken(t, map[string]any{"_id": "u1", "role": "user"}))
	require.NoError(t, err)
	assert.False(t, sess.IsAdmin)
}

func TestDerive_BusinessClaim(t *testing.T) {
	sess, err := Derive(makeToken(t, map[string]any{"_id": "u1", "isBusiness": true}))
	require.NoError(t, err)
	assert.True(t, sess.IsBusiness)
	assert.False(t, sess.IsAdmin)

	sess, err = Derive(makeToken(t, map[string]any{"_id": "u1"}))
	require.NoError(t, err)
	assert.False(t, sess.IsBusiness)
}

func TestDerive_IDFallback(t *testing.T) {
	sess, err := Derive(makeToken(t, map[string]any{"id": "u9"}))
	require.NoError(t, err)
	assert.Equal(t, "u9", sess.UserID)
	assert.False(t, sess.IsAdmin)
}

func TestDerive_GarbagePayloadFailsSoft(t *testing.T) {
	sess, err := Derive("aaa.%%not-base64%%.ccc")

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDecodeFailure))
	// The visitor stays logged in with no identity; the token still works as
	// an opaque bearer credential.
	assert.True(t, sess.IsLoggedIn)
	assert.False(t, sess.IsAdmin)
	assert.Empty(t, sess.UserID)
	assert.Equal(t, "aaa.%%not-base64%%.ccc", sess.Token)
}

func TestManager_SaveLoginAndLoad(t *testing.T) {
	ctx := context.Background()
	m := NewManager(persistence.NewMemoryStore())
	token := makeToken(t, map[string]any{"_id": "u1", "isAdmin": true})

	user := &domain.User{ID: "u1", Email: "biz@example.com"}
	require.NoError(t, m.SaveLogin(ctx, token, user))

	sess, err := m.Load(ctx)
	require.NoError(t, err)
	assert.True(t, sess.IsLoggedIn)
	assert.True(t, sess.IsAdmin)
	assert.Equal(t, "u1", sess.UserID)

	flag, err := m.IsLoggedInFlag(ctx)
	require.NoError(t, err)
	assert.Equal(t, "true", flag)

	cached, err := m.User(ctx)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "biz@example.com", cached.Email)
}

func TestManager_LoadWithoutToken(t *testing.T) {
	ctx := context.Background()
	m := NewManager(persistence.NewMemoryStore())

	sess, err := m.Load(ctx)
	require.NoError(t, err)
	assert.False(t, sess.IsLoggedIn)

	// Load caches the derived flags for fast reads.
	flag, err := m.IsLoggedInFlag(ctx)
	require.NoError(t, err)
	assert.Equal(t, "false", flag)
}

func TestManager_ClearPreservesDarkMode(t *testing.T) {
	ctx := context.Background()
	m := NewManager(persistence.NewMemoryStore())

	require.NoError(t, m.SaveLogin(ctx, makeToken(t, map[string]any{"_id": "u1"}), nil))
	require.NoError(t, m.SetDarkMode(ctx, true))
	require.NoError(t, m.SaveLikedCards(ctx, LikedSet{"c1": {}}))

	require.NoError(t, m.Clear(ctx))

	sess, err := m.Load(ctx)
	require.NoError(t, err)
	assert.False(t, sess.IsLoggedIn)

	liked, err := m.LikedCards(ctx)
	require.NoError(t, err)
	assert.Empty(t, liked)

	dark, err := m.DarkMode(ctx)
	require.NoError(t, err)
	assert.True(t, dark, "display preference must survive a logout")
}

func TestManager_LikedCardsRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewManager(persistence.NewMemoryStore())

	set := LikedSet{}
	set.Add("c2")
	set.Add("c1")
	require.NoError(t, m.SaveLikedCards(ctx, set))

	loaded, err := m.LikedCards(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Contains("c1"))
	assert.True(t, loaded.Contains("c2"))
	assert.Equal(t, []string{"c1", "c2"}, loaded.IDs())
}

func TestManager_CorruptCachesDiscarded(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewMemoryStore()
	m := NewManager(store)

	require.NoError(t, store.Set(ctx, KeyUser, "{not json"))
	user, err := m.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, store.Set(ctx, KeyLikedCards, "{not json"))
	liked, err := m.LikedCards(ctx)
	require.NoError(t, err)
	assert.Empty(t, liked)
}
