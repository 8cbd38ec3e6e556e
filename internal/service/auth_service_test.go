package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/bcard-portal/internal/bcard"
	"github.com/spec-kit/bcard-portal/internal/config"
	"github.com/spec-kit/bcard-portal/internal/events"
	"github.com/spec-kit/bcard-portal/internal/observability"
	"github.com/spec-kit/bcard-portal/internal/persistence"
	"github.com/spec-kit/bcard-portal/internal/session"
	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

func testToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

type authFixture struct {
	auth  *AuthService
	state *session.Manager
	store persistence.Store
	calls *atomic.Int64
}

func newAuthFixture(t *testing.T, handler http.HandlerFunc) *authFixture {
	t.Helper()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	api := bcard.NewClient(
		config.RemoteConfig{BaseURL: srv.URL, TimeoutSeconds: 5},
		zap.NewNop(),
		observability.NewMetrics(),
	)

	store := persistence.NewMemoryStore()
	return &authFixture{
		auth:  NewAuthService(api, events.NewInMemoryDispatcher(), zap.NewNop()),
		state: session.NewManager(store),
		store: store,
		calls: &calls,
	}
}

func TestSignIn_RejectsInvalidCredentialsLocally(t *testing.T) {
	fx := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the directory")
	})

	_, err := fx.auth.SignIn(context.Background(), fx.state, bcard.Credentials{
		Email:    "not-an-email",
		Password: "secret123",
	})

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
	assert.Equal(t, int64(0), fx.calls.Load())
}

func TestSignIn_PersistsTokenAndUser(t *testing.T) {
	ctx := context.Background()
	token := testToken(t, map[string]any{"_id": "u1", "isAdmin": true})
	fx := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/login", r.URL.Path)
		fmt.Fprintf(w, `{"token":%q,"user":{"_id":"u1","email":"a@b.c"}}`, token)
	})

	sess, err := fx.auth.SignIn(ctx, fx.state, bcard.Credentials{
		Email:    "a@b.c",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.True(t, sess.IsLoggedIn)
	assert.True(t, sess.IsAdmin)
	assert.Equal(t, "u1", sess.UserID)

	stored, err := fx.state.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, stored.Token)

	user, err := fx.state.User(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "a@b.c", user.Email)
}

func TestSignIn_AlreadyLoggedInShortCircuits(t *testing.T) {
	ctx := context.Background()
	fx := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("a fully logged-in session must not trigger a login call")
	})

	token := testToken(t, map[string]any{"_id": "u1"})
	require.NoError(t, fx.state.SaveLogin(ctx, token, nil))

	sess, err := fx.auth.SignIn(ctx, fx.state, bcard.Credentials{
		Email:    "a@b.c",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, int64(0), fx.calls.Load())
}

func TestSignIn_PartialLoginStateIsPurgedAndReplaced(t *testing.T) {
	ctx := context.Background()
	freshToken := testToken(t, map[string]any{"_id": "u-fresh"})
	fx := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/login", r.URL.Path)
		fmt.Fprintf(w, `{"token":%q}`, freshToken)
	})

	// A token without the logged-in flag is an interrupted save; it must not
	// short-circuit the sign-in with its stale identity.
	staleToken := testToken(t, map[string]any{"_id": "u-stale"})
	require.NoError(t, fx.store.Set(ctx, session.KeyToken, staleToken))

	sess, err := fx.auth.SignIn(ctx, fx.state, bcard.Credentials{
		Email:    "a@b.c",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), fx.calls.Load(), "partial state must trigger a real login")
	assert.Equal(t, "u-fresh", sess.UserID)

	stored, err := fx.state.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, freshToken, stored.Token)
}

func TestSignIn_BareStringTokenResponse(t *testing.T) {
	token := testToken(t, map[string]any{"_id": "u7"})
	fx := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%q", token)
	})

	sess, err := fx.auth.SignIn(context.Background(), fx.state, bcard.Credentials{
		Email:    "a@b.c",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "u7", sess.UserID)
}

func TestSignIn_WrongPasswordSurfacesUnauthenticated(t *testing.T) {
	fx := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := fx.auth.SignIn(context.Background(), fx.state, bcard.Credentials{
		Email:    "a@b.c",
		Password: "wrong-password",
	})

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthenticated))

	sess, lerr := fx.state.Load(context.Background())
	require.NoError(t, lerr)
	assert.False(t, sess.IsLoggedIn, "a failed login must not leave state behind")
}

func TestRegister_ConflictOnDuplicateEmail(t *testing.T) {
	fx := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
	})

	_, err := fx.auth.Register(context.Background(), bcard.RegisterInput{
		Name:     bcard.NameInput{First: "Ada", Last: "Lovelace"},
		Email:    "a@b.c",
		Password: "secret123",
		Phone:    "050-1234567",
		Address: bcard.AddressInput{
			Country:     "IL",
			City:        "Tel Aviv",
			Street:      "Rothschild",
			HouseNumber: "1",
			Zip:         "61000",
		},
	})

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
}

func TestSignOut_ClearsStateButKeepsPreference(t *testing.T) {
	ctx := context.Background()
	fx := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {})

	require.NoError(t, fx.state.SaveLogin(ctx, testToken(t, map[string]any{"_id": "u1"}), nil))
	require.NoError(t, fx.state.SetDarkMode(ctx, true))

	sess, err := fx.state.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, fx.auth.SignOut(ctx, fx.state, sess))

	after, err := fx.state.Load(ctx)
	require.NoError(t, err)
	assert.False(t, after.IsLoggedIn)

	dark, err := fx.state.DarkMode(ctx)
	require.NoError(t, err)
	assert.True(t, dark)
}
