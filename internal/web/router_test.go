package web

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/bcard-portal/internal/bcard"
	"github.com/spec-kit/bcard-portal/internal/config"
	"github.com/spec-kit/bcard-portal/internal/events"
	"github.com/spec-kit/bcard-portal/internal/observability"
	"github.com/spec-kit/bcard-portal/internal/persistence"
	"github.com/spec-kit/bcard-portal/internal/service"
	"github.com/spec-kit/bcard-portal/internal/session"
	"github.com/spec-kit/bcard-portal/internal/web/handlers"
)

// newTestApp wires the full portal against a stubbed directory server. The
// returned store backs the session middleware, so tests can seed per-browser
// state directly.
func newTestApp(t *testing.T, directory http.HandlerFunc) (*fiber.App, persistence.Store) {
	t.Helper()

	srv := httptest.NewServer(directory)
	t.Cleanup(srv.Close)

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	store := persistence.NewMemoryStore()
	dispatcher := events.NewInMemoryDispatcher()

	api := bcard.NewClient(config.RemoteConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, logger, metrics)
	cardService := service.NewCardService(api, dispatcher, logger)
	likeService := service.NewLikeService(api, dispatcher, logger)
	authService := service.NewAuthService(api, dispatcher, logger)

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:  handlers.NewHealthHandler("bcard-portal", "test", store),
		Cards:   handlers.NewCardsHandler(cardService, likeService, logger),
		Likes:   handlers.NewLikesHandler(likeService, logger),
		Auth:    handlers.NewAuthHandler(authService, logger),
		Prefs:   handlers.NewPrefsHandler(),
		Session: session.NewMiddleware(store, "bcard_session", 180, logger),
	})
	return app, store
}

// signedInRequest builds a request whose session cookie points at state
// seeded with the given token, the way a completed login would leave it.
func signedInRequest(t *testing.T, store persistence.Store, method, target, token string) *http.Request {
	t.Helper()
	ctx := context.Background()
	const sid = "11111111-2222-3333-4444-555555555555"
	require.NoError(t, store.Set(ctx, "sess:"+sid+":"+session.KeyToken, token))
	require.NoError(t, store.Set(ctx, "sess:"+sid+":"+session.KeyIsLoggedIn, "true"))

	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(&http.Cookie{Name: "bcard_session", Value: sid})
	return req
}

func routeTestToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func staticDirectory(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestRoutes_HomeListsCards(t *testing.T) {
	app, _ := newTestApp(t, staticDirectory(
		`[{"_id":"c1","title":"Acme Plumbing","phone":"050-1234567","likes":[]}]`))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Acme Plumbing")
}

func TestRoutes_HomeSetsSessionCookie(t *testing.T) {
	app, _ := newTestApp(t, staticDirectory(`[]`))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var found bool
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "bcard_session" {
			found = true
		}
	}
	assert.True(t, found, "first visit should receive a session cookie")
}

func TestRoutes_HealthLive(t *testing.T) {
	app, _ := newTestApp(t, staticDirectory(`[]`))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoutes_AnonymousLikeGetsSignInNotice(t *testing.T) {
	app, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("an anonymous toggle must not reach the directory")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/cards/c1/like", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Sign in")
}

func TestRoutes_AnonymousFavoritesPrompt(t *testing.T) {
	app, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("anonymous favorites must not reach the directory")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/favorites", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoutes_MissingBusinessCardIs404(t *testing.T) {
	app, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/business/nope", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRoutes_SignInPageRenders(t *testing.T) {
	app, _ := newTestApp(t, staticDirectory(`[]`))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/signin", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "email")
}

func TestRoutes_CreateCardDeniedForPersonalAccount(t *testing.T) {
	app, store := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("a denied editor request must not reach the directory")
	})

	token := routeTestToken(t, map[string]any{"_id": "u1"})
	resp, err := app.Test(signedInRequest(t, store, http.MethodGet, "/create-card", token))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "business accounts")
}

func TestRoutes_CreateCardOpenForBusinessAccount(t *testing.T) {
	app, store := newTestApp(t, staticDirectory(`[]`))

	token := routeTestToken(t, map[string]any{"_id": "u1", "isBusiness": true})
	resp, err := app.Test(signedInRequest(t, store, http.MethodGet, "/create-card", token))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Create Card")
}

func TestRoutes_DirectoryOutageRendersErrorPage(t *testing.T) {
	app, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
