package controllers_test

import (
	"Wordrush/controllers"
	"Wordrush/middleware"
	"Wordrush/routes"
	"Wordrush/services/categories"
	"Wordrush/services/game"
	"Wordrush/services/letters"
	"Wordrush/services/store"
	"Wordrush/services/validation"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t        *testing.T
	router   *gin.Engine
	verifier *middleware.TokenVerifier
}

func newTestServer(t *testing.T, rps float64, burst int) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dict := validation.NewDictionaryOracle(validation.SampleWordLists)
	engine := game.NewEngine(game.Deps{
		Store:    store.NewMemoryStore(),
		Oracle:   dict,
		Selector: categories.NewSelector(nil, []string{"Animals"}, nil, rand.New(rand.NewSource(1))),
		Letters:  letters.NewGenerator(rand.New(rand.NewSource(7))),
	}, game.DefaultConfig())

	verifier := middleware.NewTokenVerifier("test-secret", time.Hour)
	r := gin.New()
	middleware.SetUpMiddleware(r, "test-session-key", false)
	routes.SetupRoutes(r, routes.Deps{
		Rooms:    &controllers.RoomController{Engine: engine},
		Limiter:  middleware.NewRateLimiter(rps, burst),
		Verifier: verifier,
		Health: map[string]controllers.HealthCheck{
			"store": func(context.Context) error { return nil },
		},
	})
	return &testServer{t: t, router: r, verifier: verifier}
}

// client keeps the session cookie between requests, like a browser
type client struct {
	srv     *testServer
	cookies []*http.Cookie
	token   string
}

func (s *testServer) client() *client {
	return &client{srv: s}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.srv.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.srv.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	c.srv.router.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func TestPing(t *testing.T) {
	srv := newTestServer(t, 5, 10)
	w := srv.client().do(http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthz", controllers.Healthz(map[string]controllers.HealthCheck{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "ok", body.Checks["postgres"])
	assert.Equal(t, "connection refused", body.Checks["redis"])
}

func TestRoomFlow(t *testing.T) {
	srv := newTestServer(t, 100, 100)
	alice, bob := srv.client(), srv.client()

	w := alice.do(http.MethodPost, "/rooms", map[string]any{"display_name": "Alice"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
	require.NotEmpty(t, alice.cookies, "the session cookie carries the player id")

	created := decode[game.Snapshot](t, w)
	roomID, code := created.Room.ID, created.Room.Code
	assert.Equal(t, game.PhaseWaiting, created.Phase)

	w = bob.do(http.MethodPost, "/rooms/join/"+code, map[string]any{"display_name": "Bob"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	joined := decode[game.Snapshot](t, w)
	require.Len(t, joined.Players, 2)
	assert.NotEqual(t, joined.Players[0].PlayerID, joined.Players[1].PlayerID)

	w = bob.do(http.MethodPost, "/rooms/"+roomID+"/start", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, game.ErrNotHost.Code, decode[errorBody](t, w).Code)

	w = alice.do(http.MethodPost, "/rooms/"+roomID+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, game.PhaseTutorial, decode[game.Snapshot](t, w).Phase)

	alice.do(http.MethodPost, "/rooms/"+roomID+"/tutorial", nil)
	w = bob.do(http.MethodPost, "/rooms/"+roomID+"/tutorial", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = alice.do(http.MethodGet, "/rooms/"+roomID+"/state", nil)
	require.Equal(t, http.StatusOK, w.Code)
	state := decode[game.Snapshot](t, w)
	assert.Equal(t, game.PhaseActive, state.Phase)
	assert.Len(t, state.Room.Letters, 5)

	// a word that loses is still a 200
	w = alice.do(http.MethodPost, "/rooms/"+roomID+"/words", map[string]any{"word": "ZZZZ"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[game.SubmitResult](t, w)
	assert.False(t, res.Accepted)
	assert.NotEmpty(t, res.Code)

	w = alice.do(http.MethodPost, "/rooms/"+roomID+"/words", map[string]any{"word": "b4con"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, game.ErrInvalidInput.Code, decode[errorBody](t, w).Code)

	w = bob.do(http.MethodPost, "/rooms/"+roomID+"/shuffle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[game.ShuffleResult](t, w).Votes)

	w = bob.do(http.MethodGet, "/rooms/"+roomID+"/rounds", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rounds struct {
		Rounds []json.RawMessage `json:"rounds"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rounds))
	assert.Len(t, rounds.Rounds, 1)

	w = alice.do(http.MethodPost, "/rooms/"+roomID+"/play-again", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRoomErrors(t *testing.T) {
	srv := newTestServer(t, 100, 100)
	alice, stranger := srv.client(), srv.client()

	w := alice.do(http.MethodPost, "/rooms", map[string]any{"room_type": "private"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "display name is required")

	w = alice.do(http.MethodGet, "/rooms/no-such-room/state", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, game.ErrRoomNotFound.Code, decode[errorBody](t, w).Code)

	w = alice.do(http.MethodPost, "/rooms/join/ZZZZ", map[string]any{"display_name": "Alice"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = alice.do(http.MethodPost, "/rooms", map[string]any{"display_name": "Alice"})
	require.Equal(t, http.StatusCreated, w.Code)
	roomID := decode[game.Snapshot](t, w).Room.ID

	w = stranger.do(http.MethodGet, "/rooms/"+roomID+"/state", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, game.ErrPlayerNotFound.Code, decode[errorBody](t, w).Code)

	w = alice.do(http.MethodPost, "/rooms/"+roomID+"/ready", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = alice.do(http.MethodPost, "/rooms/"+roomID+"/ready", map[string]any{"ready": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[game.Snapshot](t, w).Players[0].IsReady)
}

func TestLeaveRoom(t *testing.T) {
	srv := newTestServer(t, 100, 100)
	alice, bob := srv.client(), srv.client()

	w := alice.do(http.MethodPost, "/rooms", map[string]any{"display_name": "Alice"})
	created := decode[game.Snapshot](t, w)
	bob.do(http.MethodPost, "/rooms/join/"+created.Room.Code, map[string]any{"display_name": "Bob"})

	w = alice.do(http.MethodPost, "/rooms/"+created.Room.ID+"/leave", nil)
	require.Equal(t, http.StatusOK, w.Code)
	left := decode[game.Snapshot](t, w)
	require.Len(t, left.Players, 1)
	assert.Equal(t, left.Players[0].PlayerID, left.Room.HostID)

	w = bob.do(http.MethodPost, "/rooms/"+created.Room.ID+"/leave", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"room_deleted": true}`, w.Body.String())
}

func TestMatchmaking(t *testing.T) {
	srv := newTestServer(t, 100, 100)

	w := srv.client().do(http.MethodPost, "/rooms/matchmaking", map[string]any{"display_name": "Alice"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decode[game.Snapshot](t, w)
	assert.Equal(t, "public", first.Room.RoomType)

	w = srv.client().do(http.MethodPost, "/rooms/matchmaking", map[string]any{"display_name": "Bob"})
	require.Equal(t, http.StatusOK, w.Code)
	second := decode[game.Snapshot](t, w)
	assert.Equal(t, first.Room.ID, second.Room.ID)
	assert.Len(t, second.Players, 2)
}

func TestSubmitIsRateLimited(t *testing.T) {
	srv := newTestServer(t, 0.01, 1)
	alice := srv.client()

	w := alice.do(http.MethodPost, "/rooms", map[string]any{"display_name": "Alice"})
	roomID := decode[game.Snapshot](t, w).Room.ID

	w = alice.do(http.MethodPost, "/rooms/"+roomID+"/words", map[string]any{"word": "BACON"})
	assert.Equal(t, http.StatusConflict, w.Code, "no round yet, but the request went through")

	w = alice.do(http.MethodPost, "/rooms/"+roomID+"/words", map[string]any{"word": "BACON"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "rate_limited", decode[errorBody](t, w).Code)

	// polling is not limited
	w = alice.do(http.MethodGet, "/rooms/"+roomID+"/state", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBearerToken(t *testing.T) {
	srv := newTestServer(t, 100, 100)

	anon := srv.client()
	anon.token = "not-a-token"
	w := anon.do(http.MethodPost, "/rooms", map[string]any{"display_name": "Mallory"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := srv.verifier.Generate("user-42", time.Now())
	require.NoError(t, err)
	authed := srv.client()
	authed.token = token
	w = authed.do(http.MethodPost, "/rooms", map[string]any{"display_name": "Alice"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	snap := decode[game.Snapshot](t, w)
	require.NotNil(t, snap.Players[0].UserID)
	assert.Equal(t, "user-42", *snap.Players[0].UserID)
}
