package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"minniemissions/services"
	"minniemissions/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMissionApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()
	st := store.NewStore()
	app := fiber.New()
	SetupMissionRoutes(app, services.NewMissionService(st))
	SetupReferralRoutes(app, st)
	return app, st
}

func doJSON(t *testing.T, app *fiber.App, method, path, userID string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(body) > 0 && body[0] == '{' {
		require.NoError(t, json.Unmarshal(body, &decoded))
	}
	return resp.StatusCode, decoded
}

func TestGetMissions(t *testing.T) {
	app, _ := newMissionApp(t)

	req := httptest.NewRequest("GET", "/missions", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var missions []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&missions))
	assert.Len(t, missions, 5)
}

func TestGetFeaturedMissions(t *testing.T) {
	app, _ := newMissionApp(t)

	req := httptest.NewRequest("GET", "/missions/featured", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var missions []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&missions))
	assert.Len(t, missions, 3)
}

func TestCompleteMissionRoute(t *testing.T) {
	app, st := newMissionApp(t)

	// No user context → 401.
	status, _ := doJSON(t, app, "POST", "/missions/m1/complete", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	// Bob completes m1.
	status, body := doJSON(t, app, "POST", "/missions/m1/complete", "u2")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["completed"])
	assert.EqualValues(t, 175, body["vibe_points"])

	// Second attempt fails without double-credit.
	status, _ = doJSON(t, app, "POST", "/missions/m1/complete", "u2")
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	// Unknown mission or user is a lookup failure, not a completion failure.
	status, _ = doJSON(t, app, "POST", "/missions/m999/complete", "u2")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doJSON(t, app, "POST", "/missions/m1/complete", "ghost")
	assert.Equal(t, http.StatusNotFound, status)

	bob, err := st.UserByID("u2")
	require.NoError(t, err)
	assert.Equal(t, 175, bob.VibePoints)
}

func TestLeaderboardRoute(t *testing.T) {
	app, _ := newMissionApp(t)

	req := httptest.NewRequest("GET", "/leaderboard", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var board []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&board))
	require.Len(t, board, 3)
	assert.Equal(t, "Alice", board[0]["name"])
	for _, entry := range board {
		assert.NotEqual(t, true, entry["is_admin"])
	}
}

func TestQRScanRoutes(t *testing.T) {
	app, st := newMissionApp(t)

	status, body := doJSON(t, app, "GET", "/qr/u1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["recorded"])

	status, _ = doJSON(t, app, "GET", "/qr/u1/m3", "")
	assert.Equal(t, http.StatusOK, status)

	// Unknown referrer is a 404, not an exception.
	status, body = doJSON(t, app, "GET", "/qr/nobody", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Invalid referral code", body["error"])

	// Scans recorded, counts untouched.
	assert.Len(t, st.ReferralScans("u1"), 2)
	alice, err := st.UserByID("u1")
	require.NoError(t, err)
	assert.Equal(t, 5, alice.ReferralCount)
}

func TestReferralPayloadRoute(t *testing.T) {
	app, _ := newMissionApp(t)

	req := httptest.NewRequest("GET", "/referral/payload?mission_id=m3", nil)
	req.Header.Set("X-User-ID", "u1")
	req.Header.Set("Origin", "https://minniemissions.app")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "https://minniemissions.app/qr/u1/m3", body["url"])
}
